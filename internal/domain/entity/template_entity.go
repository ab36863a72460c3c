package entity

import "time"

type FieldType string

const (
	FieldText     FieldType = "text"
	FieldDate     FieldType = "date"
	FieldTextarea FieldType = "textarea"
)

// Field describes one input of a document template. Name matches a placeholder
// key in the template body.
type Field struct {
	Name  string    `json:"name"`
	Label string    `json:"label"`
	Type  FieldType `json:"type"`
}

// Template is a named HTML document with {{ name }} placeholders.
type Template struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	Fields       []Field   `json:"fields"`
	TemplateBody string    `json:"templateBody"`
	CreatedAt    time.Time `json:"createdAt,omitempty"`
}

// FieldNames returns the field names in declared order.
func (t *Template) FieldNames() []string {
	names := make([]string, len(t.Fields))
	for i, f := range t.Fields {
		names[i] = f.Name
	}
	return names
}
