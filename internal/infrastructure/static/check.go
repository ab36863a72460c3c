package static

import (
	"fmt"
	"strings"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/pkg/render"
)

// CheckFields reports an error when t declares a field its body never uses,
// or uses a placeholder with no declared field.
func CheckFields(t *entity.Template) error {
	used := map[string]struct{}{}
	for _, k := range render.Placeholders(t.TemplateBody) {
		used[k] = struct{}{}
	}
	declared := map[string]struct{}{}
	var unused []string
	for _, name := range t.FieldNames() {
		declared[name] = struct{}{}
		if _, ok := used[name]; !ok {
			unused = append(unused, name)
		}
	}
	var undeclared []string
	for _, k := range render.Placeholders(t.TemplateBody) {
		if _, ok := declared[k]; !ok {
			undeclared = append(undeclared, k)
		}
	}
	if len(unused) == 0 && len(undeclared) == 0 {
		return nil
	}
	var parts []string
	if len(undeclared) > 0 {
		parts = append(parts, "undeclared placeholders: "+strings.Join(undeclared, ", "))
	}
	if len(unused) > 0 {
		parts = append(parts, "unused fields: "+strings.Join(unused, ", "))
	}
	return fmt.Errorf("template %s: %s", t.ID, strings.Join(parts, "; "))
}
