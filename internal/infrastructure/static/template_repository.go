// Package static serves the document templates bundled with the binary.
package static

import (
	"context"
	_ "embed"
	"encoding/json"
	"fmt"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/domain/repository"
)

//go:embed templates.json
var bundled []byte

// TemplateRepository is a read-only, in-memory template list.
type TemplateRepository struct {
	list []entity.Template
	byID map[string]int
}

// NewTemplateRepository loads the bundled templates.
func NewTemplateRepository() (*TemplateRepository, error) {
	var list []entity.Template
	if err := json.Unmarshal(bundled, &list); err != nil {
		return nil, fmt.Errorf("decode bundled templates: %w", err)
	}
	return NewTemplateRepositoryFrom(list), nil
}

// NewTemplateRepositoryFrom serves the given templates. Later duplicates of an
// id are ignored.
func NewTemplateRepositoryFrom(list []entity.Template) *TemplateRepository {
	r := &TemplateRepository{byID: make(map[string]int, len(list))}
	for _, t := range list {
		if _, dup := r.byID[t.ID]; dup {
			continue
		}
		r.byID[t.ID] = len(r.list)
		r.list = append(r.list, t)
	}
	return r
}

func (r *TemplateRepository) GetByID(_ context.Context, id string) (*entity.Template, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	t := clone(r.list[i])
	return &t, nil
}

func (r *TemplateRepository) List(context.Context) ([]entity.Template, error) {
	out := make([]entity.Template, len(r.list))
	for i, t := range r.list {
		out[i] = clone(t)
	}
	return out, nil
}

func clone(t entity.Template) entity.Template {
	t.Fields = append([]entity.Field(nil), t.Fields...)
	return t
}

var _ repository.TemplateRepository = (*TemplateRepository)(nil)
