package repository

import (
	"context"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
)

// TemplateRepository resolves document templates by their logical id.
// Lookups are exact and case-sensitive; a miss is ErrNotFound.
type TemplateRepository interface {
	GetByID(ctx context.Context, id string) (*entity.Template, error)
	List(ctx context.Context) ([]entity.Template, error)
}

// TemplateWriter is implemented by stores that can be seeded.
type TemplateWriter interface {
	Upsert(ctx context.Context, t *entity.Template) error
}

// TemplateIndex is a full text index over templates.
type TemplateIndex interface {
	Search(ctx context.Context, query string) ([]string, error)
	Index(ctx context.Context, t *entity.Template) error
}

// AuditRepository persists document dispatch records.
type AuditRepository interface {
	Insert(ctx context.Context, e *entity.DocumentSent) error
}
