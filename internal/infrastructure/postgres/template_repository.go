package postgres

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/domain/repository"
)

// TemplateRepository reads templates by their logical id. Fields are kept as a
// JSONB array.
type TemplateRepository struct {
	pool *pgxpool.Pool
}

func NewTemplateRepository(pool *pgxpool.Pool) *TemplateRepository {
	return &TemplateRepository{pool: pool}
}

const templateColumns = `id, title, description, fields, template_body, created_at`

func scanTemplate(row pgx.Row) (*entity.Template, error) {
	t := &entity.Template{}
	var fields []byte
	if err := row.Scan(&t.ID, &t.Title, &t.Description, &fields, &t.TemplateBody, &t.CreatedAt); err != nil {
		return nil, err
	}
	if len(fields) > 0 {
		if err := json.Unmarshal(fields, &t.Fields); err != nil {
			return nil, err
		}
	}
	return t, nil
}

func (r *TemplateRepository) GetByID(ctx context.Context, id string) (*entity.Template, error) {
	t, err := scanTemplate(r.pool.QueryRow(ctx, `SELECT `+templateColumns+` FROM templates WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return t, nil
}

func (r *TemplateRepository) List(ctx context.Context) ([]entity.Template, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+templateColumns+` FROM templates ORDER BY created_at, id`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []entity.Template
	for rows.Next() {
		t, err := scanTemplate(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *t)
	}
	return out, rows.Err()
}

// Upsert inserts t or replaces the row with the same id.
func (r *TemplateRepository) Upsert(ctx context.Context, t *entity.Template) error {
	fields, err := json.Marshal(t.Fields)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx, `
		INSERT INTO templates (id, title, description, fields, template_body)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (id) DO UPDATE
		SET title = EXCLUDED.title,
		    description = EXCLUDED.description,
		    fields = EXCLUDED.fields,
		    template_body = EXCLUDED.template_body
	`, t.ID, t.Title, t.Description, fields, t.TemplateBody)
	return err
}

var (
	_ repository.TemplateRepository = (*TemplateRepository)(nil)
	_ repository.TemplateWriter     = (*TemplateRepository)(nil)
)
