package static

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/domain/repository"
	"github.com/oksasatya/tradedocs-portal/pkg/render"
)

func TestBundledTemplates(t *testing.T) {
	repo, err := NewTemplateRepository()
	require.NoError(t, err)

	list, err := repo.List(context.Background())
	require.NoError(t, err)

	ids := make([]string, 0, len(list))
	for _, tpl := range list {
		ids = append(ids, tpl.ID)
		// every placeholder is backed by a declared field
		assert.ElementsMatch(t, tpl.FieldNames(), render.Placeholders(tpl.TemplateBody), tpl.ID)
		for _, f := range tpl.Fields {
			assert.Contains(t, []entity.FieldType{entity.FieldText, entity.FieldDate, entity.FieldTextarea}, f.Type)
		}
	}
	assert.Equal(t, []string{"quotation", "confirmation", "triparty", "label", "invoice", "packing"}, ids)
}

func TestGetByID(t *testing.T) {
	repo, err := NewTemplateRepository()
	require.NoError(t, err)
	ctx := context.Background()

	inv, err := repo.GetByID(ctx, "invoice")
	require.NoError(t, err)
	assert.Equal(t, "INVOICE", inv.Title)

	_, err = repo.GetByID(ctx, "Invoice")
	assert.ErrorIs(t, err, repository.ErrNotFound)
	_, err = repo.GetByID(ctx, "nonexistent-id")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestReturnedTemplatesAreCopies(t *testing.T) {
	repo := NewTemplateRepositoryFrom([]entity.Template{
		{ID: "a", Title: "A", Fields: []entity.Field{{Name: "x", Type: entity.FieldText}}},
		{ID: "a", Title: "shadowed"},
	})
	ctx := context.Background()

	got, err := repo.GetByID(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "A", got.Title)
	got.Fields[0].Name = "mutated"

	again, _ := repo.GetByID(ctx, "a")
	assert.Equal(t, "x", again.Fields[0].Name)

	list, _ := repo.List(ctx)
	assert.Len(t, list, 1)
}
