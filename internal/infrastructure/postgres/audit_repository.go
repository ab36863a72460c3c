package postgres

import (
	"context"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/domain/repository"
)

type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

// Insert stores e. Redelivered events with a known id are ignored.
func (r *AuditRepository) Insert(ctx context.Context, e *entity.DocumentSent) error {
	var sender any
	if e.SenderID != "" {
		sender = e.SenderID
	}
	_, err := r.pool.Exec(ctx, `
		INSERT INTO document_audit (id, template_id, recipient, subject, sender_id, role, transport, attachment, archive_uri, sent_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		ON CONFLICT (id) DO NOTHING
	`, e.ID, e.TemplateID, e.To, e.Subject, sender, e.Role, e.Transport, e.Attachment, e.ArchiveURI, e.SentAt)
	return err
}

var _ repository.AuditRepository = (*AuditRepository)(nil)
