package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	repo "github.com/oksasatya/tradedocs-portal/internal/domain/repository"
)

// ErrBadEvent marks a delivery that can never be processed and should not be requeued.
var ErrBadEvent = errors.New("malformed document event")

// AuditRecorder stores DocumentSent events taken off the audit queue.
type AuditRecorder struct {
	Repo repo.AuditRepository
}

func NewAuditRecorder(r repo.AuditRepository) *AuditRecorder {
	return &AuditRecorder{Repo: r}
}

// Handle decodes one queue message and records it.
func (a *AuditRecorder) Handle(ctx context.Context, body []byte) (*entity.DocumentSent, error) {
	var ev entity.DocumentSent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadEvent, err)
	}
	if ev.ID == "" || ev.To == "" || ev.SentAt.IsZero() {
		return nil, fmt.Errorf("%w: missing id, recipient or timestamp", ErrBadEvent)
	}
	if err := a.Repo.Insert(ctx, &ev); err != nil {
		return nil, err
	}
	return &ev, nil
}
