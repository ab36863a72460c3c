package mailer

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
)

// ErrPreviewNotFound is returned by a MailboxStore for unknown or expired ids.
var ErrPreviewNotFound = errors.New("preview not found")

// StoredMessage is a captured message kept for preview.
type StoredMessage struct {
	ID                    string    `json:"id"`
	From                  string    `json:"from"`
	To                    string    `json:"to"`
	Subject               string    `json:"subject"`
	HTML                  string    `json:"html"`
	Text                  string    `json:"text"`
	AttachmentName        string    `json:"attachment_name,omitempty"`
	AttachmentContentType string    `json:"attachment_content_type,omitempty"`
	AttachmentSize        int       `json:"attachment_size,omitempty"`
	CreatedAt             time.Time `json:"created_at"`
}

// MailboxStore keeps captured messages for a limited time.
type MailboxStore interface {
	Save(ctx context.Context, m StoredMessage) error
	Get(ctx context.Context, id string) (*StoredMessage, error)
}

// Mailbox is the disposable development transport. Messages never leave the
// process; each send yields a preview link instead.
type Mailbox struct {
	store   MailboxStore
	baseURL string
}

// NewMailbox creates a dev mailbox whose preview links start with baseURL.
func NewMailbox(store MailboxStore, baseURL string) *Mailbox {
	if store == nil {
		store = NewMemoryMailbox(24 * time.Hour)
	}
	return &Mailbox{store: store, baseURL: strings.TrimRight(baseURL, "/")}
}

func (b *Mailbox) Name() string { return "mailbox" }

func (b *Mailbox) Send(ctx context.Context, msg *Message) (*Result, error) {
	sm := StoredMessage{
		ID:        uuid.NewString(),
		From:      msg.From,
		To:        msg.To,
		Subject:   msg.Subject,
		HTML:      msg.HTML,
		Text:      msg.Text,
		CreatedAt: time.Now().UTC(),
	}
	if a := msg.Attachment; a != nil {
		sm.AttachmentName = a.Filename
		sm.AttachmentContentType = a.ContentType
		sm.AttachmentSize = len(a.Content)
	}
	if err := b.store.Save(ctx, sm); err != nil {
		return nil, err
	}
	return &Result{
		Accepted:   []string{msg.To},
		MessageID:  sm.ID,
		Transport:  b.Name(),
		PreviewURL: b.PreviewURL(sm.ID),
		SentAt:     sm.CreatedAt,
	}, nil
}

func (b *Mailbox) Verify(context.Context) error { return nil }

// Preview returns a captured message.
func (b *Mailbox) Preview(ctx context.Context, id string) (*StoredMessage, error) {
	return b.store.Get(ctx, id)
}

// PreviewURL builds the public link for a captured message.
func (b *Mailbox) PreviewURL(id string) string {
	return b.baseURL + "/api/mail/preview/" + id
}

// MemoryMailbox is an in-process MailboxStore.
type MemoryMailbox struct {
	ttl  time.Duration
	mu   sync.RWMutex
	msgs map[string]StoredMessage
}

func NewMemoryMailbox(ttl time.Duration) *MemoryMailbox {
	return &MemoryMailbox{ttl: ttl, msgs: make(map[string]StoredMessage)}
}

func (s *MemoryMailbox) Save(_ context.Context, m StoredMessage) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	now := time.Now()
	for id, old := range s.msgs {
		if s.expired(old, now) {
			delete(s.msgs, id)
		}
	}
	s.msgs[m.ID] = m
	return nil
}

func (s *MemoryMailbox) Get(_ context.Context, id string) (*StoredMessage, error) {
	s.mu.RLock()
	m, ok := s.msgs[id]
	s.mu.RUnlock()
	if !ok || s.expired(m, time.Now()) {
		return nil, ErrPreviewNotFound
	}
	return &m, nil
}

func (s *MemoryMailbox) expired(m StoredMessage, now time.Time) bool {
	return s.ttl > 0 && now.Sub(m.CreatedAt) > s.ttl
}
