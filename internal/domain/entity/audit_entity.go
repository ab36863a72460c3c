package entity

import "time"

// DocumentSent records one successful document dispatch.
type DocumentSent struct {
	ID         string    `json:"id"`
	TemplateID string    `json:"template_id"`
	To         string    `json:"to"`
	Subject    string    `json:"subject"`
	SenderID   string    `json:"sender_id"`
	Role       string    `json:"role"`
	Transport  string    `json:"transport"`
	Attachment string    `json:"attachment,omitempty"`
	ArchiveURI string    `json:"archive_uri,omitempty"`
	SentAt     time.Time `json:"sent_at"`
}
