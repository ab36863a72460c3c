package mailer

import "time"

// Message is an outbound email. From is always set by the Dispatcher.
type Message struct {
	From       string
	To         string
	Subject    string
	HTML       string
	Text       string
	Attachment *Attachment
}

// Attachment is a single file sent along with the message.
type Attachment struct {
	Filename    string
	ContentType string
	Content     []byte
}

// Result describes what a transport did with a message.
type Result struct {
	Accepted   []string  `json:"accepted"`
	MessageID  string    `json:"messageId,omitempty"`
	Transport  string    `json:"transport"`
	PreviewURL string    `json:"previewUrl,omitempty"`
	SentAt     time.Time `json:"sentAt"`
}
