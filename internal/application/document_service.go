package application

import (
	"context"
	"mime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/pkg/mailer"
	"github.com/oksasatya/tradedocs-portal/pkg/render"
	"github.com/oksasatya/tradedocs-portal/pkg/validation"
)

const (
	fallbackSubject     = "Document"
	fallbackFilename    = "document.html"
	fallbackContentType = "text/html"

	attachmentNotice = `<p>Please find the attached document: <strong>{{file}}</strong></p>`
)

// Mailer is the dispatch step of the send flow.
type Mailer interface {
	Send(ctx context.Context, out mailer.Outbound) (*mailer.Result, error)
}

// EventPublisher publishes document events to the audit queue.
type EventPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// DocumentArchive keeps a copy of every rendered document.
type DocumentArchive interface {
	Store(ctx context.Context, userID, eventID, html string) (string, error)
}

// DocumentService authorizes, renders and dispatches documents.
type DocumentService struct {
	Templates *TemplateService
	Mailer    Mailer
	Events    EventPublisher  // optional
	Archive   DocumentArchive // optional
	Logger    *logrus.Logger

	allowed   map[string]struct{}
	sanitizer *bluemonday.Policy
}

func NewDocumentService(templates *TemplateService, m Mailer, allowedRoles []string, logger *logrus.Logger) *DocumentService {
	allowed := make(map[string]struct{}, len(allowedRoles))
	for _, r := range allowedRoles {
		allowed[strings.ToLower(strings.TrimSpace(r))] = struct{}{}
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &DocumentService{
		Templates: templates,
		Mailer:    m,
		Logger:    logger,
		allowed:   allowed,
		sanitizer: attachmentPolicy(),
	}
}

// attachmentPolicy is the UGC policy plus the inline styles exported
// documents use for layout.
func attachmentPolicy() *bluemonday.Policy {
	p := bluemonday.UGCPolicy()
	p.AllowStyles(
		"white-space", "text-align", "vertical-align", "font-weight", "font-style",
		"font-size", "color", "background-color", "margin", "padding", "border",
		"border-collapse", "width",
	).Globally()
	return p
}

// SendInput is a template send request. The caller's role never comes from here.
type SendInput struct {
	To         string
	Subject    string
	TemplateID string
	Values     render.Values
}

// AttachmentInput sends an uploaded file instead of a rendered body.
type AttachmentInput struct {
	To          string
	Subject     string
	TemplateID  string
	Filename    string
	ContentType string
	Content     []byte
}

// SendResult is returned to the client after a successful dispatch.
type SendResult struct {
	ID         string   `json:"id"`
	Accepted   []string `json:"accepted"`
	MessageID  string   `json:"messageId,omitempty"`
	Transport  string   `json:"transport"`
	PreviewURL string   `json:"previewUrl,omitempty"`
}

// Authorize reports whether p may send documents.
func (s *DocumentService) Authorize(p *entity.Principal) error {
	if p == nil {
		return ErrForbidden
	}
	if _, ok := s.allowed[strings.ToLower(strings.TrimSpace(p.Role))]; !ok {
		return ErrForbidden
	}
	return nil
}

// Send runs validate, authorize, resolve, render and dispatch in that order and
// stops at the first failure. Nothing leaves the process before dispatch.
func (s *DocumentService) Send(ctx context.Context, p *entity.Principal, in SendInput) (*SendResult, error) {
	if !validation.IsEmail(in.To) {
		return nil, ErrInvalidRecipient
	}
	if in.TemplateID == "" {
		return nil, ErrMissingTemplate
	}
	if err := s.Authorize(p); err != nil {
		return nil, err
	}
	tpl, err := s.Templates.Resolve(ctx, in.TemplateID)
	if err != nil {
		return nil, err
	}

	html := render.Render(tpl.TemplateBody, in.Values)
	text := render.StripHTML(html)
	subject := pickSubject(in.Subject, tpl.Title)

	res, err := s.Mailer.Send(ctx, mailer.Outbound{To: in.To, Subject: subject, HTML: html, Text: text})
	if err != nil {
		return nil, err
	}
	return s.afterSend(ctx, p, tpl.ID, subject, in.To, html, "", res), nil
}

// SendAttachment sends an uploaded document as a single attachment with a short
// notice as body. HTML uploads are sanitized first.
func (s *DocumentService) SendAttachment(ctx context.Context, p *entity.Principal, in AttachmentInput) (*SendResult, error) {
	if !validation.IsEmail(in.To) {
		return nil, ErrInvalidRecipient
	}
	if err := s.Authorize(p); err != nil {
		return nil, err
	}
	if len(in.Content) == 0 {
		return nil, ErrNoContent
	}

	title := ""
	if in.TemplateID != "" {
		tpl, err := s.Templates.Resolve(ctx, in.TemplateID)
		if err != nil {
			return nil, err
		}
		title = tpl.Title
	}

	filename := in.Filename
	if filename == "" {
		filename = fallbackFilename
	}
	contentType := in.ContentType
	if contentType == "" {
		contentType = fallbackContentType
	}
	content := in.Content
	if isHTML(contentType) {
		content = s.sanitizer.SanitizeBytes(content)
	}

	html := render.Render(attachmentNotice, render.Values{"file": filename})
	subject := pickSubject(in.Subject, title)

	res, err := s.Mailer.Send(ctx, mailer.Outbound{
		To:         in.To,
		Subject:    subject,
		HTML:       html,
		Text:       render.StripHTML(html),
		Attachment: &mailer.Attachment{Filename: filename, ContentType: contentType, Content: content},
	})
	if err != nil {
		return nil, err
	}
	archived := ""
	if isHTML(contentType) {
		archived = string(content)
	}
	return s.afterSend(ctx, p, in.TemplateID, subject, in.To, archived, filename, res), nil
}

// afterSend archives and announces a sent document. Failures are logged only.
func (s *DocumentService) afterSend(ctx context.Context, p *entity.Principal, templateID, subject, to, html, attachment string, res *mailer.Result) *SendResult {
	ev := entity.DocumentSent{
		ID:         uuid.NewString(),
		TemplateID: templateID,
		To:         to,
		Subject:    subject,
		SenderID:   p.ID,
		Role:       p.Role,
		Transport:  res.Transport,
		Attachment: attachment,
		SentAt:     time.Now().UTC(),
	}
	fields := logrus.Fields{"event_id": ev.ID, "template_id": templateID, "user_id": p.ID}

	bg := context.WithoutCancel(ctx)
	if s.Archive != nil && html != "" {
		c, cancel := context.WithTimeout(bg, 5*time.Second)
		uri, err := s.Archive.Store(c, p.ID, ev.ID, html)
		cancel()
		if err != nil {
			s.Logger.WithError(err).WithFields(fields).Warn("archive document failed")
		} else {
			ev.ArchiveURI = uri
		}
	}
	if s.Events != nil {
		c, cancel := context.WithTimeout(bg, 3*time.Second)
		err := s.Events.PublishJSON(c, ev)
		cancel()
		if err != nil {
			s.Logger.WithError(err).WithFields(fields).Warn("publish document event failed")
		}
	}

	return &SendResult{
		ID:         ev.ID,
		Accepted:   res.Accepted,
		MessageID:  res.MessageID,
		Transport:  res.Transport,
		PreviewURL: res.PreviewURL,
	}
}

func pickSubject(subject, title string) string {
	if s := strings.TrimSpace(subject); s != "" {
		return s
	}
	if title != "" {
		return title
	}
	return fallbackSubject
}

func isHTML(contentType string) bool {
	mt, _, err := mime.ParseMediaType(contentType)
	return err == nil && mt == "text/html"
}
