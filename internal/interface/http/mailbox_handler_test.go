package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/tradedocs-portal/pkg/mailer"
)

type mailboxSource struct{ mb *mailer.Mailbox }

func (s mailboxSource) Mailbox() (*mailer.Mailbox, bool) { return s.mb, s.mb != nil }

func (s mailboxSource) Current() mailer.Transport {
	if s.mb == nil {
		return nil
	}
	return s.mb
}

func newPreviewEngine(src mailboxSource) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewMailboxHandler(src, "tradedocs", quietLogger())
	r.GET("/api/mail/preview/:id", h.Preview)
	health := &HealthHandler{Mail: src}
	r.GET("/api/health", health.Health)
	return r
}

func TestPreviewRendersCapturedMessage(t *testing.T) {
	mb := mailer.NewMailbox(mailer.NewMemoryMailbox(time.Hour), "http://localhost:8080")
	res, err := mb.Send(context.Background(), &mailer.Message{
		From: "ops@co.test", To: "a@b.test", Subject: "Invoice 7",
		HTML: "<p>Total: 1</p>", Text: "Total: 1",
	})
	require.NoError(t, err)
	id := res.PreviewURL[strings.LastIndex(res.PreviewURL, "/")+1:]

	r := newPreviewEngine(mailboxSource{mb: mb})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mail/preview/"+id, nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Type"), "text/html")
	assert.NotEmpty(t, w.Header().Get("Content-Security-Policy"))
	assert.Contains(t, w.Body.String(), "Invoice 7")
	assert.Contains(t, w.Body.String(), "a@b.test")
}

func TestPreviewUnknownID(t *testing.T) {
	mb := mailer.NewMailbox(mailer.NewMemoryMailbox(time.Hour), "")
	r := newPreviewEngine(mailboxSource{mb: mb})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mail/preview/missing", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestPreviewWithoutMailbox(t *testing.T) {
	r := newPreviewEngine(mailboxSource{})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/mail/preview/x", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestHealth(t *testing.T) {
	mb := mailer.NewMailbox(nil, "")
	w := httptest.NewRecorder()
	newPreviewEngine(mailboxSource{mb: mb}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"ok":true,"mailTransport":"mailbox"}`, w.Body.String())

	w = httptest.NewRecorder()
	newPreviewEngine(mailboxSource{}).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/health", nil))
	assert.JSONEq(t, `{"ok":true}`, w.Body.String())
}
