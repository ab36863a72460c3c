// Package templates renders the pages served for captured dev mailbox messages.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	htmpl "html/template"
	"strings"
	"time"

	"github.com/oksasatya/tradedocs-portal/pkg/mailer"
)

//go:embed *.tmpl
var FS embed.FS

// PreviewPage is the name of the captured message page.
const PreviewPage = "preview"

func funcs() htmpl.FuncMap {
	return htmpl.FuncMap{
		"formatTime": func(t time.Time, layout string) string { return t.UTC().Format(layout) },
		"default": func(fallback, value string) string {
			if strings.TrimSpace(value) == "" {
				return fallback
			}
			return value
		},
		"kb": func(n int) string { return fmt.Sprintf("%.1f KB", float64(n)/1024) },
	}
}

var pages = htmpl.Must(htmpl.New("").Funcs(funcs()).ParseFS(FS, "*.html.tmpl"))

type previewData struct {
	AppName string
	Msg     *mailer.StoredMessage
}

// RenderPreview renders the page for a captured message. The message HTML is
// placed in a sandboxed iframe srcdoc, so it is shown as sent but cannot run
// against this origin.
func RenderPreview(appName string, msg *mailer.StoredMessage) (string, error) {
	var buf bytes.Buffer
	if err := pages.ExecuteTemplate(&buf, PreviewPage+".html.tmpl", previewData{AppName: appName, Msg: msg}); err != nil {
		return "", fmt.Errorf("exec %q: %w", PreviewPage, err)
	}
	return buf.String(), nil
}
