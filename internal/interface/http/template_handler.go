package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/tradedocs-portal/internal/application"
	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/internal/interface/middleware"
	"github.com/oksasatya/tradedocs-portal/pkg/render"
	"github.com/oksasatya/tradedocs-portal/pkg/response"
	"github.com/oksasatya/tradedocs-portal/pkg/validation"
)

type TemplateHandler struct {
	Templates      *application.TemplateService
	Documents      *application.DocumentService
	Logger         *logrus.Logger
	MaxUploadBytes int64
}

func NewTemplateHandler(templates *application.TemplateService, documents *application.DocumentService, logger *logrus.Logger, maxUploadBytes int64) *TemplateHandler {
	if maxUploadBytes <= 0 {
		maxUploadBytes = 10 << 20
	}
	return &TemplateHandler{Templates: templates, Documents: documents, Logger: logger, MaxUploadBytes: maxUploadBytes}
}

// sendRequest is the JSON send body. A "from" field, if present, is ignored.
type sendRequest struct {
	To         string         `json:"to"`
	Subject    string         `json:"subject"`
	TemplateID string         `json:"templateId" binding:"omitempty,templateid"`
	Values     map[string]any `json:"values"`
}

// sendResponse is the envelope plus the dispatch info and, for the dev
// mailbox, a top-level previewUrl.
type sendResponse struct {
	response.APIResponse[any]
	Info       *application.SendResult `json:"info"`
	PreviewURL string                  `json:"previewUrl,omitempty"`
}

// List GET /api/templates
func (h *TemplateHandler) List(c *gin.Context) {
	list, err := h.Templates.List(c.Request.Context())
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "templates", gin.H{"count": len(list)})
}

// Search GET /api/templates/search?q=
func (h *TemplateHandler) Search(c *gin.Context) {
	list, err := h.Templates.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	response.Success(c, http.StatusOK, list, "templates", gin.H{"count": len(list), "q": c.Query("q")})
}

// Send POST /api/send and /api/templates/send. Accepts JSON or a multipart form
// with an optional file.
func (h *TemplateHandler) Send(c *gin.Context) {
	p, _ := middleware.PrincipalFrom(c)
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)

	if strings.HasPrefix(c.ContentType(), "multipart/") {
		h.sendMultipart(c, p)
		return
	}

	var req sendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.badPayload(c, err)
		return
	}
	res, err := h.Documents.Send(c.Request.Context(), p, application.SendInput{
		To:         strings.TrimSpace(req.To),
		Subject:    req.Subject,
		TemplateID: req.TemplateID,
		Values:     render.ValuesFrom(req.Values),
	})
	h.respond(c, res, err, "Email sent")
}

func (h *TemplateHandler) sendMultipart(c *gin.Context, p *entity.Principal) {
	if err := c.Request.ParseMultipartForm(h.MaxUploadBytes); err != nil {
		h.badPayload(c, err)
		return
	}
	to := strings.TrimSpace(c.PostForm("to"))
	subject := c.PostForm("subject")
	templateID := c.PostForm("templateId")
	if templateID != "" && !validation.IsTemplateID(templateID) {
		response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"templateId": "must be a template id"})
		return
	}

	fh, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		values := map[string]any{}
		if raw := strings.TrimSpace(c.PostForm("values")); raw != "" {
			if err := json.Unmarshal([]byte(raw), &values); err != nil {
				response.Error(c, http.StatusBadRequest, "invalid payload", map[string]string{"values": "must be valid JSON"})
				return
			}
		}
		res, err := h.Documents.Send(c.Request.Context(), p, application.SendInput{
			To:         to,
			Subject:    subject,
			TemplateID: templateID,
			Values:     render.ValuesFrom(values),
		})
		h.respond(c, res, err, "Email sent")
		return
	}
	if err != nil {
		h.badPayload(c, err)
		return
	}

	f, err := fh.Open()
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	defer f.Close()
	content, err := io.ReadAll(f)
	if err != nil {
		h.badPayload(c, err)
		return
	}

	res, err := h.Documents.SendAttachment(c.Request.Context(), p, application.AttachmentInput{
		To:          to,
		Subject:     subject,
		TemplateID:  templateID,
		Filename:    fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Content:     content,
	})
	h.respond(c, res, err, "Email sent (with attachment)")
}

func (h *TemplateHandler) respond(c *gin.Context, res *application.SendResult, err error, msg string) {
	if err != nil {
		fail(c, h.Logger, err)
		return
	}
	c.JSON(http.StatusOK, sendResponse{
		APIResponse: response.Build[any](c, http.StatusOK, nil, msg, nil),
		Info:        res,
		PreviewURL:  res.PreviewURL,
	})
}

func (h *TemplateHandler) badPayload(c *gin.Context, err error) {
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		response.Error(c, http.StatusBadRequest, "payload too large", nil)
		return
	}
	response.Error(c, http.StatusBadRequest, "invalid payload", validation.ToDetails(err))
}
