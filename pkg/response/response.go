package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// APIResponse is the envelope every JSON endpoint returns.
type APIResponse[T any] struct {
	OK        bool              `json:"ok"`
	Status    int               `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	RequestID string            `json:"request_id,omitempty"`
	Message   string            `json:"message,omitempty"`
	Error     string            `json:"error,omitempty"`
	Details   map[string]string `json:"details,omitempty"`
	Data      T                 `json:"data,omitempty"`
	Meta      interface{}       `json:"meta,omitempty"`
}

// Build returns a success envelope without writing it.
func Build[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) APIResponse[T] {
	if status == 0 {
		status = http.StatusOK
	}
	return APIResponse[T]{
		OK:        true,
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Message:   message,
		Data:      data,
		Meta:      meta,
	}
}

// Success writes a success envelope.
func Success[T any](ctx *gin.Context, status int, data T, message string, meta interface{}) {
	res := Build(ctx, status, data, message, meta)
	ctx.JSON(res.Status, res)
}

// Error writes a failure envelope and aborts the chain. Only message reaches the
// client; details are field level validation messages.
func Error(ctx *gin.Context, status int, message string, details map[string]string) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	ctx.AbortWithStatusJSON(status, APIResponse[any]{
		OK:        false,
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: ctx.GetString("request_id"),
		Error:     message,
		Details:   details,
	})
}
