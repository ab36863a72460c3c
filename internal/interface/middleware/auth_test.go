package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
)

type stubSessions struct{ active bool }

func (s stubSessions) SessionActive(context.Context, *helpers.Claims) (bool, error) {
	return s.active, nil
}

func newAuthEngine(jwt *helpers.JWTManager, sessions SessionChecker) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/me", Auth(jwt, sessions), func(c *gin.Context) {
		p, ok := PrincipalFrom(c)
		if !ok {
			c.Status(http.StatusInternalServerError)
			return
		}
		c.JSON(http.StatusOK, p)
	})
	return r
}

func token(t *testing.T, jwt *helpers.JWTManager) string {
	t.Helper()
	tok, _, err := jwt.GenerateAccessToken(helpers.TokenSubject{UserID: "u1", Company: "Shipper", Role: "Admin"}, "sid")
	require.NoError(t, err)
	return tok
}

func TestAuthBearer(t *testing.T) {
	jwt := helpers.NewJWTManager("s", time.Hour)
	r := newAuthEngine(jwt, nil)

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, jwt))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"role":"Admin"`)
	assert.NotEmpty(t, w.Header().Get("X-Request-ID"))
}

func TestAuthCookieFallback(t *testing.T) {
	jwt := helpers.NewJWTManager("s", time.Hour)
	r := newAuthEngine(jwt, stubSessions{active: true})

	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	req.AddCookie(&http.Cookie{Name: helpers.AccessCookie, Value: token(t, jwt)})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthRejects(t *testing.T) {
	jwt := helpers.NewJWTManager("s", time.Hour)
	other := helpers.NewJWTManager("other", time.Hour)

	tests := []struct {
		name     string
		header   string
		sessions SessionChecker
	}{
		{name: "missing", header: ""},
		{name: "not bearer", header: "Basic abc"},
		{name: "foreign signature", header: "Bearer " + token(t, other)},
		{name: "garbage", header: "Bearer abc.def.ghi"},
		{name: "session gone", header: "Bearer " + token(t, jwt), sessions: stubSessions{active: false}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := newAuthEngine(jwt, tt.sessions)
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), `"ok":false`)
		})
	}
}

func TestRequestIDKeepsValidIncoming(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/", func(c *gin.Context) { c.String(http.StatusOK, c.GetString("request_id")) })

	const id = "0b5c6a3e-7f61-4d8e-9d5e-2a4c1b7f0e11"
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", id)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, id, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "<script>")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, "<script>", w.Body.String())
}

func TestRateLimitDisabledWithoutRedis(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/", RateLimit(nil, 1, time.Minute, KeyByIP(), nil), func(c *gin.Context) { c.Status(http.StatusNoContent) })

	for i := 0; i < 3; i++ {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/", nil))
		assert.Equal(t, http.StatusNoContent, w.Code)
	}
}
