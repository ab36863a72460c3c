package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/oksasatya/tradedocs-portal/internal/application"
	"github.com/oksasatya/tradedocs-portal/internal/domain/entity"
	"github.com/oksasatya/tradedocs-portal/pkg/helpers"
	"github.com/oksasatya/tradedocs-portal/pkg/response"
)

const (
	CtxUserIDKey    = "userID"
	CtxPrincipalKey = "principal"
	CtxClaimsKey    = "claims"
)

// SessionChecker reports whether the session behind a token is still live.
type SessionChecker interface {
	SessionActive(ctx context.Context, claims *helpers.Claims) (bool, error)
}

// Auth validates the access token from the Authorization header, falling back
// to the access_token cookie, and stores the caller's Principal in the context.
// When sessions is non-nil the token must also have a live session.
func Auth(jwt *helpers.JWTManager, sessions SessionChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			response.Error(c, http.StatusUnauthorized, "not authorized, token missing", nil)
			return
		}
		claims, err := jwt.ParseAccessToken(token)
		if err != nil {
			response.Error(c, http.StatusUnauthorized, "token invalid", nil)
			return
		}
		if sessions != nil {
			ok, err := sessions.SessionActive(c.Request.Context(), claims)
			if err != nil || !ok {
				response.Error(c, http.StatusUnauthorized, "session not found", nil)
				return
			}
		}

		c.Set(CtxUserIDKey, claims.UserID)
		c.Set(CtxClaimsKey, claims)
		c.Set(CtxPrincipalKey, application.PrincipalFromClaims(claims))
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	if h := c.GetHeader("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "Bearer ") {
		return strings.TrimSpace(h[7:])
	}
	if v, err := c.Cookie(helpers.AccessCookie); err == nil {
		return v
	}
	return ""
}

// PrincipalFrom returns the authenticated caller set by Auth.
func PrincipalFrom(c *gin.Context) (*entity.Principal, bool) {
	v, ok := c.Get(CtxPrincipalKey)
	if !ok {
		return nil, false
	}
	p, ok := v.(*entity.Principal)
	return p, ok
}

// ClaimsFrom returns the verified token claims set by Auth.
func ClaimsFrom(c *gin.Context) (*helpers.Claims, bool) {
	v, ok := c.Get(CtxClaimsKey)
	if !ok {
		return nil, false
	}
	cl, ok := v.(*helpers.Claims)
	return cl, ok
}
