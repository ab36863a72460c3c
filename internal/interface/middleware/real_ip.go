package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// CtxRealIPKey holds the caller address resolved by RealIP.
const CtxRealIPKey = "real_ip"

// RealIP resolves the caller address once per request. Proxy headers are tried
// in order: CF-Connecting-IP, X-Real-IP, then the left-most X-Forwarded-For
// entry. Unparseable values are skipped and c.ClientIP() is the fallback.
func RealIP() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := firstIP(
			c.GetHeader("CF-Connecting-IP"),
			c.GetHeader("X-Real-IP"),
			leftMost(c.GetHeader("X-Forwarded-For")),
		)
		if ip == "" {
			ip = c.ClientIP()
		}
		c.Set(CtxRealIPKey, ip)
		c.Next()
	}
}

func firstIP(candidates ...string) string {
	for _, v := range candidates {
		if ip := net.ParseIP(strings.TrimSpace(v)); ip != nil {
			return ip.String()
		}
	}
	return ""
}

func leftMost(xff string) string {
	first, _, _ := strings.Cut(xff, ",")
	return first
}
