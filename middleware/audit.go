package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/secret-santa-backend/internal/auditlog"
)

// AuditMiddleware resolves the client IP once and puts it on the request
// context, where the services' audit calls read it.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ip := clientIP(c)
		c.Request = c.Request.WithContext(auditlog.WithIP(c.Request.Context(), ip))
		c.Next()
	}
}

// clientIP prefers proxy headers, the first X-Forwarded-For hop winning.
func clientIP(c *gin.Context) string {
	if xff := c.GetHeader("X-Forwarded-For"); xff != "" {
		first := strings.TrimSpace(strings.Split(xff, ",")[0])
		if net.ParseIP(first) != nil {
			return first
		}
	}
	for _, h := range []string{"X-Real-Ip", "CF-Connecting-IP"} {
		if v := strings.TrimSpace(c.GetHeader(h)); net.ParseIP(v) != nil {
			return v
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}
