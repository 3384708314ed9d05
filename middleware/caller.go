package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sharath018/secret-santa-backend/internal/apperr"
	"github.com/sharath018/secret-santa-backend/utils"
)

// CallerHeader carries the caller's email. Identity is whatever the client
// claims here; organizer rights are decided by comparing it to stored records.
const CallerHeader = "X-User-Email"

const callerEmailKey = "caller_email"

// RequireCaller rejects requests without a well-formed caller email.
func RequireCaller() gin.HandlerFunc {
	return func(c *gin.Context) {
		email := utils.NormalizeEmail(c.GetHeader(CallerHeader))
		if !utils.IsValidEmail(email) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid " + CallerHeader + " header"})
			return
		}
		c.Set(callerEmailKey, email)
		c.Next()
	}
}

// CallerEmail returns the email set by RequireCaller.
func CallerEmail(c *gin.Context) string {
	return c.GetString(callerEmailKey)
}

// RespondError writes err with the status of its kind. Untagged errors are
// logged by gin and shown as a generic message.
func RespondError(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		_ = c.Error(err)
	}
	c.JSON(status, gin.H{"error": apperr.Message(err)})
}
