package middleware

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/Divyanshi070700/Undiyu-2/internal/shared/apperr"
)

// RequireAdmin guards the admin routes with basic auth. The password is
// compared against a bcrypt hash from config; an empty hash disables the
// routes entirely.
func RequireAdmin(user, passwordHash string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if passwordHash == "" {
			Fail(c, apperr.NotFoundErr("Not found."))
			return
		}

		u, p, ok := c.Request.BasicAuth()
		if !ok {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			Fail(c, apperr.UnauthorizedErr("Authentication required."))
			return
		}

		userOK := subtle.ConstantTimeCompare([]byte(u), []byte(user)) == 1
		passOK := bcrypt.CompareHashAndPassword([]byte(passwordHash), []byte(p)) == nil
		if !userOK || !passOK {
			c.Header("WWW-Authenticate", `Basic realm="admin"`)
			Fail(c, apperr.UnauthorizedErr("Invalid credentials."))
			return
		}

		c.Next()
	}
}
