package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/Divyanshi070700/Undiyu-2/internal/http/cartcookie"
)

const CtxKeyCartSession = "cart_session"

// CartSession pins the request to a cart session: an existing signed cookie
// is reused, otherwise a fresh session id is minted and set. Every request
// downstream can rely on a session id being present.
func CartSession(ck *cartcookie.Codec) gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, ok := ck.GetSessionID(c)
		if !ok {
			sid = uuid.NewString()
			ck.Set(c, sid)
		}
		c.Set(CtxKeyCartSession, sid)
		c.Next()
	}
}

func CartSessionID(c *gin.Context) string {
	if v, ok := c.Get(CtxKeyCartSession); ok {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
