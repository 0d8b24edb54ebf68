package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// SharerHeader carries the acting user's identifier. It is a plain,
// unauthenticated value; resolving it to a known user happens in the
// usecase layer, which is why an unknown id surfaces as a permission
// failure rather than unauthorized-at-the-edge.
const SharerHeader = "X-Sharer-User-Id"

const ctxSharerIDKey = "sharer_id"

// RequireSharerID parses the identity header into the request context.
// A missing or malformed header never reaches a handler.
func RequireSharerID() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw := c.GetHeader(SharerHeader)
		if raw == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{"message": SharerHeader + " header required"},
			})
			return
		}

		id, err := uuid.Parse(raw)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
				"error": gin.H{"message": "invalid " + SharerHeader + " header"},
			})
			return
		}

		c.Set(ctxSharerIDKey, id)
		c.Next()
	}
}

func GetSharerID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxSharerIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}
