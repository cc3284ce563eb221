package middleware

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/libreria/backend/internal/interfaces/http/dto"
)

// BodyLimit caps request payloads at maxBytes. A non-positive limit
// disables the check.
func BodyLimit(maxBytes int64) gin.HandlerFunc {
	return func(c *gin.Context) {
		if maxBytes <= 0 || c.Request.Body == nil || c.Request.Body == http.NoBody {
			c.Next()
			return
		}
		if c.Request.ContentLength > maxBytes {
			c.AbortWithStatusJSON(http.StatusRequestEntityTooLarge, dto.Failure(
				dto.ErrCodeRequestTooLarge,
				fmt.Sprintf("Request body is larger than %d bytes", maxBytes),
				GetRequestID(c),
			))
			return
		}
		// Chunked bodies have no declared length; binding fails once the
		// reader passes the cap.
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
		c.Next()
	}
}
