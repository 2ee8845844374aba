package middleware

import (
	"crypto/subtle"
	"net/http"
	"strings"

	"github.com/tettoewai/restaurant-pos-sub001/internal/apierror"

	"github.com/gin-gonic/gin"
)

// CronAuth guards the scheduler endpoints with a shared bearer secret.
// An empty secret disables the check for local development.
func CronAuth(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if secret == "" {
			c.Next()
			return
		}
		header := c.GetHeader("Authorization")
		token := strings.TrimPrefix(header, "Bearer ")
		if header == token || subtle.ConstantTimeCompare([]byte(token), []byte(secret)) != 1 {
			c.AbortWithStatusJSON(http.StatusUnauthorized, apierror.New("Authentication required"))
			return
		}
		c.Next()
	}
}
