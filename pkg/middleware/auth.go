package middleware

import (
	"crypto/subtle"
	"portfolio-server/pkg/log"
	"portfolio-server/pkg/xerrors"
	"strings"

	"github.com/gin-gonic/gin"
)

// BearerAuth rejects requests without the access token returned by token.
// An empty token disables the protected routes.
func BearerAuth(logger log.ILogger, token func() string) gin.HandlerFunc {
	return func(c *gin.Context) {
		expected := token()
		if expected == "" {
			_ = c.Error(xerrors.Newf(xerrors.KindUnauthorized, "admin access disabled"))
			c.Abort()
			return
		}
		authorization := c.GetHeader("Authorization")
		got, ok := strings.CutPrefix(authorization, "Bearer ")
		if !ok || subtle.ConstantTimeCompare([]byte(got), []byte(expected)) != 1 {
			logger.WithField("path", c.Request.URL.Path).Warn("authentication failed")
			_ = c.Error(xerrors.Newf(xerrors.KindUnauthorized, "authentication failed"))
			c.Abort()
			return
		}
		c.Next()
	}
}
