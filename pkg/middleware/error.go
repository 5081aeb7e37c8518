package middleware

import (
	"net/http"
	"portfolio-server/pkg/log"
	"portfolio-server/pkg/xerrors"

	"github.com/gin-gonic/gin"
)

// StatusFor maps an error to a HTTP status code by its kind.
func StatusFor(err error) int {
	kind, ok := xerrors.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case xerrors.KindKeyNotFound:
		return http.StatusNotFound
	case xerrors.KindInvalidArgument:
		return http.StatusBadRequest
	case xerrors.KindUnauthorized:
		return http.StatusUnauthorized
	case xerrors.KindSettingNotConfigured, xerrors.KindConfigurationMissing:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

// ErrorHandler renders the last error added to the context.
// Messages of internal errors are not exposed to clients.
func ErrorHandler(logger log.ILogger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 {
			return
		}
		err := c.Errors.Last().Err
		status := StatusFor(err)
		msg := err.Error()
		if status == http.StatusInternalServerError {
			logger.WithField("path", c.Request.URL.Path).Error(err)
			msg = http.StatusText(status)
		} else if status == http.StatusServiceUnavailable {
			logger.WithField("path", c.Request.URL.Path).Error(err)
		}
		if c.Writer.Written() {
			return
		}
		c.JSON(status, gin.H{"error": msg})
	}
}
