package middleware

import (
	"log/slog"
	"net/http"

	"puente-core/internal/handler/httperr"
	"puente-core/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

// ErrorHandler renders errors that a handler recorded without writing a body.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		if public := c.Errors.ByType(gin.ErrorTypePublic).Last(); public != nil {
			if resp, ok := public.Meta.(httperr.Response); ok {
				c.JSON(resp.Status, resp)
				return
			}
		}
		httperr.AbortWithDomainError(c, c.Errors.Last().Err)
	}
}

// CustomRecovery turns a panic into a 500 with the usual error body.
func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				err := errs.Newf("panic: %v", r)
				slog.ErrorContext(c.Request.Context(), "recovered from panic",
					"error", err, "stack", errs.ExtractStackLines(err, 12), "route", c.FullPath())
				httperr.AbortWithError(c, http.StatusInternalServerError, err, "Internal server error", nil)
			}
		}()
		c.Next()
	}
}
