//go:build unit

package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"puente-core/internal/handler/middleware"
	"puente-core/internal/pkg/errs"
	"puente-core/tests/common/httptest"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newLoggedRouter(buf *bytes.Buffer) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(buf, nil))

	r := gin.New()
	r.Use(middleware.CustomRecovery(), middleware.RequestLogging(logger), middleware.ErrorHandler())
	r.GET("/ok", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"request_id": middleware.GetRequestID(c)})
	})
	r.GET("/fail", func(c *gin.Context) {
		_ = c.Error(errs.Mark(errs.New("sku taken"), errs.ErrConflict))
	})
	r.GET("/panic", func(*gin.Context) {
		panic("boom")
	})
	return r
}

func TestRequestLogging(t *testing.T) {
	t.Run("forwarded request id is kept and echoed", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.PerformRequestWithHeaders(t, newLoggedRouter(&buf), http.MethodGet, "/ok", nil,
			map[string]string{middleware.RequestIDHeader: "gw-123"})

		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "gw-123", rec.Header().Get(middleware.RequestIDHeader))
		assert.Contains(t, rec.Body.String(), `"request_id":"gw-123"`)
		assert.Contains(t, buf.String(), "route=/ok")
	})

	t.Run("missing request id is generated", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.PerformRequestWithHeaders(t, newLoggedRouter(&buf), http.MethodGet, "/ok", nil, nil)

		id := rec.Header().Get(middleware.RequestIDHeader)
		assert.Len(t, id, 16)
	})

	t.Run("recorded error is rendered and logged at warn", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.PerformRequestWithHeaders(t, newLoggedRouter(&buf), http.MethodGet, "/fail", nil, nil)

		httptest.AssertErrorResponse(t, rec, http.StatusConflict, "Conflict")
		assert.Contains(t, buf.String(), "level=WARN")
		assert.Contains(t, buf.String(), "sku taken")
	})

	t.Run("panic becomes internal server error", func(t *testing.T) {
		var buf bytes.Buffer
		rec := httptest.PerformRequestWithHeaders(t, newLoggedRouter(&buf), http.MethodGet, "/panic", nil, nil)

		httptest.AssertErrorResponse(t, rec, http.StatusInternalServerError, "Internal server error")
	})
}

func TestContextHandler(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(middleware.NewContextHandler(slog.NewTextHandler(&buf, nil)))

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(middleware.RequestLogging(logger))
	r.GET("/ctx", func(c *gin.Context) {
		logger.InfoContext(c.Request.Context(), "inside handler")
		c.Status(http.StatusNoContent)
	})

	httptest.PerformRequestWithHeaders(t, r, http.MethodGet, "/ctx", nil,
		map[string]string{middleware.RequestIDHeader: "abc"})

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 2)
	assert.Contains(t, lines[0], "inside handler")
	assert.Contains(t, lines[0], "request_id=abc")
	assert.Contains(t, lines[1], "request completed")
	assert.Contains(t, lines[1], "request_id=abc")
}
