package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"io.dreamcanvas.services/internal/metrics"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func observedLogger() (*zap.SugaredLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return zap.New(core).Sugar(), logs
}

func serve(r *gin.Engine, method, path string, header http.Header) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(method, path, nil)
	for k, v := range header {
		req.Header[k] = v
	}
	r.ServeHTTP(rr, req)
	return rr
}

func TestRequestIDMiddleware_Generates(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	var seen string
	r.GET("/x", func(c *gin.Context) {
		seen = c.GetString("request_id")
		c.Status(http.StatusOK)
	})

	rr := serve(r, http.MethodGet, "/x", nil)

	require.NotEmpty(t, seen)
	assert.Equal(t, seen, rr.Header().Get(RequestIDHeader))
}

func TestRequestIDMiddleware_Propagates(t *testing.T) {
	r := gin.New()
	r.Use(RequestIDMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := serve(r, http.MethodGet, "/x", http.Header{RequestIDHeader: {"abc-123"}})

	assert.Equal(t, "abc-123", rr.Header().Get(RequestIDHeader))
}

func TestRequestLoggingMiddleware(t *testing.T) {
	logger, logs := observedLogger()
	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLoggingMiddleware(logger))
	r.GET("/ok", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/missing", func(c *gin.Context) { c.JSON(http.StatusNotFound, gin.H{"error": "Not found"}) })

	serve(r, http.MethodGet, "/ok", nil)
	serve(r, http.MethodGet, "/missing", nil)

	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, "/ok", completed[0].ContextMap()["route"])

	clientErrs := logs.FilterMessage("request rejected").All()
	require.Len(t, clientErrs, 1)
	assert.Equal(t, zapcore.WarnLevel, clientErrs[0].Level)
	assert.Contains(t, clientErrs[0].ContextMap()["response"], "Not found")
}

func TestRequestLoggingMiddleware_FallbackAndSchema(t *testing.T) {
	logger, logs := observedLogger()
	r := gin.New()
	r.Use(RequestIDMiddleware(), RequestLoggingMiddleware(logger))
	r.GET("/all", func(c *gin.Context) {
		c.Set(ContextKeyFallback, "unavailable")
		c.JSON(http.StatusOK, []string{})
	})
	r.GET("/user/:id/dreams", func(c *gin.Context) {
		c.Set(ContextKeySchema, "old")
		c.JSON(http.StatusOK, []string{})
	})

	serve(r, http.MethodGet, "/all", nil)
	serve(r, http.MethodGet, "/user/3/dreams", nil)

	sampled := logs.FilterMessage("request served sample dreams").All()
	require.Len(t, sampled, 1)
	assert.Equal(t, zapcore.InfoLevel, sampled[0].Level)
	assert.Equal(t, "unavailable", sampled[0].ContextMap()["fallback"])

	completed := logs.FilterMessage("request completed").All()
	require.Len(t, completed, 1)
	assert.Equal(t, "old", completed[0].ContextMap()["schema"])
	assert.Equal(t, "/user/:id/dreams", completed[0].ContextMap()["route"])
}

func TestRequestLoggingMiddleware_ServerError(t *testing.T) {
	logger, logs := observedLogger()
	r := gin.New()
	r.Use(RequestLoggingMiddleware(logger))
	r.GET("/boom", func(c *gin.Context) { c.JSON(http.StatusInternalServerError, gin.H{"error": "boom"}) })

	serve(r, http.MethodGet, "/boom", nil)

	failed := logs.FilterMessage("request failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Contains(t, failed[0].ContextMap()["response"], "boom")
}

func TestBodyLogWriter_CapsCapturedBody(t *testing.T) {
	logger, logs := observedLogger()
	r := gin.New()
	r.Use(RequestLoggingMiddleware(logger))
	big := strings.Repeat("x", maxLoggedBody*2)
	r.GET("/big", func(c *gin.Context) { c.String(http.StatusBadRequest, big) })

	rr := serve(r, http.MethodGet, "/big", nil)

	assert.Len(t, rr.Body.String(), maxLoggedBody*2)
	entries := logs.FilterMessage("request rejected").All()
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].ContextMap()["response"], maxLoggedBody)
}

func TestRecoveryMiddleware(t *testing.T) {
	logger, logs := observedLogger()
	r := gin.New()
	r.Use(RequestIDMiddleware(), RecoveryMiddleware(logger))
	r.GET("/panic", func(c *gin.Context) { panic("kaboom") })

	rr := serve(r, http.MethodGet, "/panic", http.Header{RequestIDHeader: {"rid-1"}})

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	assert.JSONEq(t, `{"error":"Internal server error","request_id":"rid-1"}`, rr.Body.String())
	assert.Equal(t, 1, logs.FilterMessage("panic recovered").Len())
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware())
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	rr := serve(r, http.MethodOptions, "/x", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))

	rr = serve(r, http.MethodGet, "/x", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "*", rr.Header().Get("Access-Control-Allow-Origin"))
}

func TestMetricsMiddleware_UsesRouteTemplate(t *testing.T) {
	m := metrics.New("user-portfolio")
	r := gin.New()
	r.Use(MetricsMiddleware(m))
	r.GET("/user/:id/dreams", func(c *gin.Context) { c.Status(http.StatusOK) })

	serve(r, http.MethodGet, "/user/7/dreams", nil)
	serve(r, http.MethodGet, "/user/8/dreams", nil)
	serve(r, http.MethodGet, "/nope", nil)

	body := scrape(t, m)
	assert.Contains(t, body, `path="/user/:id/dreams",service="user-portfolio",status="200"} 2`)
	assert.Contains(t, body, `path="unmatched"`)
	assert.Contains(t, body, `dreamcanvas_http_inflight_requests{service="user-portfolio"} 0`)
}

func scrape(t *testing.T, m *metrics.Metrics) string {
	t.Helper()
	rr := httptest.NewRecorder()
	m.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	return rr.Body.String()
}
