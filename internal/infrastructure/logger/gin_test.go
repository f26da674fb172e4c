package logger

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func ginTestRouter(t *testing.T) (*gin.Engine, *observer.ObservedLogs) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	core, logs := observer.New(zapcore.InfoLevel)
	log := zap.New(core)

	engine := gin.New()
	// mimic the request ID middleware so the log line picks the ID up
	engine.Use(func(c *gin.Context) {
		ctx, _ := WithRequestID(c.Request.Context(), log, "req-1")
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	})
	engine.Use(GinMiddleware(log))
	engine.Use(Recovery(log))
	return engine, logs
}

func TestGinMiddleware_LogsRequestFields(t *testing.T) {
	engine, logs := ginTestRouter(t)
	engine.GET("/items/:id", func(c *gin.Context) {
		c.String(http.StatusOK, "ok")
	})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/items/42?verbose=1", nil)
	engine.ServeHTTP(rec, req)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, zapcore.InfoLevel, entries[0].Level)

	fields := entries[0].ContextMap()
	assert.Equal(t, "req-1", fields["request_id"])
	assert.Equal(t, "GET", fields["method"])
	assert.Equal(t, "/items/42", fields["path"])
	assert.Equal(t, "/items/:id", fields["route"])
	assert.EqualValues(t, http.StatusOK, fields["status"])
	assert.Equal(t, "verbose=1", fields["query"])
}

func TestGinMiddleware_LevelTracksStatus(t *testing.T) {
	engine, logs := ginTestRouter(t)
	engine.GET("/missing", func(c *gin.Context) {
		c.Status(http.StatusNotFound)
	})
	engine.GET("/broken", func(c *gin.Context) {
		c.Status(http.StatusInternalServerError)
	})

	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/missing", nil))
	engine.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/broken", nil))

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
	assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
}

func TestRecovery_TurnsPanicInto500(t *testing.T) {
	engine, logs := ginTestRouter(t)
	engine.GET("/panic", func(c *gin.Context) {
		panic("boom")
	})

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var recovered bool
	for _, entry := range logs.All() {
		if entry.Message == "panic recovered" {
			recovered = true
			assert.Equal(t, "boom", entry.ContextMap()["error"])
		}
	}
	assert.True(t, recovered)
}
