package logger

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	obscontext "github.com/smallbiznis/waterline/internal/observability/context"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func TestWithContextAddsCorrelationFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	base := zap.New(core)

	ctx := obscontext.WithRequestID(context.Background(), "req-9")
	ctx = obscontext.WithActor(ctx, "admin", "1")
	ctx = obscontext.WithCorrelationID(ctx, "cid-1")

	WithContext(ctx, base).Info("hello")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		fields := entries[0].ContextMap()
		assert.Equal(t, "req-9", fields["request_id"])
		assert.Equal(t, "cid-1", fields["correlation_id"])
		assert.Equal(t, "admin", fields["actor_type"])
		assert.Equal(t, "1", fields["actor_id"])
	}
}

func TestGinMiddlewareSetsRequestAndCorrelationHeaders(t *testing.T) {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.Use(GinMiddleware(MiddlewareConfig{}))

	var seenRequestID string
	router.GET("/ping", func(c *gin.Context) {
		seenRequestID = obscontext.RequestIDFromContext(c.Request.Context())
		c.Status(http.StatusNoContent)
	})

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.Header.Set("X-Request-Id", "fixed-id")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusNoContent, resp.Code)
	assert.Equal(t, "fixed-id", resp.Header().Get("X-Request-Id"))
	assert.Equal(t, "fixed-id", seenRequestID)
	assert.NotEmpty(t, resp.Header().Get(obscontext.CorrelationHeader))
}

func TestOperationFromSQL(t *testing.T) {
	assert.Equal(t, "SELECT", operationFromSQL("select * from clients"))
	assert.Equal(t, "UPDATE", operationFromSQL("UPDATE pumps SET state = 'ON'"))
	assert.Equal(t, "DELETE", operationFromSQL("delete from feedbacks where id = 3"))
	assert.Equal(t, "UNKNOWN", operationFromSQL(""))
}

func TestWithContextOmitsAbsentFields(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)

	WithContext(context.Background(), zap.New(core)).Info("bare")

	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Empty(t, entries[0].ContextMap())
	}
}

func TestGormLoggerSkipsRecordNotFound(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	restore := zap.ReplaceGlobals(zap.New(core))
	defer restore()

	l := NewGormLogger(time.Second)
	stmt := func() (string, int64) { return "SELECT * FROM reservoirs WHERE id = 7", 0 }

	l.Trace(context.Background(), time.Now(), stmt, gormlogger.ErrRecordNotFound)
	assert.Zero(t, logs.Len())

	l.Trace(context.Background(), time.Now(), stmt, errors.New("no such table: reservoirs"))
	entries := logs.All()
	if assert.Len(t, entries, 1) {
		assert.Equal(t, zap.ErrorLevel, entries[0].Level)
		assert.Equal(t, "SELECT", entries[0].ContextMap()["operation"])
	}
}

func TestRequestLevel(t *testing.T) {
	assert.Equal(t, zap.DebugLevel, requestLevel("/health", http.StatusOK))
	assert.Equal(t, zap.ErrorLevel, requestLevel("/admin/pumps/", http.StatusInternalServerError))
	assert.Equal(t, zap.WarnLevel, requestLevel("/login/", http.StatusTooManyRequests))
	assert.Equal(t, zap.InfoLevel, requestLevel("/home-stats/", http.StatusOK))
}
