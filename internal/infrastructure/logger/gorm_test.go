package logger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	gormlogger "gorm.io/gorm/logger"
)

func newObservedGormLogger(level gormlogger.LogLevel) (*GormLogger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return NewGormLogger(zap.New(core), level), logs
}

func sqlTrace(sql string) func() (string, int64) {
	return func() (string, int64) { return sql, 1 }
}

func TestGormLogger_TraceQuery(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Info)

	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-7")
	gl.Trace(ctx, time.Now(), sqlTrace("SELECT * FROM orders"), nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sql", entries[0].Message)
	fields := entries[0].ContextMap()
	assert.Equal(t, "SELECT * FROM orders", fields["sql"])
	assert.Equal(t, "req-7", fields["request_id"])
	assert.EqualValues(t, 1, fields["rows"])
}

func TestGormLogger_TraceError(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), sqlTrace("INSERT INTO orders"), errors.New("constraint violated"))

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "sql error", entries[0].Message)
	assert.Equal(t, zapcore.ErrorLevel, entries[0].Level)
}

func TestGormLogger_RecordNotFoundSuppressed(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Warn)

	gl.Trace(context.Background(), time.Now(), sqlTrace("SELECT 1"), gormlogger.ErrRecordNotFound)

	assert.Empty(t, logs.All())
}

func TestGormLogger_SlowQuery(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Warn)

	begin := time.Now().Add(-2 * gormSlowThreshold)
	gl.Trace(context.Background(), begin, sqlTrace("SELECT pg_sleep(1)"), nil)

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "slow sql", entries[0].Message)
	assert.Equal(t, zapcore.WarnLevel, entries[0].Level)
}

func TestGormLogger_SilentLogsNothing(t *testing.T) {
	gl, logs := newObservedGormLogger(gormlogger.Silent)

	gl.Trace(context.Background(), time.Now(), sqlTrace("SELECT 1"), errors.New("boom"))

	assert.Empty(t, logs.All())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("anything"))
}

func TestGormLogger_LogMode(t *testing.T) {
	gl, _ := newObservedGormLogger(gormlogger.Warn)

	quieter := gl.LogMode(gormlogger.Silent)
	assert.NotSame(t, gl, quieter)
	assert.Equal(t, gormlogger.Warn, gl.logLevel)
}
