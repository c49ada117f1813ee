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

func sqlFunc() (string, int64) {
	return `SELECT * FROM "documents" WHERE collection = 'projects'`, 3
}

func TestGormLogger_LogMode(t *testing.T) {
	gormLog := NewGormLogger(zap.NewNop(), gormlogger.Info, 0)
	other := gormLog.LogMode(gormlogger.Warn)

	assert.Equal(t, gormlogger.Info, gormLog.logLevel)
	assert.Equal(t, gormlogger.Warn, other.(*GormLogger).logLevel)
}

func TestGormLogger_Trace(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Info, 100*time.Millisecond)
	ctx, _ := WithRequestID(context.Background(), zap.NewNop(), "req-9")

	gormLog.Trace(ctx, time.Now(), sqlFunc, nil)
	gormLog.Trace(ctx, time.Now().Add(-time.Second), sqlFunc, nil)
	gormLog.Trace(ctx, time.Now(), sqlFunc, errors.New("relation does not exist"))
	gormLog.Trace(ctx, time.Now(), sqlFunc, gormlogger.ErrRecordNotFound)

	logs := recorded.All()
	require.Len(t, logs, 3)
	assert.Equal(t, "SQL Query", logs[0].Message)
	assert.Equal(t, "req-9", logs[0].ContextMap()["request_id"])
	assert.Equal(t, "Slow SQL", logs[1].Message)
	assert.Equal(t, zapcore.WarnLevel, logs[1].Level)
	assert.Equal(t, "SQL Error", logs[2].Message)
}

func TestGormLogger_Silent(t *testing.T) {
	core, recorded := observer.New(zapcore.DebugLevel)
	gormLog := NewGormLogger(zap.New(core), gormlogger.Silent, 0)

	gormLog.Trace(context.Background(), time.Now(), sqlFunc, errors.New("x"))
	gormLog.Error(context.Background(), "boom %d", 1)
	assert.Zero(t, recorded.Len())
}

func TestMapGormLogLevel(t *testing.T) {
	assert.Equal(t, gormlogger.Silent, MapGormLogLevel("silent"))
	assert.Equal(t, gormlogger.Error, MapGormLogLevel("error"))
	assert.Equal(t, gormlogger.Info, MapGormLogLevel("debug"))
	assert.Equal(t, gormlogger.Warn, MapGormLogLevel("whatever"))
}
