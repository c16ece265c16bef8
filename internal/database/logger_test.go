package database

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
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"warrantyhub/internal/domain"
)

func TestConnect_LogsFailedQueries(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)

	db, err := Connect("file:gorm_logger?mode=memory&cache=shared", zap.New(core))
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	require.NoError(t, Migrate(db))

	var u domain.User
	err = db.First(&u, 42).Error
	require.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.Zero(t, logs.FilterMessage("query failed").Len())

	err = db.Exec("SELECT * FROM missing_table").Error
	require.Error(t, err)
	failed := logs.FilterMessage("query failed").All()
	require.Len(t, failed, 1)
	assert.Equal(t, zapcore.ErrorLevel, failed[0].Level)
	assert.Contains(t, failed[0].ContextMap()["sql"], "missing_table")
}

func TestGormLogger_Levels(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	l := newGormLogger(zap.New(core), logger.Warn)
	sql := func() (string, int64) { return "SELECT 1", 1 }
	ctx := context.Background()

	l.Trace(ctx, time.Now(), sql, nil)
	assert.Zero(t, logs.Len())

	l.Trace(ctx, time.Now().Add(-time.Second), sql, nil)
	assert.Equal(t, 1, logs.FilterMessage("slow query").Len())

	l.Trace(ctx, time.Now(), sql, errors.New("boom"))
	assert.Equal(t, 1, logs.FilterMessage("query failed").Len())

	l.LogMode(logger.Silent).Trace(ctx, time.Now(), sql, errors.New("boom"))
	assert.Equal(t, 1, logs.FilterMessage("query failed").Len())

	l.Info(ctx, "migrated %d tables", 6)
	assert.Zero(t, logs.FilterMessage("migrated 6 tables").Len())
	l.LogMode(logger.Info).Info(ctx, "migrated %d tables", 6)
	assert.Equal(t, 1, logs.FilterMessage("migrated 6 tables").Len())
}
