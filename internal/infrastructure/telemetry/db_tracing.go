package telemetry

import (
	"time"

	"github.com/uptrace/opentelemetry-go-extra/otelgorm"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// DBTracingConfig holds configuration for database tracing.
type DBTracingConfig struct {
	Enabled         bool
	LogFullSQL      bool          // include query variables in spans
	SlowQueryThresh time.Duration // default 200ms
	DBSystem        string
}

// RegisterDBTracing installs otelgorm and a slow query logger on db
func RegisterDBTracing(db *gorm.DB, cfg DBTracingConfig, logger *zap.Logger) error {
	if !cfg.Enabled {
		return nil
	}

	opts := []otelgorm.Option{otelgorm.WithDBName(cfg.DBSystem)}
	if !cfg.LogFullSQL {
		opts = append(opts, otelgorm.WithoutQueryVariables())
	}
	if err := db.Use(otelgorm.NewPlugin(opts...)); err != nil {
		return err
	}

	thresh := cfg.SlowQueryThresh
	if thresh <= 0 {
		thresh = 200 * time.Millisecond
	}
	if err := registerSlowQueryLog(db, thresh, logger); err != nil {
		return err
	}

	logger.Info("Database tracing enabled",
		zap.String("db_system", cfg.DBSystem),
		zap.Duration("slow_query_threshold", thresh),
	)
	return nil
}

const queryStartKey = "telemetry:query_start"

func registerSlowQueryLog(db *gorm.DB, thresh time.Duration, logger *zap.Logger) error {
	before := func(tx *gorm.DB) {
		tx.InstanceSet(queryStartKey, time.Now())
	}
	after := func(tx *gorm.DB) {
		v, ok := tx.InstanceGet(queryStartKey)
		if !ok {
			return
		}
		start, ok := v.(time.Time)
		if !ok {
			return
		}
		if elapsed := time.Since(start); elapsed >= thresh {
			logger.Warn("Slow query",
				zap.String("table", tx.Statement.Table),
				zap.Duration("elapsed", elapsed),
				zap.Int64("rows", tx.RowsAffected),
			)
		}
	}

	cb := db.Callback()
	for _, reg := range []struct {
		name string
		err  error
	}{
		{"create", cb.Create().Before("gorm:create").Register("telemetry:before_create", before)},
		{"create", cb.Create().After("gorm:create").Register("telemetry:after_create", after)},
		{"query", cb.Query().Before("gorm:query").Register("telemetry:before_query", before)},
		{"query", cb.Query().After("gorm:query").Register("telemetry:after_query", after)},
		{"update", cb.Update().Before("gorm:update").Register("telemetry:before_update", before)},
		{"update", cb.Update().After("gorm:update").Register("telemetry:after_update", after)},
		{"delete", cb.Delete().Before("gorm:delete").Register("telemetry:before_delete", before)},
		{"delete", cb.Delete().After("gorm:delete").Register("telemetry:after_delete", after)},
	} {
		if reg.err != nil {
			return reg.err
		}
	}
	return nil
}
