package telemetry

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// ContentMetrics counts content store operations, uploads and logins.
type ContentMetrics struct {
	operations metric.Int64Counter
	uploads    metric.Int64Counter
	logins     metric.Int64Counter
}

// NewContentMetrics registers the instruments on meter
func NewContentMetrics(meter metric.Meter) (*ContentMetrics, error) {
	if meter == nil {
		return nil, errors.New("NewContentMetrics: meter cannot be nil")
	}

	operations, err := meter.Int64Counter("portfolio.content.operations",
		metric.WithDescription("Content store operations by collection, operation and outcome"),
		metric.WithUnit("{operation}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create operations counter: %w", err)
	}
	uploads, err := meter.Int64Counter("portfolio.storage.uploads",
		metric.WithDescription("Object storage uploads by kind and outcome"),
		metric.WithUnit("{upload}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create uploads counter: %w", err)
	}
	logins, err := meter.Int64Counter("portfolio.auth.logins",
		metric.WithDescription("Dashboard login attempts by outcome"),
		metric.WithUnit("{attempt}"))
	if err != nil {
		return nil, fmt.Errorf("failed to create logins counter: %w", err)
	}

	return &ContentMetrics{operations: operations, uploads: uploads, logins: logins}, nil
}

func outcome(err error) attribute.KeyValue {
	if err != nil {
		return attribute.String("outcome", "error")
	}
	return attribute.String("outcome", "success")
}

// RecordOperation counts one store operation
func (m *ContentMetrics) RecordOperation(ctx context.Context, collection, op string, err error) {
	m.operations.Add(ctx, 1, metric.WithAttributes(
		attribute.String("collection", collection),
		attribute.String("operation", op),
		outcome(err),
	))
}

// RecordUpload counts one upload
func (m *ContentMetrics) RecordUpload(ctx context.Context, kind string, err error) {
	m.uploads.Add(ctx, 1, metric.WithAttributes(attribute.String("kind", kind), outcome(err)))
}

// RecordLogin counts one login attempt
func (m *ContentMetrics) RecordLogin(ctx context.Context, success bool) {
	m.logins.Add(ctx, 1, metric.WithAttributes(attribute.Bool("success", success)))
}

// RegisterPoolMetrics exposes connection pool statistics as observable gauges
func RegisterPoolMetrics(meter metric.Meter, db *sql.DB) error {
	open, err := meter.Int64ObservableGauge("db.client.connections.open",
		metric.WithDescription("Open database connections"))
	if err != nil {
		return err
	}
	inUse, err := meter.Int64ObservableGauge("db.client.connections.in_use",
		metric.WithDescription("Database connections in use"))
	if err != nil {
		return err
	}
	idle, err := meter.Int64ObservableGauge("db.client.connections.idle",
		metric.WithDescription("Idle database connections"))
	if err != nil {
		return err
	}

	_, err = meter.RegisterCallback(func(_ context.Context, o metric.Observer) error {
		stats := db.Stats()
		o.ObserveInt64(open, int64(stats.OpenConnections))
		o.ObserveInt64(inUse, int64(stats.InUse))
		o.ObserveInt64(idle, int64(stats.Idle))
		return nil
	}, open, inUse, idle)
	return err
}
