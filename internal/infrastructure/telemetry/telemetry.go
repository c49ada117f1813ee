package telemetry

import (
	"context"
	"errors"

	"github.com/portfolio/backend/internal/infrastructure/config"
	"go.opentelemetry.io/otel/metric"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// meterName scopes the application's instruments
const meterName = "github.com/portfolio/backend"

// Providers bundles everything Setup started so it can be shut down together.
type Providers struct {
	Tracer   *TracerProvider
	Meter    *MeterProvider
	Logs     *LoggerProvider
	Profiler *Profiler
	Metrics  *ContentMetrics
}

// Setup starts the providers cfg enables. When a provider fails to start,
// those already running are shut down.
func Setup(ctx context.Context, cfg config.TelemetryConfig, logger *zap.Logger) (*Providers, error) {
	p := &Providers{}
	var err error

	p.Tracer, err = NewTracerProvider(ctx, Config{
		Enabled:           cfg.Enabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		SamplingRatio:     cfg.SamplingRatio,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger)
	if err != nil {
		return nil, err
	}

	p.Meter, err = NewMeterProvider(ctx, MetricsConfig{
		Enabled:           cfg.MetricsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}

	p.Logs, err = NewLoggerProvider(ctx, LogsConfig{
		Enabled:           cfg.LogsEnabled,
		CollectorEndpoint: cfg.CollectorEndpoint,
		ServiceName:       cfg.ServiceName,
		Insecure:          cfg.Insecure,
	}, logger)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}

	p.Profiler, err = NewProfiler(ProfilerConfig{
		Enabled:         cfg.ProfilingEnabled,
		ServerAddress:   cfg.PyroscopeAddress,
		ApplicationName: cfg.ServiceName,
	}, logger)
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	if cfg.SpanProfiles && p.Profiler.IsEnabled() {
		p.Tracer.EnableSpanProfiles()
	}

	p.Metrics, err = NewContentMetrics(p.AppMeter())
	if err != nil {
		_ = p.Shutdown(ctx)
		return nil, err
	}
	return p, nil
}

// AppMeter returns the application's meter
func (p *Providers) AppMeter() metric.Meter {
	return p.Meter.Meter(meterName)
}

// Logger tees logger into OTEL logs when they are enabled
func (p *Providers) Logger(logger *zap.Logger, level zapcore.Level) *zap.Logger {
	return p.Logs.Bridge(logger, level)
}

// DBTracing returns the database tracing settings for cfg
func DBTracing(cfg config.TelemetryConfig, driver string) DBTracingConfig {
	system := "postgresql"
	if driver == config.DriverSQLite {
		system = "sqlite"
	}
	return DBTracingConfig{
		Enabled:         cfg.Enabled && cfg.DBTraceEnabled,
		LogFullSQL:      cfg.DBLogFullSQL,
		SlowQueryThresh: cfg.DBSlowQueryThresh,
		DBSystem:        system,
	}
}

// Shutdown stops everything in reverse start order
func (p *Providers) Shutdown(ctx context.Context) error {
	var errs []error
	if p.Profiler != nil {
		errs = append(errs, p.Profiler.Stop())
	}
	if p.Logs != nil {
		errs = append(errs, p.Logs.Shutdown(ctx))
	}
	if p.Meter != nil {
		errs = append(errs, p.Meter.Shutdown(ctx))
	}
	if p.Tracer != nil {
		errs = append(errs, p.Tracer.Shutdown(ctx))
	}
	return errors.Join(errs...)
}
