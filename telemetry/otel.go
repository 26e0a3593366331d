// Package telemetry exports the status registry through OpenTelemetry metrics.
package telemetry

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync/atomic"

	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetrichttp"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/metric/noop"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	"go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/lixenwraith/particle-pool/config"
	"github.com/lixenwraith/particle-pool/status"
)

// meterName scopes every instrument created here
const meterName = "github.com/lixenwraith/particle-pool"

// Init builds a meter provider from cfg
// Without an endpoint it returns a noop provider and a no-op shutdown
func Init(ctx context.Context, cfg config.TelemetryConfig) (metric.MeterProvider, func(context.Context) error, error) {
	endpoint := strings.TrimSpace(cfg.Endpoint)
	if endpoint == "" {
		return noop.NewMeterProvider(), func(context.Context) error { return nil }, nil
	}

	host, insecure, err := parseEndpoint(endpoint)
	if err != nil {
		return nil, nil, err
	}

	opts := []otlpmetrichttp.Option{otlpmetrichttp.WithEndpoint(host)}
	if insecure {
		opts = append(opts, otlpmetrichttp.WithInsecure())
	}
	exp, err := otlpmetrichttp.New(ctx, opts...)
	if err != nil {
		return nil, nil, fmt.Errorf("create metric exporter: %w", err)
	}

	res, err := resource.New(ctx, resource.WithAttributes(semconv.ServiceName(cfg.ServiceName)))
	if err != nil {
		return nil, nil, fmt.Errorf("create resource: %w", err)
	}

	reader := sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.Interval))
	mp := sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
	return mp, mp.Shutdown, nil
}

func parseEndpoint(raw string) (string, bool, error) {
	parsed, err := url.Parse(raw)
	if err != nil {
		return "", false, fmt.Errorf("parse otlp endpoint: %w", err)
	}
	host := parsed.Host
	if host == "" {
		host = raw
	}
	return host, parsed.Scheme != "https", nil
}

// ObserveRegistry registers one observable gauge per metric currently in reg
// Metrics added to reg afterwards are not exported
func ObserveRegistry(mp metric.MeterProvider, reg *status.Registry) error {
	meter := mp.Meter(meterName)
	var firstErr error
	record := func(err error) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	reg.Ints.Range(func(key string, v *atomic.Int64) {
		_, err := meter.Int64ObservableGauge(key,
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				o.Observe(v.Load())
				return nil
			}),
		)
		record(err)
	})

	reg.Bools.Range(func(key string, v *atomic.Bool) {
		_, err := meter.Int64ObservableGauge(key,
			metric.WithDescription("1 when set"),
			metric.WithInt64Callback(func(_ context.Context, o metric.Int64Observer) error {
				var n int64
				if v.Load() {
					n = 1
				}
				o.Observe(n)
				return nil
			}),
		)
		record(err)
	})

	reg.Floats.Range(func(key string, v *status.AtomicFloat) {
		_, err := meter.Float64ObservableGauge(key,
			metric.WithFloat64Callback(func(_ context.Context, o metric.Float64Observer) error {
				o.Observe(v.Load())
				return nil
			}),
		)
		record(err)
	})

	if firstErr != nil {
		return fmt.Errorf("register gauges: %w", firstErr)
	}
	return nil
}
