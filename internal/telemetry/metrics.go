// Package telemetry installs the OpenTelemetry meter provider used by the HTTP server.
package telemetry

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlpmetric/otlpmetricgrpc"
	sdkmetric "go.opentelemetry.io/otel/sdk/metric"
	sdkresource "go.opentelemetry.io/otel/sdk/resource"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"

	"cac-decision/internal/config"
)

// Shutdown flushes and stops the meter provider.
type Shutdown func(context.Context) error

func noopShutdown(context.Context) error { return nil }

// InitMetrics pushes metrics to an OTLP gRPC collector and registers the provider
// globally. When metrics are disabled it leaves the global no-op provider in place.
func InitMetrics(ctx context.Context, cfg config.Metrics) (Shutdown, error) {
	if !cfg.Enabled {
		logrus.Debug("metrics export disabled")
		return noopShutdown, nil
	}

	ctxInit, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	exp, err := otlpmetricgrpc.New(ctxInit, exporterOptions(cfg.Endpoint)...)
	if err != nil {
		return noopShutdown, fmt.Errorf("otlp metric exporter: %w", err)
	}

	mp := NewMeterProvider(cfg.ServiceName, sdkmetric.NewPeriodicReader(exp, sdkmetric.WithInterval(cfg.Interval)))
	otel.SetMeterProvider(mp)
	logrus.WithFields(logrus.Fields{
		"endpoint": cfg.Endpoint,
		"interval": cfg.Interval.String(),
	}).Info("metrics initialized")
	return mp.Shutdown, nil
}

// NewMeterProvider builds an SDK provider tagged with the service name.
func NewMeterProvider(service string, reader sdkmetric.Reader) *sdkmetric.MeterProvider {
	if service == "" {
		service = "cac-decision"
	}
	res, err := sdkresource.Merge(sdkresource.Default(), sdkresource.NewSchemaless(semconv.ServiceName(service)))
	if err != nil {
		logrus.WithError(err).Warn("metrics resource merge failed, using defaults")
		res = sdkresource.Default()
	}
	return sdkmetric.NewMeterProvider(sdkmetric.WithReader(reader), sdkmetric.WithResource(res))
}

func exporterOptions(endpoint string) []otlpmetricgrpc.Option {
	// OTEL_EXPORTER_OTLP_ENDPOINT is conventionally a URL; config files use host:port.
	if strings.Contains(endpoint, "://") {
		return []otlpmetricgrpc.Option{otlpmetricgrpc.WithEndpointURL(endpoint)}
	}
	return []otlpmetricgrpc.Option{
		otlpmetricgrpc.WithEndpoint(endpoint),
		otlpmetricgrpc.WithInsecure(),
	}
}
