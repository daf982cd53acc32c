package otel

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"
	"go.opentelemetry.io/contrib/propagators/jaeger"
	"go.opentelemetry.io/contrib/propagators/ot"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/teewear/storefront/internal/config"
	"github.com/teewear/storefront/internal/log"
	"github.com/teewear/storefront/internal/otel/metric"
	"github.com/teewear/storefront/internal/otel/trace"
)

type ShutdownFunc func(context.Context) error

func newPropagator() propagation.TextMapPropagator {
	return propagation.NewCompositeTextMapPropagator(
		propagation.TraceContext{},
		propagation.Baggage{},
		jaeger.Jaeger{},
		ot.OT{},
	)
}

func InitOtelSdk(
	c context.Context,
	serviceName string,
	cfg config.Otel,
) (shutdownFuncs []ShutdownFunc, err error) {
	logger := zerolog.Ctx(c).
		With().
		Str(log.KeyTag, "otel InitOtelSdk").
		Logger()

	endpoint := fmt.Sprintf("%s:%d", cfg.Host, cfg.Port)

	logger.Info().Str(log.KeyProcess, "init propagator").Msg("initializing otel propagator")
	otel.SetTextMapPropagator(newPropagator())
	logger.Info().Str(log.KeyProcess, "init propagator").Msg("initialized otel propagator")

	logger.Info().Str(log.KeyProcess, "init tracerProvider").Msg("initializing tracerProvider")
	tracerProvider, err := trace.InitTracerProvider(c, endpoint, serviceName)
	if err != nil {
		return nil, fmt.Errorf("failed initializing tracerProvider with error=%w", err)
	}
	otel.SetTracerProvider(tracerProvider)
	shutdownFuncs = append(shutdownFuncs, tracerProvider.Shutdown)
	logger.Info().Str(log.KeyProcess, "init tracerProvider").Msg("initialized tracerProvider")

	logger.Info().Str(log.KeyProcess, "init meterProvider").Msg("initializing meterProvider")
	meterProvider, err := metric.InitMeterProvider(c, endpoint, serviceName)
	if err != nil {
		return shutdownFuncs, fmt.Errorf("failed initializing meterProvider with error=%w", err)
	}
	otel.SetMeterProvider(meterProvider)
	shutdownFuncs = append(shutdownFuncs, meterProvider.Shutdown)
	logger.Info().Str(log.KeyProcess, "init meterProvider").Msg("initialized meterProvider")

	return shutdownFuncs, nil
}

func ShutdownOtel(c context.Context, shutdownFuncs []ShutdownFunc) error {
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs error
	)
	for _, shutdown := range shutdownFuncs {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if err := shutdown(c); err != nil {
				mu.Lock()
				errs = errors.Join(errs, err)
				mu.Unlock()
			}
		}()
	}
	wg.Wait()
	return errs
}
