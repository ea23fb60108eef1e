package gateway

import (
	"context"
	"errors"
	"mindmate/internal/models"
	"mindmate/internal/providers"
	"time"
)

type InstrumentedGateway struct {
	next    Gateway
	metrics providers.MetricsProviderInterface
	logger  providers.Logger
}

func NewInstrumentedGateway(next Gateway, metrics providers.MetricsProviderInterface, logger providers.Logger) *InstrumentedGateway {
	return &InstrumentedGateway{
		next:    next,
		metrics: metrics,
		logger:  logger,
	}
}

func outcomeOf(err error) string {
	if err == nil {
		return "ok"
	}
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind.String()
	}
	return "error"
}

func (g *InstrumentedGateway) Invoke(ctx context.Context, operation string, payload map[string]any) (*models.RawPayload, error) {
	start := time.Now()
	raw, err := g.next.Invoke(ctx, operation, payload)
	duration := time.Since(start)

	outcome := outcomeOf(err)
	g.metrics.IncOperationsTotal(operation, outcome)
	g.metrics.ObserveOperationDuration(operation, duration)

	if err != nil {
		g.logger.Warnf(providers.TypeGateway, "%s failed after %s: %s", operation, duration, err)
		return nil, err
	}
	g.logger.Debugf(providers.TypeGateway, "%s -> %s in %s (%d fields)", operation, outcome, duration, raw.Len())
	return raw, nil
}

func (g *InstrumentedGateway) Health(ctx context.Context) models.HealthStatus {
	status := g.next.Health(ctx)
	g.metrics.SetBackendUp(status == models.HealthOK)
	g.logger.Debugf(providers.TypeGateway, "health check: %s", status)
	return status
}
