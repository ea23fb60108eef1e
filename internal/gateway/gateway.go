package gateway

import (
	"context"
	"fmt"
	"mindmate/internal/models"
	"mindmate/internal/providers"
	"mindmate/internal/structures"
)

const (
	OpLogMood                   = "log_mood"
	OpEmotionFromText           = "emotion_from_text"
	OpGetDailySummary           = "get_daily_summary"
	OpGetWeeklySummary          = "get_weekly_summary"
	OpRecommendActivities       = "recommend_activities"
	OpGenerateSupportMessage    = "generate_support_message"
	OpGenerateBreathingExercise = "generate_breathing_exercise"
	OpGenerateAffirmation       = "generate_affirmation"
	OpFindRepeatingTriggers     = "find_repeating_triggers"
	OpFindCommonEmotions        = "find_common_emotions"
	OpCalculateEmotionalTrends  = "calculate_emotional_trends"
	OpHealthCheck               = "health_check"
)

const (
	TransportDispatch = "dispatch"
	TransportPath     = "path"
	TransportRPC      = "rpc"
)

// Gateway is the single entry point to the remote operation provider.
type Gateway interface {
	Invoke(ctx context.Context, operation string, payload map[string]any) (*models.RawPayload, error)
	Health(ctx context.Context) models.HealthStatus
}

// Transport moves one operation over the wire and returns the raw response
// body. Errors must already be *TransportError.
type Transport interface {
	Call(ctx context.Context, operation string, payload map[string]any) ([]byte, error)
	Health(ctx context.Context) error
}

type RemoteGateway struct {
	transport Transport
}

func NewRemoteGateway(transport Transport) *RemoteGateway {
	return &RemoteGateway{transport: transport}
}

// Invoke makes exactly one attempt. No retries.
func (g *RemoteGateway) Invoke(ctx context.Context, operation string, payload map[string]any) (*models.RawPayload, error) {
	body, err := g.transport.Call(ctx, operation, payload)
	if err != nil {
		return nil, classifyError(operation, err)
	}
	raw, err := unwrapEnvelope(body)
	if err != nil {
		return nil, &TransportError{Op: operation, Kind: KindNetwork, Err: fmt.Errorf("undecodable response: %w", err)}
	}
	return raw, nil
}

// Health never fails; any problem reaching the provider reads as offline.
func (g *RemoteGateway) Health(ctx context.Context) models.HealthStatus {
	if err := g.transport.Health(ctx); err != nil {
		return models.HealthOffline
	}
	return models.HealthOK
}

func NewTransport(conf *structures.Config, compressor Compressor) (Transport, error) {
	switch conf.Backend.Transport {
	case TransportDispatch, TransportPath, "":
		return newHTTPTransport(conf, compressor), nil
	case TransportRPC:
		return newRPCTransport(conf)
	default:
		return nil, fmt.Errorf("unknown backend transport %q", conf.Backend.Transport)
	}
}

// NewGateway assembles remote transport, instrumentation and, when the
// response cache is enabled, read-through caching.
func NewGateway(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, cache providers.CacheProviderInterface) (Gateway, error) {
	compressor, err := NewZstdCompressor()
	if err != nil {
		return nil, err
	}
	transport, err := NewTransport(conf, compressor)
	if err != nil {
		return nil, err
	}

	var gw Gateway = NewInstrumentedGateway(NewRemoteGateway(transport), metrics, logger)
	if providers.IsCacheEnabled(cache) {
		gw = NewCachingGateway(gw, cache, compressor, logger)
	}

	logger.Debugf(providers.TypeGateway, "Gateway ready: transport=%s base=%s", conf.Backend.Transport, conf.Backend.BaseURL)
	return gw, nil
}
