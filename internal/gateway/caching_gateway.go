package gateway

import (
	"context"
	json "github.com/goccy/go-json"
	"mindmate/internal/models"
	"mindmate/internal/providers"
)

// cacheableOperations are the read-only operations. Writes and generated
// content always go to the provider.
var cacheableOperations = map[string]bool{
	OpGetDailySummary:          true,
	OpGetWeeklySummary:         true,
	OpFindCommonEmotions:       true,
	OpCalculateEmotionalTrends: true,
	OpFindRepeatingTriggers:    true,
	OpRecommendActivities:      true,
}

func IsCacheable(operation string) bool {
	return cacheableOperations[operation]
}

// CachingGateway is a read-through cache in front of another Gateway.
// Entries are zstd-compressed JSON keyed on operation and payload.
type CachingGateway struct {
	next       Gateway
	cache      providers.CacheProviderInterface
	compressor Compressor
	logger     providers.Logger
}

func NewCachingGateway(next Gateway, cache providers.CacheProviderInterface, compressor Compressor, logger providers.Logger) *CachingGateway {
	return &CachingGateway{
		next:       next,
		cache:      cache,
		compressor: compressor,
		logger:     logger,
	}
}

func cacheKey(operation string, payload map[string]any) (string, error) {
	// map keys are marshaled sorted, so equal payloads give equal keys
	data, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}
	return operation + ":" + string(data), nil
}

func (g *CachingGateway) Invoke(ctx context.Context, operation string, payload map[string]any) (*models.RawPayload, error) {
	if !IsCacheable(operation) {
		raw, err := g.next.Invoke(ctx, operation, payload)
		if err == nil && operation == OpLogMood {
			// a new entry changes every snapshot
			g.cache.Clear()
			g.logger.Debugf(providers.TypeGateway, "response cache cleared after %s", operation)
		}
		return raw, err
	}
	key, err := cacheKey(operation, payload)
	if err != nil {
		return g.next.Invoke(ctx, operation, payload)
	}

	if raw, ok := g.lookup(key); ok {
		g.logger.Debugf(providers.TypeGateway, "cache hit for %s", operation)
		return raw, nil
	}

	raw, err := g.next.Invoke(ctx, operation, payload)
	if err != nil {
		return nil, err
	}
	g.store(key, raw)
	return raw, nil
}

func (g *CachingGateway) lookup(key string) (*models.RawPayload, bool) {
	data, ok := g.cache.Get(key)
	if !ok {
		return nil, false
	}
	plain, err := g.compressor.Decompress(data)
	if err != nil {
		g.logger.Warnf(providers.TypeGateway, "dropping corrupt cache entry: %s", err)
		return nil, false
	}
	var raw models.RawPayload
	if err := raw.UnmarshalJSON(plain); err != nil {
		g.logger.Warnf(providers.TypeGateway, "dropping corrupt cache entry: %s", err)
		return nil, false
	}
	return &raw, true
}

func (g *CachingGateway) store(key string, raw *models.RawPayload) {
	plain, err := raw.MarshalJSON()
	if err != nil {
		g.logger.Warnf(providers.TypeGateway, "unable to cache response: %s", err)
		return
	}
	data, err := g.compressor.Compress(plain)
	if err != nil {
		g.logger.Warnf(providers.TypeGateway, "unable to cache response: %s", err)
		return
	}
	g.cache.Set(key, data)
}

func (g *CachingGateway) Health(ctx context.Context) models.HealthStatus {
	return g.next.Health(ctx)
}
