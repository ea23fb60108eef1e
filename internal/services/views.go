package services

import (
	"context"
	"go.uber.org/atomic"
	"mindmate/internal/models"
	"sync"
	"time"
)

// view holds the latest published result of one screen. Every load takes a
// new generation; a result is only published while its generation is the
// newest one started, so a slow stale fetch can never overwrite a newer one.
type view[T any] struct {
	generation atomic.Uint64
	clone      func(*T) *T

	mu        sync.RWMutex
	published uint64
	latest    *T
	loadedAt  time.Time
}

func (v *view[T]) load(ctx context.Context, fetch func(context.Context) (*T, error)) (*T, error) {
	gen := v.generation.Inc()
	res, err := fetch(ctx)
	if gen != v.generation.Load() {
		return nil, ErrStaleResult
	}
	if err != nil {
		return nil, err
	}

	v.mu.Lock()
	defer v.mu.Unlock()
	if gen < v.published {
		return nil, ErrStaleResult
	}
	v.published = gen
	v.latest = res
	v.loadedAt = time.Now()
	return v.clone(res), nil
}

// Latest returns a private copy of the last published result.
func (v *view[T]) Latest() (*T, time.Time, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	if v.latest == nil {
		return nil, time.Time{}, false
	}
	return v.clone(v.latest), v.loadedAt, true
}

// Generation is the number of loads started so far.
func (v *view[T]) Generation() uint64 {
	return v.generation.Load()
}

type WeeklyView struct {
	view[models.WeeklyInsights]
	aggregator InsightAggregatorInterface
}

func NewWeeklyView(aggregator InsightAggregatorInterface) *WeeklyView {
	v := &WeeklyView{aggregator: aggregator}
	v.clone = (*models.WeeklyInsights).Clone
	return v
}

func (v *WeeklyView) Load(ctx context.Context) (*models.WeeklyInsights, error) {
	return v.load(ctx, v.aggregator.Weekly)
}

type DailyView struct {
	view[models.DailyInsights]
	aggregator InsightAggregatorInterface
}

func NewDailyView(aggregator InsightAggregatorInterface) *DailyView {
	v := &DailyView{aggregator: aggregator}
	v.clone = (*models.DailyInsights).Clone
	return v
}

func (v *DailyView) Load(ctx context.Context) (*models.DailyInsights, error) {
	return v.load(ctx, v.aggregator.Daily)
}
