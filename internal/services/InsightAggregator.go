package services

import (
	"context"
	"golang.org/x/sync/errgroup"
	"mindmate/internal/gateway"
	"mindmate/internal/models"
	"mindmate/internal/normalizer"
	"mindmate/internal/providers"
	"mindmate/internal/structures"
)

type FanInPolicy int

const (
	// AllOrNothing reports a single failure when any source fails.
	AllOrNothing FanInPolicy = iota
	// Partial returns whatever succeeded and names the failed sources.
	Partial
)

func (p FanInPolicy) String() string {
	if p == Partial {
		return "partial"
	}
	return "all-or-nothing"
}

// SourceResult is the outcome of one fanned-out call.
type SourceResult struct {
	Source string
	Err    error
}

type source struct {
	name string
	run  func(ctx context.Context) error
}

type InsightAggregatorInterface interface {
	Weekly(ctx context.Context) (*models.WeeklyInsights, error)
	Daily(ctx context.Context) (*models.DailyInsights, error)
}

type InsightAggregator struct {
	service OperationServiceInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	policy  FanInPolicy
}

func NewInsightAggregator(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, service OperationServiceInterface) InsightAggregatorInterface {
	policy := AllOrNothing
	if conf.Insights.PartialResults {
		policy = Partial
	}
	return &InsightAggregator{
		service: service,
		logger:  logger,
		metrics: metrics,
		policy:  policy,
	}
}

// fanOut runs every source concurrently and waits for all of them. A failing
// source never cancels its siblings.
func (a *InsightAggregator) fanOut(ctx context.Context, sources []source) []SourceResult {
	results := make([]SourceResult, len(sources))
	var g errgroup.Group
	for i, s := range sources {
		g.Go(func() error {
			results[i] = SourceResult{Source: s.name, Err: s.run(ctx)}
			return nil
		})
	}
	_ = g.Wait()
	return results
}

// collapse applies the fan-in policy. Under Partial it returns the names of
// the failed sources, unless every source failed.
func (a *InsightAggregator) collapse(view string, results []SourceResult) ([]string, error) {
	var failures []SourceFailure
	for _, r := range results {
		if r.Err != nil {
			failures = append(failures, SourceFailure{Source: r.Source, Err: r.Err})
		}
	}
	if len(failures) == 0 {
		return nil, nil
	}
	if a.policy == AllOrNothing || len(failures) == len(results) {
		return nil, &AggregateFailure{View: view, Failures: failures}
	}
	missing := make([]string, len(failures))
	for i, f := range failures {
		missing[i] = f.Source
	}
	return missing, nil
}

func (a *InsightAggregator) done(view string, missing []string, err error) {
	switch {
	case err != nil:
		a.metrics.IncAggregateFetches(view, "failed")
		a.logger.Errorf(providers.TypeInsight, "%s", err)
	case len(missing) > 0:
		a.metrics.IncAggregateFetches(view, "partial")
		a.logger.Warnf(providers.TypeInsight, "%s aggregate is partial, missing %v", view, missing)
	default:
		a.metrics.IncAggregateFetches(view, "ok")
		a.logger.Debugf(providers.TypeInsight, "%s aggregate loaded", view)
	}
}

// Weekly fans out the weekly snapshot, common emotions and the emotional
// trend, then merges them.
func (a *InsightAggregator) Weekly(ctx context.Context) (*models.WeeklyInsights, error) {
	var (
		snapshot models.WeeklySnapshot
		common   []models.EmotionCount
		trend    = models.TrendSummary{Direction: models.TrendUnknown}
	)
	results := a.fanOut(ctx, []source{
		{gateway.OpGetWeeklySummary, func(ctx context.Context) error {
			s, err := a.service.WeeklySummary(ctx)
			if err == nil {
				snapshot = s
			}
			return err
		}},
		{gateway.OpFindCommonEmotions, func(ctx context.Context) error {
			c, err := a.service.CommonEmotions(ctx)
			if err == nil {
				common = c
			}
			return err
		}},
		{gateway.OpCalculateEmotionalTrends, func(ctx context.Context) error {
			t, err := a.service.EmotionalTrends(ctx)
			if err == nil {
				trend = t
			}
			return err
		}},
	})

	missing, err := a.collapse(ViewWeekly, results)
	a.done(ViewWeekly, missing, err)
	if err != nil {
		return nil, err
	}
	return &models.WeeklyInsights{
		Snapshot: snapshot,
		Emotions: normalizer.SelectEmotionCounts(common, snapshot.EmotionDistribution),
		Trend:    trend,
		Missing:  missing,
	}, nil
}

// Daily loads the snapshot first and only enriches it when a current mood
// is known. Recommendations and the breathing exercise run concurrently.
func (a *InsightAggregator) Daily(ctx context.Context) (*models.DailyInsights, error) {
	snapshot, err := a.service.DailySummary(ctx)
	if err != nil {
		failure := &AggregateFailure{View: ViewDaily, Failures: []SourceFailure{{Source: gateway.OpGetDailySummary, Err: err}}}
		a.done(ViewDaily, nil, failure)
		return nil, failure
	}

	out := &models.DailyInsights{
		Snapshot:        snapshot,
		Recommendations: make([]models.Recommendation, 0),
	}
	if snapshot.CurrentMood == nil {
		a.done(ViewDaily, nil, nil)
		return out, nil
	}

	mood := *snapshot.CurrentMood
	intensity := float64(models.DefaultIntensity)
	if snapshot.Intensity != nil {
		intensity = *snapshot.Intensity
	}

	var (
		recs     []models.Recommendation
		exercise *string
	)
	results := a.fanOut(ctx, []source{
		{gateway.OpRecommendActivities, func(ctx context.Context) (err error) {
			recs, err = a.service.RecommendActivities(ctx, mood, intensity)
			return err
		}},
		{gateway.OpGenerateBreathingExercise, func(ctx context.Context) (err error) {
			exercise, err = a.service.BreathingExercise(ctx, mood, intensity)
			return err
		}},
	})

	missing, err := a.collapse(ViewDaily, results)
	a.done(ViewDaily, missing, err)
	if err != nil {
		return nil, err
	}
	if recs != nil {
		out.Recommendations = recs
	}
	out.BreathingExercise = exercise
	out.Missing = missing
	return out, nil
}
