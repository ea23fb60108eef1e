package normalizer

import (
	"mindmate/internal/models"
	"strings"
)

// TrendDirection maps the three known literals; anything else is Unknown.
func TrendDirection(v any) models.TrendDirection {
	s, _ := v.(string)
	switch d := models.TrendDirection(strings.ToLower(strings.TrimSpace(s))); d {
	case models.TrendImproving, models.TrendDeclining, models.TrendStable:
		return d
	default:
		return models.TrendUnknown
	}
}

// StabilityScore returns a fraction in [0,1]. Values that look like a
// percentage ("80%", or a number above 1 up to 100) are divided by 100 once.
func StabilityScore(v any) *float64 {
	if s, ok := v.(string); ok {
		if p, found := strings.CutSuffix(strings.TrimSpace(s), "%"); found {
			f := Number(p)
			if f == nil || *f < 0 || *f > 100 {
				return nil
			}
			frac := *f / 100
			return &frac
		}
	}
	f := Number(v)
	switch {
	case f == nil || *f < 0:
		return nil
	case *f <= 1:
		return f
	case *f <= 100:
		frac := *f / 100
		return &frac
	default:
		return nil
	}
}

// Trend reads a calculate_emotional_trends result.
func Trend(raw *models.RawPayload) models.TrendSummary {
	dir, _ := first(raw, "trend", "direction")
	stability, _ := raw.Get("stability_score")
	volatility, _ := raw.Get("volatility")

	out := models.TrendSummary{
		Direction:      TrendDirection(dir),
		StabilityScore: StabilityScore(stability),
		Volatility:     Number(volatility),
	}
	if out.Volatility == nil {
		out.VolatilityLabel = Text(volatility)
	}
	return out
}

// HabitRecommendations keeps a list as a list and text as text.
func HabitRecommendations(v any) *models.HabitRecommendations {
	switch t := v.(type) {
	case []any:
		return &models.HabitRecommendations{Items: textList(t, "text", "recommendation", "name")}
	case string:
		if s := strings.TrimSpace(t); s != "" {
			return &models.HabitRecommendations{Text: s}
		}
	}
	return nil
}

// optionalCounts is nil when the field is absent or null.
func optionalCounts(raw *models.RawPayload, key string) []models.EmotionCount {
	v, ok := raw.Get(key)
	if !ok || v == nil {
		return nil
	}
	return EmotionCounts(v)
}

// WeeklySnapshot reads a get_weekly_summary result.
func WeeklySnapshot(raw *models.RawPayload) models.WeeklySnapshot {
	out := models.WeeklySnapshot{
		DominantEmotions:    optionalCounts(raw, "dominant_emotions"),
		EmotionDistribution: optionalCounts(raw, "emotion_distribution"),
	}

	total, _ := raw.Get("total_entries")
	if n, ok := Count(total); ok {
		out.TotalEntries = n
	} else if moods, ok := raw.Get("weekly_moods"); ok {
		if list, ok := moods.([]any); ok {
			out.TotalEntries = len(list)
		}
	}

	analysis, _ := raw.Get("trend_analysis")
	out.TrendAnalysis = textPtr(analysis)

	habits, _ := raw.Get("habit_recommendations")
	out.HabitRecommendations = HabitRecommendations(habits)
	return out
}

// DailySnapshot reads a get_daily_summary result. Intensity is clamped to
// [1,10]; triggers are never nil.
func DailySnapshot(raw *models.RawPayload) models.DailySnapshot {
	mood, _ := raw.Get("current_mood")
	intensity, _ := raw.Get("intensity")
	triggers, _ := first(raw, "triggers", "detected_triggers")
	timestamp, _ := raw.Get("timestamp")

	out := models.DailySnapshot{
		CurrentMood: textPtr(mood),
		Intensity:   clampIntensity(Number(intensity)),
		Triggers:    textList(triggers, "name", "trigger"),
		Timestamp:   textPtr(timestamp),
	}
	entries, _ := raw.Get("entries_count")
	if n, ok := Count(entries); ok {
		out.EntriesCount = &n
	}
	return out
}
