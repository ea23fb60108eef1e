package models

import (
	"fmt"
	"slices"
)

type EmotionCount struct {
	Emotion string `json:"emotion" yaml:"emotion"`
	Count   int    `json:"count" yaml:"count"`
}

type TrendDirection string

const (
	TrendImproving TrendDirection = "improving"
	TrendDeclining TrendDirection = "declining"
	TrendStable    TrendDirection = "stable"
	TrendUnknown   TrendDirection = "unknown"
)

type TrendSummary struct {
	Direction      TrendDirection `json:"direction" yaml:"direction"`
	StabilityScore *float64       `json:"stability_score" yaml:"stability_score"`
	Volatility     *float64       `json:"volatility" yaml:"volatility"`
	// VolatilityLabel holds a non-numeric volatility such as "low".
	VolatilityLabel string `json:"volatility_label,omitempty" yaml:"volatility_label,omitempty"`
}

// HabitRecommendations is either a list of items or a single block of text.
type HabitRecommendations struct {
	Items []string `json:"items,omitempty" yaml:"items,omitempty"`
	Text  string   `json:"text,omitempty" yaml:"text,omitempty"`
}

func (h *HabitRecommendations) IsText() bool {
	return h != nil && h.Items == nil
}

type WeeklySnapshot struct {
	TotalEntries         int                   `json:"total_entries" yaml:"total_entries"`
	DominantEmotions     []EmotionCount        `json:"dominant_emotions" yaml:"dominant_emotions"`
	TrendAnalysis        *string               `json:"trend_analysis" yaml:"trend_analysis"`
	HabitRecommendations *HabitRecommendations `json:"habit_recommendations" yaml:"habit_recommendations"`
	EmotionDistribution  []EmotionCount        `json:"emotion_distribution,omitempty" yaml:"emotion_distribution,omitempty"`
}

type DailySnapshot struct {
	CurrentMood  *string  `json:"current_mood" yaml:"current_mood"`
	Intensity    *float64 `json:"intensity" yaml:"intensity"`
	Triggers     []string `json:"triggers" yaml:"triggers"`
	EntriesCount *int     `json:"entries_count,omitempty" yaml:"entries_count,omitempty"`
	Timestamp    *string  `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

type Recommendation struct {
	Name            string `json:"name" yaml:"name"`
	Description     string `json:"description,omitempty" yaml:"description,omitempty"`
	DurationMinutes *int   `json:"duration_minutes,omitempty" yaml:"duration_minutes,omitempty"`
	Kind            string `json:"kind,omitempty" yaml:"kind,omitempty"`
}

// DisplayText is the description, else the duration, else empty.
func (r Recommendation) DisplayText() string {
	if r.Description != "" {
		return r.Description
	}
	if r.DurationMinutes != nil && *r.DurationMinutes > 0 {
		return fmt.Sprintf("%d minutes", *r.DurationMinutes)
	}
	return ""
}

// WeeklyInsights is the merged result of the weekly fan-out. Missing lists
// the sources that failed when partial results are allowed.
type WeeklyInsights struct {
	Snapshot WeeklySnapshot `json:"snapshot" yaml:"snapshot"`
	Emotions []EmotionCount `json:"emotions" yaml:"emotions"`
	Trend    TrendSummary   `json:"trend" yaml:"trend"`
	Missing  []string       `json:"missing,omitempty" yaml:"missing,omitempty"`
}

type DailyInsights struct {
	Snapshot          DailySnapshot    `json:"snapshot" yaml:"snapshot"`
	Recommendations   []Recommendation `json:"recommendations" yaml:"recommendations"`
	BreathingExercise *string          `json:"breathing_exercise" yaml:"breathing_exercise"`
	Missing           []string         `json:"missing,omitempty" yaml:"missing,omitempty"`
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func (s WeeklySnapshot) Clone() WeeklySnapshot {
	out := s
	out.DominantEmotions = slices.Clone(s.DominantEmotions)
	out.EmotionDistribution = slices.Clone(s.EmotionDistribution)
	out.TrendAnalysis = clonePtr(s.TrendAnalysis)
	if s.HabitRecommendations != nil {
		out.HabitRecommendations = &HabitRecommendations{
			Items: slices.Clone(s.HabitRecommendations.Items),
			Text:  s.HabitRecommendations.Text,
		}
	}
	return out
}

func (t TrendSummary) Clone() TrendSummary {
	out := t
	out.StabilityScore = clonePtr(t.StabilityScore)
	out.Volatility = clonePtr(t.Volatility)
	return out
}

func (s DailySnapshot) Clone() DailySnapshot {
	out := s
	out.CurrentMood = clonePtr(s.CurrentMood)
	out.Intensity = clonePtr(s.Intensity)
	out.Triggers = slices.Clone(s.Triggers)
	out.EntriesCount = clonePtr(s.EntriesCount)
	out.Timestamp = clonePtr(s.Timestamp)
	return out
}

func (w *WeeklyInsights) Clone() *WeeklyInsights {
	if w == nil {
		return nil
	}
	return &WeeklyInsights{
		Snapshot: w.Snapshot.Clone(),
		Emotions: slices.Clone(w.Emotions),
		Trend:    w.Trend.Clone(),
		Missing:  slices.Clone(w.Missing),
	}
}

func (d *DailyInsights) Clone() *DailyInsights {
	if d == nil {
		return nil
	}
	recs := make([]Recommendation, len(d.Recommendations))
	for i, r := range d.Recommendations {
		r.DurationMinutes = clonePtr(r.DurationMinutes)
		recs[i] = r
	}
	return &DailyInsights{
		Snapshot:          d.Snapshot.Clone(),
		Recommendations:   recs,
		BreathingExercise: clonePtr(d.BreathingExercise),
		Missing:           slices.Clone(d.Missing),
	}
}
