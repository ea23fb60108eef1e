package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecommendation_DisplayText(t *testing.T) {
	ten := 10
	assert.Equal(t, "Walk outside", Recommendation{Name: "walk", Description: "Walk outside", DurationMinutes: &ten}.DisplayText())
	assert.Equal(t, "10 minutes", Recommendation{Name: "walk", DurationMinutes: &ten}.DisplayText())
	assert.Equal(t, "", Recommendation{Name: "walk"}.DisplayText())
}

func TestWeeklyInsights_CloneIsDeep(t *testing.T) {
	text := "steady week"
	score := 0.8
	w := &WeeklyInsights{
		Snapshot: WeeklySnapshot{
			TotalEntries:         3,
			DominantEmotions:     []EmotionCount{{"happy", 2}},
			TrendAnalysis:        &text,
			HabitRecommendations: &HabitRecommendations{Items: []string{"sleep"}},
		},
		Emotions: []EmotionCount{{"happy", 2}},
		Trend:    TrendSummary{Direction: TrendStable, StabilityScore: &score},
	}

	c := w.Clone()
	c.Snapshot.DominantEmotions[0].Count = 99
	*c.Snapshot.TrendAnalysis = "changed"
	c.Snapshot.HabitRecommendations.Items[0] = "changed"
	c.Emotions[0].Emotion = "changed"
	*c.Trend.StabilityScore = 0.1

	assert.Equal(t, 2, w.Snapshot.DominantEmotions[0].Count)
	assert.Equal(t, "steady week", *w.Snapshot.TrendAnalysis)
	assert.Equal(t, "sleep", w.Snapshot.HabitRecommendations.Items[0])
	assert.Equal(t, "happy", w.Emotions[0].Emotion)
	assert.Equal(t, 0.8, *w.Trend.StabilityScore)
}

func TestDailyInsights_CloneIsDeep(t *testing.T) {
	mood := "calm"
	five := 5
	d := &DailyInsights{
		Snapshot:        DailySnapshot{CurrentMood: &mood, Triggers: []string{"work"}},
		Recommendations: []Recommendation{{Name: "stretch", DurationMinutes: &five}},
	}

	c := d.Clone()
	*c.Snapshot.CurrentMood = "sad"
	c.Snapshot.Triggers[0] = "sleep"
	*c.Recommendations[0].DurationMinutes = 50

	assert.Equal(t, "calm", *d.Snapshot.CurrentMood)
	assert.Equal(t, "work", d.Snapshot.Triggers[0])
	assert.Equal(t, 5, *d.Recommendations[0].DurationMinutes)

	var nilDaily *DailyInsights
	assert.Nil(t, nilDaily.Clone())
}

func TestHabitRecommendations_IsText(t *testing.T) {
	assert.True(t, (&HabitRecommendations{Text: "rest more"}).IsText())
	assert.False(t, (&HabitRecommendations{Items: []string{"a"}}).IsText())
	var h *HabitRecommendations
	assert.False(t, h.IsText())
}
