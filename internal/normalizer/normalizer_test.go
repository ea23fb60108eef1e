package normalizer

import (
	"mindmate/internal/models"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func payload(t *testing.T, body string) *models.RawPayload {
	t.Helper()
	raw := models.NewRawPayload()
	require.NoError(t, raw.UnmarshalJSON([]byte(body)))
	return raw
}

func value(t *testing.T, body string) any {
	t.Helper()
	v, err := models.DecodeValue([]byte(body))
	require.NoError(t, err)
	return v
}

func TestNumber(t *testing.T) {
	tests := []struct {
		in   any
		want *float64
	}{
		{7.5, ptr(7.5)},
		{"7.5", ptr(7.5)},
		{" 3 ", ptr(3.0)},
		{"seven", nil},
		{"", nil},
		{nil, nil},
		{true, nil},
		{"NaN", nil},
		{[]any{1.0}, nil},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Number(tt.in), "input %#v", tt.in)
	}
}

func TestEmotionCounts_ShapeInvariant(t *testing.T) {
	pairs := EmotionCounts(value(t, `[["happy",5],["sad",2]]`))
	mapping := EmotionCounts(value(t, `{"happy":5,"sad":2}`))
	objects := EmotionCounts(value(t, `[{"emotion":"happy","count":5},{"name":"sad","count":"2"}]`))

	want := []models.EmotionCount{{Emotion: "happy", Count: 5}, {Emotion: "sad", Count: 2}}
	assert.Equal(t, want, pairs)
	assert.Equal(t, want, mapping)
	assert.Equal(t, want, objects)
}

func TestEmotionCounts_DuplicatesLaterWinsFirstPosition(t *testing.T) {
	got := EmotionCounts(value(t, `[["happy",1],["sad",2],["happy",4]]`))
	assert.Equal(t, []models.EmotionCount{{Emotion: "happy", Count: 4}, {Emotion: "sad", Count: 2}}, got)
}

func TestEmotionCounts_SkipsInvalidEntries(t *testing.T) {
	got := EmotionCounts(value(t, `[["",3],["calm","lots"],["angry",-1],["tired"],"oops",["ok",true],["fine","3"]]`))
	assert.Equal(t, []models.EmotionCount{{Emotion: "fine", Count: 3}}, got)
}

func TestEmotionCounts_UnknownShapeIsEmpty(t *testing.T) {
	assert.Equal(t, []models.EmotionCount{}, EmotionCounts("happy"))
	assert.Equal(t, []models.EmotionCount{}, EmotionCounts(nil))
}

func TestTopEmotions_TieBreakFirstSeen(t *testing.T) {
	counts := EmotionCounts(value(t, `{"happy":5,"sad":2,"calm":5}`))
	top := TopEmotions(counts, 3)
	assert.Equal(t, []models.EmotionCount{
		{Emotion: "happy", Count: 5},
		{Emotion: "calm", Count: 5},
		{Emotion: "sad", Count: 2},
	}, top)

	// deterministic across runs and never mutates the source
	for range 20 {
		assert.Equal(t, top, TopEmotions(counts, 3))
	}
	assert.Equal(t, "sad", counts[1].Emotion)
}

func TestTopEmotions_Limit(t *testing.T) {
	counts := EmotionCounts(value(t, `{"a":1,"b":4,"c":3,"d":2}`))
	assert.Equal(t, []models.EmotionCount{{Emotion: "b", Count: 4}, {Emotion: "c", Count: 3}}, TopEmotions(counts, 2))
	assert.Len(t, TopEmotions(counts, 0), 4)
	assert.Equal(t, []models.EmotionCount{}, TopEmotions(nil, 3))
}

func TestSelectEmotionCounts_Precedence(t *testing.T) {
	common := []models.EmotionCount{{Emotion: "sad", Count: 1}}
	dist := []models.EmotionCount{{Emotion: "happy", Count: 3}}

	assert.Equal(t, common, SelectEmotionCounts(common, dist))
	assert.Equal(t, dist, SelectEmotionCounts(nil, dist))
	assert.Equal(t, dist, SelectEmotionCounts([]models.EmotionCount{}, dist))
	assert.Equal(t, []models.EmotionCount{}, SelectEmotionCounts(nil, nil))
}

func TestTrendDirection(t *testing.T) {
	assert.Equal(t, models.TrendStable, TrendDirection("stable"))
	assert.Equal(t, models.TrendDeclining, TrendDirection("declining"))
	assert.Equal(t, models.TrendImproving, TrendDirection(" Improving "))
	assert.Equal(t, models.TrendUnknown, TrendDirection("chaotic"))
	assert.Equal(t, models.TrendUnknown, TrendDirection(nil))
	assert.Equal(t, models.TrendUnknown, TrendDirection(3.0))
}

func TestStabilityScore_NeverDoubleConverts(t *testing.T) {
	tests := []struct {
		in   any
		want *float64
	}{
		{0.8, ptr(0.8)},
		{1.0, ptr(1.0)},
		{0.0, ptr(0.0)},
		{"0.8", ptr(0.8)},
		{80.0, ptr(0.8)},
		{"80%", ptr(0.8)},
		{"100%", ptr(1.0)},
		{150.0, nil},
		{-0.2, nil},
		{"abc%", nil},
		{"high", nil},
		{nil, nil},
	}
	for _, tt := range tests {
		got := StabilityScore(tt.in)
		if tt.want == nil {
			assert.Nil(t, got, "input %#v", tt.in)
			continue
		}
		require.NotNil(t, got, "input %#v", tt.in)
		assert.InDelta(t, *tt.want, *got, 1e-9, "input %#v", tt.in)
	}
}

func TestTrend(t *testing.T) {
	got := Trend(payload(t, `{"trend":"improving","volatility":"low","stability_score":0.8}`))
	assert.Equal(t, models.TrendImproving, got.Direction)
	assert.InDelta(t, 0.8, *got.StabilityScore, 1e-9)
	assert.Nil(t, got.Volatility)
	assert.Equal(t, "low", got.VolatilityLabel)

	got = Trend(payload(t, `{"trend":"sideways","volatility":"2.5"}`))
	assert.Equal(t, models.TrendUnknown, got.Direction)
	assert.Nil(t, got.StabilityScore)
	assert.Equal(t, 2.5, *got.Volatility)
	assert.Empty(t, got.VolatilityLabel)

	empty := Trend(models.NewRawPayload())
	assert.Equal(t, models.TrendUnknown, empty.Direction)
}

func TestWeeklySnapshot(t *testing.T) {
	got := WeeklySnapshot(payload(t, `{
		"total_entries": "6",
		"dominant_emotions": {"calm": 3, "sad": 1},
		"trend_analysis": "  Mostly calm.  ",
		"habit_recommendations": ["Sleep more", "", "Walk daily"],
		"emotion_distribution": {"calm": 3}
	}`))

	assert.Equal(t, 6, got.TotalEntries)
	assert.Equal(t, []models.EmotionCount{{Emotion: "calm", Count: 3}, {Emotion: "sad", Count: 1}}, got.DominantEmotions)
	assert.Equal(t, "Mostly calm.", *got.TrendAnalysis)
	assert.Equal(t, []string{"Sleep more", "Walk daily"}, got.HabitRecommendations.Items)
	assert.Equal(t, []models.EmotionCount{{Emotion: "calm", Count: 3}}, got.EmotionDistribution)
}

func TestWeeklySnapshot_Defaults(t *testing.T) {
	got := WeeklySnapshot(payload(t, `{"weekly_moods":["calm","calm","sad"],"habit_recommendations":"Rest","dominant_emotions":null}`))
	assert.Equal(t, 3, got.TotalEntries)
	assert.Nil(t, got.DominantEmotions)
	assert.Nil(t, got.TrendAnalysis)
	assert.True(t, got.HabitRecommendations.IsText())
	assert.Equal(t, "Rest", got.HabitRecommendations.Text)
	assert.Nil(t, got.EmotionDistribution)

	none := WeeklySnapshot(models.NewRawPayload())
	assert.Equal(t, 0, none.TotalEntries)
	assert.Nil(t, none.HabitRecommendations)
}

func TestDailySnapshot(t *testing.T) {
	got := DailySnapshot(payload(t, `{"current_mood":"anxious","intensity":"14","triggers":["work",["sleep",3],"",{"name":"family"}],"entries_count":2}`))
	assert.Equal(t, "anxious", *got.CurrentMood)
	assert.Equal(t, 10.0, *got.Intensity)
	assert.Equal(t, []string{"work", "sleep", "family"}, got.Triggers)
	assert.Equal(t, 2, *got.EntriesCount)
}

func TestDailySnapshot_NullMood(t *testing.T) {
	got := DailySnapshot(payload(t, `{"current_mood":null,"intensity":0}`))
	assert.Nil(t, got.CurrentMood)
	assert.Equal(t, 1.0, *got.Intensity)
	assert.NotNil(t, got.Triggers)
	assert.Empty(t, got.Triggers)

	blank := DailySnapshot(payload(t, `{"current_mood":"   ","intensity":"n/a"}`))
	assert.Nil(t, blank.CurrentMood)
	assert.Nil(t, blank.Intensity)
}

func ptr[T any](v T) *T { return &v }
