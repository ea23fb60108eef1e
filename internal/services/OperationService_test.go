package services

import (
	"context"
	"errors"
	"mindmate/internal/gateway"
	"mindmate/internal/models"
	"mindmate/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOperationService_LogMoodPayload(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.SetResponse(gateway.OpLogMood, `{"status":"success","message":"logged","data":{"id":"e1"}}`)
	svc := newOperationService(t, testConfig(), gw)

	ack, err := svc.LogMood(context.Background(), models.MoodEntry{MoodName: "calm", Intensity: 42, JournalText: "ok", Timestamp: time.Now()})
	require.NoError(t, err)
	assert.Equal(t, "e1", ack.EntryID)

	calls := gw.CallsTo(gateway.OpLogMood)
	require.Len(t, calls, 1)
	assert.Equal(t, map[string]any{
		"user_id":      "user1",
		"mood_name":    "calm",
		"intensity":    10,
		"journal_text": "ok",
	}, calls[0].Payload)
}

func TestOperationService_RequestFields(t *testing.T) {
	gw := testutil.NewMockGateway()
	svc := newOperationService(t, testConfig(), gw)
	ctx := context.Background()

	_, _ = svc.AnalyzeJournal(ctx, "rough day")
	_, _ = svc.DailySummary(ctx)
	_, _ = svc.WeeklySummary(ctx)
	_, _ = svc.RecommendActivities(ctx, "sad", 6)
	_, _ = svc.SupportMessage(ctx, "sad", 6, nil, "context")
	_, _ = svc.BreathingExercise(ctx, "sad", 6)
	_, _ = svc.Affirmation(ctx, "sad", 6, []string{"work"})
	_, _ = svc.RepeatingTriggers(ctx)
	_, _ = svc.CommonEmotions(ctx)
	_, _ = svc.EmotionalTrends(ctx)

	want := map[string]map[string]any{
		gateway.OpEmotionFromText:           {"user_id": "user1", "journal_text": "rough day"},
		gateway.OpGetDailySummary:           {"user_id": "user1"},
		gateway.OpGetWeeklySummary:          {"user_id": "user1"},
		gateway.OpRecommendActivities:       {"emotion_name": "sad", "intensity": 6.0},
		gateway.OpGenerateSupportMessage:    {"emotion_name": "sad", "intensity_score": 6, "detected_triggers": []string{}, "user_context": "context"},
		gateway.OpGenerateBreathingExercise: {"emotion_name": "sad", "intensity_score": 6.0, "duration_preference": 300},
		gateway.OpGenerateAffirmation:       {"emotion_name": "sad", "intensity_score": 6, "user_name": "Friend", "detected_triggers": []string{"work"}},
		gateway.OpFindRepeatingTriggers:     {"user_id": "user1", "lookback_days": 30},
		gateway.OpFindCommonEmotions:        {"user_id": "user1", "period_days": 30},
		gateway.OpCalculateEmotionalTrends:  {"user_id": "user1", "lookback_days": 14},
	}
	for op, payload := range want {
		calls := gw.CallsTo(op)
		require.Len(t, calls, 1, op)
		assert.Equal(t, payload, calls[0].Payload, op)
	}
}

func TestOperationService_SupportMessageFallback(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.SetResponse(gateway.OpGenerateSupportMessage, `{"status":"success"}`)
	svc := newOperationService(t, testConfig(), gw)

	msg, err := svc.SupportMessage(context.Background(), "sad", 5, nil, "")
	require.NoError(t, err)
	assert.Equal(t, svc.Catalog().FallbackMessage, msg)
}

func TestOperationService_PropagatesTransportErrors(t *testing.T) {
	gw := testutil.NewMockGateway()
	boom := &gateway.TransportError{Op: gateway.OpGetWeeklySummary, Kind: gateway.KindServerError, Status: 500, Err: errors.New("down")}
	gw.SetError(gateway.OpGetWeeklySummary, boom)
	svc := newOperationService(t, testConfig(), gw)

	_, err := svc.WeeklySummary(context.Background())
	assert.ErrorIs(t, err, boom)
}

func TestOperationService_Health(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.Status = models.HealthOffline
	svc := newOperationService(t, testConfig(), gw)
	assert.Equal(t, models.HealthOffline, svc.Health(context.Background()))
}
