package services

import (
	"context"
	"mindmate/internal/gateway"
	"mindmate/internal/models"
	"mindmate/internal/normalizer"
	"mindmate/internal/structures"
)

// OperationServiceInterface is the typed surface of the remote operations.
// Each method builds the request, calls the gateway once and normalizes.
type OperationServiceInterface interface {
	LogMood(ctx context.Context, entry models.MoodEntry) (models.LogAck, error)
	AnalyzeJournal(ctx context.Context, journalText string) (models.EmotionInference, error)
	DailySummary(ctx context.Context) (models.DailySnapshot, error)
	WeeklySummary(ctx context.Context) (models.WeeklySnapshot, error)
	RecommendActivities(ctx context.Context, emotion string, intensity float64) ([]models.Recommendation, error)
	SupportMessage(ctx context.Context, emotion string, intensity int, triggers []string, userContext string) (string, error)
	BreathingExercise(ctx context.Context, emotion string, intensity float64) (*string, error)
	Affirmation(ctx context.Context, emotion string, intensity int, triggers []string) (*string, error)
	RepeatingTriggers(ctx context.Context) ([]string, error)
	CommonEmotions(ctx context.Context) ([]models.EmotionCount, error)
	EmotionalTrends(ctx context.Context) (models.TrendSummary, error)
	Health(ctx context.Context) models.HealthStatus
	Catalog() *models.SupportCatalog
}

type OperationService struct {
	gw      gateway.Gateway
	conf    *structures.Config
	catalog *models.SupportCatalog
}

func NewOperationService(conf *structures.Config, gw gateway.Gateway) (OperationServiceInterface, error) {
	catalog, err := models.DefaultSupportCatalog()
	if err != nil {
		return nil, err
	}
	return &OperationService{gw: gw, conf: conf, catalog: catalog}, nil
}

func nonNil(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}

func (s *OperationService) LogMood(ctx context.Context, entry models.MoodEntry) (models.LogAck, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpLogMood, map[string]any{
		"user_id":      s.conf.Backend.UserID,
		"mood_name":    entry.MoodName,
		"intensity":    models.ClampIntensity(entry.Intensity),
		"journal_text": entry.JournalText,
	})
	if err != nil {
		return models.LogAck{}, err
	}
	return normalizer.LogAck(raw), nil
}

func (s *OperationService) AnalyzeJournal(ctx context.Context, journalText string) (models.EmotionInference, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpEmotionFromText, map[string]any{
		"user_id":      s.conf.Backend.UserID,
		"journal_text": journalText,
	})
	if err != nil {
		return models.EmotionInference{}, err
	}
	return normalizer.EmotionInference(raw), nil
}

func (s *OperationService) DailySummary(ctx context.Context) (models.DailySnapshot, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpGetDailySummary, map[string]any{
		"user_id": s.conf.Backend.UserID,
	})
	if err != nil {
		return models.DailySnapshot{}, err
	}
	return normalizer.DailySnapshot(raw), nil
}

func (s *OperationService) WeeklySummary(ctx context.Context) (models.WeeklySnapshot, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpGetWeeklySummary, map[string]any{
		"user_id": s.conf.Backend.UserID,
	})
	if err != nil {
		return models.WeeklySnapshot{}, err
	}
	return normalizer.WeeklySnapshot(raw), nil
}

func (s *OperationService) RecommendActivities(ctx context.Context, emotion string, intensity float64) ([]models.Recommendation, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpRecommendActivities, map[string]any{
		"emotion_name": emotion,
		"intensity":    intensity,
	})
	if err != nil {
		return nil, err
	}
	return normalizer.Recommendations(raw), nil
}

func (s *OperationService) SupportMessage(ctx context.Context, emotion string, intensity int, triggers []string, userContext string) (string, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpGenerateSupportMessage, map[string]any{
		"emotion_name":      emotion,
		"intensity_score":   models.ClampIntensity(intensity),
		"detected_triggers": nonNil(triggers),
		"user_context":      userContext,
	})
	if err != nil {
		return "", err
	}
	return normalizer.SupportMessage(raw, s.catalog.FallbackMessage), nil
}

func (s *OperationService) BreathingExercise(ctx context.Context, emotion string, intensity float64) (*string, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpGenerateBreathingExercise, map[string]any{
		"emotion_name":        emotion,
		"intensity_score":     intensity,
		"duration_preference": s.conf.Insights.BreathingDurationSeconds,
	})
	if err != nil {
		return nil, err
	}
	return normalizer.BreathingExercise(raw), nil
}

func (s *OperationService) Affirmation(ctx context.Context, emotion string, intensity int, triggers []string) (*string, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpGenerateAffirmation, map[string]any{
		"emotion_name":      emotion,
		"intensity_score":   models.ClampIntensity(intensity),
		"user_name":         s.conf.Backend.UserName,
		"detected_triggers": nonNil(triggers),
	})
	if err != nil {
		return nil, err
	}
	return normalizer.Affirmation(raw), nil
}

func (s *OperationService) RepeatingTriggers(ctx context.Context) ([]string, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpFindRepeatingTriggers, map[string]any{
		"user_id":       s.conf.Backend.UserID,
		"lookback_days": s.conf.Insights.TriggerLookbackDays,
	})
	if err != nil {
		return nil, err
	}
	return normalizer.RepeatingTriggers(raw), nil
}

func (s *OperationService) CommonEmotions(ctx context.Context) ([]models.EmotionCount, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpFindCommonEmotions, map[string]any{
		"user_id":     s.conf.Backend.UserID,
		"period_days": s.conf.Insights.CommonEmotionsDays,
	})
	if err != nil {
		return nil, err
	}
	return normalizer.CommonEmotions(raw), nil
}

func (s *OperationService) EmotionalTrends(ctx context.Context) (models.TrendSummary, error) {
	raw, err := s.gw.Invoke(ctx, gateway.OpCalculateEmotionalTrends, map[string]any{
		"user_id":       s.conf.Backend.UserID,
		"lookback_days": s.conf.Insights.TrendLookbackDays,
	})
	if err != nil {
		return models.TrendSummary{}, err
	}
	return normalizer.Trend(raw), nil
}

// Health is the one lenient operation: failures read as offline.
func (s *OperationService) Health(ctx context.Context) models.HealthStatus {
	return s.gw.Health(ctx)
}

func (s *OperationService) Catalog() *models.SupportCatalog {
	return s.catalog
}
