package normalizer

import (
	"mindmate/internal/models"
)

// SupportMessage reads generate_support_message, falling back when the
// provider sent no usable text.
func SupportMessage(raw *models.RawPayload, fallback string) string {
	if s := firstText(raw, "message"); s != "" {
		return s
	}
	if data, ok := raw.Object("data"); ok {
		if s := firstText(data, "message"); s != "" {
			return s
		}
	}
	if s := firstText(raw, "result"); s != "" {
		return s
	}
	return fallback
}

// Recommendations reads recommend_activities. Bare strings become names.
func Recommendations(raw *models.RawPayload) []models.Recommendation {
	out := make([]models.Recommendation, 0)
	v, _ := first(raw, "recommendations", "activities", "result")
	list, ok := v.([]any)
	if !ok {
		return out
	}
	for _, item := range list {
		var rec models.Recommendation
		switch t := item.(type) {
		case string:
			rec.Name = Text(t)
		case *models.RawPayload:
			rec.Name = firstText(t, "name", "activity", "title")
			rec.Description = firstText(t, "description", "reason")
			rec.Kind = firstText(t, "type", "kind")
			d, _ := first(t, "duration_minutes", "duration")
			if n, ok := Count(d); ok && n > 0 {
				rec.DurationMinutes = &n
			}
		}
		if rec.Name == "" && rec.Description == "" {
			continue
		}
		out = append(out, rec)
	}
	return out
}

// BreathingExercise reads generate_breathing_exercise; blank is nil.
func BreathingExercise(raw *models.RawPayload) *string {
	if ex, ok := raw.Object("exercise"); ok {
		if s := firstText(ex, "text", "instructions", "description"); s != "" {
			return &s
		}
	}
	if s := firstText(raw, "exercise", "instructions", "result"); s != "" {
		return &s
	}
	return nil
}

// Affirmation reads generate_affirmation; blank is nil.
func Affirmation(raw *models.RawPayload) *string {
	if s := firstText(raw, "affirmation", "message", "result"); s != "" {
		return &s
	}
	return nil
}

// RepeatingTriggers reads find_repeating_triggers.
func RepeatingTriggers(raw *models.RawPayload) []string {
	v, _ := first(raw, "triggers", "repeating_triggers", "result")
	return textList(v, "name", "trigger")
}

// EmotionInference reads emotion_from_text.
func EmotionInference(raw *models.RawPayload) models.EmotionInference {
	out := models.EmotionInference{Emotions: make([]string, 0)}
	if v, ok := raw.Get("emotions"); ok {
		out.Emotions = textList(v, "emotion", "name")
	}
	if len(out.Emotions) == 0 {
		if s := firstText(raw, "emotion", "detected_emotion"); s != "" {
			out.Emotions = append(out.Emotions, s)
		}
	}
	confidence, _ := raw.Get("confidence")
	if c := Number(confidence); c != nil && *c >= 0 && *c <= 1 {
		out.Confidence = c
	}
	intensity, _ := raw.Get("intensity")
	out.Intensity = clampIntensity(Number(intensity))
	return out
}

// LogAck reads the log_mood acknowledgement.
func LogAck(raw *models.RawPayload) models.LogAck {
	out := models.LogAck{
		Status:  firstText(raw, "status"),
		Message: firstText(raw, "message"),
	}
	if data, ok := raw.Object("data"); ok {
		out.EntryID = firstText(data, "id", "entry_id")
	}
	if out.EntryID == "" {
		out.EntryID = firstText(raw, "entry_id", "id")
	}
	return out
}
