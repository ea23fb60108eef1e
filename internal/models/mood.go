package models

import (
	"fmt"
	"github.com/gookit/validate"
	"strings"
	"time"
)

const (
	MinIntensity     = 1
	MaxIntensity     = 10
	DefaultIntensity = 5
)

// ClampIntensity pins n into [MinIntensity, MaxIntensity].
func ClampIntensity(n int) int {
	return max(MinIntensity, min(MaxIntensity, n))
}

type MoodEntry struct {
	MoodName    string    `json:"mood_name" yaml:"mood_name" validate:"required"`
	Intensity   int       `json:"intensity" yaml:"intensity" validate:"required|min:1|max:10"`
	JournalText string    `json:"journal_text" yaml:"journal_text"`
	Timestamp   time.Time `json:"timestamp" yaml:"timestamp"`
}

func (e *MoodEntry) Validate() error {
	if strings.TrimSpace(e.MoodName) == "" {
		return fmt.Errorf("mood_name is required")
	}
	v := validate.Struct(e)
	if !v.Validate() {
		return fmt.Errorf("invalid mood entry: %s", v.Errors.One())
	}
	return nil
}

type MoodOption struct {
	Name  string `json:"name" yaml:"name"`
	Emoji string `json:"emoji" yaml:"emoji"`
	Label string `json:"label" yaml:"label"`
}

var moodOptions = []MoodOption{
	{Name: "happy", Emoji: "😊", Label: "Happy"},
	{Name: "sad", Emoji: "😢", Label: "Sad"},
	{Name: "anxious", Emoji: "😰", Label: "Anxious"},
	{Name: "calm", Emoji: "😌", Label: "Calm"},
	{Name: "stressed", Emoji: "😫", Label: "Stressed"},
	{Name: "content", Emoji: "😊", Label: "Content"},
	{Name: "overwhelmed", Emoji: "😵", Label: "Overwhelmed"},
	{Name: "peaceful", Emoji: "🧘", Label: "Peaceful"},
	{Name: "excited", Emoji: "🤩", Label: "Excited"},
	{Name: "lonely", Emoji: "😔", Label: "Lonely"},
}

func MoodOptions() []MoodOption {
	out := make([]MoodOption, len(moodOptions))
	copy(out, moodOptions)
	return out
}

// LookupMood resolves a mood name to its catalog option. Unknown names get a
// bare option labelled with the name itself.
func LookupMood(name string) (MoodOption, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, opt := range moodOptions {
		if opt.Name == name {
			return opt, true
		}
	}
	return MoodOption{Name: name, Label: name}, false
}

// LogAck acknowledges a stored mood entry.
type LogAck struct {
	Status  string `json:"status,omitempty" yaml:"status,omitempty"`
	Message string `json:"message,omitempty" yaml:"message,omitempty"`
	EntryID string `json:"entry_id,omitempty" yaml:"entry_id,omitempty"`
}

type EmotionInference struct {
	Emotions   []string `json:"emotions" yaml:"emotions"`
	Confidence *float64 `json:"confidence" yaml:"confidence"`
	Intensity  *float64 `json:"intensity" yaml:"intensity"`
}

type HealthStatus string

const (
	HealthOK      HealthStatus = "ok"
	HealthOffline HealthStatus = "offline"
)
