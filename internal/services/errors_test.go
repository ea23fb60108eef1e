package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestUserMessage(t *testing.T) {
	boom := errors.New("boom")
	tests := []struct {
		name string
		view string
		err  error
		want string
	}{
		{"nil", ViewMood, nil, ""},
		{"validation", ViewMood, &ValidationError{Field: "mood", Message: msgSelectMood}, msgSelectMood},
		{"state", ViewMood, &StateError{Op: "submit", State: StateSubmitting}, "cannot submit while submitting"},
		{"mood", ViewMood, boom, msgMoodFailed},
		{"daily", ViewDaily, boom, msgDailyFailed},
		{"weekly", ViewWeekly, &AggregateFailure{View: ViewWeekly, Failures: []SourceFailure{{Source: "x", Err: boom}}}, msgWeeklyFailed},
		{"other", ViewAffirm, boom, msgGenericFailed},
		{"stale", ViewWeekly, ErrStaleResult, msgStale},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.view, tt.err))
		})
	}
}

func TestAggregateFailure(t *testing.T) {
	first := errors.New("first")
	second := errors.New("second")
	err := &AggregateFailure{View: ViewWeekly, Failures: []SourceFailure{
		{Source: "get_weekly_summary", Err: first},
		{Source: "find_common_emotions", Err: second},
	}}

	assert.ErrorIs(t, err, first)
	assert.ErrorIs(t, err, second)
	assert.Equal(t, "weekly aggregate failed: get_weekly_summary: first; find_common_emotions: second", err.Error())
}
