package services

import (
	"errors"
	"fmt"
	"strings"
)

const (
	ViewMood     = "mood"
	ViewDaily    = "daily"
	ViewWeekly   = "weekly"
	ViewAnalyze  = "analyze"
	ViewAffirm   = "affirm"
	ViewTriggers = "triggers"
)

const (
	msgSelectMood    = "Please select a mood before continuing."
	msgMoodFailed    = "There was a problem logging your mood. Please try again in a moment."
	msgDailyFailed   = "Unable to load your daily summary right now. Please try again in a moment."
	msgWeeklyFailed  = "Unable to load your weekly insights right now. Please try again later."
	msgGenericFailed = "There was a problem. Please try again in a moment."
	msgStale         = "A newer request replaced this one."
)

var ErrStaleResult = errors.New("result superseded by a newer fetch")

// ValidationError is raised before any network call.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// StateError is an operation the workflow does not allow in its current state.
type StateError struct {
	Op    string
	State WorkflowState
}

func (e *StateError) Error() string {
	return fmt.Sprintf("cannot %s while %s", e.Op, e.State)
}

type SourceFailure struct {
	Source string
	Err    error
}

// AggregateFailure reports that a fan-out could not produce its view. It
// never carries partial data.
type AggregateFailure struct {
	View     string
	Failures []SourceFailure
}

func (e *AggregateFailure) Error() string {
	parts := make([]string, len(e.Failures))
	for i, f := range e.Failures {
		parts[i] = fmt.Sprintf("%s: %v", f.Source, f.Err)
	}
	return fmt.Sprintf("%s aggregate failed: %s", e.View, strings.Join(parts, "; "))
}

func (e *AggregateFailure) Unwrap() []error {
	errs := make([]error, len(e.Failures))
	for i, f := range e.Failures {
		errs[i] = f.Err
	}
	return errs
}

// UserMessage turns any orchestration error into the one message a view
// shows. Validation and state errors speak for themselves.
func UserMessage(view string, err error) string {
	if err == nil {
		return ""
	}
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve.Message
	}
	var se *StateError
	if errors.As(err, &se) {
		return se.Error()
	}
	if errors.Is(err, ErrStaleResult) {
		return msgStale
	}
	switch view {
	case ViewMood:
		return msgMoodFailed
	case ViewDaily:
		return msgDailyFailed
	case ViewWeekly:
		return msgWeeklyFailed
	default:
		return msgGenericFailed
	}
}
