package services

import (
	"context"
	"mindmate/internal/models"
	"mindmate/internal/providers"
	"mindmate/internal/structures"
	"strings"
	"sync"
	"time"
)

type WorkflowState int

const (
	StateIdle WorkflowState = iota
	StateSelected
	StateSubmitting
	StateReady
	StateFailed
)

func (s WorkflowState) String() string {
	switch s {
	case StateSelected:
		return "selected"
	case StateSubmitting:
		return "submitting"
	case StateReady:
		return "ready"
	case StateFailed:
		return "failed"
	default:
		return "idle"
	}
}

func (s WorkflowState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// WorkflowSnapshot is a copy of the workflow at one instant. In the failed
// state MoodLogged tells whether the entry reached the provider before the
// support call failed.
type WorkflowSnapshot struct {
	State       WorkflowState         `json:"state" yaml:"state"`
	Mood        *models.MoodOption    `json:"mood" yaml:"mood"`
	Intensity   int                   `json:"intensity" yaml:"intensity"`
	JournalText string                `json:"journal_text" yaml:"journal_text"`
	Support     *models.SupportBundle `json:"support,omitempty" yaml:"support,omitempty"`
	Error       string                `json:"error,omitempty" yaml:"error,omitempty"`
	MoodLogged  bool                  `json:"mood_logged" yaml:"mood_logged"`
	Ack         *models.LogAck        `json:"ack,omitempty" yaml:"ack,omitempty"`
}

type MoodWorkflowInterface interface {
	State() WorkflowSnapshot
	SelectMood(name string) error
	SetIntensity(n int) (int, error)
	SetJournal(text string) error
	Submit(ctx context.Context) (WorkflowSnapshot, error)
	LogAnother() error
}

type MoodWorkflow struct {
	mu      sync.Mutex
	service OperationServiceInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface
	timeout time.Duration
	now     func() time.Time

	state     WorkflowState
	mood      *models.MoodOption
	intensity int
	journal   string
	support   *models.SupportBundle
	failure   string
	logged    bool
	ack       *models.LogAck
}

func NewMoodWorkflow(conf *structures.Config, logger providers.Logger, metrics providers.MetricsProviderInterface, service OperationServiceInterface) MoodWorkflowInterface {
	return &MoodWorkflow{
		service:   service,
		logger:    logger,
		metrics:   metrics,
		timeout:   conf.Backend.Timeout,
		now:       time.Now,
		intensity: models.DefaultIntensity,
	}
}

func (w *MoodWorkflow) State() WorkflowSnapshot {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.snapshotLocked()
}

func (w *MoodWorkflow) snapshotLocked() WorkflowSnapshot {
	snap := WorkflowSnapshot{
		State:       w.state,
		Intensity:   w.intensity,
		JournalText: w.journal,
		Support:     w.support.Clone(),
		Error:       w.failure,
		MoodLogged:  w.logged,
	}
	if w.mood != nil {
		m := *w.mood
		snap.Mood = &m
	}
	if w.ack != nil {
		a := *w.ack
		snap.Ack = &a
	}
	return snap
}

// SelectMood keeps intensity and journal text across re-selection.
func (w *MoodWorkflow) SelectMood(name string) error {
	if strings.TrimSpace(name) == "" {
		return &ValidationError{Field: "mood", Message: msgSelectMood}
	}
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateIdle && w.state != StateSelected {
		return &StateError{Op: "select a mood", State: w.state}
	}
	opt, _ := models.LookupMood(name)
	w.mood = &opt
	w.state = StateSelected
	return nil
}

// SetIntensity stores n clamped to [1,10] and returns the stored value.
func (w *MoodWorkflow) SetIntensity(n int) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelected {
		return w.intensity, &StateError{Op: "set intensity", State: w.state}
	}
	w.intensity = models.ClampIntensity(n)
	return w.intensity, nil
}

func (w *MoodWorkflow) SetJournal(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateSelected {
		return &StateError{Op: "edit the journal", State: w.state}
	}
	w.journal = text
	return nil
}

// Submit logs the mood and then asks for support content, strictly in that
// order. It detaches from the caller's cancellation: once submitting, the
// workflow always reaches ready or failed.
func (w *MoodWorkflow) Submit(ctx context.Context) (WorkflowSnapshot, error) {
	w.mu.Lock()
	switch w.state {
	case StateIdle:
		snap := w.snapshotLocked()
		w.mu.Unlock()
		w.metrics.IncWorkflowSubmissions("rejected")
		return snap, &ValidationError{Field: "mood", Message: msgSelectMood}
	case StateSelected:
	default:
		snap := w.snapshotLocked()
		w.mu.Unlock()
		return snap, &StateError{Op: "submit", State: snap.State}
	}

	entry := models.MoodEntry{
		MoodName:    w.mood.Name,
		Intensity:   w.intensity,
		JournalText: w.journal,
		Timestamp:   w.now(),
	}
	if err := entry.Validate(); err != nil {
		snap := w.snapshotLocked()
		w.mu.Unlock()
		w.metrics.IncWorkflowSubmissions("rejected")
		return snap, &ValidationError{Field: "mood", Message: err.Error()}
	}
	w.state = StateSubmitting
	w.mu.Unlock()

	ctx = context.WithoutCancel(ctx)

	stepCtx, cancel := w.stepContext(ctx)
	ack, err := w.service.LogMood(stepCtx, entry)
	cancel()
	if err != nil {
		return w.fail(nil, err)
	}
	w.logger.Debugf(providers.TypeWorkflow, "mood %q logged: %s", entry.MoodName, ack.Status)

	stepCtx, cancel = w.stepContext(ctx)
	message, err := w.service.SupportMessage(stepCtx, entry.MoodName, entry.Intensity, nil, entry.JournalText)
	cancel()
	if err != nil {
		return w.fail(&ack, err)
	}

	bundle := w.service.Catalog().Bundle(message)

	w.mu.Lock()
	w.state = StateReady
	w.support = bundle
	w.logged = true
	w.ack = &ack
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.metrics.IncWorkflowSubmissions("ready")
	w.logger.Infof(providers.TypeWorkflow, "mood %q submitted", entry.MoodName)
	return snap, nil
}

func (w *MoodWorkflow) stepContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if w.timeout > 0 {
		return context.WithTimeout(ctx, w.timeout)
	}
	return context.WithCancel(ctx)
}

// fail moves to the failed state. The user sees the same message whether or
// not the mood was stored; ack records that it was.
func (w *MoodWorkflow) fail(ack *models.LogAck, err error) (WorkflowSnapshot, error) {
	w.mu.Lock()
	w.state = StateFailed
	w.failure = msgMoodFailed
	w.logged = ack != nil
	w.ack = ack
	snap := w.snapshotLocked()
	w.mu.Unlock()

	w.metrics.IncWorkflowSubmissions("failed")
	w.logger.Errorf(providers.TypeWorkflow, "mood submission failed (mood logged: %t): %s", snap.MoodLogged, err)
	return snap, err
}

// LogAnother discards everything and starts over.
func (w *MoodWorkflow) LogAnother() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.state != StateReady && w.state != StateFailed {
		return &StateError{Op: "start a new entry", State: w.state}
	}
	w.state = StateIdle
	w.mood = nil
	w.intensity = models.DefaultIntensity
	w.journal = ""
	w.support = nil
	w.failure = ""
	w.logged = false
	w.ack = nil
	return nil
}
