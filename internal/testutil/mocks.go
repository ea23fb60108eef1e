package testutil

import (
	"context"
	"maps"
	"mindmate/internal/models"
	"mindmate/internal/providers"
	"sync"
	"time"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// Count returns how many entries were logged at level.
func (m *MockLogger) Count(level string) int {
	m.mu.Lock()
	defer m.mu.Unlock()
	n := 0
	for _, l := range m.Logs {
		if l.Level == level {
			n++
		}
	}
	return n
}

// Call is one recorded Invoke. Start and End bracket the call, so ordering
// between operations can be asserted.
type Call struct {
	Op      string
	Payload map[string]any
	Start   time.Time
	End     time.Time
}

// MockGateway implements gateway.Gateway. Responses holds a JSON body per
// operation; Errors holds a failure per operation; Before runs inside the
// call before it answers, e.g. to block on a barrier.
type MockGateway struct {
	mu        sync.Mutex
	Responses map[string]string
	Errors    map[string]error
	Before    map[string]func(ctx context.Context)
	Status    models.HealthStatus
	Calls     []Call
}

func NewMockGateway() *MockGateway {
	return &MockGateway{
		Responses: make(map[string]string),
		Errors:    make(map[string]error),
		Before:    make(map[string]func(ctx context.Context)),
		Status:    models.HealthOK,
	}
}

func (m *MockGateway) Invoke(ctx context.Context, operation string, payload map[string]any) (*models.RawPayload, error) {
	start := time.Now()

	m.mu.Lock()
	before := m.Before[operation]
	err := m.Errors[operation]
	body, ok := m.Responses[operation]
	m.mu.Unlock()

	if before != nil {
		before(ctx)
	}

	var raw *models.RawPayload
	if err == nil {
		if !ok {
			body = "{}"
		}
		raw = models.NewRawPayload()
		err = raw.UnmarshalJSON([]byte(body))
	}

	m.mu.Lock()
	m.Calls = append(m.Calls, Call{Op: operation, Payload: maps.Clone(payload), Start: start, End: time.Now()})
	m.mu.Unlock()

	if err != nil {
		return nil, err
	}
	return raw, nil
}

func (m *MockGateway) Health(ctx context.Context) models.HealthStatus {
	start := time.Now()
	m.mu.Lock()
	before := m.Before["health_check"]
	m.mu.Unlock()

	if before != nil {
		before(ctx)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calls = append(m.Calls, Call{Op: "health_check", Start: start, End: time.Now()})
	return m.Status
}

func (m *MockGateway) SetResponse(operation, body string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Responses[operation] = body
}

func (m *MockGateway) SetError(operation string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Errors[operation] = err
}

func (m *MockGateway) SetBefore(operation string, fn func(ctx context.Context)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Before[operation] = fn
}

// CallsTo returns the recorded calls of one operation.
func (m *MockGateway) CallsTo(operation string) []Call {
	m.mu.Lock()
	defer m.mu.Unlock()
	var out []Call
	for _, c := range m.Calls {
		if c.Op == operation {
			out = append(out, c)
		}
	}
	return out
}

// Ops returns the operation names in completion order.
func (m *MockGateway) Ops() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]string, len(m.Calls))
	for i, c := range m.Calls {
		out[i] = c.Op
	}
	return out
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu     sync.Mutex
	Data   map[string][]byte
	Clears int
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

func (m *MockCache) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data = make(map[string][]byte)
	m.Clears++
}

// MockMetrics implements providers.MetricsProviderInterface and counts
// what the code under test reports.
type MockMetrics struct {
	mu          sync.Mutex
	Operations  map[string]int // "op:outcome"
	Workflow    map[string]int
	Aggregates  map[string]int // "view:outcome"
	Requests    int
	CacheHits   int
	CacheMisses int
	BackendUp   *bool
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		Operations: make(map[string]int),
		Workflow:   make(map[string]int),
		Aggregates: make(map[string]int),
	}
}

func (m *MockMetrics) IncRequestsTotal(_ string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Requests++
}
func (m *MockMetrics) ObserveRequestDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncOperationsTotal(op string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Operations[op+":"+outcome]++
}
func (m *MockMetrics) ObserveOperationDuration(_ string, _ time.Duration) {}
func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}
func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}
func (m *MockMetrics) IncWorkflowSubmissions(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Workflow[outcome]++
}
func (m *MockMetrics) IncAggregateFetches(view string, outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Aggregates[view+":"+outcome]++
}
func (m *MockMetrics) SetBackendUp(up bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.BackendUp = &up
}

func (m *MockMetrics) Snapshot() (ops, workflow, aggregates map[string]int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return maps.Clone(m.Operations), maps.Clone(m.Workflow), maps.Clone(m.Aggregates)
}
