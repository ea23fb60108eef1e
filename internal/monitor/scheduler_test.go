package monitor

import (
	"context"
	"mindmate/internal/models"
	"mindmate/internal/services"
	"mindmate/internal/structures"
	"mindmate/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig(interval time.Duration) *structures.Config {
	return &structures.Config{
		Backend: structures.BackendConfig{
			BaseURL: "http://localhost:5000",
			Timeout: time.Second,
			UserID:  "user1",
		},
		Monitor: structures.MonitorConfig{Interval: interval},
	}
}

func newTestScheduler(t *testing.T, interval time.Duration, gw *testutil.MockGateway) (*Scheduler, *testutil.MockLogger) {
	t.Helper()
	conf := testConfig(interval)
	svc, err := services.NewOperationService(conf, gw)
	require.NoError(t, err)
	logger := &testutil.MockLogger{}
	return NewScheduler(conf, logger, svc).(*Scheduler), logger
}

func TestScheduler_StatusBeforeFirstCheck(t *testing.T) {
	s, _ := newTestScheduler(t, time.Minute, testutil.NewMockGateway())
	status, at := s.Status()
	assert.Equal(t, models.HealthOffline, status)
	assert.True(t, at.IsZero())
}

func TestScheduler_CheckRecordsStatus(t *testing.T) {
	gw := testutil.NewMockGateway()
	s, logger := newTestScheduler(t, time.Minute, gw)

	assert.Equal(t, models.HealthOK, s.Check(context.Background()))
	status, at := s.Status()
	assert.Equal(t, models.HealthOK, status)
	assert.False(t, at.IsZero())
	assert.Equal(t, 1, logger.Count("info"))

	gw.Status = models.HealthOffline
	assert.Equal(t, models.HealthOffline, s.Check(context.Background()))
	status, _ = s.Status()
	assert.Equal(t, models.HealthOffline, status)
	assert.Equal(t, 1, logger.Count("warn"))

	// unchanged status is not logged again
	s.Check(context.Background())
	assert.Equal(t, 1, logger.Count("warn"))
}

func TestScheduler_InitChecksImmediately(t *testing.T) {
	gw := testutil.NewMockGateway()
	s, _ := newTestScheduler(t, time.Hour, gw)

	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		status, _ := s.Status()
		return status == models.HealthOK
	}, time.Second, 10*time.Millisecond)
	assert.Len(t, gw.CallsTo("health_check"), 1)
}

func TestScheduler_InitDoesNotWaitForBackend(t *testing.T) {
	gw := testutil.NewMockGateway()
	release := make(chan struct{})
	gw.SetBefore("health_check", func(ctx context.Context) {
		select {
		case <-release:
		case <-ctx.Done():
		}
	})
	s, _ := newTestScheduler(t, time.Hour, gw)

	started := time.Now()
	s.Init()
	defer s.Stop()
	assert.Less(t, time.Since(started), 500*time.Millisecond)

	status, at := s.Status()
	assert.Equal(t, models.HealthOffline, status)
	assert.True(t, at.IsZero())

	close(release)
	assert.Eventually(t, func() bool {
		status, _ := s.Status()
		return status == models.HealthOK
	}, time.Second, 10*time.Millisecond)
}

func TestScheduler_StopCancelsFirstCheck(t *testing.T) {
	gw := testutil.NewMockGateway()
	gw.SetBefore("health_check", func(ctx context.Context) { <-ctx.Done() })
	s, _ := newTestScheduler(t, time.Hour, gw)

	s.Init()
	stopped := make(chan struct{})
	go func() {
		s.Stop()
		close(stopped)
	}()

	select {
	case <-stopped:
	case <-time.After(2 * time.Second):
		t.Fatal("Stop did not return while the first check was in flight")
	}
}

func TestScheduler_InitPolls(t *testing.T) {
	gw := testutil.NewMockGateway()
	s, _ := newTestScheduler(t, time.Second, gw)

	s.Init()
	defer s.Stop()

	assert.Eventually(t, func() bool {
		return len(gw.CallsTo("health_check")) >= 2
	}, 3*time.Second, 20*time.Millisecond)
}

func TestScheduler_StopNilCron(t *testing.T) {
	s, _ := newTestScheduler(t, time.Minute, testutil.NewMockGateway())
	// Should not panic with nil cron
	s.Stop()
}
