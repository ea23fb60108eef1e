package services

import (
	"mindmate/internal/structures"
	"mindmate/internal/testutil"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func testConfig() *structures.Config {
	return &structures.Config{
		Backend: structures.BackendConfig{
			BaseURL:   "http://localhost:5000",
			Transport: "dispatch",
			Timeout:   time.Second,
			UserID:    "user1",
			UserName:  "Friend",
		},
		Insights: structures.InsightsConfig{
			CommonEmotionsDays:       30,
			TrendLookbackDays:        14,
			TriggerLookbackDays:      30,
			BreathingDurationSeconds: 300,
		},
	}
}

func newOperationService(t *testing.T, conf *structures.Config, gw *testutil.MockGateway) OperationServiceInterface {
	t.Helper()
	svc, err := NewOperationService(conf, gw)
	require.NoError(t, err)
	return svc
}

// barrier blocks each caller until n callers have arrived, or fails the
// test after a timeout. It proves calls are in flight at the same time.
type barrier struct {
	t       *testing.T
	arrived chan struct{}
	release chan struct{}
}

func newBarrier(t *testing.T, n int) *barrier {
	b := &barrier{t: t, arrived: make(chan struct{}, n), release: make(chan struct{})}
	go func() {
		for range n {
			select {
			case <-b.arrived:
			case <-time.After(2 * time.Second):
				return
			}
		}
		close(b.release)
	}()
	return b
}

func (b *barrier) wait() {
	b.arrived <- struct{}{}
	select {
	case <-b.release:
	case <-time.After(2 * time.Second):
		b.t.Error("calls were not issued concurrently")
	}
}
