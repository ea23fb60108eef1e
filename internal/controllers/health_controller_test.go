package controllers

import (
	"context"
	"encoding/json"
	"mindmate/internal/models"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockMonitor struct {
	status    models.HealthStatus
	checkedAt time.Time
}

func (m *mockMonitor) Init() {}
func (m *mockMonitor) Stop() {}
func (m *mockMonitor) Check(_ context.Context) models.HealthStatus {
	return m.status
}
func (m *mockMonitor) Status() (models.HealthStatus, time.Time) {
	return m.status, m.checkedAt
}

func TestHealth_ReturnsOK(t *testing.T) {
	hc := NewHealthController(&mockMonitor{status: models.HealthOK, checkedAt: time.Now()})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))

	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "ok", resp["status"])
	assert.Contains(t, resp, "uptime")
	assert.Contains(t, resp, "uptime_seconds")
	assert.Equal(t, "ok", resp["backend"])
	assert.Contains(t, resp, "backend_checked_at")
}

func TestHealth_BackendOfflineBeforeFirstCheck(t *testing.T) {
	hc := NewHealthController(&mockMonitor{status: models.HealthOffline})

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	var resp map[string]interface{}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	assert.Equal(t, "offline", resp["backend"])
	assert.NotContains(t, resp, "backend_checked_at")
}

func TestHealth_MethodNotAllowed(t *testing.T) {
	hc := NewHealthController(&mockMonitor{})

	req := httptest.NewRequest(http.MethodPost, "/health", nil)
	rr := httptest.NewRecorder()
	hc.Health(rr, req)

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		name     string
		duration time.Duration
		expected string
	}{
		{"zero", 0, "0h0m0s"},
		{"one minute", 60 * time.Second, "0h1m0s"},
		{"one hour", time.Hour, "1h0m0s"},
		{"mixed", time.Hour + time.Minute + time.Second, "1h1m1s"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, formatDuration(tt.duration))
		})
	}
}
