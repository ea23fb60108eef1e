package controllers

import (
	"fmt"
	"mindmate/internal/monitor/interfaces"
	"net/http"
	"time"
)

type HealthController struct {
	monitor   interfaces.SchedulerInterface
	startTime time.Time
}

type healthResponse struct {
	Status           string     `json:"status"`
	Uptime           string     `json:"uptime"`
	UptimeSeconds    float64    `json:"uptime_seconds"`
	Backend          string     `json:"backend"`
	BackendCheckedAt *time.Time `json:"backend_checked_at,omitempty"`
}

func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	backend, checkedAt := hc.monitor.Status()
	resp := healthResponse{
		Status:        "ok",
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Backend:       string(backend),
	}
	if !checkedAt.IsZero() {
		resp.BackendCheckedAt = &checkedAt
	}
	writeJSON(w, http.StatusOK, resp)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(monitor interfaces.SchedulerInterface) *HealthController {
	return &HealthController{
		monitor:   monitor,
		startTime: time.Now(),
	}
}
