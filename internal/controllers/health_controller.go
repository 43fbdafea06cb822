package controllers

import (
	"fmt"
	json "github.com/goccy/go-json"
	"github.com/james-tempus/domo-out-of-stock-alerts/internal/services"
	"net/http"
	"time"
)

type HealthController struct {
	service   services.AlertsServiceInterface
	startTime time.Time
}

type healthResponse struct {
	Status        string                   `json:"status"`
	State         services.ControllerState `json:"state"`
	Uptime        string                   `json:"uptime"`
	UptimeSeconds float64                  `json:"uptime_seconds"`
	Counts        services.Counts          `json:"counts"`
}

// Health reports ok once the alerts are loaded and 503 while they are not.
func (hc *HealthController) Health(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "Method Not Allowed", http.StatusMethodNotAllowed)
		return
	}

	uptime := time.Since(hc.startTime)
	state := hc.service.State()
	resp := healthResponse{
		Status:        "ok",
		State:         state,
		Uptime:        formatDuration(uptime),
		UptimeSeconds: uptime.Seconds(),
		Counts:        hc.service.Counts(),
	}
	status := http.StatusOK
	if state != services.StateReady {
		resp.Status = "starting"
		status = http.StatusServiceUnavailable
	}

	gson, err := json.Marshal(resp)
	if err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(gson)
}

func formatDuration(d time.Duration) string {
	hours := int(d.Hours())
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dh%dm%ds", hours, minutes, seconds)
}

func NewHealthController(service services.AlertsServiceInterface) *HealthController {
	return &HealthController{
		service:   service,
		startTime: time.Now(),
	}
}
