package routes

import (
	"fmt"
	"net/http"
	"runtime"
	"time"
)

// Build-time variables (injected by ldflags)
var (
	version   = "dev"
	buildTime = "unknown"
	gitCommit = "unknown"
)

// HealthResponse is the liveness probe payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
	GoVersion string    `json:"go_version"`
	Uptime    string    `json:"uptime"`
	StartTime string    `json:"start_time"`
}

// VersionResponse describes the running build.
type VersionResponse struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	GoVersion string `json:"go_version"`
	GitCommit string `json:"git_commit,omitempty"`
}

var startTime = time.Now()

// formatUptime formats a duration into days, hours, minutes, seconds.
func formatUptime(d time.Duration) string {
	days := int(d.Hours() / 24)
	hours := int(d.Hours()) % 24
	minutes := int(d.Minutes()) % 60
	seconds := int(d.Seconds()) % 60
	return fmt.Sprintf("%dd %dh %dm %ds", days, hours, minutes, seconds)
}

// Health is the liveness probe for load balancers and monitoring.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now(),
		Version:   version,
		GoVersion: runtime.Version(),
		Uptime:    formatUptime(time.Since(startTime)),
		StartTime: startTime.Format("2006-01-02 15:04:05 MST"),
	})
}

// Version reports build information.
func (h *Handler) Version(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, VersionResponse{
		Version:   version,
		BuildTime: buildTime,
		GoVersion: runtime.Version(),
		GitCommit: gitCommit,
	})
}
