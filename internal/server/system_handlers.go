package server

import (
	"encoding/json"
	"net/http"
	"runtime"
	"time"

	"github.com/rs/zerolog"
	"github.com/shirou/gopsutil/v3/cpu"
	"github.com/shirou/gopsutil/v3/mem"

	"github.com/V-Rytham/DBeyond/internal/config"
	"github.com/V-Rytham/DBeyond/internal/modules/analyzer"
)

// SystemHandlers handles system-wide monitoring endpoints
type SystemHandlers struct {
	log         zerolog.Logger
	cfg         *config.Config
	analyzer    *analyzer.Service
	startupTime time.Time
}

// NewSystemHandlers creates a new system handlers instance
func NewSystemHandlers(log zerolog.Logger, cfg *config.Config, svc *analyzer.Service) *SystemHandlers {
	return &SystemHandlers{
		log:         log.With().Str("component", "system_handlers").Logger(),
		cfg:         cfg,
		analyzer:    svc,
		startupTime: time.Now(),
	}
}

// SystemStatusResponse represents the system status response
type SystemStatusResponse struct {
	UptimeHours    float64 `json:"uptime_hours"`
	Goroutines     int     `json:"goroutines"`
	CPUPercent     float64 `json:"cpu_percent"`
	RAMPercent     float64 `json:"ram_percent"`
	AnalysesServed int64   `json:"analyses_served"`
	LastChecked    string  `json:"last_checked"`
}

// HandleSystemStatus returns process uptime, resource usage and the number
// of analyses served since startup
func (h *SystemHandlers) HandleSystemStatus(w http.ResponseWriter, r *http.Request) {
	h.log.Debug().Msg("Getting system status")

	cpuPct, ramPct := h.getSystemStats()

	response := SystemStatusResponse{
		UptimeHours:    time.Since(h.startupTime).Hours(),
		Goroutines:     runtime.NumGoroutine(),
		CPUPercent:     cpuPct,
		RAMPercent:     ramPct,
		AnalysesServed: h.analyzer.AnalysesServed(),
		LastChecked:    time.Now().Format(time.RFC3339),
	}

	h.writeJSON(w, response)
}

// getSystemStats calculates CPU and RAM usage percentages.
// Uses a short sampling window so the status call stays responsive.
func (h *SystemHandlers) getSystemStats() (float64, float64) {
	sample := time.Duration(h.cfg.CPUSampleMillis) * time.Millisecond

	cpuPercent, err := cpu.Percent(sample, false)
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get CPU percentage")
		cpuPercent = []float64{0}
	}

	memStat, err := mem.VirtualMemory()
	if err != nil {
		h.log.Warn().Err(err).Msg("Failed to get memory statistics")
		return 0, 0
	}

	cpuAvg := 0.0
	if len(cpuPercent) > 0 {
		cpuAvg = cpuPercent[0]
	}

	return cpuAvg, memStat.UsedPercent
}

// writeJSON writes a JSON response
func (h *SystemHandlers) writeJSON(w http.ResponseWriter, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.log.Error().Err(err).Msg("Failed to encode JSON response")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}
