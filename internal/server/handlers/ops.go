package handlers

import (
	"net/http"
	"runtime"
	"time"

	streamvault "github.com/streamvault-media/streamvault/internal/server/config"
	"github.com/streamvault-media/streamvault/internal/server/responses"
	"github.com/streamvault-media/streamvault/internal/version"
)

// OpsHandler answers the operational probes. Every response is computed fresh
// on request - nothing is cached or retained between calls.
type OpsHandler struct {
	serverConfig *streamvault.ServerEnvironment
	startedAt    time.Time
}

func NewOpsHandler(serverConfig *streamvault.ServerEnvironment) *OpsHandler {
	return &OpsHandler{
		serverConfig: serverConfig,
		startedAt:    time.Now(),
	}
}

type HealthResponse struct {
	Status        string  `json:"status" example:"healthy"`
	Timestamp     string  `json:"timestamp" example:"2025-01-01T12:00:00Z"`
	UptimeSeconds float64 `json:"uptime_seconds" example:"42.7"`
	Environment   string  `json:"environment" example:"production"`
	Version       string  `json:"version" example:"1.0.0"`
}

type MemoryMetrics struct {
	AllocBytes      uint64 `json:"alloc_bytes"`
	TotalAllocBytes uint64 `json:"total_alloc_bytes"`
	SysBytes        uint64 `json:"sys_bytes"`
	HeapObjects     uint64 `json:"heap_objects"`
	NumGC           uint32 `json:"gc_cycles"`
}

type CPUMetrics struct {
	NumCPU        int     `json:"num_cpu"`
	NumGoroutine  int     `json:"num_goroutine"`
	GCCPUFraction float64 `json:"gc_cpu_fraction"`
}

type MetricsResponse struct {
	Memory        MemoryMetrics `json:"memory"`
	UptimeSeconds float64       `json:"uptime_seconds"`
	CPU           CPUMetrics    `json:"cpu"`
}

// HealthHandler reports process liveness only - it checks no downstream
// dependency and always answers 200.
func (h *OpsHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	responses.RespondWithJSON(w, http.StatusOK, HealthResponse{
		Status:        "healthy",
		Timestamp:     time.Now().UTC().Format(time.RFC3339),
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
		Environment:   h.serverConfig.Environment,
		Version:       h.serverConfig.AppVersion,
	})
}

// MetricsHandler returns an instantaneous snapshot of process memory and CPU
// figures. No aggregation, no time-series retention.
func (h *OpsHandler) MetricsHandler(w http.ResponseWriter, r *http.Request) {
	var memStats runtime.MemStats
	runtime.ReadMemStats(&memStats)

	responses.RespondWithJSON(w, http.StatusOK, MetricsResponse{
		Memory: MemoryMetrics{
			AllocBytes:      memStats.Alloc,
			TotalAllocBytes: memStats.TotalAlloc,
			SysBytes:        memStats.Sys,
			HeapObjects:     memStats.HeapObjects,
			NumGC:           memStats.NumGC,
		},
		UptimeSeconds: time.Since(h.startedAt).Seconds(),
		CPU: CPUMetrics{
			NumCPU:        runtime.NumCPU(),
			NumGoroutine:  runtime.NumGoroutine(),
			GCCPUFraction: memStats.GCCPUFraction,
		},
	})
}

// VersionHandler returns the build information set via ldflags.
func (h *OpsHandler) VersionHandler(w http.ResponseWriter, r *http.Request) {
	responses.RespondWithJSON(w, http.StatusOK, version.Get())
}
