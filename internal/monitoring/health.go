package monitoring

import (
	"context"
	"encoding/json"
	"net/http"
	"runtime"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/23skdu/longbow-quiver/internal/logger"
)

// HealthStatus is the JSON body served by /status.
type HealthStatus struct {
	Status    string        `json:"status"`
	Timestamp time.Time     `json:"timestamp"`
	Uptime    time.Duration `json:"uptime"`
	System    SystemInfo    `json:"system"`
	LastRun   *RunInfo      `json:"last_run,omitempty"`
}

// SystemInfo contains process-level information
type SystemInfo struct {
	GoVersion    string `json:"go_version"`
	OS           string `json:"os"`
	Arch         string `json:"arch"`
	NumCPU       int    `json:"num_cpu"`
	MemoryMB     int    `json:"memory_mb"`
	MemoryUsedMB int    `json:"memory_used_mb"`
}

// RunInfo summarizes the most recent corpus generation run.
type RunInfo struct {
	Files     int           `json:"files"`
	Bytes     int64         `json:"bytes"`
	Duration  time.Duration `json:"duration"`
	Completed time.Time     `json:"completed"`
}

// Monitor serves health, status and Prometheus metrics endpoints
// alongside a generation run. It never participates in generation
// control flow.
type Monitor struct {
	startTime time.Time
	server    *http.Server
	mu        sync.RWMutex
	lastRun   *RunInfo
}

func NewMonitor() *Monitor {
	return &Monitor{startTime: time.Now()}
}

// Start serves the endpoints on addr and blocks until the server
// stops.
func (m *Monitor) Start(addr string) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", m.handleHealth)
	mux.HandleFunc("/healthz", m.handleHealth) // Kubernetes compatibility
	mux.Handle("/metrics", promhttp.Handler())
	mux.HandleFunc("/status", m.handleStatus)

	m.server = &http.Server{
		Addr:         addr,
		Handler:      mux,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	logger.Log.Info("monitor serving", "addr", addr)
	return m.server.ListenAndServe()
}

// Stop shuts the server down.
func (m *Monitor) Stop(ctx context.Context) error {
	if m.server != nil {
		return m.server.Shutdown(ctx)
	}
	return nil
}

// RecordRun notes a completed corpus run so /status can report it.
func (m *Monitor) RecordRun(files int, bytes int64, duration time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastRun = &RunInfo{
		Files:     files,
		Bytes:     bytes,
		Duration:  duration,
		Completed: time.Now(),
	}
}

func (m *Monitor) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (m *Monitor) handleStatus(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(m.getStatus())
}

func (m *Monitor) getStatus() HealthStatus {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return HealthStatus{
		Status:    "healthy",
		Timestamp: time.Now(),
		Uptime:    time.Since(m.startTime),
		System:    systemInfo(),
		LastRun:   m.lastRun,
	}
}

func systemInfo() SystemInfo {
	var ms runtime.MemStats
	runtime.ReadMemStats(&ms)

	return SystemInfo{
		GoVersion:    runtime.Version(),
		OS:           runtime.GOOS,
		Arch:         runtime.GOARCH,
		NumCPU:       runtime.NumCPU(),
		MemoryMB:     int(ms.Sys / 1024 / 1024),
		MemoryUsedMB: int(ms.Alloc / 1024 / 1024),
	}
}
