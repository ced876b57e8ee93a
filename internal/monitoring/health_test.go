package monitoring

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHealthHandler(t *testing.T) {
	m := NewMonitor()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()

	m.handleHealth(w, req)
	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", res.StatusCode)
	}

	var body map[string]string
	if err := json.NewDecoder(res.Body).Decode(&body); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if body["status"] != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", body["status"])
	}
	if body["timestamp"] == "" {
		t.Error("Expected timestamp to be set")
	}
}

func TestStatusHandler(t *testing.T) {
	m := NewMonitor()

	req := httptest.NewRequest(http.MethodGet, "/status", nil)
	w := httptest.NewRecorder()

	m.handleStatus(w, req)
	res := w.Result()
	defer res.Body.Close()

	if res.StatusCode != http.StatusOK {
		t.Errorf("Expected status 200, got %d", res.StatusCode)
	}

	var status HealthStatus
	if err := json.NewDecoder(res.Body).Decode(&status); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if status.Status != "healthy" {
		t.Errorf("Expected status 'healthy', got '%s'", status.Status)
	}
	if status.System.GoVersion == "" {
		t.Error("Expected go_version to be set")
	}
	if status.LastRun != nil {
		t.Error("Expected no last_run before any recorded run")
	}
}

func TestStatusReportsLastRun(t *testing.T) {
	m := NewMonitor()
	m.RecordRun(48, 8256, 20*time.Millisecond)

	status := m.getStatus()
	if status.LastRun == nil {
		t.Fatal("Expected last_run after a recorded run")
	}
	if status.LastRun.Files != 48 {
		t.Errorf("Expected 48 files, got %d", status.LastRun.Files)
	}
	if status.LastRun.Bytes != 8256 {
		t.Errorf("Expected 8256 bytes, got %d", status.LastRun.Bytes)
	}
	if status.LastRun.Completed.IsZero() {
		t.Error("Expected completed timestamp to be set")
	}
}
