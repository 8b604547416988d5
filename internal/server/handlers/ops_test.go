package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	streamvault "github.com/streamvault-media/streamvault/internal/server/config"
)

func testConfig() *streamvault.ServerEnvironment {
	return &streamvault.ServerEnvironment{
		Environment: "test",
		AppVersion:  "1.0.0",
	}
}

func TestHealthHandler(t *testing.T) {
	ops := NewOpsHandler(testConfig())

	req := httptest.NewRequest("GET", "/health", nil)
	rr := httptest.NewRecorder()
	ops.HealthHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
	}

	var health HealthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	if health.Status != "healthy" {
		t.Errorf("status = %q, want healthy", health.Status)
	}
	if _, err := time.Parse(time.RFC3339, health.Timestamp); err != nil {
		t.Errorf("timestamp %q is not RFC3339: %v", health.Timestamp, err)
	}
	if health.UptimeSeconds < 0 {
		t.Errorf("uptime is negative: %f", health.UptimeSeconds)
	}
	if health.Environment != "test" {
		t.Errorf("environment = %q, want test", health.Environment)
	}
	if health.Version != "1.0.0" {
		t.Errorf("version = %q, want 1.0.0", health.Version)
	}
}

func TestHealthHandlerConcurrent(t *testing.T) {
	ops := NewOpsHandler(testConfig())

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				req := httptest.NewRequest("GET", "/health", nil)
				rr := httptest.NewRecorder()
				ops.HealthHandler(rr, req)

				if rr.Code != http.StatusOK {
					t.Errorf("got status %d, want %d", rr.Code, http.StatusOK)
					return
				}

				var health HealthResponse
				if err := json.Unmarshal(rr.Body.Bytes(), &health); err != nil {
					t.Errorf("response is not valid JSON: %v", err)
					return
				}
				if health.UptimeSeconds < 0 {
					t.Errorf("uptime is negative: %f", health.UptimeSeconds)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestMetricsHandler(t *testing.T) {
	ops := NewOpsHandler(testConfig())

	req := httptest.NewRequest("GET", "/metrics", nil)
	rr := httptest.NewRecorder()
	ops.MetricsHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
	}

	var metrics MetricsResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &metrics); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}

	if metrics.Memory.AllocBytes == 0 {
		t.Error("alloc_bytes should be non-zero for a running process")
	}
	if metrics.Memory.SysBytes == 0 {
		t.Error("sys_bytes should be non-zero for a running process")
	}
	if metrics.UptimeSeconds < 0 {
		t.Errorf("uptime is negative: %f", metrics.UptimeSeconds)
	}
	if metrics.CPU.NumCPU < 1 {
		t.Errorf("num_cpu = %d, want >= 1", metrics.CPU.NumCPU)
	}
	if metrics.CPU.NumGoroutine < 1 {
		t.Errorf("num_goroutine = %d, want >= 1", metrics.CPU.NumGoroutine)
	}
	if metrics.CPU.GCCPUFraction < 0 {
		t.Errorf("gc_cpu_fraction is negative: %f", metrics.CPU.GCCPUFraction)
	}
}

func TestVersionHandler(t *testing.T) {
	ops := NewOpsHandler(testConfig())

	req := httptest.NewRequest("GET", "/version", nil)
	rr := httptest.NewRecorder()
	ops.VersionHandler(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("got status %d, want %d", rr.Code, http.StatusOK)
	}

	var body map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &body); err != nil {
		t.Fatalf("response is not valid JSON: %v", err)
	}
	if body["version"] == "" {
		t.Error("version field missing from response")
	}
}
