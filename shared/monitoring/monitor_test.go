package monitoring

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"
)

func TestMonitorHealth(t *testing.T) {
	m := NewMonitor()

	if !m.IsHealthy() {
		t.Error("Monitor with no runs should be healthy")
	}
	if summary := m.GetStatusSummary(); summary != "No runs yet" {
		t.Errorf("GetStatusSummary() = %q, want %q", summary, "No runs yet")
	}

	m.RecordCriticalFailure(errors.New("boom"), time.Second)
	if m.IsHealthy() {
		t.Error("Monitor should be unhealthy after a critical failure")
	}

	m.RecordPartialFailure(errors.New("minor"), time.Second)
	if m.IsHealthy() {
		t.Error("Partial failure should not change health status")
	}

	m.RecordSuccess("ok", time.Second)
	if !m.IsHealthy() {
		t.Error("Monitor should be healthy after a success")
	}
}

func TestMonitorOutcomes(t *testing.T) {
	m := NewMonitor()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			m.RecordOutcome(OutcomeReplied)
		}()
	}
	wg.Wait()
	m.RecordOutcome(OutcomeNotFound)

	outcomes := m.Outcomes()
	if outcomes[OutcomeReplied] != 20 {
		t.Errorf("replied = %d, want 20", outcomes[OutcomeReplied])
	}
	if outcomes[OutcomeNotFound] != 1 {
		t.Errorf("not_found = %d, want 1", outcomes[OutcomeNotFound])
	}

	// Returned map is a copy
	outcomes[OutcomeReplied] = 0
	if m.Outcomes()[OutcomeReplied] != 20 {
		t.Error("Outcomes() should return a copy")
	}

	if summary := m.GetStatusSummary(); summary != "No runs yet | not_found=1 replied=20" {
		t.Errorf("GetStatusSummary() = %q", summary)
	}
}

func TestHealthServerEndpoints(t *testing.T) {
	m := NewMonitor()
	m.RecordOutcome(OutcomeReplied)
	handler := NewHealthServer(m, "").Handler()

	t.Run("HealthyReturns200", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
		if !strings.HasPrefix(rec.Body.String(), "OK - ") {
			t.Errorf("body = %q, want OK prefix", rec.Body.String())
		}
	})

	t.Run("StatusReturnsCounters", func(t *testing.T) {
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/status", nil))

		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}

		var body struct {
			Healthy  bool           `json:"healthy"`
			Outcomes map[string]int `json:"outcomes"`
		}
		if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
			t.Fatalf("Failed to decode status body: %v", err)
		}
		if !body.Healthy {
			t.Error("Expected healthy=true")
		}
		if body.Outcomes[OutcomeReplied] != 1 {
			t.Errorf("replied = %d, want 1", body.Outcomes[OutcomeReplied])
		}
	})

	t.Run("UnhealthyReturns503", func(t *testing.T) {
		m.RecordCriticalFailure(errors.New("reload failed"), time.Millisecond)

		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/health", nil))

		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}
