package monitoring

import (
	"fmt"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// Snarf outcomes recorded once per handled URL.
const (
	OutcomeReplied        = "replied"
	OutcomeNotFound       = "not_found"
	OutcomeTransportError = "transport_error"
	OutcomeFailed         = "failed"
	OutcomeUnrecognized   = "unrecognized"
	OutcomeDisabled       = "disabled"
	OutcomeNoAPIKey       = "no_api_key"
	OutcomePrivate        = "private"
)

type Monitor struct {
	mu             sync.RWMutex
	lastRunSuccess bool
	lastRunTime    time.Time
	outcomes       map[string]int
}

func NewMonitor() *Monitor {
	return &Monitor{
		outcomes: make(map[string]int),
	}
}

// RecordOutcome counts one snarf invocation result.
func (m *Monitor) RecordOutcome(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.outcomes[outcome]++
}

// Outcomes returns a copy of the outcome counters.
func (m *Monitor) Outcomes() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	counts := make(map[string]int, len(m.outcomes))
	for k, v := range m.outcomes {
		counts[k] = v
	}
	return counts
}

func (m *Monitor) RecordSuccess(summary string, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = true
	m.lastRunTime = time.Now()
	m.mu.Unlock()

	log.Info().Dur("took", duration).Msgf("Run completed successfully - %s", summary)
}

func (m *Monitor) RecordPartialFailure(err error, duration time.Duration) {
	// Health status is left alone for partial failures
	log.Warn().Err(err).Dur("took", duration).Msg("Partial failure")
}

func (m *Monitor) RecordCriticalFailure(err error, duration time.Duration) {
	m.mu.Lock()
	m.lastRunSuccess = false
	m.lastRunTime = time.Now()
	m.mu.Unlock()

	log.Error().Err(err).Dur("took", duration).Msg("Critical failure")
}

func (m *Monitor) IsHealthy() bool {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.lastRunTime.IsZero() {
		return true // No runs yet, assume healthy
	}
	return m.lastRunSuccess
}

func (m *Monitor) GetStatusSummary() string {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var status string
	switch {
	case m.lastRunTime.IsZero():
		status = "No runs yet"
	case m.lastRunSuccess:
		status = fmt.Sprintf("Last run: %s", m.lastRunTime.Format("Jan 2 15:04"))
	default:
		status = fmt.Sprintf("Last run failed: %s", m.lastRunTime.Format("Jan 2 15:04"))
	}

	if len(m.outcomes) == 0 {
		return status
	}
	return status + " | " + formatOutcomes(m.outcomes)
}

func formatOutcomes(outcomes map[string]int) string {
	keys := make([]string, 0, len(outcomes))
	for k := range outcomes {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s=%d", k, outcomes[k]))
	}
	return strings.Join(parts, " ")
}
