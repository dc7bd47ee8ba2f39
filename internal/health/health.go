// Package health tracks whether the chat service reports itself ready.
package health

import (
	"context"
	"sync"

	"github.com/zhubert/tripchat/internal/logger"
)

// Status is the tri-state backend indicator.
type Status int

const (
	StatusChecking Status = iota
	StatusReady
	StatusError
)

func (s Status) String() string {
	switch s {
	case StatusChecking:
		return "checking"
	case StatusReady:
		return "ready"
	case StatusError:
		return "error"
	default:
		return "unknown"
	}
}

// Prober performs one readiness request. *backend.Client satisfies it.
type Prober interface {
	Health(ctx context.Context) (bool, error)
}

// Probe runs a single readiness request and maps the outcome to a Status.
// It does not touch any Monitor, so it is safe to call from a tea.Cmd.
func Probe(ctx context.Context, p Prober) Status {
	ready, err := p.Health(ctx)
	if err != nil || !ready {
		return StatusError
	}
	return StatusReady
}

// Monitor holds the last known backend status.
// It starts in StatusChecking.
type Monitor struct {
	mu     sync.RWMutex
	status Status
	prober Prober
}

// NewMonitor returns a Monitor in StatusChecking.
func NewMonitor(p Prober) *Monitor {
	return &Monitor{status: StatusChecking, prober: p}
}

// Status returns the current status.
func (m *Monitor) Status() Status {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.status
}

// Begin resets the status to StatusChecking ahead of a new probe.
func (m *Monitor) Begin() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.status = StatusChecking
}

// Apply records a status computed by Probe.
func (m *Monitor) Apply(s Status) {
	m.mu.Lock()
	prev := m.status
	m.status = s
	m.mu.Unlock()

	if prev != s {
		logger.WithComponent("Health").Info("backend status changed", "from", prev.String(), "to", s.String())
	}
}

// Check issues exactly one probe and records its result. No retries.
func (m *Monitor) Check(ctx context.Context) Status {
	m.Begin()
	s := Probe(ctx, m.prober)
	m.Apply(s)
	return s
}

// Prober returns the prober used by Check.
func (m *Monitor) Prober() Prober {
	return m.prober
}
