package healthcheck

import (
	"context"
	"log/slog"
	"sync"
	"time"
)

const probeTimeout = 5 * time.Second

// Prober checks a single upstream.
type Prober interface {
	Health(ctx context.Context) error
}

// Monitor tracks the last observed availability of an upstream.
type Monitor struct {
	prober  Prober
	target  string
	logger  *slog.Logger
	mutex   sync.Mutex
	checked bool
	healthy bool
}

func NewMonitor(prober Prober, target string, logger *slog.Logger) *Monitor {
	return &Monitor{
		prober: prober,
		target: target,
		logger: logger,
	}
}

// Healthy returns the result of the most recent probe and whether any probe
// has completed yet.
func (m *Monitor) Healthy() (healthy, checked bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return m.healthy, m.checked
}

// Run probes every interval until ctx is cancelled.
func (m *Monitor) Run(ctx context.Context, interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	m.Check(ctx)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("Health check stopped",
				slog.String("backend", m.target))
			return

		case <-ticker.C:
			m.Check(ctx)
		}
	}
}

// Check runs a single probe and records the outcome.
func (m *Monitor) Check(ctx context.Context) {
	probeCtx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	err := m.prober.Health(probeCtx)
	if ctx.Err() != nil {
		return
	}

	healthy := err == nil
	if !m.record(healthy) {
		return
	}

	if healthy {
		m.logger.Info("Backend is up",
			slog.String("backend", m.target))
	} else {
		m.logger.Warn("Backend is down",
			slog.String("backend", m.target),
			slog.Any("err", err))
	}
}

// record stores the probe result and reports whether it differs from the
// previous one. The first result always counts as a change.
func (m *Monitor) record(healthy bool) (changed bool) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	changed = !m.checked || m.healthy != healthy
	m.checked = true
	m.healthy = healthy
	return changed
}
