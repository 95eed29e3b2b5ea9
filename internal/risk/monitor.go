package risk

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/songzhibin97/tokenguard/internal/tracking"
)

const (
	// DefaultMonitorInterval is the wait between monitoring cycles.
	DefaultMonitorInterval = 300 * time.Second

	// errCooldown is the wait after a whole-iteration failure, e.g. when the
	// tracked-token listing itself fails.
	errCooldown = 60 * time.Second
)

// Monitor periodically re-scores every tracked token with a quick two-factor
// check, persists the snapshots and raises alerts.
//
// The loop never terminates itself on error: a failure while processing one
// token is logged and the cycle moves on; a failure of the iteration itself
// is logged and retried after a fixed cooldown.
type Monitor struct {
	analyzer *Analyzer
	store    tracking.Store
	logger   Logger
	interval time.Duration
	running  atomic.Bool
	stop     chan struct{}
}

// NewMonitor creates a Monitor. A non-positive interval falls back to
// DefaultMonitorInterval.
func NewMonitor(analyzer *Analyzer, store tracking.Store, logger Logger, interval time.Duration) *Monitor {
	if interval <= 0 {
		interval = DefaultMonitorInterval
	}
	return &Monitor{
		analyzer: analyzer,
		store:    store,
		logger:   logger,
		interval: interval,
		// buffered so a Stop during an in-flight cycle is not dropped
		stop:     make(chan struct{}, 1),
	}
}

// Running reports whether the monitoring loop is active.
func (m *Monitor) Running() bool {
	return m.running.Load()
}

// Start runs the monitoring loop until ctx is cancelled or Stop is called.
// Stopping is cooperative and bounded-latency: the signal is observed at the
// top of each cycle, so an in-flight iteration finishes first.
func (m *Monitor) Start(ctx context.Context) {
	if !m.running.CompareAndSwap(false, true) {
		return
	}
	defer m.running.Store(false)

	m.logger.Info("started token monitoring", "interval", m.interval)

	for {
		select {
		case <-ctx.Done():
			m.logger.Info("stopped token monitoring", "reason", ctx.Err())
			return
		case <-m.stop:
			m.logger.Info("stopped token monitoring", "reason", "stop requested")
			return
		default:
		}

		wait := m.interval
		if err := m.runCycle(ctx); err != nil {
			m.logger.Error("monitoring cycle failed", "error", err)
			wait = errCooldown
		}

		select {
		case <-ctx.Done():
			m.logger.Info("stopped token monitoring", "reason", ctx.Err())
			return
		case <-m.stop:
			m.logger.Info("stopped token monitoring", "reason", "stop requested")
			return
		case <-time.After(wait):
		}
	}
}

// Stop signals the loop to exit after its current iteration.
func (m *Monitor) Stop() {
	select {
	case m.stop <- struct{}{}:
	default:
	}
}

// runCycle performs one monitoring iteration. An error return means the
// iteration as a whole was abandoned; per-token failures are contained inside.
func (m *Monitor) runCycle(ctx context.Context) error {
	tokens, err := m.store.TrackedTokens(ctx)
	if err != nil {
		return fmt.Errorf("failed to list tracked tokens: %w", err)
	}

	for _, address := range tokens {
		if err := m.checkToken(ctx, address); err != nil {
			// 单个代币失败不影响本轮其余代币
			m.logger.Error("error monitoring token", "token", address, "error", err)
		}
	}

	return nil
}

// checkToken quick-checks one token, persists the snapshot and evaluates
// the alert rules against it.
func (m *Monitor) checkToken(ctx context.Context, address string) error {
	risk := m.analyzer.QuickCheck(ctx, address)

	if err := m.store.StoreRisk(ctx, address, risk); err != nil {
		return fmt.Errorf("failed to store risk data: %w", err)
	}

	for _, alert := range AlertsFor(risk) {
		alert := alert
		if err := m.store.CreateAlert(ctx, &alert); err != nil {
			return fmt.Errorf("failed to create alert: %w", err)
		}
		m.logger.Info("alert raised", "token", address, "type", alert.AlertType, "severity", alert.Severity)
	}

	return nil
}
