// Package health probes Sui and Walrus on a schedule and keeps the latest result.
package health

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/verakita/verakita-api/internal/metrics"
	"github.com/verakita/verakita-api/internal/models"
)

// DefaultTimeout bounds one probe round.
const DefaultTimeout = 10 * time.Second

// EpochSource answers the current Sui epoch.
type EpochSource interface {
	LatestEpoch(ctx context.Context) (string, error)
}

// Pinger checks that a storage endpoint is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// LogAppender receives a log entry per failed check.
type LogAppender interface {
	Append(ctx context.Context, e models.LogEntry) (models.LogEntry, error)
}

// Monitor runs probes and holds the most recent snapshot.
type Monitor struct {
	Chain   EpochSource
	Storage Pinger
	Logs    LogAppender
	Log     *slog.Logger
	Timeout time.Duration

	mu   sync.RWMutex
	last models.HealthSnapshot
	down map[string]bool
	now  func() time.Time
}

// NewMonitor returns a Monitor. logs may be nil to skip failure log entries.
func NewMonitor(chain EpochSource, storage Pinger, logs LogAppender, logger *slog.Logger) *Monitor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Monitor{
		Chain:   chain,
		Storage: storage,
		Logs:    logs,
		Log:     logger.With("component", "probe"),
		Timeout: DefaultTimeout,
		now:     time.Now,
	}
}

// Snapshot returns the latest probe result. CheckedAt is zero before the first probe.
func (m *Monitor) Snapshot() models.HealthSnapshot {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.last
}

// Probe checks both dependencies, stores and returns the snapshot.
func (m *Monitor) Probe(ctx context.Context) models.HealthSnapshot {
	timeout := m.Timeout
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := m.now()
	snap := models.HealthSnapshot{CheckedAt: start.UTC()}

	epoch, err := m.Chain.LatestEpoch(ctx)
	if err != nil {
		snap.SuiError = err.Error()
	} else {
		snap.SuiEpoch = epoch
	}
	m.observe(ctx, "sui", err, models.LevelError, "Sui", "Sui RPC unreachable")

	err = m.Storage.Ping(ctx)
	if err != nil {
		snap.WalrusError = err.Error()
	}
	snap.WalrusOnline = err == nil
	m.observe(ctx, "walrus", err, models.LevelWarning, "Walrus", "Walrus aggregator unreachable")

	snap.ProbeDuration = m.now().Sub(start)

	m.mu.Lock()
	m.last = snap
	m.mu.Unlock()

	m.Log.Debug("probe finished",
		slog.String("sui_epoch", snap.SuiEpoch),
		slog.Bool("walrus_online", snap.WalrusOnline),
		slog.Duration("duration", snap.ProbeDuration))
	return snap
}

// observe updates the dependency gauge and writes a log entry only when the
// dependency goes from up to down. Repeated failures are not logged again.
func (m *Monitor) observe(ctx context.Context, dependency string, cause error, level, service, msg string) {
	metrics.SetProbeUp(dependency, cause == nil)

	m.mu.Lock()
	if m.down == nil {
		m.down = make(map[string]bool)
	}
	wasDown := m.down[dependency]
	m.down[dependency] = cause != nil
	m.mu.Unlock()

	switch {
	case cause != nil && !wasDown:
		m.record(ctx, level, service, msg, cause)
	case cause == nil && wasDown:
		m.Log.Info(service+" reachable again")
	}
}

func (m *Monitor) record(ctx context.Context, level, service, msg string, cause error) {
	m.Log.Warn(msg, slog.String("error", cause.Error()))
	if m.Logs == nil {
		return
	}
	_, err := m.Logs.Append(context.WithoutCancel(ctx), models.LogEntry{
		Timestamp: m.now().UTC(),
		Level:     level,
		Service:   service,
		Message:   msg,
		Details:   map[string]any{"error": cause.Error()},
	})
	if err != nil {
		m.Log.Error("append probe log entry", slog.String("error", err.Error()))
	}
}

// Cards renders s as the admin system health row.
func Cards(s models.HealthSnapshot) []models.HealthCard {
	cards := []models.HealthCard{
		{Title: "API Status", Value: "Healthy", Status: models.HealthSuccess},
	}
	if s.CheckedAt.IsZero() {
		return append(cards,
			models.HealthCard{Title: "Sui Network", Value: "Unknown", Status: models.HealthUnknown},
			models.HealthCard{Title: "Walrus Storage", Value: "Unknown", Status: models.HealthUnknown},
			models.HealthCard{Title: "Response Time", Value: "n/a", Status: models.HealthUnknown},
		)
	}

	sui := models.HealthCard{Title: "Sui Network", Value: "Connected", Status: models.HealthSuccess}
	if s.SuiError != "" {
		sui.Value, sui.Status = "Unreachable", models.HealthError
	}
	storage := models.HealthCard{Title: "Walrus Storage", Value: "Online", Status: models.HealthSuccess}
	if !s.WalrusOnline {
		storage.Value, storage.Status = "Offline", models.HealthError
	}

	ms := s.ProbeDuration.Milliseconds()
	latency := models.HealthCard{Title: "Response Time", Value: fmt.Sprintf("%dms", ms)}
	switch {
	case ms < 500:
		latency.Status = models.HealthSuccess
	case ms < 2000:
		latency.Status = models.HealthWarning
	default:
		latency.Status = models.HealthError
	}
	return append(cards, sui, storage, latency)
}
