package health

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/robfig/cron/v3"
)

// cronLogger routes cron's own logging (recovered panics, skipped runs) through slog.
type cronLogger struct{ log *slog.Logger }

func (l cronLogger) Info(msg string, keysAndValues ...any) {
	l.log.Debug("cron: "+msg, keysAndValues...)
}

func (l cronLogger) Error(err error, msg string, keysAndValues ...any) {
	l.log.Error("cron: "+msg, append([]any{slog.String("error", err.Error())}, keysAndValues...)...)
}

// Schedule runs m.Probe on the cron spec (standard 5-field or descriptors like
// "@every 1m") and once immediately. Overlapping runs are skipped.
// Stop the returned cron to end probing.
func Schedule(ctx context.Context, spec string, m *Monitor) (*cron.Cron, error) {
	logger := cronLogger{log: m.Log}
	c := cron.New(
		cron.WithLogger(logger),
		cron.WithChain(
			cron.Recover(logger),
			cron.SkipIfStillRunning(logger),
		),
	)

	entryID, err := c.AddFunc(spec, func() { m.Probe(ctx) })
	if err != nil {
		return nil, fmt.Errorf("health: invalid probe schedule %q: %w", spec, err)
	}
	m.Log.Info("probe scheduled", slog.String("schedule", spec), slog.Int("entry_id", int(entryID)))

	go m.Probe(ctx)
	c.Start()
	return c, nil
}
