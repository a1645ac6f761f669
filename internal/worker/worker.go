// Package worker runs the scheduled jobs that used to live outside the
// service: heartbeat logging, the periodic CRM report, order reminders
// and the low-stock restock. Each job calls the service's own GraphQL
// endpoint over HTTP and appends its results to a plain log file, which
// is the contract downstream consumers of these files expect.
package worker

import (
	"context"
	"os"
	"time"

	"crm-service/internal/redisclient"

	"go.uber.org/zap"
)

// appendLine appends one line to the job's log file, creating it on
// first use.
func appendLine(path, line string) error {
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return err
	}
	defer f.Close()

	_, err = f.WriteString(line + "\n")
	return err
}

// acquireJobLock takes the named redis lock so a tick runs on one
// instance only. A nil client or a redis failure degrades to running the
// tick locally; the jobs are idempotent enough that a duplicate run is
// preferable to none.
func acquireJobLock(ctx context.Context, redis *redisclient.Client, name string, ttl time.Duration, logger *zap.Logger) bool {
	if redis == nil {
		return true
	}
	acquired, err := redis.AcquireLock(ctx, name, ttl)
	if err != nil {
		logger.Warn("Job lock unavailable, running anyway",
			zap.String("job", name),
			zap.Error(err))
		return true
	}
	return acquired
}

// runTicker drives a job on a fixed interval until ctx is cancelled.
func runTicker(ctx context.Context, interval time.Duration, tick func(context.Context)) error {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-ticker.C:
			tick(ctx)
		}
	}
}
