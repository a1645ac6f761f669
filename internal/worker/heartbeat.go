package worker

import (
	"context"
	"time"

	"crm-service/internal/gqlclient"
	"crm-service/internal/redisclient"
	"crm-service/internal/util"

	"go.uber.org/zap"
)

// HeartbeatWorker periodically records that the CRM is alive and probes
// the GraphQL endpoint's hello field.
type HeartbeatWorker struct {
	endpoint string
	logPath  string
	interval time.Duration
	redis    *redisclient.Client
	logger   *zap.Logger
}

// NewHeartbeatWorker creates a new heartbeat worker. redis may be nil.
func NewHeartbeatWorker(endpoint, logPath string, interval time.Duration, redis *redisclient.Client) *HeartbeatWorker {
	return &HeartbeatWorker{
		endpoint: endpoint,
		logPath:  logPath,
		interval: interval,
		redis:    redis,
		logger:   util.GetLogger(),
	}
}

// Start starts the worker
func (w *HeartbeatWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting heartbeat worker", zap.Duration("interval", w.interval))
	return runTicker(ctx, w.interval, func(ctx context.Context) {
		if !acquireJobLock(ctx, w.redis, "heartbeat", w.interval/2, w.logger) {
			return
		}
		w.RunOnce(ctx)
	})
}

// RunOnce performs a single heartbeat tick.
func (w *HeartbeatWorker) RunOnce(ctx context.Context) {
	timestamp := time.Now().Format("02/01/2006-15:04:05")

	if err := appendLine(w.logPath, timestamp+" CRM is alive"); err != nil {
		w.logger.Warn("Failed to write heartbeat log", zap.Error(err))
	}

	client := gqlclient.New(w.endpoint)
	var resp struct {
		Hello string `json:"hello"`
	}
	if err := client.Do(ctx, "{ hello }", nil, &resp); err != nil {
		_ = appendLine(w.logPath, timestamp+" GraphQL check failed: "+err.Error())
		w.logger.Warn("GraphQL heartbeat check failed", zap.Error(err))
		return
	}
	if resp.Hello != "" {
		_ = appendLine(w.logPath, timestamp+" GraphQL endpoint responsive")
	}
}
