package worker

import (
	"context"
	"fmt"
	"time"

	"crm-service/internal/gqlclient"
	"crm-service/internal/redisclient"
	"crm-service/internal/util"

	"go.uber.org/zap"
)

// ReportWorker periodically writes an aggregate CRM report line with
// customer, order and revenue totals.
type ReportWorker struct {
	endpoint string
	logPath  string
	interval time.Duration
	redis    *redisclient.Client
	logger   *zap.Logger
}

// NewReportWorker creates a new report worker. redis may be nil.
func NewReportWorker(endpoint, logPath string, interval time.Duration, redis *redisclient.Client) *ReportWorker {
	return &ReportWorker{
		endpoint: endpoint,
		logPath:  logPath,
		interval: interval,
		redis:    redis,
		logger:   util.GetLogger(),
	}
}

// Start starts the worker
func (w *ReportWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting report worker", zap.Duration("interval", w.interval))
	return runTicker(ctx, w.interval, func(ctx context.Context) {
		if !acquireJobLock(ctx, w.redis, "report", w.interval/2, w.logger) {
			return
		}
		w.RunOnce(ctx)
	})
}

// RunOnce generates a single report line.
func (w *ReportWorker) RunOnce(ctx context.Context) {
	timestamp := time.Now().Format("2006-01-02 15:04:05")

	client := gqlclient.New(w.endpoint)
	var resp struct {
		TotalCustomers int64   `json:"totalCustomers"`
		TotalOrders    int64   `json:"totalOrders"`
		TotalRevenue   float64 `json:"totalRevenue"`
	}
	query := `
	query {
		totalCustomers
		totalOrders
		totalRevenue
	}`

	if err := client.Do(ctx, query, nil, &resp); err != nil {
		_ = appendLine(w.logPath, fmt.Sprintf("%s - Report generation failed: %s", timestamp, err))
		w.logger.Warn("Report generation failed", zap.Error(err))
		return
	}

	line := formatReportLine(timestamp, resp.TotalCustomers, resp.TotalOrders, resp.TotalRevenue)
	if err := appendLine(w.logPath, line); err != nil {
		w.logger.Warn("Failed to write report log", zap.Error(err))
		return
	}
	w.logger.Info("CRM report generated",
		zap.Int64("customers", resp.TotalCustomers),
		zap.Int64("orders", resp.TotalOrders),
		zap.Float64("revenue", resp.TotalRevenue))
}

func formatReportLine(timestamp string, customers, orders int64, revenue float64) string {
	return fmt.Sprintf("%s - Report: %d customers, %d orders, $%.2f revenue",
		timestamp, customers, orders, revenue)
}
