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

// RestockWorker periodically triggers the updateLowStockProducts
// mutation and records which products were restocked.
type RestockWorker struct {
	endpoint string
	logPath  string
	interval time.Duration
	redis    *redisclient.Client
	logger   *zap.Logger
}

// NewRestockWorker creates a new restock worker. redis may be nil.
func NewRestockWorker(endpoint, logPath string, interval time.Duration, redis *redisclient.Client) *RestockWorker {
	return &RestockWorker{
		endpoint: endpoint,
		logPath:  logPath,
		interval: interval,
		redis:    redis,
		logger:   util.GetLogger(),
	}
}

// Start starts the worker
func (w *RestockWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting restock worker", zap.Duration("interval", w.interval))
	return runTicker(ctx, w.interval, func(ctx context.Context) {
		if !acquireJobLock(ctx, w.redis, "restock", w.interval/2, w.logger) {
			return
		}
		w.RunOnce(ctx)
	})
}

// RunOnce triggers one restock pass.
func (w *RestockWorker) RunOnce(ctx context.Context) {
	client := gqlclient.New(w.endpoint)
	var resp struct {
		UpdateLowStockProducts struct {
			Products []struct {
				Name  string `json:"name"`
				Stock int    `json:"stock"`
			} `json:"products"`
			Message string `json:"message"`
		} `json:"updateLowStockProducts"`
	}
	mutation := `
	mutation {
		updateLowStockProducts {
			products {
				name
				stock
			}
			message
		}
	}`

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	if err := client.Do(ctx, mutation, nil, &resp); err != nil {
		_ = appendLine(w.logPath, fmt.Sprintf("[%s] Restock failed: %s", timestamp, err))
		w.logger.Warn("Low stock restock failed", zap.Error(err))
		return
	}

	result := resp.UpdateLowStockProducts
	_ = appendLine(w.logPath, fmt.Sprintf("[%s] %s", timestamp, result.Message))
	for _, product := range result.Products {
		_ = appendLine(w.logPath, fmt.Sprintf("- %s: stock %d", product.Name, product.Stock))
	}

	w.logger.Info("Low stock restock completed", zap.Int("products", len(result.Products)))
}
