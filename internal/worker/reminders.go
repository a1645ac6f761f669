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

// ReminderWorker logs reminders for orders placed within the lookback
// window.
type ReminderWorker struct {
	endpoint string
	logPath  string
	interval time.Duration
	window   time.Duration
	redis    *redisclient.Client
	logger   *zap.Logger
}

// NewReminderWorker creates a new reminder worker. redis may be nil.
func NewReminderWorker(endpoint, logPath string, interval, window time.Duration, redis *redisclient.Client) *ReminderWorker {
	return &ReminderWorker{
		endpoint: endpoint,
		logPath:  logPath,
		interval: interval,
		window:   window,
		redis:    redis,
		logger:   util.GetLogger(),
	}
}

// Start starts the worker
func (w *ReminderWorker) Start(ctx context.Context) error {
	w.logger.Info("Starting reminder worker",
		zap.Duration("interval", w.interval),
		zap.Duration("window", w.window))
	return runTicker(ctx, w.interval, func(ctx context.Context) {
		if !acquireJobLock(ctx, w.redis, "reminders", w.interval/2, w.logger) {
			return
		}
		w.RunOnce(ctx)
	})
}

type reminderOrder struct {
	ID        string    `json:"id"`
	OrderDate time.Time `json:"orderDate"`
	Customer  struct {
		Email string `json:"email"`
	} `json:"customer"`
}

// RunOnce queries recent orders and appends one reminder line per order.
func (w *ReminderWorker) RunOnce(ctx context.Context) {
	since := time.Now().Add(-w.window)

	client := gqlclient.New(w.endpoint)
	var resp struct {
		Orders []reminderOrder `json:"orders"`
	}
	query := `
	query RecentOrders($since: DateTime) {
		orders(filter: { orderDateGte: $since }) {
			id
			orderDate
			customer {
				email
			}
		}
	}`

	err := client.Do(ctx, query, map[string]interface{}{"since": since.Format(time.RFC3339)}, &resp)
	if err != nil {
		w.logger.Warn("Failed to query recent orders", zap.Error(err))
		return
	}

	timestamp := time.Now().Format("2006-01-02 15:04:05")
	if err := appendLine(w.logPath, fmt.Sprintf("\n[%s] Order Reminders:", timestamp)); err != nil {
		w.logger.Warn("Failed to write reminder log", zap.Error(err))
		return
	}
	for _, order := range resp.Orders {
		_ = appendLine(w.logPath, formatReminderLine(order))
	}

	w.logger.Info("Order reminders processed", zap.Int("orders", len(resp.Orders)))
}

func formatReminderLine(order reminderOrder) string {
	return fmt.Sprintf("Order ID: %s, Customer Email: %s, Date: %s",
		order.ID, order.Customer.Email, order.OrderDate.Format(time.RFC3339))
}
