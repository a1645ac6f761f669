package worker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func graphqlStub(t *testing.T, body string) *httptest.Server {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)
	return server
}

func TestHeartbeatRunOnce(t *testing.T) {
	server := graphqlStub(t, `{"data":{"hello":"Hello, CRM!"}}`)
	logPath := filepath.Join(t.TempDir(), "heartbeat.txt")

	w := NewHeartbeatWorker(server.URL, logPath, time.Minute, nil)
	w.RunOnce(context.Background())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "CRM is alive")
	assert.Contains(t, string(content), "GraphQL endpoint responsive")
}

func TestHeartbeatRunOnceEndpointDown(t *testing.T) {
	logPath := filepath.Join(t.TempDir(), "heartbeat.txt")

	// Endpoint that refuses connections.
	w := NewHeartbeatWorker("http://127.0.0.1:1", logPath, time.Minute, nil)
	w.RunOnce(context.Background())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "CRM is alive")
	assert.Contains(t, string(content), "GraphQL check failed:")
	assert.NotContains(t, string(content), "GraphQL endpoint responsive")
}

func TestReportRunOnce(t *testing.T) {
	server := graphqlStub(t, `{"data":{"totalCustomers":3,"totalOrders":5,"totalRevenue":120.5}}`)
	logPath := filepath.Join(t.TempDir(), "report.txt")

	w := NewReportWorker(server.URL, logPath, time.Hour, nil)
	w.RunOnce(context.Background())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Report: 3 customers, 5 orders, $120.50 revenue")
}

func TestReminderRunOnce(t *testing.T) {
	server := graphqlStub(t, `{"data":{"orders":[
		{"id":"1","orderDate":"2026-08-30T10:00:00Z","customer":{"email":"alice@example.com"}},
		{"id":"2","orderDate":"2026-08-31T11:30:00Z","customer":{"email":"bob@example.com"}}
	]}}`)
	logPath := filepath.Join(t.TempDir(), "reminders.txt")

	w := NewReminderWorker(server.URL, logPath, time.Hour, 7*24*time.Hour, nil)
	w.RunOnce(context.Background())

	content, err := os.ReadFile(logPath)
	require.NoError(t, err)
	assert.Contains(t, string(content), "Order Reminders:")
	assert.Contains(t, string(content), "Order ID: 1, Customer Email: alice@example.com")
	assert.Contains(t, string(content), "Order ID: 2, Customer Email: bob@example.com")
}

func TestFormatReportLine(t *testing.T) {
	line := formatReportLine("2026-09-01 08:00:00", 10, 4, 99.9)
	assert.Equal(t, "2026-09-01 08:00:00 - Report: 10 customers, 4 orders, $99.90 revenue", line)
}

func TestFormatReminderLine(t *testing.T) {
	order := reminderOrder{ID: "7", OrderDate: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC)}
	order.Customer.Email = "alice@example.com"

	assert.Equal(t,
		"Order ID: 7, Customer Email: alice@example.com, Date: 2026-08-30T10:00:00Z",
		formatReminderLine(order))
}

func TestAppendLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "log.txt")

	require.NoError(t, appendLine(path, "first"))
	require.NoError(t, appendLine(path, "second"))

	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "first\nsecond\n", string(content))
}
