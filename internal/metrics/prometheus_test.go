package metrics

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMetricsCollector_LedgerCounters(t *testing.T) {
	m := NewMetricsCollector()

	m.ObserveTransaction(domain.OperationDebit, OutcomeSuccess, 10*time.Millisecond)
	m.ObserveTransaction(domain.OperationDebit, OutcomeSuccess, 20*time.Millisecond)
	m.ObserveTransaction(domain.OperationDebit, OutcomeRejected, time.Millisecond)
	m.IncConcurrencyRetry(domain.OperationCredit)
	m.IncTransferReversalNoop()

	assert.Equal(t, 2.0, testutil.ToFloat64(m.transactions.WithLabelValues("debit", OutcomeSuccess)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.transactions.WithLabelValues("debit", OutcomeRejected)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.concurrencyRetries.WithLabelValues("credit")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.reversalNoops))
}

func TestMetricsCollector_ObservesEvents(t *testing.T) {
	m := NewMetricsCollector()
	entry, err := domain.NewLedgerEntry("ACC-1", domain.OperationCredit, decimal.NewFromInt(5), "USD", "REF-1")
	require.NoError(t, err)

	require.NoError(t, m.OnTransactionProcessed(context.Background(),
		domain.NewTransactionProcessed(entry, decimal.RequireFromString("15.50"), decimal.Zero, decimal.RequireFromString("15.50"))))
	require.NoError(t, m.OnAccountBlocked(context.Background(), domain.NewAccountBlocked("ACC-1")))

	assert.Equal(t, 15.5, testutil.ToFloat64(m.accountBalance.WithLabelValues("ACC-1", "USD")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsDispatched.WithLabelValues(string(domain.EventTransactionProcessed))))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.eventsDispatched.WithLabelValues(string(domain.EventAccountBlocked))))
}

func TestMetricsCollector_MiddlewareAndHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	m := NewMetricsCollector()

	router := gin.New()
	router.Use(m.Middleware())
	router.GET("/api/v1/accounts/:accountID", func(c *gin.Context) { c.Status(http.StatusNotFound) })
	router.GET("/metrics", gin.WrapH(m.GetHandler()))

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/accounts/ACC-9", nil))
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues(http.MethodGet, "/api/v1/accounts/:accountID", "404")))

	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, w.Code)
	body, err := io.ReadAll(w.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "http_requests_total")
}
