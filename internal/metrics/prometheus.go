package metrics

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/SscSPs/transaction_processor/internal/core/domain"
	portssvc "github.com/SscSPs/transaction_processor/internal/core/ports/services"
	"github.com/SscSPs/transaction_processor/internal/events"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for ObserveTransaction.
const (
	OutcomeSuccess  = "success"
	OutcomeReplayed = "replayed"
	OutcomeRejected = "rejected"
	OutcomeConflict = "conflict"
	OutcomeError    = "error"
)

// MetricsCollector owns a private registry so tests can create as many collectors as they need.
type MetricsCollector struct {
	events.NopObserver

	registry            *prometheus.Registry
	transactions        *prometheus.CounterVec
	transactionDuration *prometheus.HistogramVec
	concurrencyRetries  *prometheus.CounterVec
	reversalNoops       prometheus.Counter
	accountBalance      *prometheus.GaugeVec
	eventsDispatched    *prometheus.CounterVec
	httpRequests        *prometheus.CounterVec
}

var (
	_ portssvc.LedgerMetrics = (*MetricsCollector)(nil)
	_ events.Observer        = (*MetricsCollector)(nil)
)

func NewMetricsCollector() *MetricsCollector {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &MetricsCollector{
		registry: registry,
		transactions: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_transactions_total",
			Help: "Transactions handled by the ledger workflow, by operation and outcome",
		}, []string{"operation", "outcome"}),
		transactionDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "ledger_transaction_duration_seconds",
			Help:    "Time taken to process a transaction, retries included",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		concurrencyRetries: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_concurrency_retries_total",
			Help: "Workflow retries caused by optimistic concurrency conflicts",
		}, []string{"operation"}),
		reversalNoops: factory.NewCounter(prometheus.CounterOpts{
			Name: "ledger_transfer_reversal_noop_total",
			Help: "Reversals of transfers recorded without balance effect",
		}),
		accountBalance: factory.NewGaugeVec(prometheus.GaugeOpts{
			Name: "ledger_account_balance",
			Help: "Balance of an account after its latest committed transaction",
		}, []string{"account_id", "currency"}),
		eventsDispatched: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "ledger_events_dispatched_total",
			Help: "Domain events delivered to observers",
		}, []string{"kind"}),
		httpRequests: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "HTTP requests by route and status code",
		}, []string{"method", "route", "status"}),
	}
}

func (m *MetricsCollector) ObserveTransaction(operation domain.OperationKind, outcome string, duration time.Duration) {
	m.transactions.WithLabelValues(operation.String(), outcome).Inc()
	m.transactionDuration.WithLabelValues(operation.String()).Observe(duration.Seconds())
}

func (m *MetricsCollector) IncConcurrencyRetry(operation domain.OperationKind) {
	m.concurrencyRetries.WithLabelValues(operation.String()).Inc()
}

func (m *MetricsCollector) IncTransferReversalNoop() {
	m.reversalNoops.Inc()
}

func (m *MetricsCollector) Name() string { return "metrics" }

func (m *MetricsCollector) OnTransactionProcessed(_ context.Context, e domain.TransactionProcessed) error {
	m.eventsDispatched.WithLabelValues(string(e.Kind())).Inc()
	m.accountBalance.WithLabelValues(e.AggregateID(), e.Entry.Currency).Set(e.Balance.InexactFloat64())
	return nil
}

func (m *MetricsCollector) OnAccountBlocked(_ context.Context, e domain.AccountBlocked) error {
	m.eventsDispatched.WithLabelValues(string(e.Kind())).Inc()
	return nil
}

func (m *MetricsCollector) OnAccountActivated(_ context.Context, e domain.AccountActivated) error {
	m.eventsDispatched.WithLabelValues(string(e.Kind())).Inc()
	return nil
}

func (m *MetricsCollector) OnAccountDeactivated(_ context.Context, e domain.AccountDeactivated) error {
	m.eventsDispatched.WithLabelValues(string(e.Kind())).Inc()
	return nil
}

// Middleware counts requests by matched route so path parameters do not explode cardinality.
func (m *MetricsCollector) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}
		m.httpRequests.WithLabelValues(c.Request.Method, route, strconv.Itoa(c.Writer.Status())).Inc()
	}
}

func (m *MetricsCollector) GetHandler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Registry exposes the underlying registry, mostly for tests.
func (m *MetricsCollector) Registry() *prometheus.Registry {
	return m.registry
}
