package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all Prometheus metrics.
type Metrics struct {
	// Batch metrics
	BatchesCreated prometheus.Counter
	BatchesUpdated prometheus.Counter
	BatchesDeleted prometheus.Counter
	BatchDuration  prometheus.Histogram
	BatchLineCount prometheus.Histogram

	// Posting metrics
	PostingsWritten prometheus.Counter
	MappingsSkipped prometheus.Counter
	PostingAmount   prometheus.Histogram

	// Consistency metrics
	ConsistencyChecks   *prometheus.CounterVec
	ConsistencyDuration prometheus.Histogram

	// API metrics
	HTTPRequests *prometheus.CounterVec
	HTTPDuration *prometheus.HistogramVec

	// Database metrics
	DBQueries     *prometheus.CounterVec
	DBConnections prometheus.Gauge
	DBErrors      *prometheus.CounterVec

	// Redis metrics
	RedisOperations *prometheus.CounterVec
	RedisErrors     *prometheus.CounterVec

	// Rate limiting metrics
	RateLimitHits *prometheus.CounterVec

	// Outbox metrics
	EventsPublished *prometheus.CounterVec
	EventsPending   prometheus.Gauge

	// Audit metrics
	AuditLogsCreated *prometheus.CounterVec
}

// New creates and registers all Prometheus metrics.
func New() *Metrics {
	return &Metrics{
		// Batch metrics
		BatchesCreated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "parishbooks_batches_created_total",
			Help: "Total number of batches created",
		}),
		BatchesUpdated: promauto.NewCounter(prometheus.CounterOpts{
			Name: "parishbooks_batches_updated_total",
			Help: "Total number of batches updated",
		}),
		BatchesDeleted: promauto.NewCounter(prometheus.CounterOpts{
			Name: "parishbooks_batches_deleted_total",
			Help: "Total number of batches deleted",
		}),
		BatchDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "parishbooks_batch_duration_seconds",
			Help:    "Duration of batch save operations",
			Buckets: prometheus.DefBuckets,
		}),
		BatchLineCount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "parishbooks_batch_line_count",
			Help:    "Number of lines per saved batch",
			Buckets: []float64{1, 2, 5, 10, 25, 50, 100, 250},
		}),

		// Posting metrics
		PostingsWritten: promauto.NewCounter(prometheus.CounterOpts{
			Name: "parishbooks_postings_written_total",
			Help: "Total number of ledger postings written",
		}),
		MappingsSkipped: promauto.NewCounter(prometheus.CounterOpts{
			Name: "parishbooks_mappings_skipped_total",
			Help: "Total number of edits skipped because the entry had no mapping",
		}),
		PostingAmount: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "parishbooks_posting_amount",
			Help:    "Posting amounts",
			Buckets: []float64{1, 10, 100, 1000, 10000, 100000, 1000000},
		}),

		// Consistency metrics
		ConsistencyChecks: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parishbooks_consistency_checks_total",
				Help: "Total ledger consistency checks by result",
			},
			[]string{"result"},
		),
		ConsistencyDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Name:    "parishbooks_consistency_duration_seconds",
			Help:    "Duration of ledger consistency checks",
			Buckets: prometheus.DefBuckets,
		}),

		// API metrics
		HTTPRequests: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parishbooks_http_requests_total",
				Help: "Total HTTP requests",
			},
			[]string{"method", "path", "status"},
		),
		HTTPDuration: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "parishbooks_http_duration_seconds",
				Help:    "HTTP request duration",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		// Database metrics
		DBQueries: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parishbooks_db_queries_total",
				Help: "Total database queries",
			},
			[]string{"operation", "table"},
		),
		DBConnections: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "parishbooks_db_connections",
			Help: "Current number of database connections",
		}),
		DBErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parishbooks_db_errors_total",
				Help: "Total database errors",
			},
			[]string{"operation"},
		),

		// Redis metrics
		RedisOperations: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parishbooks_redis_operations_total",
				Help: "Total Redis operations",
			},
			[]string{"operation"},
		),
		RedisErrors: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parishbooks_redis_errors_total",
				Help: "Total Redis errors",
			},
			[]string{"operation"},
		),

		// Rate limiting metrics
		RateLimitHits: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parishbooks_rate_limit_hits_total",
				Help: "Total rate limit hits",
			},
			[]string{"ip"},
		),

		// Outbox metrics
		EventsPublished: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parishbooks_events_published_total",
				Help: "Total outbox events published by type",
			},
			[]string{"event_type"},
		),
		EventsPending: promauto.NewGauge(prometheus.GaugeOpts{
			Name: "parishbooks_events_pending",
			Help: "Outbox events awaiting publication",
		}),

		// Audit metrics
		AuditLogsCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "parishbooks_audit_logs_total",
				Help: "Total audit logs created",
			},
			[]string{"action", "status"},
		),
	}
}

// Recorder adapts Metrics to the engine's usecase.Recorder interface.
type Recorder struct {
	m *Metrics
}

// NewRecorder creates a Recorder backed by m.
func NewRecorder(m *Metrics) *Recorder {
	return &Recorder{m: m}
}

func (r *Recorder) BatchCreated() { r.m.BatchesCreated.Inc() }
func (r *Recorder) BatchUpdated() { r.m.BatchesUpdated.Inc() }
func (r *Recorder) BatchDeleted() { r.m.BatchesDeleted.Inc() }

func (r *Recorder) PostingsWritten(n int) { r.m.PostingsWritten.Add(float64(n)) }
func (r *Recorder) MappingSkipped()       { r.m.MappingsSkipped.Inc() }
