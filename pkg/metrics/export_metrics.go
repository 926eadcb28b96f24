// Package metrics provides Prometheus metrics for monitoring the export pipeline.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Export pipeline metrics
var (
	// exportTotal records the total number of meeting exports.
	// Labels:
	//   - format: Target format (e.g., "pdf", "docx", "txt", "md", "json")
	//   - status: Export status (e.g., "success", "failed")
	exportTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "meeting_exports_total",
			Help: "Total number of meeting exports",
		},
		[]string{"format", "status"},
	)

	// exportDuration records the duration of meeting exports.
	// Labels:
	//   - format: Target format (e.g., "pdf", "docx", "txt", "md", "json")
	// Buckets: 10ms, 50ms, 100ms, 500ms, 1s, 2s, 5s, 10s
	exportDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "meeting_export_duration_seconds",
			Help:    "Duration of meeting exports in seconds",
			Buckets: []float64{0.01, 0.05, 0.1, 0.5, 1, 2, 5, 10},
		},
		[]string{"format"},
	)

	// batchSize records the number of meetings per batch export request.
	batchSize = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "meeting_export_batch_size",
			Help:    "Number of meetings per batch export",
			Buckets: []float64{1, 2, 5, 10, 20, 50, 100},
		},
	)

	// historyWriteFailures records failed best-effort export history writes.
	historyWriteFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "meeting_export_history_write_failures_total",
			Help: "Total number of failed export history writes",
		},
	)
)

func init() {
	// Register all export-related metrics with Prometheus
	prometheus.MustRegister(exportTotal)
	prometheus.MustRegister(exportDuration)
	prometheus.MustRegister(batchSize)
	prometheus.MustRegister(historyWriteFailures)
}

// RecordExport records a completed export attempt.
// Parameters:
//   - format: Target format (e.g., "pdf")
//   - status: Export status ("success" or "failed")
func RecordExport(format, status string) {
	exportTotal.WithLabelValues(format, status).Inc()
}

// RecordExportDuration records how long an export took.
func RecordExportDuration(format string, durationSeconds float64) {
	exportDuration.WithLabelValues(format).Observe(durationSeconds)
}

// RecordBatchSize records the size of a batch export request.
func RecordBatchSize(n int) {
	batchSize.Observe(float64(n))
}

// RecordHistoryWriteFailure records a failed export history write.
func RecordHistoryWriteFailure() {
	historyWriteFailures.Inc()
}
