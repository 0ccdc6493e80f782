package metrics

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const (
	metricPrefix = "facilityops_"

	resultSuccess = "success"
	resultError   = "error"
)

var (
	registerOnce sync.Once

	ledgerSubmitTotal   *prometheus.CounterVec
	ledgerSubmitLatency *prometheus.HistogramVec

	ledgerExportTotal   *prometheus.CounterVec
	ledgerExportLatency *prometheus.HistogramVec

	recordSaveTotal *prometheus.CounterVec

	uploadTotal   *prometheus.CounterVec
	uploadLatency *prometheus.HistogramVec
)

// Init registers service metrics. Safe to call more than once.
func Init() {
	registerOnce.Do(func() {
		ledgerSubmitTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_submit_total",
				Help: "Total ledger entry submissions by result",
			},
			[]string{"result"},
		)
		ledgerSubmitLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ledger_submit_latency_seconds",
				Help:    "Ledger entry submission latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		ledgerExportTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "ledger_export_total",
				Help: "Total ledger export attempts by result",
			},
			[]string{"result"},
		)
		ledgerExportLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "ledger_export_latency_seconds",
				Help:    "Ledger export latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)
		recordSaveTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "record_save_total",
				Help: "Total dated record saves by kind and result",
			},
			[]string{"kind", "result"},
		)
		uploadTotal = prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: metricPrefix + "export_upload_total",
				Help: "Total export file uploads by result",
			},
			[]string{"result"},
		)
		uploadLatency = prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    metricPrefix + "export_upload_latency_seconds",
				Help:    "Export file upload latency in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"result"},
		)

		prometheus.MustRegister(
			ledgerSubmitTotal,
			ledgerSubmitLatency,
			ledgerExportTotal,
			ledgerExportLatency,
			recordSaveTotal,
			uploadTotal,
			uploadLatency,
		)
	})
}

// ObserveLedgerSubmit records a submission result and latency.
func ObserveLedgerSubmit(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if ledgerSubmitTotal != nil {
		ledgerSubmitTotal.WithLabelValues(result).Inc()
	}
	if ledgerSubmitLatency != nil {
		ledgerSubmitLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// ObserveLedgerExport records an export attempt result and latency.
func ObserveLedgerExport(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if ledgerExportTotal != nil {
		ledgerExportTotal.WithLabelValues(result).Inc()
	}
	if ledgerExportLatency != nil {
		ledgerExportLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// IncRecordSave counts a dated record save by kind.
func IncRecordSave(kind, result string) {
	if kind == "" {
		kind = "unknown"
	}
	if result == "" {
		result = resultSuccess
	}
	if recordSaveTotal != nil {
		recordSaveTotal.WithLabelValues(kind, result).Inc()
	}
}

// ObserveUpload records an export upload result and latency.
func ObserveUpload(result string, duration time.Duration) {
	if result == "" {
		result = resultSuccess
	}
	if uploadTotal != nil {
		uploadTotal.WithLabelValues(result).Inc()
	}
	if uploadLatency != nil {
		uploadLatency.WithLabelValues(result).Observe(duration.Seconds())
	}
}

// Exported constants for callers.
const (
	ResultSuccess = resultSuccess
	ResultError   = resultError
)
