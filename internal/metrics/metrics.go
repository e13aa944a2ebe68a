// Package metrics records what the lexer sees across a run on a private
// Prometheus registry and renders it in the text exposition format.
package metrics

import (
	"io"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/prometheus/common/expfmt"

	"kotlinlex/internal/frontend/lexer"
)

var (
	registry = prometheus.NewPedanticRegistry()

	// Namespace is used to scope metrics from kotlinlex. It is prepended to
	// metric names and separated with a '_'
	Namespace = "kotlinlex"

	// Labels

	// LabelKind is the token or diagnostic kind
	LabelKind = "kind"

	// LabelOutcome marks whether an analysis was free of diagnostics
	LabelOutcome = "outcome"

	// LabelValueOutcomeSuccess is used as a successful outcome of an analysis
	LabelValueOutcomeSuccess = "success"

	// LabelValueOutcomeFail is used when an analysis reported diagnostics
	LabelValueOutcomeFail = "fail"

	// AnalysisCount is the number of completed analyses, tagged by outcome
	AnalysisCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "analyses_total",
		Help:      "Number of completed lexical analyses, tagged by outcome",
	}, []string{LabelOutcome})

	// TokenCount is the number of tokens produced, tagged by token kind.
	// The EOF sentinel is not counted.
	TokenCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "tokens_total",
		Help:      "Number of tokens produced, tagged by kind",
	}, []string{LabelKind})

	// DiagnosticCount is the number of diagnostics reported, tagged by kind
	DiagnosticCount = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: Namespace,
		Name:      "diagnostics_total",
		Help:      "Number of lexical diagnostics reported, tagged by kind",
	}, []string{LabelKind})

	// AnalysisDuration is the wall time of single analyses
	AnalysisDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: Namespace,
		Name:      "analysis_duration_seconds",
		Help:      "Duration of a single lexical analysis",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 10),
	})

	// FilesInFlight is the number of files currently being analysed
	FilesInFlight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: Namespace,
		Name:      "files_in_flight",
		Help:      "Number of files currently being analysed",
	})
)

func init() {
	MustRegister(AnalysisCount, TokenCount, DiagnosticCount, AnalysisDuration, FilesInFlight)
}

// MustRegister adds the collectors to the registry; it panics on a
// duplicate or invalid collector.
func MustRegister(c ...prometheus.Collector) {
	registry.MustRegister(c...)
}

// ObserveResult accounts one finished analysis.
func ObserveResult(r *lexer.AnalysisResult) {
	outcome := LabelValueOutcomeSuccess
	if !r.Success {
		outcome = LabelValueOutcomeFail
	}
	AnalysisCount.WithLabelValues(outcome).Inc()
	AnalysisDuration.Observe(r.Elapsed.Seconds())

	for kind, n := range r.Statistics.ByKind {
		TokenCount.WithLabelValues(kind.String()).Add(float64(n))
	}
	for kind, n := range r.Statistics.DiagnosticKinds {
		DiagnosticCount.WithLabelValues(kind.String()).Add(float64(n))
	}
}

// Gather returns the current state of every registered metric.
func Gather() ([]*dto.MetricFamily, error) {
	return registry.Gather()
}

// Dump writes every registered metric to w in the Prometheus text format.
func Dump(w io.Writer) error {
	families, err := Gather()
	if err != nil {
		return errors.Wrap(err, "unable to gather metrics")
	}
	enc := expfmt.NewEncoder(w, expfmt.FmtText)
	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return errors.Wrapf(err, "unable to encode metric %s", mf.GetName())
		}
	}
	return nil
}

// GetCounterValue returns the current value stored for the counter
func GetCounterValue(m prometheus.Counter) float64 {
	var pm dto.Metric
	if err := m.Write(&pm); err == nil {
		return pm.GetCounter().GetValue()
	}
	return 0
}

// GetGaugeValue returns the current value stored for the gauge
func GetGaugeValue(m prometheus.Gauge) float64 {
	var pm dto.Metric
	if err := m.Write(&pm); err == nil {
		return pm.GetGauge().GetValue()
	}
	return 0
}
