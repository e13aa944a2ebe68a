package metrics

import (
	"bytes"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"kotlinlex/internal/diagnostics"
	"kotlinlex/internal/frontend/lexer"
)

func TestObserveResult(t *testing.T) {
	analyses := GetCounterValue(AnalysisCount.WithLabelValues(LabelValueOutcomeFail))
	idents := GetCounterValue(TokenCount.WithLabelValues(lexer.IDENTIFIER.String()))
	unclosed := GetCounterValue(DiagnosticCount.WithLabelValues(diagnostics.UnmatchedOpenParen.String()))
	durations := histogramCount(t)

	ObserveResult(lexer.Analyze("f(a, b"))

	assert.Equal(t, analyses+1, GetCounterValue(AnalysisCount.WithLabelValues(LabelValueOutcomeFail)))
	assert.Equal(t, idents+3, GetCounterValue(TokenCount.WithLabelValues(lexer.IDENTIFIER.String())))
	assert.Equal(t, unclosed+1, GetCounterValue(DiagnosticCount.WithLabelValues(diagnostics.UnmatchedOpenParen.String())))
	assert.Equal(t, durations+1, histogramCount(t))
}

func TestFilesInFlight(t *testing.T) {
	FilesInFlight.Inc()
	assert.Equal(t, 1.0, GetGaugeValue(FilesInFlight))
	assert.Equal(t, 1.0, testutil.ToFloat64(FilesInFlight))
	assert.Equal(t, 1, testutil.CollectAndCount(FilesInFlight))
	FilesInFlight.Dec()
	assert.Equal(t, 0.0, GetGaugeValue(FilesInFlight))
}

func TestDump(t *testing.T) {
	ObserveResult(lexer.Analyze("val x = 1"))

	var buf bytes.Buffer
	require.NoError(t, Dump(&buf))

	out := buf.String()
	assert.Contains(t, out, "# TYPE kotlinlex_analyses_total counter")
	assert.Contains(t, out, `kotlinlex_analyses_total{outcome="success"}`)
	assert.Contains(t, out, `kotlinlex_tokens_total{kind="KEYWORD"}`)
	assert.Contains(t, out, "# TYPE kotlinlex_analysis_duration_seconds histogram")
	assert.Contains(t, out, "kotlinlex_files_in_flight 0")
}

func histogramCount(t *testing.T) uint64 {
	t.Helper()
	families, err := Gather()
	require.NoError(t, err)
	for _, mf := range families {
		if mf.GetName() == "kotlinlex_analysis_duration_seconds" {
			return mf.GetMetric()[0].GetHistogram().GetSampleCount()
		}
	}
	return 0
}
