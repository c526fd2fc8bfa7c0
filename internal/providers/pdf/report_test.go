package pdf

import (
	"bytes"
	"context"
	"testing"

	findingdomain "github.com/opengovlab/drishti/internal/finding/domain"
	"github.com/stretchr/testify/require"
)

func TestRenderReportProducesPDF(t *testing.T) {
	score := 0.91
	expected := 1200.0
	observed := 2150.0

	data := ReportData{
		Year:           2025,
		Month:          1,
		State:          "Delhi",
		District:       "Central Delhi",
		MetricCategory: "enrolment",
		GeneratedBy:    "system",
		Summary: findingdomain.Summary{
			TotalFindings: 1,
			Anomalies:     1,
			Critical:      1,
		},
		Findings: []ReportFinding{
			{
				FindingType:    "anomaly",
				Severity:       "critical",
				Title:          "Anomaly Detected: enrolment - age_18_plus",
				Description:    "Anomalous activity detected in enrolment for age group age_18_plus. Anomaly score: 0.91.",
				Confidence:     0.89,
				Recommendation: "Investigate root cause",
				DetectedAt:     "2025-02-03T06:00:00Z",
				Value1:         &score,
				Value2:         &expected,
				Value3:         &observed,
				Label1:         "Anomaly Score",
				Label2:         "Expected Value",
				Label3:         "Observed Value",
			},
		},
	}

	out, err := New().RenderReport(context.Background(), data)
	require.NoError(t, err)
	require.NotEmpty(t, out)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output must be a PDF document")
}

func TestRenderReportWithoutFindings(t *testing.T) {
	out, err := New().RenderReport(context.Background(), ReportData{
		Year: 2025, Month: 6, State: "Goa", District: "North Goa",
		GeneratedBy: "system",
	})
	require.NoError(t, err)
	require.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestMetricCell(t *testing.T) {
	v := 0.5
	if got := metricCell("Score", &v); got != "Score: 0.50" {
		t.Fatalf("metricCell = %q", got)
	}
	if got := metricCell("", &v); got != "" {
		t.Fatalf("metricCell without label = %q", got)
	}
	if got := metricCell("Score", nil); got != "" {
		t.Fatalf("metricCell without value = %q", got)
	}
}
