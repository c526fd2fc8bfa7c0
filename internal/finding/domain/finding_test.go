package domain

import (
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeriveSeverity(t *testing.T) {
	tests := []struct {
		score float64
		want  Severity
	}{
		{0.0, SeverityLow},
		{0.39, SeverityLow},
		{0.4, SeverityMedium},
		{0.59, SeverityMedium},
		{0.6, SeverityHigh},
		{0.79, SeverityHigh},
		{0.8, SeverityCritical},
		{1.0, SeverityCritical},
	}
	for _, tc := range tests {
		if got := DeriveSeverity(tc.score); got != tc.want {
			t.Fatalf("DeriveSeverity(%v) = %s, want %s", tc.score, got, tc.want)
		}
	}
}

func TestSeverityRankOrdering(t *testing.T) {
	if !(SeverityCritical.Rank() > SeverityHigh.Rank() &&
		SeverityHigh.Rank() > SeverityMedium.Rank() &&
		SeverityMedium.Rank() > SeverityLow.Rank()) {
		t.Fatal("severity ranks are not strictly ordered")
	}
	if Severity("unknown").Rank() != 0 {
		t.Fatal("unknown severity should rank below low")
	}
}

func TestNewAnomalyFindingPrefersStoredSeverity(t *testing.T) {
	a := AnomalyResult{
		ID:                7,
		State:             "Delhi",
		District:          "Central Delhi",
		MetricCategory:    "enrolment",
		AgeGroup:          "age_18_plus",
		AnomalyScore:      0.95,
		AnomalySeverity:   "medium",
		AnomalyConfidence: 0.7,
		ExpectedValue:     100,
		ObservedValue:     240,
		DetectedAt:        time.Now(),
	}

	f := NewAnomalyFinding(a)
	assert.Equal(t, SeverityMedium, f.Severity, "stored severity must win over the derived one")
	assert.Equal(t, "anomaly_results", f.SourceTable)
	assert.Equal(t, int64(7), f.SourceID)
	assert.Equal(t, 0.95, *f.Value1)
	assert.Equal(t, 100.0, *f.Value2)
	assert.Equal(t, 240.0, *f.Value3)

	a.AnomalySeverity = ""
	f = NewAnomalyFinding(a)
	assert.Equal(t, SeverityCritical, f.Severity, "missing severity falls back to the score")
}

func TestNewTrendFindingRecommendationBranches(t *testing.T) {
	base := TrendResult{
		ID:             3,
		MetricCategory: "enrolment",
		TrendSlope:     0.3,
		TrendStrength:  0.7,
	}

	base.TrendDirection = "increasing"
	up := NewTrendFinding(base)
	if !strings.Contains(up.Recommendation, "Prepare for continued growth") {
		t.Fatalf("increasing trend recommendation = %q", up.Recommendation)
	}

	base.TrendDirection = "decreasing"
	down := NewTrendFinding(base)
	if !strings.Contains(down.Recommendation, "Investigate causes of decline") {
		t.Fatalf("decreasing trend recommendation = %q", down.Recommendation)
	}
}

func TestSummarizeIsOrderIndependent(t *testing.T) {
	findings := []Finding{
		{FindingType: FindingTypeAnomaly, Severity: SeverityCritical},
		{FindingType: FindingTypeAnomaly, Severity: SeverityHigh},
		{FindingType: FindingTypePattern, Severity: SeverityMedium},
		{FindingType: FindingTypeTrend, Severity: SeverityLow},
		{FindingType: FindingTypePrediction, Severity: SeverityHigh},
	}

	want := Summary{
		TotalFindings: 5,
		Anomalies:     2,
		Patterns:      1,
		Trends:        1,
		Predictions:   1,
		Critical:      1,
		High:          2,
		Medium:        1,
		Low:           1,
	}

	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		rng.Shuffle(len(findings), func(a, b int) {
			findings[a], findings[b] = findings[b], findings[a]
		})
		if got := Summarize(findings); got != want {
			t.Fatalf("Summarize after shuffle %d = %+v, want %+v", i, got, want)
		}
	}
}

func TestMetricLabels(t *testing.T) {
	l1, l2, l3 := FindingTypeAnomaly.MetricLabels()
	assert.Equal(t, []string{"Anomaly Score", "Expected Value", "Observed Value"}, []string{l1, l2, l3})

	l1, l2, l3 = FindingTypePattern.MetricLabels()
	assert.Equal(t, "Pattern Strength", l1)
	assert.Equal(t, "Confidence", l2)
	assert.Empty(t, l3)

	_, _, l3 = FindingTypeTrend.MetricLabels()
	assert.Empty(t, l3)
}
