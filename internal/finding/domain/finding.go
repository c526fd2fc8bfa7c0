package domain

import (
	"fmt"
	"time"
)

type FindingType string

const (
	FindingTypeAnomaly    FindingType = "anomaly"
	FindingTypePattern    FindingType = "pattern"
	FindingTypeTrend      FindingType = "trend"
	FindingTypePrediction FindingType = "prediction"
)

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// DeriveSeverity maps a [0,1] score onto the four-tier severity scale.
// It is the single severity policy for every source that lacks an
// explicit severity.
func DeriveSeverity(score float64) Severity {
	switch {
	case score >= 0.8:
		return SeverityCritical
	case score >= 0.6:
		return SeverityHigh
	case score >= 0.4:
		return SeverityMedium
	default:
		return SeverityLow
	}
}

// Rank orders severities so critical sorts above low.
func (s Severity) Rank() int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// Finding is one normalized analytic observation destined for a report.
// It is transient: built per generation request, never stored as-is.
type Finding struct {
	FindingType    FindingType
	SourceTable    string
	SourceID       int64
	State          string
	District       string
	MetricCategory string
	AgeGroup       string
	Title          string
	Description    string
	Severity       Severity
	Confidence     float64
	Value1         *float64
	Value2         *float64
	Value3         *float64
	Recommendation string
	DetectedAt     time.Time
}

func NewAnomalyFinding(a AnomalyResult) Finding {
	severity := Severity(a.AnomalySeverity)
	if a.AnomalySeverity == "" {
		severity = DeriveSeverity(a.AnomalyScore)
	}
	return Finding{
		FindingType:    FindingTypeAnomaly,
		SourceTable:    "anomaly_results",
		SourceID:       a.ID,
		State:          a.State,
		District:       a.District,
		MetricCategory: a.MetricCategory,
		AgeGroup:       a.AgeGroup,
		Title:          fmt.Sprintf("Anomaly Detected: %s - %s", a.MetricCategory, a.AgeGroup),
		Description: fmt.Sprintf("Anomalous activity detected in %s for age group %s. Anomaly score: %.2f.",
			a.MetricCategory, a.AgeGroup, a.AnomalyScore),
		Severity:   severity,
		Confidence: a.AnomalyConfidence,
		Value1:     floatPtr(a.AnomalyScore),
		Value2:     floatPtr(a.ExpectedValue),
		Value3:     floatPtr(a.ObservedValue),
		Recommendation: fmt.Sprintf("Investigate root cause of anomaly in %s\nReview operational procedures for %s\nVerify data accuracy and reporting mechanisms",
			a.District, a.MetricCategory),
		DetectedAt: a.DetectedAt,
	}
}

func NewPatternFinding(p PatternResult) Finding {
	return Finding{
		FindingType:    FindingTypePattern,
		SourceTable:    "pattern_results",
		SourceID:       p.ID,
		State:          p.State,
		District:       p.District,
		MetricCategory: p.MetricCategory,
		AgeGroup:       p.AgeGroup,
		Title:          fmt.Sprintf("Pattern Identified: %s", p.DominantPatternType),
		Description: fmt.Sprintf("%s pattern detected in %s for %s. Pattern strength: %.2f.",
			p.DominantPatternType, p.MetricCategory, p.AgeGroup, p.PatternStrength),
		Severity:   DeriveSeverity(p.PatternStrength),
		Confidence: p.PatternConfidence,
		Value1:     floatPtr(p.PatternStrength),
		Value2:     floatPtr(p.PatternConfidence),
		Recommendation: fmt.Sprintf("Monitor %s pattern continuation\nPlan resource allocation accordingly\nDocument pattern for future reference",
			p.DominantPatternType),
		DetectedAt: p.DetectedAt,
	}
}

func NewTrendFinding(t TrendResult) Finding {
	recommendation := "Investigate causes of decline\nImplement corrective measures\nEnhance awareness campaigns"
	if t.TrendDirection == "increasing" {
		recommendation = fmt.Sprintf("Prepare for continued growth in %s\nIncrease operational capacity\nMonitor sustainability", t.MetricCategory)
	}
	return Finding{
		FindingType:    FindingTypeTrend,
		SourceTable:    "trend_results",
		SourceID:       t.ID,
		State:          t.State,
		District:       t.District,
		MetricCategory: t.MetricCategory,
		AgeGroup:       t.AgeGroup,
		Title:          fmt.Sprintf("Trend: %s in %s", t.TrendDirection, t.MetricCategory),
		Description: fmt.Sprintf("%s trend observed with slope %.2f and strength %.2f.",
			t.TrendDirection, t.TrendSlope, t.TrendStrength),
		Severity:       DeriveSeverity(t.TrendStrength),
		Confidence:     t.TrendConfidence,
		Value1:         floatPtr(t.TrendSlope),
		Value2:         floatPtr(t.TrendStrength),
		Recommendation: recommendation,
		DetectedAt:     t.DetectedAt,
	}
}

func NewPredictionFinding(p PredictiveIndicator) Finding {
	return Finding{
		FindingType:    FindingTypePrediction,
		SourceTable:    "predictive_indicators",
		SourceID:       p.ID,
		State:          p.State,
		District:       p.District,
		MetricCategory: p.MetricCategory,
		AgeGroup:       p.AgeGroup,
		Title:          fmt.Sprintf("Prediction: %s", p.RiskSignal),
		Description: fmt.Sprintf("Risk signal: %s. Risk score: %.2f. Factors: %s.",
			p.RiskSignal, p.RiskScore, p.ContributingFactors),
		Severity:   DeriveSeverity(p.RiskScore),
		Confidence: p.PredictionConfidence,
		Value1:     floatPtr(p.RiskScore),
		Value2:     floatPtr(p.PredictionConfidence),
		Recommendation: fmt.Sprintf("Monitor %s indicators closely\nPrepare contingency plans\nAddress contributing factors: %s",
			p.RiskSignal, p.ContributingFactors),
		DetectedAt: p.DetectedAt,
	}
}

// MetricLabels returns the display labels for the three metric slots of a
// finding type. Label3 is empty when the type only carries two metrics.
func (t FindingType) MetricLabels() (label1, label2, label3 string) {
	switch t {
	case FindingTypeAnomaly:
		return "Anomaly Score", "Expected Value", "Observed Value"
	case FindingTypePattern:
		return "Pattern Strength", "Confidence", ""
	case FindingTypeTrend:
		return "Trend Slope", "Trend Strength", ""
	case FindingTypePrediction:
		return "Risk Score", "Confidence", ""
	default:
		return "Value 1", "Value 2", "Value 3"
	}
}

func floatPtr(v float64) *float64 { return &v }
