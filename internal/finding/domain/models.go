package domain

import "time"

// The four analytic result tables are populated by the external ML pipeline.
// This service only reads them.

type AnomalyResult struct {
	ID                int64     `gorm:"primaryKey" json:"id"`
	Year              int       `gorm:"not null;index:idx_anomaly_period_region" json:"year"`
	Month             int       `gorm:"not null;index:idx_anomaly_period_region" json:"month"`
	State             string    `gorm:"not null;index:idx_anomaly_period_region" json:"state"`
	District          string    `gorm:"not null;index:idx_anomaly_period_region" json:"district"`
	MetricCategory    string    `gorm:"not null" json:"metric_category"`
	AgeGroup          string    `gorm:"not null" json:"age_group"`
	IsAnomaly         bool      `gorm:"not null;default:false" json:"is_anomaly"`
	AnomalyScore      float64   `gorm:"not null" json:"anomaly_score"`
	AnomalySeverity   string    `json:"anomaly_severity"`
	AnomalyConfidence float64   `gorm:"not null" json:"anomaly_confidence"`
	ExpectedValue     float64   `json:"expected_value"`
	ObservedValue     float64   `json:"observed_value"`
	SourceBatchID     string    `json:"source_batch_id"`
	DetectedAt        time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"detected_at"`
}

func (AnomalyResult) TableName() string { return "anomaly_results" }

type PatternResult struct {
	ID                  int64     `gorm:"primaryKey" json:"id"`
	Year                int       `gorm:"not null;index:idx_pattern_period_region" json:"year"`
	Month               int       `gorm:"not null;index:idx_pattern_period_region" json:"month"`
	State               string    `gorm:"not null;index:idx_pattern_period_region" json:"state"`
	District            string    `gorm:"not null;index:idx_pattern_period_region" json:"district"`
	MetricCategory      string    `gorm:"not null" json:"metric_category"`
	AgeGroup            string    `gorm:"not null" json:"age_group"`
	HasPattern          bool      `gorm:"not null;default:false" json:"has_pattern"`
	DominantPatternType string    `json:"dominant_pattern_type"`
	PatternStrength     float64   `gorm:"not null" json:"pattern_strength"`
	PatternConfidence   float64   `gorm:"not null" json:"pattern_confidence"`
	SourceBatchID       string    `json:"source_batch_id"`
	DetectedAt          time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"detected_at"`
}

func (PatternResult) TableName() string { return "pattern_results" }

type TrendResult struct {
	ID              int64     `gorm:"primaryKey" json:"id"`
	Year            int       `gorm:"not null;index:idx_trend_period_region" json:"year"`
	Month           int       `gorm:"not null;index:idx_trend_period_region" json:"month"`
	State           string    `gorm:"not null;index:idx_trend_period_region" json:"state"`
	District        string    `gorm:"not null;index:idx_trend_period_region" json:"district"`
	MetricCategory  string    `gorm:"not null" json:"metric_category"`
	AgeGroup        string    `gorm:"not null" json:"age_group"`
	TrendDirection  string    `gorm:"not null;default:'stable'" json:"trend_direction"`
	TrendSlope      float64   `gorm:"not null" json:"trend_slope"`
	TrendStrength   float64   `gorm:"not null" json:"trend_strength"`
	TrendConfidence float64   `gorm:"not null" json:"trend_confidence"`
	SourceBatchID   string    `json:"source_batch_id"`
	DetectedAt      time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"detected_at"`
}

func (TrendResult) TableName() string { return "trend_results" }

type PredictiveIndicator struct {
	ID                   int64     `gorm:"primaryKey" json:"id"`
	Year                 int       `gorm:"not null;index:idx_predictive_period_region" json:"year"`
	Month                int       `gorm:"not null;index:idx_predictive_period_region" json:"month"`
	State                string    `gorm:"not null;index:idx_predictive_period_region" json:"state"`
	District             string    `gorm:"not null;index:idx_predictive_period_region" json:"district"`
	MetricCategory       string    `gorm:"not null" json:"metric_category"`
	AgeGroup             string    `gorm:"not null" json:"age_group"`
	RiskSignal           string    `gorm:"not null;default:'stable'" json:"risk_signal"`
	RiskScore            float64   `gorm:"not null" json:"risk_score"`
	PredictionConfidence float64   `gorm:"not null" json:"prediction_confidence"`
	ContributingFactors  string    `json:"contributing_factors"`
	SourceBatchID        string    `json:"source_batch_id"`
	DetectedAt           time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"detected_at"`
}

func (PredictiveIndicator) TableName() string { return "predictive_indicators" }
