package seed

import (
	"time"

	findingdomain "github.com/opengovlab/drishti/internal/finding/domain"
	"gorm.io/gorm"
)

const seedBatchID = "seed_batch_2025_01"

// EnsureSampleAnalytics loads representative analytic rows for local
// development. It is a no-op when the seed batch is already present.
func EnsureSampleAnalytics(conn *gorm.DB) error {
	var count int64
	if err := conn.Model(&findingdomain.AnomalyResult{}).
		Where("source_batch_id = ?", seedBatchID).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	detectedAt := time.Date(2025, 2, 3, 6, 0, 0, 0, time.UTC)

	anomalies := []findingdomain.AnomalyResult{
		{
			Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
			MetricCategory: "enrolment", AgeGroup: "age_18_plus",
			IsAnomaly: true, AnomalyScore: 0.91, AnomalySeverity: "critical",
			AnomalyConfidence: 0.89, ExpectedValue: 1200, ObservedValue: 2150,
			SourceBatchID: seedBatchID, DetectedAt: detectedAt,
		},
	}
	patterns := []findingdomain.PatternResult{
		{
			Year: 2025, Month: 1, State: "Bihar", District: "Patna",
			MetricCategory: "enrolment", AgeGroup: "age_18_plus",
			HasPattern: true, DominantPatternType: "seasonal",
			PatternStrength: 0.76, PatternConfidence: 0.80,
			SourceBatchID: seedBatchID, DetectedAt: detectedAt,
		},
	}
	trends := []findingdomain.TrendResult{
		{
			Year: 2025, Month: 1, State: "Rajasthan", District: "Jaipur",
			MetricCategory: "enrolment", AgeGroup: "age_18_plus",
			TrendDirection: "increasing", TrendSlope: 0.27,
			TrendStrength: 0.81, TrendConfidence: 0.84,
			SourceBatchID: seedBatchID, DetectedAt: detectedAt,
		},
	}
	predictions := []findingdomain.PredictiveIndicator{
		{
			Year: 2025, Month: 1, State: "Maharashtra", District: "Mumbai",
			MetricCategory: "biometric_update", AgeGroup: "age_18_plus",
			RiskSignal: "likely_spike", RiskScore: 0.74, PredictionConfidence: 0.78,
			ContributingFactors: "Consistent upward trend with rising volatility",
			SourceBatchID:       seedBatchID, DetectedAt: detectedAt,
		},
	}

	return conn.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&anomalies).Error; err != nil {
			return err
		}
		if err := tx.Create(&patterns).Error; err != nil {
			return err
		}
		if err := tx.Create(&trends).Error; err != nil {
			return err
		}
		return tx.Create(&predictions).Error
	})
}
