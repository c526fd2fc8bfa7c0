package service

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/opengovlab/drishti/internal/config"
	"github.com/opengovlab/drishti/internal/finding/domain"
	"github.com/opengovlab/drishti/internal/finding/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func setupFindingService(t *testing.T, reporting config.ReportingConfig) (domain.Service, *gorm.DB) {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared",
		strings.NewReplacer("/", "_", " ", "_").Replace(t.Name()))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)

	require.NoError(t, conn.AutoMigrate(
		&domain.AnomalyResult{},
		&domain.PatternResult{},
		&domain.TrendResult{},
		&domain.PredictiveIndicator{},
	))

	svc := New(Params{
		DB:        conn,
		Log:       zap.NewNop(),
		Repo:      repository.Provide(),
		Reporting: config.NewStaticReportingHolder(reporting),
	})
	return svc, conn
}

func TestGatherNormalizesAllFourSources(t *testing.T) {
	svc, conn := setupFindingService(t, config.DefaultReportingConfig())
	detectedAt := time.Date(2025, 2, 3, 6, 0, 0, 0, time.UTC)

	require.NoError(t, conn.Create(&domain.AnomalyResult{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
		MetricCategory: "enrolment", AgeGroup: "age_18_plus",
		IsAnomaly: true, AnomalyScore: 0.91, AnomalySeverity: "critical",
		AnomalyConfidence: 0.89, DetectedAt: detectedAt,
	}).Error)
	require.NoError(t, conn.Create(&domain.PatternResult{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
		MetricCategory: "enrolment", AgeGroup: "age_18_plus",
		HasPattern: true, DominantPatternType: "seasonal",
		PatternStrength: 0.76, PatternConfidence: 0.80, DetectedAt: detectedAt,
	}).Error)
	require.NoError(t, conn.Create(&domain.TrendResult{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
		MetricCategory: "enrolment", AgeGroup: "age_18_plus",
		TrendDirection: "increasing", TrendSlope: 0.27,
		TrendStrength: 0.81, TrendConfidence: 0.84, DetectedAt: detectedAt,
	}).Error)
	require.NoError(t, conn.Create(&domain.PredictiveIndicator{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
		MetricCategory: "biometric_update", AgeGroup: "age_18_plus",
		RiskSignal: "likely_spike", RiskScore: 0.74, PredictionConfidence: 0.78,
		DetectedAt: detectedAt,
	}).Error)

	findings, err := svc.Gather(context.Background(), domain.Filter{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
	})
	require.NoError(t, err)
	require.Len(t, findings, 4)

	// Stable normalization order regardless of query completion order.
	assert.Equal(t, domain.FindingTypeAnomaly, findings[0].FindingType)
	assert.Equal(t, domain.FindingTypePattern, findings[1].FindingType)
	assert.Equal(t, domain.FindingTypeTrend, findings[2].FindingType)
	assert.Equal(t, domain.FindingTypePrediction, findings[3].FindingType)
}

func TestGatherSkipsQuietRows(t *testing.T) {
	svc, conn := setupFindingService(t, config.DefaultReportingConfig())
	detectedAt := time.Date(2025, 2, 3, 6, 0, 0, 0, time.UTC)

	// None of these rows carries a signal worth reporting.
	require.NoError(t, conn.Create(&domain.AnomalyResult{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
		MetricCategory: "enrolment", AgeGroup: "age_18_plus",
		IsAnomaly: false, AnomalyScore: 0.2, DetectedAt: detectedAt,
	}).Error)
	require.NoError(t, conn.Create(&domain.TrendResult{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
		MetricCategory: "enrolment", AgeGroup: "age_18_plus",
		TrendDirection: "stable", DetectedAt: detectedAt,
	}).Error)
	require.NoError(t, conn.Create(&domain.PredictiveIndicator{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
		MetricCategory: "enrolment", AgeGroup: "age_18_plus",
		RiskSignal: "stable", DetectedAt: detectedAt,
	}).Error)

	findings, err := svc.Gather(context.Background(), domain.Filter{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
	})
	require.NoError(t, err)
	assert.Empty(t, findings)
}

func TestGatherHonorsSourceCap(t *testing.T) {
	cfg := config.DefaultReportingConfig()
	cfg.SourceCap = 3
	svc, conn := setupFindingService(t, cfg)

	for i := 0; i < 10; i++ {
		require.NoError(t, conn.Create(&domain.AnomalyResult{
			Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
			MetricCategory: "enrolment", AgeGroup: "age_18_plus",
			IsAnomaly: true, AnomalyScore: float64(i) / 10,
			DetectedAt: time.Now(),
		}).Error)
	}

	findings, err := svc.Gather(context.Background(), domain.Filter{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
	})
	require.NoError(t, err)
	require.Len(t, findings, 3)

	// Highest scores survive the cap.
	assert.Equal(t, 0.9, *findings[0].Value1)
	assert.Equal(t, 0.8, *findings[1].Value1)
	assert.Equal(t, 0.7, *findings[2].Value1)
}

func TestGatherFiltersByMetricCategory(t *testing.T) {
	svc, conn := setupFindingService(t, config.DefaultReportingConfig())

	for _, category := range []string{"enrolment", "authentication"} {
		require.NoError(t, conn.Create(&domain.AnomalyResult{
			Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
			MetricCategory: category, AgeGroup: "age_18_plus",
			IsAnomaly: true, AnomalyScore: 0.7, DetectedAt: time.Now(),
		}).Error)
	}

	findings, err := svc.Gather(context.Background(), domain.Filter{
		Year: 2025, Month: 1, State: "Delhi", District: "Central Delhi",
		MetricCategory: "authentication",
	})
	require.NoError(t, err)
	require.Len(t, findings, 1)
	assert.Equal(t, "authentication", findings[0].MetricCategory)
}
