package repository

import (
	"context"

	"github.com/opengovlab/drishti/internal/finding/domain"
	"gorm.io/gorm"
)

type repo struct{}

func Provide() domain.Repository {
	return &repo{}
}

func baseFilter(db *gorm.DB, filter domain.Filter) *gorm.DB {
	stmt := db.
		Where("year = ?", filter.Year).
		Where("month = ?", filter.Month).
		Where("state = ?", filter.State).
		Where("district = ?", filter.District)
	if filter.MetricCategory != "" {
		stmt = stmt.Where("metric_category = ?", filter.MetricCategory)
	}
	return stmt
}

func (r *repo) Anomalies(ctx context.Context, db *gorm.DB, filter domain.Filter, cap int) ([]domain.AnomalyResult, error) {
	var results []domain.AnomalyResult
	err := baseFilter(db.WithContext(ctx).Model(&domain.AnomalyResult{}), filter).
		Where("is_anomaly = ?", true).
		Order("anomaly_score desc").
		Limit(cap).
		Find(&results).Error
	return results, err
}

func (r *repo) Patterns(ctx context.Context, db *gorm.DB, filter domain.Filter, cap int) ([]domain.PatternResult, error) {
	var results []domain.PatternResult
	err := baseFilter(db.WithContext(ctx).Model(&domain.PatternResult{}), filter).
		Where("has_pattern = ?", true).
		Order("pattern_strength desc").
		Limit(cap).
		Find(&results).Error
	return results, err
}

func (r *repo) Trends(ctx context.Context, db *gorm.DB, filter domain.Filter, cap int) ([]domain.TrendResult, error) {
	var results []domain.TrendResult
	err := baseFilter(db.WithContext(ctx).Model(&domain.TrendResult{}), filter).
		Where("trend_direction <> ?", "stable").
		Order("trend_strength desc").
		Limit(cap).
		Find(&results).Error
	return results, err
}

func (r *repo) Predictions(ctx context.Context, db *gorm.DB, filter domain.Filter, cap int) ([]domain.PredictiveIndicator, error) {
	var results []domain.PredictiveIndicator
	err := baseFilter(db.WithContext(ctx).Model(&domain.PredictiveIndicator{}), filter).
		Where("risk_signal <> ?", "stable").
		Order("risk_score desc").
		Limit(cap).
		Find(&results).Error
	return results, err
}
