package domain

import (
	"context"

	"gorm.io/gorm"
)

// Filter selects analytic results for one report period and region.
// MetricCategory is optional.
type Filter struct {
	Year           int
	Month          int
	State          string
	District       string
	MetricCategory string
}

type Repository interface {
	Anomalies(ctx context.Context, db *gorm.DB, filter Filter, cap int) ([]AnomalyResult, error)
	Patterns(ctx context.Context, db *gorm.DB, filter Filter, cap int) ([]PatternResult, error)
	Trends(ctx context.Context, db *gorm.DB, filter Filter, cap int) ([]TrendResult, error)
	Predictions(ctx context.Context, db *gorm.DB, filter Filter, cap int) ([]PredictiveIndicator, error)
}
