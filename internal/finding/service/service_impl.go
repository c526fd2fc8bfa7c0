package service

import (
	"context"
	"sync"

	"github.com/opengovlab/drishti/internal/config"
	"github.com/opengovlab/drishti/internal/finding/domain"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Params struct {
	fx.In

	DB        *gorm.DB
	Log       *zap.Logger
	Repo      domain.Repository
	Reporting *config.ReportingHolder
}

type Service struct {
	db        *gorm.DB
	log       *zap.Logger
	repo      domain.Repository
	reporting *config.ReportingHolder
}

func New(p Params) domain.Service {
	return &Service{
		db:        p.DB,
		log:       p.Log.Named("finding.service"),
		repo:      p.Repo,
		reporting: p.Reporting,
	}
}

// Gather issues the four source reads concurrently, waits for all of them,
// and normalizes the results in a stable order (anomalies, patterns,
// trends, predictions).
func (s *Service) Gather(ctx context.Context, filter domain.Filter) ([]domain.Finding, error) {
	cap := s.reporting.Get().SourceCap

	var (
		wg          sync.WaitGroup
		anomalies   []domain.AnomalyResult
		patterns    []domain.PatternResult
		trends      []domain.TrendResult
		predictions []domain.PredictiveIndicator
		errs        [4]error
	)

	wg.Add(4)
	go func() {
		defer wg.Done()
		anomalies, errs[0] = s.repo.Anomalies(ctx, s.db, filter, cap)
	}()
	go func() {
		defer wg.Done()
		patterns, errs[1] = s.repo.Patterns(ctx, s.db, filter, cap)
	}()
	go func() {
		defer wg.Done()
		trends, errs[2] = s.repo.Trends(ctx, s.db, filter, cap)
	}()
	go func() {
		defer wg.Done()
		predictions, errs[3] = s.repo.Predictions(ctx, s.db, filter, cap)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}

	findings := make([]domain.Finding, 0, len(anomalies)+len(patterns)+len(trends)+len(predictions))
	for _, a := range anomalies {
		findings = append(findings, domain.NewAnomalyFinding(a))
	}
	for _, p := range patterns {
		findings = append(findings, domain.NewPatternFinding(p))
	}
	for _, t := range trends {
		findings = append(findings, domain.NewTrendFinding(t))
	}
	for _, p := range predictions {
		findings = append(findings, domain.NewPredictionFinding(p))
	}

	s.log.Debug("gathered findings",
		zap.Int("anomalies", len(anomalies)),
		zap.Int("patterns", len(patterns)),
		zap.Int("trends", len(trends)),
		zap.Int("predictions", len(predictions)),
	)

	return findings, nil
}
