package migration

import (
	"github.com/opengovlab/drishti/internal/config"
	findingdomain "github.com/opengovlab/drishti/internal/finding/domain"
	reportdomain "github.com/opengovlab/drishti/internal/report/domain"
	"github.com/opengovlab/drishti/internal/seed"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

var Module = fx.Module("migrations",
	fx.Invoke(func(conn *gorm.DB, cfg config.Config) error {
		if cfg.DBType == "postgres" {
			sqlDB, err := conn.DB()
			if err != nil {
				return err
			}
			if err := RunMigrations(sqlDB); err != nil {
				return err
			}
		} else {
			// SQL migrations target postgres; other dialects (sqlite for
			// local development) get the schema through AutoMigrate.
			if err := conn.AutoMigrate(
				&findingdomain.AnomalyResult{},
				&findingdomain.PatternResult{},
				&findingdomain.TrendResult{},
				&findingdomain.PredictiveIndicator{},
				&reportdomain.Report{},
				&reportdomain.ReportSection{},
				&reportdomain.ReportItem{},
			); err != nil {
				return err
			}
		}

		if cfg.Seed {
			return seed.EnsureSampleAnalytics(conn)
		}
		return nil
	}),
)
