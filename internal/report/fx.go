package report

import (
	"github.com/opengovlab/drishti/internal/report/repository"
	"github.com/opengovlab/drishti/internal/report/service"
	"go.uber.org/fx"
)

var Module = fx.Module("report.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
