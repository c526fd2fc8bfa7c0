package finding

import (
	"github.com/opengovlab/drishti/internal/finding/repository"
	"github.com/opengovlab/drishti/internal/finding/service"
	"go.uber.org/fx"
)

var Module = fx.Module("finding.service",
	fx.Provide(repository.Provide),
	fx.Provide(service.New),
)
