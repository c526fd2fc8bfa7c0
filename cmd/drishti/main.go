package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/opengovlab/drishti/internal/artifact"
	"github.com/opengovlab/drishti/internal/cache"
	"github.com/opengovlab/drishti/internal/config"
	"github.com/opengovlab/drishti/internal/finding"
	"github.com/opengovlab/drishti/internal/migration"
	"github.com/opengovlab/drishti/internal/observability"
	"github.com/opengovlab/drishti/internal/providers/pdf"
	"github.com/opengovlab/drishti/internal/report"
	"github.com/opengovlab/drishti/internal/server"
	"github.com/opengovlab/drishti/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		// Core infrastructure
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		migration.Module,

		// Supporting providers
		artifact.Module,
		cache.Module,
		pdf.Module,

		// Functional domains
		finding.Module,
		report.Module,

		server.Module,
	)
	app.Run()
}

func RegisterSnowflake() *snowflake.Node {
	node, err := snowflake.NewNode(1)
	if err != nil {
		panic(err)
	}
	return node
}
