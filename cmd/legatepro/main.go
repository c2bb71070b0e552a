package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/legatepro/legatepro/internal/activity"
	"github.com/legatepro/legatepro/internal/auth"
	"github.com/legatepro/legatepro/internal/billingdashboard"
	"github.com/legatepro/legatepro/internal/clock"
	"github.com/legatepro/legatepro/internal/config"
	"github.com/legatepro/legatepro/internal/estate"
	"github.com/legatepro/legatepro/internal/expense"
	"github.com/legatepro/legatepro/internal/invoice"
	"github.com/legatepro/legatepro/internal/migration"
	"github.com/legatepro/legatepro/internal/observability"
	"github.com/legatepro/legatepro/internal/server"
	"github.com/legatepro/legatepro/internal/task"
	"github.com/legatepro/legatepro/internal/timeentry"
	"github.com/legatepro/legatepro/internal/workspace"
	"github.com/legatepro/legatepro/pkg/db"
	"go.uber.org/fx"
)

func main() {
	app := fx.New(
		config.Module,
		observability.Module,
		fx.Provide(RegisterSnowflake),
		db.Module,
		clock.Module,
		migration.Module,

		auth.Module,
		workspace.Module,
		activity.Module,
		estate.Module,
		invoice.Module,
		timeentry.Module,
		expense.Module,
		task.Module,
		billingdashboard.Module,

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
