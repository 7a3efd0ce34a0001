package main

import (
	"github.com/bwmarrin/snowflake"
	"github.com/smallbiznis/waterline/internal/clock"
	"github.com/smallbiznis/waterline/internal/config"
	"github.com/smallbiznis/waterline/internal/migration"
	"github.com/smallbiznis/waterline/internal/observability"
	"github.com/smallbiznis/waterline/internal/server"
	"github.com/smallbiznis/waterline/pkg/db"
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
