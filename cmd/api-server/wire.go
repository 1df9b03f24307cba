//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"Mumei/config"
	"Mumei/dao"
	"Mumei/handler"
	"Mumei/pkg/client"
	"Mumei/pkg/database"
	"Mumei/pkg/server"
	"Mumei/service"
)

func InitServer(cfg *config.Config) *server.AppProvider {
	wire.Build(
		client.NewRedisClient,
		database.NewDB,
		server.NewGinEngine,

		wire.Struct(new(handler.Auth), "*"),
		wire.Struct(new(handler.Topic), "*"),
		wire.Struct(new(handler.Res), "*"),
		wire.Struct(new(handler.Profile), "*"),

		wire.Struct(new(server.AppProvider), "*"),
		wire.Struct(new(server.Handlers), "*"),

		dao.ProviderSet,
		service.ProviderSet,
	)
	return nil
}
