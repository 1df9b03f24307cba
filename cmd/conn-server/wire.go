//go:build wireinject
// +build wireinject

package main

import (
	"github.com/google/wire"

	"Mumei/config"
	"Mumei/pkg/client"
	"Mumei/socket"
)

func InitSocketServer(cfg *config.Config) *socket.AppProvider {
	wire.Build(
		client.NewRedisClient,
		socket.ProviderSet,
	)
	return nil
}
