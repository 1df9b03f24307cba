//go:build wireinject

package socket

import (
	"github.com/google/wire"

	socketpkg "Mumei/pkg/socket"
	"Mumei/socket/handler"
	"Mumei/socket/process"
	"Mumei/socket/router"
)

var ProviderSet = wire.NewSet(
	router.NewRouter,
	socketpkg.NewRegistry,

	wire.Struct(new(handler.Handler), "*"),

	// process
	wire.Struct(new(process.SubServers), "*"),
	process.NewServer,
	wire.Struct(new(process.ResSubscribe), "*"),

	handler.ProviderSet,

	// AppProvider
	wire.Struct(new(AppProvider), "*"),
)
