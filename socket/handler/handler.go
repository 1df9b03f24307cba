package handler

import (
	"Mumei/config"
	"Mumei/pkg/socket"
)

type Handler struct {
	Board    *BoardChannel
	Config   *config.Config
	Registry *socket.Registry
}
