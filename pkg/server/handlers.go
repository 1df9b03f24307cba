package server

import (
	"Mumei/handler"
)

type Handlers struct {
	Auth    *handler.Auth
	Topic   *handler.Topic
	Res     *handler.Res
	Profile *handler.Profile
}
