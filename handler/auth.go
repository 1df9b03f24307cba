package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Mumei/pkg/context"
	"Mumei/pkg/response"
	"Mumei/service"
	"Mumei/types"
)

type Auth struct {
	UserService service.IUserService
}

func (h *Auth) RegisterRouter(r gin.IRouter) {
	g := r.Group("/v1/auth")
	g.POST("/register", context.Wrap(h.Register))
	g.POST("/login", context.Wrap(h.Login))
}

func (h *Auth) Register(c *gin.Context) error {
	var req types.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.UserService.Register(c.Request.Context(), &req)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Auth) Login(c *gin.Context) error {
	var req types.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}

	resp, err := h.UserService.Login(c.Request.Context(), &req)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}
