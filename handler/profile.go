package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"Mumei/config"
	"Mumei/middleware"
	"Mumei/pkg/context"
	"Mumei/pkg/response"
	"Mumei/service"
	"Mumei/types"
)

type Profile struct {
	Config         *config.Config
	ProfileService service.IProfileService
	UserService    service.IUserService
}

func (h *Profile) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/profile", authorize)
	g.POST("/create", context.Wrap(h.Create))
	g.POST("/:id/update", context.Wrap(h.Update))
	g.POST("/:id/delete", context.Wrap(h.Delete))
	g.GET("/list", context.Wrap(h.List))

	r.GET("/v1/user/me", authorize, context.Wrap(h.Me))
}

func (h *Profile) Create(c *gin.Context) error {
	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.ProfileService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Profile) Update(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	var req types.ProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.ProfileService.Update(c.Request.Context(), userID, id, &req)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Profile) Delete(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	if err := h.ProfileService.Delete(c.Request.Context(), userID, id); err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, gin.H{"deleted": id})
	return nil
}

func (h *Profile) List(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.ProfileService.List(c.Request.Context(), userID)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

// Me 当前登录用户
func (h *Profile) Me(c *gin.Context) error {
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.UserService.Get(c.Request.Context(), userID)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}
