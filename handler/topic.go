package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"Mumei/config"
	"Mumei/middleware"
	"Mumei/pkg/context"
	"Mumei/pkg/response"
	"Mumei/service"
	"Mumei/types"
)

type Topic struct {
	Config       *config.Config
	TopicService service.ITopicService
}

func (h *Topic) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	g := r.Group("/v1/topic")
	g.POST("/create", authorize, context.Wrap(h.Create))
	g.POST("/edit", authorize, context.Wrap(h.Edit))
	g.GET("/list", context.Wrap(h.List))
	g.GET("/tag/:tag", context.Wrap(h.ListByTag))
	g.GET("/:id", context.Wrap(h.Get))
	g.GET("/:id/forks", context.Wrap(h.ListForks))
	g.GET("/:id/history", context.Wrap(h.ListHistory))
}

func (h *Topic) Create(c *gin.Context) error {
	var req types.CreateTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.TopicService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Topic) Edit(c *gin.Context) error {
	var req types.EditTopicRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.TopicService.Edit(c.Request.Context(), userID, &req)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Topic) Get(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.TopicService.Get(c.Request.Context(), id)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Topic) List(c *gin.Context) error {
	cursor, _ := strconv.ParseInt(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.TopicService.List(c.Request.Context(), cursor, limit)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Topic) ListByTag(c *gin.Context) error {
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.TopicService.ListByTag(c.Request.Context(), c.Param("tag"), limit)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Topic) ListForks(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.TopicService.ListForks(c.Request.Context(), id, limit)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Topic) ListHistory(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.TopicService.ListHistory(c.Request.Context(), id)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func pathID(c *gin.Context, name string) (uint64, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil {
		return 0, response.NewError(http.StatusBadRequest, name+" 不合法")
	}
	return id, nil
}
