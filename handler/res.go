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

type Res struct {
	Config     *config.Config
	ResService service.IResService
}

func (h *Res) RegisterRouter(r gin.IRouter) {
	authorize := middleware.Auth([]byte(h.Config.Jwt.Secret))
	optional := middleware.OptionalAuth([]byte(h.Config.Jwt.Secret))

	g := r.Group("/v1/res")
	g.POST("/create", authorize, context.Wrap(h.Create))
	g.POST("/vote", authorize, context.Wrap(h.Vote))
	g.POST("/unvote", authorize, context.Wrap(h.CancelVote))
	g.POST("/delete", authorize, context.Wrap(h.Delete))
	g.POST("/freeze", authorize, context.Wrap(h.Freeze))
	g.GET("/topic/:id", optional, context.Wrap(h.List))
	g.GET("/:id", optional, context.Wrap(h.Get))
}

func (h *Res) Create(c *gin.Context) error {
	var req types.CreateResRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.ResService.Create(c.Request.Context(), userID, &req)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Res) Get(c *gin.Context) error {
	id, err := pathID(c, "id")
	if err != nil {
		return err
	}
	resp, err := h.ResService.Get(c.Request.Context(), id, viewerOf(c))
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Res) List(c *gin.Context) error {
	topicID, err := pathID(c, "id")
	if err != nil {
		return err
	}
	cursor, _ := strconv.ParseInt(c.Query("cursor"), 10, 64)
	limit, _ := strconv.Atoi(c.Query("limit"))

	resp, err := h.ResService.List(c.Request.Context(), topicID, viewerOf(c), cursor, limit)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Res) Vote(c *gin.Context) error {
	var req types.VoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.ResService.Vote(c.Request.Context(), userID, &req)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Res) CancelVote(c *gin.Context) error {
	var req struct {
		Res uint64 `json:"res" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.ResService.CancelVote(c.Request.Context(), userID, req.Res)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

func (h *Res) Delete(c *gin.Context) error {
	var req struct {
		Res uint64 `json:"res" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	userID, err := context.GetUserID(c)
	if err != nil {
		return response.NewError(http.StatusUnauthorized, err.Error())
	}

	resp, err := h.ResService.Delete(c.Request.Context(), userID, req.Res)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

// Freeze 管理员冻结帖子
func (h *Res) Freeze(c *gin.Context) error {
	var req struct {
		Res uint64 `json:"res" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		return response.NewError(http.StatusBadRequest, err.Error())
	}
	if !context.IsModerator(c) {
		return response.NewError(http.StatusForbidden, "需要管理员权限")
	}

	resp, err := h.ResService.Freeze(c.Request.Context(), req.Res)
	if err != nil {
		return response.FromDomain(err)
	}
	response.Success(c, resp)
	return nil
}

// viewerOf 匿名访问返回 nil，登录用户用来标注自己的投票方向
func viewerOf(c *gin.Context) *uint64 {
	userID, err := context.GetUserID(c)
	if err != nil {
		return nil
	}
	return &userID
}
