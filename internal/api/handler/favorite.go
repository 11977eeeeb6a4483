package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/uikit_server/internal/api/middleware"
	"github.com/qs3c/uikit_server/internal/pkg/response"
	"github.com/qs3c/uikit_server/internal/service"
)

type FavoriteHandler struct {
	favoriteService *service.FavoriteService
}

func NewFavoriteHandler(favoriteService *service.FavoriteService) *FavoriteHandler {
	return &FavoriteHandler{
		favoriteService: favoriteService,
	}
}

// List 收藏列表
// GET /api/v1/favorites
func (h *FavoriteHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	page, pageSize := parsePagination(c)

	infos, total, err := h.favoriteService.List(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, infos)
}

// Add 收藏组件
// POST /api/v1/favorites/:componentId
func (h *FavoriteHandler) Add(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	componentID, err := strconv.ParseInt(c.Param("componentId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的组件 ID")
		return
	}

	if err := h.favoriteService.Add(userID, componentID); err != nil {
		switch {
		case errors.Is(err, service.ErrComponentNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrAlreadyFavorited):
			response.DuplicateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "收藏成功", nil)
}

// Remove 取消收藏
// DELETE /api/v1/favorites/:componentId
func (h *FavoriteHandler) Remove(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	componentID, err := strconv.ParseInt(c.Param("componentId"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的组件 ID")
		return
	}

	if err := h.favoriteService.Remove(userID, componentID); err != nil {
		switch {
		case errors.Is(err, service.ErrNotFavorited):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "已取消收藏", nil)
}
