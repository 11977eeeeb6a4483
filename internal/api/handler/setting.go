package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/pkg/response"
	"github.com/qs3c/uikit_server/internal/service"
)

type SettingHandler struct {
	settingService *service.SettingService
}

func NewSettingHandler(settingService *service.SettingService) *SettingHandler {
	return &SettingHandler{
		settingService: settingService,
	}
}

// ListAll 全部配置（管理员）
// GET /api/v1/admin/settings
func (h *SettingHandler) ListAll(c *gin.Context) {
	settings, err := h.settingService.ListAll()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, settings)
}

// ListBySection 某个 section 的配置（管理员）
// GET /api/v1/admin/settings/:section
func (h *SettingHandler) ListBySection(c *gin.Context) {
	settings, err := h.settingService.ListBySection(c.Param("section"))
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, settings)
}

// Get 单个配置项（管理员）
// GET /api/v1/admin/settings/:section/:key
func (h *SettingHandler) Get(c *gin.Context) {
	info, err := h.settingService.Get(c.Param("section"), c.Param("key"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSettingNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, info)
}

// Upsert 写入配置（管理员）
// PUT /api/v1/admin/settings
func (h *SettingHandler) Upsert(c *gin.Context) {
	var req dto.UpsertSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.settingService.Upsert(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "保存成功", info)
}

// Delete 删除配置（管理员）
// DELETE /api/v1/admin/settings/:section/:key
func (h *SettingHandler) Delete(c *gin.Context) {
	err := h.settingService.Delete(c.Param("section"), c.Param("key"))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSettingNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}
