package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/uikit_server/internal/api/middleware"
	"github.com/qs3c/uikit_server/internal/model/dto"
	"github.com/qs3c/uikit_server/internal/pkg/response"
	"github.com/qs3c/uikit_server/internal/service"
)

type ComponentHandler struct {
	componentService *service.ComponentService
}

func NewComponentHandler(componentService *service.ComponentService) *ComponentHandler {
	return &ComponentHandler{
		componentService: componentService,
	}
}

// List 组件列表，未订阅用户看不到源码
// GET /api/v1/components
func (h *ComponentHandler) List(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.ListComponentsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}
	if req.Page < 1 {
		req.Page = 1
	}
	if req.PageSize < 1 {
		req.PageSize = 20
	}

	infos, total, err := h.componentService.List(userID, &req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, req.Page, req.PageSize, infos)
}

// Get 组件详情，记一次浏览
// GET /api/v1/components/:id
func (h *ComponentHandler) Get(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的组件 ID")
		return
	}

	info, err := h.componentService.Get(c.Request.Context(), userID, id)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrComponentNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, info)
}

// Categories 组件分类列表
// GET /api/v1/components/categories
func (h *ComponentHandler) Categories(c *gin.Context) {
	categories, err := h.componentService.ListCategories()
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, categories)
}

// Create 创建组件（管理员）
// POST /api/v1/admin/components
func (h *ComponentHandler) Create(c *gin.Context) {
	var req dto.CreateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.componentService.Create(&req)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessWithMessage(c, "创建成功", info)
}

// Update 更新组件（管理员）
// PUT /api/v1/admin/components/:id
func (h *ComponentHandler) Update(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的组件 ID")
		return
	}

	var req dto.UpdateComponentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	info, err := h.componentService.Update(id, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrComponentNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "更新成功", info)
}

// Delete 删除组件（管理员）
// DELETE /api/v1/admin/components/:id
func (h *ComponentHandler) Delete(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的组件 ID")
		return
	}

	if err := h.componentService.Delete(id); err != nil {
		switch {
		case errors.Is(err, service.ErrComponentNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "删除成功", nil)
}

// UploadPreview 上传组件预览图（管理员）
// POST /api/v1/admin/components/:id/preview
func (h *ComponentHandler) UploadPreview(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.ParamError(c, "无效的组件 ID")
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		response.ParamError(c, "请选择要上传的文件")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		response.ServerError(c, "读取文件失败")
		return
	}
	defer file.Close()

	info, err := h.componentService.UploadPreview(id, fileHeader.Filename, fileHeader.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrComponentNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrInvalidFileType), errors.Is(err, service.ErrFileTooLarge):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "上传失败")
		}
		return
	}
	response.SuccessWithMessage(c, "上传成功", info)
}
