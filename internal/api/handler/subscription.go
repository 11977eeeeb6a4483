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

type SubscriptionHandler struct {
	subService *service.SubscriptionService
}

func NewSubscriptionHandler(subService *service.SubscriptionService) *SubscriptionHandler {
	return &SubscriptionHandler{
		subService: subService,
	}
}

// Subscribe 购买订阅
// POST /api/v1/subscriptions
func (h *SubscriptionHandler) Subscribe(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req dto.SubscribeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.subService.Subscribe(c.Request.Context(), userID, &req)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrAlreadySubscribed):
			response.DuplicateError(c, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPlanUnavailable):
			response.StateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}

	response.SuccessWithMessage(c, "订阅成功", resp)
}

// GetCurrent 当前订阅
// GET /api/v1/subscriptions/current
func (h *SubscriptionHandler) GetCurrent(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	info, err := h.subService.GetCurrent(userID)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, info)
}

// Cancel 取消订阅
// POST /api/v1/subscriptions/cancel
func (h *SubscriptionHandler) Cancel(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	info, err := h.subService.Cancel(userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSubscription):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrAlreadyCancelled):
			response.StateError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "已取消订阅", info)
}

// Renew 续订
// POST /api/v1/subscriptions/renew
func (h *SubscriptionHandler) Renew(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)

	var req struct {
		PaymentMethod string `json:"payment_method" binding:"required,oneof=card wechat alipay"`
		DurationDays  int    `json:"duration_days" binding:"omitempty,min=1,max=3650"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.ParamError(c, err.Error())
		return
	}

	resp, err := h.subService.Renew(c.Request.Context(), userID, req.PaymentMethod, req.DurationDays)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrNoSubscription):
			response.NotFoundError(c, err.Error())
		case errors.Is(err, service.ErrPlanNotFound):
			response.NotFoundError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.SuccessWithMessage(c, "续订成功", resp)
}

// ListHistory 订阅历史
// GET /api/v1/subscriptions
func (h *SubscriptionHandler) ListHistory(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	page, pageSize := parsePagination(c)

	infos, total, err := h.subService.ListHistory(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, infos)
}

// ListPayments 支付记录
// GET /api/v1/subscriptions/payments
func (h *SubscriptionHandler) ListPayments(c *gin.Context) {
	userID, _ := middleware.GetUserID(c)
	page, pageSize := parsePagination(c)

	infos, total, err := h.subService.ListPayments(userID, page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, infos)
}

// ListAllPayments 全站支付记录（管理员）
// GET /api/v1/admin/payments
func (h *SubscriptionHandler) ListAllPayments(c *gin.Context) {
	page, pageSize := parsePagination(c)

	infos, total, err := h.subService.ListAllPayments(page, pageSize)
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.SuccessPage(c, total, page, pageSize, infos)
}

func parsePagination(c *gin.Context) (int, int) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if err != nil || pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
