package handler

import (
	"errors"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/qs3c/uikit_server/internal/pkg/response"
	"github.com/qs3c/uikit_server/internal/service"
)

type StatisticsHandler struct {
	statsService *service.StatisticsService
}

func NewStatisticsHandler(statsService *service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		statsService: statsService,
	}
}

// GetDaily 某天的统计，缺省为今天
// GET /api/v1/admin/statistics/daily?day=2025-06-01
func (h *StatisticsHandler) GetDaily(c *gin.Context) {
	day := c.DefaultQuery("day", time.Now().Format("2006-01-02"))

	result, err := h.statsService.GetDaily(c.Request.Context(), day)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDay):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, result)
}

// GetRange 日期区间内的统计，缺省为最近 30 天
// GET /api/v1/admin/statistics/range?from=2025-05-01&to=2025-05-31
func (h *StatisticsHandler) GetRange(c *gin.Context) {
	now := time.Now()
	from := c.DefaultQuery("from", now.AddDate(0, 0, -30).Format("2006-01-02"))
	to := c.DefaultQuery("to", now.Format("2006-01-02"))

	results, err := h.statsService.GetRange(from, to)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDay):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, results)
}

// GetTopComponents 某天浏览量最高的组件，缺省为今天
// GET /api/v1/admin/statistics/top-components?day=2025-06-01&limit=10
func (h *StatisticsHandler) GetTopComponents(c *gin.Context) {
	day := c.DefaultQuery("day", time.Now().Format("2006-01-02"))
	limit, _ := strconv.ParseInt(c.DefaultQuery("limit", "10"), 10, 64)

	top, err := h.statsService.GetTopComponents(c.Request.Context(), day, limit)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidDay):
			response.ParamError(c, err.Error())
		default:
			response.ServerError(c, "")
		}
		return
	}
	response.Success(c, top)
}

// GetOverview 管理后台概览
// GET /api/v1/admin/statistics/overview
func (h *StatisticsHandler) GetOverview(c *gin.Context) {
	overview, err := h.statsService.GetOverview(c.Request.Context())
	if err != nil {
		response.ServerError(c, "")
		return
	}
	response.Success(c, overview)
}
