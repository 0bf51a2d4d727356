package handler

import (
	"github.com/gin-gonic/gin"

	reportapp "github.com/Lmt310104/BookNow-BE-sub000/internal/application/report"
)

// StatisticsHandler handles revenue reporting endpoints (admin only)
type StatisticsHandler struct {
	BaseHandler
	statsService *reportapp.StatisticsService
}

// NewStatisticsHandler creates a new StatisticsHandler
func NewStatisticsHandler(statsService *reportapp.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{
		statsService: statsService,
	}
}

// Summary godoc
// @Summary      Revenue summary over a date range
// @Tags         statistics
// @Produce      json
// @Param        fromDate query string true "Range start (YYYY-MM-DD)"
// @Param        toDate query string true "Range end, inclusive (YYYY-MM-DD)"
// @Param        status query string false "Order status filter"
// @Success      200 {object} dto.Response{data=report.RevenueSummary}
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /statistics/summary [get]
func (h *StatisticsHandler) Summary(c *gin.Context) {
	var q reportapp.StatisticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	summary, err := h.statsService.Summary(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// TopBooks godoc
// @Summary      Top selling books ranked by a metric
// @Tags         statistics
// @Produce      json
// @Param        fromDate query string true "Range start (YYYY-MM-DD)"
// @Param        toDate query string true "Range end, inclusive (YYYY-MM-DD)"
// @Param        metric query string false "Ranking metric" Enums(revenue, quantity, orders, cart_adds) default(revenue)
// @Param        limit query int false "Max rows" default(10)
// @Success      200 {object} dto.Response{data=[]report.TopBook}
// @Failure      400 {object} dto.ErrorResponse
// @Security     BearerAuth
// @Router       /statistics/top-books [get]
func (h *StatisticsHandler) TopBooks(c *gin.Context) {
	var q reportapp.TopBooksQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	books, err := h.statsService.TopBooks(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, books)
}

// RevenueByCustomer godoc
// @Summary      Revenue grouped by customer
// @Tags         statistics
// @Produce      json
// @Param        fromDate query string true "Range start (YYYY-MM-DD)"
// @Param        toDate query string true "Range end, inclusive (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]report.CustomerRevenue}
// @Security     BearerAuth
// @Router       /statistics/revenue-by-customer [get]
func (h *StatisticsHandler) RevenueByCustomer(c *gin.Context) {
	var q reportapp.StatisticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	rows, err := h.statsService.RevenueByCustomer(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// RevenueByCategory godoc
// @Summary      Revenue grouped by category
// @Tags         statistics
// @Produce      json
// @Param        fromDate query string true "Range start (YYYY-MM-DD)"
// @Param        toDate query string true "Range end, inclusive (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]report.CategoryRevenue}
// @Security     BearerAuth
// @Router       /statistics/revenue-by-category [get]
func (h *StatisticsHandler) RevenueByCategory(c *gin.Context) {
	var q reportapp.StatisticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	rows, err := h.statsService.RevenueByCategory(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}

// RevenueByDate godoc
// @Summary      Daily revenue across a date range
// @Tags         statistics
// @Produce      json
// @Param        fromDate query string true "Range start (YYYY-MM-DD)"
// @Param        toDate query string true "Range end, inclusive (YYYY-MM-DD)"
// @Success      200 {object} dto.Response{data=[]report.DailyRevenue}
// @Security     BearerAuth
// @Router       /statistics/revenue-by-date [get]
func (h *StatisticsHandler) RevenueByDate(c *gin.Context) {
	var q reportapp.StatisticsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		h.BindingError(c, err)
		return
	}

	rows, err := h.statsService.RevenueByDate(c.Request.Context(), q)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, rows)
}
