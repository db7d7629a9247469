package handler

import (
	"buildcost/internal/app/dto"
	"net/http"

	"github.com/gin-gonic/gin"
)

// GetStatistics сводная статистика по закупкам
// @Summary Статистика закупок
// @Description Сумма, количество, число материалов и записей по тем же фильтрам, что и журнал
// @Tags Purchases
// @Produce json
// @Security BearerAuth
// @Param project_id query int false "ID объекта"
// @Param estimate_id query int false "ID сметы"
// @Param material_id query int false "ID материала"
// @Param is_extra_charge query bool false "Только докупки / только смета"
// @Param date_from query string false "Дата с (YYYY-MM-DD)"
// @Param date_to query string false "Дата по (YYYY-MM-DD)"
// @Success 200 {object} dto.StatisticsResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/purchases/statistics [get]
func (h *APIHandler) GetStatistics(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	stats, err := h.Service.Statistics(c.Request.Context(), h.scope(c), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.StatisticsResponse{
		TotalSpent:      stats.TotalSpent,
		TotalQuantity:   stats.TotalQuantity,
		UniqueMaterials: stats.UniqueMaterials,
		PurchaseCount:   stats.PurchaseCount,
	})
}
