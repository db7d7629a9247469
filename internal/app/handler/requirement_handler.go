package handler

import (
	"buildcost/internal/app/dto"
	"buildcost/internal/app/procurement"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// ============ ДОМЕН ПЛАН ЗАКУПОК ============

// GeneratePlan формирует план закупок по смете
// @Summary Формирование плана закупок
// @Description Агрегирует материалы сметы в потребности. Повторный вызов обновляет план, не теряя закупленное
// @Tags Requirements
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сметы"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/purchase-plan [post]
func (h *APIHandler) GeneratePlan(c *gin.Context) {
	estimateID, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	plan, err := h.Service.GeneratePlan(c.Request.Context(), h.scope(c), estimateID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "План закупок сформирован", planToDTO(plan))
}

// GetRequirements возвращает план закупок сметы
// @Summary План закупок сметы
// @Description Потребности с остатками, перерасходом и средней ценой закупки
// @Tags Requirements
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сметы"
// @Success 200 {object} dto.PlanResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/requirements [get]
func (h *APIHandler) GetRequirements(c *gin.Context) {
	estimateID, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	plan, err := h.Service.ListRequirements(c.Request.Context(), h.scope(c), estimateID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, planToDTO(plan))
}

// ClearPlan удаляет план закупок сметы
// @Summary Очистка плана закупок
// @Description Удаляет потребности без закупок, остальные помечает как осиротевшие
// @Tags Requirements
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сметы"
// @Success 200 {object} dto.ClearPlanResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/purchase-plan [delete]
func (h *APIHandler) ClearPlan(c *gin.Context) {
	estimateID, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	result, err := h.Service.ClearPlan(c.Request.Context(), h.scope(c), estimateID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "План закупок очищен", dto.ClearPlanResponse{
		Deleted:  result.Deleted,
		Orphaned: result.Orphaned,
	})
}

// AddExtraCharge добавляет докупку сверх сметы
// @Summary Докупка сверх сметы
// @Description Создаёт потребность за счёт заказчика, не связанную с позициями сметы
// @Tags Requirements
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сметы"
// @Param request body dto.ExtraChargeRequest true "Материал, количество и цена"
// @Success 201 {object} dto.RequirementResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/extra-charges [post]
func (h *APIHandler) AddExtraCharge(c *gin.Context) {
	estimateID, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	var req dto.ExtraChargeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}

	created, err := h.Service.AddExtraCharge(c.Request.Context(), h.scope(c), estimateID, req.MaterialID, *req.Quantity, *req.UnitPrice)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, "Докупка добавлена", requirementToDTO(procurement.Report(*created, decimal.Zero)))
}

// DeleteRequirement удаляет одну потребность
// @Summary Удаление потребности
// @Description Удаляет потребность, если на неё нет закупок
// @Tags Requirements
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID потребности"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/requirements/{id} [delete]
func (h *APIHandler) DeleteRequirement(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.Service.RemoveRequirement(c.Request.Context(), h.scope(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Потребность удалена", nil)
}

// GetReconciliation сверяет счётчики плана с журналом
// @Summary Сверка плана с журналом
// @Description Сравнивает закупленное количество каждой потребности с суммой журнала
// @Tags Requirements
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID сметы"
// @Success 200 {object} dto.ReconciliationResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/estimates/{id}/reconciliation [get]
func (h *APIHandler) GetReconciliation(c *gin.Context) {
	estimateID, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	discrepancies, err := h.Service.Audit(c.Request.Context(), h.scope(c), estimateID)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.ReconciliationResponse{
		EstimateID:    estimateID,
		InSync:        len(discrepancies) == 0,
		Discrepancies: make([]dto.DiscrepancyResponse, 0, len(discrepancies)),
	}
	for _, d := range discrepancies {
		resp.Discrepancies = append(resp.Discrepancies, dto.DiscrepancyResponse{
			RequirementID:     d.RequirementID,
			PurchasedQuantity: d.PurchasedQuantity,
			LedgerQuantity:    d.LedgerQuantity,
			LedgerEntries:     d.LedgerEntries,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func planToDTO(plan *procurement.PlanView) dto.PlanResponse {
	resp := dto.PlanResponse{
		EstimateID:   plan.EstimateID,
		Requirements: make([]dto.RequirementResponse, 0, len(plan.Requirements)),
		Summary: dto.PlanSummaryResponse{
			PlannedTotal:     plan.Summary.PlannedTotal,
			ActualTotal:      plan.Summary.ActualTotal,
			ExtraChargeTotal: plan.Summary.ExtraChargeTotal,
			Variance:         plan.Summary.Variance,
			OverspentCount:   plan.Summary.OverspentCount,
			OrphanedCount:    plan.Summary.OrphanedCount,
		},
	}
	for _, r := range plan.Requirements {
		resp.Requirements = append(resp.Requirements, requirementToDTO(r))
	}
	resp.Total = len(resp.Requirements)
	return resp
}

func requirementToDTO(r procurement.RequirementReport) dto.RequirementResponse {
	req := r.Requirement
	return dto.RequirementResponse{
		ID:                   req.ID,
		ProjectID:            req.ProjectID,
		EstimateID:           req.EstimateID,
		MaterialID:           req.MaterialID,
		SKU:                  req.SKU,
		Name:                 req.Name,
		Unit:                 req.Unit,
		ImageURL:             req.ImageURL,
		Category:             req.Category,
		QuantityRequired:     req.QuantityRequired,
		UnitPricePlanned:     req.UnitPricePlanned,
		PurchasedQuantity:    req.PurchasedQuantity,
		IsExtraCharge:        req.IsExtraCharge,
		IsOrphaned:           req.IsOrphaned,
		Remainder:            r.Remainder,
		IsOverspent:          r.IsOverspent,
		Status:               string(r.Status),
		PlannedTotal:         r.PlannedTotal,
		ActualTotalPrice:     r.ActualTotalPrice,
		WeightedAveragePrice: r.WeightedAveragePrice,
		PriceVariance:        r.PriceVariance,
		PriceTrend:           string(r.PriceTrend),
		CreatedAt:            req.CreatedAt,
		UpdatedAt:            req.UpdatedAt,
	}
}
