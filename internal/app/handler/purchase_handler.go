package handler

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/ds"
	"buildcost/internal/app/dto"
	"buildcost/internal/app/procurement"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
)

// Максимальный размер файла чека
const maxReceiptSize = 10 << 20

// ============ ДОМЕН ЖУРНАЛ ЗАКУПОК ============

// GetPurchases получает журнал закупок
// @Summary Журнал закупок
// @Description Фактические закупки с фильтрами, новые сверху
// @Tags Purchases
// @Produce json
// @Security BearerAuth
// @Param project_id query int false "ID объекта"
// @Param estimate_id query int false "ID сметы"
// @Param material_id query int false "ID материала"
// @Param requirement_id query int false "ID потребности"
// @Param is_extra_charge query bool false "Только докупки / только смета"
// @Param date_from query string false "Дата с (YYYY-MM-DD)"
// @Param date_to query string false "Дата по (YYYY-MM-DD)"
// @Success 200 {object} dto.PurchaseListResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/purchases [get]
func (h *APIHandler) GetPurchases(c *gin.Context) {
	filter, err := parseFilter(c)
	if err != nil {
		h.handleError(c, err)
		return
	}

	purchases, err := h.Service.ListPurchases(c.Request.Context(), h.scope(c), filter)
	if err != nil {
		h.handleError(c, err)
		return
	}

	resp := dto.PurchaseListResponse{
		Purchases: make([]dto.PurchaseResponse, 0, len(purchases)),
		Total:     len(purchases),
	}
	for i := range purchases {
		resp.Purchases = append(resp.Purchases, h.purchaseToDTO(c, &purchases[i]))
	}
	c.JSON(http.StatusOK, resp)
}

// GetPurchase получает одну запись журнала
// @Summary Запись журнала закупок
// @Tags Purchases
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID закупки"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 404 {object} dto.ErrorResponse
// @Router /api/purchases/{id} [get]
func (h *APIHandler) GetPurchase(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	purchase, err := h.Service.GetPurchase(c.Request.Context(), h.scope(c), id)
	if err != nil {
		h.handleError(c, err)
		return
	}

	c.JSON(http.StatusOK, h.purchaseToDTO(c, purchase))
}

// CreatePurchase фиксирует фактическую закупку
// @Summary Запись фактической закупки
// @Description Добавляет запись в журнал; при привязке к потребности увеличивает её закупленное количество
// @Tags Purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.CreatePurchaseRequest true "Данные закупки"
// @Success 201 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /api/purchases [post]
func (h *APIHandler) CreatePurchase(c *gin.Context) {
	var req dto.CreatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}

	var purchaseDate time.Time
	if req.PurchaseDate != "" {
		d, err := parseDate("purchase_date", req.PurchaseDate)
		if err != nil {
			h.handleError(c, err)
			return
		}
		purchaseDate = d
	}

	purchase, err := h.Service.RecordPurchase(c.Request.Context(), h.scope(c), procurement.PurchaseInput{
		ProjectID:           req.ProjectID,
		EstimateID:          req.EstimateID,
		MaterialID:          req.MaterialID,
		SourceRequirementID: req.SourceRequirementID,
		Quantity:            *req.Quantity,
		UnitPrice:           *req.UnitPrice,
		PurchaseDate:        purchaseDate,
		IsExtraCharge:       req.IsExtraCharge,
		Notes:               req.Notes,
	})
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusCreated, "Закупка записана", h.purchaseToDTO(c, purchase))
}

// UpdatePurchase изменяет запись журнала
// @Summary Изменение закупки
// @Description Изменение количества переносится на потребность разницей
// @Tags Purchases
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID закупки"
// @Param request body dto.UpdatePurchaseRequest true "Изменяемые поля"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/purchases/{id} [put]
func (h *APIHandler) UpdatePurchase(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	var req dto.UpdatePurchaseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Неверный формат запроса: "+err.Error())
		return
	}

	upd := procurement.PurchaseUpdate{
		Quantity:  req.Quantity,
		UnitPrice: req.UnitPrice,
		Notes:     req.Notes,
	}
	if req.PurchaseDate != nil {
		d, err := parseDate("purchase_date", *req.PurchaseDate)
		if err != nil {
			h.handleError(c, err)
			return
		}
		upd.PurchaseDate = &d
	}

	purchase, err := h.Service.UpdatePurchase(c.Request.Context(), h.scope(c), id, upd)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Закупка обновлена", h.purchaseToDTO(c, purchase))
}

// DeletePurchase удаляет запись журнала
// @Summary Удаление закупки
// @Description Удаляет запись и вычитает её количество из потребности
// @Tags Purchases
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID закупки"
// @Success 200 {object} dto.SuccessResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Router /api/purchases/{id} [delete]
func (h *APIHandler) DeletePurchase(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}

	if err := h.Service.DeletePurchase(c.Request.Context(), h.scope(c), id); err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Закупка удалена", nil)
}

// UploadReceipt загружает чек для закупки
// @Summary Загрузка чека
// @Description Сохраняет файл чека в MinIO и привязывает к закупке
// @Tags Purchases
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "ID закупки"
// @Param receipt formData file true "Файл чека"
// @Success 200 {object} dto.PurchaseResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 404 {object} dto.ErrorResponse
// @Failure 501 {object} dto.ErrorResponse
// @Router /api/purchases/{id}/receipt [post]
func (h *APIHandler) UploadReceipt(c *gin.Context) {
	id, err := parseID(c, "id")
	if err != nil {
		h.handleError(c, err)
		return
	}
	if !h.Service.HasReceiptStorage() {
		h.handleError(c, apperr.ErrUnavailable)
		return
	}

	// Получаем файл из запроса
	file, err := c.FormFile("receipt")
	if err != nil {
		h.errorResponse(c, http.StatusBadRequest, "Файл не найден в запросе")
		return
	}
	if file.Size > maxReceiptSize {
		h.errorResponse(c, http.StatusBadRequest, "Файл слишком большой")
		return
	}

	// Читаем содержимое файла
	openedFile, err := file.Open()
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}
	defer openedFile.Close()

	fileData, err := io.ReadAll(openedFile)
	if err != nil {
		h.errorResponse(c, http.StatusInternalServerError, "Ошибка чтения файла")
		return
	}

	purchase, err := h.Service.AttachReceipt(c.Request.Context(), h.scope(c), id, file.Filename, fileData)
	if err != nil {
		h.handleError(c, err)
		return
	}

	h.successResponse(c, http.StatusOK, "Чек загружен", h.purchaseToDTO(c, purchase))
}

func (h *APIHandler) purchaseToDTO(c *gin.Context, p *ds.ActualPurchase) dto.PurchaseResponse {
	return dto.PurchaseResponse{
		ID:                  p.ID,
		ProjectID:           p.ProjectID,
		EstimateID:          p.EstimateID,
		MaterialID:          p.MaterialID,
		SourceRequirementID: p.SourceRequirementID,
		Quantity:            p.Quantity,
		UnitPrice:           p.UnitPrice,
		TotalPrice:          p.TotalPrice,
		PurchaseDate:        time.Time(p.PurchaseDate).Format(dateLayout),
		IsExtraCharge:       p.IsExtraCharge,
		MaterialName:        p.MaterialName,
		MaterialSKU:         p.MaterialSKU,
		MaterialUnit:        p.MaterialUnit,
		ProjectName:         p.ProjectName,
		EstimateName:        p.EstimateName,
		CreatedBy:           p.CreatedBy,
		CreatedByName:       p.CreatedByName,
		Notes:               p.Notes,
		ReceiptURL:          h.Service.ReceiptURL(c.Request.Context(), p),
		CreatedAt:           p.CreatedAt,
		UpdatedAt:           p.UpdatedAt,
	}
}

// parseFilter фильтр журнала из query-параметров
func parseFilter(c *gin.Context) (ds.PurchaseFilter, error) {
	var (
		f   ds.PurchaseFilter
		err error
	)
	if f.ProjectID, err = queryUint(c, "project_id"); err != nil {
		return f, err
	}
	if f.EstimateID, err = queryUint(c, "estimate_id"); err != nil {
		return f, err
	}
	if f.MaterialID, err = queryUint(c, "material_id"); err != nil {
		return f, err
	}
	if f.RequirementID, err = queryUint(c, "requirement_id"); err != nil {
		return f, err
	}
	if raw := c.Query("is_extra_charge"); raw != "" {
		v, err := strconv.ParseBool(raw)
		if err != nil {
			return f, apperr.Invalid("is_extra_charge", "must be true or false")
		}
		f.IsExtraCharge = &v
	}
	if f.DateFrom, err = queryDate(c, "date_from"); err != nil {
		return f, err
	}
	if f.DateTo, err = queryDate(c, "date_to"); err != nil {
		return f, err
	}
	return f, nil
}
