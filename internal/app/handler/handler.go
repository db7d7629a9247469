package handler

import (
	"buildcost/internal/app/apperr"
	"buildcost/internal/app/dto"
	"buildcost/internal/app/middleware"
	"buildcost/internal/app/procurement"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const dateLayout = "2006-01-02"

// APIHandler содержит обработчики для REST API
type APIHandler struct {
	Service *procurement.Service
}

func NewAPIHandler(s *procurement.Service) *APIHandler {
	return &APIHandler{Service: s}
}

// scope тенант и пользователь из JWT (выставляет AuthMiddleware)
func (h *APIHandler) scope(c *gin.Context) procurement.Scope {
	return procurement.Scope{
		TenantID: c.GetUint(middleware.TenantIDKey),
		UserID:   c.GetUint(middleware.UserIDKey),
	}
}

// ============ Вспомогательные функции ============

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}

// handleError переводит ошибку ядра в HTTP статус. Текст сбоев хранилища
// клиенту не отдаётся, только в лог.
func (h *APIHandler) handleError(c *gin.Context, err error) {
	var validation *apperr.ValidationError
	switch {
	case errors.As(err, &validation):
		h.errorResponse(c, http.StatusBadRequest, err.Error())
	case errors.Is(err, apperr.ErrNotFound):
		h.errorResponse(c, http.StatusNotFound, err.Error())
	case errors.Is(err, apperr.ErrReconciliationConflict),
		errors.Is(err, apperr.ErrRequirementInUse):
		h.errorResponse(c, http.StatusConflict, err.Error())
	case errors.Is(err, apperr.ErrUnavailable):
		h.errorResponse(c, http.StatusNotImplemented, "Хранилище файлов не настроено")
	default:
		logrus.WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error(err)
		h.errorResponse(c, http.StatusInternalServerError, "Внутренняя ошибка сервера")
	}
}

// parseID читает положительный id из параметра пути
func parseID(c *gin.Context, name string) (uint, error) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, apperr.Invalid(name, "must be a positive integer")
	}
	return uint(id), nil
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, value, time.UTC)
	if err != nil {
		return time.Time{}, apperr.Invalid(field, fmt.Sprintf("expected %s", dateLayout))
	}
	return t, nil
}

// queryUint необязательный числовой query-параметр, 0 если не задан
func queryUint(c *gin.Context, name string) (uint, error) {
	raw := c.Query(name)
	if raw == "" {
		return 0, nil
	}
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, apperr.Invalid(name, "must be a positive integer")
	}
	return uint(v), nil
}

func queryDate(c *gin.Context, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := parseDate(name, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
