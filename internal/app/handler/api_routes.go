package handler

import (
	"buildcost/internal/app/middleware"
	"buildcost/internal/app/role"

	"github.com/gin-gonic/gin"
)

// RegisterAPIRoutes регистрирует все REST API маршруты с авторизацией
func (h *APIHandler) RegisterAPIRoutes(router *gin.Engine, authMiddleware *middleware.AuthMiddleware) {
	api := router.Group("/api")

	readers := authMiddleware.WithAuthCheck(role.Viewer, role.Buyer, role.Estimator, role.Admin)
	buyers := authMiddleware.WithAuthCheck(role.Buyer, role.Estimator, role.Admin)
	estimators := authMiddleware.WithAuthCheck(role.Estimator, role.Admin)

	// ============ План закупок (Requirements) ============
	estimates := api.Group("/estimates")
	{
		estimates.GET("/:id/requirements", readers, h.GetRequirements)
		estimates.GET("/:id/reconciliation", readers, h.GetReconciliation)

		// Только сметчики (перегенерация плана)
		estimates.POST("/:id/purchase-plan", estimators, h.GeneratePlan)
		estimates.DELETE("/:id/purchase-plan", estimators, h.ClearPlan)
		estimates.POST("/:id/extra-charges", estimators, h.AddExtraCharge)
	}
	api.DELETE("/requirements/:id", estimators, h.DeleteRequirement)

	// ============ Журнал закупок (Purchases) ============
	purchases := api.Group("/purchases")
	{
		purchases.GET("", readers, h.GetPurchases)
		purchases.GET("/statistics", readers, h.GetStatistics)
		purchases.GET("/:id", readers, h.GetPurchase)

		// Снабженцы и выше
		purchases.POST("", buyers, h.CreatePurchase)
		purchases.PUT("/:id", buyers, h.UpdatePurchase)
		purchases.DELETE("/:id", buyers, h.DeletePurchase)
		purchases.POST("/:id/receipt", buyers, h.UploadReceipt)
	}

	// Ping эндпоинт для проверки
	router.GET("/ping", h.Ping)
}

// Ping проверяет работоспособность API
// @Summary Проверка работоспособности
// @Description Возвращает простой ответ для проверки работы сервера
// @Tags Health
// @Produce json
// @Success 200 {object} map[string]string
// @Router /ping [get]
func (h *APIHandler) Ping(ctx *gin.Context) {
	ctx.JSON(200, gin.H{"message": "pong"})
}
