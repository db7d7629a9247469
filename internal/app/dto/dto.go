package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// ============ Общие структуры ============

type ErrorResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type SuccessResponse struct {
	Status  string      `json:"status"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// ============ План закупок (Requirements) ============

type RequirementResponse struct {
	ID                uint            `json:"id"`
	ProjectID         uint            `json:"project_id"`
	EstimateID        uint            `json:"estimate_id"`
	MaterialID        uint            `json:"material_id"`
	SKU               string          `json:"sku"`
	Name              string          `json:"name"`
	Unit              string          `json:"unit"`
	ImageURL          string          `json:"image_url,omitempty"`
	Category          string          `json:"category,omitempty"`
	QuantityRequired  decimal.Decimal `json:"quantity_required"`
	UnitPricePlanned  decimal.Decimal `json:"unit_price_planned"`
	PurchasedQuantity decimal.Decimal `json:"purchased_quantity"`
	IsExtraCharge     bool            `json:"is_extra_charge"`
	IsOrphaned        bool            `json:"is_orphaned"`

	// Вычисляемые при чтении
	Remainder            decimal.Decimal  `json:"remainder"`
	IsOverspent          bool             `json:"is_overspent"`
	Status               string           `json:"status"` // pending, partial, fulfilled, overspent
	PlannedTotal         decimal.Decimal  `json:"planned_total"`
	ActualTotalPrice     decimal.Decimal  `json:"actual_total_price"`
	WeightedAveragePrice *decimal.Decimal `json:"weighted_average_price"`
	PriceVariance        *decimal.Decimal `json:"price_variance"`
	PriceTrend           string           `json:"price_trend,omitempty"` // savings, overrun, on_plan

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type PlanSummaryResponse struct {
	PlannedTotal     decimal.Decimal `json:"planned_total"`
	ActualTotal      decimal.Decimal `json:"actual_total"`
	ExtraChargeTotal decimal.Decimal `json:"extra_charge_total"`
	Variance         decimal.Decimal `json:"variance"`
	OverspentCount   int             `json:"overspent_count"`
	OrphanedCount    int             `json:"orphaned_count"`
}

type PlanResponse struct {
	EstimateID   uint                  `json:"estimate_id"`
	Requirements []RequirementResponse `json:"requirements"`
	Summary      PlanSummaryResponse   `json:"summary"`
	Total        int                   `json:"total"`
}

type ClearPlanResponse struct {
	Deleted  int `json:"deleted"`
	Orphaned int `json:"orphaned"`
}

type ExtraChargeRequest struct {
	MaterialID uint             `json:"material_id" binding:"required"`
	Quantity   *decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice  *decimal.Decimal `json:"unit_price" binding:"required"`
}

// ============ Журнал закупок (Purchases) ============

type CreatePurchaseRequest struct {
	ProjectID           uint             `json:"project_id" binding:"required"`
	EstimateID          uint             `json:"estimate_id" binding:"required"`
	MaterialID          uint             `json:"material_id" binding:"required"`
	SourceRequirementID *uint            `json:"source_requirement_id"`
	Quantity            *decimal.Decimal `json:"quantity" binding:"required"`
	UnitPrice           *decimal.Decimal `json:"unit_price" binding:"required"`
	PurchaseDate        string           `json:"purchase_date"` // YYYY-MM-DD, по умолчанию сегодня
	IsExtraCharge       bool             `json:"is_extra_charge"`
	Notes               string           `json:"notes"`
}

type UpdatePurchaseRequest struct {
	Quantity     *decimal.Decimal `json:"quantity"`
	UnitPrice    *decimal.Decimal `json:"unit_price"`
	PurchaseDate *string          `json:"purchase_date"` // YYYY-MM-DD
	Notes        *string          `json:"notes"`
}

type PurchaseResponse struct {
	ID                  uint            `json:"id"`
	ProjectID           uint            `json:"project_id"`
	EstimateID          uint            `json:"estimate_id"`
	MaterialID          uint            `json:"material_id"`
	SourceRequirementID *uint           `json:"source_requirement_id"`
	Quantity            decimal.Decimal `json:"quantity"`
	UnitPrice           decimal.Decimal `json:"unit_price"`
	TotalPrice          decimal.Decimal `json:"total_price"`
	PurchaseDate        string          `json:"purchase_date"`
	IsExtraCharge       bool            `json:"is_extra_charge"`
	MaterialName        string          `json:"material_name"`
	MaterialSKU         string          `json:"material_sku"`
	MaterialUnit        string          `json:"material_unit"`
	ProjectName         string          `json:"project_name"`
	EstimateName        string          `json:"estimate_name"`
	CreatedBy           uint            `json:"created_by"`
	CreatedByName       string          `json:"created_by_name"`
	Notes               string          `json:"notes,omitempty"`
	ReceiptURL          string          `json:"receipt_url,omitempty"`
	CreatedAt           time.Time       `json:"created_at"`
	UpdatedAt           time.Time       `json:"updated_at"`
}

type PurchaseListResponse struct {
	Purchases []PurchaseResponse `json:"purchases"`
	Total     int                `json:"total"`
}

type StatisticsResponse struct {
	TotalSpent      decimal.Decimal `json:"total_spent"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	UniqueMaterials int64           `json:"unique_materials"`
	PurchaseCount   int64           `json:"purchase_count"`
}

// ============ Сверка (Reconciliation) ============

type DiscrepancyResponse struct {
	RequirementID     uint            `json:"requirement_id"`
	PurchasedQuantity decimal.Decimal `json:"purchased_quantity"`
	LedgerQuantity    decimal.Decimal `json:"ledger_quantity"`
	LedgerEntries     int64           `json:"ledger_entries"`
}

type ReconciliationResponse struct {
	EstimateID    uint                  `json:"estimate_id"`
	InSync        bool                  `json:"in_sync"`
	Discrepancies []DiscrepancyResponse `json:"discrepancies"`
}
