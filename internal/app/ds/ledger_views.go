package ds

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Строка материала из сметы: объём позиции и норма расхода
type MaterialLine struct {
	MaterialID             uint
	Quantity               decimal.Decimal
	ConsumptionCoefficient decimal.Decimal
}

// Итоги журнала закупок по одной потребности
type LedgerTotals struct {
	RequirementID uint
	Quantity      decimal.Decimal
	TotalPrice    decimal.Decimal
	Entries       int64
}

// Фильтр журнала закупок и статистики. Нулевые значения не фильтруют.
type PurchaseFilter struct {
	ProjectID     uint
	EstimateID    uint
	MaterialID    uint
	RequirementID uint
	IsExtraCharge *bool
	DateFrom      *time.Time
	DateTo        *time.Time
}

// Key стабильное представление фильтра для ключей кэша
func (f PurchaseFilter) Key() string {
	var b strings.Builder
	fmt.Fprintf(&b, "p%d:e%d:m%d:r%d", f.ProjectID, f.EstimateID, f.MaterialID, f.RequirementID)
	if f.IsExtraCharge != nil {
		fmt.Fprintf(&b, ":x%t", *f.IsExtraCharge)
	}
	if f.DateFrom != nil {
		b.WriteString(":from" + f.DateFrom.Format("2006-01-02"))
	}
	if f.DateTo != nil {
		b.WriteString(":to" + f.DateTo.Format("2006-01-02"))
	}
	return b.String()
}

// Сводная статистика по закупкам
type PurchaseStats struct {
	TotalSpent      decimal.Decimal `json:"total_spent"`
	TotalQuantity   decimal.Decimal `json:"total_quantity"`
	UniqueMaterials int64           `json:"unique_materials"`
	PurchaseCount   int64           `json:"purchase_count"`
}
