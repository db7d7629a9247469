package ds

import (
	"time"

	"github.com/shopspring/decimal"
)

// Потребность в материале по смете (строка плана закупок).
// PurchasedQuantity меняется только атомарным UPDATE при записи в журнал закупок.
type PurchaseRequirement struct {
	ID         uint `gorm:"primaryKey"`
	TenantID   uint `gorm:"not null;index"`
	ProjectID  uint `gorm:"not null;index"`
	EstimateID uint `gorm:"not null;index;uniqueIndex:idx_requirement_plan_key,where:is_extra_charge = false"`
	MaterialID uint `gorm:"not null;index;uniqueIndex:idx_requirement_plan_key,where:is_extra_charge = false"`

	// Снимок справочника на момент формирования
	SKU      string `gorm:"type:varchar(64)"`
	Name     string `gorm:"type:varchar(255);not null"`
	Unit     string `gorm:"type:varchar(20)"`
	ImageURL string `gorm:"type:varchar(255)"`
	Category string `gorm:"type:varchar(100)"`

	QuantityRequired  decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0;check:quantity_required >= 0"`
	UnitPricePlanned  decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"`
	PurchasedQuantity decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`
	IsExtraCharge     bool            `gorm:"type:boolean;default:false;not null"` // докупка сверх сметы за счёт заказчика
	IsOrphaned        bool            `gorm:"type:boolean;default:false;not null"` // материала больше нет в смете, но есть закупки

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}
