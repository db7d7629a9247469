package ds

import "github.com/shopspring/decimal"

// Позиция сметы (работа) с объёмом
type EstimateItem struct {
	ID         uint            `gorm:"primaryKey"`
	TenantID   uint            `gorm:"not null;index"`
	EstimateID uint            `gorm:"not null;index"`
	Name       string          `gorm:"type:varchar(255);not null"`
	Unit       string          `gorm:"type:varchar(20)"`
	Quantity   decimal.Decimal `gorm:"type:decimal(14,3);not null;default:0"`

	Materials []EstimateItemMaterial `gorm:"foreignKey:EstimateItemID"`
}

// Материал, привязанный к позиции сметы, с нормой расхода на единицу объёма
type EstimateItemMaterial struct {
	ID                     uint            `gorm:"primaryKey"`
	EstimateItemID         uint            `gorm:"not null;index;uniqueIndex:idx_item_material"`
	MaterialID             uint            `gorm:"not null;index;uniqueIndex:idx_item_material"`
	ConsumptionCoefficient decimal.Decimal `gorm:"type:decimal(12,4);not null;default:1"`
}
