package ds

import "github.com/shopspring/decimal"

// Справочник материалов (CRUD справочника вне ядра)
type Material struct {
	ID       uint            `gorm:"primaryKey"`
	TenantID uint            `gorm:"not null;index"`
	SKU      string          `gorm:"type:varchar(64);not null"`
	Name     string          `gorm:"type:varchar(255);not null"`
	Unit     string          `gorm:"type:varchar(20);not null"`
	ImageURL *string         `gorm:"type:varchar(255)"` // Nullable
	Category string          `gorm:"type:varchar(100)"`
	Price    decimal.Decimal `gorm:"type:decimal(14,2);not null;default:0"` // Текущая цена за единицу
}
