package ds

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

// Фактическая закупка (запись журнала). Названия копируются на момент записи
// и дальше не синхронизируются со справочником.
type ActualPurchase struct {
	ID                  uint  `gorm:"primaryKey"`
	TenantID            uint  `gorm:"not null;index"`
	ProjectID           uint  `gorm:"not null;index"`
	EstimateID          uint  `gorm:"not null;index"`
	MaterialID          uint  `gorm:"not null;index"`
	SourceRequirementID *uint `gorm:"index"` // Nullable: закупка вне плана

	Quantity      decimal.Decimal `gorm:"type:decimal(14,3);not null;check:quantity > 0"`
	UnitPrice     decimal.Decimal `gorm:"type:decimal(14,2);not null;check:unit_price >= 0"`
	TotalPrice    decimal.Decimal `gorm:"type:decimal(16,2);not null"`
	PurchaseDate  datatypes.Date  `gorm:"not null;index"`
	IsExtraCharge bool            `gorm:"type:boolean;default:false;not null"`

	MaterialName  string `gorm:"type:varchar(255)"`
	MaterialSKU   string `gorm:"type:varchar(64)"`
	MaterialUnit  string `gorm:"type:varchar(20)"`
	ProjectName   string `gorm:"type:varchar(200)"`
	EstimateName  string `gorm:"type:varchar(200)"`
	CreatedBy     uint   `gorm:"not null"`
	CreatedByName string `gorm:"type:varchar(100)"`
	Notes         string `gorm:"type:text"`
	ReceiptKey    string `gorm:"type:varchar(255)"` // объект в MinIO

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`

	SourceRequirement *PurchaseRequirement `gorm:"foreignKey:SourceRequirementID;constraint:OnDelete:RESTRICT"`
}
