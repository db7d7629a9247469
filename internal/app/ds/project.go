package ds

import "time"

// Объект строительства
type Project struct {
	ID        uint      `gorm:"primaryKey"`
	TenantID  uint      `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(200);not null"`
	Address   string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time `gorm:"not null"`
}

// Смета по объекту
type Estimate struct {
	ID        uint      `gorm:"primaryKey"`
	TenantID  uint      `gorm:"not null;index"`
	ProjectID uint      `gorm:"not null;index"`
	Name      string    `gorm:"type:varchar(200);not null"`
	CreatedAt time.Time `gorm:"not null"`

	Project Project `gorm:"foreignKey:ProjectID"`
}
