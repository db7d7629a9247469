package ds

// Пользователи (заполняются сервисом авторизации, ядро только читает ФИО)
type User struct {
	ID       uint   `gorm:"primaryKey"`
	TenantID uint   `gorm:"not null;index"`
	Login    string `gorm:"type:varchar(50);unique;not null"`
	FullName string `gorm:"type:varchar(100)"`
	Role     int    `gorm:"type:int;default:0;not null"`
}
