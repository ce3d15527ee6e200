package entity

import (
	"time"
)

// Patient представляет пациента, для которого собираются квизы
type Patient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"size:100;not null" json:"firstname"`
	LastName  string    `gorm:"size:100;not null" json:"lastname"`
	Birthday  time.Time `gorm:"type:date;not null" json:"birthday"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Patient) TableName() string {
	return "patients"
}
