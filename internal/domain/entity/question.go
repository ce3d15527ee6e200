package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Question представляет вопрос-упражнение для тренировки памяти.
// Содержимое упражнения (exercise) — непрозрачный JSON, структура которого
// зависит от типа вопроса и системой не интерпретируется.
type Question struct {
	ID        uint           `gorm:"primaryKey" json:"id"`
	AccountID uint           `gorm:"not null;index" json:"account_id"`
	Type      string         `gorm:"size:50;not null" json:"type"`
	Category  string         `gorm:"size:50;not null" json:"category"`
	Exercise  datatypes.JSON `gorm:"type:jsonb;not null" json:"exercise"`

	// Относительный путь к иллюстрации; публичный URL собирается на уровне DTO
	ImagePath string `gorm:"size:255;not null;default:''" json:"-"`

	CreatedByID *uint `gorm:"index" json:"created_by,omitempty"`
	EditedByID  *uint `json:"edited_by,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Question) TableName() string {
	return "questions"
}

// HasImage возвращает true, если к вопросу прикреплена иллюстрация
func (q *Question) HasImage() bool {
	return q.ImagePath != ""
}
