package entity

import (
	"time"

	"gorm.io/datatypes"
)

// Result представляет неизменяемую запись одного ответа: сырые данные ответа
// и флаг правильности. Создается ровно один раз на назначение (QuizQuestion).
type Result struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Data       datatypes.JSON `gorm:"type:jsonb;not null" json:"data"`
	IsCorrect  bool           `gorm:"not null" json:"is_correct"`
	AnsweredAt time.Time      `gorm:"not null" json:"answered_at"`
}

// TableName определяет имя таблицы для GORM
func (Result) TableName() string {
	return "results"
}
