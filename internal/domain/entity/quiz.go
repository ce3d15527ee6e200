package entity

import (
	"time"
)

// Quiz представляет одну сессию тренировки пациента.
// После создания строка не изменяется: ответы и номера коробок
// мутируются через строки назначений (QuizQuestion), а не через сам квиз.
type Quiz struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	PatientID   uint           `gorm:"not null;index:idx_quizzes_patient_created" json:"patient_id"`
	CreatedAt   time.Time      `gorm:"index:idx_quizzes_patient_created" json:"created_at"`
	Assignments []QuizQuestion `gorm:"foreignKey:QuizID" json:"assignments,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (Quiz) TableName() string {
	return "quizzes"
}
