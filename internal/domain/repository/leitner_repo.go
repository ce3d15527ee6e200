package repository

import (
	"github.com/yourusername/memora-api/internal/domain/entity"
)

// LeitnerRepository определяет методы для работы с таблицей задержек Лейтнера
type LeitnerRepository interface {
	// Seed записывает таблицу задержек (upsert по box_number).
	// Вызывается один раз при старте приложения; дальше таблицу
	// читает только SQL отбора вопросов к повторению.
	Seed(parameters []entity.LeitnerParameter) error
}
