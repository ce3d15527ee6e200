package repository

import (
	"time"

	"github.com/yourusername/memora-api/internal/domain/entity"
)

// ReviewCandidate — вопрос, готовый к повторению, вместе с номером коробки
// из его последнего назначения. Порядок в слайсе задает приоритет показа.
type ReviewCandidate struct {
	Question  entity.Question
	BoxNumber int
}

// QuestionRepository определяет методы для работы с вопросами
type QuestionRepository interface {
	Create(question *entity.Question) error
	GetByID(id uint) (*entity.Question, error)
	GetByAccountID(accountID uint) ([]entity.Question, error)
	Update(question *entity.Question) error
	Delete(id uint) error

	// Методы отбора вопросов для планировщика Лейтнера

	// ListNeverPresented возвращает вопросы учетной записи, ни разу не попадавшие
	// ни в один квиз, в стабильном порядке по возрастанию id.
	ListNeverPresented(accountID uint, limit int) ([]entity.Question, error)

	// ListDueForReview возвращает вопросы, чья задержка Лейтнера истекла к моменту now.
	// Для каждого вопроса берется его последнее назначение (максимальный quiz_id);
	// вопрос включается, если с создания того квиза прошло не меньше задержки его
	// коробки. Порядок: номер коробки по возрастанию, затем более старые показы раньше.
	ListDueForReview(accountID uint, now time.Time, limit int) ([]ReviewCandidate, error)
}
