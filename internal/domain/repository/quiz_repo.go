package repository

import (
	"github.com/yourusername/memora-api/internal/domain/entity"
)

// QuizRepository определяет методы для работы с квизами и их назначениями
type QuizRepository interface {
	// GetByID возвращает квиз без назначений
	GetByID(id uint) (*entity.Quiz, error)

	// GetLatestByPatient возвращает последний созданный квиз пациента
	GetLatestByPatient(patientID uint) (*entity.Quiz, error)

	// GetAssignments возвращает все назначения квиза с подгруженными вопросами и результатами
	GetAssignments(quizID uint) ([]entity.QuizQuestion, error)

	// GetUnansweredAssignments возвращает назначения квиза без записанного результата
	GetUnansweredAssignments(quizID uint) ([]entity.QuizQuestion, error)

	// CreateWithAssignments создает квиз и его назначения в одной транзакции.
	// Квиз без единого назначения не создается.
	CreateWithAssignments(quiz *entity.Quiz, assignments []entity.QuizQuestion) error

	// SubmitAnswer атомарно записывает результат ответа: создает Result,
	// устанавливает ссылку на него в назначении и обновляет номер коробки
	// (продвижение при правильном ответе, сброс в первую при неправильном).
	// Возвращает apperrors.ErrNotFound, если назначения (questionID, quizID) нет,
	// и apperrors.ErrConflict, если ответ уже был записан ранее.
	SubmitAnswer(quizID, questionID uint, result *entity.Result) error
}
