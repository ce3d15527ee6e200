package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/yourusername/memora-api/internal/domain/entity"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// QuizRepo реализует repository.QuizRepository
type QuizRepo struct {
	db *gorm.DB
}

// NewQuizRepo создает новый репозиторий квизов
func NewQuizRepo(db *gorm.DB) *QuizRepo {
	return &QuizRepo{db: db}
}

// GetByID возвращает квиз по ID
func (r *QuizRepo) GetByID(id uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.First(&quiz, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetLatestByPatient возвращает последний созданный квиз пациента
func (r *QuizRepo) GetLatestByPatient(patientID uint) (*entity.Quiz, error) {
	var quiz entity.Quiz
	err := r.db.Where("patient_id = ?", patientID).
		Order("created_at DESC, id DESC").
		First(&quiz).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &quiz, nil
}

// GetAssignments возвращает все назначения квиза с вопросами и результатами
func (r *QuizRepo) GetAssignments(quizID uint) ([]entity.QuizQuestion, error) {
	var assignments []entity.QuizQuestion
	err := r.db.Where("quiz_id = ?", quizID).
		Preload("Question").
		Preload("Result").
		Order("question_id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// GetUnansweredAssignments возвращает назначения квиза без записанного результата
func (r *QuizRepo) GetUnansweredAssignments(quizID uint) ([]entity.QuizQuestion, error) {
	var assignments []entity.QuizQuestion
	err := r.db.Where("quiz_id = ? AND result_id IS NULL", quizID).
		Preload("Question").
		Order("question_id ASC").
		Find(&assignments).Error
	if err != nil {
		return nil, err
	}
	return assignments, nil
}

// CreateWithAssignments создает квиз и его назначения в одной транзакции
func (r *QuizRepo) CreateWithAssignments(quiz *entity.Quiz, assignments []entity.QuizQuestion) error {
	if len(assignments) == 0 {
		return fmt.Errorf("cannot create quiz without assignments")
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(quiz).Error; err != nil {
			return fmt.Errorf("failed to create quiz: %w", err)
		}

		for i := range assignments {
			assignments[i].QuizID = quiz.ID
		}
		if err := tx.Create(&assignments).Error; err != nil {
			return fmt.Errorf("failed to create quiz assignments: %w", err)
		}

		quiz.Assignments = assignments
		return nil
	})
}

// SubmitAnswer атомарно записывает результат ответа на назначение (questionID, quizID).
// Строка назначения блокируется на время транзакции; гонка двух одновременных
// ответов дополнительно закрыта условием result_id IS NULL в UPDATE —
// ровно один из конкурентов выигрывает, второй получает ErrConflict.
func (r *QuizRepo) SubmitAnswer(quizID, questionID uint, result *entity.Result) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var assignment entity.QuizQuestion
		err := tx.Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("question_id = ? AND quiz_id = ?", questionID, quizID).
			First(&assignment).Error
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("%w: question #%d is not part of quiz #%d", apperrors.ErrNotFound, questionID, quizID)
			}
			return err
		}

		if assignment.IsAnswered() {
			return fmt.Errorf("%w: question #%d in quiz #%d already answered", apperrors.ErrConflict, questionID, quizID)
		}

		if err := tx.Create(result).Error; err != nil {
			if isUniqueViolation(err) {
				return apperrors.ErrConflict
			}
			return fmt.Errorf("failed to save result: %w", err)
		}

		res := tx.Model(&entity.QuizQuestion{}).
			Where("question_id = ? AND quiz_id = ? AND result_id IS NULL", questionID, quizID).
			Updates(map[string]interface{}{
				"result_id":  result.ID,
				"box_number": assignment.NextBoxNumber(result.IsCorrect),
			})
		if res.Error != nil {
			if isUniqueViolation(res.Error) {
				return apperrors.ErrConflict
			}
			return res.Error
		}
		if res.RowsAffected == 0 {
			return fmt.Errorf("%w: question #%d in quiz #%d already answered", apperrors.ErrConflict, questionID, quizID)
		}

		return nil
	})
}

// isUniqueViolation проверяет Postgres unique violation (23505) для pgconn и lib/pq драйверов
func isUniqueViolation(err error) bool {
	// pgx/v5 driver (pgconn.PgError)
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		return true
	}
	// lib/pq driver
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return true
	}
	return false
}
