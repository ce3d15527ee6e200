package postgres

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/domain/repository"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// QuestionRepo реализует repository.QuestionRepository
type QuestionRepo struct {
	db *gorm.DB
}

// NewQuestionRepo создает новый репозиторий вопросов
func NewQuestionRepo(db *gorm.DB) *QuestionRepo {
	return &QuestionRepo{db: db}
}

// Create создает новый вопрос
func (r *QuestionRepo) Create(question *entity.Question) error {
	return r.db.Create(question).Error
}

// GetByID возвращает вопрос по ID
func (r *QuestionRepo) GetByID(id uint) (*entity.Question, error) {
	var question entity.Question
	err := r.db.First(&question, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &question, nil
}

// GetByAccountID возвращает все вопросы учетной записи
func (r *QuestionRepo) GetByAccountID(accountID uint) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("account_id = ?", accountID).Order("id ASC").Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// Update обновляет вопрос
func (r *QuestionRepo) Update(question *entity.Question) error {
	return r.db.Save(question).Error
}

// Delete удаляет вопрос
func (r *QuestionRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Question{}, id).Error
}

// ListNeverPresented возвращает вопросы учетной записи, ни разу не попадавшие
// ни в один квиз, по возрастанию id (стабильный порядок)
func (r *QuestionRepo) ListNeverPresented(accountID uint, limit int) ([]entity.Question, error) {
	var questions []entity.Question
	err := r.db.Where("account_id = ?", accountID).
		Where("id NOT IN (?)", r.db.Model(&entity.QuizQuestion{}).Select("question_id")).
		Order("id ASC").
		Limit(limit).
		Find(&questions).Error
	if err != nil {
		return nil, err
	}
	return questions, nil
}

// dueRow — строка результата запроса отбора вопросов к повторению
type dueRow struct {
	QuestionID uint
	BoxNumber  int
}

// delayElapsedCondition возвращает SQL-условие "задержка коробки истекла"
// для текущего диалекта. Арифметика интервалов не переносится между СУБД:
// PostgreSQL использует make_interval, SQLite (in-memory хранилище в тестах) —
// нормализованные строки datetime с модификатором в днях.
func (r *QuestionRepo) delayElapsedCondition() string {
	if r.db.Dialector.Name() == "sqlite" {
		return "datetime(qz.created_at) <= datetime(?, '-' || lp.delay_days || ' days')"
	}
	return "qz.created_at <= ? - make_interval(days => lp.delay_days)"
}

// ListDueForReview возвращает вопросы, чья задержка Лейтнера истекла к моменту now.
// Текущая коробка вопроса определяется его последним назначением (максимальный quiz_id);
// вопрос доступен, если с создания того квиза прошло не меньше задержки коробки.
// Порядок: коробки по возрастанию (наименее усвоенные раньше), при равенстве —
// более давние показы раньше.
func (r *QuestionRepo) ListDueForReview(accountID uint, now time.Time, limit int) ([]repository.ReviewCandidate, error) {
	var rows []dueRow
	err := r.db.Raw(`
		SELECT qq.question_id, qq.box_number
		FROM quiz_questions qq
		JOIN questions q ON q.id = qq.question_id
		JOIN quizzes qz ON qz.id = qq.quiz_id
		JOIN leitner_parameters lp ON lp.box_number = qq.box_number
		WHERE q.account_id = ?
		  AND qq.quiz_id = (
			SELECT MAX(last.quiz_id) FROM quiz_questions last WHERE last.question_id = qq.question_id
		  )
		  AND `+r.delayElapsedCondition()+`
		ORDER BY qq.box_number ASC, qz.created_at ASC, qq.question_id ASC
		LIMIT ?`,
		accountID, now, limit,
	).Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to select due questions: %w", err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	ids := make([]uint, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.QuestionID)
	}

	var questions []entity.Question
	if err := r.db.Where("id IN ?", ids).Find(&questions).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]entity.Question, len(questions))
	for _, q := range questions {
		byID[q.ID] = q
	}

	// Восстанавливаем порядок приоритета из запроса
	candidates := make([]repository.ReviewCandidate, 0, len(rows))
	for _, row := range rows {
		q, ok := byID[row.QuestionID]
		if !ok {
			continue
		}
		candidates = append(candidates, repository.ReviewCandidate{
			Question:  q,
			BoxNumber: row.BoxNumber,
		})
	}
	return candidates, nil
}
