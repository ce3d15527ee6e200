package service

import (
	"errors"
	"fmt"
	"log"
	"time"

	"gorm.io/datatypes"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/domain/repository"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
	"github.com/yourusername/memora-api/internal/service/leitner"
)

// QuizService реализует планировщик интервального повторения:
// сборку квизов по системе Лейтнера и запись ответов
type QuizService struct {
	quizRepo     repository.QuizRepository
	questionRepo repository.QuestionRepository
	accountRepo  repository.AccountRepository
	config       *leitner.Config

	// now подменяется в тестах
	now func() time.Time
}

// NewQuizService создает новый сервис квизов
func NewQuizService(
	quizRepo repository.QuizRepository,
	questionRepo repository.QuestionRepository,
	accountRepo repository.AccountRepository,
	config *leitner.Config,
) *QuizService {
	if config == nil {
		config = leitner.DefaultConfig()
	}
	return &QuizService{
		quizRepo:     quizRepo,
		questionRepo: questionRepo,
		accountRepo:  accountRepo,
		config:       config,
		now:          time.Now,
	}
}

// GetOrCreateQuiz возвращает незавершенный квиз пациента или собирает новый
// на count вопросов. Приоритет отбора: сначала вопросы, никогда не попадавшие
// в квизы, затем вопросы к повторению с истекшей задержкой Лейтнера
// (коробки по возрастанию, более давние показы раньше).
//
// Повторные вызовы при незавершенном квизе идемпотентны: пока остаются
// неотвеченные назначения, возвращается тот же квиз с тем же набором вопросов.
func (s *QuizService) GetOrCreateQuiz(accountID uint, count int) (*entity.Quiz, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if !account.HasPatient() {
		return nil, fmt.Errorf("%w: account has no associated patient", apperrors.ErrInvalidState)
	}
	patientID := *account.PatientID

	if count <= 0 {
		count = s.config.QuestionsPerQuiz
	}
	if count > s.config.MaxQuestions {
		count = s.config.MaxQuestions
	}

	// Шаг 1: возобновление. Последний квиз с неотвеченными назначениями
	// возвращается как есть, новый не создается.
	latest, err := s.quizRepo.GetLatestByPatient(patientID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}
	if latest != nil {
		pending, err := s.quizRepo.GetUnansweredAssignments(latest.ID)
		if err != nil {
			return nil, err
		}
		if len(pending) > 0 {
			latest.Assignments = pending
			return latest, nil
		}
	}

	// Шаг 2: сборка нового квиза
	return s.buildQuiz(account.ID, patientID, count)
}

// buildQuiz отбирает вопросы и создает квиз с назначениями
func (s *QuizService) buildQuiz(accountID, patientID uint, count int) (*entity.Quiz, error) {
	// 2a: новый материал имеет безусловный приоритет над повторением
	fresh, err := s.questionRepo.ListNeverPresented(accountID, count)
	if err != nil {
		return nil, fmt.Errorf("failed to select never-presented questions: %w", err)
	}

	assignments := make([]entity.QuizQuestion, 0, count)
	for i := range fresh {
		assignments = append(assignments, entity.QuizQuestion{
			QuestionID: fresh[i].ID,
			BoxNumber:  entity.MinBoxNumber,
			Question:   &fresh[i],
		})
	}

	// 2b-2c: оставшиеся места заполняются вопросами к повторению
	remaining := count - len(fresh)
	if remaining > 0 {
		due, err := s.questionRepo.ListDueForReview(accountID, s.now(), remaining)
		if err != nil {
			return nil, fmt.Errorf("failed to select due questions: %w", err)
		}
		for i := range due {
			// Коробка назначения наследуется от последнего показа;
			// понижение возможно только через неправильный ответ
			assignments = append(assignments, entity.QuizQuestion{
				QuestionID: due[i].Question.ID,
				BoxNumber:  due[i].BoxNumber,
				Question:   &due[i].Question,
			})
		}
	}

	if len(assignments) == 0 {
		return nil, fmt.Errorf("%w: no quiz available", apperrors.ErrNotFound)
	}

	quiz := &entity.Quiz{PatientID: patientID}
	if err := s.quizRepo.CreateWithAssignments(quiz, assignments); err != nil {
		return nil, fmt.Errorf("failed to create quiz: %w", err)
	}

	log.Printf("[QuizService] Собран квиз #%d для пациента #%d: %d новых, %d к повторению",
		quiz.ID, patientID, len(fresh), len(assignments)-len(fresh))
	return quiz, nil
}

// GetQuizByID возвращает квиз со всеми назначениями, проверяя,
// что квиз принадлежит пациенту учетной записи
func (s *QuizService) GetQuizByID(accountID, quizID uint) (*entity.Quiz, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if !account.HasPatient() || quiz.PatientID != *account.PatientID {
		return nil, apperrors.ErrForbidden
	}

	assignments, err := s.quizRepo.GetAssignments(quizID)
	if err != nil {
		return nil, err
	}
	quiz.Assignments = assignments
	return quiz, nil
}

// SubmitAnswer записывает ответ на вопрос квиза и возвращает сохраненный результат.
// Назначение (questionID, quizID) обязано существовать и быть неотвеченным;
// повторный ответ — постоянная ошибка клиента (ErrConflict), не подлежащая ретраю.
func (s *QuizService) SubmitAnswer(accountID, quizID, questionID uint, data datatypes.JSON, isCorrect bool) (*entity.Result, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}

	quiz, err := s.quizRepo.GetByID(quizID)
	if err != nil {
		return nil, err
	}
	if !account.HasPatient() || quiz.PatientID != *account.PatientID {
		return nil, apperrors.ErrForbidden
	}

	if len(data) == 0 {
		data = datatypes.JSON([]byte("{}"))
	}
	result := &entity.Result{
		Data:       data,
		IsCorrect:  isCorrect,
		AnsweredAt: s.now(),
	}

	if err := s.quizRepo.SubmitAnswer(quizID, questionID, result); err != nil {
		return nil, err
	}
	return result, nil
}
