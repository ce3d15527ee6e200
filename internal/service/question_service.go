package service

import (
	"fmt"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/domain/repository"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// QuestionService предоставляет методы для работы с вопросами учетной записи.
// Вопросы создаются и редактируются опекунами; действующий опекун обязан
// принадлежать той же учетной записи.
type QuestionService struct {
	questionRepo repository.QuestionRepository
	managerRepo  repository.ManagerRepository
}

// NewQuestionService создает новый сервис вопросов
func NewQuestionService(questionRepo repository.QuestionRepository, managerRepo repository.ManagerRepository) *QuestionService {
	return &QuestionService{
		questionRepo: questionRepo,
		managerRepo:  managerRepo,
	}
}

// validateManager проверяет, что опекун существует и принадлежит учетной записи
func (s *QuestionService) validateManager(accountID, managerID uint) (*entity.Manager, error) {
	manager, err := s.managerRepo.GetByID(managerID)
	if err != nil {
		return nil, err
	}
	if !manager.BelongsTo(accountID) {
		return nil, apperrors.ErrForbidden
	}
	return manager, nil
}

// CreateQuestion создает вопрос от имени опекуна
func (s *QuestionService) CreateQuestion(accountID, managerID uint, question *entity.Question) (*entity.Question, error) {
	if question.Type == "" || len(question.Exercise) == 0 {
		return nil, fmt.Errorf("%w: type and exercise are required", apperrors.ErrValidation)
	}

	manager, err := s.validateManager(accountID, managerID)
	if err != nil {
		return nil, err
	}

	question.AccountID = accountID
	question.CreatedByID = &manager.ID
	question.EditedByID = &manager.ID
	if err := s.questionRepo.Create(question); err != nil {
		return nil, fmt.Errorf("failed to create question: %w", err)
	}
	return question, nil
}

// GetQuestions возвращает все вопросы учетной записи
func (s *QuestionService) GetQuestions(accountID uint) ([]entity.Question, error) {
	return s.questionRepo.GetByAccountID(accountID)
}

// GetQuestion возвращает вопрос, проверяя принадлежность учетной записи
func (s *QuestionService) GetQuestion(accountID, questionID uint) (*entity.Question, error) {
	question, err := s.questionRepo.GetByID(questionID)
	if err != nil {
		return nil, err
	}
	if question.AccountID != accountID {
		return nil, apperrors.ErrForbidden
	}
	return question, nil
}

// UpdateQuestion обновляет вопрос от имени опекуна.
// Идентичность вопроса неизменна между циклами квизов: меняется содержимое,
// но не его история назначений.
func (s *QuestionService) UpdateQuestion(accountID, managerID, questionID uint, updates *entity.Question) (*entity.Question, error) {
	manager, err := s.validateManager(accountID, managerID)
	if err != nil {
		return nil, err
	}

	question, err := s.GetQuestion(accountID, questionID)
	if err != nil {
		return nil, err
	}

	if updates.Type != "" {
		question.Type = updates.Type
	}
	if updates.Category != "" {
		question.Category = updates.Category
	}
	if len(updates.Exercise) > 0 {
		question.Exercise = updates.Exercise
	}
	if updates.ImagePath != "" {
		question.ImagePath = updates.ImagePath
	}
	question.EditedByID = &manager.ID

	if err := s.questionRepo.Update(question); err != nil {
		return nil, err
	}
	return question, nil
}

// DeleteQuestion удаляет вопрос учетной записи
func (s *QuestionService) DeleteQuestion(accountID, questionID uint) error {
	if _, err := s.GetQuestion(accountID, questionID); err != nil {
		return err
	}
	return s.questionRepo.Delete(questionID)
}
