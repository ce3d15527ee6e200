package service

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/domain/repository"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// ManagerService предоставляет методы для работы с опекунами учетной записи
type ManagerService struct {
	managerRepo  repository.ManagerRepository
	emailService EmailService
}

// NewManagerService создает новый сервис опекунов
func NewManagerService(managerRepo repository.ManagerRepository, emailService EmailService) *ManagerService {
	if emailService == nil {
		emailService = &NoopEmailService{}
	}
	return &ManagerService{
		managerRepo:  managerRepo,
		emailService: emailService,
	}
}

// CreateManager добавляет опекуна к учетной записи и отправляет приветственное письмо
func (s *ManagerService) CreateManager(ctx context.Context, accountID uint, manager *entity.Manager) (*entity.Manager, error) {
	manager.Email = strings.TrimSpace(strings.ToLower(manager.Email))
	if manager.Email == "" || manager.FirstName == "" || manager.LastName == "" {
		return nil, fmt.Errorf("%w: firstname, lastname and email are required", apperrors.ErrValidation)
	}

	manager.AccountID = accountID
	if err := s.managerRepo.Create(manager); err != nil {
		return nil, err
	}

	// Письмо не критично для операции: при ошибке отправки опекун уже создан
	idempotencyKey := fmt.Sprintf("manager-welcome-%d", manager.ID)
	if err := s.emailService.SendManagerWelcome(ctx, manager.Email, manager.FirstName, idempotencyKey); err != nil {
		log.Printf("[ManagerService] Не удалось отправить приветственное письмо опекуну #%d: %v", manager.ID, err)
	}

	return manager, nil
}

// GetManagers возвращает всех опекунов учетной записи
func (s *ManagerService) GetManagers(accountID uint) ([]entity.Manager, error) {
	return s.managerRepo.GetByAccountID(accountID)
}

// GetManager возвращает опекуна, проверяя принадлежность учетной записи
func (s *ManagerService) GetManager(accountID, managerID uint) (*entity.Manager, error) {
	manager, err := s.managerRepo.GetByID(managerID)
	if err != nil {
		return nil, err
	}
	if !manager.BelongsTo(accountID) {
		return nil, apperrors.ErrForbidden
	}
	return manager, nil
}

// UpdateManager обновляет данные опекуна
func (s *ManagerService) UpdateManager(accountID, managerID uint, updates *entity.Manager) (*entity.Manager, error) {
	manager, err := s.GetManager(accountID, managerID)
	if err != nil {
		return nil, err
	}

	if updates.FirstName != "" {
		manager.FirstName = updates.FirstName
	}
	if updates.LastName != "" {
		manager.LastName = updates.LastName
	}
	if updates.Email != "" {
		manager.Email = strings.TrimSpace(strings.ToLower(updates.Email))
	}
	if updates.Relationship != "" {
		manager.Relationship = updates.Relationship
	}
	if updates.ProfilePicture != "" {
		manager.ProfilePicture = updates.ProfilePicture
	}

	if err := s.managerRepo.Update(manager); err != nil {
		return nil, err
	}
	return manager, nil
}

// DeleteManager удаляет опекуна учетной записи
func (s *ManagerService) DeleteManager(accountID, managerID uint) error {
	if _, err := s.GetManager(accountID, managerID); err != nil {
		return err
	}
	return s.managerRepo.Delete(managerID)
}
