package service

import (
	"fmt"
	"strings"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/domain/repository"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// AccountService предоставляет методы для работы с учетной записью
type AccountService struct {
	accountRepo repository.AccountRepository
}

// NewAccountService создает новый сервис учетных записей
func NewAccountService(accountRepo repository.AccountRepository) *AccountService {
	return &AccountService{accountRepo: accountRepo}
}

// GetAccount возвращает учетную запись по ID
func (s *AccountService) GetAccount(accountID uint) (*entity.Account, error) {
	return s.accountRepo.GetByID(accountID)
}

// UpdateUsername меняет имя пользователя учетной записи
func (s *AccountService) UpdateUsername(accountID uint, username string) (*entity.Account, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, fmt.Errorf("%w: username is required", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	account.Username = username
	if err := s.accountRepo.Update(account); err != nil {
		return nil, err
	}
	return account, nil
}

// DeleteAccount удаляет учетную запись вместе с привязанным пациентом
func (s *AccountService) DeleteAccount(accountID uint) error {
	return s.accountRepo.Delete(accountID)
}
