package service

import (
	"errors"
	"fmt"
	"log"
	"strings"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/domain/repository"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
	"github.com/yourusername/memora-api/pkg/auth"
)

// AuthService предоставляет методы для регистрации и аутентификации учетных записей
type AuthService struct {
	accountRepo repository.AccountRepository
	jwtService  *auth.JWTService
}

// NewAuthService создает новый сервис аутентификации и возвращает ошибку при проблемах
func NewAuthService(accountRepo repository.AccountRepository, jwtService *auth.JWTService) (*AuthService, error) {
	if accountRepo == nil {
		return nil, fmt.Errorf("AccountRepository is required for AuthService")
	}
	if jwtService == nil {
		return nil, fmt.Errorf("JWTService is required for AuthService")
	}
	return &AuthService{
		accountRepo: accountRepo,
		jwtService:  jwtService,
	}, nil
}

// Register создает новую учетную запись и возвращает access-токен
func (s *AuthService) Register(username, password string) (*entity.Account, string, error) {
	username = strings.TrimSpace(username)
	if username == "" || len(password) < 8 {
		return nil, "", fmt.Errorf("%w: username is required and password must be at least 8 characters", apperrors.ErrValidation)
	}

	account := &entity.Account{
		Username: username,
		Password: password, // хешируется в Account.BeforeSave
	}
	if err := s.accountRepo.Create(account); err != nil {
		return nil, "", err
	}

	token, err := s.jwtService.GenerateToken(account.ID, account.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}

	log.Printf("[AuthService] Зарегистрирована учетная запись #%d (%s)", account.ID, account.Username)
	return account, token, nil
}

// Login проверяет учетные данные и возвращает access-токен
func (s *AuthService) Login(username, password string) (*entity.Account, string, error) {
	account, err := s.accountRepo.GetByUsername(username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			// Не раскрываем, что именно неверно: имя или пароль
			return nil, "", apperrors.ErrUnauthorized
		}
		return nil, "", err
	}

	if !account.CheckPassword(password) {
		return nil, "", apperrors.ErrUnauthorized
	}

	token, err := s.jwtService.GenerateToken(account.ID, account.Username)
	if err != nil {
		return nil, "", fmt.Errorf("failed to generate token: %w", err)
	}
	return account, token, nil
}

// Logout отзывает текущий access-токен
func (s *AuthService) Logout(claims *auth.JWTCustomClaims) error {
	return s.jwtService.RevokeToken(claims)
}

// ChangePassword меняет пароль учетной записи и отзывает текущий токен
func (s *AuthService) ChangePassword(accountID uint, oldPassword, newPassword string, claims *auth.JWTCustomClaims) error {
	if len(newPassword) < 8 {
		return fmt.Errorf("%w: password must be at least 8 characters", apperrors.ErrValidation)
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if !account.CheckPassword(oldPassword) {
		return apperrors.ErrUnauthorized
	}

	account.Password = newPassword // хешируется в Account.BeforeSave
	if err := s.accountRepo.Update(account); err != nil {
		return err
	}

	// Выданный ранее токен больше не должен работать
	if err := s.jwtService.RevokeToken(claims); err != nil {
		log.Printf("[AuthService] Не удалось отозвать токен после смены пароля для аккаунта #%d: %v", accountID, err)
	}
	return nil
}
