package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/memora-api/internal/domain/entity"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// AccountRepo реализует repository.AccountRepository
type AccountRepo struct {
	db *gorm.DB
}

// NewAccountRepo создает новый репозиторий учетных записей
func NewAccountRepo(db *gorm.DB) *AccountRepo {
	return &AccountRepo{db: db}
}

// Create создает новую учетную запись
func (r *AccountRepo) Create(account *entity.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already registered", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID возвращает учетную запись по ID вместе с привязанным пациентом
func (r *AccountRepo) GetByID(id uint) (*entity.Account, error) {
	var account entity.Account
	err := r.db.Preload("Patient").First(&account, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// GetByUsername возвращает учетную запись по имени пользователя
func (r *AccountRepo) GetByUsername(username string) (*entity.Account, error) {
	var account entity.Account
	err := r.db.Where("username = ?", username).First(&account).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &account, nil
}

// Update обновляет учетную запись
func (r *AccountRepo) Update(account *entity.Account) error {
	if err := r.db.Save(account).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: username already registered", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// Delete удаляет учетную запись вместе с привязанным пациентом
func (r *AccountRepo) Delete(id uint) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var account entity.Account
		if err := tx.First(&account, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return apperrors.ErrNotFound
			}
			return err
		}

		if err := tx.Delete(&entity.Account{}, id).Error; err != nil {
			return err
		}

		if account.PatientID != nil {
			if err := tx.Delete(&entity.Patient{}, *account.PatientID).Error; err != nil {
				return err
			}
		}
		return nil
	})
}
