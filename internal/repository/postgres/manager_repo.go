package postgres

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/yourusername/memora-api/internal/domain/entity"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// ManagerRepo реализует repository.ManagerRepository
type ManagerRepo struct {
	db *gorm.DB
}

// NewManagerRepo создает новый репозиторий опекунов
func NewManagerRepo(db *gorm.DB) *ManagerRepo {
	return &ManagerRepo{db: db}
}

// Create создает нового опекуна
func (r *ManagerRepo) Create(manager *entity.Manager) error {
	if err := r.db.Create(manager).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already used", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// GetByID возвращает опекуна по ID
func (r *ManagerRepo) GetByID(id uint) (*entity.Manager, error) {
	var manager entity.Manager
	err := r.db.First(&manager, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &manager, nil
}

// GetByAccountID возвращает всех опекунов учетной записи
func (r *ManagerRepo) GetByAccountID(accountID uint) ([]entity.Manager, error) {
	var managers []entity.Manager
	err := r.db.Where("account_id = ?", accountID).Order("id ASC").Find(&managers).Error
	if err != nil {
		return nil, err
	}
	return managers, nil
}

// Update обновляет данные опекуна
func (r *ManagerRepo) Update(manager *entity.Manager) error {
	if err := r.db.Save(manager).Error; err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: email already used", apperrors.ErrConflict)
		}
		return err
	}
	return nil
}

// Delete удаляет опекуна
func (r *ManagerRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Manager{}, id).Error
}
