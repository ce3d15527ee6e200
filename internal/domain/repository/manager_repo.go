package repository

import (
	"github.com/yourusername/memora-api/internal/domain/entity"
)

// ManagerRepository определяет методы для работы с опекунами
type ManagerRepository interface {
	Create(manager *entity.Manager) error
	GetByID(id uint) (*entity.Manager, error)
	GetByAccountID(accountID uint) ([]entity.Manager, error)
	Update(manager *entity.Manager) error
	Delete(id uint) error
}
