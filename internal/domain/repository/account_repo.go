package repository

import (
	"github.com/yourusername/memora-api/internal/domain/entity"
)

// AccountRepository определяет методы для работы с учетными записями
type AccountRepository interface {
	Create(account *entity.Account) error
	GetByID(id uint) (*entity.Account, error)
	GetByUsername(username string) (*entity.Account, error)
	Update(account *entity.Account) error
	// Delete удаляет учетную запись вместе с привязанным пациентом
	Delete(id uint) error
}
