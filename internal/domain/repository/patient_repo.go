package repository

import (
	"github.com/yourusername/memora-api/internal/domain/entity"
)

// PatientRepository определяет методы для работы с пациентами
type PatientRepository interface {
	Create(patient *entity.Patient) error
	GetByID(id uint) (*entity.Patient, error)
	Update(patient *entity.Patient) error
	Delete(id uint) error
}
