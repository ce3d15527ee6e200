package postgres

import (
	"errors"

	"gorm.io/gorm"

	"github.com/yourusername/memora-api/internal/domain/entity"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// PatientRepo реализует repository.PatientRepository
type PatientRepo struct {
	db *gorm.DB
}

// NewPatientRepo создает новый репозиторий пациентов
func NewPatientRepo(db *gorm.DB) *PatientRepo {
	return &PatientRepo{db: db}
}

// Create создает нового пациента
func (r *PatientRepo) Create(patient *entity.Patient) error {
	return r.db.Create(patient).Error
}

// GetByID возвращает пациента по ID
func (r *PatientRepo) GetByID(id uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.First(&patient, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrNotFound
		}
		return nil, err
	}
	return &patient, nil
}

// Update обновляет данные пациента
func (r *PatientRepo) Update(patient *entity.Patient) error {
	return r.db.Save(patient).Error
}

// Delete удаляет пациента
func (r *PatientRepo) Delete(id uint) error {
	return r.db.Delete(&entity.Patient{}, id).Error
}
