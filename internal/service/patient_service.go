package service

import (
	"fmt"
	"time"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/domain/repository"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// PatientService предоставляет методы для работы с пациентом учетной записи.
// К одной учетной записи привязывается не более одного пациента.
type PatientService struct {
	patientRepo repository.PatientRepository
	accountRepo repository.AccountRepository
}

// NewPatientService создает новый сервис пациентов
func NewPatientService(patientRepo repository.PatientRepository, accountRepo repository.AccountRepository) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		accountRepo: accountRepo,
	}
}

// CreatePatient создает пациента и привязывает его к учетной записи
func (s *PatientService) CreatePatient(accountID uint, firstName, lastName string, birthday time.Time) (*entity.Patient, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if account.HasPatient() {
		return nil, fmt.Errorf("%w: patient already registered", apperrors.ErrConflict)
	}

	patient := &entity.Patient{
		FirstName: firstName,
		LastName:  lastName,
		Birthday:  birthday,
	}
	if err := s.patientRepo.Create(patient); err != nil {
		return nil, fmt.Errorf("failed to create patient: %w", err)
	}

	account.PatientID = &patient.ID
	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to link patient to account: %w", err)
	}
	return patient, nil
}

// GetPatient возвращает пациента учетной записи
func (s *PatientService) GetPatient(accountID uint) (*entity.Patient, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return nil, err
	}
	if !account.HasPatient() {
		return nil, apperrors.ErrNotFound
	}
	return s.patientRepo.GetByID(*account.PatientID)
}

// UpdatePatient обновляет данные пациента учетной записи
func (s *PatientService) UpdatePatient(accountID uint, firstName, lastName string, birthday *time.Time) (*entity.Patient, error) {
	patient, err := s.GetPatient(accountID)
	if err != nil {
		return nil, err
	}

	if firstName != "" {
		patient.FirstName = firstName
	}
	if lastName != "" {
		patient.LastName = lastName
	}
	if birthday != nil {
		patient.Birthday = *birthday
	}

	if err := s.patientRepo.Update(patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// DeletePatient удаляет пациента и отвязывает его от учетной записи
func (s *PatientService) DeletePatient(accountID uint) error {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		return err
	}
	if !account.HasPatient() {
		return apperrors.ErrNotFound
	}

	patientID := *account.PatientID
	account.PatientID = nil
	if err := s.accountRepo.Update(account); err != nil {
		return fmt.Errorf("failed to unlink patient: %w", err)
	}
	return s.patientRepo.Delete(patientID)
}
