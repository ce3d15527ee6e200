package dto

import (
	"time"

	"github.com/yourusername/memora-api/internal/domain/entity"
)

// PatientResponse представляет пациента в формате для ответа клиенту
type PatientResponse struct {
	ID        uint      `json:"id"`
	FirstName string    `json:"firstname"`
	LastName  string    `json:"lastname"`
	Birthday  time.Time `json:"birthday"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// AccountResponse представляет учетную запись в формате для ответа клиенту
type AccountResponse struct {
	ID        uint             `json:"id"`
	Username  string           `json:"username"`
	Patient   *PatientResponse `json:"patient,omitempty"`
	CreatedAt time.Time        `json:"created_at"`
}

// ManagerResponse представляет опекуна в формате для ответа клиенту
type ManagerResponse struct {
	ID             uint      `json:"id"`
	FirstName      string    `json:"firstname"`
	LastName       string    `json:"lastname"`
	Email          string    `json:"email"`
	Relationship   string    `json:"relationship"`
	ProfilePicture string    `json:"profile_picture,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// AuthResponse представляет ответ на успешную регистрацию или вход
type AuthResponse struct {
	AccessToken string           `json:"access_token"`
	Account     *AccountResponse `json:"account"`
}

// NewPatientResponse создает DTO для пациента
func NewPatientResponse(patient *entity.Patient) *PatientResponse {
	if patient == nil {
		return nil
	}
	return &PatientResponse{
		ID:        patient.ID,
		FirstName: patient.FirstName,
		LastName:  patient.LastName,
		Birthday:  patient.Birthday,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}
}

// NewAccountResponse создает DTO для учетной записи
func NewAccountResponse(account *entity.Account) *AccountResponse {
	if account == nil {
		return nil
	}
	return &AccountResponse{
		ID:        account.ID,
		Username:  account.Username,
		Patient:   NewPatientResponse(account.Patient),
		CreatedAt: account.CreatedAt,
	}
}

// NewManagerResponse создает DTO для опекуна
func NewManagerResponse(manager *entity.Manager) *ManagerResponse {
	if manager == nil {
		return nil
	}
	return &ManagerResponse{
		ID:             manager.ID,
		FirstName:      manager.FirstName,
		LastName:       manager.LastName,
		Email:          manager.Email,
		Relationship:   manager.Relationship,
		ProfilePicture: manager.ProfilePicture,
		CreatedAt:      manager.CreatedAt,
		UpdatedAt:      manager.UpdatedAt,
	}
}

// NewListManagerResponse создает слайс DTO для списка опекунов
func NewListManagerResponse(managers []entity.Manager) []*ManagerResponse {
	list := make([]*ManagerResponse, len(managers))
	for i := range managers {
		list[i] = NewManagerResponse(&managers[i])
	}
	return list
}
