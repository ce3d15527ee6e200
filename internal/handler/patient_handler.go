package handler

import (
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/memora-api/internal/handler/dto"
	"github.com/yourusername/memora-api/internal/middleware"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
	"github.com/yourusername/memora-api/internal/service"
)

// PatientHandler обрабатывает запросы, связанные с пациентом учетной записи
type PatientHandler struct {
	patientService *service.PatientService
}

// NewPatientHandler создает новый обработчик пациентов
func NewPatientHandler(patientService *service.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

// CreatePatientRequest представляет запрос на регистрацию пациента
type CreatePatientRequest struct {
	FirstName string    `json:"firstname" binding:"required,min=1,max=100"`
	LastName  string    `json:"lastname" binding:"required,min=1,max=100"`
	Birthday  time.Time `json:"birthday" binding:"required"`
}

// CreatePatient привязывает нового пациента к учетной записи.
// Учетная запись может иметь не более одного пациента.
func (h *PatientHandler) CreatePatient(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.patientService.CreatePatient(accountID, req.FirstName, req.LastName, req.Birthday)
	if err != nil {
		h.handlePatientError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewPatientResponse(patient))
}

// GetPatient возвращает пациента учетной записи
func (h *PatientHandler) GetPatient(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	patient, err := h.patientService.GetPatient(accountID)
	if err != nil {
		h.handlePatientError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPatientResponse(patient))
}

// UpdatePatientRequest представляет запрос на обновление пациента.
// Все поля опциональны: обновляются только переданные.
type UpdatePatientRequest struct {
	FirstName string     `json:"firstname" binding:"omitempty,min=1,max=100"`
	LastName  string     `json:"lastname" binding:"omitempty,min=1,max=100"`
	Birthday  *time.Time `json:"birthday"`
}

// UpdatePatient обрабатывает запрос на частичное обновление пациента
func (h *PatientHandler) UpdatePatient(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	patient, err := h.patientService.UpdatePatient(accountID, req.FirstName, req.LastName, req.Birthday)
	if err != nil {
		h.handlePatientError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewPatientResponse(patient))
}

// DeletePatient отвязывает и удаляет пациента учетной записи
func (h *PatientHandler) DeletePatient(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	if err := h.patientService.DeletePatient(accountID); err != nil {
		h.handlePatientError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Patient deleted successfully"})
}

// handlePatientError преобразует ошибки сервиса в соответствующие HTTP-статусы
func (h *PatientHandler) handlePatientError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in PatientHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
