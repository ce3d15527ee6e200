package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/handler/dto"
	"github.com/yourusername/memora-api/internal/middleware"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
	"github.com/yourusername/memora-api/internal/service"
)

// ManagerHandler обрабатывает запросы, связанные с опекунами
type ManagerHandler struct {
	managerService *service.ManagerService
}

// NewManagerHandler создает новый обработчик опекунов
func NewManagerHandler(managerService *service.ManagerService) *ManagerHandler {
	return &ManagerHandler{
		managerService: managerService,
	}
}

// CreateManagerRequest представляет запрос на добавление опекуна
type CreateManagerRequest struct {
	FirstName      string `json:"firstname" binding:"required,min=1,max=100"`
	LastName       string `json:"lastname" binding:"required,min=1,max=100"`
	Email          string `json:"email" binding:"required,email,max=100"`
	Relationship   string `json:"relationship" binding:"omitempty,max=50"`
	ProfilePicture string `json:"profile_picture" binding:"omitempty,max=255"`
}

// CreateManager добавляет опекуна к учетной записи.
// На адрес опекуна отправляется приветственное письмо; сбой отправки
// не отменяет создание.
func (h *ManagerHandler) CreateManager(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	manager, err := h.managerService.CreateManager(c.Request.Context(), accountID, &entity.Manager{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Relationship:   req.Relationship,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		h.handleManagerError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewManagerResponse(manager))
}

// GetManagers возвращает всех опекунов учетной записи
func (h *ManagerHandler) GetManagers(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	managers, err := h.managerService.GetManagers(accountID)
	if err != nil {
		h.handleManagerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListManagerResponse(managers))
}

// GetManager возвращает опекуна по ID
func (h *ManagerHandler) GetManager(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	managerID := c.MustGet("managerID").(uint) // Получаем из контекста

	manager, err := h.managerService.GetManager(accountID, managerID)
	if err != nil {
		h.handleManagerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewManagerResponse(manager))
}

// UpdateManagerRequest представляет запрос на обновление опекуна.
// Все поля опциональны: обновляются только переданные.
type UpdateManagerRequest struct {
	FirstName      string `json:"firstname" binding:"omitempty,min=1,max=100"`
	LastName       string `json:"lastname" binding:"omitempty,min=1,max=100"`
	Email          string `json:"email" binding:"omitempty,email,max=100"`
	Relationship   string `json:"relationship" binding:"omitempty,max=50"`
	ProfilePicture string `json:"profile_picture" binding:"omitempty,max=255"`
}

// UpdateManager обрабатывает запрос на частичное обновление опекуна
func (h *ManagerHandler) UpdateManager(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	managerID := c.MustGet("managerID").(uint) // Получаем из контекста

	var req UpdateManagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	manager, err := h.managerService.UpdateManager(accountID, managerID, &entity.Manager{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Relationship:   req.Relationship,
		ProfilePicture: req.ProfilePicture,
	})
	if err != nil {
		h.handleManagerError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewManagerResponse(manager))
}

// DeleteManager удаляет опекуна учетной записи
func (h *ManagerHandler) DeleteManager(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	managerID := c.MustGet("managerID").(uint) // Получаем из контекста

	if err := h.managerService.DeleteManager(accountID, managerID); err != nil {
		h.handleManagerError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Manager deleted successfully"})
}

// handleManagerError преобразует ошибки сервиса в соответствующие HTTP-статусы
func (h *ManagerHandler) handleManagerError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in ManagerHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
