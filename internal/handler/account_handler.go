package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yourusername/memora-api/internal/handler/dto"
	"github.com/yourusername/memora-api/internal/middleware"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
	"github.com/yourusername/memora-api/internal/service"
)

// AccountHandler обрабатывает запросы, связанные с учетной записью
type AccountHandler struct {
	accountService *service.AccountService
}

// NewAccountHandler создает новый обработчик учетных записей
func NewAccountHandler(accountService *service.AccountService) *AccountHandler {
	return &AccountHandler{
		accountService: accountService,
	}
}

// GetAccount возвращает текущую учетную запись с привязанным пациентом
func (h *AccountHandler) GetAccount(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	account, err := h.accountService.GetAccount(accountID)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// UpdateAccountRequest представляет запрос на обновление учетной записи
type UpdateAccountRequest struct {
	Username string `json:"username" binding:"required,min=3,max=50"`
}

// UpdateAccount обрабатывает запрос на смену имени учетной записи
func (h *AccountHandler) UpdateAccount(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	account, err := h.accountService.UpdateUsername(accountID, req.Username)
	if err != nil {
		h.handleAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewAccountResponse(account))
}

// DeleteAccount удаляет учетную запись вместе с привязанным пациентом
func (h *AccountHandler) DeleteAccount(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	if err := h.accountService.DeleteAccount(accountID); err != nil {
		h.handleAccountError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account deleted successfully"})
}

// handleAccountError преобразует ошибки сервиса в соответствующие HTTP-статусы
func (h *AccountHandler) handleAccountError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in AccountHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
