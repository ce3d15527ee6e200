package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"github.com/yourusername/memora-api/internal/handler/dto"
	"github.com/yourusername/memora-api/internal/middleware"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
	"github.com/yourusername/memora-api/internal/service"
)

// QuizHandler обрабатывает запросы, связанные с квизами
type QuizHandler struct {
	quizService  *service.QuizService
	imageBaseURL string
}

// NewQuizHandler создает новый обработчик квизов
func NewQuizHandler(quizService *service.QuizService, imageBaseURL string) *QuizHandler {
	return &QuizHandler{
		quizService:  quizService,
		imageBaseURL: imageBaseURL,
	}
}

// GetOrCreateQuiz возвращает незавершенный квиз пациента или собирает новый
// на count вопросов. GET /api/quizzes/next/:count
func (h *QuizHandler) GetOrCreateQuiz(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	count := c.MustGet("questionCount").(int) // Получаем из контекста

	quiz, err := h.quizService.GetOrCreateQuiz(accountID, count)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, h.imageBaseURL))
}

// GetQuiz возвращает квиз по ID со всеми назначениями, включая отвеченные
func (h *QuizHandler) GetQuiz(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	quizID := c.MustGet("quizID").(uint) // Получаем из контекста

	quiz, err := h.quizService.GetQuizByID(accountID, quizID)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuizResponse(quiz, h.imageBaseURL))
}

// SubmitAnswerRequest представляет запрос на запись ответа.
// Поле data — сырые данные ответа, сервер их не интерпретирует;
// правильность определяет клиент и передает в is_correct.
type SubmitAnswerRequest struct {
	QuizID     uint           `json:"quiz_id" binding:"required"`
	QuestionID uint           `json:"question_id" binding:"required"`
	Data       datatypes.JSON `json:"data"`
	IsCorrect  *bool          `json:"is_correct" binding:"required"`
}

// SubmitAnswer записывает ответ на вопрос квиза.
// Повторный ответ на то же назначение возвращает 409 и не изменяет коробку.
func (h *QuizHandler) SubmitAnswer(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req SubmitAnswerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	result, err := h.quizService.SubmitAnswer(accountID, req.QuizID, req.QuestionID, req.Data, *req.IsCorrect)
	if err != nil {
		h.handleQuizError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewResultResponse(result))
}

// handleQuizError преобразует ошибки сервиса в соответствующие HTTP-статусы
func (h *QuizHandler) handleQuizError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrInvalidState) {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrUnauthorized) {
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuizHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
