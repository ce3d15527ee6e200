package handler

import (
	"encoding/csv"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
	"gorm.io/datatypes"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/handler/dto"
	"github.com/yourusername/memora-api/internal/middleware"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
	"github.com/yourusername/memora-api/internal/service"
)

// QuestionHandler обрабатывает запросы, связанные с вопросами
type QuestionHandler struct {
	questionService *service.QuestionService
	imageBaseURL    string
}

// NewQuestionHandler создает новый обработчик вопросов.
// imageBaseURL — публичный префикс URL для иллюстраций вопросов.
func NewQuestionHandler(questionService *service.QuestionService, imageBaseURL string) *QuestionHandler {
	return &QuestionHandler{
		questionService: questionService,
		imageBaseURL:    imageBaseURL,
	}
}

// CreateQuestionRequest представляет запрос на создание вопроса
type CreateQuestionRequest struct {
	ManagerID uint           `json:"manager_id" binding:"required"`
	Type      string         `json:"type" binding:"required,max=50"`
	Category  string         `json:"category" binding:"omitempty,max=50"`
	Exercise  datatypes.JSON `json:"exercise" binding:"required"`
	ImagePath string         `json:"image_path" binding:"omitempty,max=255"`
}

// CreateQuestion создает вопрос от имени опекуна
func (h *QuestionHandler) CreateQuestion(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	var req CreateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.CreateQuestion(accountID, req.ManagerID, &entity.Question{
		Type:      req.Type,
		Category:  req.Category,
		Exercise:  req.Exercise,
		ImagePath: req.ImagePath,
	})
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.NewQuestionResponse(question, h.imageBaseURL))
}

// GetQuestions возвращает все вопросы учетной записи
func (h *QuestionHandler) GetQuestions(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)

	questions, err := h.questionService.GetQuestions(accountID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewListQuestionResponse(questions, h.imageBaseURL))
}

// GetQuestion возвращает вопрос по ID
func (h *QuestionHandler) GetQuestion(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	question, err := h.questionService.GetQuestion(accountID, questionID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question, h.imageBaseURL))
}

// UpdateQuestionRequest представляет запрос на обновление вопроса.
// Поля содержимого опциональны: обновляются только переданные.
type UpdateQuestionRequest struct {
	ManagerID uint           `json:"manager_id" binding:"required"`
	Type      string         `json:"type" binding:"omitempty,max=50"`
	Category  string         `json:"category" binding:"omitempty,max=50"`
	Exercise  datatypes.JSON `json:"exercise"`
	ImagePath string         `json:"image_path" binding:"omitempty,max=255"`
}

// UpdateQuestion обрабатывает запрос на частичное обновление вопроса
func (h *QuestionHandler) UpdateQuestion(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	var req UpdateQuestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	question, err := h.questionService.UpdateQuestion(accountID, req.ManagerID, questionID, &entity.Question{
		Type:      req.Type,
		Category:  req.Category,
		Exercise:  req.Exercise,
		ImagePath: req.ImagePath,
	})
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.NewQuestionResponse(question, h.imageBaseURL))
}

// DeleteQuestion удаляет вопрос учетной записи
func (h *QuestionHandler) DeleteQuestion(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	questionID := c.MustGet("questionID").(uint) // Получаем из контекста

	if err := h.questionService.DeleteQuestion(accountID, questionID); err != nil {
		h.handleQuestionError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Question deleted successfully"})
}

// ExportQuestions экспортирует вопросы учетной записи в CSV или Excel формате
// GET /api/questions/export?format=csv|xlsx
func (h *QuestionHandler) ExportQuestions(c *gin.Context) {
	accountID := c.MustGet(middleware.ContextAccountID).(uint)
	format := c.DefaultQuery("format", "csv")

	questions, err := h.questionService.GetQuestions(accountID)
	if err != nil {
		h.handleQuestionError(c, err)
		return
	}

	filename := fmt.Sprintf("questions_%d_%s", accountID, time.Now().Format("2006-01-02"))

	switch format {
	case "xlsx":
		h.exportXLSX(c, questions, filename)
	default:
		h.exportCSV(c, questions, filename)
	}
}

// exportCSV экспортирует вопросы в CSV с правильным экранированием спецсимволов
func (h *QuestionHandler) exportCSV(c *gin.Context, questions []entity.Question, filename string) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.csv\"", filename))

	// BOM для корректного отображения UTF-8 в Excel
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	// Используем encoding/csv для правильного экранирования запятых/кавычек
	writer := csv.NewWriter(c.Writer)
	defer writer.Flush()

	// Заголовки
	writer.Write([]string{"ID", "Тип", "Категория", "Упражнение", "Изображение", "Создано", "Обновлено"})

	// Данные
	for _, q := range questions {
		writer.Write([]string{
			strconv.FormatUint(uint64(q.ID), 10),
			sanitizeForExcel(q.Type),
			sanitizeForExcel(q.Category),
			sanitizeForExcel(string(q.Exercise)),
			sanitizeForExcel(q.ImagePath),
			q.CreatedAt.Format(time.RFC3339),
			q.UpdatedAt.Format(time.RFC3339),
		})
	}
}

// exportXLSX экспортирует вопросы в Excel с использованием StreamWriter
func (h *QuestionHandler) exportXLSX(c *gin.Context, questions []entity.Question, filename string) {
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=\"%s.xlsx\"", filename))

	f := excelize.NewFile()
	defer f.Close()

	sheetName := "Вопросы"
	f.SetSheetName("Sheet1", sheetName)

	sw, err := f.NewStreamWriter(sheetName)
	if err != nil {
		log.Printf("[QuestionHandler] Ошибка создания StreamWriter: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create Excel file"})
		return
	}

	// Заголовки
	headers := []interface{}{"ID", "Тип", "Категория", "Упражнение", "Изображение", "Создано", "Обновлено"}
	if err := sw.SetRow("A1", headers); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи заголовков: %v", err)
	}

	// Данные
	for i, q := range questions {
		rowNum := i + 2 // Начинаем с 2 строки (1 - заголовки)
		cell := fmt.Sprintf("A%d", rowNum)

		row := []interface{}{
			q.ID,
			sanitizeForExcel(q.Type),
			sanitizeForExcel(q.Category),
			sanitizeForExcel(string(q.Exercise)),
			sanitizeForExcel(q.ImagePath),
			q.CreatedAt.Format(time.RFC3339),
			q.UpdatedAt.Format(time.RFC3339),
		}
		if err := sw.SetRow(cell, row); err != nil {
			log.Printf("[QuestionHandler] Ошибка записи строки %d: %v", rowNum, err)
		}
	}

	if err := sw.Flush(); err != nil {
		log.Printf("[QuestionHandler] Ошибка при Flush: %v", err)
	}

	// Записываем в response
	if err := f.Write(c.Writer); err != nil {
		log.Printf("[QuestionHandler] Ошибка записи Excel в response: %v", err)
	}
}

// sanitizeForExcel экранирует данные для защиты от formula injection в Excel/CSV
func sanitizeForExcel(s string) string {
	if len(s) == 0 {
		return s
	}
	// Символы, начинающие формулу в Excel/LibreOffice: = + - @ \t \r
	if s[0] == '=' || s[0] == '+' || s[0] == '-' || s[0] == '@' || s[0] == '\t' || s[0] == '\r' {
		return "'" + s
	}
	return s
}

// handleQuestionError преобразует ошибки сервиса в соответствующие HTTP-статусы
func (h *QuestionHandler) handleQuestionError(c *gin.Context, err error) {
	if errors.Is(err, apperrors.ErrNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrForbidden) {
		c.JSON(http.StatusForbidden, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrValidation) {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	} else if errors.Is(err, apperrors.ErrConflict) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	} else {
		log.Printf("ERROR: Internal server error in QuestionHandler: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}
