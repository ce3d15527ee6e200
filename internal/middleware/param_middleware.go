package middleware

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
)

// ExtractUintParam разбирает числовой параметр пути и кладет его в контекст Gin
// под ключом contextKey (как uint). Невалидное значение прерывает запрос
// с кодом 400, поэтому хендлеры читают ключ через c.MustGet без проверок.
func ExtractUintParam(param, contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		value, err := strconv.ParseUint(c.Param(param), 10, 32)
		if err != nil {
			abortInvalidParam(c, param)
			return
		}
		c.Set(contextKey, uint(value))
		c.Next()
	}
}

// ExtractQuestionCount разбирает параметр :count — запрошенный размер квиза.
// Ноль допустим и означает "размер по умолчанию": подстановку значения по
// умолчанию и верхнюю границу применяет сервис квизов, здесь отсекаются
// только нечисловые и отрицательные значения.
func ExtractQuestionCount(contextKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		count, err := strconv.Atoi(c.Param("count"))
		if err != nil || count < 0 {
			abortInvalidParam(c, "count")
			return
		}
		c.Set(contextKey, count)
		c.Next()
	}
}

func abortInvalidParam(c *gin.Context, param string) {
	c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("Invalid %s", param)})
	c.Abort()
}
