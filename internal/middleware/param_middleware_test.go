package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newParamTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	return gin.New()
}

func TestExtractUintParam(t *testing.T) {
	router := newParamTestRouter()

	var got uint
	router.GET("/questions/:id", ExtractUintParam("id", "questionID"), func(c *gin.Context) {
		got = c.MustGet("questionID").(uint)
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/questions/42", nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, uint(42), got)

	// Нечисловое значение не доходит до хендлера
	w = httptest.NewRecorder()
	req, err = http.NewRequest(http.MethodGet, "/questions/abc", nil)
	require.NoError(t, err)
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Invalid id")
}

func TestExtractQuestionCount(t *testing.T) {
	router := newParamTestRouter()

	var got int
	router.GET("/quizzes/next/:count", ExtractQuestionCount("questionCount"), func(c *gin.Context) {
		got = c.MustGet("questionCount").(int)
		c.Status(http.StatusOK)
	})

	tests := []struct {
		name       string
		count      string
		wantStatus int
		wantCount  int
	}{
		{name: "явный размер", count: "10", wantStatus: http.StatusOK, wantCount: 10},
		{name: "ноль означает размер по умолчанию", count: "0", wantStatus: http.StatusOK, wantCount: 0},
		{name: "отрицательный отклоняется", count: "-1", wantStatus: http.StatusBadRequest},
		{name: "нечисловой отклоняется", count: "five", wantStatus: http.StatusBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got = -100
			w := httptest.NewRecorder()
			req, err := http.NewRequest(http.MethodGet, "/quizzes/next/"+tt.count, nil)
			require.NoError(t, err)
			router.ServeHTTP(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, tt.wantCount, got)
			} else {
				assert.Contains(t, w.Body.String(), "Invalid count")
			}
		})
	}
}
