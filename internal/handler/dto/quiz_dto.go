package dto

import (
	"time"

	"gorm.io/datatypes"

	"github.com/yourusername/memora-api/internal/domain/entity"
)

// QuestionResponse представляет вопрос в формате для ответа клиенту.
// Поле exercise отдается как есть: его структура определяется типом вопроса
// и сервером не интерпретируется.
type QuestionResponse struct {
	ID        uint           `json:"id"`
	Type      string         `json:"type"`
	Category  string         `json:"category"`
	Exercise  datatypes.JSON `json:"exercise"`
	ImageURL  string         `json:"image_url,omitempty"`
	CreatedBy *uint          `json:"created_by,omitempty"`
	EditedBy  *uint          `json:"edited_by,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// ResultResponse представляет записанный ответ в формате для клиента
type ResultResponse struct {
	ID         uint           `json:"id"`
	Data       datatypes.JSON `json:"data"`
	IsCorrect  bool           `json:"is_correct"`
	AnsweredAt time.Time      `json:"answered_at"`
}

// QuizQuestionResponse представляет назначение вопроса в квизе:
// сам вопрос, номер коробки и результат, если ответ уже записан
type QuizQuestionResponse struct {
	QuestionID uint              `json:"question_id"`
	QuizID     uint              `json:"quiz_id"`
	BoxNumber  int               `json:"box_number"`
	Question   *QuestionResponse `json:"question,omitempty"`
	Result     *ResultResponse   `json:"result,omitempty"`
}

// QuizResponse представляет квиз с его назначениями
type QuizResponse struct {
	ID        uint                   `json:"id"`
	PatientID uint                   `json:"patient_id"`
	CreatedAt time.Time              `json:"created_at"`
	Questions []QuizQuestionResponse `json:"questions"`
}

// NewQuestionResponse создает DTO для вопроса.
// imageBaseURL — префикс публичного URL иллюстраций (например "/uploads");
// при пустом ImagePath поле image_url опускается.
func NewQuestionResponse(q *entity.Question, imageBaseURL string) *QuestionResponse {
	if q == nil {
		return nil
	}
	imageURL := ""
	if q.HasImage() {
		imageURL = imageBaseURL + "/" + q.ImagePath
	}
	return &QuestionResponse{
		ID:        q.ID,
		Type:      q.Type,
		Category:  q.Category,
		Exercise:  q.Exercise,
		ImageURL:  imageURL,
		CreatedBy: q.CreatedByID,
		EditedBy:  q.EditedByID,
		CreatedAt: q.CreatedAt,
		UpdatedAt: q.UpdatedAt,
	}
}

// NewResultResponse создает DTO для результата
func NewResultResponse(result *entity.Result) *ResultResponse {
	if result == nil {
		return nil
	}
	return &ResultResponse{
		ID:         result.ID,
		Data:       result.Data,
		IsCorrect:  result.IsCorrect,
		AnsweredAt: result.AnsweredAt,
	}
}

// NewQuizResponse создает DTO для квиза вместе с его назначениями
func NewQuizResponse(quiz *entity.Quiz, imageBaseURL string) *QuizResponse {
	if quiz == nil {
		return nil
	}

	questions := make([]QuizQuestionResponse, len(quiz.Assignments))
	for i, a := range quiz.Assignments {
		questions[i] = QuizQuestionResponse{
			QuestionID: a.QuestionID,
			QuizID:     a.QuizID,
			BoxNumber:  a.BoxNumber,
			Question:   NewQuestionResponse(a.Question, imageBaseURL),
			Result:     NewResultResponse(a.Result),
		}
	}

	return &QuizResponse{
		ID:        quiz.ID,
		PatientID: quiz.PatientID,
		CreatedAt: quiz.CreatedAt,
		Questions: questions,
	}
}

// NewListQuestionResponse создает слайс DTO для списка вопросов
func NewListQuestionResponse(questions []entity.Question, imageBaseURL string) []*QuestionResponse {
	list := make([]*QuestionResponse, len(questions))
	for i := range questions {
		list[i] = NewQuestionResponse(&questions[i], imageBaseURL)
	}
	return list
}
