package entity

// Границы коробок Лейтнера. Номер коробки определяет, сколько дней должно
// пройти с последнего показа, прежде чем вопрос снова станет доступен для повторения.
const (
	MinBoxNumber = 1
	MaxBoxNumber = 7
)

// QuizQuestion представляет назначение: один показ одного вопроса в рамках одного квиза.
// ResultID устанавливается ровно один раз — повторный ответ на то же назначение отклоняется.
type QuizQuestion struct {
	QuestionID uint      `gorm:"primaryKey;autoIncrement:false" json:"question_id"`
	QuizID     uint      `gorm:"primaryKey;autoIncrement:false" json:"quiz_id"`
	ResultID   *uint     `gorm:"uniqueIndex" json:"result_id,omitempty"`
	BoxNumber  int       `gorm:"not null;default:1" json:"box_number"`
	Question   *Question `gorm:"foreignKey:QuestionID" json:"question,omitempty"`
	Result     *Result   `gorm:"foreignKey:ResultID" json:"result,omitempty"`
}

// TableName определяет имя таблицы для GORM
func (QuizQuestion) TableName() string {
	return "quiz_questions"
}

// IsAnswered возвращает true, если на назначение уже записан результат
func (qq *QuizQuestion) IsAnswered() bool {
	return qq.ResultID != nil
}

// NextBoxNumber вычисляет номер коробки после ответа: правильный ответ
// продвигает вопрос на коробку выше (не выше MaxBoxNumber), любой
// неправильный — полный сброс в первую коробку.
func (qq *QuizQuestion) NextBoxNumber(isCorrect bool) int {
	if !isCorrect {
		return MinBoxNumber
	}
	if qq.BoxNumber >= MaxBoxNumber {
		return MaxBoxNumber
	}
	if qq.BoxNumber < MinBoxNumber {
		// Защита от испорченных данных: коробка не может быть меньше первой
		return MinBoxNumber + 1
	}
	return qq.BoxNumber + 1
}
