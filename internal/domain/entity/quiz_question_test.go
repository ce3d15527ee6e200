package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestQuizQuestion_NextBoxNumber_CorrectAnswerPromotes(t *testing.T) {
	// Arrange
	qq := &QuizQuestion{QuestionID: 1, QuizID: 1, BoxNumber: 2}

	// Act & Assert
	assert.Equal(t, 3, qq.NextBoxNumber(true), "правильный ответ должен продвигать вопрос на коробку выше")
}

func TestQuizQuestion_NextBoxNumber_NeverExceedsMaxBox(t *testing.T) {
	// Повышение никогда не выводит вопрос за пределы последней коробки,
	// сколько бы правильных ответов подряд ни было
	qq := &QuizQuestion{BoxNumber: MinBoxNumber}
	for i := 0; i < 20; i++ {
		qq.BoxNumber = qq.NextBoxNumber(true)
		assert.LessOrEqual(t, qq.BoxNumber, MaxBoxNumber, "номер коробки не должен превышать MaxBoxNumber")
	}
	assert.Equal(t, MaxBoxNumber, qq.BoxNumber)
}

func TestQuizQuestion_NextBoxNumber_IncorrectAnswerResetsToFirstBox(t *testing.T) {
	// Любой неправильный ответ — полный сброс в первую коробку, без частичного понижения
	for box := MinBoxNumber; box <= MaxBoxNumber; box++ {
		qq := &QuizQuestion{BoxNumber: box}
		assert.Equal(t, MinBoxNumber, qq.NextBoxNumber(false),
			"неправильный ответ из коробки %d должен сбрасывать в первую", box)
	}
}

func TestQuizQuestion_NextBoxNumber_CorruptedBoxRecovers(t *testing.T) {
	qq := &QuizQuestion{BoxNumber: 0}
	assert.Equal(t, MinBoxNumber+1, qq.NextBoxNumber(true))
	assert.Equal(t, MinBoxNumber, qq.NextBoxNumber(false))
}

func TestQuizQuestion_IsAnswered(t *testing.T) {
	resultID := uint(7)

	unanswered := &QuizQuestion{QuestionID: 1, QuizID: 1}
	answered := &QuizQuestion{QuestionID: 1, QuizID: 1, ResultID: &resultID}

	assert.False(t, unanswered.IsAnswered())
	assert.True(t, answered.IsAnswered())
}
