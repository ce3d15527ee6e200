package leitner

import (
	"fmt"
	"time"

	"github.com/yourusername/memora-api/internal/domain/entity"
)

// Constants for default values
const (
	DefaultQuestionsPerQuiz = 5
	MaxQuestionsPerQuiz     = 50
)

// Config содержит параметры планировщика Лейтнера.
// Таблица задержек передается явно при конструировании сервиса, а не читается
// из глобального состояния: так политику коробок можно тестировать на
// синтетических таблицах (например, все задержки = 0).
type Config struct {
	// BoxDelays — задержки в днях по коробкам; индекс 0 соответствует коробке 1.
	// Длина обязана совпадать с entity.MaxBoxNumber.
	BoxDelays []int

	// QuestionsPerQuiz — размер квиза по умолчанию, если клиент не указал свой
	QuestionsPerQuiz int

	// MaxQuestions — верхняя граница размера квиза, запрошенного клиентом
	MaxQuestions int
}

// DefaultConfig возвращает конфигурацию по умолчанию:
// классическая сетка Лейтнера 1, 2, 3, 4, 7, 14, 30 дней для коробок 1–7
func DefaultConfig() *Config {
	return &Config{
		BoxDelays:        []int{1, 2, 3, 4, 7, 14, 30},
		QuestionsPerQuiz: DefaultQuestionsPerQuiz,
		MaxQuestions:     MaxQuestionsPerQuiz,
	}
}

// Validate проверяет согласованность конфигурации с границами коробок
func (c *Config) Validate() error {
	if len(c.BoxDelays) != entity.MaxBoxNumber {
		return fmt.Errorf("leitner config: expected %d box delays, got %d", entity.MaxBoxNumber, len(c.BoxDelays))
	}
	for i, d := range c.BoxDelays {
		if d < 0 {
			return fmt.Errorf("leitner config: delay for box %d must be >= 0, got %d", i+1, d)
		}
	}
	if c.QuestionsPerQuiz <= 0 {
		return fmt.Errorf("leitner config: QuestionsPerQuiz must be positive")
	}
	if c.MaxQuestions < c.QuestionsPerQuiz {
		return fmt.Errorf("leitner config: MaxQuestions must be >= QuestionsPerQuiz")
	}
	return nil
}

// Delay возвращает задержку повторения для коробки boxNumber
func (c *Config) Delay(boxNumber int) time.Duration {
	if boxNumber < entity.MinBoxNumber || boxNumber > len(c.BoxDelays) {
		return 0
	}
	return time.Duration(c.BoxDelays[boxNumber-1]) * 24 * time.Hour
}

// Parameters материализует таблицу задержек для засеивания в хранилище
func (c *Config) Parameters() []entity.LeitnerParameter {
	params := make([]entity.LeitnerParameter, 0, len(c.BoxDelays))
	for i, d := range c.BoxDelays {
		params = append(params, entity.LeitnerParameter{
			BoxNumber: i + 1,
			DelayDays: d,
		})
	}
	return params
}
