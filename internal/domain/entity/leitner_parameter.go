package entity

// LeitnerParameter — строка статической таблицы задержек: минимальное число
// дней, которое должно пройти с последнего показа вопроса в данной коробке,
// прежде чем он снова станет доступен для повторения.
// Таблица засеивается при старте приложения и после этого только читается.
type LeitnerParameter struct {
	BoxNumber int `gorm:"primaryKey;autoIncrement:false" json:"box_number"`
	DelayDays int `gorm:"not null" json:"delay_days"`
}

// TableName определяет имя таблицы для GORM
func (LeitnerParameter) TableName() string {
	return "leitner_parameters"
}
