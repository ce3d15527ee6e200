package entity

import (
	"time"
)

// Manager представляет опекуна пациента (родственник, сиделка и т.д.),
// который создает и редактирует вопросы от имени учетной записи.
type Manager struct {
	ID             uint   `gorm:"primaryKey" json:"id"`
	AccountID      uint   `gorm:"not null;index" json:"account_id"`
	FirstName      string `gorm:"size:100;not null" json:"firstname"`
	LastName       string `gorm:"size:100;not null" json:"lastname"`
	Email          string `gorm:"size:100;not null;uniqueIndex" json:"email"`
	Relationship   string `gorm:"size:50;not null;default:''" json:"relationship"`
	ProfilePicture string `gorm:"size:255;not null;default:''" json:"profile_picture"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Manager) TableName() string {
	return "managers"
}

// BelongsTo проверяет, принадлежит ли менеджер учетной записи
func (m *Manager) BelongsTo(accountID uint) bool {
	return m.AccountID == accountID
}
