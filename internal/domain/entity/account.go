package entity

import (
	"log"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// Account представляет учетную запись, через которую с системой работают
// пациент и его опекуны (managers). Одна учетная запись — максимум один пациент.
type Account struct {
	ID        uint     `gorm:"primaryKey" json:"id"`
	Username  string   `gorm:"size:50;not null;uniqueIndex" json:"username"`
	Password  string   `gorm:"size:100;not null" json:"-"`
	PatientID *uint    `gorm:"uniqueIndex" json:"patient_id,omitempty"`
	Patient   *Patient `gorm:"foreignKey:PatientID" json:"patient,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// TableName определяет имя таблицы для GORM
func (Account) TableName() string {
	return "accounts"
}

// HasPatient возвращает true, если к учетной записи привязан пациент
func (a *Account) HasPatient() bool {
	return a.PatientID != nil
}

// BeforeSave хеширует пароль перед сохранением, только если он не является bcrypt-хешем
func (a *Account) BeforeSave(tx *gorm.DB) error {
	if len(a.Password) > 0 && !strings.HasPrefix(a.Password, "$2a$") &&
		!strings.HasPrefix(a.Password, "$2b$") && !strings.HasPrefix(a.Password, "$2y$") {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(a.Password), bcrypt.DefaultCost)
		if err != nil {
			log.Printf("[Account.BeforeSave] Ошибка при хешировании пароля для username=%s: %v", a.Username, err)
			return err
		}
		a.Password = string(hashedPassword)
	}
	return nil
}

// CheckPassword проверяет, соответствует ли переданный пароль хешу
func (a *Account) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(a.Password), []byte(password))
	return err == nil
}
