package postgres

import (
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/yourusername/memora-api/internal/domain/entity"
)

// LeitnerRepo реализует repository.LeitnerRepository
type LeitnerRepo struct {
	db *gorm.DB
}

// NewLeitnerRepo создает новый репозиторий таблицы задержек Лейтнера
func NewLeitnerRepo(db *gorm.DB) *LeitnerRepo {
	return &LeitnerRepo{db: db}
}

// Seed записывает таблицу задержек (upsert по box_number).
// Запрос ListDueForReview джойнит эту таблицу, поэтому она должна быть
// засеяна до первого обращения к планировщику.
func (r *LeitnerRepo) Seed(parameters []entity.LeitnerParameter) error {
	if len(parameters) == 0 {
		return fmt.Errorf("leitner parameters must not be empty")
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "box_number"}},
		DoUpdates: clause.AssignmentColumns([]string{"delay_days"}),
	}).Create(&parameters).Error
}
