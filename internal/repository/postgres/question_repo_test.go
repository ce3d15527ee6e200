package postgres

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/service/leitner"
)

// newQuestionTestDB создает in-memory хранилище со схемой вопросов/квизов
// и засеянной таблицей задержек Лейтнера (1, 2, 3, 4, 7, 14, 30 дней)
func newQuestionTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	require.NoError(t, db.AutoMigrate(
		&entity.Question{},
		&entity.Quiz{},
		&entity.Result{},
		&entity.QuizQuestion{},
		&entity.LeitnerParameter{},
	))
	require.NoError(t, NewLeitnerRepo(db).Seed(leitner.DefaultConfig().Parameters()))
	return db
}

func seedQuestion(t *testing.T, db *gorm.DB, accountID uint) *entity.Question {
	t.Helper()
	question := &entity.Question{
		AccountID: accountID,
		Type:      "text",
		Category:  "семья",
		Exercise:  datatypes.JSON([]byte(`{"question": "Как зовут вашу дочь?", "answer": "Анна"}`)),
	}
	require.NoError(t, db.Create(question).Error)
	return question
}

func seedQuiz(t *testing.T, db *gorm.DB, patientID uint, createdAt time.Time) *entity.Quiz {
	t.Helper()
	quiz := &entity.Quiz{PatientID: patientID, CreatedAt: createdAt}
	require.NoError(t, db.Create(quiz).Error)
	return quiz
}

func seedAssignment(t *testing.T, db *gorm.DB, quizID, questionID uint, boxNumber int) {
	t.Helper()
	require.NoError(t, db.Create(&entity.QuizQuestion{
		QuestionID: questionID,
		QuizID:     quizID,
		BoxNumber:  boxNumber,
	}).Error)
}

func candidateIDs(candidates []entity.Question) []uint {
	ids := make([]uint, 0, len(candidates))
	for _, q := range candidates {
		ids = append(ids, q.ID)
	}
	return ids
}

// Вопрос во второй коробке (задержка 2 дня): показанный сутки назад еще
// недоступен, показанный ровно двое суток назад — доступен, показанный
// на секунду позже границы — еще нет.
func TestListDueForReview_TimeGate(t *testing.T) {
	db := newQuestionTestDB(t)
	repo := NewQuestionRepo(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	early := seedQuestion(t, db, 1)
	seedAssignment(t, db, seedQuiz(t, db, 1, now.Add(-24*time.Hour)).ID, early.ID, 2)

	due := seedQuestion(t, db, 1)
	seedAssignment(t, db, seedQuiz(t, db, 1, now.Add(-48*time.Hour)).ID, due.ID, 2)

	almostDue := seedQuestion(t, db, 1)
	seedAssignment(t, db, seedQuiz(t, db, 1, now.Add(-48*time.Hour+time.Second)).ID, almostDue.ID, 2)

	candidates, err := repo.ListDueForReview(1, now, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, due.ID, candidates[0].Question.ID)
	assert.Equal(t, 2, candidates[0].BoxNumber)

	// Спустя еще двое суток задержка истекла у всех трех
	candidates, err = repo.ListDueForReview(1, now.Add(48*time.Hour), 10)
	require.NoError(t, err)
	assert.Len(t, candidates, 3)
}

// Порядок выдачи: коробки по возрастанию, внутри коробки более давние показы
// раньше, при одинаковом квизе — по возрастанию id вопроса. Limit отсекает
// наименее приоритетных.
func TestListDueForReview_Ordering(t *testing.T) {
	db := newQuestionTestDB(t)
	repo := NewQuestionRepo(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	higherBox := seedQuestion(t, db, 1)
	older := seedQuestion(t, db, 1)
	newerA := seedQuestion(t, db, 1)
	newerB := seedQuestion(t, db, 1)

	// Все задержки давно истекли; приоритет определяется только порядком
	seedAssignment(t, db, seedQuiz(t, db, 1, now.Add(-40*24*time.Hour)).ID, higherBox.ID, 3)
	seedAssignment(t, db, seedQuiz(t, db, 1, now.Add(-20*24*time.Hour)).ID, older.ID, 1)

	sharedQuiz := seedQuiz(t, db, 1, now.Add(-10*24*time.Hour))
	seedAssignment(t, db, sharedQuiz.ID, newerA.ID, 1)
	seedAssignment(t, db, sharedQuiz.ID, newerB.ID, 1)

	candidates, err := repo.ListDueForReview(1, now, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 4)

	got := make([]uint, 0, len(candidates))
	for _, c := range candidates {
		got = append(got, c.Question.ID)
	}
	assert.Equal(t, []uint{older.ID, newerA.ID, newerB.ID, higherBox.ID}, got)

	limited, err := repo.ListDueForReview(1, now, 2)
	require.NoError(t, err)
	require.Len(t, limited, 2)
	assert.Equal(t, older.ID, limited[0].Question.ID)
	assert.Equal(t, newerA.ID, limited[1].Question.ID)
}

// Коробку и задержку вопроса определяет только его последнее назначение
func TestListDueForReview_LatestAssignmentGoverns(t *testing.T) {
	db := newQuestionTestDB(t)
	repo := NewQuestionRepo(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	// Старое назначение в первой коробке давно истекло, но последнее
	// перевело вопрос в пятую (задержка 7 дней) только вчера
	promoted := seedQuestion(t, db, 1)
	seedAssignment(t, db, seedQuiz(t, db, 1, now.Add(-30*24*time.Hour)).ID, promoted.ID, 1)
	seedAssignment(t, db, seedQuiz(t, db, 1, now.Add(-24*time.Hour)).ID, promoted.ID, 5)

	// Обратная ситуация: сброшен из пятой коробки в первую два дня назад
	demoted := seedQuestion(t, db, 1)
	seedAssignment(t, db, seedQuiz(t, db, 1, now.Add(-60*24*time.Hour)).ID, demoted.ID, 5)
	seedAssignment(t, db, seedQuiz(t, db, 1, now.Add(-48*time.Hour)).ID, demoted.ID, 1)

	candidates, err := repo.ListDueForReview(1, now, 10)
	require.NoError(t, err)
	require.Len(t, candidates, 1)
	assert.Equal(t, demoted.ID, candidates[0].Question.ID)
	assert.Equal(t, 1, candidates[0].BoxNumber)
}

func TestListDueForReview_FiltersByAccount(t *testing.T) {
	db := newQuestionTestDB(t)
	repo := NewQuestionRepo(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	foreign := seedQuestion(t, db, 2)
	seedAssignment(t, db, seedQuiz(t, db, 2, now.Add(-10*24*time.Hour)).ID, foreign.ID, 1)

	candidates, err := repo.ListDueForReview(1, now, 10)
	require.NoError(t, err)
	assert.Empty(t, candidates)
}

func TestListNeverPresented(t *testing.T) {
	db := newQuestionTestDB(t)
	repo := NewQuestionRepo(db)
	now := time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

	fresh := seedQuestion(t, db, 1)
	presented := seedQuestion(t, db, 1)
	freshLater := seedQuestion(t, db, 1)
	seedQuestion(t, db, 2) // чужая учетная запись

	seedAssignment(t, db, seedQuiz(t, db, 1, now).ID, presented.ID, 1)

	questions, err := repo.ListNeverPresented(1, 10)
	require.NoError(t, err)
	assert.Equal(t, []uint{fresh.ID, freshLater.ID}, candidateIDs(questions))

	limited, err := repo.ListNeverPresented(1, 1)
	require.NoError(t, err)
	require.Len(t, limited, 1)
	assert.Equal(t, fresh.ID, limited[0].ID)
}
