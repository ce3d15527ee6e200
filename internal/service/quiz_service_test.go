package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yourusername/memora-api/internal/domain/entity"
	"github.com/yourusername/memora-api/internal/domain/repository"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
	"github.com/yourusername/memora-api/internal/service/leitner"
)

// ============================================================================
// Моки репозиториев для QuizService
// ============================================================================

// MockQuizRepository реализует repository.QuizRepository
type MockQuizRepository struct {
	mock.Mock
}

func (m *MockQuizRepository) GetByID(id uint) (*entity.Quiz, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetLatestByPatient(patientID uint) (*entity.Quiz, error) {
	args := m.Called(patientID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Quiz), args.Error(1)
}

func (m *MockQuizRepository) GetAssignments(quizID uint) ([]entity.QuizQuestion, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizQuestion), args.Error(1)
}

func (m *MockQuizRepository) GetUnansweredAssignments(quizID uint) ([]entity.QuizQuestion, error) {
	args := m.Called(quizID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.QuizQuestion), args.Error(1)
}

func (m *MockQuizRepository) CreateWithAssignments(quiz *entity.Quiz, assignments []entity.QuizQuestion) error {
	args := m.Called(quiz, assignments)
	return args.Error(0)
}

func (m *MockQuizRepository) SubmitAnswer(quizID, questionID uint, result *entity.Result) error {
	args := m.Called(quizID, questionID, result)
	return args.Error(0)
}

// MockQuestionRepository реализует repository.QuestionRepository
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) Create(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) GetByID(id uint) (*entity.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) GetByAccountID(accountID uint) ([]entity.Question, error) {
	args := m.Called(accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) Update(question *entity.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuestionRepository) ListNeverPresented(accountID uint, limit int) ([]entity.Question, error) {
	args := m.Called(accountID, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Question), args.Error(1)
}

func (m *MockQuestionRepository) ListDueForReview(accountID uint, now time.Time, limit int) ([]repository.ReviewCandidate, error) {
	args := m.Called(accountID, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]repository.ReviewCandidate), args.Error(1)
}

// MockAccountRepository реализует repository.AccountRepository
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) Create(account *entity.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockAccountRepository) GetByID(id uint) (*entity.Account, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) GetByUsername(username string) (*entity.Account, error) {
	args := m.Called(username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Account), args.Error(1)
}

func (m *MockAccountRepository) Update(account *entity.Account) error {
	args := m.Called(account)
	return args.Error(0)
}

func (m *MockAccountRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

// ============================================================================
// Хелперы
// ============================================================================

func uintPtr(v uint) *uint { return &v }

func accountWithPatient(accountID, patientID uint) *entity.Account {
	return &entity.Account{ID: accountID, Username: "patient1", PatientID: uintPtr(patientID)}
}

func newQuizServiceForTest(t *testing.T) (*QuizService, *MockQuizRepository, *MockQuestionRepository, *MockAccountRepository) {
	t.Helper()
	quizRepo := new(MockQuizRepository)
	questionRepo := new(MockQuestionRepository)
	accountRepo := new(MockAccountRepository)
	svc := NewQuizService(quizRepo, questionRepo, accountRepo, leitner.DefaultConfig())
	return svc, quizRepo, questionRepo, accountRepo
}

// ============================================================================
// GetOrCreateQuiz
// ============================================================================

func TestGetOrCreateQuiz_AccountWithoutPatient(t *testing.T) {
	svc, _, _, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(&entity.Account{ID: 1, Username: "nopatient"}, nil)

	quiz, err := svc.GetOrCreateQuiz(1, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrInvalidState)
	assert.Nil(t, quiz)
}

func TestGetOrCreateQuiz_ResumesIncompleteQuiz(t *testing.T) {
	svc, quizRepo, _, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)

	latest := &entity.Quiz{ID: 42, PatientID: 10}
	pending := []entity.QuizQuestion{
		{QuestionID: 7, QuizID: 42, BoxNumber: 1, Question: &entity.Question{ID: 7}},
		{QuestionID: 9, QuizID: 42, BoxNumber: 3, Question: &entity.Question{ID: 9}},
	}
	quizRepo.On("GetLatestByPatient", uint(10)).Return(latest, nil)
	quizRepo.On("GetUnansweredAssignments", uint(42)).Return(pending, nil)

	// Повторные вызовы при незавершенном квизе возвращают один и тот же квиз
	// с тем же набором вопросов, не создавая новый
	first, err := svc.GetOrCreateQuiz(1, 5)
	require.NoError(t, err)
	second, err := svc.GetOrCreateQuiz(1, 5)
	require.NoError(t, err)

	assert.Equal(t, uint(42), first.ID)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, first.Assignments, second.Assignments)
	assert.Len(t, first.Assignments, 2)
	quizRepo.AssertNotCalled(t, "CreateWithAssignments", mock.Anything, mock.Anything)
}

func TestGetOrCreateQuiz_NeverPresentedTakesPriority(t *testing.T) {
	svc, quizRepo, questionRepo, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetLatestByPatient", uint(10)).Return(nil, apperrors.ErrNotFound)

	// Три новых вопроса при запросе на 2: повторение не должно запрашиваться вовсе
	fresh := []entity.Question{{ID: 1, AccountID: 1}, {ID: 2, AccountID: 1}}
	questionRepo.On("ListNeverPresented", uint(1), 2).Return(fresh, nil)

	quizRepo.On("CreateWithAssignments", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Quiz).ID = 100
		}).
		Return(nil)

	quiz, err := svc.GetOrCreateQuiz(1, 2)

	require.NoError(t, err)
	require.Len(t, quiz.Assignments, 2)
	for _, a := range quiz.Assignments {
		assert.Equal(t, entity.MinBoxNumber, a.BoxNumber, "новые вопросы начинают с первой коробки")
	}
	questionRepo.AssertNotCalled(t, "ListDueForReview", mock.Anything, mock.Anything, mock.Anything)
}

func TestGetOrCreateQuiz_FillsRemainingSlotsWithDueQuestions(t *testing.T) {
	svc, quizRepo, questionRepo, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetLatestByPatient", uint(10)).Return(nil, apperrors.ErrNotFound)

	fresh := []entity.Question{{ID: 1, AccountID: 1}}
	questionRepo.On("ListNeverPresented", uint(1), 3).Return(fresh, nil)

	// Вопросы к повторению сохраняют коробку последнего показа
	due := []repository.ReviewCandidate{
		{Question: entity.Question{ID: 2, AccountID: 1}, BoxNumber: 2},
		{Question: entity.Question{ID: 3, AccountID: 1}, BoxNumber: 5},
	}
	questionRepo.On("ListDueForReview", uint(1), mock.AnythingOfType("time.Time"), 2).Return(due, nil)

	quizRepo.On("CreateWithAssignments", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Quiz).ID = 101
		}).
		Return(nil)

	quiz, err := svc.GetOrCreateQuiz(1, 3)

	require.NoError(t, err)
	require.Len(t, quiz.Assignments, 3)
	assert.Equal(t, entity.MinBoxNumber, quiz.Assignments[0].BoxNumber)
	assert.Equal(t, 2, quiz.Assignments[1].BoxNumber)
	assert.Equal(t, 5, quiz.Assignments[2].BoxNumber)
}

func TestGetOrCreateQuiz_NoQuizAvailable(t *testing.T) {
	svc, quizRepo, questionRepo, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetLatestByPatient", uint(10)).Return(nil, apperrors.ErrNotFound)

	// Ни новых вопросов, ни готовых к повторению (задержки не истекли)
	questionRepo.On("ListNeverPresented", uint(1), 5).Return([]entity.Question{}, nil)
	questionRepo.On("ListDueForReview", uint(1), mock.AnythingOfType("time.Time"), 5).
		Return([]repository.ReviewCandidate{}, nil)

	quiz, err := svc.GetOrCreateQuiz(1, 5)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, quiz)
	quizRepo.AssertNotCalled(t, "CreateWithAssignments", mock.Anything, mock.Anything)
}

func TestGetOrCreateQuiz_LatestQuizFullyAnsweredBuildsNew(t *testing.T) {
	svc, quizRepo, questionRepo, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)

	latest := &entity.Quiz{ID: 42, PatientID: 10}
	quizRepo.On("GetLatestByPatient", uint(10)).Return(latest, nil)
	quizRepo.On("GetUnansweredAssignments", uint(42)).Return([]entity.QuizQuestion{}, nil)

	questionRepo.On("ListNeverPresented", uint(1), 5).Return([]entity.Question{{ID: 4, AccountID: 1}}, nil)
	questionRepo.On("ListDueForReview", uint(1), mock.AnythingOfType("time.Time"), 4).
		Return([]repository.ReviewCandidate{}, nil)

	quizRepo.On("CreateWithAssignments", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Quiz).ID = 43
		}).
		Return(nil)

	quiz, err := svc.GetOrCreateQuiz(1, 5)

	require.NoError(t, err)
	assert.Equal(t, uint(43), quiz.ID)
	assert.Len(t, quiz.Assignments, 1)
}

func TestGetOrCreateQuiz_DefaultCount(t *testing.T) {
	svc, quizRepo, questionRepo, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetLatestByPatient", uint(10)).Return(nil, apperrors.ErrNotFound)

	// count <= 0 заменяется размером по умолчанию из конфигурации
	questionRepo.On("ListNeverPresented", uint(1), leitner.DefaultQuestionsPerQuiz).
		Return([]entity.Question{{ID: 1, AccountID: 1}}, nil)
	questionRepo.On("ListDueForReview", uint(1), mock.AnythingOfType("time.Time"), leitner.DefaultQuestionsPerQuiz-1).
		Return([]repository.ReviewCandidate{}, nil)
	quizRepo.On("CreateWithAssignments", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.GetOrCreateQuiz(1, 0)

	require.NoError(t, err)
	questionRepo.AssertExpectations(t)
}

// ============================================================================
// GetQuizByID
// ============================================================================

func TestGetQuizByID_ForbiddenForForeignPatient(t *testing.T) {
	svc, quizRepo, _, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetByID", uint(42)).Return(&entity.Quiz{ID: 42, PatientID: 99}, nil)

	quiz, err := svc.GetQuizByID(1, 42)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Nil(t, quiz)
}

func TestGetQuizByID_ReturnsAllAssignments(t *testing.T) {
	svc, quizRepo, _, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetByID", uint(42)).Return(&entity.Quiz{ID: 42, PatientID: 10}, nil)

	resultID := uint(5)
	assignments := []entity.QuizQuestion{
		{QuestionID: 7, QuizID: 42, ResultID: &resultID, BoxNumber: 2, Question: &entity.Question{ID: 7}},
		{QuestionID: 9, QuizID: 42, BoxNumber: 1, Question: &entity.Question{ID: 9}},
	}
	quizRepo.On("GetAssignments", uint(42)).Return(assignments, nil)

	quiz, err := svc.GetQuizByID(1, 42)

	require.NoError(t, err)
	// Возвращаются и отвеченные, и неотвеченные назначения
	assert.Len(t, quiz.Assignments, 2)
}

// ============================================================================
// SubmitAnswer
// ============================================================================

func TestSubmitAnswer_Success(t *testing.T) {
	svc, quizRepo, _, accountRepo := newQuizServiceForTest(t)
	answeredAt := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return answeredAt }

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetByID", uint(42)).Return(&entity.Quiz{ID: 42, PatientID: 10}, nil)
	quizRepo.On("SubmitAnswer", uint(42), uint(7), mock.AnythingOfType("*entity.Result")).
		Run(func(args mock.Arguments) {
			args.Get(2).(*entity.Result).ID = 5
		}).
		Return(nil)

	data := datatypes.JSON([]byte(`{"answer":"Paris"}`))
	result, err := svc.SubmitAnswer(1, 42, 7, data, true)

	require.NoError(t, err)
	assert.Equal(t, uint(5), result.ID)
	assert.True(t, result.IsCorrect)
	assert.Equal(t, answeredAt, result.AnsweredAt)
	assert.Equal(t, data, result.Data)
}

func TestSubmitAnswer_ForbiddenForForeignQuiz(t *testing.T) {
	svc, quizRepo, _, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetByID", uint(42)).Return(&entity.Quiz{ID: 42, PatientID: 99}, nil)

	result, err := svc.SubmitAnswer(1, 42, 7, nil, true)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Nil(t, result)
	quizRepo.AssertNotCalled(t, "SubmitAnswer", mock.Anything, mock.Anything, mock.Anything)
}

func TestSubmitAnswer_ConflictOnDoubleSubmit(t *testing.T) {
	svc, quizRepo, _, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetByID", uint(42)).Return(&entity.Quiz{ID: 42, PatientID: 10}, nil)
	quizRepo.On("SubmitAnswer", uint(42), uint(7), mock.Anything).Return(apperrors.ErrConflict)

	result, err := svc.SubmitAnswer(1, 42, 7, datatypes.JSON([]byte(`{}`)), false)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrConflict)
	assert.Nil(t, result)
}

func TestSubmitAnswer_NotFoundForUnknownAssignment(t *testing.T) {
	svc, quizRepo, _, accountRepo := newQuizServiceForTest(t)

	accountRepo.On("GetByID", uint(1)).Return(accountWithPatient(1, 10), nil)
	quizRepo.On("GetByID", uint(42)).Return(&entity.Quiz{ID: 42, PatientID: 10}, nil)
	quizRepo.On("SubmitAnswer", uint(42), uint(777), mock.Anything).Return(apperrors.ErrNotFound)

	result, err := svc.SubmitAnswer(1, 42, 777, nil, true)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
	assert.Nil(t, result)
}
