package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"gorm.io/datatypes"

	"github.com/yourusername/memora-api/internal/domain/entity"
	apperrors "github.com/yourusername/memora-api/internal/pkg/errors"
)

// MockManagerRepository реализует repository.ManagerRepository
type MockManagerRepository struct {
	mock.Mock
}

func (m *MockManagerRepository) Create(manager *entity.Manager) error {
	args := m.Called(manager)
	return args.Error(0)
}

func (m *MockManagerRepository) GetByID(id uint) (*entity.Manager, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Manager), args.Error(1)
}

func (m *MockManagerRepository) GetByAccountID(accountID uint) ([]entity.Manager, error) {
	args := m.Called(accountID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]entity.Manager), args.Error(1)
}

func (m *MockManagerRepository) Update(manager *entity.Manager) error {
	args := m.Called(manager)
	return args.Error(0)
}

func (m *MockManagerRepository) Delete(id uint) error {
	args := m.Called(id)
	return args.Error(0)
}

func newQuestionServiceForTest(t *testing.T) (*QuestionService, *MockQuestionRepository, *MockManagerRepository) {
	t.Helper()
	questionRepo := new(MockQuestionRepository)
	managerRepo := new(MockManagerRepository)
	return NewQuestionService(questionRepo, managerRepo), questionRepo, managerRepo
}

func exerciseJSON() datatypes.JSON {
	return datatypes.JSON([]byte(`{"prompt":"Кто изображен на фото?","answer":"дочь Анна"}`))
}

func TestCreateQuestion_Success(t *testing.T) {
	svc, questionRepo, managerRepo := newQuestionServiceForTest(t)

	managerRepo.On("GetByID", uint(3)).Return(&entity.Manager{ID: 3, AccountID: 1}, nil)
	questionRepo.On("Create", mock.AnythingOfType("*entity.Question")).
		Run(func(args mock.Arguments) {
			args.Get(0).(*entity.Question).ID = 10
		}).
		Return(nil)

	question, err := svc.CreateQuestion(1, 3, &entity.Question{
		Type:     "photo_recognition",
		Category: "family",
		Exercise: exerciseJSON(),
	})

	require.NoError(t, err)
	assert.Equal(t, uint(1), question.AccountID)
	require.NotNil(t, question.CreatedByID)
	assert.Equal(t, uint(3), *question.CreatedByID)
	require.NotNil(t, question.EditedByID)
	assert.Equal(t, uint(3), *question.EditedByID)
}

func TestCreateQuestion_RequiresTypeAndExercise(t *testing.T) {
	svc, questionRepo, _ := newQuestionServiceForTest(t)

	_, err := svc.CreateQuestion(1, 3, &entity.Question{Category: "family"})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrValidation)
	questionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestCreateQuestion_ForeignManagerForbidden(t *testing.T) {
	svc, questionRepo, managerRepo := newQuestionServiceForTest(t)

	// Опекун принадлежит другой учетной записи
	managerRepo.On("GetByID", uint(3)).Return(&entity.Manager{ID: 3, AccountID: 99}, nil)

	_, err := svc.CreateQuestion(1, 3, &entity.Question{
		Type:     "photo_recognition",
		Exercise: exerciseJSON(),
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	questionRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestGetQuestion_ForeignAccountForbidden(t *testing.T) {
	svc, questionRepo, _ := newQuestionServiceForTest(t)

	questionRepo.On("GetByID", uint(10)).Return(&entity.Question{ID: 10, AccountID: 99}, nil)

	question, err := svc.GetQuestion(1, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	assert.Nil(t, question)
}

func TestUpdateQuestion_PartialUpdateKeepsIdentity(t *testing.T) {
	svc, questionRepo, managerRepo := newQuestionServiceForTest(t)

	managerRepo.On("GetByID", uint(4)).Return(&entity.Manager{ID: 4, AccountID: 1}, nil)
	creatorID := uint(3)
	questionRepo.On("GetByID", uint(10)).Return(&entity.Question{
		ID:          10,
		AccountID:   1,
		Type:        "photo_recognition",
		Category:    "family",
		Exercise:    exerciseJSON(),
		CreatedByID: &creatorID,
		EditedByID:  &creatorID,
	}, nil)
	questionRepo.On("Update", mock.AnythingOfType("*entity.Question")).Return(nil)

	updated, err := svc.UpdateQuestion(1, 4, 10, &entity.Question{Category: "friends"})

	require.NoError(t, err)
	// Идентичность вопроса неизменна: обновляется содержимое, а не ID
	assert.Equal(t, uint(10), updated.ID)
	assert.Equal(t, "friends", updated.Category)
	assert.Equal(t, "photo_recognition", updated.Type, "непереданные поля не меняются")
	require.NotNil(t, updated.CreatedByID)
	assert.Equal(t, creatorID, *updated.CreatedByID, "автор сохраняется")
	require.NotNil(t, updated.EditedByID)
	assert.Equal(t, uint(4), *updated.EditedByID, "редактор обновляется")
}

func TestDeleteQuestion_ForeignAccountForbidden(t *testing.T) {
	svc, questionRepo, _ := newQuestionServiceForTest(t)

	questionRepo.On("GetByID", uint(10)).Return(&entity.Question{ID: 10, AccountID: 99}, nil)

	err := svc.DeleteQuestion(1, 10)

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)
	questionRepo.AssertNotCalled(t, "Delete", mock.Anything)
}
