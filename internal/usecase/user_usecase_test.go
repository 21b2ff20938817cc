package usecase

import (
	"testing"

	"carhive/internal/entity"
	"carhive/pkg/logger"
	"carhive/pkg/pagination"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"
)

func newUserTestUseCase() (UserUseCase, *MockUserRepository) {
	userRepo := new(MockUserRepository)
	uc := NewUserUseCase(userRepo, logger.New())
	return uc, userRepo
}

func TestUserList_EmptyPageIsOK(t *testing.T) {
	uc, userRepo := newUserTestUseCase()

	userRepo.On("List", "nobody", "", 15, 0).Return([]*entity.User{}, nil)

	users, err := uc.List("nobody", "", pagination.Window{Page: 1, Limit: 15, Offset: 0})

	assert.NoError(t, err)
	assert.Empty(t, users)
}

func TestUserSearch_EmptyIsNotFound(t *testing.T) {
	uc, userRepo := newUserTestUseCase()

	userRepo.On("Search", "ghost").Return([]*entity.User{}, nil)

	users, err := uc.Search("ghost")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, users)
}

func TestUserGetByID_RecordNotFound(t *testing.T) {
	uc, userRepo := newUserTestUseCase()

	userRepo.On("GetByID", "user-x").Return(nil, gorm.ErrRecordNotFound)

	user, err := uc.GetByID("user-x")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, user)
}

func TestUserGetViewed_EmptyIsNotFound(t *testing.T) {
	uc, userRepo := newUserTestUseCase()

	userRepo.On("ListViewed", "user-1").Return([]*entity.User{}, nil)

	users, err := uc.GetViewed("user-1")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.Nil(t, users)
}

func TestUserUpdate_OnlyProvidedFieldsChange(t *testing.T) {
	uc, userRepo := newUserTestUseCase()

	existing := &entity.User{ID: "user-1", Username: "alice_drives", City: "Berlin"}
	userRepo.On("GetByID", "user-1").Return(existing, nil)
	userRepo.On("Update", mock.AnythingOfType("*entity.User")).Return(nil)

	city := "Munich"
	user, err := uc.Update("user-1", UpdateUserInput{City: &city})

	assert.NoError(t, err)
	assert.Equal(t, "Munich", user.City)
	assert.Equal(t, "alice_drives", user.Username)
}

func TestUserDelete_Missing(t *testing.T) {
	uc, userRepo := newUserTestUseCase()

	userRepo.On("Exists", "user-x").Return(false, nil)

	err := uc.Delete("user-x")

	assert.ErrorIs(t, err, ErrNotFound)
	userRepo.AssertNotCalled(t, "Delete", mock.Anything)
}

func TestUserDelete_Success(t *testing.T) {
	uc, userRepo := newUserTestUseCase()

	userRepo.On("Exists", "user-1").Return(true, nil)
	userRepo.On("Delete", "user-1").Return(nil)

	err := uc.Delete("user-1")

	assert.NoError(t, err)
	userRepo.AssertExpectations(t)
}
