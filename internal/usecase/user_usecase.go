package usecase

import (
	"errors"
	"fmt"

	"carhive/internal/entity"
	"carhive/internal/repo/persistent"
	"carhive/pkg/logger"
	"carhive/pkg/pagination"

	"gorm.io/gorm"
)

type CreateUserInput struct {
	Username  string
	City      string
	AvatarURL string
}

type UpdateUserInput struct {
	Username  *string
	City      *string
	AvatarURL *string
}

type UserUseCase interface {
	List(term, city string, w pagination.Window) ([]*entity.User, error)
	Search(term string) ([]*entity.User, error)
	GetByID(userID string) (*entity.User, error)
	GetViewed(userID string) ([]*entity.User, error)
	Create(input CreateUserInput) (*entity.User, error)
	Update(userID string, input UpdateUserInput) (*entity.User, error)
	Delete(userID string) error
}

type userUseCase struct {
	userRepo persistent.UserRepository
	logger   *logger.Logger
}

func NewUserUseCase(userRepo persistent.UserRepository, log *logger.Logger) UserUseCase {
	return &userUseCase{
		userRepo: userRepo,
		logger:   log,
	}
}

func (uc *userUseCase) List(term, city string, w pagination.Window) ([]*entity.User, error) {
	return uc.userRepo.List(term, city, w.Limit, w.Offset)
}

func (uc *userUseCase) Search(term string) ([]*entity.User, error) {
	users, err := uc.userRepo.Search(term)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return users, nil
}

func (uc *userUseCase) GetByID(userID string) (*entity.User, error) {
	user, err := uc.userRepo.GetByID(userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return user, err
}

func (uc *userUseCase) GetViewed(userID string) ([]*entity.User, error) {
	users, err := uc.userRepo.ListViewed(userID)
	if err != nil {
		return nil, err
	}
	if len(users) == 0 {
		return nil, ErrNotFound
	}
	return users, nil
}

func (uc *userUseCase) Create(input CreateUserInput) (*entity.User, error) {
	user := &entity.User{
		Username:  input.Username,
		City:      input.City,
		AvatarURL: input.AvatarURL,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}
	return user, nil
}

func (uc *userUseCase) Update(userID string, input UpdateUserInput) (*entity.User, error) {
	user, err := uc.GetByID(userID)
	if err != nil {
		return nil, err
	}

	if input.Username != nil {
		user.Username = *input.Username
	}
	if input.City != nil {
		user.City = *input.City
	}
	if input.AvatarURL != nil {
		user.AvatarURL = *input.AvatarURL
	}

	if err := uc.userRepo.Update(user); err != nil {
		return nil, err
	}
	return user, nil
}

func (uc *userUseCase) Delete(userID string) error {
	exists, err := uc.userRepo.Exists(userID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return uc.userRepo.Delete(userID)
}
