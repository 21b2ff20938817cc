package usecase

import (
	"carhive/internal/entity"
	"carhive/internal/repo/persistent"
)

type OtherUseCase interface {
	Banners() ([]*entity.Banner, error)
	Notifications(userID string) ([]*entity.Notification, error)
}

type otherUseCase struct {
	otherRepo persistent.OtherRepository
}

func NewOtherUseCase(otherRepo persistent.OtherRepository) OtherUseCase {
	return &otherUseCase{otherRepo: otherRepo}
}

func (uc *otherUseCase) Banners() ([]*entity.Banner, error) {
	banners, err := uc.otherRepo.Banners()
	if err != nil {
		return nil, err
	}
	if len(banners) == 0 {
		return nil, ErrNotFound
	}
	return banners, nil
}

func (uc *otherUseCase) Notifications(userID string) ([]*entity.Notification, error) {
	notifications, err := uc.otherRepo.Notifications(userID)
	if err != nil {
		return nil, err
	}
	if len(notifications) == 0 {
		return nil, ErrNotFound
	}
	return notifications, nil
}
