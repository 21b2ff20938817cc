package persistent

import (
	"carhive/internal/entity"
	"carhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type OtherRepository interface {
	Banners() ([]*entity.Banner, error)
	Notifications(userID string) ([]*entity.Notification, error)
	CreateNotification(n *entity.Notification) error
}

type otherRepository struct {
	db *gorm.DB
}

func NewOtherRepository(db *gorm.DB) OtherRepository {
	return &otherRepository{db: db}
}

func (r *otherRepository) Banners() ([]*entity.Banner, error) {
	var bannerModels []model.BannerModel
	err := r.db.Where("active = ?", true).Order("position ASC").Find(&bannerModels).Error
	if err != nil {
		return nil, err
	}

	banners := make([]*entity.Banner, len(bannerModels))
	for i := range bannerModels {
		banners[i] = ToBannerEntity(&bannerModels[i])
	}
	return banners, nil
}

func (r *otherRepository) Notifications(userID string) ([]*entity.Notification, error) {
	var notificationModels []model.NotificationModel
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&notificationModels).Error
	if err != nil {
		return nil, err
	}

	notifications := make([]*entity.Notification, len(notificationModels))
	for i := range notificationModels {
		notifications[i] = ToNotificationEntity(&notificationModels[i])
	}
	return notifications, nil
}

func (r *otherRepository) CreateNotification(n *entity.Notification) error {
	notificationModel := ToNotificationModel(n)
	if notificationModel.ID == "" {
		notificationModel.ID = uuid.New().String()
	}
	if err := r.db.Create(notificationModel).Error; err != nil {
		return err
	}
	*n = *ToNotificationEntity(notificationModel)
	return nil
}
