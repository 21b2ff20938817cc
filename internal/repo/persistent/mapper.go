package persistent

import (
	"carhive/internal/entity"
	"carhive/internal/model"
)

func ToPostEntity(m *model.PostModel) *entity.Post {
	if m == nil {
		return nil
	}

	post := &entity.Post{
		ID:          m.ID,
		OwnerID:     m.OwnerID,
		CarName:     m.CarName,
		Description: m.Description,
		City:        m.City,
		Year:        m.Year,
		Price:       m.Price,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}

	if len(m.Images) > 0 {
		post.Images = make([]entity.PostImage, len(m.Images))
		for i, img := range m.Images {
			post.Images[i] = ToPostImageEntity(&img)
		}
	}

	return post
}

func ToPostModel(e *entity.Post) *model.PostModel {
	if e == nil {
		return nil
	}

	post := &model.PostModel{
		ID:          e.ID,
		OwnerID:     e.OwnerID,
		CarName:     e.CarName,
		Description: e.Description,
		City:        e.City,
		Year:        e.Year,
		Price:       e.Price,
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}

	if len(e.Images) > 0 {
		post.Images = make([]model.PostImageModel, len(e.Images))
		for i, img := range e.Images {
			post.Images[i] = *ToPostImageModel(&img)
		}
	}

	return post
}

func ToPostImageEntity(m *model.PostImageModel) entity.PostImage {
	if m == nil {
		return entity.PostImage{}
	}
	return entity.PostImage{
		ID:        m.ID,
		PostID:    m.PostID,
		ImageURL:  m.ImageURL,
		Order:     m.Position,
		CreatedAt: m.CreatedAt,
	}
}

func ToPostImageModel(e *entity.PostImage) *model.PostImageModel {
	if e == nil {
		return nil
	}
	return &model.PostImageModel{
		ID:        e.ID,
		PostID:    e.PostID,
		ImageURL:  e.ImageURL,
		Position:  e.Order,
		CreatedAt: e.CreatedAt,
	}
}

func ToUserEntity(m *model.UserModel) *entity.User {
	if m == nil {
		return nil
	}
	return &entity.User{
		ID:        m.ID,
		Username:  m.Username,
		City:      m.City,
		AvatarURL: m.AvatarURL,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
}

func ToUserModel(e *entity.User) *model.UserModel {
	if e == nil {
		return nil
	}
	return &model.UserModel{
		ID:        e.ID,
		Username:  e.Username,
		City:      e.City,
		AvatarURL: e.AvatarURL,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func ToBannerEntity(m *model.BannerModel) *entity.Banner {
	if m == nil {
		return nil
	}
	return &entity.Banner{
		ID:       m.ID,
		Title:    m.Title,
		ImageURL: m.ImageURL,
		LinkURL:  m.LinkURL,
		Position: m.Position,
		Active:   m.Active,
	}
}

func ToNotificationEntity(m *model.NotificationModel) *entity.Notification {
	if m == nil {
		return nil
	}
	return &entity.Notification{
		ID:        m.ID,
		UserID:    m.UserID,
		ActorID:   m.ActorID,
		PostID:    m.PostID,
		Kind:      m.Kind,
		Message:   m.Message,
		CreatedAt: m.CreatedAt,
	}
}

func ToNotificationModel(e *entity.Notification) *model.NotificationModel {
	if e == nil {
		return nil
	}
	return &model.NotificationModel{
		ID:        e.ID,
		UserID:    e.UserID,
		ActorID:   e.ActorID,
		PostID:    e.PostID,
		Kind:      e.Kind,
		Message:   e.Message,
		CreatedAt: e.CreatedAt,
	}
}
