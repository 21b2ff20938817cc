package persistent

import (
	"strings"

	"carhive/internal/entity"
	"carhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type UserRepository interface {
	Create(user *entity.User) error
	GetByID(id string) (*entity.User, error)
	Exists(id string) (bool, error)
	List(term, city string, limit, offset int) ([]*entity.User, error)
	Search(term string) ([]*entity.User, error)
	ListViewed(viewerID string) ([]*entity.User, error)
	Update(user *entity.User) error
	Delete(id string) error
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(user *entity.User) error {
	userModel := ToUserModel(user)
	if userModel.ID == "" {
		userModel.ID = uuid.New().String()
	}
	if err := r.db.Create(userModel).Error; err != nil {
		return err
	}
	*user = *ToUserEntity(userModel)
	return nil
}

func (r *userRepository) GetByID(id string) (*entity.User, error) {
	var userModel model.UserModel
	if err := r.db.Where("id = ?", id).Take(&userModel).Error; err != nil {
		return nil, err
	}
	return ToUserEntity(&userModel), nil
}

func (r *userRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.UserModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

// List matches term against usernames, optionally narrowed to a city.
func (r *userRepository) List(term, city string, limit, offset int) ([]*entity.User, error) {
	q := r.db.Model(&model.UserModel{}).
		Where("LOWER(username) LIKE ?", likePattern(term))
	if city != "" {
		q = q.Where("LOWER(city) = ?", strings.ToLower(city))
	}

	var userModels []model.UserModel
	err := q.Order("username ASC, id ASC").Limit(limit).Offset(offset).Find(&userModels).Error
	if err != nil {
		return nil, err
	}
	return toUserEntities(userModels), nil
}

// Search matches term against username or city, unpaginated.
func (r *userRepository) Search(term string) ([]*entity.User, error) {
	pattern := likePattern(term)

	var userModels []model.UserModel
	err := r.db.Model(&model.UserModel{}).
		Where("LOWER(username) LIKE ? OR LOWER(city) LIKE ?", pattern, pattern).
		Order("username ASC, id ASC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}
	return toUserEntities(userModels), nil
}

func (r *userRepository) ListViewed(viewerID string) ([]*entity.User, error) {
	var userModels []model.UserModel
	err := r.db.Model(&model.UserModel{}).
		Joins("INNER JOIN user_views ON user_views.viewed_id = users.id").
		Where("user_views.viewer_id = ?", viewerID).
		Order("user_views.created_at DESC").
		Find(&userModels).Error
	if err != nil {
		return nil, err
	}
	return toUserEntities(userModels), nil
}

func (r *userRepository) Update(user *entity.User) error {
	return r.db.Save(ToUserModel(user)).Error
}

// Delete removes the user and every engagement row they are party to, so no
// other user's sets keep dangling members. Their posts stay; derived counts
// simply stop including the deleted user.
func (r *userRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.SaveModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&model.PostViewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("viewer_id = ? OR viewed_id = ?", id, id).Delete(&model.UserViewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ? OR actor_id = ?", id, id).Delete(&model.NotificationModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.UserModel{}, "id = ?", id).Error
	})
}

func toUserEntities(models []model.UserModel) []*entity.User {
	users := make([]*entity.User, len(models))
	for i := range models {
		users[i] = ToUserEntity(&models[i])
	}
	return users
}
