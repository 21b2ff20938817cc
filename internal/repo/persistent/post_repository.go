package persistent

import (
	"carhive/internal/entity"
	"carhive/internal/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Post ordering. view_count and like_count are derived per query from the
// engagement tables, so a deleted viewer or liker silently drops out of the
// counts instead of leaving stale totals behind.
const (
	postCountsSelect = `posts.*,
		(SELECT COUNT(*) FROM post_views WHERE post_views.post_id = posts.id) AS view_count,
		(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id) AS like_count`

	postViewerSelect = postCountsSelect + `,
		(SELECT COUNT(*) FROM likes WHERE likes.post_id = posts.id AND likes.user_id = ?) AS is_liked,
		(SELECT COUNT(*) FROM saves WHERE saves.post_id = posts.id AND saves.user_id = ?) AS is_saved`

	recentOrder  = "posts.created_at DESC, posts.id DESC"
	popularOrder = "view_count DESC, like_count DESC, posts.created_at DESC, posts.id DESC"
)

type PostRepository interface {
	Create(post *entity.Post) error
	GetForViewer(postID, viewerID string) (*entity.Post, error)
	Exists(id string) (bool, error)
	OwnerOf(id string) (string, error)
	ListFeed(viewerID string, limit, offset int) ([]*entity.Post, error)
	ListPopular(viewerID string, limit, offset int) ([]*entity.Post, error)
	ListByOwner(ownerID, viewerID string, limit, offset int) ([]*entity.Post, error)
	Search(term string) ([]*entity.Post, error)
	ListFiltered(viewerID string, filter PostFilter, limit, offset int) ([]*entity.Post, error)
	ListSaved(userID string, limit, offset int) ([]*entity.Post, error)
	ListViewed(userID string) ([]*entity.Post, error)
	Update(post *entity.Post) error
	Delete(id string) error
}

type postRepository struct {
	db *gorm.DB
}

func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

// postRow carries a post plus the derived engagement columns of one query.
type postRow struct {
	model.PostModel
	ViewCount int64
	LikeCount int64
	IsLiked   int64
	IsSaved   int64
}

func (r *postRepository) Create(post *entity.Post) error {
	postModel := ToPostModel(post)
	if postModel.ID == "" {
		postModel.ID = uuid.New().String()
	}

	return r.db.Transaction(func(tx *gorm.DB) error {
		images := postModel.Images
		postModel.Images = nil

		if err := tx.Create(postModel).Error; err != nil {
			return err
		}

		for i := range images {
			images[i].PostID = postModel.ID
			if images[i].ID == "" {
				images[i].ID = uuid.New().String()
			}
			if err := tx.Create(&images[i]).Error; err != nil {
				return err
			}
		}
		postModel.Images = images

		*post = *ToPostEntity(postModel)
		return nil
	})
}

func (r *postRepository) GetForViewer(postID, viewerID string) (*entity.Post, error) {
	var row postRow
	err := r.db.Model(&model.PostModel{}).
		Select(postViewerSelect, viewerID, viewerID).
		Where("posts.id = ?", postID).
		Take(&row).Error
	if err != nil {
		return nil, err
	}

	posts, err := r.attachImages([]postRow{row})
	if err != nil {
		return nil, err
	}
	return posts[0], nil
}

func (r *postRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.db.Model(&model.PostModel{}).Where("id = ?", id).Count(&count).Error
	return count > 0, err
}

func (r *postRepository) OwnerOf(id string) (string, error) {
	var row struct{ OwnerID string }
	err := r.db.Model(&model.PostModel{}).Select("owner_id").Where("id = ?", id).Take(&row).Error
	if err != nil {
		return "", err
	}
	return row.OwnerID, nil
}

// ListFeed is the default feed: newest first, excluding the viewer's own
// posts and anything already in the viewer's viewed set.
func (r *postRepository) ListFeed(viewerID string, limit, offset int) ([]*entity.Post, error) {
	var rows []postRow
	err := r.db.Model(&model.PostModel{}).
		Select(postCountsSelect).
		Where("posts.owner_id <> ?", viewerID).
		Where("posts.id NOT IN (SELECT post_id FROM post_views WHERE user_id = ?)", viewerID).
		Order(recentOrder).
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.attachImages(rows)
}

// ListPopular orders by distinct viewers, then likes, then recency. The
// viewer's own posts are excluded before the window is applied.
func (r *postRepository) ListPopular(viewerID string, limit, offset int) ([]*entity.Post, error) {
	var rows []postRow
	err := r.db.Model(&model.PostModel{}).
		Select(postCountsSelect).
		Where("posts.owner_id <> ?", viewerID).
		Order(popularOrder).
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.attachImages(rows)
}

func (r *postRepository) ListByOwner(ownerID, viewerID string, limit, offset int) ([]*entity.Post, error) {
	var rows []postRow
	err := r.db.Model(&model.PostModel{}).
		Select(postViewerSelect, viewerID, viewerID).
		Where("posts.owner_id = ?", ownerID).
		Order(recentOrder).
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.attachImages(rows)
}

// Search matches term as a case-insensitive substring of the searchable text
// fields. An empty term matches everything.
func (r *postRepository) Search(term string) ([]*entity.Post, error) {
	q := r.db.Model(&model.PostModel{}).Select(postCountsSelect)
	if term != "" {
		pattern := likePattern(term)
		q = q.Where("LOWER(posts.car_name) LIKE ? OR LOWER(posts.description) LIKE ?", pattern, pattern)
	}

	var rows []postRow
	if err := q.Order(recentOrder).Find(&rows).Error; err != nil {
		return nil, err
	}
	return r.attachImages(rows)
}

func (r *postRepository) ListFiltered(viewerID string, filter PostFilter, limit, offset int) ([]*entity.Post, error) {
	q := r.db.Model(&model.PostModel{}).
		Select(postCountsSelect).
		Where("posts.owner_id <> ?", viewerID)
	q = filter.apply(q)

	var rows []postRow
	err := q.Order(recentOrder).Limit(limit).Offset(offset).Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.attachImages(rows)
}

func (r *postRepository) ListSaved(userID string, limit, offset int) ([]*entity.Post, error) {
	var rows []postRow
	err := r.db.Model(&model.PostModel{}).
		Select(postCountsSelect).
		Joins("INNER JOIN saves ON saves.post_id = posts.id").
		Where("saves.user_id = ?", userID).
		Order("saves.created_at DESC").
		Limit(limit).Offset(offset).
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.attachImages(rows)
}

func (r *postRepository) ListViewed(userID string) ([]*entity.Post, error) {
	var rows []postRow
	err := r.db.Model(&model.PostModel{}).
		Select(postCountsSelect).
		Joins("INNER JOIN post_views ON post_views.post_id = posts.id").
		Where("post_views.user_id = ?", userID).
		Order("post_views.created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return r.attachImages(rows)
}

func (r *postRepository) Update(post *entity.Post) error {
	postModel := ToPostModel(post)
	return r.db.Omit(clause.Associations).Save(postModel).Error
}

// Delete removes the post together with every engagement row referencing it.
// Hard deletes throughout: a deleted post must not resurrect its likes, saves
// or view history.
func (r *postRepository) Delete(id string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("post_id = ?", id).Delete(&model.LikeModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.SaveModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostViewModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.NotificationModel{}).Error; err != nil {
			return err
		}
		if err := tx.Where("post_id = ?", id).Delete(&model.PostImageModel{}).Error; err != nil {
			return err
		}
		return tx.Delete(&model.PostModel{}, "id = ?", id).Error
	})
}

// attachImages loads the images of every returned post in one query and maps
// the rows to entities.
func (r *postRepository) attachImages(rows []postRow) ([]*entity.Post, error) {
	posts := make([]*entity.Post, len(rows))
	ids := make([]string, len(rows))
	for i := range rows {
		post := ToPostEntity(&rows[i].PostModel)
		post.ViewCount = rows[i].ViewCount
		post.LikeCount = rows[i].LikeCount
		post.IsLiked = rows[i].IsLiked > 0
		post.IsSaved = rows[i].IsSaved > 0
		posts[i] = post
		ids[i] = post.ID
	}

	if len(ids) == 0 {
		return posts, nil
	}

	var images []model.PostImageModel
	err := r.db.Where("post_id IN ?", ids).Order("position ASC").Find(&images).Error
	if err != nil {
		return nil, err
	}

	byPost := make(map[string][]entity.PostImage, len(ids))
	for i := range images {
		byPost[images[i].PostID] = append(byPost[images[i].PostID], ToPostImageEntity(&images[i]))
	}
	for _, post := range posts {
		post.Images = byPost[post.ID]
	}
	return posts, nil
}
