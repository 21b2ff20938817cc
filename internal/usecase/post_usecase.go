package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"mime/multipart"
	"time"

	"carhive/internal/entity"
	"carhive/internal/repo/persistent"
	"carhive/pkg/logger"
	"carhive/pkg/pagination"
	"carhive/pkg/s3"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

const (
	// popularGenKey is a generation counter bumped on every engagement write.
	// It versions the popular feed cache keys, so a toggle invalidates all
	// cached popular pages at once without scanning for them.
	popularGenKey = "feed:popular:gen"

	popularCacheTTL = 5 * time.Minute
)

type CreatePostInput struct {
	OwnerID     string
	CarName     string
	Description string
	City        string
	Year        int
	Price       int64
}

type UpdatePostInput struct {
	CarName     *string
	Description *string
	City        *string
	Year        *int
	Price       *int64
}

type PostUseCase interface {
	GetFeed(userID string, w pagination.Window) ([]*entity.Post, error)
	GetPopular(userID string, w pagination.Window) ([]*entity.Post, error)
	GetPost(postID, userID string) (*entity.Post, error)
	GetSaved(userID string, w pagination.Window) ([]*entity.Post, error)
	GetViewed(userID string) ([]*entity.Post, error)
	Search(term string) ([]*entity.Post, error)
	GetByOwner(ownerID, viewerID string, w pagination.Window) ([]*entity.Post, error)
	GetFiltered(userID string, filter persistent.PostFilter, w pagination.Window) ([]*entity.Post, error)
	Create(input CreatePostInput, imageFiles []*multipart.FileHeader) (*entity.Post, error)
	Update(postID string, input UpdatePostInput) (*entity.Post, error)
	Delete(postID string) error
}

type postUseCase struct {
	postRepo    persistent.PostRepository
	s3Client    *s3.Client
	redisClient *redis.Client
	logger      *logger.Logger
}

func NewPostUseCase(
	postRepo persistent.PostRepository,
	s3Client *s3.Client,
	redisClient *redis.Client,
	log *logger.Logger,
) PostUseCase {
	return &postUseCase{
		postRepo:    postRepo,
		s3Client:    s3Client,
		redisClient: redisClient,
		logger:      log,
	}
}

func (uc *postUseCase) GetFeed(userID string, w pagination.Window) ([]*entity.Post, error) {
	return uc.postRepo.ListFeed(userID, w.Limit, w.Offset)
}

func (uc *postUseCase) GetPopular(userID string, w pagination.Window) ([]*entity.Post, error) {
	if posts, ok := uc.cachedPopular(userID, w); ok {
		return posts, nil
	}

	posts, err := uc.postRepo.ListPopular(userID, w.Limit, w.Offset)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}

	uc.cachePopular(userID, w, posts)
	return posts, nil
}

func (uc *postUseCase) GetPost(postID, userID string) (*entity.Post, error) {
	post, err := uc.postRepo.GetForViewer(postID, userID)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrNotFound
	}
	return post, err
}

func (uc *postUseCase) GetSaved(userID string, w pagination.Window) ([]*entity.Post, error) {
	return uc.postRepo.ListSaved(userID, w.Limit, w.Offset)
}

func (uc *postUseCase) GetViewed(userID string) ([]*entity.Post, error) {
	posts, err := uc.postRepo.ListViewed(userID)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return posts, nil
}

func (uc *postUseCase) Search(term string) ([]*entity.Post, error) {
	posts, err := uc.postRepo.Search(term)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return posts, nil
}

func (uc *postUseCase) GetByOwner(ownerID, viewerID string, w pagination.Window) ([]*entity.Post, error) {
	posts, err := uc.postRepo.ListByOwner(ownerID, viewerID, w.Limit, w.Offset)
	if err != nil {
		return nil, err
	}
	if len(posts) == 0 {
		return nil, ErrNotFound
	}
	return posts, nil
}

func (uc *postUseCase) GetFiltered(userID string, filter persistent.PostFilter, w pagination.Window) ([]*entity.Post, error) {
	return uc.postRepo.ListFiltered(userID, filter, w.Limit, w.Offset)
}

func (uc *postUseCase) Create(input CreatePostInput, imageFiles []*multipart.FileHeader) (*entity.Post, error) {
	if len(imageFiles) > 10 {
		return nil, fmt.Errorf("maximum 10 images allowed per post")
	}

	var images []entity.PostImage
	for i, file := range imageFiles {
		if uc.s3Client == nil {
			return nil, fmt.Errorf("media storage is not configured")
		}

		src, err := file.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open file: %w", err)
		}

		fileKey := fmt.Sprintf("posts/%s/%s%s", input.OwnerID, uuid.New().String(), getFileExtension(file.Filename))
		contentType := file.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "image/jpeg"
		}

		imageURL, err := uc.s3Client.UploadFile(fileKey, src, contentType)
		src.Close()
		if err != nil {
			return nil, fmt.Errorf("failed to upload file to S3: %w", err)
		}

		images = append(images, entity.PostImage{
			ID:       uuid.New().String(),
			ImageURL: imageURL,
			Order:    i,
		})
	}

	post := &entity.Post{
		OwnerID:     input.OwnerID,
		CarName:     input.CarName,
		Description: input.Description,
		City:        input.City,
		Year:        input.Year,
		Price:       input.Price,
		Images:      images,
	}

	if err := uc.postRepo.Create(post); err != nil {
		return nil, fmt.Errorf("failed to create post: %w", err)
	}
	return post, nil
}

func (uc *postUseCase) Update(postID string, input UpdatePostInput) (*entity.Post, error) {
	post, err := uc.GetPost(postID, "")
	if err != nil {
		return nil, err
	}

	if input.CarName != nil {
		post.CarName = *input.CarName
	}
	if input.Description != nil {
		post.Description = *input.Description
	}
	if input.City != nil {
		post.City = *input.City
	}
	if input.Year != nil {
		post.Year = *input.Year
	}
	if input.Price != nil {
		post.Price = *input.Price
	}

	if err := uc.postRepo.Update(post); err != nil {
		return nil, err
	}
	return post, nil
}

func (uc *postUseCase) Delete(postID string) error {
	exists, err := uc.postRepo.Exists(postID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	if err := uc.postRepo.Delete(postID); err != nil {
		return err
	}
	uc.bumpPopularGen()
	return nil
}

func (uc *postUseCase) cachedPopular(userID string, w pagination.Window) ([]*entity.Post, bool) {
	if uc.redisClient == nil {
		return nil, false
	}
	ctx := context.Background()

	gen, err := uc.redisClient.Get(ctx, popularGenKey).Result()
	if err != nil {
		gen = "0"
	}

	cached, err := uc.redisClient.Get(ctx, popularCacheKey(gen, userID, w.Page)).Result()
	if err != nil {
		return nil, false
	}

	var posts []*entity.Post
	if err := json.Unmarshal([]byte(cached), &posts); err != nil {
		return nil, false
	}
	return posts, true
}

func (uc *postUseCase) cachePopular(userID string, w pagination.Window, posts []*entity.Post) {
	if uc.redisClient == nil {
		return
	}
	ctx := context.Background()

	gen, err := uc.redisClient.Get(ctx, popularGenKey).Result()
	if err != nil {
		gen = "0"
	}

	data, err := json.Marshal(posts)
	if err != nil {
		return
	}
	if err := uc.redisClient.Set(ctx, popularCacheKey(gen, userID, w.Page), data, popularCacheTTL).Err(); err != nil {
		uc.logger.Warn("Failed to cache popular feed for user %s: %v", userID, err)
	}
}

func (uc *postUseCase) bumpPopularGen() {
	if uc.redisClient == nil {
		return
	}
	if err := uc.redisClient.Incr(context.Background(), popularGenKey).Err(); err != nil {
		uc.logger.Warn("Failed to bump popular feed generation: %v", err)
	}
}

func popularCacheKey(gen, userID string, page int) string {
	return fmt.Sprintf("feed:popular:g%s:%s:p%d", gen, userID, page)
}

func getFileExtension(filename string) string {
	for i := len(filename) - 1; i >= 0; i-- {
		if filename[i] == '.' {
			return filename[i:]
		}
	}
	return ""
}
