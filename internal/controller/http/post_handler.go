package http

import (
	"errors"
	"mime/multipart"
	"net/http"

	"carhive/internal/entity"
	"carhive/internal/repo/persistent"
	"carhive/internal/usecase"
	"carhive/pkg/logger"
	"carhive/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type PostHandler struct {
	postUseCase       usecase.PostUseCase
	engagementUseCase usecase.EngagementUseCase
	logger            *logger.Logger
}

func NewPostHandler(postUseCase usecase.PostUseCase, engagementUseCase usecase.EngagementUseCase, log *logger.Logger) *PostHandler {
	return &PostHandler{
		postUseCase:       postUseCase,
		engagementUseCase: engagementUseCase,
		logger:            log,
	}
}

// GetAllPosts godoc
// @Summary      Feed of posts
// @Description  Newest posts first, excluding the caller's own posts and posts already viewed
// @Tags         posts
// @Produce      json
// @Param        userId query string true "Requesting user ID"
// @Param        page query int false "Page number (12 per page)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /posts [get]
func (h *PostHandler) GetAllPosts(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	window := pagination.Normalize(c.Query("page"), pagination.PostPageSize)

	posts, err := h.postUseCase.GetFeed(userID, window)
	if err != nil {
		h.logger.Error("Error in getAllPosts: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"nextPage": pagination.Next(window, len(posts)),
	})
}

// GetPopularPosts godoc
// @Summary      Popular posts
// @Description  Posts ranked by distinct viewers, then likes, then recency. The caller's own posts are excluded.
// @Tags         posts
// @Produce      json
// @Param        userId query string true "Requesting user ID"
// @Param        page query int false "Page number (12 per page)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/popular [get]
func (h *PostHandler) GetPopularPosts(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	window := pagination.Normalize(c.Query("page"), pagination.PostPageSize)

	posts, err := h.postUseCase.GetPopular(userID, window)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No posts found"})
			return
		}
		h.logger.Error("Error in getPopularPosts: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"nextPage": pagination.Next(window, len(posts)),
	})
}

// GetSearchPosts godoc
// @Summary      Search posts
// @Description  Case-insensitive substring match over car name and description. An empty term returns everything.
// @Tags         posts
// @Produce      json
// @Param        searchTerm query string false "Search term"
// @Success      200  {array}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/search [get]
func (h *PostHandler) GetSearchPosts(c *gin.Context) {
	term := c.Query("searchTerm")

	posts, err := h.postUseCase.Search(term)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No posts found"})
			return
		}
		h.logger.Error("Error in getSearchPosts: %v (search_term=%q)", err, term)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetFilteredPost godoc
// @Summary      Filtered posts
// @Description  Posts matching the recognized filters (car_name, city, year). Unknown query keys are ignored.
// @Tags         posts
// @Produce      json
// @Param        userId query string true "Requesting user ID"
// @Param        car_name query string false "Car name"
// @Param        city query string false "City"
// @Param        year query int false "Year"
// @Param        page query int false "Page number (12 per page)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /posts/filter [get]
func (h *PostHandler) GetFilteredPost(c *gin.Context) {
	userID := c.Query("userId")
	filter := persistent.PostFilter{
		CarName: c.Query("car_name"),
		City:    c.Query("city"),
		Year:    c.Query("year"),
	}
	if userID == "" || filter.Empty() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and at least one filter are required"})
		return
	}
	window := pagination.Normalize(c.Query("page"), pagination.PostPageSize)

	posts, err := h.postUseCase.GetFiltered(userID, filter, window)
	if err != nil {
		h.logger.Error("Error in getFilteredPost: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve filtered posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"nextPage": pagination.Next(window, len(posts)),
	})
}

// GetSavedPosts godoc
// @Summary      Saved posts
// @Tags         posts
// @Produce      json
// @Param        userId path string true "User ID"
// @Param        page query int false "Page number (12 per page)"
// @Success      200  {object}  map[string]interface{}
// @Router       /posts/saved/{userId} [get]
func (h *PostHandler) GetSavedPosts(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	window := pagination.Normalize(c.Query("page"), pagination.PostPageSize)

	posts, err := h.postUseCase.GetSaved(userID, window)
	if err != nil {
		h.logger.Error("Error in getSavedPosts: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve saved posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"nextPage": pagination.Next(window, len(posts)),
	})
}

// GetViewedPosts godoc
// @Summary      Viewed posts
// @Description  The posts in the caller's viewed history, most recent first
// @Tags         posts
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200  {array}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/viewed/{userId} [get]
func (h *PostHandler) GetViewedPosts(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	posts, err := h.postUseCase.GetViewed(userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		h.logger.Error("Error in getViewedPosts: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}

	c.JSON(http.StatusOK, posts)
}

// GetPostsByUserID godoc
// @Summary      Posts of one user
// @Tags         posts
// @Produce      json
// @Param        userId path string true "Owner user ID"
// @Param        myId query string true "Requesting user ID"
// @Param        page query int false "Page number (12 per page)"
// @Success      200  {object}  map[string]interface{}
// @Failure      404  {object}  map[string]string
// @Router       /posts/user/{userId} [get]
func (h *PostHandler) GetPostsByUserID(c *gin.Context) {
	userID := c.Param("userId")
	myID := c.Query("myId")
	if userID == "" || myID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}
	window := pagination.Normalize(c.Query("page"), pagination.PostPageSize)

	posts, err := h.postUseCase.GetByOwner(userID, myID, window)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No posts found for this user"})
			return
		}
		h.logger.Error("Error in getPostsByUserId: %v (user_id=%s, my_id=%s)", err, userID, myID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve posts"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"posts":    posts,
		"nextPage": pagination.Next(window, len(posts)),
	})
}

// GetPostByID godoc
// @Summary      Get post by ID
// @Tags         posts
// @Produce      json
// @Param        postId path string true "Post ID"
// @Param        userId query string true "Requesting user ID"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{postId} [get]
func (h *PostHandler) GetPostByID(c *gin.Context) {
	postID := c.Param("postId")
	userID := c.Query("userId")
	if postID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post ID and User ID are required"})
		return
	}

	post, err := h.postUseCase.GetPost(postID, userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		h.logger.Error("Error in getPostById: %v (post_id=%s, user_id=%s)", err, postID, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

type CreatePostRequest struct {
	OwnerID     string `form:"ownerId" binding:"required"`
	CarName     string `form:"car_name" binding:"required"`
	Description string `form:"description"`
	City        string `form:"city"`
	Year        int    `form:"year"`
	Price       int64  `form:"price"`
}

// CreatePost godoc
// @Summary      Create a post
// @Description  Create a car post with up to 10 images
// @Tags         posts
// @Accept       multipart/form-data
// @Produce      json
// @Param        ownerId formData string true "Owner user ID"
// @Param        car_name formData string true "Car name"
// @Param        description formData string false "Description"
// @Param        city formData string false "City"
// @Param        year formData int false "Year"
// @Param        price formData int false "Price"
// @Param        images formData file false "Image files"
// @Success      201  {object}  map[string]string
// @Failure      400  {object}  map[string]string
// @Router       /posts [post]
func (h *PostHandler) CreatePost(c *gin.Context) {
	var req CreatePostRequest
	if err := c.ShouldBind(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	input := usecase.CreatePostInput{
		OwnerID:     req.OwnerID,
		CarName:     req.CarName,
		Description: req.Description,
		City:        req.City,
		Year:        req.Year,
		Price:       req.Price,
	}

	var imageFiles []*multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		imageFiles = form.File["images"]
	}

	if _, err := h.postUseCase.Create(input, imageFiles); err != nil {
		h.logger.Error("Error in createPost: %v (owner_id=%s)", err, req.OwnerID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create post"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "new post created"})
}

type UpdatePostRequest struct {
	CarName     *string `json:"car_name"`
	Description *string `json:"description"`
	City        *string `json:"city"`
	Year        *int    `json:"year"`
	Price       *int64  `json:"price"`
}

// UpdatePost godoc
// @Summary      Update a post
// @Tags         posts
// @Accept       json
// @Produce      json
// @Param        postId path string true "Post ID"
// @Param        request body UpdatePostRequest true "Fields to update"
// @Success      200  {object}  entity.Post
// @Failure      404  {object}  map[string]string
// @Router       /posts/{postId} [put]
func (h *PostHandler) UpdatePost(c *gin.Context) {
	postID := c.Param("postId")
	if postID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post ID is required"})
		return
	}

	var req UpdatePostRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	post, err := h.postUseCase.Update(postID, usecase.UpdatePostInput{
		CarName:     req.CarName,
		Description: req.Description,
		City:        req.City,
		Year:        req.Year,
		Price:       req.Price,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		h.logger.Error("Error in updatePost: %v (post_id=%s)", err, postID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update post"})
		return
	}

	c.JSON(http.StatusOK, post)
}

// DeletePost godoc
// @Summary      Delete a post
// @Description  Removes the post and all engagement referencing it. Irreversible.
// @Tags         posts
// @Produce      json
// @Param        postId path string true "Post ID"
// @Param        userId query string true "Requesting user ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{postId} [delete]
func (h *PostHandler) DeletePost(c *gin.Context) {
	postID := c.Param("postId")
	userID := c.Query("userId")
	if postID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post ID and User ID are required"})
		return
	}

	if err := h.postUseCase.Delete(postID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		h.logger.Error("Error in deletePost: %v (post_id=%s, user_id=%s)", err, postID, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete post"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Post deleted successfully"})
}

// UpdateLike godoc
// @Summary      Toggle a like
// @Tags         posts
// @Produce      json
// @Param        postId path string true "Post ID"
// @Param        userId query string true "Acting user ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{postId}/like [put]
func (h *PostHandler) UpdateLike(c *gin.Context) {
	h.toggle(c, "like")
}

// UpdateSave godoc
// @Summary      Toggle a save
// @Tags         posts
// @Produce      json
// @Param        postId path string true "Post ID"
// @Param        userId query string true "Acting user ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{postId}/save [put]
func (h *PostHandler) UpdateSave(c *gin.Context) {
	h.toggle(c, "save")
}

// UpdateViewedPosts godoc
// @Summary      Mark a post viewed
// @Description  One-directional: repeat views are accepted but do not change the history
// @Tags         posts
// @Produce      json
// @Param        postId path string true "Post ID"
// @Param        userId query string true "Acting user ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /posts/{postId}/viewed [put]
func (h *PostHandler) UpdateViewedPosts(c *gin.Context) {
	h.toggle(c, "viewed")
}

var toggleKinds = map[string]struct {
	kind    entity.EngagementKind
	message string
	failure string
}{
	"like":   {entity.EngagementLike, "post like updated successfully", "Failed to update post like"},
	"save":   {entity.EngagementSave, "post save updated successfully", "Failed to update post save"},
	"viewed": {entity.EngagementViewPost, "post viewed updated successfully", "Failed to update post viewed"},
}

func (h *PostHandler) toggle(c *gin.Context, name string) {
	postID := c.Param("postId")
	userID := c.Query("userId")
	if postID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Post ID and User ID are required"})
		return
	}

	meta := toggleKinds[name]
	_, err := h.engagementUseCase.Toggle(meta.kind, userID, postID)
	if err != nil {
		if errors.Is(err, usecase.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "Post not found"})
			return
		}
		h.logger.Error("Error in update%s: %v (post_id=%s, user_id=%s)", name, err, postID, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": meta.failure})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": meta.message})
}
