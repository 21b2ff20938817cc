package http

import (
	"errors"
	"net/http"

	"carhive/internal/entity"
	"carhive/internal/usecase"
	"carhive/pkg/logger"
	"carhive/pkg/pagination"

	"github.com/gin-gonic/gin"
)

type UserHandler struct {
	userUseCase       usecase.UserUseCase
	engagementUseCase usecase.EngagementUseCase
	logger            *logger.Logger
}

func NewUserHandler(userUseCase usecase.UserUseCase, engagementUseCase usecase.EngagementUseCase, log *logger.Logger) *UserHandler {
	return &UserHandler{
		userUseCase:       userUseCase,
		engagementUseCase: engagementUseCase,
		logger:            log,
	}
}

// GetAllUsers godoc
// @Summary      List users
// @Description  Users whose username matches the search term, optionally narrowed by city, 15 per page
// @Tags         users
// @Produce      json
// @Param        searchTerm query string true "Username search term"
// @Param        city query string false "City"
// @Param        page query int false "Page number (15 per page)"
// @Success      200  {object}  map[string]interface{}
// @Failure      400  {object}  map[string]string
// @Router       /users [get]
func (h *UserHandler) GetAllUsers(c *gin.Context) {
	term := c.Query("searchTerm")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
		return
	}
	city := c.Query("city")
	window := pagination.Normalize(c.Query("page"), pagination.UserPageSize)

	users, err := h.userUseCase.List(term, city, window)
	if err != nil {
		h.logger.Error("Error in getAllUsers: %v (search_term=%q)", err, term)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users":    users,
		"nextPage": pagination.Next(window, len(users)),
	})
}

// GetSearchUsers godoc
// @Summary      Search users
// @Description  Case-insensitive substring match over username and city
// @Tags         users
// @Produce      json
// @Param        searchTerm query string true "Search term"
// @Success      200  {array}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/search [get]
func (h *UserHandler) GetSearchUsers(c *gin.Context) {
	term := c.Query("searchTerm")
	if term == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Search term is required"})
		return
	}

	users, err := h.userUseCase.Search(term)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No users found"})
			return
		}
		h.logger.Error("Error in getSearchUsers: %v (search_term=%q)", err, term)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetViewedUsers godoc
// @Summary      Viewed users
// @Description  The profiles in the caller's viewed history, most recent first
// @Tags         users
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200  {array}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/viewed/{userId} [get]
func (h *UserHandler) GetViewedUsers(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	users, err := h.userUseCase.GetViewed(userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "No viewed users found"})
			return
		}
		h.logger.Error("Error in getViewedUsers: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve viewed users"})
		return
	}

	c.JSON(http.StatusOK, users)
}

// GetUserByID godoc
// @Summary      Get user by ID
// @Tags         users
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{userId} [get]
func (h *UserHandler) GetUserByID(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	user, err := h.userUseCase.GetByID(userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.logger.Error("Error in getUserById: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

type CreateUserRequest struct {
	Username  string `json:"username" binding:"required"`
	City      string `json:"city"`
	AvatarURL string `json:"avatar_url"`
}

// CreateUser godoc
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        request body CreateUserRequest true "User data"
// @Success      201  {object}  entity.User
// @Failure      400  {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userUseCase.Create(usecase.CreateUserInput{
		Username:  req.Username,
		City:      req.City,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		h.logger.Error("Error in createUser: %v (username=%s)", err, req.Username)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
		return
	}

	c.JSON(http.StatusCreated, user)
}

type UpdateUserRequest struct {
	Username  *string `json:"username"`
	City      *string `json:"city"`
	AvatarURL *string `json:"avatar_url"`
}

// UpdateUser godoc
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        userId path string true "User ID"
// @Param        request body UpdateUserRequest true "Fields to update"
// @Success      200  {object}  entity.User
// @Failure      404  {object}  map[string]string
// @Router       /users/{userId} [put]
func (h *UserHandler) UpdateUser(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	var req UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	user, err := h.userUseCase.Update(userID, usecase.UpdateUserInput{
		Username:  req.Username,
		City:      req.City,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.logger.Error("Error in updateUser: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateViewedUsers godoc
// @Summary      Mark a profile viewed
// @Description  Adds the other user to the caller's viewed history. Viewing yourself or repeating a view is a no-op.
// @Tags         users
// @Produce      json
// @Param        otherId path string true "Viewed user ID"
// @Param        userId query string true "Acting user ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/viewed/{otherId} [put]
func (h *UserHandler) UpdateViewedUsers(c *gin.Context) {
	otherID := c.Param("otherId")
	userID := c.Query("userId")
	if otherID == "" || userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID and Other ID are required"})
		return
	}

	_, err := h.engagementUseCase.Toggle(entity.EngagementViewUser, userID, otherID)
	if err != nil {
		if errors.Is(err, usecase.ErrTargetNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.logger.Error("Error in updateViewedUsers: %v (user_id=%s, other_id=%s)", err, userID, otherID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update viewed users"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Viewed users updated successfully"})
}

// DeleteUser godoc
// @Summary      Delete a user
// @Description  Removes the user, their posts' engagement and their own engagement rows. Irreversible.
// @Tags         users
// @Produce      json
// @Param        userId path string true "User ID"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{userId} [delete]
func (h *UserHandler) DeleteUser(c *gin.Context) {
	userID := c.Param("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	if err := h.userUseCase.Delete(userID); err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "User not found"})
			return
		}
		h.logger.Error("Error in deleteUser: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully"})
}
