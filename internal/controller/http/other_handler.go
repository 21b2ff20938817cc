package http

import (
	"errors"
	"net/http"

	"carhive/internal/usecase"
	"carhive/pkg/logger"

	"github.com/gin-gonic/gin"
)

type OtherHandler struct {
	otherUseCase usecase.OtherUseCase
	logger       *logger.Logger
}

func NewOtherHandler(otherUseCase usecase.OtherUseCase, log *logger.Logger) *OtherHandler {
	return &OtherHandler{otherUseCase: otherUseCase, logger: log}
}

// GetBanners godoc
// @Summary      Active banners
// @Tags         others
// @Produce      json
// @Success      200  {array}  entity.Banner
// @Failure      404  {object}  map[string]string
// @Router       /others/banners [get]
func (h *OtherHandler) GetBanners(c *gin.Context) {
	banners, err := h.otherUseCase.Banners()
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "banners not found"})
			return
		}
		h.logger.Error("Error in getBanners: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve banners"})
		return
	}

	c.JSON(http.StatusOK, banners)
}

// GetNotifications godoc
// @Summary      Notifications for a user
// @Tags         others
// @Produce      json
// @Param        userId query string true "User ID"
// @Success      200  {array}  entity.Notification
// @Failure      404  {object}  map[string]string
// @Router       /others/notifications [get]
func (h *OtherHandler) GetNotifications(c *gin.Context) {
	userID := c.Query("userId")
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "User ID is required"})
		return
	}

	notifications, err := h.otherUseCase.Notifications(userID)
	if err != nil {
		if errors.Is(err, usecase.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"message": "notifications not found"})
			return
		}
		h.logger.Error("Error in getNotifications: %v (user_id=%s)", err, userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve notifications"})
		return
	}

	c.JSON(http.StatusOK, notifications)
}
