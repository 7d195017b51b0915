package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/notify"
	"github.com/picnichub/memoryhub/backend/internal/repositories"
	"github.com/picnichub/memoryhub/backend/pkg/mailer"
)

// FollowHandler handles follow/unfollow HTTP requests
type FollowHandler struct {
	followRepository repositories.FollowRepository
	userRepository   repositories.UserRepository
	notifier         *notify.Writer
	mail             mailer.Mailer
}

// NewFollowHandler creates a new FollowHandler
func NewFollowHandler(followRepo repositories.FollowRepository, userRepo repositories.UserRepository, notifier *notify.Writer, mail mailer.Mailer) *FollowHandler {
	return &FollowHandler{
		followRepository: followRepo,
		userRepository:   userRepo,
		notifier:         notifier,
		mail:             mail,
	}
}

// RegisterFollowRoutes registers follow-related routes
func (h *FollowHandler) RegisterFollowRoutes(g *echo.Group) {
	g.POST("/users/:id/follow", h.FollowUser)
	g.DELETE("/users/:id/follow", h.UnfollowUser)
}

// FollowUser follows a user
func (h *FollowHandler) FollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if currentUserID == uint(targetID) {
		return echo.NewHTTPError(http.StatusBadRequest, "Cannot follow yourself")
	}

	target, err := h.userRepository.GetUserByID(uint(targetID))
	if err != nil {
		return repoError(c, err, "User not found")
	}

	// Check if already following
	isFollowing, err := h.followRepository.IsFollowing(currentUserID, uint(targetID))
	if err != nil {
		return repoError(c, err, "User not found")
	}
	if isFollowing {
		return echo.NewHTTPError(http.StatusConflict, "Already following this user")
	}

	follow := &models.Follow{
		FollowerID:  currentUserID,
		FollowingID: uint(targetID),
	}
	if err := h.followRepository.CreateFollow(follow); err != nil {
		return repoError(c, err, "User not found")
	}

	// Update counts
	h.userRepository.IncrementFollowingCount(currentUserID, 1)
	h.userRepository.IncrementFollowersCount(uint(targetID), 1)

	h.notifier.Notify(&models.Notification{
		RecipientID: uint(targetID),
		SenderID:    currentUserID,
		Type:        models.NotificationFollow,
		ReferenceID: strconv.FormatUint(uint64(currentUserID), 10),
		OnModel:     models.RefUser,
	})

	// Email side channel, best-effort
	if follower, err := h.userRepository.GetUserByID(currentUserID); err == nil && target.Email != "" {
		go func() {
			if err := h.mail.Send(target.Email, "New follower on MemoryHub",
				fmt.Sprintf("%s started following you.", follower.Name)); err != nil {
				c.Logger().Warnf("follow mail to user %d failed: %v", target.ID, err)
			}
		}()
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": true}})
}

// UnfollowUser unfollows a user
func (h *FollowHandler) UnfollowUser(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	if err := h.followRepository.DeleteFollow(currentUserID, uint(targetID)); err != nil {
		return repoError(c, err, "Follow relationship not found")
	}

	h.userRepository.IncrementFollowingCount(currentUserID, -1)
	h.userRepository.IncrementFollowersCount(uint(targetID), -1)

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"following": false}})
}
