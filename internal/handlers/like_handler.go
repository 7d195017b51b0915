package handlers

import (
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/notify"
	"github.com/picnichub/memoryhub/backend/internal/repositories"
)

// LikeHandler handles HTTP requests related to likes on memories and reels
type LikeHandler struct {
	likeRepository   repositories.LikeRepository
	memoryRepository repositories.MemoryRepository
	reelRepository   repositories.ReelRepository
	notifier         *notify.Writer
}

// NewLikeHandler creates a new LikeHandler
func NewLikeHandler(likeRepo repositories.LikeRepository, memoryRepo repositories.MemoryRepository, reelRepo repositories.ReelRepository, notifier *notify.Writer) *LikeHandler {
	return &LikeHandler{
		likeRepository:   likeRepo,
		memoryRepository: memoryRepo,
		reelRepository:   reelRepo,
		notifier:         notifier,
	}
}

// RegisterLikeRoutes registers like-related routes
func (h *LikeHandler) RegisterLikeRoutes(g *echo.Group) {
	g.POST("/memories/:id/likes", h.LikeMemory)
	g.DELETE("/memories/:id/likes", h.UnlikeMemory)
	g.POST("/reels/:id/likes", h.LikeReel)
	g.DELETE("/reels/:id/likes", h.UnlikeReel)
}

// LikeMemory handles liking a memory
func (h *LikeHandler) LikeMemory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	memoryID := c.Param("id")

	memory, err := h.memoryRepository.GetMemoryByID(c.Request().Context(), memoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Memory not found")
	}

	hasLiked, err := h.likeRepository.HasUserLiked(memoryID, models.RefMemory, currentUserID)
	if err != nil {
		return repoError(c, err, "Memory not found")
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Memory already liked by this user")
	}

	like := &models.Like{
		TargetID:   memoryID,
		TargetType: models.RefMemory,
		UserID:     currentUserID,
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return repoError(c, err, "Memory not found")
	}

	go h.memoryRepository.IncrementLikesCount(context.Background(), memoryID, 1)

	h.notifier.Notify(&models.Notification{
		RecipientID: memory.UserID,
		SenderID:    currentUserID,
		Type:        models.NotificationLikeMemory,
		ReferenceID: memoryID,
		OnModel:     models.RefMemory,
	})

	return c.JSON(http.StatusCreated, like)
}

// UnlikeMemory handles removing a like from a memory
func (h *LikeHandler) UnlikeMemory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	memoryID := c.Param("id")

	if err := h.likeRepository.DeleteLike(memoryID, models.RefMemory, currentUserID); err != nil {
		return repoError(c, err, "Like not found")
	}

	go h.memoryRepository.IncrementLikesCount(context.Background(), memoryID, -1)

	return c.NoContent(http.StatusNoContent)
}

// LikeReel handles liking a reel
func (h *LikeHandler) LikeReel(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	reelID := c.Param("id")

	reel, err := h.reelRepository.GetReelByID(c.Request().Context(), reelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Reel not found")
	}

	hasLiked, err := h.likeRepository.HasUserLiked(reelID, models.RefReel, currentUserID)
	if err != nil {
		return repoError(c, err, "Reel not found")
	}
	if hasLiked {
		return echo.NewHTTPError(http.StatusConflict, "Reel already liked by this user")
	}

	like := &models.Like{
		TargetID:   reelID,
		TargetType: models.RefReel,
		UserID:     currentUserID,
	}
	if err := h.likeRepository.CreateLike(like); err != nil {
		return repoError(c, err, "Reel not found")
	}

	go h.reelRepository.IncrementLikesCount(context.Background(), reelID, 1)

	h.notifier.Notify(&models.Notification{
		RecipientID: reel.UserID,
		SenderID:    currentUserID,
		Type:        models.NotificationLikeReel,
		ReferenceID: reelID,
		OnModel:     models.RefReel,
	})

	return c.JSON(http.StatusCreated, like)
}

// UnlikeReel handles removing a like from a reel
func (h *LikeHandler) UnlikeReel(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	reelID := c.Param("id")

	if err := h.likeRepository.DeleteLike(reelID, models.RefReel, currentUserID); err != nil {
		return repoError(c, err, "Like not found")
	}

	go h.reelRepository.IncrementLikesCount(context.Background(), reelID, -1)

	return c.NoContent(http.StatusNoContent)
}
