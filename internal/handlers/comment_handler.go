package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/notify"
	"github.com/picnichub/memoryhub/backend/internal/repositories"
)

// CommentHandler handles HTTP requests related to comments
type CommentHandler struct {
	commentRepository repositories.CommentRepository
	memoryRepository  repositories.MemoryRepository
	reelRepository    repositories.ReelRepository
	notifier          *notify.Writer
}

// NewCommentHandler creates a new CommentHandler
func NewCommentHandler(commentRepo repositories.CommentRepository, memoryRepo repositories.MemoryRepository, reelRepo repositories.ReelRepository, notifier *notify.Writer) *CommentHandler {
	return &CommentHandler{
		commentRepository: commentRepo,
		memoryRepository:  memoryRepo,
		reelRepository:    reelRepo,
		notifier:          notifier,
	}
}

// RegisterCommentRoutes registers comment-related routes
func (h *CommentHandler) RegisterCommentRoutes(g *echo.Group) {
	g.POST("/memories/:id/comments", h.CommentOnMemory)
	g.GET("/memories/:id/comments", h.GetMemoryComments)
	g.POST("/reels/:id/comments", h.CommentOnReel)
	g.GET("/reels/:id/comments", h.GetReelComments)
	g.PUT("/comments/:id", h.UpdateComment)
	g.DELETE("/comments/:id", h.DeleteComment)
}

// CommentOnMemory creates a comment on a memory
func (h *CommentHandler) CommentOnMemory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	memoryID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	memory, err := h.memoryRepository.GetMemoryByID(c.Request().Context(), memoryID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Memory not found")
	}

	comment := &models.Comment{
		TargetID:   memoryID,
		TargetType: models.RefMemory,
		UserID:     currentUserID,
		Content:    req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return repoError(c, err, "Memory not found")
	}

	go h.memoryRepository.IncrementCommentsCount(context.Background(), memoryID, 1)

	h.notifier.Notify(&models.Notification{
		RecipientID: memory.UserID,
		SenderID:    currentUserID,
		Type:        models.NotificationCommentMemory,
		ReferenceID: memoryID,
		OnModel:     models.RefMemory,
		Meta:        models.NotificationMeta{"comment_id": strconv.FormatUint(uint64(comment.ID), 10)},
	})

	return c.JSON(http.StatusCreated, comment)
}

// GetMemoryComments returns paginated comments for a memory
func (h *CommentHandler) GetMemoryComments(c echo.Context) error {
	return h.getComments(c, c.Param("id"), models.RefMemory)
}

// CommentOnReel creates a comment on a reel
func (h *CommentHandler) CommentOnReel(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}
	reelID := c.Param("id")

	var req models.CreateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reel, err := h.reelRepository.GetReelByID(c.Request().Context(), reelID)
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Reel not found")
	}

	comment := &models.Comment{
		TargetID:   reelID,
		TargetType: models.RefReel,
		UserID:     currentUserID,
		Content:    req.Content,
	}
	if err := h.commentRepository.CreateComment(comment); err != nil {
		return repoError(c, err, "Reel not found")
	}

	go h.reelRepository.IncrementCommentsCount(context.Background(), reelID, 1)

	h.notifier.Notify(&models.Notification{
		RecipientID: reel.UserID,
		SenderID:    currentUserID,
		Type:        models.NotificationCommentReel,
		ReferenceID: reelID,
		OnModel:     models.RefReel,
		Meta:        models.NotificationMeta{"comment_id": strconv.FormatUint(uint64(comment.ID), 10)},
	})

	return c.JSON(http.StatusCreated, comment)
}

// GetReelComments returns paginated comments for a reel
func (h *CommentHandler) GetReelComments(c echo.Context) error {
	return h.getComments(c, c.Param("id"), models.RefReel)
}

func (h *CommentHandler) getComments(c echo.Context, targetID, targetType string) error {
	page, limit := paginationParams(c, 20, 100)

	comments, total, err := h.commentRepository.GetCommentsByTarget(targetID, targetType, page, limit)
	if err != nil {
		return repoError(c, err, "Comments not found")
	}

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"comments": comments},
		"meta":    paginationMeta(page, limit, total),
	})
}

// UpdateComment edits a comment. Author only.
func (h *CommentHandler) UpdateComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	var req models.UpdateCommentRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return repoError(c, err, "Comment not found")
	}
	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can edit a comment")
	}

	comment.Content = req.Content
	if err := h.commentRepository.UpdateComment(comment); err != nil {
		return repoError(c, err, "Comment not found")
	}

	return c.JSON(http.StatusOK, comment)
}

// DeleteComment removes a comment. Author only.
func (h *CommentHandler) DeleteComment(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	commentID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid comment ID")
	}

	comment, err := h.commentRepository.GetCommentByID(uint(commentID))
	if err != nil {
		return repoError(c, err, "Comment not found")
	}
	if comment.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the author can delete a comment")
	}

	if err := h.commentRepository.DeleteComment(comment.ID); err != nil {
		return repoError(c, err, "Comment not found")
	}

	switch comment.TargetType {
	case models.RefMemory:
		go h.memoryRepository.IncrementCommentsCount(context.Background(), comment.TargetID, -1)
	case models.RefReel:
		go h.reelRepository.IncrementCommentsCount(context.Background(), comment.TargetID, -1)
	}

	return c.NoContent(http.StatusNoContent)
}
