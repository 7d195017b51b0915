package handlers

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/picnichub/memoryhub/backend/internal/feed"
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/notify"
	"github.com/picnichub/memoryhub/backend/internal/repositories"
)

// StoryHandler handles story-related HTTP requests
type StoryHandler struct {
	storyRepository  repositories.StoryRepository
	userRepository   repositories.UserRepository
	followRepository repositories.FollowRepository
	notifier         *notify.Writer
}

// NewStoryHandler creates a new StoryHandler
func NewStoryHandler(storyRepo repositories.StoryRepository, userRepo repositories.UserRepository, followRepo repositories.FollowRepository, notifier *notify.Writer) *StoryHandler {
	return &StoryHandler{
		storyRepository:  storyRepo,
		userRepository:   userRepo,
		followRepository: followRepo,
		notifier:         notifier,
	}
}

// RegisterStoryRoutes registers story-related routes
func (h *StoryHandler) RegisterStoryRoutes(g *echo.Group) {
	g.GET("/stories", h.GetFeed)
	g.POST("/stories", h.CreateStory)
	g.POST("/stories/:id/view", h.RecordView)
	g.DELETE("/stories/:id", h.DeleteStory)
}

// GetFeed returns active stories grouped per uploader, unseen groups
// first. The feed is computed on every request; there is no cache.
func (h *StoryHandler) GetFeed(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	stories, err := h.storyRepository.GetActiveStories(c.Request().Context())
	if err != nil {
		return repoError(c, err, "Stories not found")
	}

	// Resolve uploaders in one batch. Stories whose uploader is gone are
	// dropped by the aggregator.
	uploaderIDs := make([]uint, 0, len(stories))
	seenIDs := make(map[uint]bool)
	for _, s := range stories {
		if !seenIDs[s.UserID] {
			seenIDs[s.UserID] = true
			uploaderIDs = append(uploaderIDs, s.UserID)
		}
	}
	users, err := h.userRepository.GetUsersByIDs(uploaderIDs)
	if err != nil {
		return repoError(c, err, "Stories not found")
	}
	uploaders := make(map[uint]models.UserCompact, len(users))
	for _, u := range users {
		uploaders[u.ID] = u.ToCompact()
	}

	groups := feed.Build(stories, uploaders, currentUserID)

	return c.JSON(http.StatusOK, echo.Map{
		"success": true,
		"data":    echo.Map{"groups": groups},
	})
}

// CreateStory creates a new story and fans out new_story notifications to
// the uploader's followers.
func (h *StoryHandler) CreateStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateStoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	duration := req.Duration
	if duration == 0 {
		duration = 5
	}

	story := &models.Story{
		UserID: currentUserID,
		Items: []models.StoryItem{
			{
				ID:        uuid.NewString(),
				Type:      req.Type,
				URL:       req.MediaURL,
				Duration:  duration,
				CreatedAt: time.Now(),
			},
		},
	}

	if err := h.storyRepository.CreateStory(c.Request().Context(), story); err != nil {
		return repoError(c, err, "Story not found")
	}

	// Fan out to followers. Best-effort; the story is already persisted.
	followerIDs, err := h.followRepository.GetFollowerIDs(currentUserID)
	if err != nil {
		c.Logger().Errorf("loading followers for story fan-out: %v", err)
	} else {
		h.notifier.NotifyAll(followerIDs, models.Notification{
			SenderID:    currentUserID,
			Type:        models.NotificationNewStory,
			ReferenceID: story.ID.Hex(),
			OnModel:     models.RefStory,
		})
	}

	return c.JSON(http.StatusCreated, echo.Map{"success": true, "data": echo.Map{"story": story}})
}

// RecordView idempotently adds the caller to the story's viewer set. A
// story that expired between request and execution is a silent no-op.
func (h *StoryHandler) RecordView(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID := c.Param("id")
	if err := h.storyRepository.AddViewer(c.Request().Context(), storyID, currentUserID); err != nil {
		return repoError(c, err, "Story not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"success": true}})
}

// DeleteStory physically removes a story. Uploader only.
func (h *StoryHandler) DeleteStory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	storyID := c.Param("id")
	story, err := h.storyRepository.GetStoryByID(c.Request().Context(), storyID)
	if err != nil {
		return repoError(c, err, "Story not found")
	}
	if !story.UploadedBy(currentUserID) {
		return echo.NewHTTPError(http.StatusForbidden, "Only the uploader can delete a story")
	}

	if err := h.storyRepository.DeleteStory(c.Request().Context(), storyID); err != nil {
		return repoError(c, err, "Story not found")
	}

	return c.NoContent(http.StatusNoContent)
}
