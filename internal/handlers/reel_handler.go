package handlers

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/repositories"
)

// ReelHandler handles HTTP requests related to reels
type ReelHandler struct {
	reelRepository repositories.ReelRepository
}

// NewReelHandler creates a new ReelHandler
func NewReelHandler(reelRepo repositories.ReelRepository) *ReelHandler {
	return &ReelHandler{reelRepository: reelRepo}
}

// RegisterReelRoutes registers reel-related routes
func (h *ReelHandler) RegisterReelRoutes(g *echo.Group) {
	g.POST("/reels", h.CreateReel)
	g.GET("/reels", h.GetReels)
	g.GET("/reels/:id", h.GetReel)
	g.DELETE("/reels/:id", h.DeleteReel)
}

// CreateReel creates a new reel
func (h *ReelHandler) CreateReel(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateReelRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	reel := &models.Reel{
		UserID:       currentUserID,
		Caption:      req.Caption,
		VideoURL:     req.VideoURL,
		ThumbnailURL: req.ThumbnailURL,
	}
	if err := h.reelRepository.CreateReel(c.Request().Context(), reel); err != nil {
		return repoError(c, err, "Reel not found")
	}

	return c.JSON(http.StatusCreated, reel)
}

// GetReels retrieves reels with pagination, newest first
func (h *ReelHandler) GetReels(c echo.Context) error {
	page, limit := paginationParams(c, 20, 50)
	skip := int64((page - 1) * limit)

	reels, err := h.reelRepository.GetReels(c.Request().Context(), skip, int64(limit))
	if err != nil {
		return repoError(c, err, "Reels not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"reels": reels}})
}

// GetReel retrieves a reel by ID
func (h *ReelHandler) GetReel(c echo.Context) error {
	reel, err := h.reelRepository.GetReelByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Reel not found")
	}
	return c.JSON(http.StatusOK, reel)
}

// DeleteReel deletes a reel. Owner only.
func (h *ReelHandler) DeleteReel(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	reel, err := h.reelRepository.GetReelByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Reel not found")
	}
	if reel.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the owner can delete a reel")
	}

	if err := h.reelRepository.DeleteReel(c.Request().Context(), c.Param("id")); err != nil {
		return repoError(c, err, "Reel not found")
	}

	return c.NoContent(http.StatusNoContent)
}
