package handlers

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/picnichub/memoryhub/backend/internal/models"
	"github.com/picnichub/memoryhub/backend/internal/repositories"
)

// MemoryHandler handles HTTP requests related to memories
type MemoryHandler struct {
	memoryRepository repositories.MemoryRepository
}

// NewMemoryHandler creates a new MemoryHandler
func NewMemoryHandler(memoryRepo repositories.MemoryRepository) *MemoryHandler {
	return &MemoryHandler{memoryRepository: memoryRepo}
}

// RegisterMemoryRoutes registers memory-related routes
func (h *MemoryHandler) RegisterMemoryRoutes(g *echo.Group) {
	g.POST("/memories", h.CreateMemory)
	g.GET("/memories/:id", h.GetMemory)
	g.GET("/users/:id/memories", h.GetUserMemories)
	g.DELETE("/memories/:id", h.DeleteMemory)
}

// CreateMemory creates a new memory. Media upload resolves files to durable
// URLs before this endpoint persists them.
func (h *MemoryHandler) CreateMemory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	var req models.CreateMemoryRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	memory := &models.Memory{
		UserID:    currentUserID,
		Caption:   req.Caption,
		ImageURLs: req.ImageURLs,
		VideoURLs: req.VideoURLs,
	}
	if err := h.memoryRepository.CreateMemory(c.Request().Context(), memory); err != nil {
		return repoError(c, err, "Memory not found")
	}

	return c.JSON(http.StatusCreated, memory)
}

// GetMemory retrieves a memory by ID
func (h *MemoryHandler) GetMemory(c echo.Context) error {
	memory, err := h.memoryRepository.GetMemoryByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Memory not found")
	}
	return c.JSON(http.StatusOK, memory)
}

// GetUserMemories retrieves a user's memories with pagination
func (h *MemoryHandler) GetUserMemories(c echo.Context) error {
	userID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid user ID")
	}

	page, limit := paginationParams(c, 20, 50)
	skip := int64((page - 1) * limit)

	memories, err := h.memoryRepository.GetMemoriesByUserID(c.Request().Context(), uint(userID), skip, int64(limit))
	if err != nil {
		return repoError(c, err, "Memories not found")
	}

	return c.JSON(http.StatusOK, echo.Map{"success": true, "data": echo.Map{"memories": memories}})
}

// DeleteMemory deletes a memory. Owner only.
func (h *MemoryHandler) DeleteMemory(c echo.Context) error {
	currentUserID := getUserIDFromContext(c)
	if currentUserID == 0 {
		return echo.NewHTTPError(http.StatusUnauthorized, "User not authenticated")
	}

	memory, err := h.memoryRepository.GetMemoryByID(c.Request().Context(), c.Param("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusNotFound, "Memory not found")
	}
	if memory.UserID != currentUserID {
		return echo.NewHTTPError(http.StatusForbidden, "Only the owner can delete a memory")
	}

	if err := h.memoryRepository.DeleteMemory(c.Request().Context(), c.Param("id")); err != nil {
		return repoError(c, err, "Memory not found")
	}

	return c.NoContent(http.StatusNoContent)
}
