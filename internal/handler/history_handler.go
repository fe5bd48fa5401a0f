package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/models"
	"github.com/driftlab/drift-backend-go/internal/repository"
	"github.com/driftlab/drift-backend-go/internal/service"
	"github.com/driftlab/drift-backend-go/pkg/response"
)

// HistoryHandler handles HTTP requests for saved generations
type HistoryHandler struct {
	service    *service.HistoryService
	generation *service.GenerationService
}

// NewHistoryHandler creates a new history handler
func NewHistoryHandler(service *service.HistoryService, generation *service.GenerationService) *HistoryHandler {
	return &HistoryHandler{service: service, generation: generation}
}

// List handles GET /api/v1/history
func (h *HistoryHandler) List(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "0"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	entries, err := h.service.List(limit, offset)
	if err != nil {
		response.InternalError(c, "Failed to list history: "+err.Error())
		return
	}

	response.Success(c, gin.H{
		"data":  entries,
		"count": len(entries),
	})
}

// Get handles GET /api/v1/history/:id
func (h *HistoryHandler) Get(c *gin.Context) {
	entry, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Generation not found")
			return
		}
		response.InternalError(c, "Failed to get generation: "+err.Error())
		return
	}

	response.Success(c, entry)
}

// Update handles PATCH /api/v1/history/:id
func (h *HistoryHandler) Update(c *gin.Context) {
	var update models.HistoryUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	if err := h.service.Update(c.Param("id"), update); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Generation not found")
			return
		}
		response.InternalError(c, "Failed to update generation: "+err.Error())
		return
	}

	response.Success(c, nil)
}

// Delete handles DELETE /api/v1/history/:id
func (h *HistoryHandler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Param("id")); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Generation not found")
			return
		}
		response.InternalError(c, "Failed to delete generation: "+err.Error())
		return
	}

	response.Success(c, nil)
}

// Clear handles DELETE /api/v1/history
func (h *HistoryHandler) Clear(c *gin.Context) {
	if err := h.service.Clear(); err != nil {
		response.InternalError(c, "Failed to clear history: "+err.Error())
		return
	}

	response.Success(c, nil)
}

// Share handles GET /api/v1/history/:id/share, rendering a saved generation
// in a shareable output format
func (h *HistoryHandler) Share(c *gin.Context) {
	entry, err := h.service.Get(c.Param("id"))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "Generation not found")
			return
		}
		response.InternalError(c, "Failed to get generation: "+err.Error())
		return
	}

	displayType := analysis.Attractor
	if t := c.Query("type"); t != "" {
		displayType, err = analysis.ParseAnomalyType(t)
		if err != nil {
			response.BadRequest(c, err.Error())
			return
		}
	}

	rendered, err := h.generation.FormatResponse(&entry.Response, c.DefaultQuery("format", "url"), displayType)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	response.Success(c, gin.H{
		"id":      entry.Response.ID,
		"format":  c.DefaultQuery("format", "url"),
		"content": rendered,
	})
}
