package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/driftlab/drift-backend-go/internal/analysis"
	"github.com/driftlab/drift-backend-go/internal/format"
	"github.com/driftlab/drift-backend-go/internal/rng"
	"github.com/driftlab/drift-backend-go/internal/service"
	"github.com/driftlab/drift-backend-go/pkg/response"
)

// GenerationHandler handles HTTP requests for point generation
type GenerationHandler struct {
	service *service.GenerationService
}

// NewGenerationHandler creates a new generation handler
func NewGenerationHandler(service *service.GenerationService) *GenerationHandler {
	return &GenerationHandler{service: service}
}

// GenerateRequest is the JSON body for POST /api/v1/generate
type GenerateRequest struct {
	Lat            float64 `json:"lat"`
	Lng            float64 `json:"lng"`
	Radius         float64 `json:"radius"`
	Points         int     `json:"points"`
	GridResolution int     `json:"grid_resolution"`
	Backend        string  `json:"backend"`
	Seed           *int64  `json:"seed"`
	Mode           string  `json:"mode"`
	IncludePoints  bool    `json:"include_points"`
	Save           bool    `json:"save"`
}

// Generate handles POST /api/v1/generate
func (h *GenerationHandler) Generate(c *gin.Context) {
	var req GenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	mode, err := analysis.ParseMode(req.Mode)
	if err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	resp, err := h.service.Generate(service.GenerationParams{
		Lat:            req.Lat,
		Lng:            req.Lng,
		Radius:         req.Radius,
		Points:         req.Points,
		GridResolution: req.GridResolution,
		Backend:        req.Backend,
		Seed:           req.Seed,
		Mode:           mode,
		IncludePoints:  req.IncludePoints,
		Save:           req.Save,
	})
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrInvalidCoordinates),
			errors.Is(err, analysis.ErrInvalidRadius),
			errors.Is(err, analysis.ErrUnsupportedMode):
			response.BadRequest(c, err.Error())
		case errors.Is(err, rng.ErrSource):
			response.Error(c, http.StatusBadGateway, err.Error())
		default:
			response.InternalError(c, "Generation failed: "+err.Error())
		}
		return
	}

	response.Success(c, resp)
}

// Status handles GET /api/v1/status
func (h *GenerationHandler) Status(c *gin.Context) {
	status := h.service.CheckBackend(c.Query("backend"))
	response.Success(c, status)
}

// Backends handles GET /api/v1/backends
func (h *GenerationHandler) Backends(c *gin.Context) {
	response.Success(c, h.service.Backends())
}

// Types handles GET /api/v1/types
func (h *GenerationHandler) Types(c *gin.Context) {
	types := make([]gin.H, 0, len(analysis.AnomalyTypes()))
	for _, t := range analysis.AnomalyTypes() {
		types = append(types, gin.H{
			"name":        t.String(),
			"description": t.Describe(),
		})
	}
	response.Success(c, types)
}

// Formats handles GET /api/v1/formats
func (h *GenerationHandler) Formats(c *gin.Context) {
	response.Success(c, format.Available())
}
