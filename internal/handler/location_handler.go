package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/driftlab/drift-backend-go/internal/service"
	"github.com/driftlab/drift-backend-go/pkg/response"
)

// LocationHandler handles HTTP requests for location resolution
type LocationHandler struct {
	service *service.LocationService
}

// NewLocationHandler creates a new location handler
func NewLocationHandler(service *service.LocationService) *LocationHandler {
	return &LocationHandler{service: service}
}

// Geocode handles GET /api/v1/location?q=
func (h *LocationHandler) Geocode(c *gin.Context) {
	query := c.Query("q")
	if query == "" {
		response.BadRequest(c, "Missing query parameter: q")
		return
	}

	loc, err := h.service.Resolve(query)
	if err != nil {
		response.NotFound(c, err.Error())
		return
	}

	response.Success(c, loc)
}

// Here handles GET /api/v1/location/here
func (h *LocationHandler) Here(c *gin.Context) {
	loc, err := h.service.Here()
	if err != nil {
		response.InternalError(c, "Failed to locate: "+err.Error())
		return
	}

	response.Success(c, loc)
}

// Reverse handles GET /api/v1/location/reverse?lat=&lng=
func (h *LocationHandler) Reverse(c *gin.Context) {
	lat, err := strconv.ParseFloat(c.Query("lat"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lat parameter")
		return
	}
	lng, err := strconv.ParseFloat(c.Query("lng"), 64)
	if err != nil {
		response.BadRequest(c, "Invalid lng parameter")
		return
	}

	loc, err := h.service.Describe(lat, lng)
	if err != nil {
		response.InternalError(c, "Failed to reverse geocode: "+err.Error())
		return
	}

	response.Success(c, loc)
}
