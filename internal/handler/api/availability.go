package api

import (
	"errors"
	"net/http"
	"time"

	resdto "turfbook/internal/handler/dto/response"
	"turfbook/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type AvailabilityHandler struct {
	availabilityQueries queries.AvailabilityQueries
}

func NewAvailabilityHandler(availabilityQueries queries.AvailabilityQueries) *AvailabilityHandler {
	return &AvailabilityHandler{
		availabilityQueries: availabilityQueries,
	}
}

// @Summary Get turf availability
// @Description Get the slot grid with occupancy for a turf and date
// @Tags turfs
// @Produce json
// @Param id path string true "Turf ID"
// @Param date query string true "Date in YYYY-MM-DD format"
// @Success 200 {object} resdto.AvailabilityResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 503 {object} map[string]string
// @Router /turfs/{id}/availability [get]
func (h *AvailabilityHandler) GetAvailability(c *gin.Context) {
	turfID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "Invalid turf ID format",
		})
		return
	}

	dateStr := c.Query("date")
	if dateStr == "" {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date query parameter is required",
		})
		return
	}
	date, err := time.ParseInLocation("2006-01-02", dateStr, time.UTC)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "date must be in YYYY-MM-DD format",
		})
		return
	}

	view, err := h.availabilityQueries.Resolve(c.Request.Context(), turfID, date)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrTurfNotFound):
			c.JSON(http.StatusNotFound, gin.H{
				"error": "Turf not found",
			})
		case errors.Is(err, queries.ErrAvailabilityUnavailable):
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Availability temporarily unavailable",
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error": "Internal server error",
			})
		}
		return
	}

	c.JSON(http.StatusOK, resdto.FromAvailabilityView(view))
}
