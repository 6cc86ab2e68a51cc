package api

import (
	"errors"
	"net/http"

	resdto "hall-booking/internal/handler/dto/response"
	"hall-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type SlotHandler struct {
	queries queries.SlotQueries
}

func NewSlotHandler(qs queries.SlotQueries) *SlotHandler {
	return &SlotHandler{queries: qs}
}

// @Summary Get hall slots
// @Description Resolve the free/busy slot grid for a hall on a given date
// @Tags halls
// @Produce json
// @Param id path string true "Hall ID"
// @Param date query string true "Date (YYYY-MM-DD)"
// @Success 200 {object} resdto.SlotListResponse
// @Failure 400 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /halls/{id}/slots [get]
func (h *SlotHandler) GetSlots(c *gin.Context) {
	hallID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hall ID format"})
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date query parameter required"})
		return
	}

	views, err := h.queries.GetSlots(c.Request.Context(), hallID, date)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrInvalidDate):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid date, expected YYYY-MM-DD"})
		case errors.Is(err, queries.ErrHallNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromSlotViews(date, views))
}
