package api

import (
	"errors"
	"net/http"

	reqdto "hall-booking/internal/handler/dto/request"
	resdto "hall-booking/internal/handler/dto/response"
	"hall-booking/internal/handler/middleware"
	"hall-booking/internal/usecase/commands"

	"github.com/gin-gonic/gin"
)

type FreeTicketHandler struct {
	commands commands.BookingCommands
}

func NewFreeTicketHandler(cmds commands.BookingCommands) *FreeTicketHandler {
	return &FreeTicketHandler{commands: cmds}
}

// @Summary Issue free tickets
// @Description Admin path: create a zero-priced confirmed booking with tickets, bypassing payment
// @Tags admin
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateFreeTicketRequest true "Free ticket request"
// @Success 201 {object} resdto.BookingResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Router /admin/free-tickets [post]
func (h *FreeTicketHandler) CreateFreeTicket(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	var req reqdto.CreateFreeTicketRequest
	if bindErr := c.ShouldBindJSON(&req); bindErr != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format"})
		return
	}

	input := commands.FreeTicketInput{
		UserID:        req.UserID,
		HallID:        req.HallID,
		StartTime:     req.StartTime,
		DurationHours: req.DurationHours,
		Persons:       req.Persons,
		Notes:         req.GetNotes(),
	}

	view, err := h.commands.CreateFreeTicket(c.Request.Context(), input, actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed for this hall"})
		case errors.Is(err, commands.ErrHallNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Hall not found"})
		case errors.Is(err, commands.ErrHallUnavailable):
			c.JSON(http.StatusConflict, gin.H{"error": "Hall is not available for booking"})
		case errors.Is(err, commands.ErrSlotConflict):
			c.JSON(http.StatusConflict, gin.H{"error": "Requested slot is no longer available"})
		case errors.Is(err, commands.ErrDomainValidation):
			c.JSON(http.StatusBadRequest, gin.H{"error": "Free ticket request failed validation"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusCreated, resdto.FromBookingView(view))
}
