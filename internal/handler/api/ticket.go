package api

import (
	"errors"
	"net/http"

	resdto "hall-booking/internal/handler/dto/response"
	"hall-booking/internal/handler/middleware"
	"hall-booking/internal/usecase/commands"
	"hall-booking/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketHandler struct {
	commands commands.TicketCommands
	queries  queries.TicketQueries
}

func NewTicketHandler(cmds commands.TicketCommands, qs queries.TicketQueries) *TicketHandler {
	return &TicketHandler{
		commands: cmds,
		queries:  qs,
	}
}

// @Summary List booking tickets
// @Description List the tickets issued for a booking
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Booking ID"
// @Success 200 {array} resdto.TicketResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /bookings/{id}/tickets [get]
func (h *TicketHandler) ListBookingTickets(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	bookingID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid booking ID format"})
		return
	}

	views, err := h.queries.ListByBooking(c.Request.Context(), actor, bookingID)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrBookingNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Booking not found"})
		case errors.Is(err, queries.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Not allowed for this booking"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromTicketViews(views))
}

// @Summary Use ticket
// @Description Consume a ticket at the door (staff scanner)
// @Tags tickets
// @Produce json
// @Security BearerAuth
// @Param id path string true "Ticket ID"
// @Success 200 {object} resdto.TicketResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Failure 409 {object} map[string]string
// @Failure 410 {object} map[string]string
// @Router /tickets/{id}/use [post]
func (h *TicketHandler) UseTicket(c *gin.Context) {
	actor, ok := middleware.GetActor(c)
	if !ok {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		return
	}

	ticketID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid ticket ID format"})
		return
	}

	view, err := h.commands.MarkUsed(c.Request.Context(), ticketID, actor)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrTicketNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Ticket not found"})
		case errors.Is(err, commands.ErrNotAuthorized):
			c.JSON(http.StatusForbidden, gin.H{"error": "Staff access required"})
		case errors.Is(err, commands.ErrTicketAlreadyUsed):
			c.JSON(http.StatusConflict, gin.H{"error": "Ticket already used"})
		case errors.Is(err, commands.ErrTicketExpired):
			c.JSON(http.StatusGone, gin.H{"error": "Ticket expired"})
		case errors.Is(err, commands.ErrTicketNotYetValid):
			c.JSON(http.StatusConflict, gin.H{"error": "Ticket not yet valid"})
		case errors.Is(err, commands.ErrTicketCancelled):
			c.JSON(http.StatusConflict, gin.H{"error": "Ticket was cancelled"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
		}
		return
	}
	c.JSON(http.StatusOK, resdto.FromTicketView(view))
}
