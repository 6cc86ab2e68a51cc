//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"
	"time"

	"hall-booking/internal/domain/user"
	"hall-booking/internal/handler/api"
	"hall-booking/internal/usecase/commands"
	"hall-booking/internal/usecase/queries"
	"hall-booking/tests/common/httptest"
	commandsmock "hall-booking/tests/mock/commands"
	queriesmock "hall-booking/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type TicketHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockTicketCommands
	mockQueries  *queriesmock.MockTicketQueries
	handler      *api.TicketHandler
	actorID      uuid.UUID
}

func (s *TicketHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockTicketCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockTicketQueries(s.mockCtrl)
	s.handler = api.NewTicketHandler(s.mockCommands, s.mockQueries)
	s.actorID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
			return
		}
		c.Set("actor", user.Actor{ID: s.actorID, Role: user.RoleStaff})
		c.Next()
	}

	s.router.GET("/bookings/:id/tickets", authMiddleware, s.handler.ListBookingTickets)
	s.router.POST("/tickets/:id/use", authMiddleware, s.handler.UseTicket)
}

func (s *TicketHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestTicketHandlerSuite(t *testing.T) {
	suite.Run(t, new(TicketHandlerTestSuite))
}

func ticketView() *queries.TicketView {
	return &queries.TicketView{
		ID:         uuid.New(),
		BookingID:  uuid.New(),
		Token:      uuid.New(),
		Status:     "valid",
		ValidFrom:  time.Date(2030, 6, 1, 10, 0, 0, 0, time.UTC),
		ValidUntil: time.Date(2030, 6, 1, 12, 0, 0, 0, time.UTC),
		CreatedAt:  time.Date(2030, 5, 1, 12, 0, 0, 0, time.UTC),
	}
}

func (s *TicketHandlerTestSuite) TestListBookingTickets() {
	view := ticketView()
	url := "/bookings/" + view.BookingID.String() + "/tickets"

	s.Run("success: returns the booking's tickets", func() {
		s.mockQueries.EXPECT().ListByBooking(gomock.Any(), gomock.Any(), view.BookingID).
			Return([]*queries.TicketView{view}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body []map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Require().Len(body, 1)
		s.Equal(view.Token.String(), body[0]["token"])
	})

	s.Run("error: 400 on a malformed booking ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/bookings/nope/tickets", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: query errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "booking not found", err: queries.ErrBookingNotFound, expectCode: http.StatusNotFound},
			{name: "not authorized", err: queries.ErrNotAuthorized, expectCode: http.StatusForbidden},
			{name: "unexpected failure", err: errors.New("boom"), expectCode: http.StatusInternalServerError},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockQueries.EXPECT().ListByBooking(gomock.Any(), gomock.Any(), view.BookingID).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})
}

func (s *TicketHandlerTestSuite) TestUseTicket() {
	view := ticketView()
	view.Status = "used"
	url := "/tickets/" + view.ID.String() + "/use"

	s.Run("success: consumes the ticket", func() {
		s.mockCommands.EXPECT().MarkUsed(gomock.Any(), view.ID, gomock.Any()).
			Return(view, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")

		var body map[string]any
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal("used", body["status"])
	})

	s.Run("error: 400 on a malformed ticket ID", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, "/tickets/nope/use", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "")
	})

	s.Run("error: scan errors map to status codes", func() {
		cases := []struct {
			name       string
			err        error
			expectCode int
		}{
			{name: "ticket not found", err: commands.ErrTicketNotFound, expectCode: http.StatusNotFound},
			{name: "not authorized", err: commands.ErrNotAuthorized, expectCode: http.StatusForbidden},
			{name: "already used", err: commands.ErrTicketAlreadyUsed, expectCode: http.StatusConflict},
			{name: "expired", err: commands.ErrTicketExpired, expectCode: http.StatusGone},
			{name: "not yet valid", err: commands.ErrTicketNotYetValid, expectCode: http.StatusConflict},
			{name: "cancelled", err: commands.ErrTicketCancelled, expectCode: http.StatusConflict},
		}
		for _, tc := range cases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().MarkUsed(gomock.Any(), view.ID, gomock.Any()).
					Return(nil, tc.err).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 without a token", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "")
	})
}
