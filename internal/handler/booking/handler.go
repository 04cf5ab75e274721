package booking

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/booking-bot/internal/handler"
	"github.com/glowdesk/booking-bot/internal/model"
	bookingsvc "github.com/glowdesk/booking-bot/internal/service/booking"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
)

// Handler exposes bookings over the admin API. The chat funnel is the
// primary write path; this surface exists for dashboards and for
// direct booking creation by operators.
type Handler struct {
	booking *bookingsvc.Service
}

func NewHandler(svc *bookingsvc.Service) *Handler {
	return &Handler{booking: svc}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/bookings", h.ListBookings)
	r.POST("/bookings", h.CreateBooking)
}

func (h *Handler) ListBookings(c *gin.Context) {
	bookings, err := h.booking.ListAll(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list bookings"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"count":    len(bookings),
		"bookings": bookings,
	}))
}

func (h *Handler) CreateBooking(c *gin.Context) {
	var req model.BookingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("invalid booking request"))
		return
	}

	b, err := h.booking.Book(c.Request.Context(), &req)
	if err != nil {
		switch {
		case apperrors.IsConflict(err):
			c.JSON(http.StatusConflict, handler.NewErrorResponse("time slot is already booked"))
		case apperrors.IsValidation(err):
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to create booking"))
		}
		return
	}
	c.JSON(http.StatusCreated, handler.NewSuccessResponse(b))
}
