package catalog

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/glowdesk/booking-bot/internal/handler"
	"github.com/glowdesk/booking-bot/internal/repository"
	"github.com/glowdesk/booking-bot/internal/service/availability"
	"github.com/glowdesk/booking-bot/internal/service/salon"
	apperrors "github.com/glowdesk/booking-bot/pkg/errors"
)

// Handler exposes the read-only directory: salons, their services and
// staff, and computed slot availability.
type Handler struct {
	directory    *salon.Directory
	catalog      repository.CatalogRepository
	availability *availability.Service
}

func NewHandler(directory *salon.Directory, catalog repository.CatalogRepository, availabilitySvc *availability.Service) *Handler {
	return &Handler{
		directory:    directory,
		catalog:      catalog,
		availability: availabilitySvc,
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/salons", h.ListSalons)
	r.GET("/salons/:salon_id/services", h.ListServices)
	r.GET("/salons/:salon_id/staff", h.ListStaff)
	r.GET("/salons/:salon_id/staff/:name/slots", h.ListSlots)
}

func (h *Handler) ListSalons(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(h.directory.List()))
}

func (h *Handler) ListServices(c *gin.Context) {
	salonID := c.Param("salon_id")
	if _, err := h.directory.Get(salonID); err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(fmt.Sprintf("salon %s not found", salonID)))
		return
	}

	services, err := h.catalog.ListServices(c.Request.Context(), salonID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list services"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(services))
}

func (h *Handler) ListStaff(c *gin.Context) {
	salonID := c.Param("salon_id")
	if _, err := h.directory.Get(salonID); err != nil {
		c.JSON(http.StatusNotFound, handler.NewErrorResponse(fmt.Sprintf("salon %s not found", salonID)))
		return
	}

	var (
		staff interface{}
		err   error
	)
	if serviceID := c.Query("service_id"); serviceID != "" {
		staff, err = h.catalog.ListStaffForService(c.Request.Context(), salonID, serviceID)
	} else {
		staff, err = h.catalog.ListStaff(c.Request.Context(), salonID)
	}
	if err != nil {
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to list staff"))
		return
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(staff))
}

// ListSlots returns the open slots for one staff member on one date.
// The date must be YYYY-MM-DD; a closed day yields an empty list.
func (h *Handler) ListSlots(c *gin.Context) {
	salonID := c.Param("salon_id")
	name := c.Param("name")
	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, handler.NewErrorResponse("date query parameter is required"))
		return
	}

	slots, err := h.availability.AvailableSlots(c.Request.Context(), name, salonID, date)
	if err != nil {
		switch {
		case apperrors.IsNotFound(err):
			c.JSON(http.StatusNotFound, handler.NewErrorResponse(err.Error()))
		case apperrors.IsValidation(err):
			c.JSON(http.StatusBadRequest, handler.NewErrorResponse(err.Error()))
		default:
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("failed to compute availability"))
		}
		return
	}

	formatted := make([]string, 0, len(slots))
	for _, s := range slots {
		formatted = append(formatted, s.Format())
	}
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"staff": name,
		"date":  date,
		"slots": formatted,
	}))
}
