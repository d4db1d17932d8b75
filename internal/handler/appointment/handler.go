package appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	"github.com/jwalitptl/clinic-portal/internal/model"
	appointmentService "github.com/jwalitptl/clinic-portal/internal/service/appointment"
)

type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/appointments", h.ListAppointments)
	r.POST("/appointments", h.BookAppointment)
	r.POST("/cancel_appointment/:id", h.CancelAppointment)
}

// ListAppointments renders the schedule plus the patient options the booking
// form needs.
func (h *Handler) ListAppointments(c *gin.Context) {
	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list appointments")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	options, err := h.service.ListPatientOptions(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list patient options")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{
		"appointments": appointments,
		"patients":     options,
	}).WithFlash(handler.PopFlash(c)))
}

// BookAppointment creates a booked appointment from the form and returns to
// the schedule.
func (h *Handler) BookAppointment(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.SetFlash(c, handler.FlashWarning, "Select patient and date/time.")
		c.Redirect(http.StatusFound, "/appointments")
		return
	}

	if _, err := h.service.BookAppointment(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, appointmentService.ErrMissingFields),
			errors.Is(err, appointmentService.ErrInvalidPatient),
			errors.Is(err, appointmentService.ErrInvalidDatetime):
			handler.SetFlash(c, handler.FlashWarning, "Select patient and date/time.")
			c.Redirect(http.StatusFound, "/appointments")
		default:
			log.Error().Err(err).Msg("failed to book appointment")
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		}
		return
	}

	handler.SetFlash(c, handler.FlashSuccess, "Appointment booked.")
	c.Redirect(http.StatusFound, "/appointments")
}

// CancelAppointment marks an appointment cancelled. An unknown id is a
// silent no-op and still reads as cancelled to the caller.
func (h *Handler) CancelAppointment(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		handler.SetFlash(c, handler.FlashWarning, "Invalid appointment id.")
		c.Redirect(http.StatusFound, "/appointments")
		return
	}

	if err := h.service.CancelAppointment(c.Request.Context(), id); err != nil {
		log.Error().Err(err).Msg("failed to cancel appointment")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	handler.SetFlash(c, handler.FlashInfo, "Appointment cancelled.")
	c.Redirect(http.StatusFound, "/appointments")
}
