package patient

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	"github.com/jwalitptl/clinic-portal/internal/model"
	patientService "github.com/jwalitptl/clinic-portal/internal/service/patient"
)

type Handler struct {
	service *patientService.Service
}

func NewHandler(service *patientService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/add_patient", h.AddPatientPage)
	r.POST("/add_patient", h.AddPatient)
	r.GET("/patients", h.ListPatients)
}

// AddPatientPage renders the registration form view model.
func (h *Handler) AddPatientPage(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"page": "add_patient"}).WithFlash(handler.PopFlash(c)))
}

// AddPatient records a new patient and returns to the patient list.
func (h *Handler) AddPatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBind(&req); err != nil {
		handler.SetFlash(c, handler.FlashWarning, "Patient name is required.")
		c.Redirect(http.StatusFound, "/add_patient")
		return
	}

	if _, err := h.service.AddPatient(c.Request.Context(), &req); err != nil {
		switch {
		case errors.Is(err, patientService.ErrNameRequired):
			handler.SetFlash(c, handler.FlashWarning, "Patient name is required.")
			c.Redirect(http.StatusFound, "/add_patient")
		case errors.Is(err, patientService.ErrInvalidAge):
			handler.SetFlash(c, handler.FlashWarning, "Age must be a number.")
			c.Redirect(http.StatusFound, "/add_patient")
		default:
			log.Error().Err(err).Msg("failed to add patient")
			c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		}
		return
	}

	handler.SetFlash(c, handler.FlashSuccess, "Patient added successfully.")
	c.Redirect(http.StatusFound, "/patients")
}

// ListPatients renders every patient, most recent first.
func (h *Handler) ListPatients(c *gin.Context) {
	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to list patients")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"patients": patients}).WithFlash(handler.PopFlash(c)))
}
