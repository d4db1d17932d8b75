package dashboard

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	appointmentService "github.com/jwalitptl/clinic-portal/internal/service/appointment"
)

type Handler struct {
	service *appointmentService.Service
}

func NewHandler(service *appointmentService.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/dashboard", h.Dashboard)
}

// Dashboard renders the landing counts: all patients, appointments still
// booked.
func (h *Handler) Dashboard(c *gin.Context) {
	stats, err := h.service.DashboardStats(c.Request.Context())
	if err != nil {
		log.Error().Err(err).Msg("failed to load dashboard stats")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	c.JSON(http.StatusOK, handler.NewSuccessResponse(stats).WithFlash(handler.PopFlash(c)))
}
