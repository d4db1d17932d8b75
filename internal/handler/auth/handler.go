package auth

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-portal/internal/handler"
	"github.com/jwalitptl/clinic-portal/internal/model"
	authService "github.com/jwalitptl/clinic-portal/internal/service/auth"
	"github.com/jwalitptl/clinic-portal/pkg/auth"
)

type Handler struct {
	service   *authService.Service
	cookieTTL int
}

func NewHandler(service *authService.Service, cookieTTLSeconds int) *Handler {
	return &Handler{service: service, cookieTTL: cookieTTLSeconds}
}

// RegisterRoutes wires the unauthenticated surface.
func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	r.GET("/", h.Index)
	r.GET("/login", h.LoginPage)
	r.POST("/login", h.Login)
}

// RegisterProtectedRoutes wires the routes behind the session guard.
func (h *Handler) RegisterProtectedRoutes(r *gin.RouterGroup) {
	r.GET("/logout", h.Logout)
}

// Index sends authenticated visitors to the dashboard, everyone else to the
// login page.
func (h *Handler) Index(c *gin.Context) {
	if token, err := c.Cookie(auth.CookieName); err == nil {
		if _, err := h.service.ValidateSession(token); err == nil {
			c.Redirect(http.StatusFound, "/dashboard")
			return
		}
	}
	c.Redirect(http.StatusFound, "/login")
}

// LoginPage renders the login form view model.
func (h *Handler) LoginPage(c *gin.Context) {
	c.JSON(http.StatusOK, handler.NewSuccessResponse(gin.H{"page": "login"}).WithFlash(handler.PopFlash(c)))
}

// Login validates the submitted credentials. Failure always reads the same,
// whatever was wrong with the pair.
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		h.renderLoginFailure(c)
		return
	}

	token, err := h.service.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		if errors.Is(err, model.ErrInvalidCredentials) {
			h.renderLoginFailure(c)
			return
		}
		log.Error().Err(err).Msg("login failed")
		c.JSON(http.StatusInternalServerError, handler.NewErrorResponse("internal server error"))
		return
	}

	c.SetCookie(auth.CookieName, token, h.cookieTTL, "/", "", false, true)
	handler.SetFlash(c, handler.FlashSuccess, "Logged in successfully.")
	c.Redirect(http.StatusFound, "/dashboard")
}

// Logout clears the session unconditionally.
func (h *Handler) Logout(c *gin.Context) {
	c.SetCookie(auth.CookieName, "", -1, "/", "", false, true)
	handler.SetFlash(c, handler.FlashInfo, "Logged out.")
	c.Redirect(http.StatusFound, "/login")
}

func (h *Handler) renderLoginFailure(c *gin.Context) {
	c.JSON(http.StatusUnauthorized, handler.NewErrorResponse("Invalid credentials.").WithFlash(&handler.Flash{
		Level:   handler.FlashDanger,
		Message: "Invalid credentials.",
	}))
}
