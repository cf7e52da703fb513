package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shiptrain/portal/internal/models"
	"github.com/shiptrain/portal/internal/services"
)

// AuthHandler serves login, logout and current-user for one surface
type AuthHandler struct {
	service       services.AuthServiceInterface
	surface       string
	sessionHeader string
}

// NewAuthHandler creates an AuthHandler. sessionHeader names the header that
// carries server-side session ids; leave it empty for bearer surfaces.
func NewAuthHandler(service services.AuthServiceInterface, surface, sessionHeader string) *AuthHandler {
	return &AuthHandler{
		service:       service,
		surface:       surface,
		sessionHeader: sessionHeader,
	}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondValidationError(c, err)
		return
	}

	resp, err := h.service.Login(c.Request.Context(), h.surface, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			respondError(c, http.StatusUnauthorized, "incorrect username or password", err)
			return
		}
		respondError(c, http.StatusInternalServerError, "login failed", err)
		return
	}

	respondOK(c, "login successful", resp)
}

// Logout handles POST /auth/logout. Bearer tokens are stateless, so only
// session-header surfaces have anything to drop.
func (h *AuthHandler) Logout(c *gin.Context) {
	if h.sessionHeader != "" {
		sessionID := c.GetHeader(h.sessionHeader)
		if sessionID == "" {
			respondError(c, http.StatusUnauthorized, "not logged in or session expired", errors.New("missing session id"))
			return
		}
		h.service.Logout(c.Request.Context(), sessionID)
	}

	respondOK(c, "logged out", nil)
}

// CurrentUser handles GET /auth/current-user and GET /auth/current
func (h *AuthHandler) CurrentUser(c *gin.Context) {
	session, ok := requireSession(c)
	if !ok {
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), session)
	if err != nil {
		respondError(c, http.StatusNotFound, "user does not exist", err)
		return
	}

	respondOK(c, "ok", user)
}
