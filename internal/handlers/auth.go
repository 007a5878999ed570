package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-platform/account-service/internal/metrics"
	"github.com/portfolio-platform/account-service/internal/service"
	"go.uber.org/zap"
)

// AuthHandler handles signup and login HTTP requests.
type AuthHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAuthHandler creates a new AuthHandler instance.
func NewAuthHandler(authService service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// SignupRequest represents the signup request payload.
type SignupRequest struct {
	FullName string `json:"full_name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRequest represents the login request payload.
type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Signup godoc
// @Summary Register a new account
// @Description Create a user account and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Signup data"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c *gin.Context) {
	var req SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.Signups.WithLabelValues("invalid").Inc()
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.authService.Signup(c.Request.Context(), req.FullName, req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			metrics.Signups.WithLabelValues("invalid").Inc()
			RespondError(c, http.StatusBadRequest, "Invalid email")
		case errors.Is(err, service.ErrWeakPassword):
			metrics.Signups.WithLabelValues("invalid").Inc()
			RespondError(c, http.StatusBadRequest, "Password min 8 chars")
		case errors.Is(err, service.ErrEmailTaken):
			metrics.Signups.WithLabelValues("duplicate").Inc()
			RespondError(c, http.StatusBadRequest, "Email exists")
		default:
			metrics.Signups.WithLabelValues("error").Inc()
			LogAndRespondError(c, h.logger, http.StatusInternalServerError, err, "signup failed")
		}
		return
	}

	metrics.Signups.WithLabelValues("created").Inc()
	c.JSON(http.StatusCreated, gin.H{
		"message": "User created",
		"token":   response.Token,
		"user":    response.User,
	})
}

// Login godoc
// @Summary User login
// @Description Authenticate with email and password and return a bearer token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.AuthResponse
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	response, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidCredentials):
			metrics.Logins.WithLabelValues("invalid_credentials").Inc()
			RespondError(c, http.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, service.ErrAccountInactive):
			metrics.Logins.WithLabelValues("inactive").Inc()
			RespondError(c, http.StatusForbidden, "Account inactive")
		default:
			metrics.Logins.WithLabelValues("error").Inc()
			LogAndRespondError(c, h.logger, http.StatusInternalServerError, err, "login failed")
		}
		return
	}

	metrics.Logins.WithLabelValues("success").Inc()
	c.JSON(http.StatusOK, response)
}
