package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-platform/account-service/internal/middleware"
	"github.com/portfolio-platform/account-service/internal/service"
	"go.uber.org/zap"
)

// UserHandler handles profile HTTP requests for authenticated users.
type UserHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewUserHandler creates a new UserHandler instance.
func NewUserHandler(authService service.AuthService, logger *zap.Logger) *UserHandler {
	return &UserHandler{
		authService: authService,
		logger:      logger,
	}
}

// UpdateProfileRequest represents the profile update payload. Only the
// fields present in the request are changed.
type UpdateProfileRequest struct {
	FullName *string `json:"full_name"`
	Email    *string `json:"email"`
	Password *string `json:"password"`
}

// GetProfile godoc
// @Summary Get own profile
// @Tags user
// @Security BearerAuth
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string
// @Router /user/profile [get]
func (h *UserHandler) GetProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	user, err := h.authService.Profile(c.Request.Context(), userID)
	if err != nil {
		if errors.Is(err, service.ErrUserNotFound) {
			RespondError(c, http.StatusNotFound, "user not found")
			return
		}
		LogAndRespondError(c, h.logger, http.StatusInternalServerError, err, "failed to load profile")
		return
	}

	c.JSON(http.StatusOK, user)
}

// UpdateProfile godoc
// @Summary Update own profile
// @Description Partially update full name, email or password
// @Tags user
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body UpdateProfileRequest true "Fields to update"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Router /user/profile [put]
func (h *UserHandler) UpdateProfile(c *gin.Context) {
	userID, ok := middleware.UserID(c)
	if !ok {
		RespondError(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	var req UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	patch := service.ProfilePatch{
		FullName: req.FullName,
		Email:    req.Email,
		Password: req.Password,
	}

	user, err := h.authService.UpdateProfile(c.Request.Context(), userID, patch)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidEmail):
			RespondError(c, http.StatusBadRequest, "Invalid email")
		case errors.Is(err, service.ErrWeakPassword):
			RespondError(c, http.StatusBadRequest, "Password min 8 chars")
		case errors.Is(err, service.ErrEmailTaken):
			RespondError(c, http.StatusBadRequest, "Email exists")
		case errors.Is(err, service.ErrUserNotFound):
			RespondError(c, http.StatusNotFound, "user not found")
		default:
			LogAndRespondError(c, h.logger, http.StatusInternalServerError, err, "failed to update profile")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message": "Updated",
		"user":    user,
	})
}
