package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-platform/account-service/internal/models"
	"github.com/portfolio-platform/account-service/internal/service"
	"go.uber.org/zap"
)

// AdminHandler handles administrative user-management requests.
type AdminHandler struct {
	authService service.AuthService
	logger      *zap.Logger
}

// NewAdminHandler creates a new AdminHandler instance.
func NewAdminHandler(authService service.AuthService, logger *zap.Logger) *AdminHandler {
	return &AdminHandler{
		authService: authService,
		logger:      logger,
	}
}

// UpdateStatusRequest represents the status change payload.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// ListUsers godoc
// @Summary List users
// @Description Paginated user listing, 10 per page
// @Tags admin
// @Security BearerAuth
// @Produce json
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{}
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Router /admin/users [get]
func (h *AdminHandler) ListUsers(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil || page < 1 {
		page = 1
	}

	result, err := h.authService.ListUsers(c.Request.Context(), page)
	if err != nil {
		LogAndRespondError(c, h.logger, http.StatusInternalServerError, err, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"users": result.Users,
		"total": result.Total,
		"pages": result.Pages,
	})
}

// UpdateStatus godoc
// @Summary Change a user's status
// @Description Activate or deactivate an account
// @Tags admin
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param request body UpdateStatusRequest true "New status"
// @Success 200 {object} map[string]string
// @Failure 400 {object} map[string]string
// @Failure 401 {object} map[string]string
// @Failure 403 {object} map[string]string
// @Failure 404 {object} map[string]string
// @Router /admin/users/{id}/status [patch]
func (h *AdminHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		RespondError(c, http.StatusNotFound, "user not found")
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, err.Error())
		return
	}

	_, err = h.authService.SetUserStatus(c.Request.Context(), id, models.Status(req.Status))
	if err != nil {
		switch {
		case errors.Is(err, service.ErrInvalidStatus):
			RespondError(c, http.StatusBadRequest, "Invalid status")
		case errors.Is(err, service.ErrUserNotFound):
			RespondError(c, http.StatusNotFound, "user not found")
		default:
			LogAndRespondError(c, h.logger, http.StatusInternalServerError, err, "failed to update status")
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Status updated"})
}
