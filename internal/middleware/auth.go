// Package middleware provides HTTP middleware for the account service.
package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portfolio-platform/account-service/internal/metrics"
	"github.com/portfolio-platform/account-service/internal/models"
	"github.com/portfolio-platform/account-service/internal/repository"
	"github.com/portfolio-platform/account-service/internal/service"
)

// Context keys under which guard results are stored for handlers.
const (
	ContextUserIDKey = "user_id"
	ContextUserKey   = "current_user"
)

// Decision is the outcome of a guard check.
type Decision int

const (
	// DecisionAuthorized allows the handler to run.
	DecisionAuthorized Decision = iota
	// DecisionUnauthorized rejects the request with 401.
	DecisionUnauthorized
	// DecisionForbidden rejects the request with 403.
	DecisionForbidden
)

// Guard performs token authentication and role checks. Its methods return
// explicit decisions; the gin wrappers below translate those into responses.
type Guard struct {
	tokens service.TokenService
	users  repository.UserRepository
}

// NewGuard creates a Guard from the token service and the user store.
func NewGuard(tokens service.TokenService, users repository.UserRepository) *Guard {
	return &Guard{tokens: tokens, users: users}
}

// Authenticate validates a bearer token and returns the subject user id.
// All token failure modes collapse into DecisionUnauthorized.
func (g *Guard) Authenticate(tokenString string) (int64, Decision) {
	if tokenString == "" {
		return 0, DecisionUnauthorized
	}
	claims, err := g.tokens.Validate(tokenString)
	if err != nil {
		return 0, DecisionUnauthorized
	}
	return claims.UserID, DecisionAuthorized
}

// AuthorizeAdmin authenticates the token, then resolves the subject and
// requires the admin role. A valid token whose subject is missing or not an
// admin yields DecisionForbidden, never DecisionUnauthorized.
func (g *Guard) AuthorizeAdmin(ctx context.Context, tokenString string) (*models.User, Decision) {
	userID, decision := g.Authenticate(tokenString)
	if decision != DecisionAuthorized {
		return nil, decision
	}

	user, err := g.users.FindByID(ctx, userID)
	if err != nil || !user.IsAdmin() {
		return nil, DecisionForbidden
	}
	return user, DecisionAuthorized
}

// RequireAuth is gin middleware enforcing the Authenticated guard level.
// On success the subject id is stored under ContextUserIDKey.
func (g *Guard) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, decision := g.Authenticate(ExtractBearer(c))
		if decision != DecisionAuthorized {
			metrics.TokenValidations.WithLabelValues("invalid").Inc()
			abortUnauthorized(c)
			return
		}
		metrics.TokenValidations.WithLabelValues("valid").Inc()
		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// RequireAdmin is gin middleware enforcing the AdminOnly guard level. On
// success the resolved user is stored under ContextUserKey (and its id under
// ContextUserIDKey).
func (g *Guard) RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		user, decision := g.AuthorizeAdmin(c.Request.Context(), ExtractBearer(c))
		switch decision {
		case DecisionUnauthorized:
			metrics.TokenValidations.WithLabelValues("invalid").Inc()
			abortUnauthorized(c)
		case DecisionForbidden:
			metrics.TokenValidations.WithLabelValues("valid").Inc()
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
		default:
			metrics.TokenValidations.WithLabelValues("valid").Inc()
			c.Set(ContextUserIDKey, user.ID)
			c.Set(ContextUserKey, user)
			c.Next()
		}
	}
}

// UserID returns the authenticated subject id set by RequireAuth.
func UserID(c *gin.Context) (int64, bool) {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return 0, false
	}
	userID, ok := value.(int64)
	return userID, ok
}

// CurrentUser returns the resolved user record set by RequireAdmin.
func CurrentUser(c *gin.Context) (*models.User, bool) {
	value, ok := c.Get(ContextUserKey)
	if !ok {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}

// ExtractBearer returns the token from an "Authorization: Bearer x" header,
// or "" if the header is absent or malformed.
func ExtractBearer(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return ""
	}
	return strings.TrimSpace(parts[1])
}

// The body is identical for every token failure mode so responses cannot be
// used as a validity oracle.
func abortUnauthorized(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
}
