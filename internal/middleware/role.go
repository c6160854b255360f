package middleware

import (
	"net/http" // HTTP status codes

	"employee_messaging/internal/domain"  // Importing domain models
	"employee_messaging/internal/metrics" // Prometheus collectors

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Flasher queues a one-shot notice for the next rendered page
type Flasher interface {
	AddFlash(c *gin.Context, msg string) error
}

// RequireRole sends users without the given role to their own dashboard with a notice.
// It must run after RequireAuthenticated.
func RequireRole(role domain.Role, flashes Flasher) gin.HandlerFunc {
	notice := deniedNotice(role) // Resolved once per route
	return func(c *gin.Context) {
		user, ok := CurrentUser(c) // Get user from context
		// Check if an authenticated user exists in context
		if !ok {
			c.Redirect(http.StatusFound, LoginPath)
			c.Abort()
			return
		}
		// Check the user's role
		if user.Classify() != role {
			metrics.AccessDeniedTotal.WithLabelValues(string(role)).Inc()
			if err := flashes.AddFlash(c, notice); err != nil {
				logrus.WithError(err).Warn("Failed to queue access-denied notice")
			}
			dashboard, known := user.Classify().DashboardPath()
			if !known {
				dashboard = LoginPath // Nowhere else to send an unroutable role
			}
			c.Redirect(http.StatusFound, dashboard) // Back to their own dashboard
			c.Abort()
			return
		}
		c.Next() // Role matches, proceed to the next handler
	}
}

func deniedNotice(required domain.Role) string {
	switch required {
	case domain.RoleManager:
		return "Access denied. Manager privileges required."
	case domain.RoleEmployee:
		return "Access denied. You are a manager."
	}
	return "Access denied."
}
