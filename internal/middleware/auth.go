package middleware

import (
	"context"  // Context for user lookups
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"employee_messaging/internal/domain"  // Importing domain models
	"employee_messaging/internal/session" // Session cookies

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

const currentUserKey = "currentUser" // Gin context key for the authenticated user

// LoginPath is where anonymous visitors are sent
const LoginPath = "/login"

// SessionResolver maps a request onto the user ID behind its session cookie
type SessionResolver interface {
	UserID(c *gin.Context) (uint, error)
}

// UserLoader loads the user behind a session
type UserLoader interface {
	UserByID(ctx context.Context, id uint) (*domain.User, error)
}

// RequireAuthenticated resolves the session cookie and loads the user row on each request
func RequireAuthenticated(sessions SessionResolver, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, err := sessions.UserID(c) // Resolve the session cookie
		if errors.Is(err, session.ErrNoSession) {
			c.Redirect(http.StatusFound, LoginPath) // Anonymous, send to login
			c.Abort()
			return
		}
		if err != nil {
			logrus.WithError(err).Error("Session lookup failed") // Store failure, not the caller's fault
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		user, err := users.UserByID(c.Request.Context(), userID) // Fetch user from database
		if errors.Is(err, domain.ErrUserNotFound) {
			c.Redirect(http.StatusFound, LoginPath) // Session outlived its user
			c.Abort()
			return
		}
		if err != nil {
			logrus.WithError(err).WithField("user_id", userID).Error("User lookup failed")
			c.AbortWithStatus(http.StatusInternalServerError)
			return
		}
		if _, known := user.Classify().DashboardPath(); !known {
			logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Warn("Session user has unknown role")
			c.Redirect(http.StatusFound, LoginPath) // Treated as anonymous
			c.Abort()
			return
		}
		c.Set(currentUserKey, user) // Store user in context
		c.Next()                    // Proceed to the next handler
	}
}

// CurrentUser returns the user stored by RequireAuthenticated
func CurrentUser(c *gin.Context) (*domain.User, bool) {
	v, exists := c.Get(currentUserKey) // Get user from context
	if !exists {
		return nil, false
	}
	user, ok := v.(*domain.User)
	return user, ok && user != nil
}
