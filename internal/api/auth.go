package api

import (
	"context"  // Context for service calls
	"errors"   // Error matching
	"net/http" // HTTP status codes

	"employee_messaging/internal/domain"  // Importing domain models
	"employee_messaging/internal/metrics" // Prometheus collectors
	"employee_messaging/internal/service" // Use cases

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

// Authenticator checks login credentials
type Authenticator interface {
	Authenticate(ctx context.Context, email, password string) (*domain.User, bool, error)
}

// Registrar creates accounts
type Registrar interface {
	Register(ctx context.Context, in service.RegisterInput) (*domain.User, error)
}

// Sessions starts and ends browser sessions and carries flash messages
type Sessions interface {
	FlashStore
	Login(c *gin.Context, userID uint) error
	Logout(c *gin.Context) error
}

// LoginRequest is the login form
type LoginRequest struct {
	Email    string `form:"email"`    // Account email
	Password string `form:"password"` // Cleartext password
}

// RegisterRequest is the registration form
type RegisterRequest struct {
	Username        string `form:"username"`         // Desired username
	Email           string `form:"email"`            // Account email
	Password        string `form:"password"`         // Cleartext password
	ConfirmPassword string `form:"confirm_password"` // Must equal Password
	Role            string `form:"role"`             // manager or employee
}

// LoginHandler authenticates a user and redirects to their dashboard
func LoginHandler(auth Authenticator, sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req LoginRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			// Unparseable body, treat like bad credentials
			req = LoginRequest{}
		}
		user, ok, err := auth.Authenticate(c.Request.Context(), req.Email, req.Password)
		if err != nil {
			serverError(c, err, "Login lookup failed")
			return
		}
		var dashboard string
		if ok {
			dashboard, ok = user.Classify().DashboardPath()
			if !ok {
				// Role column holds something we cannot route
				logrus.WithFields(logrus.Fields{"user_id": user.ID, "role": user.Role}).Warn("Login refused for unknown role")
			}
		}
		if !ok {
			// Same notice for unknown email and wrong password
			metrics.LoginsTotal.WithLabelValues("failure").Inc()
			flash(c, sessions, "Invalid email or password.")
			render(c, sessions, http.StatusOK, "login.html", page{Title: "Log in", Email: req.Email})
			return
		}
		// Start the session
		if err := sessions.Login(c, user.ID); err != nil {
			serverError(c, err, "Failed to start session")
			return
		}
		metrics.LoginsTotal.WithLabelValues("success").Inc()
		logrus.WithFields(logrus.Fields{
			"user_id": user.ID,   // Logged in user
			"role":    user.Role, // Role decides the dashboard
		}).Info("User logged in")
		c.Redirect(http.StatusFound, dashboard) // Send to the role's dashboard
	}
}

// RegisterHandler validates the form and creates the account
func RegisterHandler(reg Registrar, flashes FlashStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req RegisterRequest // Bind form to struct
		if err := c.ShouldBind(&req); err != nil {
			req = RegisterRequest{} // Every field then reads as missing
		}
		_, err := reg.Register(c.Request.Context(), service.RegisterInput{
			Username:        req.Username,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			Role:            req.Role,
		})

		var validationErr *domain.ValidationError
		var conflictErr *domain.ConflictError
		switch {
		case err == nil:
			metrics.RegistrationsTotal.WithLabelValues("created").Inc()
			flash(c, flashes, "Registration successful! You can now log in.")
			c.Redirect(http.StatusFound, "/login") // Send to login
			return
		case errors.As(err, &validationErr):
			metrics.RegistrationsTotal.WithLabelValues("invalid").Inc()
			flash(c, flashes, validationErr.Message)
		case errors.As(err, &conflictErr):
			metrics.RegistrationsTotal.WithLabelValues("conflict").Inc()
			flash(c, flashes, conflictErr.Message)
		default:
			metrics.RegistrationsTotal.WithLabelValues("error").Inc()
			serverError(c, err, "Registration failed")
			return
		}
		// Re-display the form with what the user typed, passwords excluded
		render(c, flashes, http.StatusOK, "register.html", page{
			Title:    "Register",
			Username: req.Username,
			Email:    req.Email,
			Role:     req.Role,
		})
	}
}

// LogoutHandler ends the session and sends the browser to login
func LogoutHandler(sessions Sessions) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := sessions.Logout(c); err != nil {
			// The cookie is cleared regardless; only the revocation failed
			logrus.WithError(err).Warn("Failed to revoke session")
		}
		c.Redirect(http.StatusFound, "/login")
	}
}
