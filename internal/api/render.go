package api

import (
	"embed"         // Embedded templates
	"html/template" // HTML templating
	"net/http"      // HTTP status codes

	"employee_messaging/internal/domain"     // Importing domain models
	"employee_messaging/internal/middleware" // Current user lookup

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
)

//go:embed templates/*.html
var templateFS embed.FS

// Templates parses the embedded page templates
func Templates() *template.Template {
	return template.Must(template.ParseFS(templateFS, "templates/*.html"))
}

// FlashStore queues and pops one-shot notices
type FlashStore interface {
	AddFlash(c *gin.Context, msg string) error
	Flashes(c *gin.Context) ([]string, error)
}

// page is the data every template receives
type page struct {
	Title       string           // Page title
	User        *domain.User     // Authenticated user, nil when anonymous
	Flashes     []string         // Notices popped for this render
	Messages    []domain.Message // Dashboard message list
	Respondable bool             // Message list carries a response form
	Username    string           // Registration form echo
	Email       string           // Login and registration form echo
	Role        string           // Registration form echo
	Error       string           // Error page text
}

// render fills in the user and pending flashes, then writes the template
func render(c *gin.Context, flashes FlashStore, status int, name string, p page) {
	p.User, _ = middleware.CurrentUser(c) // Nil for anonymous visitors
	msgs, err := flashes.Flashes(c)       // Pop queued notices
	if err != nil {
		logrus.WithError(err).Warn("Failed to load flash messages") // Page still renders without them
	}
	p.Flashes = msgs
	c.HTML(status, name, p)
}

// flash queues msg, logging rather than failing the request when the store is down
func flash(c *gin.Context, flashes FlashStore, msg string) {
	if err := flashes.AddFlash(c, msg); err != nil {
		logrus.WithError(err).WithField("flash", msg).Warn("Failed to queue flash message")
	}
}

// serverError logs err and renders the generic error page
func serverError(c *gin.Context, err error, msg string) {
	logrus.WithFields(logrus.Fields{
		"method": c.Request.Method, // Request method
		"path":   c.FullPath(),     // Route pattern
		"error":  err.Error(),      // Underlying cause
	}).Error(msg)
	p := page{Title: "Error", Error: "The request could not be completed. Please try again later."}
	p.User, _ = middleware.CurrentUser(c)
	c.HTML(http.StatusInternalServerError, "error.html", p)
	c.Abort()
}
