package api

import (
	"context"  // Context for service calls
	"errors"   // Error matching
	"net/http" // HTTP status codes
	"strconv"  // Message ID parsing

	"employee_messaging/internal/domain"     // Importing domain models
	"employee_messaging/internal/middleware" // Current user lookup

	"github.com/gin-gonic/gin" // Gin web framework
)

// MessageBoard broadcasts and lists messages
type MessageBoard interface {
	Send(ctx context.Context, sender *domain.User, content string) (*domain.Message, error)
	Sent(ctx context.Context, sender *domain.User) ([]domain.Message, error)
	All(ctx context.Context) ([]domain.Message, error)
	Respond(ctx context.Context, employee *domain.User, messageID uint, response string) error
}

// ManagerDashboardHandler lists the messages the current manager has sent
func ManagerDashboardHandler(board MessageBoard, flashes FlashStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderManagerDashboard(c, board, flashes)
	}
}

// SendMessageHandler broadcasts the posted message to all employees
func SendMessageHandler(board MessageBoard, flashes FlashStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c) // Set by RequireAuthenticated
		content := c.PostForm("message")     // Empty content is accepted
		if _, err := board.Send(c.Request.Context(), user, content); err != nil {
			serverError(c, err, "Failed to send message")
			return
		}
		flash(c, flashes, "Message sent to all employees.")
		renderManagerDashboard(c, board, flashes)
	}
}

func renderManagerDashboard(c *gin.Context, board MessageBoard, flashes FlashStore) {
	user, _ := middleware.CurrentUser(c)
	msgs, err := board.Sent(c.Request.Context(), user)
	if err != nil {
		serverError(c, err, "Failed to list sent messages")
		return
	}
	render(c, flashes, http.StatusOK, "manager_dashboard.html", page{Title: "Manager dashboard", Messages: msgs})
}

// EmployeeDashboardHandler lists every message
func EmployeeDashboardHandler(board MessageBoard, flashes FlashStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		renderEmployeeDashboard(c, board, flashes)
	}
}

// RespondHandler accepts an employee's reply to a message
func RespondHandler(board MessageBoard, flashes FlashStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, _ := middleware.CurrentUser(c)
		// Unparseable IDs are reported the same as missing ones
		id, parseErr := strconv.ParseUint(c.PostForm("message_id"), 10, 0)
		err := domain.ErrMessageNotFound
		if parseErr == nil {
			err = board.Respond(c.Request.Context(), user, uint(id), c.PostForm("response"))
		}
		switch {
		case err == nil, errors.Is(err, domain.ErrResponsesUnsupported):
			flash(c, flashes, "Response functionality not yet implemented.")
		case errors.Is(err, domain.ErrMessageNotFound):
			flash(c, flashes, "Message not found.")
		default:
			serverError(c, err, "Failed to record response")
			return
		}
		renderEmployeeDashboard(c, board, flashes)
	}
}

func renderEmployeeDashboard(c *gin.Context, board MessageBoard, flashes FlashStore) {
	msgs, err := board.All(c.Request.Context())
	if err != nil {
		serverError(c, err, "Failed to list messages")
		return
	}
	render(c, flashes, http.StatusOK, "employee_dashboard.html", page{Title: "Employee dashboard", Messages: msgs, Respondable: true})
}
