package api

import (
	"employee_messaging/internal/domain"     // Importing domain models
	"employee_messaging/internal/middleware" // Auth, role and rate limiting

	"github.com/gin-gonic/gin"                                // Gin web framework
	"github.com/prometheus/client_golang/prometheus/promhttp" // Metrics endpoint
)

// SessionManager is the full session surface the routes use
type SessionManager interface {
	Sessions
	middleware.SessionResolver
}

// Deps carries everything the routes need
type Deps struct {
	Auth         Authenticator           // Login credential checks
	Register     Registrar               // Account creation
	Users        middleware.UserLoader   // Loads the user behind a session
	Sessions     SessionManager          // Session cookies and flash messages
	Board        MessageBoard            // Message broadcast and listing
	LoginLimiter *middleware.RateLimiter // Throttles login and registration posts, nil disables
	Health       map[string]Pinger       // Readiness checks by dependency name
}

// NewRouter wires every route onto a fresh gin engine
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()                 // Gin router instance with logger and recovery
	r.SetHTMLTemplate(Templates())     // Embedded page templates
	r.Use(middleware.RequestMetrics()) // Request duration histogram

	// Public pages
	r.GET("/", PageHandler(d.Sessions, "index.html", "Home"))
	r.GET("/employee_login", PageHandler(d.Sessions, "login.html", "Employee log in"))
	r.GET("/manager_login", PageHandler(d.Sessions, "manager_login.html", "Manager log in"))

	// Auth routes
	limited := []gin.HandlerFunc{}
	if d.LoginLimiter != nil {
		limited = append(limited, d.LoginLimiter.Middleware())
	}
	r.GET("/login", PageHandler(d.Sessions, "login.html", "Log in"))
	r.POST("/login", append(limited, LoginHandler(d.Auth, d.Sessions))...)
	r.GET("/register", PageHandler(d.Sessions, "register.html", "Register"))
	r.POST("/register", append(limited, RegisterHandler(d.Register, d.Sessions))...)

	authenticated := middleware.RequireAuthenticated(d.Sessions, d.Users)
	r.GET("/logout", authenticated, LogoutHandler(d.Sessions)) // Logout endpoint

	// Manager routes
	managers := r.Group("/manager_dashboard")
	managers.Use(authenticated, middleware.RequireRole(domain.RoleManager, d.Sessions))
	managers.GET("", ManagerDashboardHandler(d.Board, d.Sessions))
	managers.POST("", SendMessageHandler(d.Board, d.Sessions))

	// Employee routes
	employees := r.Group("/employee_dashboard")
	employees.Use(authenticated, middleware.RequireRole(domain.RoleEmployee, d.Sessions))
	employees.GET("", EmployeeDashboardHandler(d.Board, d.Sessions))
	employees.POST("", RespondHandler(d.Board, d.Sessions))

	// Operations
	r.GET("/health", LivenessHandler())
	r.GET("/health/ready", ReadinessHandler(d.Health))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}
