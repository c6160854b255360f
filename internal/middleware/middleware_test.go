package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"employee_messaging/internal/domain"
	"employee_messaging/internal/session"
)

func init() {
	gin.SetMode(gin.TestMode)
}

type stubSessions struct {
	userID uint
	err    error
}

func (s stubSessions) UserID(*gin.Context) (uint, error) { return s.userID, s.err }

type stubUsers map[uint]*domain.User

func (s stubUsers) UserByID(_ context.Context, id uint) (*domain.User, error) {
	if u, ok := s[id]; ok {
		return u, nil
	}
	return nil, domain.ErrUserNotFound
}

type recordingFlasher struct {
	msgs []string
}

func (f *recordingFlasher) AddFlash(_ *gin.Context, msg string) error {
	f.msgs = append(f.msgs, msg)
	return nil
}

var (
	manager  = &domain.User{ID: 1, Username: "mgr", Role: domain.RoleManager}
	employee = &domain.User{ID: 2, Username: "emp", Role: domain.RoleEmployee}
	stranger = &domain.User{ID: 3, Username: "old", Role: domain.Role("admin")}
	users    = stubUsers{1: manager, 2: employee, 3: stranger}
)

func serve(r *gin.Engine, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestRequireAuthenticated(t *testing.T) {
	cases := []struct {
		name     string
		sessions stubSessions
		code     int
		location string
	}{
		{"anonymous", stubSessions{err: session.ErrNoSession}, http.StatusFound, "/login"},
		{"deleted user", stubSessions{userID: 99}, http.StatusFound, "/login"},
		{"unknown role", stubSessions{userID: 3}, http.StatusFound, "/login"},
		{"store failure", stubSessions{err: errors.New("redis down")}, http.StatusInternalServerError, ""},
		{"authenticated", stubSessions{userID: 1}, http.StatusOK, ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := gin.New()
			r.GET("/private", RequireAuthenticated(tc.sessions, users), func(c *gin.Context) {
				u, ok := CurrentUser(c)
				require.True(t, ok)
				c.String(http.StatusOK, u.Username)
			})

			rec := serve(r, http.MethodGet, "/private")
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
			if tc.code == http.StatusOK {
				assert.Equal(t, "mgr", rec.Body.String())
			}
		})
	}
}

func TestCurrentUser_Absent(t *testing.T) {
	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	_, ok := CurrentUser(c)
	assert.False(t, ok)
}

func TestRequireRole(t *testing.T) {
	cases := []struct {
		name     string
		userID   uint
		required domain.Role
		code     int
		location string
		notice   string
	}{
		{"manager on manager route", 1, domain.RoleManager, http.StatusOK, "", ""},
		{"employee on employee route", 2, domain.RoleEmployee, http.StatusOK, "", ""},
		{"employee on manager route", 2, domain.RoleManager, http.StatusFound, "/employee_dashboard", "Access denied. Manager privileges required."},
		{"manager on employee route", 1, domain.RoleEmployee, http.StatusFound, "/manager_dashboard", "Access denied. You are a manager."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			flashes := &recordingFlasher{}
			r := gin.New()
			r.GET("/dash",
				RequireAuthenticated(stubSessions{userID: tc.userID}, users),
				RequireRole(tc.required, flashes),
				func(c *gin.Context) { c.Status(http.StatusOK) },
			)

			rec := serve(r, http.MethodGet, "/dash")
			assert.Equal(t, tc.code, rec.Code)
			assert.Equal(t, tc.location, rec.Header().Get("Location"))
			if tc.notice == "" {
				assert.Empty(t, flashes.msgs)
			} else {
				assert.Equal(t, []string{tc.notice}, flashes.msgs)
			}
		})
	}
}

func TestRequireRole_WithoutUser(t *testing.T) {
	r := gin.New()
	r.GET("/dash", RequireRole(domain.RoleManager, &recordingFlasher{}), func(c *gin.Context) {
		t.Fatal("should not reach handler")
	})

	rec := serve(r, http.MethodGet, "/dash")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}

func TestRequireRole_UnknownUserRole(t *testing.T) {
	flashes := &recordingFlasher{}
	r := gin.New()
	r.GET("/dash",
		func(c *gin.Context) { c.Set(currentUserKey, stranger) },
		RequireRole(domain.RoleManager, flashes),
		func(c *gin.Context) { t.Fatal("should not reach handler") },
	)

	rec := serve(r, http.MethodGet, "/dash")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
	assert.Equal(t, []string{"Access denied. Manager privileges required."}, flashes.msgs)
}

func TestRequireRole_UnknownRequiredRole(t *testing.T) {
	assert.NotPanics(t, func() {
		RequireRole(domain.Role("admin"), &recordingFlasher{})
	})
	assert.Equal(t, "Access denied.", deniedNotice(domain.Role("admin")))
}

func TestRateLimiter_Allow(t *testing.T) {
	rl := NewRateLimiter(60, 2) // one token per second, burst of two
	clock := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	rl.now = func() time.Time { return clock }

	assert.True(t, rl.Allow("a"))
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))
	assert.True(t, rl.Allow("b"), "clients are limited independently")

	clock = clock.Add(time.Second)
	assert.True(t, rl.Allow("a"))
	assert.False(t, rl.Allow("a"))

	clock = clock.Add(time.Hour)
	rl.Allow("c")
	assert.NotContains(t, rl.clients, "a", "idle clients are evicted")
}

func TestRateLimiter_Middleware(t *testing.T) {
	rl := NewRateLimiter(1, 1)
	r := gin.New()
	r.Use(rl.Middleware())
	r.Any("/login", func(c *gin.Context) { c.Status(http.StatusOK) })

	assert.Equal(t, http.StatusOK, serve(r, http.MethodPost, "/login").Code)
	assert.Equal(t, http.StatusTooManyRequests, serve(r, http.MethodPost, "/login").Code)
	assert.Equal(t, http.StatusOK, serve(r, http.MethodGet, "/login").Code)
}

func TestRequestMetrics_PassesThrough(t *testing.T) {
	r := gin.New()
	r.Use(RequestMetrics())
	r.GET("/ok", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	assert.Equal(t, http.StatusNoContent, serve(r, http.MethodGet, "/ok").Code)
	assert.Equal(t, http.StatusNotFound, serve(r, http.MethodGet, "/missing").Code)
}
