package session

import (
	"errors"   // Error values
	"net/http" // SameSite modes
	"time"     // Session and flash lifetimes

	"employee_messaging/internal/utils" // JWT helpers and cache

	"github.com/gin-gonic/gin" // Gin web framework
	"github.com/google/uuid"   // Session and flash IDs
)

const (
	CookieName      = "session" // Signed JWT of a logged-in browser
	FlashCookieName = "flash"   // ID of the browser's queued flash messages

	revokedPrefix = "session:revoked:" // Cache key prefix for logged-out token IDs
	flashPrefix   = "flash:"           // Cache key prefix for queued flashes
	flashIDKey    = "flashID"          // Gin context key, lets a flash render in the same request
	flashTTL      = 10 * time.Minute   // Unread flashes expire
)

var ErrNoSession = errors.New("no active session")

// Manager issues, resolves and revokes session cookies, and keeps flash messages
type Manager struct {
	secret string        // JWT signing key
	ttl    time.Duration // Session lifetime
	secure bool          // Secure cookie flag, on in production
	store  utils.Cache   // Revocations and flashes
}

func NewManager(secret string, ttl time.Duration, secure bool, store utils.Cache) *Manager {
	if ttl <= 0 {
		ttl = 24 * time.Hour // Default session lifetime
	}
	return &Manager{secret: secret, ttl: ttl, secure: secure, store: store}
}

// Login starts a new session for userID on the response
func (m *Manager) Login(c *gin.Context, userID uint) error {
	token, err := utils.GenerateJWT(userID, uuid.NewString(), m.secret, m.ttl) // Fresh session ID per login
	if err != nil {
		return err
	}
	m.setCookie(c, CookieName, token, int(m.ttl.Seconds()))
	return nil
}

// UserID resolves the request's session cookie. ErrNoSession covers a missing,
// invalid, expired or revoked token; any other error comes from the store.
func (m *Manager) UserID(c *gin.Context) (uint, error) {
	claims, err := m.claims(c)
	if err != nil {
		return 0, err
	}
	var revoked bool
	found, err := m.store.Get(c.Request.Context(), revokedPrefix+claims.ID, &revoked)
	if err != nil {
		return 0, err
	}
	if found {
		return 0, ErrNoSession // Logged out
	}
	return claims.UserID, nil
}

// Logout revokes the request's session, if any, and clears the cookie
func (m *Manager) Logout(c *gin.Context) error {
	defer m.setCookie(c, CookieName, "", -1) // Cleared even when revocation fails

	claims, err := m.claims(c)
	if errors.Is(err, ErrNoSession) {
		return nil
	}
	if err != nil {
		return err
	}
	remaining := time.Until(claims.ExpiresAt.Time)
	if remaining <= 0 {
		return nil // Already expired, nothing to revoke
	}
	return m.store.Set(c.Request.Context(), revokedPrefix+claims.ID, true, remaining)
}

func (m *Manager) claims(c *gin.Context) (*utils.Claims, error) {
	token, err := c.Cookie(CookieName)
	if err != nil || token == "" {
		return nil, ErrNoSession
	}
	claims, err := utils.ParseJWT(token, m.secret)
	if err != nil {
		return nil, ErrNoSession // Tampered or expired tokens are anonymous
	}
	return claims, nil
}

// AddFlash queues msg for the next page this browser renders
func (m *Manager) AddFlash(c *gin.Context, msg string) error {
	id := m.flashID(c)
	if id == "" {
		id = uuid.NewString()
		c.Set(flashIDKey, id)
		m.setCookie(c, FlashCookieName, id, int(flashTTL.Seconds()))
	}

	ctx := c.Request.Context()
	var queued []string
	if _, err := m.store.Get(ctx, flashPrefix+id, &queued); err != nil {
		return err
	}
	return m.store.Set(ctx, flashPrefix+id, append(queued, msg), flashTTL)
}

// Flashes pops every queued flash message for this browser
func (m *Manager) Flashes(c *gin.Context) ([]string, error) {
	id := m.flashID(c)
	if id == "" {
		return nil, nil // Nothing was ever queued
	}
	ctx := c.Request.Context()
	var queued []string
	found, err := m.store.Get(ctx, flashPrefix+id, &queued)
	if err != nil || !found {
		return nil, err
	}
	return queued, m.store.Delete(ctx, flashPrefix+id)
}

func (m *Manager) flashID(c *gin.Context) string {
	if id := c.GetString(flashIDKey); id != "" {
		return id // Set earlier in this request
	}
	id, err := c.Cookie(FlashCookieName)
	if err != nil {
		return ""
	}
	if _, err := uuid.Parse(id); err != nil {
		return "" // Forged IDs cannot address other keys
	}
	c.Set(flashIDKey, id)
	return id
}

func (m *Manager) setCookie(c *gin.Context, name, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(name, value, maxAge, "/", "", m.secure, true) // HttpOnly
}
