package domain

import (
	"crypto/sha256"       // Pre-hash before bcrypt
	"database/sql/driver" // Valuer interface for gorm
	"encoding/base64"     // Printable pre-hash
	"errors"              // Error values
	"time"                // Timestamps

	"golang.org/x/crypto/bcrypt" // Password hashing
)

// Role is the closed set of user roles
type Role string

const (
	RoleManager  Role = "manager"  // May broadcast messages
	RoleEmployee Role = "employee" // May only read messages
)

// ParseRole maps a form value onto a Role
func ParseRole(s string) (Role, bool) {
	switch Role(s) {
	case RoleManager, RoleEmployee:
		return Role(s), true
	}
	return "", false
}

// IsManager reports whether the role may broadcast messages
func (r Role) IsManager() bool {
	return r == RoleManager
}

// DashboardPath returns the landing page for the role, false for a role outside the known set
func (r Role) DashboardPath() (string, bool) {
	switch r {
	case RoleManager:
		return "/manager_dashboard", true
	case RoleEmployee:
		return "/employee_dashboard", true
	}
	return "", false
}

// PasswordHash is a bcrypt digest. Only HashPassword produces one.
type PasswordHash struct {
	digest []byte
}

// prehash folds any length of cleartext into 44 bytes, under bcrypt's 72 byte limit
func prehash(plain string) []byte {
	sum := sha256.Sum256([]byte(plain))
	return []byte(base64.StdEncoding.EncodeToString(sum[:]))
}

// HashPassword derives a PasswordHash from a cleartext password of any length
func HashPassword(plain string) (PasswordHash, error) {
	digest, err := bcrypt.GenerateFromPassword(prehash(plain), bcrypt.DefaultCost)
	if err != nil {
		return PasswordHash{}, err
	}
	return PasswordHash{digest: digest}, nil
}

// Matches reports whether plain hashes to this digest
func (h PasswordHash) Matches(plain string) bool {
	if len(h.digest) == 0 {
		return false
	}
	return bcrypt.CompareHashAndPassword(h.digest, prehash(plain)) == nil
}

// IsZero reports whether no password has been set
func (h PasswordHash) IsZero() bool {
	return len(h.digest) == 0
}

// String hides the digest from logs and templates
func (h PasswordHash) String() string {
	return "[redacted]"
}

// Value stores the digest as a string column
func (h PasswordHash) Value() (driver.Value, error) {
	return string(h.digest), nil
}

// Scan loads the digest read back from the database
func (h *PasswordHash) Scan(src any) error {
	switch v := src.(type) {
	case string:
		h.digest = []byte(v)
	case []byte:
		h.digest = append([]byte(nil), v...)
	case nil:
		h.digest = nil
	default:
		return errors.New("domain: unsupported password hash column type")
	}
	return nil
}

// User Model
type User struct {
	ID        uint         `gorm:"primaryKey" json:"id"`                                      // Primary key
	Username  string       `gorm:"size:80;uniqueIndex;not null" json:"username"`              // Unique username
	Email     string       `gorm:"size:120;uniqueIndex;not null" json:"email"`                // Unique email
	Password  PasswordHash `gorm:"column:password_hash;type:varchar(255);not null" json:"-"` // Hashed password
	Role      Role         `gorm:"size:20;not null" json:"role"`                              // Role: manager or employee
	CreatedAt time.Time    `json:"created_at"`                                                // Creation timestamp
}

// Classify returns the user's role
func (u *User) Classify() Role {
	return u.Role
}
