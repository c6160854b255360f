package service

import (
	"context" // Context for store calls
	"errors"  // Error matching
	"sync"    // One-time decoy hash

	"employee_messaging/internal/domain" // Importing domain models

	"github.com/go-playground/validator/v10" // Form field validation
	"github.com/sirupsen/logrus"             // Logrus for structured logging
)

// UserStore is the persistence the credential store needs
type UserStore interface {
	Create(ctx context.Context, user *domain.User) error
	FindByID(ctx context.Context, id uint) (*domain.User, error)
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}

// RegisterInput carries the registration form fields as submitted
type RegisterInput struct {
	Username        string // Desired username
	Email           string // Account email
	Password        string // Cleartext password
	ConfirmPassword string // Must equal Password
	Role            string // manager or employee
}

// AuthService implements registration and credential checks.
type AuthService struct {
	users    UserStore           // Account persistence
	validate *validator.Validate // Field rules
}

func NewAuthService(users UserStore) *AuthService {
	return &AuthService{users: users, validate: validator.New()}
}

// Register validates in and creates the user. Checks run in a fixed order and
// stop at the first failure, returning a *domain.ValidationError or
// *domain.ConflictError whose message is meant for the form.
func (s *AuthService) Register(ctx context.Context, in RegisterInput) (*domain.User, error) {
	for _, field := range []string{in.Email, in.Username, in.Password, in.ConfirmPassword, in.Role} {
		if s.validate.Var(field, "required") != nil {
			return nil, &domain.ValidationError{Message: "All fields are required."}
		}
	}
	if s.validate.VarWithValue(in.Password, in.ConfirmPassword, "eqfield") != nil {
		return nil, &domain.ValidationError{Message: "Passwords do not match."}
	}
	if s.validate.Var(in.Password, "min=6") != nil {
		return nil, &domain.ValidationError{Message: "Password must be at least 6 characters long."}
	}
	role, ok := domain.ParseRole(in.Role)
	if !ok || s.validate.Var(in.Role, "oneof=manager employee") != nil {
		return nil, &domain.ValidationError{Message: "Please select a valid role."}
	}

	taken, err := s.users.ExistsByEmail(ctx, in.Email)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Field: "email", Message: "Email already registered."}
	}
	taken, err = s.users.ExistsByUsername(ctx, in.Username)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, &domain.ConflictError{Field: "username", Message: "Username already taken."}
	}

	hash, err := domain.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	user := &domain.User{Username: in.Username, Email: in.Email, Password: hash, Role: role}
	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrDuplicate) {
			// Lost a race with a concurrent registration; the unique index decided.
			return nil, &domain.ConflictError{Message: "Email or username already registered."}
		}
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id":  user.ID,       // New account
		"username": user.Username, // Chosen username
		"role":     user.Role,     // Assigned role
	}).Info("User registered")
	return user, nil
}

// Authenticate returns the user whose email and password match. An unknown
// email and a wrong password both yield ok == false with a nil error; err is
// reserved for store failures.
func (s *AuthService) Authenticate(ctx context.Context, email, password string) (*domain.User, bool, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, domain.ErrUserNotFound) {
		decoyHash().Matches(password) // keep timing close to the found-user path
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if !user.Password.Matches(password) {
		return nil, false, nil
	}
	return user, true, nil
}

// UserByID loads the user behind an authenticated session.
func (s *AuthService) UserByID(ctx context.Context, id uint) (*domain.User, error) {
	return s.users.FindByID(ctx, id)
}

var (
	decoyOnce sync.Once
	decoy     domain.PasswordHash
)

func decoyHash() domain.PasswordHash {
	decoyOnce.Do(func() {
		decoy, _ = domain.HashPassword("decoy-password")
	})
	return decoy
}
