package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"golang.org/x/crypto/bcrypt"

	"mailpress/internal/auth"
	apperrors "mailpress/internal/errors"
	"mailpress/internal/model"
	"mailpress/internal/repository"
)

const bcryptCost = 10

// userFields is the declared writable surface of the User entity.
var userFields = map[string]Setter[model.User]{
	"email": func(u *model.User, v interface{}) {
		if s, ok := v.(string); ok {
			u.Email = s
		}
	},
	"first_name": func(u *model.User, v interface{}) {
		if s, ok := v.(string); ok {
			u.FirstName = s
		}
	},
	"last_name": func(u *model.User, v interface{}) {
		if s, ok := v.(string); ok {
			u.LastName = s
		}
	},
	"password": func(u *model.User, v interface{}) {
		if s, ok := v.(string); ok {
			u.Password = s
		}
	},
}

// UserService handles account registration and authentication on top of the
// generic service.
type UserService struct {
	*Service[model.User]
	jwtService *auth.JWTService
}

// NewUserService creates a user service.
func NewUserService(collection repository.Collection[model.User], jwtService *auth.JWTService) *UserService {
	svc := NewService(collection, userFields, func(u *model.User, now time.Time) { u.LastUpdated = now })
	return &UserService{Service: svc, jwtService: jwtService}
}

// RegisterAccount creates a user from the validated payload and then hashes
// and persists the password on the saved record. The plaintext never
// reaches the store.
func (s *UserService) RegisterAccount(ctx context.Context, data Fields) (*model.User, error) {
	password, _ := data["password"].(string)
	delete(data, "password")

	user, err := s.Create(ctx, data)
	if err != nil {
		return nil, err
	}
	return s.SetPassword(ctx, user, password)
}

// SetPassword hashes the plaintext password and persists it on user.
func (s *UserService) SetPassword(ctx context.Context, user *model.User, password string) (*model.User, error) {
	if password == "" {
		return nil, errors.New("password must be a non-empty string")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}
	return s.Update(ctx, user.ID.String(), Fields{"password": string(hash)})
}

// Authenticate verifies the plaintext password for the account registered
// under email. An unknown email is reported as a field-level validation
// failure, preserving the error shape existing clients depend on; a bad
// password for a known account is the invalid-password business error.
func (s *UserService) Authenticate(ctx context.Context, email, password string) (*model.User, error) {
	user, err := s.FindOne(ctx, repository.Filter{"email": email})
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, apperrors.NewValidationError("email", "invalid email")
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return nil, apperrors.ErrInvalidPassword
	}
	return user, nil
}

// IssueToken generates a fresh auth token for user.
func (s *UserService) IssueToken(user *model.User) (string, error) {
	return s.jwtService.GenerateToken(user.ID.String(), user.FirstName, user.LastName)
}
