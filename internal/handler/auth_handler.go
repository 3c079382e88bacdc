package handler

import (
	"time"

	"github.com/labstack/echo/v4"

	"mailpress/internal/auth"
	"mailpress/internal/model"
	"mailpress/internal/service"
)

// RegisterRequest is the default contract for account registration.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	Password  string `json:"password" validate:"required"`
}

// Payload implements RequestContract.
func (r *RegisterRequest) Payload() service.Fields {
	return service.Fields{
		"email":      r.Email,
		"first_name": r.FirstName,
		"last_name":  r.LastName,
		"password":   r.Password,
	}
}

// LoginRequest is the default contract for login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Payload implements RequestContract.
func (r *LoginRequest) Payload() service.Fields {
	return service.Fields{
		"email":    r.Email,
		"password": r.Password,
	}
}

// UserResponse is the response contract for user records. The password is
// not part of it in any form.
type UserResponse struct {
	PK          string    `json:"pk"`
	DateCreated time.Time `json:"date_created"`
	FirstName   string    `json:"first_name"`
	LastName    string    `json:"last_name"`
	Email       string    `json:"email"`
}

// LoginResponse extends the user response with a fresh auth token.
type LoginResponse struct {
	UserResponse
	AuthToken string `json:"auth_token"`
}

func userResponse(u *model.User) UserResponse {
	return UserResponse{
		PK:          u.ID.String(),
		DateCreated: u.DateCreated,
		FirstName:   u.FirstName,
		LastName:    u.LastName,
		Email:       u.Email,
	}
}

// AuthHandler exposes the create-only registration and login resources.
type AuthHandler struct {
	register *Resource[model.User]
	login    *Resource[model.User]
}

// NewAuthHandler creates the auth handler.
func NewAuthHandler(users *service.UserService) *AuthHandler {
	userOwner := func(u *model.User) (string, string) { return "", u.ID.String() }

	register := NewResource(users.Service,
		func() RequestContract { return new(RegisterRequest) },
		func(u *model.User) interface{} { return userResponse(u) },
		userOwner,
		Hooks[model.User]{
			Save: func(c echo.Context, data service.Fields, _ *auth.Claims) (*model.User, error) {
				return users.RegisterAccount(c.Request().Context(), data)
			},
		},
	)

	login := NewResource(users.Service,
		func() RequestContract { return new(LoginRequest) },
		func(u *model.User) interface{} {
			// Signing only fails on an unusable key, which startup config
			// would already have tripped over.
			token, _ := users.IssueToken(u)
			return LoginResponse{UserResponse: userResponse(u), AuthToken: token}
		},
		userOwner,
		Hooks[model.User]{
			Save: func(c echo.Context, data service.Fields, _ *auth.Claims) (*model.User, error) {
				email, _ := data["email"].(string)
				password, _ := data["password"].(string)
				return users.Authenticate(c.Request().Context(), email, password)
			},
		},
	)

	return &AuthHandler{register: register, login: login}
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 200 {object} UserResponse
// @Failure 409 {object} map[string]string
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	return h.register.Create(c)
}

// Login godoc
// @Summary Login and receive an auth token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} LoginResponse
// @Failure 409 {object} map[string]string
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	return h.login.Create(c)
}
