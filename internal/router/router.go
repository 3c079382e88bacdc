package router

import (
	"net/http"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"mailpress/internal/auth"
	"mailpress/internal/handler"
	"mailpress/internal/middleware"
)

// WhitelistedPaths are exempt from the auth gate.
var WhitelistedPaths = []string{"/register", "/login", "/healthz", "/swagger"}

// Register wires middleware and routes.
func Register(
	e *echo.Echo,
	jwtService *auth.JWTService,
	authHandler *handler.AuthHandler,
	templateHandler *handler.TemplateHandler,
	healthHandler *handler.HealthHandler,
) {
	e.Use(echomw.Logger())
	e.Use(echomw.Recover())
	e.Use(middleware.AuthGate(jwtService, WhitelistedPaths, ""))

	e.Validator = NewValidator()
	e.HTTPErrorHandler = errorHandler

	e.GET("/healthz", healthHandler.Health)
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	// Template routes (auth required)
	e.GET("/template", templateHandler.List)
	e.GET("/template/:id", templateHandler.Get)
	e.POST("/template", templateHandler.Create)
	e.PUT("/template/:id", templateHandler.Update)
	e.DELETE("/template/:id", templateHandler.Delete)
}

// CustomValidator wraps validator for Echo, reporting fields under their
// json names.
type CustomValidator struct {
	validator *validator.Validate
}

// NewValidator creates the request validator.
func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &CustomValidator{validator: v}
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}

// errorHandler renders the error payload itself as the JSON body instead of
// echo's default message envelope.
func errorHandler(err error, c echo.Context) {
	if c.Response().Committed {
		return
	}
	he, ok := err.(*echo.HTTPError)
	if !ok {
		he = echo.NewHTTPError(http.StatusInternalServerError, map[string]string{"desc": "internal server error"})
	}
	payload := he.Message
	if msg, ok := payload.(string); ok {
		payload = map[string]string{"desc": msg}
	}
	if err := c.JSON(he.Code, payload); err != nil {
		c.Logger().Error(err)
	}
}
