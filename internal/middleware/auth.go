package middleware

import (
	"net/http"
	"strings"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	"mailpress/internal/auth"
)

// ContextUserKey is the echo context key the auth gate stores the caller's
// claims under.
const ContextUserKey = "user_context"

// ClaimsFrom returns the authenticated caller's claims, or nil when the
// request came in over a whitelisted route without a token.
func ClaimsFrom(c echo.Context) *auth.Claims {
	claims, _ := c.Get(ContextUserKey).(*auth.Claims)
	return claims
}

// AuthGate wraps the whole router. Whitelisted paths pass through untouched;
// every other request needs a valid bearer token, whose decoded claims are
// attached to the request context before the handler runs. Any verification
// failure counts as "no identity" and yields a 401 without reaching the
// handler.
func AuthGate(jwtService *auth.JWTService, whitelist []string, basePath string) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		Skipper: func(c echo.Context) bool {
			return Whitelisted(c.Request().URL.Path, whitelist, basePath)
		},
		ParseTokenFunc: func(c echo.Context, tokenString string) (interface{}, error) {
			return jwtService.ValidateToken(tokenString)
		},
		SuccessHandler: func(c echo.Context) {
			if claims, ok := c.Get("user").(*auth.Claims); ok {
				c.Set(ContextUserKey, claims)
			}
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, map[string]string{"desc": "authorization failed"})
		},
	})
}

// Whitelisted reports whether path is exempt from authentication. Entries
// match on equality or prefix after the optional base path is stripped and
// both sides are normalized to a leading slash. An empty whitelist exempts
// nothing.
func Whitelisted(path string, whitelist []string, basePath string) bool {
	if len(whitelist) == 0 {
		return false
	}
	relative := strings.TrimPrefix(path, basePath)
	if !strings.HasPrefix(relative, "/") {
		relative = "/" + relative
	}
	for _, entry := range whitelist {
		if !strings.HasPrefix(entry, "/") {
			entry = "/" + entry
		}
		if strings.HasPrefix(relative, entry) {
			return true
		}
	}
	return false
}
