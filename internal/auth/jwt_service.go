package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
)

// Claims represents the JWT payload issued on login.
type Claims struct {
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	ID        string `json:"id"`
	jwt.RegisteredClaims
}

// JWTService handles JWT token generation and validation.
type JWTService struct {
	secret    []byte
	method    jwt.SigningMethod
	expiresIn time.Duration
}

// NewJWTService creates a JWT service. algorithm must name an HMAC method
// (HS256/HS384/HS512); anything else falls back to HS256.
func NewJWTService(secret, algorithm string, expiresInHours int) *JWTService {
	method := jwt.GetSigningMethod(algorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		method = jwt.SigningMethodHS256
	}
	return &JWTService{
		secret:    []byte(secret),
		method:    method,
		expiresIn: time.Duration(expiresInHours) * time.Hour,
	}
}

// GenerateToken issues a signed token carrying the user's identity.
func (s *JWTService) GenerateToken(id, firstName, lastName string) (string, error) {
	now := time.Now()
	claims := &Claims{
		FirstName: firstName,
		LastName:  lastName,
		ID:        id,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiresIn)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
	}
	token := jwt.NewWithClaims(s.method, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies a token and returns its claims. Tokens signed with
// a different method than the configured one are rejected.
func (s *JWTService) ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if t.Method.Alg() != s.method.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, err
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, errors.New("invalid token")
	}

	return claims, nil
}
