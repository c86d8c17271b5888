package jwt

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Errores de verificación. El middleware los distingue para reportar la causa del 401.
var (
	ErrEmptySecret      = errors.New("jwt: secret vacío")
	ErrExpired          = errors.New("token expirado")
	ErrInvalidSignature = errors.New("firma inválida")
	ErrMalformed        = errors.New("token mal formado")
)

// Claims incluye los claims estándar JWT más la identidad de sesión.
// Los nombres JSON se mantienen compatibles con los clientes existentes (userId, user_class).
type Claims struct {
	jwt.RegisteredClaims
	UserID    string `json:"userId"`
	Name      string `json:"name"`
	Role      string `json:"role"` // "user" | "admin"
	Phone     string `json:"phone"`
	UserClass string `json:"user_class"`
}

// Issue genera un token HS256 firmado con expiración en now+ttl.
func Issue(secret string, c Claims, ttl time.Duration, issuer string) (string, error) {
	if secret == "" {
		return "", ErrEmptySecret
	}
	now := time.Now()
	c.RegisteredClaims = jwt.RegisteredClaims{
		Issuer:    issuer,
		Subject:   c.UserID,
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, c)
	return token.SignedString([]byte(secret))
}

// Verify valida firma y expiración y devuelve los claims.
// Retorna ErrExpired, ErrInvalidSignature o ErrMalformed (comparables con errors.Is).
func Verify(secret, tokenString string) (*Claims, error) {
	if secret == "" {
		return nil, ErrEmptySecret
	}
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("método de firma inesperado: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil {
		return nil, classify(err)
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return nil, ErrMalformed
	}
	return claims, nil
}

// ExpiresAtTime devuelve la expiración de los claims (cero si no tiene).
func (c *Claims) ExpiresAtTime() time.Time {
	if c.ExpiresAt == nil {
		return time.Time{}
	}
	return c.ExpiresAt.Time
}

func classify(err error) error {
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return fmt.Errorf("%w: %v", ErrExpired, err)
	case errors.Is(err, jwt.ErrTokenSignatureInvalid), errors.Is(err, jwt.ErrTokenUnverifiable):
		return fmt.Errorf("%w: %v", ErrInvalidSignature, err)
	default:
		return fmt.Errorf("%w: %v", ErrMalformed, err)
	}
}
