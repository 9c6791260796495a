// pkg/token/token.go
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrEmptyToken   = errors.New("token string is empty")
	ErrNoSecret     = errors.New("jwt secret key is empty")
	ErrExpired      = errors.New("token has expired")
	ErrBadSignature = errors.New("token signature is invalid")
	ErrNoUser       = errors.New("user_id claim is missing or zero")
)

// Claims identifies the official submitting score changes. Tokens are issued by the
// account service; this package only checks them.
type Claims struct {
	UserID uint   `json:"user_id"`
	Role   string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func hmacKey(secretKey string) jwt.Keyfunc {
	return func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secretKey), nil
	}
}

// ValidateJWT checks an HS256 scorer token. exp is mandatory.
func ValidateJWT(tokenString string, secretKey string) (*Claims, error) {
	switch {
	case tokenString == "":
		return nil, ErrEmptyToken
	case secretKey == "":
		return nil, ErrNoSecret
	}

	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenString, claims, hmacKey(secretKey), jwt.WithExpirationRequired())
	switch {
	case errors.Is(err, jwt.ErrTokenExpired):
		return nil, ErrExpired
	case errors.Is(err, jwt.ErrTokenSignatureInvalid):
		return nil, ErrBadSignature
	case err != nil:
		return nil, fmt.Errorf("could not parse token: %w", err)
	case !parsed.Valid:
		return nil, errors.New("token is invalid")
	case claims.UserID == 0:
		return nil, ErrNoUser
	}
	return claims, nil
}

// GenerateJWT signs an HS256 token for userID with the given role.
func GenerateJWT(userID uint, role string, secretKey string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: userID,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "crease",
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secretKey))
}
