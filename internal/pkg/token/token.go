package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Kind separates the three capabilities carried by signed tokens. A reset
// token must never be accepted where a session token is expected, so the
// kind is part of the signed claims and checked on verification.
type Kind string

const (
	KindSession       Kind = "session"
	KindActivation    Kind = "activation"
	KindPasswordReset Kind = "password_reset"
)

// TTL is the absolute lifetime of every issued token.
const TTL = 24 * time.Hour

var ErrInvalidToken = errors.New("invalid token")

// Claims is the identity payload shared by all token kinds.
type Claims struct {
	UserID   uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Kind     Kind   `json:"kind"`
	jwt.RegisteredClaims
}

// Service issues and verifies HS256-signed tokens.
type Service struct {
	secret []byte
}

func NewService(secret string) *Service {
	return &Service{secret: []byte(secret)}
}

// Issue signs a token of the given kind for the identity, expiring in 24h.
func (s *Service) Issue(kind Kind, userID uint, username, email string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		Username: username,
		Email:    email,
		Kind:     kind,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(TTL)),
		},
	}

	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := t.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses the token and checks signature, expiry and kind.
func (s *Service) Verify(tokenString string, want Kind) (*Claims, error) {
	parsed, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := parsed.Claims.(*Claims)
	if !ok || !parsed.Valid {
		return nil, ErrInvalidToken
	}
	if claims.Kind != want {
		return nil, fmt.Errorf("%w: wrong token kind %q", ErrInvalidToken, claims.Kind)
	}
	return claims, nil
}
