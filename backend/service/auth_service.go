package service

import (
	"errors"
	"time"

	"cadvault/backend/common"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrTokenExpired marks a token that verified correctly but is past its
	// expiry. Kept distinct from ErrTokenInvalid so callers can report the
	// two cases differently.
	ErrTokenExpired = errors.New("token_expired")
	// ErrTokenInvalid marks a malformed, tampered or wrongly-signed token.
	ErrTokenInvalid = errors.New("token_invalid")
)

// SessionClaims binds a session token to a single user id.
type SessionClaims struct {
	UserID int64 `json:"user_id"`
	jwt.RegisteredClaims
}

// TokenService issues and verifies signed session tokens. Tokens are
// stateless: there is no server-side revocation, so a stolen token stays
// valid until its natural expiry. Logout is a client-side cookie clear.
type TokenService struct {
	secret []byte
	expiry time.Duration
}

func NewTokenService(cfg *common.Config) *TokenService {
	return &TokenService{
		secret: []byte(cfg.JWTSecret),
		expiry: cfg.TokenExpiry,
	}
}

// GenerateToken creates a signed token for the user, expiring after the
// configured lifetime.
func (s *TokenService) GenerateToken(userID int64) (string, error) {
	now := time.Now().UTC()
	claims := SessionClaims{
		UserID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(s.expiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			Issuer:    "cadvault",
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(s.secret)
}

// ValidateToken verifies signature and expiry. Expiry is checked strictly:
// an expired but otherwise valid token yields ErrTokenExpired; any other
// failure, including a single flipped bit in payload or signature, yields
// ErrTokenInvalid.
func (s *TokenService) ValidateToken(tokenString string) (*SessionClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrTokenInvalid
		}
		return s.secret, nil
	})
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrTokenExpired
		}
		return nil, ErrTokenInvalid
	}
	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return nil, ErrTokenInvalid
	}
	return claims, nil
}
