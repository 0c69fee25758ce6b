// Package auth issues and verifies the credentials used to identify callers.
package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")
)

type TokenConfig struct {
	Secret string
	Issuer string
	TTL    time.Duration
}

// Claims identifies the user a bearer token was issued to. The user id is
// carried in the registered "sub" claim.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

func (c *Claims) UserID() string {
	return c.Subject
}

type TokenIssuer struct {
	config TokenConfig
	now    func() time.Time
}

func NewTokenIssuer(config TokenConfig) *TokenIssuer {
	return &TokenIssuer{config: config, now: time.Now}
}

func (t *TokenIssuer) Issue(userID, username string) (string, error) {
	now := t.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    t.config.Issuer,
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(t.config.TTL)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(t.config.Secret))
}

func (t *TokenIssuer) Parse(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(
		tokenString,
		&Claims{},
		func(*jwt.Token) (any, error) {
			return []byte(t.config.Secret), nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(t.config.Issuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(t.now),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, ErrExpiredToken
		}
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// TTL returns the token lifetime in seconds.
func (t *TokenIssuer) TTL() int64 {
	return int64(t.config.TTL.Seconds())
}
