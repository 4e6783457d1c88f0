package jwtinfra

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-contacts-api/internal/config"
	"github.com/golang-jwt/jwt/v5"
)

// ErrInvalidToken covers every verification failure: bad signature,
// malformed encoding, wrong algorithm or expired claims. Callers must not
// distinguish between these cases.
var ErrInvalidToken = errors.New("invalid or expired token")

// Provider signs and verifies HMAC JWTs carrying a subject email.
// The secret, algorithm and lifetime are process-wide configuration,
// loaded once at startup and never rotated at runtime.
type Provider struct {
	secret []byte
	method jwt.SigningMethod
	expiry time.Duration
}

func NewProvider(cfg *config.Config) (*Provider, error) {
	if cfg.SecretKey == "" {
		return nil, errors.New("SECRET_KEY is not set")
	}
	method := jwt.GetSigningMethod(cfg.JWTAlgorithm)
	if _, ok := method.(*jwt.SigningMethodHMAC); !ok {
		return nil, fmt.Errorf("unsupported signing algorithm %q", cfg.JWTAlgorithm)
	}
	return &Provider{
		secret: []byte(cfg.SecretKey),
		method: method,
		expiry: cfg.AccessTokenExpires,
	}, nil
}

// Sign issues a token with sub=subject expiring after the configured lifetime.
func (p *Provider) Sign(subject string) (string, error) {
	return p.SignWithTTL(subject, p.expiry)
}

// SignWithTTL issues a token with an explicit lifetime.
func (p *Provider) SignWithTTL(subject string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.RegisteredClaims{
		Subject:   subject,
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		IssuedAt:  jwt.NewNumericDate(now),
	}
	return jwt.NewWithClaims(p.method, claims).SignedString(p.secret)
}

// Verify checks the signature and expiry and returns the embedded subject.
func (p *Provider) Verify(tokenStr string) (string, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &jwt.RegisteredClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return p.secret, nil
	})
	if err != nil {
		return "", ErrInvalidToken
	}
	claims, ok := token.Claims.(*jwt.RegisteredClaims)
	if !ok || !token.Valid || claims.Subject == "" {
		return "", ErrInvalidToken
	}
	return claims.Subject, nil
}
