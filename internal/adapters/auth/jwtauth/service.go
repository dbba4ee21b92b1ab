package jwtauth

import (
	"context"
	"strings"
	"time"

	"petvax-hub/internal/ports/auth"

	"github.com/golang-jwt/jwt/v5"
	"github.com/pkg/errors"
)

var (
	ErrSecretRequired = errors.New("jwt secret must be provided")
	ErrInvalidToken   = errors.New("invalid token")
)

const DefaultTTL = 7 * 24 * time.Hour

type tokenClaims struct {
	Email string `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Service emite y verifica tokens HS256 (sub = user id).
// Implementa auth.TokenIssuer y auth.AuthVerifier.
type Service struct {
	secret []byte
	ttl    time.Duration
	issuer string

	// now se usa al verificar exp; se pisa en tests.
	now func() time.Time
}

func NewService(secret string, ttl time.Duration, issuer string) (*Service, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, ErrSecretRequired
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		secret: []byte(secret),
		ttl:    ttl,
		issuer: strings.TrimSpace(issuer),
		now:    time.Now,
	}, nil
}

func (s *Service) Issue(c auth.Claims, now time.Time) (string, error) {
	if strings.TrimSpace(c.UserID) == "" {
		return "", errors.New("jwt: user id required")
	}

	claims := tokenClaims{
		Email: c.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   c.UserID,
			Issuer:    s.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.secret)
	if err != nil {
		return "", errors.Wrap(err, "jwt: sign")
	}
	return signed, nil
}

func (s *Service) Verify(_ context.Context, raw string) (auth.Claims, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return auth.Claims{}, ErrInvalidToken
	}

	var claims tokenClaims
	_, err := jwt.ParseWithClaims(raw, &claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil {
		return auth.Claims{}, errors.Wrap(ErrInvalidToken, err.Error())
	}

	if strings.TrimSpace(claims.Subject) == "" {
		return auth.Claims{}, errors.Wrap(ErrInvalidToken, "missing sub")
	}

	return auth.Claims{
		UserID: claims.Subject,
		Email:  claims.Email,
	}, nil
}
