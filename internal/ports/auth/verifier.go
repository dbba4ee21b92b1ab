package auth

import (
	"context"
	"time"
)

// AuthVerifier verifica un token y devuelve claims o error.
type AuthVerifier interface {
	Verify(ctx context.Context, token string) (Claims, error)
}

// TokenIssuer emite tokens de sesión para un usuario ya autenticado.
type TokenIssuer interface {
	Issue(claims Claims, now time.Time) (string, error)
}

// PasswordHasher hashea y compara contraseñas.
// Compare devuelve error si no coinciden.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) error
}
