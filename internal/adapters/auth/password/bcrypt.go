package password

import (
	"petvax-hub/internal/platform/apperror"
	"petvax-hub/internal/ports/auth"

	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrMismatch = errors.New("password mismatch")
	ErrTooLong  = apperror.Validation("Password must be at most 72 bytes")
)

// bcryptHasher implementa auth.PasswordHasher; el salt lo maneja bcrypt.
type bcryptHasher struct {
	cost int
}

// NewBcryptHasher usa bcrypt.DefaultCost si cost está fuera de rango.
func NewBcryptHasher(cost int) auth.PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &bcryptHasher{cost: cost}
}

func (h *bcryptHasher) Hash(password string) (string, error) {
	b, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if errors.Is(err, bcrypt.ErrPasswordTooLong) {
		return "", ErrTooLong
	}
	if err != nil {
		return "", errors.Wrap(err, "bcrypt: hash")
	}
	return string(b), nil
}

func (h *bcryptHasher) Compare(hash, password string) error {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
		return ErrMismatch
	}
	return errors.WithStack(err)
}
