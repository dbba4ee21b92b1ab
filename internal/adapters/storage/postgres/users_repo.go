package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"petvax-hub/internal/domain/users"

	"github.com/pkg/errors"
)

const userColumns = `
	id, full_name, email, mobile_number, profile_image, password_hash,
	created_at, updated_at`

type UsersRepo struct {
	db *sql.DB
}

func NewUsersRepo(db *sql.DB) *UsersRepo {
	return &UsersRepo{db: db}
}

func (r *UsersRepo) Create(ctx context.Context, u users.User) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO users (`+userColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8)
	`,
		u.ID,
		u.FullName,
		u.Email,
		u.MobileNumber,
		u.ProfileImage,
		u.PasswordHash,
		u.CreatedAt,
		u.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "users_email_key") {
			return users.ErrEmailTaken
		}
		return errors.Wrap(err, "insert user")
	}
	return nil
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (users.User, error) {
	return r.getOne(ctx, "id", strings.TrimSpace(id))
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (users.User, error) {
	return r.getOne(ctx, "email", strings.TrimSpace(email))
}

func (r *UsersRepo) UpdateProfile(ctx context.Context, id string, patch users.ProfilePatch, at time.Time) (users.User, error) {
	var sb strings.Builder
	args := []any{id}
	argN := 2

	set := func(col string, v string) {
		sb.WriteString(fmt.Sprintf("%s = $%d, ", col, argN))
		args = append(args, v)
		argN++
	}

	if patch.FullName != nil {
		set("full_name", *patch.FullName)
	}
	if patch.MobileNumber != nil {
		set("mobile_number", *patch.MobileNumber)
	}
	if patch.ProfileImage != nil {
		set("profile_image", *patch.ProfileImage)
	}
	sb.WriteString(fmt.Sprintf("updated_at = $%d", argN))
	args = append(args, at)

	row := r.db.QueryRowContext(ctx, `
		UPDATE users
		SET `+sb.String()+`
		WHERE id = $1
		RETURNING `+userColumns, args...)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, errors.Wrap(err, "update user")
	}
	return u, nil
}

// getOne: col es siempre una constante de este archivo, nunca input del usuario.
func (r *UsersRepo) getOne(ctx context.Context, col, value string) (users.User, error) {
	if value == "" {
		return users.User{}, users.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+userColumns+`
		FROM users
		WHERE `+col+` = $1
	`, value)

	u, err := scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return users.User{}, users.ErrNotFound
		}
		return users.User{}, errors.Wrap(err, "get user")
	}
	return u, nil
}

func scanUser(row rowScanner) (users.User, error) {
	var u users.User
	if err := row.Scan(
		&u.ID,
		&u.FullName,
		&u.Email,
		&u.MobileNumber,
		&u.ProfileImage,
		&u.PasswordHash,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return users.User{}, err
	}
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}
