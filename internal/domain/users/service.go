package users

import (
	"context"
	"strings"
	"time"

	"petvax-hub/internal/platform/apperror"
	"petvax-hub/internal/ports/auth"

	"github.com/asaskevich/govalidator"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound           = apperror.NotFound("User not found")
	ErrEmailTaken         = apperror.Validation("Email already registered")
	ErrInvalidCredentials = apperror.Unauthorized("Invalid email or password")
	ErrPasswordTooLong    = apperror.Validation("Password must be at most 72 bytes")
)

const maxPasswordBytes = 72

type Service struct {
	repo   Repository
	hasher auth.PasswordHasher
	issuer auth.TokenIssuer
	now    func() time.Time
}

func NewService(repo Repository, hasher auth.PasswordHasher, issuer auth.TokenIssuer) *Service {
	return &Service{
		repo:   repo,
		hasher: hasher,
		issuer: issuer,
		now:    time.Now,
	}
}

type RegisterInput struct {
	FullName     string `json:"fullName" valid:"required~Please provide full name"`
	Email        string `json:"email" valid:"required~Please provide email,email~Please provide a valid email"`
	MobileNumber string `json:"mobileNumber" valid:"required~Please provide mobile number"`
	Password     string `json:"password" valid:"required~Please provide a password,minstringlength(6)~Password must be at least 6 characters"`
}

type LoginInput struct {
	Email    string `json:"email" valid:"required~Please provide email and password"`
	Password string `json:"password" valid:"required~Please provide email and password"`
}

type ProfileInput struct {
	FullName     *string `json:"fullName"`
	MobileNumber *string `json:"mobileNumber"`
	ProfileImage *string `json:"profileImage"`
}

// Session es el resultado de register/login.
type Session struct {
	User  User
	Token string
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (Session, error) {
	in.FullName = strings.TrimSpace(in.FullName)
	in.Email = normalizeEmail(in.Email)
	in.MobileNumber = strings.TrimSpace(in.MobileNumber)
	if err := validate(in); err != nil {
		return Session{}, err
	}
	if len(in.Password) > maxPasswordBytes {
		return Session{}, ErrPasswordTooLong
	}

	hash, err := s.hasher.Hash(in.Password)
	if err != nil {
		return Session{}, errors.Wrap(err, "hash password")
	}

	now := s.now()
	u := User{
		ID:           uuid.NewString(),
		FullName:     in.FullName,
		Email:        in.Email,
		MobileNumber: in.MobileNumber,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.repo.Create(ctx, u); err != nil {
		return Session{}, err
	}

	return s.session(u, now)
}

// Login responde lo mismo si el email no existe o la contraseña no coincide.
func (s *Service) Login(ctx context.Context, in LoginInput) (Session, error) {
	in.Email = normalizeEmail(in.Email)
	if err := validate(in); err != nil {
		return Session{}, err
	}

	u, err := s.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, err
	}

	if err := s.hasher.Compare(u.PasswordHash, in.Password); err != nil {
		return Session{}, ErrInvalidCredentials
	}

	return s.session(u, s.now())
}

func (s *Service) Me(ctx context.Context, userID string) (User, error) {
	if strings.TrimSpace(userID) == "" {
		return User{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, userID)
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, in ProfileInput) (User, error) {
	var patch ProfilePatch
	if in.FullName != nil {
		v := strings.TrimSpace(*in.FullName)
		if v == "" {
			return User{}, apperror.Validation("Please provide full name")
		}
		patch.FullName = &v
	}
	if in.MobileNumber != nil {
		v := strings.TrimSpace(*in.MobileNumber)
		if v == "" {
			return User{}, apperror.Validation("Please provide mobile number")
		}
		patch.MobileNumber = &v
	}
	if in.ProfileImage != nil {
		v := strings.TrimSpace(*in.ProfileImage)
		patch.ProfileImage = &v
	}

	return s.repo.UpdateProfile(ctx, userID, patch, s.now())
}

func (s *Service) session(u User, now time.Time) (Session, error) {
	token, err := s.issuer.Issue(auth.Claims{UserID: u.ID, Email: u.Email}, now)
	if err != nil {
		return Session{}, errors.Wrap(err, "issue token")
	}
	return Session{User: u, Token: token}, nil
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// validate corre govalidator y junta los mensajes en un apperror de validación.
func validate(v any) error {
	if _, err := govalidator.ValidateStruct(v); err != nil {
		msgs := make([]string, 0)
		collect(err, &msgs)
		if len(msgs) == 0 {
			return errors.Wrap(err, "validate")
		}
		return apperror.Validation(strings.Join(dedupe(msgs), ", "))
	}
	return nil
}

func collect(err error, out *[]string) {
	var list govalidator.Errors
	if errors.As(err, &list) {
		for _, e := range list {
			collect(e, out)
		}
		return
	}
	var fe govalidator.Error
	if errors.As(err, &fe) && fe.CustomErrorMessageExists {
		*out = append(*out, fe.Err.Error())
		return
	}
	*out = append(*out, err.Error())
}

func dedupe(in []string) []string {
	seen := make(map[string]struct{}, len(in))
	out := make([]string, 0, len(in))
	for _, s := range in {
		if _, ok := seen[s]; ok {
			continue
		}
		seen[s] = struct{}{}
		out = append(out, s)
	}
	return out
}
