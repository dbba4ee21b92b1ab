package users

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"petvax-hub/internal/platform/apperror"
	"petvax-hub/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test doubles
// -------------------------

type testRepo struct {
	byID map[string]User
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]User{}}
}

func (r *testRepo) Create(_ context.Context, u User) error {
	for _, other := range r.byID {
		if other.Email == u.Email {
			return ErrEmailTaken
		}
	}
	r.byID[u.ID] = u
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	return u, nil
}

func (r *testRepo) GetByEmail(_ context.Context, email string) (User, error) {
	for _, u := range r.byID {
		if u.Email == email {
			return u, nil
		}
	}
	return User{}, ErrNotFound
}

func (r *testRepo) UpdateProfile(_ context.Context, id string, patch ProfilePatch, at time.Time) (User, error) {
	u, ok := r.byID[id]
	if !ok {
		return User{}, ErrNotFound
	}
	u = patch.Apply(u, at)
	r.byID[id] = u
	return u, nil
}

// plainHasher "hashea" con un prefijo; alcanza para probar el flujo sin bcrypt.
type plainHasher struct{}

func (plainHasher) Hash(p string) (string, error) { return "hashed:" + p, nil }

func (plainHasher) Compare(hash, p string) error {
	if hash != "hashed:"+p {
		return errors.New("mismatch")
	}
	return nil
}

type testIssuer struct{}

func (testIssuer) Issue(c auth.Claims, now time.Time) (string, error) {
	return "token-" + c.UserID + "-" + now.Format("20060102"), nil
}

var testNow = time.Date(2024, 1, 15, 9, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo, plainHasher{}, testIssuer{})
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func validRegister() RegisterInput {
	return RegisterInput{
		FullName:     " Ana Pérez ",
		Email:        " Ana@Example.COM ",
		MobileNumber: "+54 11 5555 0000",
		Password:     "secret1",
	}
}

// -------------------------
// Tests
// -------------------------

func TestRegister_NormalizesAndIssuesToken(t *testing.T) {
	svc, repo := newTestService()

	sess, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	assert.Equal(t, "Ana Pérez", sess.User.FullName)
	assert.Equal(t, "ana@example.com", sess.User.Email)
	assert.Equal(t, "hashed:secret1", repo.byID[sess.User.ID].PasswordHash)
	assert.Equal(t, "token-"+sess.User.ID+"-20240115", sess.Token)
}

func TestRegister_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name    string
		mutate  func(*RegisterInput)
		wantMsg string
	}{
		{name: "missing name", mutate: func(in *RegisterInput) { in.FullName = "" }, wantMsg: "Please provide full name"},
		{name: "bad email", mutate: func(in *RegisterInput) { in.Email = "not-an-email" }, wantMsg: "Please provide a valid email"},
		{name: "short password", mutate: func(in *RegisterInput) { in.Password = "123" }, wantMsg: "Password must be at least 6 characters"},
		{name: "password over 72 bytes", mutate: func(in *RegisterInput) { in.Password = strings.Repeat("a", 80) }, wantMsg: "Password must be at most 72 bytes"},
		{name: "multibyte password over 72 bytes", mutate: func(in *RegisterInput) { in.Password = strings.Repeat("ñ", 40) }, wantMsg: "Password must be at most 72 bytes"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validRegister()
			tt.mutate(&in)

			_, err := svc.Register(context.Background(), in)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.True(t, strings.Contains(err.Error(), tt.wantMsg), err.Error())
		})
	}
}

func TestRegister_DuplicateEmail(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Register(context.Background(), validRegister())
	require.NoError(t, err)

	in := validRegister()
	in.Email = "ANA@example.com"
	_, err = svc.Register(context.Background(), in)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	sess, err := svc.Login(ctx, LoginInput{Email: "ANA@example.com", Password: "secret1"})
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, sess.User.ID)
	assert.NotEmpty(t, sess.Token)

	_, err = svc.Login(ctx, LoginInput{Email: "ana@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{Email: "nobody@example.com", Password: "secret1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.Login(ctx, LoginInput{})
	require.Error(t, err)
	assert.Equal(t, "Please provide email and password", err.Error())
}

func TestUpdateProfile_OnlyProfileFields(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	reg, err := svc.Register(ctx, validRegister())
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	name := "Ana P."
	img := "ana.png"
	u, err := svc.UpdateProfile(ctx, reg.User.ID, ProfileInput{FullName: &name, ProfileImage: &img})
	require.NoError(t, err)

	assert.Equal(t, "Ana P.", u.FullName)
	assert.Equal(t, "ana.png", u.ProfileImage)
	assert.Equal(t, "+54 11 5555 0000", u.MobileNumber)
	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, later, u.UpdatedAt)

	blank := " "
	_, err = svc.UpdateProfile(ctx, reg.User.ID, ProfileInput{FullName: &blank})
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))

	_, err = svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}
