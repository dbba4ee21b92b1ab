package pets

import (
	"context"
	"sort"
	"testing"
	"time"

	"petvax-hub/internal/platform/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Pet
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Pet{}}
}

func (r *testRepo) Create(_ context.Context, p Pet) error {
	if p.MicrochipNumber != "" {
		for _, other := range r.byID {
			if other.MicrochipNumber == p.MicrochipNumber {
				return ErrDuplicateMicrochip
			}
		}
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testRepo) GetForOwner(_ context.Context, id, owner string) (Pet, error) {
	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != owner {
		return Pet{}, ErrNotFound
	}
	return p, nil
}

func (r *testRepo) ListActiveByOwner(_ context.Context, owner string) ([]Pet, error) {
	out := make([]Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == owner && p.IsActive {
			out = append(out, p)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out, nil
}

func (r *testRepo) Update(_ context.Context, id, owner string, patch Patch, at time.Time) (Pet, error) {
	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != owner {
		return Pet{}, ErrNotFound
	}
	p = patch.Apply(p, at)
	r.byID[id] = p
	return p, nil
}

func (r *testRepo) SoftDelete(_ context.Context, id, owner string, at time.Time) error {
	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != owner {
		return ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = at
	r.byID[id] = p
	return nil
}

// -------------------------
// Helpers
// -------------------------

var testNow = time.Date(2024, 1, 15, 12, 0, 0, 0, time.UTC)

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	svc := NewService(repo)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

func validInput() CreateInput {
	w := 12.5
	return CreateInput{
		Name:        "  Milo ",
		Species:     SpeciesDog,
		Breed:       "Beagle",
		DateOfBirth: date(2021, 1, 15),
		Gender:      GenderMale,
		Weight:      &w,
		Color:       "brown",
	}
}

// -------------------------
// Tests
// -------------------------

func TestAgeAt(t *testing.T) {
	now := testNow

	assert.Equal(t, 3, AgeAt(*date(2021, 1, 15), now), "exactly three years")
	assert.Equal(t, 2, AgeAt(*date(2021, 1, 16), now), "birthday tomorrow")
	assert.Equal(t, 0, AgeAt(*date(2024, 1, 1), now))
	assert.Equal(t, 0, AgeAt(*date(2025, 6, 1), now), "future dates clamp to zero")

	// 29-feb: en años no bisiestos cumple recién el 1-mar
	assert.Equal(t, 0, AgeAt(*date(2023, 2, 28), time.Date(2024, 2, 27, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 3, AgeAt(*date(2020, 2, 29), time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)))
	assert.Equal(t, 2, AgeAt(*date(2020, 2, 29), time.Date(2023, 2, 28, 0, 0, 0, 0, time.UTC)))
}

func TestCreate_ForcesOwnerAndDefaults(t *testing.T) {
	svc, repo := newTestService()

	p, err := svc.Create(context.Background(), "owner-1", validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "owner-1", p.OwnerUserID)
	assert.Equal(t, "Milo", p.Name)
	assert.True(t, p.IsActive)
	assert.Equal(t, testNow, p.CreatedAt)
	assert.Equal(t, testNow, p.UpdatedAt)
	assert.Equal(t, 3, svc.Age(p))
	assert.Contains(t, repo.byID, p.ID)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	tests := []struct {
		name    string
		mutate  func(*CreateInput)
		wantMsg string
	}{
		{name: "missing name", mutate: func(in *CreateInput) { in.Name = "   " }, wantMsg: "Please provide pet name"},
		{name: "bad species", mutate: func(in *CreateInput) { in.Species = "fish" }, wantMsg: "species must be one of: dog, cat, bird, other"},
		{name: "missing dob", mutate: func(in *CreateInput) { in.DateOfBirth = nil }, wantMsg: "Please provide date of birth"},
		{name: "bad gender", mutate: func(in *CreateInput) { in.Gender = "unknown" }, wantMsg: "gender must be one of: male, female"},
		{name: "negative weight", mutate: func(in *CreateInput) { w := -1.0; in.Weight = &w }, wantMsg: "weight must be at least 0"},
		{name: "future dob", mutate: func(in *CreateInput) { in.DateOfBirth = date(2024, 2, 1) }, wantMsg: "dateOfBirth cannot be in the future"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)

			_, err := svc.Create(context.Background(), "owner-1", in)
			require.Error(t, err)
			assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
			assert.Equal(t, tt.wantMsg, err.Error())
		})
	}
}

func TestCreate_DuplicateMicrochip(t *testing.T) {
	svc, _ := newTestService()

	in := validInput()
	in.MicrochipNumber = "985112345678901"
	_, err := svc.Create(context.Background(), "owner-1", in)
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), "owner-2", in)
	assert.ErrorIs(t, err, ErrDuplicateMicrochip)
}

func TestGet_OtherOwnerIsNotFound(t *testing.T) {
	svc, _ := newTestService()

	p, err := svc.Create(context.Background(), "owner-1", validInput())
	require.NoError(t, err)

	_, errOther := svc.Get(context.Background(), "owner-2", p.ID)
	_, errMissing := svc.Get(context.Background(), "owner-2", "does-not-exist")

	assert.ErrorIs(t, errOther, ErrNotFound)
	assert.ErrorIs(t, errMissing, ErrNotFound)
	assert.Equal(t, errMissing.Error(), errOther.Error())
}

func TestDelete_IsSoftAndIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "owner-1", p.ID))
	require.NoError(t, svc.Delete(ctx, "owner-1", p.ID))

	list, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	assert.Empty(t, list)

	got, err := svc.Get(ctx, "owner-1", p.ID)
	require.NoError(t, err)
	assert.False(t, got.IsActive)

	assert.ErrorIs(t, svc.Delete(ctx, "owner-2", p.ID), ErrNotFound)
}

func TestList_NewestFirst(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	first, err := svc.Create(ctx, "owner-1", validInput())
	require.NoError(t, err)

	svc.now = func() time.Time { return testNow.Add(time.Minute) }
	in := validInput()
	in.Name = "Luna"
	second, err := svc.Create(ctx, "owner-1", in)
	require.NoError(t, err)

	list, err := svc.List(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)
}

func TestUpdate_PartialAndValidated(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", validInput())
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	updated, err := svc.Update(ctx, "owner-1", p.ID, UpdateInput{
		Name:        strPtr(" Milo II "),
		ClearWeight: true,
		Photo:       strPtr("milo.jpg"),
		MedicalHistory: &[]MedicalEntryInput{
			{Condition: "Allergy", DiagnosedDate: date(2023, 5, 1)},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Milo II", updated.Name)
	assert.Nil(t, updated.Weight)
	assert.Equal(t, "milo.jpg", updated.Photo)
	assert.Equal(t, SpeciesDog, updated.Species, "untouched fields keep their value")
	require.Len(t, updated.MedicalHistory, 1)
	assert.NotEmpty(t, updated.MedicalHistory[0].ID)
	assert.Equal(t, later, updated.UpdatedAt)
	assert.Equal(t, p.CreatedAt, updated.CreatedAt)
	assert.True(t, updated.IsActive)

	_, err = svc.Update(ctx, "owner-1", p.ID, UpdateInput{
		Name:    strPtr(""),
		Species: strPtr("fish"),
	})
	require.Error(t, err)
	assert.Equal(t, "Please provide pet name, species must be one of: dog, cat, bird, other", err.Error())

	_, err = svc.Update(ctx, "owner-2", p.ID, UpdateInput{Name: strPtr("Stolen")})
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestUpdate_InvalidBodyOnForeignPetIsNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	p, err := svc.Create(ctx, "owner-1", validInput())
	require.NoError(t, err)

	bad := UpdateInput{Species: strPtr("fish")}

	_, err = svc.Update(ctx, "owner-2", p.ID, bad)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, "owner-2", "does-not-exist", bad)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, "owner-1", p.ID, bad)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}
