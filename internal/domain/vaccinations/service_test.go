package vaccinations

import (
	"context"
	"sort"
	"testing"
	"time"

	"petvax-hub/internal/domain/pets"
	"petvax-hub/internal/platform/apperror"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -------------------------
// Test doubles (in-memory)
// -------------------------

type testRepo struct {
	byID map[string]Vaccination
}

func newTestRepo() *testRepo {
	return &testRepo{byID: map[string]Vaccination{}}
}

func (r *testRepo) Create(_ context.Context, v Vaccination) error {
	r.byID[v.ID] = v
	return nil
}

func (r *testRepo) GetByID(_ context.Context, id string) (Vaccination, error) {
	v, ok := r.byID[id]
	if !ok {
		return Vaccination{}, ErrNotFound
	}
	return v, nil
}

func (r *testRepo) ListByPet(_ context.Context, petID string) ([]Vaccination, error) {
	out := make([]Vaccination, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AdministeredDate.After(out[j].AdministeredDate) })
	return out, nil
}

func (r *testRepo) ListDue(_ context.Context, petIDs []string, from, to time.Time, statuses []Status) ([]Vaccination, error) {
	in := map[string]bool{}
	for _, id := range petIDs {
		in[id] = true
	}
	okStatus := map[Status]bool{}
	for _, s := range statuses {
		okStatus[s] = true
	}

	out := make([]Vaccination, 0)
	for _, v := range r.byID {
		if !in[v.PetID] || !okStatus[v.Status] {
			continue
		}
		if v.NextDueDate.Before(from) || v.NextDueDate.After(to) {
			continue
		}
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].NextDueDate.Before(out[j].NextDueDate) })
	return out, nil
}

func (r *testRepo) UpdateForOwner(_ context.Context, id, owner string, patch Patch, at time.Time) (Vaccination, error) {
	v, ok := r.byID[id]
	if !ok || v.OwnerUserID != owner {
		return Vaccination{}, ErrNotFound
	}
	v = patch.Apply(v, at)
	r.byID[id] = v
	return v, nil
}

func (r *testRepo) DeleteForOwner(_ context.Context, id, owner string) error {
	v, ok := r.byID[id]
	if !ok || v.OwnerUserID != owner {
		return ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

type testPets struct {
	byID map[string]pets.Pet
}

func (d *testPets) Get(_ context.Context, owner, id string) (pets.Pet, error) {
	p, ok := d.byID[id]
	if !ok || p.OwnerUserID != owner {
		return pets.Pet{}, pets.ErrNotFound
	}
	return p, nil
}

func (d *testPets) List(_ context.Context, owner string) ([]pets.Pet, error) {
	out := make([]pets.Pet, 0)
	for _, p := range d.byID {
		if p.OwnerUserID == owner && p.IsActive {
			out = append(out, p)
		}
	}
	return out, nil
}

// -------------------------
// Helpers
// -------------------------

var testNow = time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func strPtr(s string) *string { return &s }

func newTestService() (*Service, *testRepo) {
	repo := newTestRepo()
	dir := &testPets{byID: map[string]pets.Pet{
		"pet-a":    {ID: "pet-a", OwnerUserID: "owner-1", Name: "Milo", Species: pets.SpeciesDog, IsActive: true},
		"pet-b":    {ID: "pet-b", OwnerUserID: "owner-1", Name: "Luna", Species: pets.SpeciesCat, IsActive: true},
		"pet-gone": {ID: "pet-gone", OwnerUserID: "owner-1", Name: "Old", Species: pets.SpeciesBird, IsActive: false},
		"pet-x":    {ID: "pet-x", OwnerUserID: "owner-2", Name: "Rex", Species: pets.SpeciesDog, IsActive: true},
	}}
	svc := NewService(repo, dir)
	svc.now = func() time.Time { return testNow }
	return svc, repo
}

func validInput(petID string) CreateInput {
	return CreateInput{
		PetID:            petID,
		VaccineName:      " Rabies ",
		VaccineType:      VaccineTypeCore,
		AdministeredDate: day(2023, 1, 10),
		NextDueDate:      day(2024, 1, 10),
		Veterinarian:     "Dr. Vet",
		Clinic:           Clinic{Name: "Happy Paws", Phone: "555-0100"},
	}
}

func seed(t *testing.T, svc *Service, petID string, next time.Time, status Status) Vaccination {
	t.Helper()
	in := validInput(petID)
	in.NextDueDate = &next
	in.Status = status
	v, err := svc.Create(context.Background(), "owner-1", in)
	require.NoError(t, err)
	return v
}

// -------------------------
// Tests
// -------------------------

func TestDueWindow(t *testing.T) {
	from, to := DueWindow(testNow)
	assert.Equal(t, testNow, from)
	assert.Equal(t, time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), to)

	// desborde de fin de mes, como setMonth
	_, to = DueWindow(time.Date(2024, 1, 31, 0, 0, 0, 0, time.UTC))
	assert.Equal(t, time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC), to)
}

func TestCreate_DefaultsAndOwner(t *testing.T) {
	svc, _ := newTestService()

	v, err := svc.Create(context.Background(), "owner-1", validInput("pet-a"))
	require.NoError(t, err)

	assert.NotEmpty(t, v.ID)
	assert.Equal(t, "pet-a", v.PetID)
	assert.Equal(t, "owner-1", v.OwnerUserID)
	assert.Equal(t, "Rabies", v.VaccineName)
	assert.Equal(t, StatusCompleted, v.Status)
	assert.False(t, v.ReminderSent)
	assert.Equal(t, testNow, v.CreatedAt)
}

func TestCreate_PetMustBeOwned(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Create(context.Background(), "owner-1", validInput("pet-x"))
	assert.ErrorIs(t, err, pets.ErrNotFound)

	_, err = svc.Create(context.Background(), "owner-1", validInput("nope"))
	assert.ErrorIs(t, err, pets.ErrNotFound)

	_, err = svc.Create(context.Background(), "owner-1", validInput(""))
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestService()

	in := validInput("pet-a")
	in.VaccineName = ""
	in.VaccineType = "experimental"
	in.AdministeredDate = nil
	in.Status = "lost"

	_, err := svc.Create(context.Background(), "owner-1", in)
	require.Error(t, err)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
	assert.Equal(t,
		"Please provide vaccine name, vaccineType must be one of: core, non-core, required, optional, "+
			"Please provide administration date, status must be one of: completed, scheduled, overdue, upcoming",
		err.Error(),
	)
}

func TestListByPet_OwnershipAndOrder(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	older := validInput("pet-a")
	older.AdministeredDate = day(2022, 3, 1)
	_, err := svc.Create(ctx, "owner-1", older)
	require.NoError(t, err)

	newer := validInput("pet-a")
	newer.AdministeredDate = day(2023, 3, 1)
	_, err = svc.Create(ctx, "owner-1", newer)
	require.NoError(t, err)

	list, err := svc.ListByPet(ctx, "owner-1", "pet-a")
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, *day(2023, 3, 1), list[0].AdministeredDate)

	_, err = svc.ListByPet(ctx, "owner-2", "pet-a")
	assert.ErrorIs(t, err, pets.ErrNotFound)
}

func TestUpcoming_WindowAndStatus(t *testing.T) {
	svc, repo := newTestService()

	inWindowLate := seed(t, svc, "pet-a", time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC), StatusScheduled)
	inWindowEarly := seed(t, svc, "pet-b", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), StatusUpcoming)
	seed(t, svc, "pet-a", time.Date(2024, 2, 16, 0, 0, 0, 0, time.UTC), StatusScheduled) // fuera de ventana
	seed(t, svc, "pet-a", time.Date(2024, 1, 14, 0, 0, 0, 0, time.UTC), StatusScheduled) // ya pasó
	seed(t, svc, "pet-a", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), StatusCompleted) // estado no cuenta
	seed(t, svc, "pet-a", time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), StatusOverdue)

	// mascota dada de baja: sus vacunas no aparecen
	gone := Vaccination{
		ID: "v-gone", PetID: "pet-gone", OwnerUserID: "owner-1",
		NextDueDate: time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), Status: StatusScheduled,
	}
	require.NoError(t, repo.Create(context.Background(), gone))

	got, err := svc.Upcoming(context.Background(), "owner-1")
	require.NoError(t, err)
	require.Len(t, got, 2)

	assert.Equal(t, inWindowEarly.ID, got[0].ID)
	assert.Equal(t, PetSummary{ID: "pet-b", Name: "Luna", Species: pets.SpeciesCat}, got[0].Pet)
	assert.Equal(t, inWindowLate.ID, got[1].ID)
	assert.Equal(t, "Milo", got[1].Pet.Name)

	none, err := svc.Upcoming(context.Background(), "owner-without-pets")
	require.NoError(t, err)
	assert.Empty(t, none)
}

func TestUpdate_ForbiddenVersusNotFound(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, "owner-1", validInput("pet-a"))
	require.NoError(t, err)

	_, err = svc.Update(ctx, "owner-2", v.ID, UpdateInput{Notes: strPtr("hijack")})
	assert.ErrorIs(t, err, ErrForbiddenUpdate)
	assert.Equal(t, apperror.KindForbidden, apperror.KindOf(err))

	_, err = svc.Update(ctx, "owner-2", "missing", UpdateInput{Notes: strPtr("x")})
	assert.ErrorIs(t, err, ErrNotFound)

	assert.ErrorIs(t, svc.Delete(ctx, "owner-2", v.ID), ErrForbiddenDelete)
	assert.ErrorIs(t, svc.Delete(ctx, "owner-2", "missing"), ErrNotFound)
}

func TestUpdate_OwnershipBeforeValidation(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, "owner-1", validInput("pet-a"))
	require.NoError(t, err)

	bad := UpdateInput{Status: strPtr("lost")}

	_, err = svc.Update(ctx, "owner-2", v.ID, bad)
	assert.ErrorIs(t, err, ErrForbiddenUpdate)

	_, err = svc.Update(ctx, "owner-2", "missing", bad)
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = svc.Update(ctx, "owner-1", v.ID, bad)
	assert.Equal(t, apperror.KindValidation, apperror.KindOf(err))
}

func TestUpdate_AppliesPatch(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, "owner-1", validInput("pet-a"))
	require.NoError(t, err)

	later := testNow.Add(time.Hour)
	svc.now = func() time.Time { return later }

	sent := true
	updated, err := svc.Update(ctx, "owner-1", v.ID, UpdateInput{
		Status:       strPtr("scheduled"),
		ReminderSent: &sent,
		NextDueDate:  day(2025, 1, 10),
	})
	require.NoError(t, err)

	assert.Equal(t, StatusScheduled, updated.Status)
	assert.True(t, updated.ReminderSent)
	assert.Equal(t, *day(2025, 1, 10), updated.NextDueDate)
	assert.Equal(t, "pet-a", updated.PetID)
	assert.Equal(t, "Rabies", updated.VaccineName)
	assert.Equal(t, later, updated.UpdatedAt)

	_, err = svc.Update(ctx, "owner-1", v.ID, UpdateInput{VaccineType: strPtr("bogus"), Veterinarian: strPtr(" ")})
	require.Error(t, err)
	assert.Equal(t, "vaccineType must be one of: core, non-core, required, optional, veterinarian is required", err.Error())
}

func TestDelete_IsHard(t *testing.T) {
	svc, repo := newTestService()
	ctx := context.Background()

	v, err := svc.Create(ctx, "owner-1", validInput("pet-a"))
	require.NoError(t, err)

	require.NoError(t, svc.Delete(ctx, "owner-1", v.ID))
	assert.NotContains(t, repo.byID, v.ID)
	assert.ErrorIs(t, svc.Delete(ctx, "owner-1", v.ID), ErrNotFound)
}
