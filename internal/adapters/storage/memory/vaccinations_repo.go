package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"petvax-hub/internal/domain/vaccinations"

	"github.com/pkg/errors"
)

type vaccinationRepo struct {
	mu   sync.RWMutex
	byID map[string]vaccinations.Vaccination
}

func NewVaccinationRepo() vaccinations.Repository {
	return &vaccinationRepo{
		byID: make(map[string]vaccinations.Vaccination),
	}
}

func (r *vaccinationRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(v.ID) == "" {
		return errors.New("vaccination id required")
	}
	if _, exists := r.byID[v.ID]; exists {
		return errors.Errorf("vaccination %s already exists", v.ID)
	}
	r.byID[v.ID] = v
	return nil
}

func (r *vaccinationRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	v, ok := r.byID[id]
	if !ok {
		return vaccinations.Vaccination{}, vaccinations.ErrNotFound
	}
	return v, nil
}

func (r *vaccinationRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.byID {
		if v.PetID == petID {
			out = append(out, v)
		}
	}

	// Más reciente primero
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].AdministeredDate.Equal(out[j].AdministeredDate) {
			return out[i].CreatedAt.After(out[j].CreatedAt)
		}
		return out[i].AdministeredDate.After(out[j].AdministeredDate)
	})

	return out, nil
}

func (r *vaccinationRepo) ListDue(ctx context.Context, petIDs []string, from, to time.Time, statuses []vaccinations.Status) ([]vaccinations.Vaccination, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	petSet := make(map[string]struct{}, len(petIDs))
	for _, id := range petIDs {
		petSet[id] = struct{}{}
	}
	statusSet := make(map[vaccinations.Status]struct{}, len(statuses))
	for _, s := range statuses {
		statusSet[s] = struct{}{}
	}

	out := make([]vaccinations.Vaccination, 0)
	for _, v := range r.byID {
		if _, ok := petSet[v.PetID]; !ok {
			continue
		}
		if _, ok := statusSet[v.Status]; !ok {
			continue
		}
		// Bordes inclusivos
		if v.NextDueDate.Before(from) || v.NextDueDate.After(to) {
			continue
		}
		out = append(out, v)
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].NextDueDate.Equal(out[j].NextDueDate) {
			return out[i].ID < out[j].ID
		}
		return out[i].NextDueDate.Before(out[j].NextDueDate)
	})

	return out, nil
}

func (r *vaccinationRepo) UpdateForOwner(ctx context.Context, id, ownerUserID string, patch vaccinations.Patch, at time.Time) (vaccinations.Vaccination, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok || v.OwnerUserID != ownerUserID {
		return vaccinations.Vaccination{}, vaccinations.ErrNotFound
	}
	v = patch.Apply(v, at)
	r.byID[id] = v
	return v, nil
}

func (r *vaccinationRepo) DeleteForOwner(ctx context.Context, id, ownerUserID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	v, ok := r.byID[id]
	if !ok || v.OwnerUserID != ownerUserID {
		return vaccinations.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}
