package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"petvax-hub/internal/domain/pets"

	"github.com/pkg/errors"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet
}

func NewPetRepo() pets.Repository {
	return &petRepo{
		byID: make(map[string]pets.Pet),
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.Errorf("pet %s already exists", p.ID)
	}
	if r.microchipTaken(p.MicrochipNumber, p.ID) {
		return pets.ErrDuplicateMicrochip
	}
	r.byID[p.ID] = clonePet(p)
	return nil
}

// GetForOwner no filtra por IsActive: una mascota dada de baja sigue accesible por id.
func (r *petRepo) GetForOwner(ctx context.Context, id, ownerUserID string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return pets.Pet{}, pets.ErrNotFound
	}
	return clonePet(p), nil
}

func (r *petRepo) ListActiveByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.OwnerUserID == ownerUserID && p.IsActive {
			out = append(out, clonePet(p))
		}
	}

	// Más nueva primero; a igual created_at desempata el id para que el orden sea estable.
	sort.Slice(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].ID > out[j].ID
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})

	return out, nil
}

func (r *petRepo) Update(ctx context.Context, id, ownerUserID string, patch pets.Patch, at time.Time) (pets.Pet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return pets.Pet{}, pets.ErrNotFound
	}
	if patch.MicrochipNumber != nil && r.microchipTaken(*patch.MicrochipNumber, id) {
		return pets.Pet{}, pets.ErrDuplicateMicrochip
	}

	p = patch.Apply(p, at)
	r.byID[id] = clonePet(p)
	return clonePet(p), nil
}

func (r *petRepo) SoftDelete(ctx context.Context, id, ownerUserID string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	p, ok := r.byID[id]
	if !ok || p.OwnerUserID != ownerUserID {
		return pets.ErrNotFound
	}
	p.IsActive = false
	p.UpdatedAt = at
	r.byID[id] = p
	return nil
}

// microchipTaken: el índice es global e incluye mascotas inactivas, como el unique de la base.
func (r *petRepo) microchipTaken(chip, exceptID string) bool {
	if chip == "" {
		return false
	}
	for id, p := range r.byID {
		if id != exceptID && p.MicrochipNumber == chip {
			return true
		}
	}
	return false
}

func clonePet(p pets.Pet) pets.Pet {
	if p.Weight != nil {
		w := *p.Weight
		p.Weight = &w
	}
	if p.MedicalHistory != nil {
		p.MedicalHistory = append([]pets.MedicalEntry(nil), p.MedicalHistory...)
	}
	return p
}
