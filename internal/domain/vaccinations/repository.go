package vaccinations

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, v Vaccination) error
	GetByID(ctx context.Context, id string) (Vaccination, error)

	// ListByPet ordena por AdministeredDate descendente.
	ListByPet(ctx context.Context, petID string) ([]Vaccination, error)

	// ListDue: pet IN petIDs, from <= NextDueDate <= to, status IN statuses;
	// orden por NextDueDate ascendente.
	ListDue(ctx context.Context, petIDs []string, from, to time.Time, statuses []Status) ([]Vaccination, error)

	// UpdateForOwner y DeleteForOwner filtran por id AND owner en una sola
	// operación. Si nada coincide devuelven ErrNotFound.
	UpdateForOwner(ctx context.Context, id, ownerUserID string, patch Patch, at time.Time) (Vaccination, error)
	DeleteForOwner(ctx context.Context, id, ownerUserID string) error
}
