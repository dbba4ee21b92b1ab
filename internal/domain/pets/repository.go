package pets

import (
	"context"
	"time"
)

// Repository es el store de mascotas. Todas las operaciones con owner son
// una sola operación condicional (id AND owner); si nada coincide devuelven
// ErrNotFound, sin distinguir "no existe" de "es de otro".
type Repository interface {
	// Create devuelve ErrDuplicateMicrochip si el microchip ya existe.
	Create(ctx context.Context, p Pet) error
	GetForOwner(ctx context.Context, id, ownerUserID string) (Pet, error)
	// ListActiveByOwner ordena por CreatedAt descendente.
	ListActiveByOwner(ctx context.Context, ownerUserID string) ([]Pet, error)
	Update(ctx context.Context, id, ownerUserID string, patch Patch, at time.Time) (Pet, error)
	SoftDelete(ctx context.Context, id, ownerUserID string, at time.Time) error
}
