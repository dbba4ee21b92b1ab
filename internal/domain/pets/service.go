package pets

import (
	"context"
	"strings"
	"time"

	"petvax-hub/internal/platform/apperror"
	"petvax-hub/internal/platform/validation"

	"github.com/google/uuid"
)

var (
	ErrNotFound           = apperror.NotFound("Pet not found")
	ErrDuplicateMicrochip = apperror.Validation("Microchip number already registered")
	ErrFutureDateOfBirth  = apperror.Validation("dateOfBirth cannot be in the future")
)

var messages = validation.Messages{
	"name.required":        "Please provide pet name",
	"species.required":     "Please specify species",
	"dateOfBirth.required": "Please provide date of birth",
}

const (
	speciesTag = "oneof=dog cat bird other"
	genderTag  = "oneof=male female"
	weightTag  = "gte=0"
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Age es la edad de p según el reloj del servicio.
func (s *Service) Age(p Pet) int {
	return p.AgeAt(s.now())
}

type MedicalEntryInput struct {
	ID            string     `json:"_id"`
	Condition     string     `json:"condition"`
	DiagnosedDate *time.Time `json:"diagnosedDate"`
	Notes         string     `json:"notes"`
}

type CreateInput struct {
	Name            string              `json:"name" validate:"required"`
	Species         Species             `json:"species" validate:"required,oneof=dog cat bird other"`
	Breed           string              `json:"breed"`
	DateOfBirth     *time.Time          `json:"dateOfBirth" validate:"required"`
	Gender          Gender              `json:"gender" validate:"required,oneof=male female"`
	Weight          *float64            `json:"weight" validate:"omitempty,gte=0"`
	Color           string              `json:"color"`
	MicrochipNumber string              `json:"microchipNumber"`
	Photo           string              `json:"photo"`
	MedicalHistory  []MedicalEntryInput `json:"medicalHistory"`
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Pet, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Pet{}, apperror.Unauthorized("Not authorized to access this route")
	}

	in.Name = strings.TrimSpace(in.Name)
	in.Species = Species(strings.TrimSpace(string(in.Species)))
	in.Gender = Gender(strings.TrimSpace(string(in.Gender)))
	if err := validation.Struct(in, messages); err != nil {
		return Pet{}, err
	}

	now := s.now()
	if in.DateOfBirth.After(now) {
		return Pet{}, ErrFutureDateOfBirth
	}

	p := Pet{
		ID:              uuid.NewString(),
		OwnerUserID:     ownerUserID, // siempre el caller, venga lo que venga en el body
		Name:            in.Name,
		Species:         in.Species,
		Breed:           strings.TrimSpace(in.Breed),
		DateOfBirth:     in.DateOfBirth.UTC(),
		Gender:          in.Gender,
		Weight:          in.Weight,
		Color:           strings.TrimSpace(in.Color),
		MicrochipNumber: strings.TrimSpace(in.MicrochipNumber),
		Photo:           strings.TrimSpace(in.Photo),
		MedicalHistory:  toEntries(in.MedicalHistory),
		IsActive:        true,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

// Get devuelve la mascota aunque esté inactiva.
func (s *Service) Get(ctx context.Context, ownerUserID, id string) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}
	return s.repo.GetForOwner(ctx, id, ownerUserID)
}

// List devuelve solo las activas, más nuevas primero.
func (s *Service) List(ctx context.Context, ownerUserID string) ([]Pet, error) {
	return s.repo.ListActiveByOwner(ctx, ownerUserID)
}

type UpdateInput struct {
	Name            *string
	Species         *string
	Breed           *string
	DateOfBirth     *time.Time
	Gender          *string
	Weight          *float64
	ClearWeight     bool
	Color           *string
	MicrochipNumber *string
	Photo           *string
	MedicalHistory  *[]MedicalEntryInput
}

func (s *Service) Update(ctx context.Context, ownerUserID, id string, in UpdateInput) (Pet, error) {
	if strings.TrimSpace(id) == "" {
		return Pet{}, ErrNotFound
	}

	now := s.now()
	patch, err := buildPatch(in, now)
	if err != nil {
		// una mascota ajena o inexistente es 404 antes que 400
		if _, gerr := s.repo.GetForOwner(ctx, id, ownerUserID); gerr != nil {
			return Pet{}, gerr
		}
		return Pet{}, err
	}
	return s.repo.Update(ctx, id, ownerUserID, patch, now)
}

// Delete es soft delete e idempotente.
func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	return s.repo.SoftDelete(ctx, id, ownerUserID, s.now())
}

// buildPatch valida cada campo presente con las mismas reglas que Create.
func buildPatch(in UpdateInput, now time.Time) (Patch, error) {
	var (
		p    Patch
		errs []error
	)

	if in.Name != nil {
		v := strings.TrimSpace(*in.Name)
		errs = append(errs, validation.Required("name", v, messages))
		p.Name = &v
	}
	if in.Species != nil {
		v := Species(strings.TrimSpace(*in.Species))
		if err := validation.Required("species", string(v), messages); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, validation.Var("species", string(v), speciesTag, messages))
		}
		p.Species = &v
	}
	if in.Breed != nil {
		v := strings.TrimSpace(*in.Breed)
		p.Breed = &v
	}
	if in.DateOfBirth != nil {
		v := in.DateOfBirth.UTC()
		if v.After(now) {
			errs = append(errs, ErrFutureDateOfBirth)
		}
		p.DateOfBirth = &v
	}
	if in.Gender != nil {
		v := Gender(strings.TrimSpace(*in.Gender))
		if err := validation.Required("gender", string(v), messages); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, validation.Var("gender", string(v), genderTag, messages))
		}
		p.Gender = &v
	}
	if in.ClearWeight {
		p.ClearWeight = true
	} else if in.Weight != nil {
		v := *in.Weight
		errs = append(errs, validation.Var("weight", v, weightTag, messages))
		p.Weight = &v
	}
	if in.Color != nil {
		v := strings.TrimSpace(*in.Color)
		p.Color = &v
	}
	if in.MicrochipNumber != nil {
		v := strings.TrimSpace(*in.MicrochipNumber)
		p.MicrochipNumber = &v
	}
	if in.Photo != nil {
		v := strings.TrimSpace(*in.Photo)
		p.Photo = &v
	}
	if in.MedicalHistory != nil {
		v := toEntries(*in.MedicalHistory)
		p.MedicalHistory = &v
	}

	if err := validation.Join(errs...); err != nil {
		return Patch{}, err
	}
	return p, nil
}

func toEntries(in []MedicalEntryInput) []MedicalEntry {
	out := make([]MedicalEntry, 0, len(in))
	for _, e := range in {
		id := strings.TrimSpace(e.ID)
		if id == "" {
			id = uuid.NewString()
		}
		var diagnosed *time.Time
		if e.DiagnosedDate != nil {
			d := e.DiagnosedDate.UTC()
			diagnosed = &d
		}
		out = append(out, MedicalEntry{
			ID:            id,
			Condition:     strings.TrimSpace(e.Condition),
			DiagnosedDate: diagnosed,
			Notes:         strings.TrimSpace(e.Notes),
		})
	}
	return out
}
