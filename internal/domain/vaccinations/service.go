package vaccinations

import (
	"context"
	"strings"
	"time"

	"petvax-hub/internal/domain/pets"
	"petvax-hub/internal/platform/apperror"
	"petvax-hub/internal/platform/validation"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var (
	ErrNotFound        = apperror.NotFound("Vaccination record not found")
	ErrForbiddenUpdate = apperror.Forbidden("Not authorized to update this vaccination record")
	ErrForbiddenDelete = apperror.Forbidden("Not authorized to delete this vaccination record")
)

var messages = validation.Messages{
	"pet.required":              "Please specify the pet",
	"vaccineName.required":      "Please provide vaccine name",
	"administeredDate.required": "Please provide administration date",
}

const (
	vaccineTypeTag = "oneof=core non-core required optional"
	statusTag      = "oneof=completed scheduled overdue upcoming"
)

// PetDirectory es lo que este módulo necesita de pets (lo cumple *pets.Service).
type PetDirectory interface {
	Get(ctx context.Context, ownerUserID, petID string) (pets.Pet, error)
	List(ctx context.Context, ownerUserID string) ([]pets.Pet, error)
}

type Service struct {
	repo Repository
	pets PetDirectory
	now  func() time.Time
}

func NewService(repo Repository, petDir PetDirectory) *Service {
	return &Service{
		repo: repo,
		pets: petDir,
		now:  time.Now,
	}
}

// ListByPet exige que el caller sea dueño de la mascota (404 si no, aunque exista).
func (s *Service) ListByPet(ctx context.Context, ownerUserID, petID string) ([]Vaccination, error) {
	if _, err := s.pets.Get(ctx, ownerUserID, petID); err != nil {
		return nil, err
	}
	return s.repo.ListByPet(ctx, petID)
}

// Upcoming: vacunas scheduled/upcoming de las mascotas activas del caller con
// vencimiento dentro de DueWindow(now), cada una con nombre y especie de su mascota.
func (s *Service) Upcoming(ctx context.Context, ownerUserID string) ([]Upcoming, error) {
	owned, err := s.pets.List(ctx, ownerUserID)
	if err != nil {
		return nil, err
	}
	if len(owned) == 0 {
		return []Upcoming{}, nil
	}

	byID := make(map[string]pets.Pet, len(owned))
	ids := make([]string, 0, len(owned))
	for _, p := range owned {
		byID[p.ID] = p
		ids = append(ids, p.ID)
	}

	from, to := DueWindow(s.now())
	due, err := s.repo.ListDue(ctx, ids, from, to, DueStatuses)
	if err != nil {
		return nil, err
	}

	out := make([]Upcoming, 0, len(due))
	for _, v := range due {
		p, ok := byID[v.PetID]
		if !ok {
			continue
		}
		out = append(out, Upcoming{
			Vaccination: v,
			Pet:         PetSummary{ID: p.ID, Name: p.Name, Species: p.Species},
		})
	}
	return out, nil
}

type CreateInput struct {
	PetID            string      `json:"pet" validate:"required"`
	VaccineName      string      `json:"vaccineName" validate:"required"`
	VaccineType      VaccineType `json:"vaccineType" validate:"required,oneof=core non-core required optional"`
	AdministeredDate *time.Time  `json:"administeredDate" validate:"required"`
	NextDueDate      *time.Time  `json:"nextDueDate" validate:"required"`
	Veterinarian     string      `json:"veterinarian" validate:"required"`
	Clinic           Clinic      `json:"clinic"`
	BatchNumber      string      `json:"batchNumber"`
	Manufacturer     string      `json:"manufacturer"`
	SideEffects      string      `json:"sideEffects"`
	Notes            string      `json:"notes"`
	Certificate      string      `json:"certificate"`
	Status           Status      `json:"status" validate:"omitempty,oneof=completed scheduled overdue upcoming"`
	ReminderSent     bool        `json:"reminderSent"`
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Vaccination, error) {
	in.PetID = strings.TrimSpace(in.PetID)
	if err := validation.Required("pet", in.PetID, messages); err != nil {
		return Vaccination{}, err
	}

	pet, err := s.pets.Get(ctx, ownerUserID, in.PetID)
	if err != nil {
		return Vaccination{}, err
	}

	in.VaccineName = strings.TrimSpace(in.VaccineName)
	in.VaccineType = VaccineType(strings.TrimSpace(string(in.VaccineType)))
	in.Veterinarian = strings.TrimSpace(in.Veterinarian)
	in.Status = Status(strings.TrimSpace(string(in.Status)))
	if err := validation.Struct(in, messages); err != nil {
		return Vaccination{}, err
	}

	status := in.Status
	if status == "" {
		status = StatusCompleted
	}

	now := s.now()
	v := Vaccination{
		ID:               uuid.NewString(),
		PetID:            pet.ID,
		OwnerUserID:      pet.OwnerUserID,
		VaccineName:      in.VaccineName,
		VaccineType:      in.VaccineType,
		AdministeredDate: in.AdministeredDate.UTC(),
		NextDueDate:      in.NextDueDate.UTC(),
		Veterinarian:     in.Veterinarian,
		Clinic:           trimClinic(in.Clinic),
		BatchNumber:      strings.TrimSpace(in.BatchNumber),
		Manufacturer:     strings.TrimSpace(in.Manufacturer),
		SideEffects:      strings.TrimSpace(in.SideEffects),
		Notes:            strings.TrimSpace(in.Notes),
		Certificate:      strings.TrimSpace(in.Certificate),
		Status:           status,
		ReminderSent:     in.ReminderSent,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		return Vaccination{}, err
	}
	return v, nil
}

type UpdateInput struct {
	VaccineName      *string
	VaccineType      *string
	AdministeredDate *time.Time
	NextDueDate      *time.Time
	Veterinarian     *string
	Clinic           *Clinic
	BatchNumber      *string
	Manufacturer     *string
	SideEffects      *string
	Notes            *string
	Certificate      *string
	Status           *string
	ReminderSent     *bool
}

func (s *Service) Update(ctx context.Context, ownerUserID, id string, in UpdateInput) (Vaccination, error) {
	patch, err := buildPatch(in)
	if err != nil {
		// el 403/404 tiene prioridad sobre el 400
		if ownErr := s.checkOwner(ctx, id, ownerUserID, ErrForbiddenUpdate); ownErr != nil {
			return Vaccination{}, ownErr
		}
		return Vaccination{}, err
	}

	v, err := s.repo.UpdateForOwner(ctx, id, ownerUserID, patch, s.now())
	if errors.Is(err, ErrNotFound) {
		return Vaccination{}, s.classifyMiss(ctx, id, ErrForbiddenUpdate)
	}
	return v, err
}

// Delete es hard delete.
func (s *Service) Delete(ctx context.Context, ownerUserID, id string) error {
	err := s.repo.DeleteForOwner(ctx, id, ownerUserID)
	if errors.Is(err, ErrNotFound) {
		return s.classifyMiss(ctx, id, ErrForbiddenDelete)
	}
	return err
}

// CanUpdate responde 404/403 igual que Update, sin tocar el registro.
func (s *Service) CanUpdate(ctx context.Context, ownerUserID, id string) error {
	return s.checkOwner(ctx, id, ownerUserID, ErrForbiddenUpdate)
}

// checkOwner devuelve nil solo si el registro existe y es de ownerUserID.
func (s *Service) checkOwner(ctx context.Context, id, ownerUserID string, forbidden error) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	v, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if v.OwnerUserID != ownerUserID {
		return forbidden
	}
	return nil
}

// classifyMiss decide, cuando el update/delete condicional no encontró nada,
// si el registro no existe (404) o es de otro dueño (403).
func (s *Service) classifyMiss(ctx context.Context, id string, forbidden error) error {
	if strings.TrimSpace(id) == "" {
		return ErrNotFound
	}
	_, err := s.repo.GetByID(ctx, id)
	switch {
	case err == nil:
		return forbidden
	case errors.Is(err, ErrNotFound):
		return ErrNotFound
	default:
		return err
	}
}

func buildPatch(in UpdateInput) (Patch, error) {
	var (
		p    Patch
		errs []error
	)

	if in.VaccineName != nil {
		v := strings.TrimSpace(*in.VaccineName)
		errs = append(errs, validation.Required("vaccineName", v, messages))
		p.VaccineName = &v
	}
	if in.VaccineType != nil {
		v := VaccineType(strings.TrimSpace(*in.VaccineType))
		if err := validation.Required("vaccineType", string(v), messages); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, validation.Var("vaccineType", string(v), vaccineTypeTag, messages))
		}
		p.VaccineType = &v
	}
	if in.AdministeredDate != nil {
		v := in.AdministeredDate.UTC()
		p.AdministeredDate = &v
	}
	if in.NextDueDate != nil {
		v := in.NextDueDate.UTC()
		p.NextDueDate = &v
	}
	if in.Veterinarian != nil {
		v := strings.TrimSpace(*in.Veterinarian)
		errs = append(errs, validation.Required("veterinarian", v, messages))
		p.Veterinarian = &v
	}
	if in.Clinic != nil {
		v := trimClinic(*in.Clinic)
		p.Clinic = &v
	}
	p.BatchNumber = trimmed(in.BatchNumber)
	p.Manufacturer = trimmed(in.Manufacturer)
	p.SideEffects = trimmed(in.SideEffects)
	p.Notes = trimmed(in.Notes)
	p.Certificate = trimmed(in.Certificate)
	if in.Status != nil {
		v := Status(strings.TrimSpace(*in.Status))
		if err := validation.Required("status", string(v), messages); err != nil {
			errs = append(errs, err)
		} else {
			errs = append(errs, validation.Var("status", string(v), statusTag, messages))
		}
		p.Status = &v
	}
	if in.ReminderSent != nil {
		v := *in.ReminderSent
		p.ReminderSent = &v
	}

	if err := validation.Join(errs...); err != nil {
		return Patch{}, err
	}
	return p, nil
}

func trimmed(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func trimClinic(c Clinic) Clinic {
	return Clinic{
		Name:    strings.TrimSpace(c.Name),
		Address: strings.TrimSpace(c.Address),
		Phone:   strings.TrimSpace(c.Phone),
	}
}
