package vaccinations

import (
	"time"

	"petvax-hub/internal/domain/pets"
)

// VaccineType clasifica la vacuna.
// @Enum core, non-core, required, optional
type VaccineType string

const (
	VaccineTypeCore     VaccineType = "core"
	VaccineTypeNonCore  VaccineType = "non-core"
	VaccineTypeRequired VaccineType = "required"
	VaccineTypeOptional VaccineType = "optional"
)

// Status del registro de vacunación.
// @Enum completed, scheduled, overdue, upcoming
type Status string

const (
	StatusCompleted Status = "completed"
	StatusScheduled Status = "scheduled"
	StatusOverdue   Status = "overdue"
	StatusUpcoming  Status = "upcoming"
)

// DueStatuses son los estados que cuentan como "pendiente" para el listado de próximas.
var DueStatuses = []Status{StatusScheduled, StatusUpcoming}

type Clinic struct {
	Name    string
	Address string
	Phone   string
}

// IsZero indica que no se cargó ningún dato de la clínica.
func (c Clinic) IsZero() bool {
	return c == Clinic{}
}

// Vaccination es un registro de vacunación de una mascota.
// OwnerUserID se copia de la mascota al crear (el dueño de una mascota no
// cambia), así update/delete pueden filtrar por id AND owner en un solo paso.
type Vaccination struct {
	ID          string
	PetID       string
	OwnerUserID string

	VaccineName      string
	VaccineType      VaccineType
	AdministeredDate time.Time
	NextDueDate      time.Time
	Veterinarian     string
	Clinic           Clinic

	BatchNumber  string
	Manufacturer string
	SideEffects  string
	Notes        string
	Certificate  string

	Status       Status
	ReminderSent bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// PetSummary es la parte de la mascota que se adjunta a las próximas vacunas.
type PetSummary struct {
	ID      string
	Name    string
	Species pets.Species
}

type Upcoming struct {
	Vaccination
	Pet PetSummary
}

// Patch es un update parcial ya validado. nil = no tocar. La mascota no se cambia.
type Patch struct {
	VaccineName      *string
	VaccineType      *VaccineType
	AdministeredDate *time.Time
	NextDueDate      *time.Time
	Veterinarian     *string
	Clinic           *Clinic
	BatchNumber      *string
	Manufacturer     *string
	SideEffects      *string
	Notes            *string
	Certificate      *string
	Status           *Status
	ReminderSent     *bool
}

func (pt Patch) Apply(v Vaccination, at time.Time) Vaccination {
	setString(&v.VaccineName, pt.VaccineName)
	if pt.VaccineType != nil {
		v.VaccineType = *pt.VaccineType
	}
	if pt.AdministeredDate != nil {
		v.AdministeredDate = *pt.AdministeredDate
	}
	if pt.NextDueDate != nil {
		v.NextDueDate = *pt.NextDueDate
	}
	setString(&v.Veterinarian, pt.Veterinarian)
	if pt.Clinic != nil {
		v.Clinic = *pt.Clinic
	}
	setString(&v.BatchNumber, pt.BatchNumber)
	setString(&v.Manufacturer, pt.Manufacturer)
	setString(&v.SideEffects, pt.SideEffects)
	setString(&v.Notes, pt.Notes)
	setString(&v.Certificate, pt.Certificate)
	if pt.Status != nil {
		v.Status = *pt.Status
	}
	if pt.ReminderSent != nil {
		v.ReminderSent = *pt.ReminderSent
	}
	v.UpdatedAt = at
	return v
}

func setString(dst *string, v *string) {
	if v != nil {
		*dst = *v
	}
}

// DueWindow devuelve [now, now + 1 mes calendario]. AddDate normaliza
// desbordes (31-ene + 1 mes = 2/3-mar).
func DueWindow(now time.Time) (from, to time.Time) {
	return now, now.AddDate(0, 1, 0)
}
