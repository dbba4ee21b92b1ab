package pets

import "time"

// Species define las especies soportadas.
// @Enum dog, cat, bird, other
type Species string

const (
	SpeciesDog   Species = "dog"
	SpeciesCat   Species = "cat"
	SpeciesBird  Species = "bird"
	SpeciesOther Species = "other"
)

// Gender define el sexo de la mascota.
// @Enum male, female
type Gender string

const (
	GenderMale   Gender = "male"
	GenderFemale Gender = "female"
)

// MedicalEntry es una entrada del historial médico, en el orden en que se cargó.
type MedicalEntry struct {
	ID            string
	Condition     string
	DiagnosedDate *time.Time
	Notes         string
}

// Pet representa el perfil de una mascota. Nunca se borra: el delete la
// marca IsActive=false.
type Pet struct {
	ID          string
	OwnerUserID string

	Name        string
	Species     Species
	Breed       string
	DateOfBirth time.Time
	Gender      Gender
	Weight      *float64
	Color       string

	// Vacío = sin microchip. Si viene, es único en todo el sistema.
	MicrochipNumber string
	Photo           string

	MedicalHistory []MedicalEntry

	IsActive bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// AgeAt devuelve la edad en años cumplidos al instante now (UTC).
func (p Pet) AgeAt(now time.Time) int {
	return AgeAt(p.DateOfBirth, now)
}

// AgeAt: diferencia de años calendario, menos uno si todavía no llegó el
// cumpleaños. Fechas futuras dan 0.
func AgeAt(dob, now time.Time) int {
	dob = dob.UTC()
	now = now.UTC()
	if now.Before(dob) {
		return 0
	}

	years := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}

// Patch es un update parcial ya validado. nil = no tocar.
// Owner e IsActive no se pueden cambiar por acá.
type Patch struct {
	Name        *string
	Species     *Species
	Breed       *string
	DateOfBirth *time.Time
	Gender      *Gender

	Weight      *float64
	ClearWeight bool

	Color *string

	// "" quita el microchip / la foto.
	MicrochipNumber *string
	Photo           *string

	MedicalHistory *[]MedicalEntry
}

// Apply aplica el patch sobre p (lo usan los stores que no hacen el update en el motor).
func (pt Patch) Apply(p Pet, at time.Time) Pet {
	if pt.Name != nil {
		p.Name = *pt.Name
	}
	if pt.Species != nil {
		p.Species = *pt.Species
	}
	if pt.Breed != nil {
		p.Breed = *pt.Breed
	}
	if pt.DateOfBirth != nil {
		p.DateOfBirth = *pt.DateOfBirth
	}
	if pt.Gender != nil {
		p.Gender = *pt.Gender
	}
	if pt.ClearWeight {
		p.Weight = nil
	} else if pt.Weight != nil {
		w := *pt.Weight
		p.Weight = &w
	}
	if pt.Color != nil {
		p.Color = *pt.Color
	}
	if pt.MicrochipNumber != nil {
		p.MicrochipNumber = *pt.MicrochipNumber
	}
	if pt.Photo != nil {
		p.Photo = *pt.Photo
	}
	if pt.MedicalHistory != nil {
		p.MedicalHistory = append([]MedicalEntry(nil), (*pt.MedicalHistory)...)
	}
	p.UpdatedAt = at
	return p
}
