package client

import (
	"encoding/json"
	"strings"
	"time"
)

type User struct {
	ID           string    `json:"_id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	ProfileImage *string   `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Session es la respuesta de register/login.
type Session struct {
	User  User   `json:"user"`
	Token string `json:"token"`
}

type MedicalEntry struct {
	ID            string     `json:"_id,omitempty"`
	Condition     string     `json:"condition,omitempty"`
	DiagnosedDate *time.Time `json:"diagnosedDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type Pet struct {
	ID              string         `json:"_id"`
	Owner           string         `json:"owner"`
	Name            string         `json:"name"`
	Species         string         `json:"species"`
	Breed           string         `json:"breed"`
	DateOfBirth     time.Time      `json:"dateOfBirth"`
	Gender          string         `json:"gender"`
	Weight          *float64       `json:"weight"`
	Color           string         `json:"color"`
	MicrochipNumber string         `json:"microchipNumber"`
	Photo           *string        `json:"photo"`
	MedicalHistory  []MedicalEntry `json:"medicalHistory"`
	IsActive        bool           `json:"isActive"`
	Age             int            `json:"age"`
	CreatedAt       time.Time      `json:"createdAt"`
	UpdatedAt       time.Time      `json:"updatedAt"`
}

type Clinic struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type PetSummary struct {
	ID      string `json:"_id"`
	Name    string `json:"name"`
	Species string `json:"species"`
}

type Vaccination struct {
	ID string `json:"_id"`
	// Pet llega como id, o como {_id,name,species} en Upcoming.
	Pet              json.RawMessage `json:"pet"`
	VaccineName      string          `json:"vaccineName"`
	VaccineType      string          `json:"vaccineType"`
	AdministeredDate time.Time       `json:"administeredDate"`
	NextDueDate      time.Time       `json:"nextDueDate"`
	Veterinarian     string          `json:"veterinarian"`
	Clinic           *Clinic         `json:"clinic"`
	BatchNumber      string          `json:"batchNumber"`
	Manufacturer     string          `json:"manufacturer"`
	SideEffects      string          `json:"sideEffects"`
	Notes            string          `json:"notes"`
	Certificate      *string         `json:"certificate"`
	Status           string          `json:"status"`
	ReminderSent     bool            `json:"reminderSent"`
	CreatedAt        time.Time       `json:"createdAt"`
	UpdatedAt        time.Time       `json:"updatedAt"`
}

// PetID devuelve el id de la mascota en cualquiera de las dos formas.
func (v Vaccination) PetID() string {
	if s, ok := v.PetSummary(); ok {
		return s.ID
	}
	var id string
	if err := json.Unmarshal(v.Pet, &id); err != nil {
		return ""
	}
	return id
}

// PetSummary devuelve la mascota embebida (solo en Upcoming).
func (v Vaccination) PetSummary() (PetSummary, bool) {
	raw := strings.TrimSpace(string(v.Pet))
	if !strings.HasPrefix(raw, "{") {
		return PetSummary{}, false
	}
	var s PetSummary
	if err := json.Unmarshal(v.Pet, &s); err != nil {
		return PetSummary{}, false
	}
	return s, true
}

type Health struct {
	Status    string `json:"status"`
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// envelope es el sobre {status,message,results,data} de todas las respuestas.
type envelope[T any] struct {
	Status  string `json:"status"`
	Message string `json:"message"`
	Results *int   `json:"results"`
	Data    T      `json:"data"`
}
