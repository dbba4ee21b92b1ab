package vaccinations

import (
	"encoding/json"
	"net/http"
	"time"

	"petvax-hub/internal/domain/pets"
	"petvax-hub/internal/middleware"
	"petvax-hub/internal/platform/bind"
	"petvax-hub/internal/platform/logger"
	"petvax-hub/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/vaccinations", func(vr chi.Router) {
		vr.Use(middleware.RequireAuth)

		// /upcoming y /pet/{petId} antes que /{id}
		vr.Get("/upcoming", upcomingHandler(svc, log))
		vr.Get("/pet/{petId}", listByPetHandler(svc, log))

		vr.Post("/", createVaccinationHandler(svc, log))
		vr.Put("/{id}", updateVaccinationHandler(svc, log))
		vr.Delete("/{id}", deleteVaccinationHandler(svc, log))
	})
}

type clinicPayload struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

type createVaccinationRequest struct {
	Pet              string         `json:"pet"`
	VaccineName      string         `json:"vaccineName"`
	VaccineType      string         `json:"vaccineType"`
	AdministeredDate string         `json:"administeredDate"` // YYYY-MM-DD o RFC3339
	NextDueDate      string         `json:"nextDueDate"`      // YYYY-MM-DD o RFC3339
	Veterinarian     string         `json:"veterinarian"`
	Clinic           *clinicPayload `json:"clinic"`
	BatchNumber      string         `json:"batchNumber"`
	Manufacturer     string         `json:"manufacturer"`
	SideEffects      string         `json:"sideEffects"`
	Notes            string         `json:"notes"`
	Certificate      string         `json:"certificate"`
	Status           string         `json:"status"`
	ReminderSent     bool           `json:"reminderSent"`
}

// pet no se puede cambiar: si viene en el body se ignora.
type updateVaccinationRequest struct {
	VaccineName      *string        `json:"vaccineName"`
	VaccineType      *string        `json:"vaccineType"`
	AdministeredDate *string        `json:"administeredDate"`
	NextDueDate      *string        `json:"nextDueDate"`
	Veterinarian     *string        `json:"veterinarian"`
	Clinic           *clinicPayload `json:"clinic"`
	BatchNumber      *string        `json:"batchNumber"`
	Manufacturer     *string        `json:"manufacturer"`
	SideEffects      *string        `json:"sideEffects"`
	Notes            *string        `json:"notes"`
	Certificate      *string        `json:"certificate"`
	Status           *string        `json:"status"`
	ReminderSent     *bool          `json:"reminderSent"`
}

type petSummaryResponse struct {
	ID      string       `json:"_id"`
	Name    string       `json:"name"`
	Species pets.Species `json:"species"`
}

type vaccinationResponse struct {
	ID string `json:"_id"`
	// Pet es el id de la mascota, o {_id,name,species} en /upcoming.
	Pet              any            `json:"pet" swaggertype:"string"`
	VaccineName      string         `json:"vaccineName"`
	VaccineType      VaccineType    `json:"vaccineType"`
	AdministeredDate time.Time      `json:"administeredDate"`
	NextDueDate      time.Time      `json:"nextDueDate"`
	Veterinarian     string         `json:"veterinarian"`
	Clinic           *clinicPayload `json:"clinic,omitempty"`
	BatchNumber      string         `json:"batchNumber,omitempty"`
	Manufacturer     string         `json:"manufacturer,omitempty"`
	SideEffects      string         `json:"sideEffects,omitempty"`
	Notes            string         `json:"notes,omitempty"`
	Certificate      *string        `json:"certificate"`
	Status           Status         `json:"status"`
	ReminderSent     bool           `json:"reminderSent"`
	CreatedAt        time.Time      `json:"createdAt"`
	UpdatedAt        time.Time      `json:"updatedAt"`
}

// upcomingHandler godoc
// @Summary Próximas vacunas
// @Description Vacunas con estado scheduled o upcoming de las mascotas activas del usuario cuyo nextDueDate cae entre hoy y dentro de un mes (inclusive), ordenadas por nextDueDate. Cada una trae la mascota como {_id, name, species}.
// @Tags vaccinations
// @Produce json
// @Security BearerAuth
// @Success 200 {object} respond.Envelope{data=object{vaccinations=[]vaccinationResponse}}
// @Failure 401 {object} respond.Envelope
// @Router /vaccinations/upcoming [get]
func upcomingHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.Upcoming(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		out := make([]vaccinationResponse, 0, len(items))
		for _, u := range items {
			resp := toVaccinationResponse(u.Vaccination)
			resp.Pet = petSummaryResponse{ID: u.Pet.ID, Name: u.Pet.Name, Species: u.Pet.Species}
			out = append(out, resp)
		}
		respond.List(w, len(out), map[string]any{"vaccinations": out})
	}
}

// listByPetHandler godoc
// @Summary Vacunas de una mascota
// @Description Lista las vacunas de una mascota del usuario, más recientes primero (administeredDate). Si la mascota es de otro usuario responde 404.
// @Tags vaccinations
// @Produce json
// @Security BearerAuth
// @Param petId path string true "ID de la mascota"
// @Success 200 {object} respond.Envelope{data=object{vaccinations=[]vaccinationResponse}}
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope "Pet not found"
// @Router /vaccinations/pet/{petId} [get]
func listByPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.ListByPet(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "petId"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		out := make([]vaccinationResponse, 0, len(items))
		for _, v := range items {
			out = append(out, toVaccinationResponse(v))
		}
		respond.List(w, len(out), map[string]any{"vaccinations": out})
	}
}

// createVaccinationHandler godoc
// @Summary Registrar vacuna
// @Description Crea un registro de vacunación para una mascota del usuario. status por defecto completed, reminderSent por defecto false.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body createVaccinationRequest true "Datos de la vacuna; fechas YYYY-MM-DD o RFC3339"
// @Success 201 {object} respond.Envelope{data=object{vaccination=vaccinationResponse}}
// @Failure 400 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope "Pet not found"
// @Router /vaccinations [post]
func createVaccinationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createVaccinationRequest
		if err := bind.JSON(w, r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		administered, err := bind.Date("administeredDate", req.AdministeredDate)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		nextDue, err := bind.Date("nextDueDate", req.NextDueDate)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		in := CreateInput{
			PetID:            req.Pet,
			VaccineName:      req.VaccineName,
			VaccineType:      VaccineType(req.VaccineType),
			AdministeredDate: administered,
			NextDueDate:      nextDue,
			Veterinarian:     req.Veterinarian,
			BatchNumber:      req.BatchNumber,
			Manufacturer:     req.Manufacturer,
			SideEffects:      req.SideEffects,
			Notes:            req.Notes,
			Certificate:      req.Certificate,
			Status:           Status(req.Status),
			ReminderSent:     req.ReminderSent,
		}
		if req.Clinic != nil {
			in.Clinic = toClinic(*req.Clinic)
		}

		v, err := svc.Create(r.Context(), middleware.UserID(r.Context()), in)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.Success(w, http.StatusCreated, "Vaccination record created successfully",
			map[string]any{"vaccination": toVaccinationResponse(v)})
	}
}

// updateVaccinationHandler godoc
// @Summary Actualizar vacuna
// @Description Update parcial de un registro de vacunación. La mascota no se puede cambiar. 404 si el registro no existe, 403 si existe pero es de otro usuario.
// @Tags vaccinations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del registro"
// @Param payload body updateVaccinationRequest true "Campos a modificar"
// @Success 200 {object} respond.Envelope{data=object{vaccination=vaccinationResponse}}
// @Failure 400 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 403 {object} respond.Envelope "Not authorized to update this vaccination record"
// @Failure 404 {object} respond.Envelope "Vaccination record not found"
// @Router /vaccinations/{id} [put]
func updateVaccinationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var raw map[string]json.RawMessage
		if err := bind.JSON(w, r, &raw); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		var req updateVaccinationRequest
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &req); err != nil {
			respond.Error(w, r, log, bind.ErrInvalidJSON)
			return
		}

		id := chi.URLParam(r, "id")
		userID := middleware.UserID(r.Context())

		administered, err := bind.OptionalDate("administeredDate", req.AdministeredDate)
		if err != nil {
			respond.Error(w, r, log, ownershipFirst(svc.CanUpdate(r.Context(), userID, id), err))
			return
		}
		nextDue, err := bind.OptionalDate("nextDueDate", req.NextDueDate)
		if err != nil {
			respond.Error(w, r, log, ownershipFirst(svc.CanUpdate(r.Context(), userID, id), err))
			return
		}

		in := UpdateInput{
			VaccineName:      req.VaccineName,
			VaccineType:      req.VaccineType,
			AdministeredDate: administered,
			NextDueDate:      nextDue,
			Veterinarian:     req.Veterinarian,
			BatchNumber:      req.BatchNumber,
			Manufacturer:     req.Manufacturer,
			SideEffects:      req.SideEffects,
			Notes:            req.Notes,
			Certificate:      req.Certificate,
			Status:           req.Status,
			ReminderSent:     req.ReminderSent,
		}
		if req.Clinic != nil {
			c := toClinic(*req.Clinic)
			in.Clinic = &c
		} else if v, ok := raw["clinic"]; ok && string(v) == "null" {
			in.Clinic = &Clinic{}
		}
		if v, ok := raw["certificate"]; ok && string(v) == "null" {
			in.Certificate = new(string)
		}

		v, err := svc.Update(r.Context(), userID, id, in)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.Success(w, http.StatusOK, "Vaccination record updated successfully",
			map[string]any{"vaccination": toVaccinationResponse(v)})
	}
}

// deleteVaccinationHandler godoc
// @Summary Borrar vacuna
// @Description Borra definitivamente un registro de vacunación. 404 si no existe, 403 si es de otro usuario.
// @Tags vaccinations
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID del registro"
// @Success 200 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 403 {object} respond.Envelope "Not authorized to delete this vaccination record"
// @Failure 404 {object} respond.Envelope "Vaccination record not found"
// @Router /vaccinations/{id} [delete]
func deleteVaccinationHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.Success(w, http.StatusOK, "Vaccination record deleted successfully", nil)
	}
}

func toClinic(c clinicPayload) Clinic {
	return Clinic{Name: c.Name, Address: c.Address, Phone: c.Phone}
}

func toVaccinationResponse(v Vaccination) vaccinationResponse {
	var clinic *clinicPayload
	if !v.Clinic.IsZero() {
		clinic = &clinicPayload{Name: v.Clinic.Name, Address: v.Clinic.Address, Phone: v.Clinic.Phone}
	}
	var certificate *string
	if v.Certificate != "" {
		c := v.Certificate
		certificate = &c
	}

	return vaccinationResponse{
		ID:               v.ID,
		Pet:              v.PetID,
		VaccineName:      v.VaccineName,
		VaccineType:      v.VaccineType,
		AdministeredDate: v.AdministeredDate,
		NextDueDate:      v.NextDueDate,
		Veterinarian:     v.Veterinarian,
		Clinic:           clinic,
		BatchNumber:      v.BatchNumber,
		Manufacturer:     v.Manufacturer,
		SideEffects:      v.SideEffects,
		Notes:            v.Notes,
		Certificate:      certificate,
		Status:           v.Status,
		ReminderSent:     v.ReminderSent,
		CreatedAt:        v.CreatedAt,
		UpdatedAt:        v.UpdatedAt,
	}
}

// ownershipFirst prioriza el 403/404 sobre un error de formato del body.
func ownershipFirst(ownErr, err error) error {
	if ownErr != nil {
		return ownErr
	}
	return err
}
