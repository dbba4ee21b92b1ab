package pets

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"petvax-hub/internal/middleware"
	"petvax-hub/internal/platform/bind"
	"petvax-hub/internal/platform/logger"
	"petvax-hub/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Route("/pets", func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Get("/", listPetsHandler(svc, log))
		pr.Post("/", createPetHandler(svc, log))
		pr.Get("/{id}", getPetHandler(svc, log))
		pr.Put("/{id}", updatePetHandler(svc, log))
		pr.Delete("/{id}", deletePetHandler(svc, log))
	})
}

type medicalEntryRequest struct {
	ID            string `json:"_id"`
	Condition     string `json:"condition"`
	DiagnosedDate string `json:"diagnosedDate"` // YYYY-MM-DD o RFC3339
	Notes         string `json:"notes"`
}

// owner e isActive no se leen: el owner siempre es el caller.
type createPetRequest struct {
	Name            string                `json:"name"`
	Species         string                `json:"species"`
	Breed           string                `json:"breed"`
	DateOfBirth     string                `json:"dateOfBirth"` // YYYY-MM-DD o RFC3339
	Gender          string                `json:"gender"`
	Weight          *float64              `json:"weight"`
	Color           string                `json:"color"`
	MicrochipNumber string                `json:"microchipNumber"`
	Photo           string                `json:"photo"`
	MedicalHistory  []medicalEntryRequest `json:"medicalHistory"`
}

// Punteros para update parcial: nil = no tocar.
type updatePetRequest struct {
	Name            *string                `json:"name"`
	Species         *string                `json:"species"`
	Breed           *string                `json:"breed"`
	DateOfBirth     *string                `json:"dateOfBirth"`
	Gender          *string                `json:"gender"`
	Weight          *float64               `json:"weight"`
	Color           *string                `json:"color"`
	MicrochipNumber *string                `json:"microchipNumber"`
	Photo           *string                `json:"photo"`
	MedicalHistory  *[]medicalEntryRequest `json:"medicalHistory"`
}

type medicalEntryResponse struct {
	ID            string     `json:"_id"`
	Condition     string     `json:"condition,omitempty"`
	DiagnosedDate *time.Time `json:"diagnosedDate,omitempty"`
	Notes         string     `json:"notes,omitempty"`
}

type petResponse struct {
	ID              string                 `json:"_id"`
	Owner           string                 `json:"owner"`
	Name            string                 `json:"name"`
	Species         Species                `json:"species"`
	Breed           string                 `json:"breed,omitempty"`
	DateOfBirth     time.Time              `json:"dateOfBirth"`
	Gender          Gender                 `json:"gender"`
	Weight          *float64               `json:"weight,omitempty"`
	Color           string                 `json:"color,omitempty"`
	MicrochipNumber string                 `json:"microchipNumber,omitempty"`
	Photo           *string                `json:"photo"`
	MedicalHistory  []medicalEntryResponse `json:"medicalHistory"`
	IsActive        bool                   `json:"isActive"`
	Age             int                    `json:"age"`
	CreatedAt       time.Time              `json:"createdAt"`
	UpdatedAt       time.Time              `json:"updatedAt"`
}

// listPetsHandler godoc
// @Summary Listar mascotas
// @Description Lista las mascotas activas del usuario autenticado, más nuevas primero. Las mascotas dadas de baja no aparecen.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Success 200 {object} respond.Envelope{data=object{pets=[]petResponse}}
// @Failure 401 {object} respond.Envelope
// @Failure 500 {object} respond.Envelope
// @Router /pets [get]
func listPetsHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		items, err := svc.List(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		out := make([]petResponse, 0, len(items))
		for _, p := range items {
			out = append(out, toPetResponse(p, svc.Age(p)))
		}
		respond.List(w, len(out), map[string]any{"pets": out})
	}
}

// getPetHandler godoc
// @Summary Ver una mascota
// @Description Devuelve una mascota del usuario, aunque esté dada de baja. Si la mascota no existe o es de otro usuario responde 404 igual.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la mascota"
// @Success 200 {object} respond.Envelope{data=object{pet=petResponse}}
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope "Pet not found"
// @Router /pets/{id} [get]
func getPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		p, err := svc.Get(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id"))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.Success(w, http.StatusOK, "", map[string]any{"pet": toPetResponse(p, svc.Age(p))})
	}
}

// createPetHandler godoc
// @Summary Crear mascota
// @Description Crea una mascota para el usuario autenticado. El owner del body se ignora. dateOfBirth no puede ser futura y microchipNumber es único.
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body createPetRequest true "Datos de la mascota; fechas YYYY-MM-DD o RFC3339"
// @Success 201 {object} respond.Envelope{data=object{pet=petResponse}}
// @Failure 400 {object} respond.Envelope "validación / microchip duplicado"
// @Failure 401 {object} respond.Envelope
// @Router /pets [post]
func createPetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req createPetRequest
		if err := bind.JSON(w, r, &req); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		dob, err := bind.Date("dateOfBirth", req.DateOfBirth)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		history, err := toMedicalInputs(req.MedicalHistory)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		p, err := svc.Create(r.Context(), middleware.UserID(r.Context()), CreateInput{
			Name:            req.Name,
			Species:         Species(req.Species),
			Breed:           req.Breed,
			DateOfBirth:     dob,
			Gender:          Gender(req.Gender),
			Weight:          req.Weight,
			Color:           req.Color,
			MicrochipNumber: req.MicrochipNumber,
			Photo:           req.Photo,
			MedicalHistory:  history,
		})
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.Success(w, http.StatusCreated, "Pet added successfully", map[string]any{"pet": toPetResponse(p, svc.Age(p))})
	}
}

// updatePetHandler godoc
// @Summary Actualizar mascota
// @Description Update parcial: solo se tocan los campos enviados y se validan con las mismas reglas que al crear. owner e isActive no se pueden cambiar. "weight", "photo" o "microchipNumber" en null los limpian.
// @Tags pets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la mascota"
// @Param payload body updatePetRequest true "Campos a modificar"
// @Success 200 {object} respond.Envelope{data=object{pet=petResponse}}
// @Failure 400 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope "Pet not found"
// @Router /pets/{id} [put]
func updatePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Primero a map para detectar campos enviados en null.
		var raw map[string]json.RawMessage
		if err := bind.JSON(w, r, &raw); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		var req updatePetRequest
		b, _ := json.Marshal(raw)
		if err := json.Unmarshal(b, &req); err != nil {
			respond.Error(w, r, log, bind.ErrInvalidJSON)
			return
		}

		in := UpdateInput{
			Name:            req.Name,
			Species:         req.Species,
			Breed:           req.Breed,
			Gender:          req.Gender,
			Weight:          req.Weight,
			ClearWeight:     isNull(raw, "weight"),
			Color:           req.Color,
			MicrochipNumber: req.MicrochipNumber,
			Photo:           req.Photo,
		}
		if isNull(raw, "microchipNumber") {
			in.MicrochipNumber = new(string)
		}
		if isNull(raw, "photo") {
			in.Photo = new(string)
		}

		id := chi.URLParam(r, "id")
		userID := middleware.UserID(r.Context())

		dob, err := bind.OptionalDate("dateOfBirth", req.DateOfBirth)
		if err != nil {
			respond.Error(w, r, log, ownershipFirst(r.Context(), svc, userID, id, err))
			return
		}
		in.DateOfBirth = dob

		if req.MedicalHistory != nil {
			history, err := toMedicalInputs(*req.MedicalHistory)
			if err != nil {
				respond.Error(w, r, log, ownershipFirst(r.Context(), svc, userID, id, err))
				return
			}
			in.MedicalHistory = &history
		}

		p, err := svc.Update(r.Context(), userID, id, in)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.Success(w, http.StatusOK, "Pet updated successfully", map[string]any{"pet": toPetResponse(p, svc.Age(p))})
	}
}

// deletePetHandler godoc
// @Summary Dar de baja una mascota
// @Description Soft delete: marca isActive=false. El registro y sus vacunas se conservan. Repetir la baja responde 200.
// @Tags pets
// @Produce json
// @Security BearerAuth
// @Param id path string true "ID de la mascota"
// @Success 200 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope "Pet not found"
// @Router /pets/{id} [delete]
func deletePetHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Delete(r.Context(), middleware.UserID(r.Context()), chi.URLParam(r, "id")); err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.Success(w, http.StatusOK, "Pet deleted successfully", nil)
	}
}

func toMedicalInputs(in []medicalEntryRequest) ([]MedicalEntryInput, error) {
	out := make([]MedicalEntryInput, 0, len(in))
	for _, e := range in {
		d, err := bind.Date("medicalHistory.diagnosedDate", e.DiagnosedDate)
		if err != nil {
			return nil, err
		}
		out = append(out, MedicalEntryInput{
			ID:            e.ID,
			Condition:     e.Condition,
			DiagnosedDate: d,
			Notes:         e.Notes,
		})
	}
	return out, nil
}

func isNull(raw map[string]json.RawMessage, key string) bool {
	v, ok := raw[key]
	return ok && string(v) == "null"
}

func toPetResponse(p Pet, age int) petResponse {
	history := make([]medicalEntryResponse, 0, len(p.MedicalHistory))
	for _, e := range p.MedicalHistory {
		history = append(history, medicalEntryResponse{
			ID:            e.ID,
			Condition:     e.Condition,
			DiagnosedDate: e.DiagnosedDate,
			Notes:         e.Notes,
		})
	}

	var photo *string
	if p.Photo != "" {
		v := p.Photo
		photo = &v
	}

	return petResponse{
		ID:              p.ID,
		Owner:           p.OwnerUserID,
		Name:            p.Name,
		Species:         p.Species,
		Breed:           p.Breed,
		DateOfBirth:     p.DateOfBirth,
		Gender:          p.Gender,
		Weight:          p.Weight,
		Color:           p.Color,
		MicrochipNumber: p.MicrochipNumber,
		Photo:           photo,
		MedicalHistory:  history,
		IsActive:        p.IsActive,
		Age:             age,
		CreatedAt:       p.CreatedAt,
		UpdatedAt:       p.UpdatedAt,
	}
}

// ownershipFirst: una mascota ajena o inexistente es 404 aunque el body sea inválido.
func ownershipFirst(ctx context.Context, svc *Service, userID, id string, err error) error {
	if _, gerr := svc.Get(ctx, userID, id); gerr != nil {
		return gerr
	}
	return err
}
