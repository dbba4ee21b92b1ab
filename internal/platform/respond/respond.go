package respond

import (
	"encoding/json"
	"net/http"

	"petvax-hub/internal/platform/apperror"
	"petvax-hub/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
)

const (
	StatusSuccess = "success"
	StatusError   = "error"
)

// Envelope es el sobre común de todas las respuestas JSON.
type Envelope struct {
	Status  string `json:"status"`
	Message string `json:"message,omitempty"`
	Results *int   `json:"results,omitempty"`
	Data    any    `json:"data,omitempty"`
}

func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func Success(w http.ResponseWriter, status int, message string, data any) {
	JSON(w, status, Envelope{
		Status:  StatusSuccess,
		Message: message,
		Data:    data,
	})
}

// List agrega el campo results con la cantidad de elementos.
func List(w http.ResponseWriter, results int, data any) {
	JSON(w, http.StatusOK, Envelope{
		Status:  StatusSuccess,
		Results: &results,
		Data:    data,
	})
}

func Fail(w http.ResponseWriter, status int, message string) {
	JSON(w, status, Envelope{
		Status:  StatusError,
		Message: message,
	})
}

// Error traduce err a status + mensaje seguro. Los errores internos se
// loguean completos (con stack si viene de pkg/errors) y al cliente solo le
// llega un mensaje genérico.
func Error(w http.ResponseWriter, r *http.Request, log logger.Logger, err error) {
	status, msg := apperror.Public(err)
	if status >= http.StatusInternalServerError && log != nil {
		log.Error("request failed", map[string]any{
			"request_id": chimw.GetReqID(r.Context()),
			"method":     r.Method,
			"path":       r.URL.Path,
			"error":      err.Error(),
			"detail":     formatDetail(err),
		})
	}
	Fail(w, status, msg)
}
