package bind

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
	"time"

	"petvax-hub/internal/platform/apperror"

	"github.com/pkg/errors"
)

const maxBodyBytes = 1 << 20

var ErrInvalidJSON = apperror.Validation("Invalid JSON body")

// JSON decodifica el body en v. Body vacío o malformado => ErrInvalidJSON.
func JSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrInvalidJSON
		}
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			return apperror.Validation("Request body too large")
		}
		return apperror.Wrap(apperror.KindValidation, ErrInvalidJSON.Message(), err)
	}
	return nil
}

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339Nano,
}

// Date acepta YYYY-MM-DD o RFC3339. "" => nil.
func Date(field, s string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, nil
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, apperror.Validation(field + " must be a date (YYYY-MM-DD or RFC3339)")
}

// OptionalDate es Date para campos puntero de un update parcial.
func OptionalDate(field string, s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := Date(field, *s)
	if err != nil {
		return nil, err
	}
	if t == nil {
		return nil, apperror.Validation(field + " is required")
	}
	return t, nil
}
