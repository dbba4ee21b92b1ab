package validation

import (
	"reflect"
	"strings"
	"sync"

	"petvax-hub/internal/platform/apperror"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	once     sync.Once
	validate *validator.Validate
)

// Validator devuelve la instancia compartida. Los nombres de campo salen del
// tag json para que los mensajes coincidan con lo que manda el cliente.
func Validator() *validator.Validate {
	once.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return lowerFirst(fld.Name)
			}
			return name
		})
	})
	return validate
}

// Messages pisa el texto por "campo.tag" (ej: "name.required").
type Messages map[string]string

// Struct valida s y devuelve un apperror de validación con todos los
// mensajes unidos por ", ".
func Struct(s any, msgs Messages) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}
	return translate(err, "", msgs)
}

// Var valida un solo valor (útil en updates parciales donde cada campo es opcional).
func Var(field string, value any, tag string, msgs Messages) error {
	err := Validator().Var(value, tag)
	if err == nil {
		return nil
	}
	return translate(err, field, msgs)
}

// Required es el chequeo de "presente pero vacío" que los tags no cubren
// en punteros a string.
func Required(field, value string, msgs Messages) error {
	if strings.TrimSpace(value) != "" {
		return nil
	}
	return apperror.Validation(message(field, "required", "", msgs))
}

// Join une varios errores de validación en uno solo. nil si no hay ninguno.
func Join(errs ...error) error {
	parts := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		var appErr *apperror.Error
		if errors.As(err, &appErr) && appErr.Kind() == apperror.KindValidation {
			parts = append(parts, appErr.Message())
			continue
		}
		return err
	}
	if len(parts) == 0 {
		return nil
	}
	return apperror.Validation(strings.Join(parts, ", "))
}

func translate(err error, field string, msgs Messages) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return errors.Wrap(err, "validate")
	}

	parts := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		name := field
		if name == "" {
			name = fieldPath(fe)
		}
		parts = append(parts, message(name, fe.Tag(), fe.Param(), msgs))
	}
	return apperror.Validation(strings.Join(parts, ", "))
}

func message(field, tag, param string, msgs Messages) string {
	if m, ok := msgs[field+"."+tag]; ok {
		return m
	}
	switch tag {
	case "required":
		return field + " is required"
	case "oneof":
		return field + " must be one of: " + strings.ReplaceAll(param, " ", ", ")
	case "gte", "min":
		return field + " must be at least " + param
	case "lte", "max":
		return field + " must be at most " + param
	case "email":
		return field + " must be a valid email"
	case "uuid", "uuid4":
		return field + " must be a valid id"
	default:
		return field + " is invalid"
	}
}

// fieldPath arma "clinic.phone" a partir del namespace sin el nombre del struct raíz.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.Index(ns, "."); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func lowerFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToLower(s[:1]) + s[1:]
}
