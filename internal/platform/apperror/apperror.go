package apperror

import (
	"net/http"

	"github.com/pkg/errors"
)

// Kind clasifica un error para decidir status HTTP y mensaje visible.
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindForbidden
	KindValidation
	KindUnauthorized
)

func (k Kind) String() string {
	switch k {
	case KindNotFound:
		return "not_found"
	case KindForbidden:
		return "forbidden"
	case KindValidation:
		return "validation"
	case KindUnauthorized:
		return "unauthorized"
	default:
		return "internal"
	}
}

// HTTPStatus traduce la taxonomía a un status HTTP.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindForbidden:
		return http.StatusForbidden
	case KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Error es un error de aplicación con mensaje apto para el cliente.
// cause (opcional) nunca se expone, solo se loguea.
type Error struct {
	kind    Kind
	message string
	cause   error
}

func New(kind Kind, message string) *Error {
	return &Error{kind: kind, message: message}
}

func NotFound(message string) *Error     { return New(KindNotFound, message) }
func Forbidden(message string) *Error    { return New(KindForbidden, message) }
func Validation(message string) *Error   { return New(KindValidation, message) }
func Unauthorized(message string) *Error { return New(KindUnauthorized, message) }

// Wrap asocia una causa interna manteniendo kind y mensaje.
func Wrap(kind Kind, message string, cause error) *Error {
	return &Error{kind: kind, message: message, cause: errors.WithStack(cause)}
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *Error) Unwrap() error { return e.cause }

func (e *Error) Kind() Kind { return e.kind }

// Message es el texto seguro para responder al cliente.
func (e *Error) Message() string { return e.message }

// Is compara por kind+mensaje para que los sentinels sigan funcionando
// con errors.Is aunque el valor haya sido recreado con Wrap.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.kind == t.kind && e.message == t.message
}

// KindOf devuelve el kind del primer *Error en la cadena; KindInternal si no hay.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.kind
	}
	return KindInternal
}

const internalMessage = "Internal server error"

// Public devuelve status y mensaje para la respuesta.
// Errores sin clasificar (drivers, bugs) nunca filtran su texto.
func Public(err error) (int, string) {
	var appErr *Error
	if errors.As(err, &appErr) && appErr.kind != KindInternal {
		return appErr.kind.HTTPStatus(), appErr.message
	}
	return http.StatusInternalServerError, internalMessage
}
