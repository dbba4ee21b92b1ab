package middleware

import (
	"fmt"
	"net/http"
	"runtime/debug"

	"petvax-hub/internal/platform/logger"
	"petvax-hub/internal/platform/respond"

	chimw "github.com/go-chi/chi/v5/middleware"
)

// Recover atrapa panics, los loguea con stack y responde 500 con el sobre
// estándar. http.ErrAbortHandler se re-lanza como hace net/http.
func Recover(log logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}

				log.Error("panic recovered", map[string]any{
					"request_id": chimw.GetReqID(r.Context()),
					"method":     r.Method,
					"path":       r.URL.Path,
					"panic":      fmt.Sprint(rec),
					"stack":      string(debug.Stack()),
				})
				respond.Fail(w, http.StatusInternalServerError, "Internal server error")
			}()

			next.ServeHTTP(w, r)
		})
	}
}
