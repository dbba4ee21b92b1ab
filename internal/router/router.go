package router

import (
	"net/http"
	"time"

	_ "petvax-hub/docs"
	"petvax-hub/internal/adapters/auth/password"
	"petvax-hub/internal/adapters/storage"
	"petvax-hub/internal/domain/pets"
	"petvax-hub/internal/domain/users"
	"petvax-hub/internal/domain/vaccinations"
	"petvax-hub/internal/middleware"
	"petvax-hub/internal/platform/logger"
	"petvax-hub/internal/platform/respond"
	"petvax-hub/internal/ports/auth"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/crypto/bcrypt"
)

const (
	APIPrefix = "/api"

	MsgRouteNotFound = "Route not found"
	MsgHealthy       = "PetvaxHub API is running"
)

type Options struct {
	// nil = modo dev: el usuario sale del header X-Debug-User-ID.
	Verifier auth.AuthVerifier

	// Emite los tokens de register/login. Si Verifier != nil y Issuer == nil,
	// los tokens los emite otro sistema y ni /auth ni /users se montan.
	Issuer auth.TokenIssuer
	Hasher auth.PasswordHasher

	// Opcional: si no viene, stores en memoria.
	Repos *storage.Repositories

	Logger      logger.Logger
	CORSOrigins []string
	Swagger     bool
}

// devIssuer emite como "token" el propio user id, que en modo dev se manda
// en X-Debug-User-ID.
type devIssuer struct{}

func (devIssuer) Issue(c auth.Claims, _ time.Time) (string, error) {
	return c.UserID, nil
}

func NewRouter(opts Options) http.Handler {
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}

	repos := storage.Memory()
	if opts.Repos != nil {
		repos = *opts.Repos
	}

	hasher := opts.Hasher
	if hasher == nil {
		hasher = password.NewBcryptHasher(bcrypt.DefaultCost)
	}

	issuer := opts.Issuer
	if issuer == nil && opts.Verifier == nil {
		issuer = devIssuer{}
	}

	r := chi.NewRouter()

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(corsHandler(opts.CORSOrigins))
	r.Use(middleware.AuthContext(opts.Verifier))
	r.Use(middleware.RequestLogger(log))
	r.Use(middleware.Recover(log))

	r.NotFound(routeNotFound)
	r.MethodNotAllowed(routeNotFound)

	if opts.Swagger {
		r.Get("/swagger/*", httpSwagger.WrapHandler)
	}

	// Services por módulo
	petsSvc := pets.NewService(repos.Pets)
	vaccinationsSvc := vaccinations.NewService(repos.Vaccinations, petsSvc)
	usersSvc := users.NewService(repos.Users, hasher, issuer)

	r.Route(APIPrefix, func(api chi.Router) {
		api.NotFound(routeNotFound)
		api.MethodNotAllowed(routeNotFound)

		api.Get("/health", health)

		// Sin issuer los usuarios viven en el IAM externo: no hay registro local.
		if issuer != nil {
			users.RegisterCredentialRoutes(api, usersSvc, log)
			users.RegisterRoutes(api, usersSvc, log)
		}
		pets.RegisterRoutes(api, petsSvc, log)
		vaccinations.RegisterRoutes(api, vaccinationsSvc, log)
	})

	return r
}

// health godoc
// @Summary Health check
// @Description No requiere autenticación.
// @Tags health
// @Produce json
// @Success 200 {object} object{status=string,message=string,timestamp=string}
// @Router /health [get]
func health(w http.ResponseWriter, _ *http.Request) {
	respond.JSON(w, http.StatusOK, map[string]any{
		"status":    respond.StatusSuccess,
		"message":   MsgHealthy,
		"timestamp": time.Now().UTC().Format(time.RFC3339Nano),
	})
}

func routeNotFound(w http.ResponseWriter, _ *http.Request) {
	respond.Fail(w, http.StatusNotFound, MsgRouteNotFound)
}

func corsHandler(origins []string) func(http.Handler) http.Handler {
	if len(origins) == 0 {
		origins = []string{"*"}
	}
	return cors.New(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders: []string{"Authorization", "Content-Type", middleware.DebugUserHeader},
		ExposedHeaders: []string{chimw.RequestIDHeader},
		MaxAge:         300,
	}).Handler
}
