package users

import (
	"net/http"
	"time"

	"petvax-hub/internal/middleware"
	"petvax-hub/internal/platform/bind"
	"petvax-hub/internal/platform/logger"
	"petvax-hub/internal/platform/respond"

	"github.com/go-chi/chi/v5"
)

// RegisterRoutes monta /auth/logout, /auth/me y /users/profile.
// register y login van aparte (RegisterCredentialRoutes) porque solo existen
// cuando esta API emite sus propios tokens.
func RegisterRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Group(func(pr chi.Router) {
		pr.Use(middleware.RequireAuth)

		pr.Post("/auth/logout", logoutHandler())
		pr.Get("/auth/me", profileHandler(svc, log))

		pr.Get("/users/profile", profileHandler(svc, log))
		pr.Put("/users/profile", updateProfileHandler(svc, log))
	})
}

// RegisterCredentialRoutes monta POST /auth/register y POST /auth/login.
func RegisterCredentialRoutes(r chi.Router, svc *Service, log logger.Logger) {
	r.Post("/auth/register", registerHandler(svc, log))
	r.Post("/auth/login", loginHandler(svc, log))
}

type userResponse struct {
	ID           string    `json:"_id"`
	FullName     string    `json:"fullName"`
	Email        string    `json:"email"`
	MobileNumber string    `json:"mobileNumber"`
	ProfileImage *string   `json:"profileImage"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// registerHandler godoc
// @Summary Registrar usuario
// @Description Crea una cuenta y devuelve el usuario con un token de sesión. El email se guarda en minúsculas y es único.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body RegisterInput true "fullName, email, mobileNumber, password (mínimo 6)"
// @Success 201 {object} respond.Envelope{data=object{user=userResponse,token=string}}
// @Failure 400 {object} respond.Envelope "validación / email ya registrado"
// @Router /auth/register [post]
func registerHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in RegisterInput
		if err := bind.JSON(w, r, &in); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		sess, err := svc.Register(r.Context(), in)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.Success(w, http.StatusCreated, "User registered successfully", map[string]any{
			"user":  toUserResponse(sess.User),
			"token": sess.Token,
		})
	}
}

// loginHandler godoc
// @Summary Iniciar sesión
// @Description Valida email y contraseña y devuelve un token Bearer.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body LoginInput true "email y password"
// @Success 200 {object} respond.Envelope{data=object{user=userResponse,token=string}}
// @Failure 400 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope "Invalid email or password"
// @Router /auth/login [post]
func loginHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in LoginInput
		if err := bind.JSON(w, r, &in); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		sess, err := svc.Login(r.Context(), in)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}

		respond.Success(w, http.StatusOK, "Login successful", map[string]any{
			"user":  toUserResponse(sess.User),
			"token": sess.Token,
		})
	}
}

// logoutHandler godoc
// @Summary Cerrar sesión
// @Description Los tokens no tienen estado en el servidor: el cliente descarta el suyo.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Router /auth/logout [post]
func logoutHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		respond.Success(w, http.StatusOK, "Logged out successfully", nil)
	}
}

// profileHandler godoc
// @Summary Usuario actual
// @Description Devuelve el usuario autenticado. Mismo handler para /auth/me y GET /users/profile.
// @Tags users
// @Produce json
// @Security BearerAuth
// @Success 200 {object} respond.Envelope{data=object{user=userResponse}}
// @Failure 401 {object} respond.Envelope
// @Failure 404 {object} respond.Envelope "User not found"
// @Router /auth/me [get]
// @Router /users/profile [get]
func profileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		u, err := svc.Me(r.Context(), middleware.UserID(r.Context()))
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.Success(w, http.StatusOK, "", map[string]any{"user": toUserResponse(u)})
	}
}

// updateProfileHandler godoc
// @Summary Actualizar perfil
// @Description Solo fullName, mobileNumber y profileImage se pueden cambiar; el resto del body se ignora.
// @Tags users
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param payload body ProfileInput true "Campos de perfil"
// @Success 200 {object} respond.Envelope{data=object{user=userResponse}}
// @Failure 400 {object} respond.Envelope
// @Failure 401 {object} respond.Envelope
// @Router /users/profile [put]
func updateProfileHandler(svc *Service, log logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var in ProfileInput
		if err := bind.JSON(w, r, &in); err != nil {
			respond.Error(w, r, log, err)
			return
		}

		u, err := svc.UpdateProfile(r.Context(), middleware.UserID(r.Context()), in)
		if err != nil {
			respond.Error(w, r, log, err)
			return
		}
		respond.Success(w, http.StatusOK, "Profile updated successfully", map[string]any{"user": toUserResponse(u)})
	}
}

func toUserResponse(u User) userResponse {
	var img *string
	if u.ProfileImage != "" {
		v := u.ProfileImage
		img = &v
	}
	return userResponse{
		ID:           u.ID,
		FullName:     u.FullName,
		Email:        u.Email,
		MobileNumber: u.MobileNumber,
		ProfileImage: img,
		CreatedAt:    u.CreatedAt,
		UpdatedAt:    u.UpdatedAt,
	}
}
