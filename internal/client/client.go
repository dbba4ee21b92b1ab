// Package client es un cliente tipado de la API HTTP de PetvaxHub.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"petvax-hub/internal/platform/httpclient"

	"github.com/pkg/errors"
)

const (
	apiPrefix       = "/api"
	debugUserHeader = "X-Debug-User-ID"
)

// APIError es una respuesta no-2xx ya decodificada del sobre de error.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("petvax api: status=%d message=%q", e.StatusCode, e.Message)
}

// StatusOf devuelve el status HTTP de un *APIError, o 0.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

type Client struct {
	hc *httpclient.Client

	mu        sync.RWMutex
	token     string
	debugUser string
}

// New recibe la URL base del servidor (sin /api).
func New(baseURL string, opts ...httpclient.Option) (*Client, error) {
	hc, err := httpclient.New(baseURL, opts...)
	if err != nil {
		return nil, err
	}
	return &Client{hc: hc}, nil
}

// SetToken fija el Bearer token. Login y Register lo fijan solos.
func (c *Client) SetToken(token string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.token = token
}

func (c *Client) Token() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.token
}

// SetDebugUser manda X-Debug-User-ID (servidor en modo dev).
func (c *Client) SetDebugUser(userID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.debugUser = userID
}

// ----- Health / auth -----

func (c *Client) Health(ctx context.Context) (Health, error) {
	var out Health
	err := c.do(ctx, http.MethodGet, "/health", nil, &out)
	return out, err
}

func (c *Client) Register(ctx context.Context, fullName, email, mobileNumber, password string) (Session, error) {
	return c.session(ctx, "/auth/register", map[string]string{
		"fullName":     fullName,
		"email":        email,
		"mobileNumber": mobileNumber,
		"password":     password,
	})
}

func (c *Client) Login(ctx context.Context, email, password string) (Session, error) {
	return c.session(ctx, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	})
}

// Logout avisa al servidor y olvida el token local.
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return err
	}
	c.SetToken("")
	return nil
}

func (c *Client) Me(ctx context.Context) (User, error) {
	return c.user(ctx, http.MethodGet, "/auth/me", nil)
}

func (c *Client) Profile(ctx context.Context) (User, error) {
	return c.user(ctx, http.MethodGet, "/users/profile", nil)
}

func (c *Client) UpdateProfile(ctx context.Context, body any) (User, error) {
	return c.user(ctx, http.MethodPut, "/users/profile", body)
}

// ----- Pets -----

func (c *Client) ListPets(ctx context.Context) ([]Pet, error) {
	var env envelope[struct {
		Pets []Pet `json:"pets"`
	}]
	if err := c.do(ctx, http.MethodGet, "/pets", nil, &env); err != nil {
		return nil, err
	}
	return env.Data.Pets, nil
}

func (c *Client) GetPet(ctx context.Context, id string) (Pet, error) {
	return c.pet(ctx, http.MethodGet, "/pets/"+url.PathEscape(id), nil)
}

// CreatePet acepta cualquier body serializable (struct o map).
func (c *Client) CreatePet(ctx context.Context, body any) (Pet, error) {
	return c.pet(ctx, http.MethodPost, "/pets", body)
}

func (c *Client) UpdatePet(ctx context.Context, id string, body any) (Pet, error) {
	return c.pet(ctx, http.MethodPut, "/pets/"+url.PathEscape(id), body)
}

func (c *Client) DeletePet(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/pets/"+url.PathEscape(id), nil, nil)
}

// ----- Vaccinations -----

func (c *Client) ListVaccinations(ctx context.Context, petID string) ([]Vaccination, error) {
	return c.vaccinations(ctx, "/vaccinations/pet/"+url.PathEscape(petID))
}

func (c *Client) UpcomingVaccinations(ctx context.Context) ([]Vaccination, error) {
	return c.vaccinations(ctx, "/vaccinations/upcoming")
}

func (c *Client) CreateVaccination(ctx context.Context, body any) (Vaccination, error) {
	return c.vaccination(ctx, http.MethodPost, "/vaccinations", body)
}

func (c *Client) UpdateVaccination(ctx context.Context, id string, body any) (Vaccination, error) {
	return c.vaccination(ctx, http.MethodPut, "/vaccinations/"+url.PathEscape(id), body)
}

func (c *Client) DeleteVaccination(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/vaccinations/"+url.PathEscape(id), nil, nil)
}

// ----- helpers -----

func (c *Client) session(ctx context.Context, path string, body any) (Session, error) {
	var env envelope[Session]
	if err := c.do(ctx, http.MethodPost, path, body, &env); err != nil {
		return Session{}, err
	}
	c.SetToken(env.Data.Token)
	return env.Data, nil
}

func (c *Client) user(ctx context.Context, method, path string, body any) (User, error) {
	var env envelope[struct {
		User User `json:"user"`
	}]
	if err := c.do(ctx, method, path, body, &env); err != nil {
		return User{}, err
	}
	return env.Data.User, nil
}

func (c *Client) pet(ctx context.Context, method, path string, body any) (Pet, error) {
	var env envelope[struct {
		Pet Pet `json:"pet"`
	}]
	if err := c.do(ctx, method, path, body, &env); err != nil {
		return Pet{}, err
	}
	return env.Data.Pet, nil
}

func (c *Client) vaccination(ctx context.Context, method, path string, body any) (Vaccination, error) {
	var env envelope[struct {
		Vaccination Vaccination `json:"vaccination"`
	}]
	if err := c.do(ctx, method, path, body, &env); err != nil {
		return Vaccination{}, err
	}
	return env.Data.Vaccination, nil
}

func (c *Client) vaccinations(ctx context.Context, path string) ([]Vaccination, error) {
	var env envelope[struct {
		Vaccinations []Vaccination `json:"vaccinations"`
	}]
	if err := c.do(ctx, http.MethodGet, path, nil, &env); err != nil {
		return nil, err
	}
	return env.Data.Vaccinations, nil
}

func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	headers := map[string]string{}

	c.mu.RLock()
	if c.token != "" {
		headers["Authorization"] = "Bearer " + c.token
	}
	if c.debugUser != "" {
		headers[debugUserHeader] = c.debugUser
	}
	c.mu.RUnlock()

	err := c.hc.Do(ctx, httpclient.Request{
		Method:  method,
		Path:    apiPrefix + path,
		Headers: headers,
		Body:    body,
	}, out)
	if err == nil {
		return nil
	}

	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return err
	}

	var env struct {
		Message string `json:"message"`
	}
	if jsonErr := json.Unmarshal(httpErr.Body, &env); jsonErr != nil || strings.TrimSpace(env.Message) == "" {
		env.Message = http.StatusText(httpErr.StatusCode)
	}
	return &APIError{StatusCode: httpErr.StatusCode, Message: env.Message}
}
