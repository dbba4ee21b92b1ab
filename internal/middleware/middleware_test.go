package middleware

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"petvax-hub/internal/platform/logger"
	"petvax-hub/internal/ports/auth"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubVerifier struct {
	tokens map[string]auth.Claims
}

func (s stubVerifier) Verify(_ context.Context, token string) (auth.Claims, error) {
	c, ok := s.tokens[token]
	if !ok {
		return auth.Claims{}, errors.New("bad token")
	}
	return c, nil
}

func whoAmI(w http.ResponseWriter, r *http.Request) {
	_, _ = w.Write([]byte(UserID(r.Context())))
}

func serve(h http.Handler, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestAuthContext_Verifier(t *testing.T) {
	h := AuthContext(stubVerifier{tokens: map[string]auth.Claims{
		"good": {UserID: "u-1", Email: "ana@example.com"},
	}})(http.HandlerFunc(whoAmI))

	assert.Equal(t, "u-1", serve(h, map[string]string{"Authorization": "Bearer good"}).Body.String())
	assert.Equal(t, "u-1", serve(h, map[string]string{"Authorization": "bearer  good "}).Body.String())
	assert.Equal(t, "", serve(h, map[string]string{"Authorization": "Bearer bad"}).Body.String())
	assert.Equal(t, "", serve(h, map[string]string{"Authorization": "Basic Zm9vOmJhcg=="}).Body.String())
	// con verifier el header de debug no vale
	assert.Equal(t, "", serve(h, map[string]string{DebugUserHeader: "u-2"}).Body.String())
}

func TestAuthContext_DevMode(t *testing.T) {
	h := AuthContext(nil)(http.HandlerFunc(whoAmI))

	assert.Equal(t, "u-2", serve(h, map[string]string{DebugUserHeader: " u-2 "}).Body.String())
	assert.Equal(t, "", serve(h, nil).Body.String())
}

func TestRequireAuth(t *testing.T) {
	h := AuthContext(nil)(RequireAuth(http.HandlerFunc(whoAmI)))

	rec := serve(h, nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"Not authorized to access this route"}`, rec.Body.String())

	rec = serve(h, map[string]string{DebugUserHeader: "u-1"})
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "u-1", rec.Body.String())
}

func TestRecover(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Output: &buf})

	h := Recover(log)(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		panic("nil map write")
	}))

	rec := serve(h, nil)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"status":"error","message":"Internal server error"}`, rec.Body.String())
	assert.Contains(t, buf.String(), "nil map write")
}

func TestRequestLogger(t *testing.T) {
	var buf bytes.Buffer
	log := logger.New(logger.Options{Level: logger.Debug, Format: logger.FormatJSON, Output: &buf})

	h := AuthContext(nil)(RequestLogger(log)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})))

	rec := serve(h, map[string]string{DebugUserHeader: "u-9"})
	require.Equal(t, http.StatusTeapot, rec.Code)

	out := buf.String()
	assert.Contains(t, out, `"status":418`)
	assert.Contains(t, out, `"user_id":"u-9"`)
	assert.Contains(t, out, `"level":"warning"`)
}
