package apperror

import (
	"net/http"
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

func TestPublic(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantMsg    string
	}{
		{name: "not found", err: NotFound("Pet not found"), wantStatus: http.StatusNotFound, wantMsg: "Pet not found"},
		{name: "forbidden", err: Forbidden("nope"), wantStatus: http.StatusForbidden, wantMsg: "nope"},
		{name: "validation", err: Validation("name is required"), wantStatus: http.StatusBadRequest, wantMsg: "name is required"},
		{name: "unauthorized", err: Unauthorized("who"), wantStatus: http.StatusUnauthorized, wantMsg: "who"},
		{name: "wrapped", err: errors.Wrap(NotFound("Pet not found"), "get pet"), wantStatus: http.StatusNotFound, wantMsg: "Pet not found"},
		{name: "driver error", err: errors.New("pq: connection refused"), wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
		{name: "internal kind", err: Wrap(KindInternal, "db down", errors.New("dial tcp")), wantStatus: http.StatusInternalServerError, wantMsg: "Internal server error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, msg := Public(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantMsg, msg)
		})
	}
}

func TestIs_MatchesRecreatedSentinel(t *testing.T) {
	sentinel := NotFound("Pet not found")
	wrapped := Wrap(KindNotFound, "Pet not found", errors.New("no rows"))

	assert.ErrorIs(t, wrapped, sentinel)
	assert.NotErrorIs(t, Forbidden("Pet not found"), sentinel)
	assert.Equal(t, KindNotFound, KindOf(errors.WithStack(wrapped)))
	assert.Equal(t, KindInternal, KindOf(errors.New("plain")))
}
