package postgres

import (
	"testing"
	"time"

	"petvax-hub/internal/domain/pets"
	"petvax-hub/internal/domain/vaccinations"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryCodec_KeepsOrderAndDates(t *testing.T) {
	d := time.Date(2023, 5, 2, 0, 0, 0, 0, time.UTC)
	in := []pets.MedicalEntry{
		{ID: "m1", Condition: "Otitis", DiagnosedDate: &d, Notes: "left ear"},
		{ID: "m2", Condition: "Allergy"},
	}

	b, err := encodeHistory(in)
	require.NoError(t, err)

	out, err := decodeHistory(b)
	require.NoError(t, err)
	require.Len(t, out, 2)
	assert.Equal(t, "m1", out[0].ID)
	assert.True(t, d.Equal(*out[0].DiagnosedDate))
	assert.Nil(t, out[1].DiagnosedDate)
}

func TestDecodeHistory_Empty(t *testing.T) {
	out, err := decodeHistory(nil)
	require.NoError(t, err)
	assert.NotNil(t, out)
	assert.Empty(t, out)
}

func TestEncodeClinic_ZeroIsNull(t *testing.T) {
	v, err := encodeClinic(vaccinations.Clinic{})
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = encodeClinic(vaccinations.Clinic{Name: "Vet Center"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Vet Center"}`, string(v.([]byte)))
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "pets_microchip_number_key"}

	assert.True(t, isUniqueViolation(errors.Wrap(pgErr, "insert pet"), "pets_microchip_number_key"))
	assert.False(t, isUniqueViolation(pgErr, "users_email_key"))
	assert.False(t, isUniqueViolation(errors.New("boom"), "pets_microchip_number_key"))
}
