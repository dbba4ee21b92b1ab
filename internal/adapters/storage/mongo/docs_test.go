package mongo

import (
	"testing"
	"time"

	"petvax-hub/internal/domain/pets"
	"petvax-hub/internal/domain/vaccinations"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
)

func TestPetDoc_OmitsEmptyMicrochip(t *testing.T) {
	p := pets.Pet{ID: "p1", OwnerUserID: "u1", Name: "Rex", IsActive: true}

	raw, err := bson.Marshal(toPetDoc(p))
	require.NoError(t, err)

	_, err = bson.Raw(raw).LookupErr("microchipNumber")
	assert.Error(t, err)

	var m bson.M
	require.NoError(t, bson.Unmarshal(raw, &m))
	assert.Equal(t, "u1", m["owner"])
	assert.Equal(t, "p1", m["_id"])
}

func TestPetDoc_RoundTrip(t *testing.T) {
	w := 12.5
	d := time.Date(2023, 3, 1, 0, 0, 0, 0, time.UTC)
	p := pets.Pet{
		ID:              "p1",
		OwnerUserID:     "u1",
		Name:            "Rex",
		Species:         pets.SpeciesDog,
		DateOfBirth:     time.Date(2020, 6, 1, 0, 0, 0, 0, time.UTC),
		Gender:          pets.GenderMale,
		Weight:          &w,
		MicrochipNumber: "CHIP-1",
		MedicalHistory:  []pets.MedicalEntry{{ID: "m1", Condition: "Otitis", DiagnosedDate: &d}},
		IsActive:        true,
	}

	raw, err := bson.Marshal(toPetDoc(p))
	require.NoError(t, err)

	var doc petDoc
	require.NoError(t, bson.Unmarshal(raw, &doc))
	got := doc.toDomain()

	assert.Equal(t, p.Name, got.Name)
	assert.Equal(t, p.MicrochipNumber, got.MicrochipNumber)
	require.NotNil(t, got.Weight)
	assert.Equal(t, 12.5, *got.Weight)
	require.Len(t, got.MedicalHistory, 1)
	assert.True(t, d.Equal(*got.MedicalHistory[0].DiagnosedDate))
}

func TestVaccinationDoc_ClinicOptional(t *testing.T) {
	v := vaccinations.Vaccination{ID: "v1", PetID: "p1", Status: vaccinations.StatusCompleted}
	assert.Nil(t, toVaccinationDoc(v).Clinic)

	v.Clinic = vaccinations.Clinic{Name: "Vet Center", Phone: "555"}
	doc := toVaccinationDoc(v)
	require.NotNil(t, doc.Clinic)
	assert.Equal(t, v.Clinic, doc.toDomain().Clinic)
}
