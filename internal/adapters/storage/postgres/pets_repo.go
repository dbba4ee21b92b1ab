package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"petvax-hub/internal/domain/pets"

	"github.com/pkg/errors"
)

const petColumns = `
	id, owner_user_id,
	name, species, breed, date_of_birth, gender,
	weight, color, microchip_number, photo,
	medical_history, is_active,
	created_at, updated_at`

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

// medicalEntryRow es la forma de una entrada dentro del JSONB medical_history.
type medicalEntryRow struct {
	ID            string     `json:"_id"`
	Condition     string     `json:"condition"`
	DiagnosedDate *time.Time `json:"diagnosedDate,omitempty"`
	Notes         string     `json:"notes"`
}

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	history, err := encodeHistory(p.MedicalHistory)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO pets (`+petColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15)
	`,
		p.ID,
		p.OwnerUserID,
		p.Name,
		string(p.Species),
		p.Breed,
		p.DateOfBirth,
		string(p.Gender),
		toNullFloat(p.Weight),
		p.Color,
		nullIfEmpty(p.MicrochipNumber),
		p.Photo,
		history,
		p.IsActive,
		p.CreatedAt,
		p.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err, "pets_microchip_number_key") {
			return pets.ErrDuplicateMicrochip
		}
		return errors.Wrap(err, "insert pet")
	}
	return nil
}

func (r *PetsRepo) GetForOwner(ctx context.Context, id, ownerUserID string) (pets.Pet, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return pets.Pet{}, pets.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)

	p, err := scanPet(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return pets.Pet{}, pets.ErrNotFound
		}
		return pets.Pet{}, errors.Wrap(err, "get pet")
	}
	return p, nil
}

func (r *PetsRepo) ListActiveByOwner(ctx context.Context, ownerUserID string) ([]pets.Pet, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return []pets.Pet{}, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE owner_user_id = $1 AND is_active
		ORDER BY created_at DESC, id DESC
	`, ownerUserID)
	if err != nil {
		return nil, errors.Wrap(err, "list pets")
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan pet")
		}
		out = append(out, p)
	}

	return out, errors.WithStack(rows.Err())
}

// Update arma el SET solo con los campos presentes y filtra por id AND owner
// en la misma sentencia.
func (r *PetsRepo) Update(ctx context.Context, id, ownerUserID string, patch pets.Patch, at time.Time) (pets.Pet, error) {
	var sb strings.Builder
	args := []any{id, ownerUserID}
	argN := 3

	set := func(col string, v any) {
		sb.WriteString(fmt.Sprintf("%s = $%d, ", col, argN))
		args = append(args, v)
		argN++
	}

	if patch.Name != nil {
		set("name", *patch.Name)
	}
	if patch.Species != nil {
		set("species", string(*patch.Species))
	}
	if patch.Breed != nil {
		set("breed", *patch.Breed)
	}
	if patch.DateOfBirth != nil {
		set("date_of_birth", *patch.DateOfBirth)
	}
	if patch.Gender != nil {
		set("gender", string(*patch.Gender))
	}
	if patch.ClearWeight {
		set("weight", sql.NullFloat64{})
	} else if patch.Weight != nil {
		set("weight", *patch.Weight)
	}
	if patch.Color != nil {
		set("color", *patch.Color)
	}
	if patch.MicrochipNumber != nil {
		set("microchip_number", nullIfEmpty(*patch.MicrochipNumber))
	}
	if patch.Photo != nil {
		set("photo", *patch.Photo)
	}
	if patch.MedicalHistory != nil {
		history, err := encodeHistory(*patch.MedicalHistory)
		if err != nil {
			return pets.Pet{}, err
		}
		set("medical_history", history)
	}
	sb.WriteString(fmt.Sprintf("updated_at = $%d", argN))
	args = append(args, at)

	row := r.db.QueryRowContext(ctx, `
		UPDATE pets
		SET `+sb.String()+`
		WHERE id = $1 AND owner_user_id = $2
		RETURNING `+petColumns, args...)

	p, err := scanPet(row)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			return pets.Pet{}, pets.ErrNotFound
		case isUniqueViolation(err, "pets_microchip_number_key"):
			return pets.Pet{}, pets.ErrDuplicateMicrochip
		}
		return pets.Pet{}, errors.Wrap(err, "update pet")
	}
	return p, nil
}

func (r *PetsRepo) SoftDelete(ctx context.Context, id, ownerUserID string, at time.Time) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE pets
		SET is_active = FALSE, updated_at = $3
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID, at)
	if err != nil {
		return errors.Wrap(err, "soft delete pet")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return pets.ErrNotFound
	}
	return nil
}

func scanPet(row rowScanner) (pets.Pet, error) {
	var (
		p       pets.Pet
		species string
		gender  string
		weight  sql.NullFloat64
		chip    sql.NullString
		history []byte
	)
	if err := row.Scan(
		&p.ID,
		&p.OwnerUserID,
		&p.Name,
		&species,
		&p.Breed,
		&p.DateOfBirth,
		&gender,
		&weight,
		&p.Color,
		&chip,
		&p.Photo,
		&history,
		&p.IsActive,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		return pets.Pet{}, err
	}

	p.Species = pets.Species(species)
	p.Gender = pets.Gender(gender)
	if weight.Valid {
		w := weight.Float64
		p.Weight = &w
	}
	p.MicrochipNumber = chip.String
	p.DateOfBirth = p.DateOfBirth.UTC()
	p.CreatedAt = p.CreatedAt.UTC()
	p.UpdatedAt = p.UpdatedAt.UTC()

	entries, err := decodeHistory(history)
	if err != nil {
		return pets.Pet{}, err
	}
	p.MedicalHistory = entries
	return p, nil
}

func encodeHistory(in []pets.MedicalEntry) ([]byte, error) {
	rows := make([]medicalEntryRow, 0, len(in))
	for _, e := range in {
		rows = append(rows, medicalEntryRow(e))
	}
	b, err := json.Marshal(rows)
	if err != nil {
		return nil, errors.Wrap(err, "encode medical history")
	}
	return b, nil
}

func decodeHistory(b []byte) ([]pets.MedicalEntry, error) {
	out := make([]pets.MedicalEntry, 0)
	if len(b) == 0 {
		return out, nil
	}
	var rows []medicalEntryRow
	if err := json.Unmarshal(b, &rows); err != nil {
		return nil, errors.Wrap(err, "decode medical history")
	}
	for _, r := range rows {
		out = append(out, pets.MedicalEntry(r))
	}
	return out, nil
}

func toNullFloat(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}
