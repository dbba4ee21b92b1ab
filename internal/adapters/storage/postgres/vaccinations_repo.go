package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"petvax-hub/internal/domain/vaccinations"

	"github.com/pkg/errors"
)

const vaccinationColumns = `
	id, pet_id, owner_user_id,
	vaccine_name, vaccine_type,
	administered_date, next_due_date,
	veterinarian, clinic,
	batch_number, manufacturer, side_effects, notes, certificate,
	status, reminder_sent,
	created_at, updated_at`

type VaccinationsRepo struct {
	db *sql.DB
}

func NewVaccinationsRepo(db *sql.DB) *VaccinationsRepo {
	return &VaccinationsRepo{db: db}
}

type clinicRow struct {
	Name    string `json:"name,omitempty"`
	Address string `json:"address,omitempty"`
	Phone   string `json:"phone,omitempty"`
}

func (r *VaccinationsRepo) Create(ctx context.Context, v vaccinations.Vaccination) error {
	clinic, err := encodeClinic(v.Clinic)
	if err != nil {
		return err
	}

	_, err = r.db.ExecContext(ctx, `
		INSERT INTO vaccinations (`+vaccinationColumns+`)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18)
	`,
		v.ID,
		v.PetID,
		v.OwnerUserID,
		v.VaccineName,
		string(v.VaccineType),
		v.AdministeredDate,
		v.NextDueDate,
		v.Veterinarian,
		clinic,
		v.BatchNumber,
		v.Manufacturer,
		v.SideEffects,
		v.Notes,
		v.Certificate,
		string(v.Status),
		v.ReminderSent,
		v.CreatedAt,
		v.UpdatedAt,
	)
	return errors.Wrap(err, "insert vaccination")
}

func (r *VaccinationsRepo) GetByID(ctx context.Context, id string) (vaccinations.Vaccination, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return vaccinations.Vaccination{}, vaccinations.ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		WHERE id = $1
	`, id)

	v, err := scanVaccination(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vaccinations.Vaccination{}, vaccinations.ErrNotFound
		}
		return vaccinations.Vaccination{}, errors.Wrap(err, "get vaccination")
	}
	return v, nil
}

func (r *VaccinationsRepo) ListByPet(ctx context.Context, petID string) ([]vaccinations.Vaccination, error) {
	return r.list(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		WHERE pet_id = $1
		ORDER BY administered_date DESC, created_at DESC
	`, petID)
}

func (r *VaccinationsRepo) ListDue(ctx context.Context, petIDs []string, from, to time.Time, statuses []vaccinations.Status) ([]vaccinations.Vaccination, error) {
	if len(petIDs) == 0 || len(statuses) == 0 {
		return []vaccinations.Vaccination{}, nil
	}

	sts := make([]string, 0, len(statuses))
	for _, s := range statuses {
		sts = append(sts, string(s))
	}

	return r.list(ctx, `
		SELECT `+vaccinationColumns+`
		FROM vaccinations
		WHERE pet_id = ANY($1)
		  AND next_due_date >= $2
		  AND next_due_date <= $3
		  AND status = ANY($4)
		ORDER BY next_due_date ASC, id ASC
	`, petIDs, from, to, sts)
}

func (r *VaccinationsRepo) UpdateForOwner(ctx context.Context, id, ownerUserID string, patch vaccinations.Patch, at time.Time) (vaccinations.Vaccination, error) {
	var sb strings.Builder
	args := []any{id, ownerUserID}
	argN := 3

	set := func(col string, v any) {
		sb.WriteString(fmt.Sprintf("%s = $%d, ", col, argN))
		args = append(args, v)
		argN++
	}

	if patch.VaccineName != nil {
		set("vaccine_name", *patch.VaccineName)
	}
	if patch.VaccineType != nil {
		set("vaccine_type", string(*patch.VaccineType))
	}
	if patch.AdministeredDate != nil {
		set("administered_date", *patch.AdministeredDate)
	}
	if patch.NextDueDate != nil {
		set("next_due_date", *patch.NextDueDate)
	}
	if patch.Veterinarian != nil {
		set("veterinarian", *patch.Veterinarian)
	}
	if patch.Clinic != nil {
		clinic, err := encodeClinic(*patch.Clinic)
		if err != nil {
			return vaccinations.Vaccination{}, err
		}
		set("clinic", clinic)
	}
	if patch.BatchNumber != nil {
		set("batch_number", *patch.BatchNumber)
	}
	if patch.Manufacturer != nil {
		set("manufacturer", *patch.Manufacturer)
	}
	if patch.SideEffects != nil {
		set("side_effects", *patch.SideEffects)
	}
	if patch.Notes != nil {
		set("notes", *patch.Notes)
	}
	if patch.Certificate != nil {
		set("certificate", *patch.Certificate)
	}
	if patch.Status != nil {
		set("status", string(*patch.Status))
	}
	if patch.ReminderSent != nil {
		set("reminder_sent", *patch.ReminderSent)
	}
	sb.WriteString(fmt.Sprintf("updated_at = $%d", argN))
	args = append(args, at)

	row := r.db.QueryRowContext(ctx, `
		UPDATE vaccinations
		SET `+sb.String()+`
		WHERE id = $1 AND owner_user_id = $2
		RETURNING `+vaccinationColumns, args...)

	v, err := scanVaccination(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return vaccinations.Vaccination{}, vaccinations.ErrNotFound
		}
		return vaccinations.Vaccination{}, errors.Wrap(err, "update vaccination")
	}
	return v, nil
}

func (r *VaccinationsRepo) DeleteForOwner(ctx context.Context, id, ownerUserID string) error {
	res, err := r.db.ExecContext(ctx, `
		DELETE FROM vaccinations
		WHERE id = $1 AND owner_user_id = $2
	`, id, ownerUserID)
	if err != nil {
		return errors.Wrap(err, "delete vaccination")
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return vaccinations.ErrNotFound
	}
	return nil
}

func (r *VaccinationsRepo) list(ctx context.Context, query string, args ...any) ([]vaccinations.Vaccination, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "list vaccinations")
	}
	defer rows.Close()

	out := make([]vaccinations.Vaccination, 0)
	for rows.Next() {
		v, err := scanVaccination(rows)
		if err != nil {
			return nil, errors.Wrap(err, "scan vaccination")
		}
		out = append(out, v)
	}
	return out, errors.WithStack(rows.Err())
}

func scanVaccination(row rowScanner) (vaccinations.Vaccination, error) {
	var (
		v           vaccinations.Vaccination
		vaccineType string
		status      string
		clinic      []byte
	)
	if err := row.Scan(
		&v.ID,
		&v.PetID,
		&v.OwnerUserID,
		&v.VaccineName,
		&vaccineType,
		&v.AdministeredDate,
		&v.NextDueDate,
		&v.Veterinarian,
		&clinic,
		&v.BatchNumber,
		&v.Manufacturer,
		&v.SideEffects,
		&v.Notes,
		&v.Certificate,
		&status,
		&v.ReminderSent,
		&v.CreatedAt,
		&v.UpdatedAt,
	); err != nil {
		return vaccinations.Vaccination{}, err
	}

	v.VaccineType = vaccinations.VaccineType(vaccineType)
	v.Status = vaccinations.Status(status)
	v.AdministeredDate = v.AdministeredDate.UTC()
	v.NextDueDate = v.NextDueDate.UTC()
	v.CreatedAt = v.CreatedAt.UTC()
	v.UpdatedAt = v.UpdatedAt.UTC()

	if len(clinic) > 0 {
		var c clinicRow
		if err := json.Unmarshal(clinic, &c); err != nil {
			return vaccinations.Vaccination{}, errors.Wrap(err, "decode clinic")
		}
		v.Clinic = vaccinations.Clinic(c)
	}
	return v, nil
}

// encodeClinic devuelve nil (NULL) cuando la clínica está vacía.
func encodeClinic(c vaccinations.Clinic) (any, error) {
	if c.IsZero() {
		return nil, nil
	}
	b, err := json.Marshal(clinicRow(c))
	if err != nil {
		return nil, errors.Wrap(err, "encode clinic")
	}
	return b, nil
}
