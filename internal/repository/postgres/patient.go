package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/medisys/hospital-api/pkg/errors"

	"github.com/medisys/hospital-api/internal/model"
)

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) error {
	query := `
		INSERT INTO patients (first_name, last_name, dob, gender, phone, address)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING patient_id
	`
	err := r.db.GetContext(ctx, &patient.ID, query,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.Phone,
		patient.Address,
	)
	if err != nil {
		if mapped := mapConstraintError(err, "patient"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

func (r *patientRepository) Get(ctx context.Context, id int64) (*model.Patient, error) {
	query := `
		SELECT patient_id, first_name, last_name, dob, gender, phone, address
		FROM patients
		WHERE patient_id = $1
	`
	var patient model.Patient
	err := r.db.GetContext(ctx, &patient, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("patient")
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `
		SELECT patient_id, first_name, last_name, dob, gender, phone, address
		FROM patients
		ORDER BY last_name ASC, first_name ASC
	`
	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ListPaginated(ctx context.Context, limit, offset int) ([]*model.Patient, error) {
	query := `
		SELECT patient_id, first_name, last_name, dob, gender, phone, address
		FROM patients
		ORDER BY last_name ASC, first_name ASC
		LIMIT $1 OFFSET $2
	`
	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`)
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}

func (r *patientRepository) SearchByLastName(ctx context.Context, lastName string) ([]*model.Patient, error) {
	query := `
		SELECT patient_id, first_name, last_name, dob, gender, phone, address
		FROM patients
		WHERE LOWER(last_name) LIKE LOWER($1)
		ORDER BY last_name ASC, first_name ASC
	`
	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query, lastName+"%")
	if err != nil {
		return nil, fmt.Errorf("failed to search patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *model.Patient) error {
	query := `
		UPDATE patients
		SET first_name = $1, last_name = $2, dob = $3, gender = $4, phone = $5, address = $6
		WHERE patient_id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		patient.FirstName,
		patient.LastName,
		patient.DateOfBirth,
		patient.Gender,
		patient.Phone,
		patient.Address,
		patient.ID,
	)
	if err != nil {
		if mapped := mapConstraintError(err, "patient"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient")
	}

	return nil
}

func (r *patientRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM patients
		WHERE patient_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if mapped := mapConstraintError(err, "patient"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete patient: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("patient")
	}

	return nil
}

func (r *patientRepository) ContactExistsInPatients(ctx context.Context, phone string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM patients
			WHERE phone = $1 AND patient_id != $2
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, phone, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check patient contact: %w", err)
	}
	return exists, nil
}

func (r *patientRepository) ContactExistsInDoctors(ctx context.Context, phone string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM doctors
			WHERE phone = $1
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, phone)
	if err != nil {
		return false, fmt.Errorf("failed to check doctor contact: %w", err)
	}
	return exists, nil
}
