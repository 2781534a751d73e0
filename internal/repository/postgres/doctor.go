package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/medisys/hospital-api/pkg/errors"

	"github.com/medisys/hospital-api/internal/model"
)

func (r *doctorRepository) Create(ctx context.Context, doctor *model.Doctor) error {
	query := `
		INSERT INTO doctors (first_name, last_name, email, specialization, phone, dept_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING doctor_id
	`
	err := r.db.GetContext(ctx, &doctor.ID, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.Specialization,
		doctor.Phone,
		doctor.DepartmentID,
	)
	if err != nil {
		if mapped := mapConstraintError(err, "doctor"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create doctor: %w", err)
	}
	return nil
}

func (r *doctorRepository) Get(ctx context.Context, id int64) (*model.Doctor, error) {
	query := `
		SELECT doctor_id, first_name, last_name, email, specialization, phone, dept_id
		FROM doctors
		WHERE doctor_id = $1
	`
	var doctor model.Doctor
	err := r.db.GetContext(ctx, &doctor, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("doctor")
		}
		return nil, fmt.Errorf("failed to get doctor: %w", err)
	}
	return &doctor, nil
}

func (r *doctorRepository) List(ctx context.Context) ([]*model.Doctor, error) {
	query := `
		SELECT doctor_id, first_name, last_name, email, specialization, phone, dept_id
		FROM doctors
		ORDER BY last_name ASC, first_name ASC
	`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) ListPaginated(ctx context.Context, limit, offset int) ([]*model.Doctor, error) {
	query := `
		SELECT doctor_id, first_name, last_name, email, specialization, phone, dept_id
		FROM doctors
		ORDER BY last_name ASC, first_name ASC
		LIMIT $1 OFFSET $2
	`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctors: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM doctors`)
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors: %w", err)
	}
	return count, nil
}

func (r *doctorRepository) FindBySpecialization(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	query := `
		SELECT doctor_id, first_name, last_name, email, specialization, phone, dept_id
		FROM doctors
		WHERE LOWER(specialization) = LOWER($1)
		ORDER BY last_name ASC
	`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query, specialization)
	if err != nil {
		return nil, fmt.Errorf("failed to find doctors by specialization: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) FindByDepartment(ctx context.Context, deptID int64) ([]*model.Doctor, error) {
	query := `
		SELECT doctor_id, first_name, last_name, email, specialization, phone, dept_id
		FROM doctors
		WHERE dept_id = $1
		ORDER BY last_name ASC
	`
	var doctors []*model.Doctor
	err := r.db.SelectContext(ctx, &doctors, query, deptID)
	if err != nil {
		return nil, fmt.Errorf("failed to find doctors by department: %w", err)
	}
	return doctors, nil
}

func (r *doctorRepository) Update(ctx context.Context, doctor *model.Doctor) error {
	query := `
		UPDATE doctors
		SET first_name = $1, last_name = $2, email = $3, specialization = $4, phone = $5, dept_id = $6
		WHERE doctor_id = $7
	`
	result, err := r.db.ExecContext(ctx, query,
		doctor.FirstName,
		doctor.LastName,
		doctor.Email,
		doctor.Specialization,
		doctor.Phone,
		doctor.DepartmentID,
		doctor.ID,
	)
	if err != nil {
		if mapped := mapConstraintError(err, "doctor"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor")
	}

	return nil
}

func (r *doctorRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM doctors
		WHERE doctor_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if mapped := mapConstraintError(err, "doctor"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete doctor: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("doctor")
	}

	return nil
}

func (r *doctorRepository) EmailExists(ctx context.Context, email string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM doctors
			WHERE LOWER(email) = LOWER($1) AND doctor_id != $2
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, email, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check doctor email: %w", err)
	}
	return exists, nil
}

func (r *doctorRepository) ContactExistsInDoctors(ctx context.Context, phone string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM doctors
			WHERE phone = $1 AND doctor_id != $2
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, phone, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check doctor contact: %w", err)
	}
	return exists, nil
}

func (r *doctorRepository) ContactExistsInPatients(ctx context.Context, phone string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM patients
			WHERE phone = $1
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, phone)
	if err != nil {
		return false, fmt.Errorf("failed to check patient contact: %w", err)
	}
	return exists, nil
}
