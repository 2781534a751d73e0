package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/medisys/hospital-api/pkg/errors"

	"github.com/medisys/hospital-api/internal/model"
)

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) error {
	query := `
		INSERT INTO appointments (patient_id, doctor_id, appointment_date, status, reason)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING appointment_id
	`
	err := r.db.GetContext(ctx, &apt.ID, query,
		apt.PatientID,
		apt.DoctorID,
		apt.DateTime,
		apt.Status,
		apt.Reason,
	)
	if err != nil {
		if mapped := mapConstraintError(err, "appointment"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create appointment: %w", err)
	}
	return nil
}

func (r *appointmentRepository) Get(ctx context.Context, id int64) (*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, doctor_id, appointment_date, status, reason
		FROM appointments
		WHERE appointment_id = $1
	`
	var apt model.Appointment
	err := r.db.GetContext(ctx, &apt, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("appointment")
		}
		return nil, fmt.Errorf("failed to get appointment: %w", err)
	}
	return &apt, nil
}

func (r *appointmentRepository) List(ctx context.Context) ([]*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, doctor_id, appointment_date, status, reason
		FROM appointments
		ORDER BY appointment_date ASC
	`
	var apts []*model.Appointment
	err := r.db.SelectContext(ctx, &apts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return apts, nil
}

func (r *appointmentRepository) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, doctor_id, appointment_date, status, reason
		FROM appointments
		WHERE doctor_id = $1
		ORDER BY appointment_date ASC
	`
	var apts []*model.Appointment
	err := r.db.SelectContext(ctx, &apts, query, doctorID)
	if err != nil {
		return nil, fmt.Errorf("failed to list doctor appointments: %w", err)
	}
	return apts, nil
}

func (r *appointmentRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	query := `
		SELECT appointment_id, patient_id, doctor_id, appointment_date, status, reason
		FROM appointments
		WHERE patient_id = $1
		ORDER BY appointment_date ASC
	`
	var apts []*model.Appointment
	err := r.db.SelectContext(ctx, &apts, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient appointments: %w", err)
	}
	return apts, nil
}

func (r *appointmentRepository) Update(ctx context.Context, apt *model.Appointment) error {
	query := `
		UPDATE appointments
		SET patient_id = $1, doctor_id = $2, appointment_date = $3, status = $4, reason = $5
		WHERE appointment_id = $6
	`
	result, err := r.db.ExecContext(ctx, query,
		apt.PatientID,
		apt.DoctorID,
		apt.DateTime,
		apt.Status,
		apt.Reason,
		apt.ID,
	)
	if err != nil {
		if mapped := mapConstraintError(err, "appointment"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment")
	}

	return nil
}

func (r *appointmentRepository) UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error {
	query := `
		UPDATE appointments
		SET status = $1
		WHERE appointment_id = $2
	`
	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update appointment status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment")
	}

	return nil
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM appointments
		WHERE appointment_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if mapped := mapConstraintError(err, "appointment"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete appointment: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("appointment")
	}

	return nil
}

func (r *appointmentRepository) HasPrescribedForDoctor(ctx context.Context, doctorID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments a
			JOIN prescriptions p ON p.appointment_id = a.appointment_id
			WHERE a.doctor_id = $1
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, doctorID)
	if err != nil {
		return false, fmt.Errorf("failed to check prescribed appointments for doctor: %w", err)
	}
	return exists, nil
}

func (r *appointmentRepository) HasPrescribedForPatient(ctx context.Context, patientID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM appointments a
			JOIN prescriptions p ON p.appointment_id = a.appointment_id
			WHERE a.patient_id = $1
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, patientID)
	if err != nil {
		return false, fmt.Errorf("failed to check prescribed appointments for patient: %w", err)
	}
	return exists, nil
}
