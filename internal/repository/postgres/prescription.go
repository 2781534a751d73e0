package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/medisys/hospital-api/pkg/errors"

	"github.com/medisys/hospital-api/internal/model"
)

func (r *prescriptionRepository) Create(ctx context.Context, p *model.Prescription) error {
	query := `
		INSERT INTO prescriptions (appointment_id, date_issued, notes)
		VALUES ($1, $2, $3)
		RETURNING prescription_id
	`
	err := r.db.GetContext(ctx, &p.ID, query, p.AppointmentID, p.DateIssued, p.Notes)
	if err != nil {
		if mapped := mapConstraintError(err, "prescription"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (r *prescriptionRepository) Get(ctx context.Context, id int64) (*model.Prescription, error) {
	query := `
		SELECT prescription_id, appointment_id, date_issued, notes
		FROM prescriptions
		WHERE prescription_id = $1
	`
	var p model.Prescription
	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("prescription")
		}
		return nil, fmt.Errorf("failed to get prescription: %w", err)
	}
	return &p, nil
}

func (r *prescriptionRepository) List(ctx context.Context) ([]*model.Prescription, error) {
	query := `
		SELECT prescription_id, appointment_id, date_issued, notes
		FROM prescriptions
		ORDER BY date_issued DESC
	`
	var ps []*model.Prescription
	err := r.db.SelectContext(ctx, &ps, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions: %w", err)
	}
	return ps, nil
}

func (r *prescriptionRepository) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Prescription, error) {
	query := `
		SELECT prescription_id, appointment_id, date_issued, notes
		FROM prescriptions
		WHERE appointment_id = $1
		ORDER BY date_issued DESC
	`
	var ps []*model.Prescription
	err := r.db.SelectContext(ctx, &ps, query, appointmentID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescriptions for appointment: %w", err)
	}
	return ps, nil
}

func (r *prescriptionRepository) Update(ctx context.Context, p *model.Prescription) error {
	query := `
		UPDATE prescriptions
		SET appointment_id = $1, date_issued = $2, notes = $3
		WHERE prescription_id = $4
	`
	result, err := r.db.ExecContext(ctx, query, p.AppointmentID, p.DateIssued, p.Notes, p.ID)
	if err != nil {
		if mapped := mapConstraintError(err, "prescription"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update prescription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("prescription")
	}

	return nil
}

func (r *prescriptionRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM prescriptions
		WHERE prescription_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if mapped := mapConstraintError(err, "prescription"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete prescription: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("prescription")
	}

	return nil
}

func (r *prescriptionRepository) ExistsForAppointment(ctx context.Context, appointmentID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM prescriptions WHERE appointment_id = $1
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, appointmentID)
	if err != nil {
		return false, fmt.Errorf("failed to check prescriptions for appointment: %w", err)
	}
	return exists, nil
}
