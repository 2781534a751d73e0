package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/medisys/hospital-api/pkg/errors"

	"github.com/medisys/hospital-api/internal/model"
)

func (r *feedbackRepository) Create(ctx context.Context, fb *model.PatientFeedback) error {
	query := `
		INSERT INTO patient_feedback (patient_id, rating, comments, feedback_date)
		VALUES ($1, $2, $3, $4)
		RETURNING feedback_id
	`
	err := r.db.GetContext(ctx, &fb.ID, query, fb.PatientID, fb.Rating, fb.Comments, fb.FeedbackDate)
	if err != nil {
		if mapped := mapConstraintError(err, "feedback"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create feedback: %w", err)
	}
	return nil
}

func (r *feedbackRepository) Get(ctx context.Context, id int64) (*model.PatientFeedback, error) {
	query := `
		SELECT feedback_id, patient_id, rating, comments, feedback_date
		FROM patient_feedback
		WHERE feedback_id = $1
	`
	var fb model.PatientFeedback
	err := r.db.GetContext(ctx, &fb, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("feedback")
		}
		return nil, fmt.Errorf("failed to get feedback: %w", err)
	}
	return &fb, nil
}

func (r *feedbackRepository) List(ctx context.Context) ([]*model.PatientFeedback, error) {
	query := `
		SELECT feedback_id, patient_id, rating, comments, feedback_date
		FROM patient_feedback
		ORDER BY feedback_date DESC
	`
	var fbs []*model.PatientFeedback
	err := r.db.SelectContext(ctx, &fbs, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list feedback: %w", err)
	}
	return fbs, nil
}

func (r *feedbackRepository) ListByPatient(ctx context.Context, patientID int64) ([]*model.PatientFeedback, error) {
	query := `
		SELECT feedback_id, patient_id, rating, comments, feedback_date
		FROM patient_feedback
		WHERE patient_id = $1
		ORDER BY feedback_date DESC
	`
	var fbs []*model.PatientFeedback
	err := r.db.SelectContext(ctx, &fbs, query, patientID)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient feedback: %w", err)
	}
	return fbs, nil
}

func (r *feedbackRepository) Update(ctx context.Context, fb *model.PatientFeedback) error {
	query := `
		UPDATE patient_feedback
		SET rating = $1, comments = $2
		WHERE feedback_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, fb.Rating, fb.Comments, fb.ID)
	if err != nil {
		return fmt.Errorf("failed to update feedback: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("feedback")
	}

	return nil
}

func (r *feedbackRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM patient_feedback
		WHERE feedback_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete feedback: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("feedback")
	}

	return nil
}
