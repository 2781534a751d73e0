package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/medisys/hospital-api/pkg/errors"

	"github.com/medisys/hospital-api/internal/model"
)

func (r *departmentRepository) Create(ctx context.Context, dept *model.Department) error {
	query := `
		INSERT INTO departments (dept_name, location_floor)
		VALUES ($1, $2)
		RETURNING dept_id
	`
	err := r.db.GetContext(ctx, &dept.ID, query, dept.Name, dept.FloorNumber)
	if err != nil {
		if mapped := mapConstraintError(err, "department"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create department: %w", err)
	}
	return nil
}

func (r *departmentRepository) Get(ctx context.Context, id int64) (*model.Department, error) {
	query := `
		SELECT dept_id, dept_name, location_floor
		FROM departments
		WHERE dept_id = $1
	`
	var dept model.Department
	err := r.db.GetContext(ctx, &dept, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("department")
		}
		return nil, fmt.Errorf("failed to get department: %w", err)
	}
	return &dept, nil
}

func (r *departmentRepository) List(ctx context.Context) ([]*model.Department, error) {
	query := `
		SELECT dept_id, dept_name, location_floor
		FROM departments
		ORDER BY dept_name ASC
	`
	var depts []*model.Department
	err := r.db.SelectContext(ctx, &depts, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list departments: %w", err)
	}
	return depts, nil
}

func (r *departmentRepository) Update(ctx context.Context, dept *model.Department) error {
	query := `
		UPDATE departments
		SET dept_name = $1, location_floor = $2
		WHERE dept_id = $3
	`
	result, err := r.db.ExecContext(ctx, query, dept.Name, dept.FloorNumber, dept.ID)
	if err != nil {
		return fmt.Errorf("failed to update department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("department")
	}

	return nil
}

func (r *departmentRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM departments
		WHERE dept_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if mapped := mapConstraintError(err, "department"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete department: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("department")
	}

	return nil
}

func (r *departmentRepository) CountDoctors(ctx context.Context, deptID int64) (int, error) {
	query := `
		SELECT COUNT(*) FROM doctors WHERE dept_id = $1
	`
	var count int
	err := r.db.GetContext(ctx, &count, query, deptID)
	if err != nil {
		return 0, fmt.Errorf("failed to count doctors in department: %w", err)
	}
	return count, nil
}
