package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	apperrors "github.com/medisys/hospital-api/pkg/errors"

	"github.com/medisys/hospital-api/internal/model"
)

func (r *inventoryRepository) Create(ctx context.Context, item *model.MedicalInventory) error {
	query := `
		INSERT INTO medical_inventory (item_name, stock_quantity, unit_price)
		VALUES ($1, $2, $3)
		RETURNING item_id
	`
	err := r.db.GetContext(ctx, &item.ID, query, item.ItemName, item.StockQuantity, item.UnitPrice)
	if err != nil {
		if mapped := mapConstraintError(err, "inventory item"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to create inventory item: %w", err)
	}
	return nil
}

func (r *inventoryRepository) Get(ctx context.Context, id int64) (*model.MedicalInventory, error) {
	query := `
		SELECT item_id, item_name, stock_quantity, unit_price
		FROM medical_inventory
		WHERE item_id = $1
	`
	var item model.MedicalInventory
	err := r.db.GetContext(ctx, &item, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("inventory item")
		}
		return nil, fmt.Errorf("failed to get inventory item: %w", err)
	}
	return &item, nil
}

func (r *inventoryRepository) List(ctx context.Context) ([]*model.MedicalInventory, error) {
	query := `
		SELECT item_id, item_name, stock_quantity, unit_price
		FROM medical_inventory
		ORDER BY item_name ASC
	`
	var items []*model.MedicalInventory
	err := r.db.SelectContext(ctx, &items, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

func (r *inventoryRepository) Update(ctx context.Context, item *model.MedicalInventory) error {
	query := `
		UPDATE medical_inventory
		SET item_name = $1, stock_quantity = $2, unit_price = $3
		WHERE item_id = $4
	`
	result, err := r.db.ExecContext(ctx, query, item.ItemName, item.StockQuantity, item.UnitPrice, item.ID)
	if err != nil {
		if mapped := mapConstraintError(err, "inventory item"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to update inventory item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("inventory item")
	}

	return nil
}

func (r *inventoryRepository) Delete(ctx context.Context, id int64) error {
	query := `
		DELETE FROM medical_inventory
		WHERE item_id = $1
	`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		if mapped := mapConstraintError(err, "inventory item"); mapped != err {
			return mapped
		}
		return fmt.Errorf("failed to delete inventory item: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return apperrors.NotFound("inventory item")
	}

	return nil
}

func (r *inventoryRepository) ItemNameExists(ctx context.Context, name string, excludeID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM medical_inventory
			WHERE LOWER(item_name) = LOWER($1) AND item_id != $2
		)
	`
	var exists bool
	err := r.db.GetContext(ctx, &exists, query, name, excludeID)
	if err != nil {
		return false, fmt.Errorf("failed to check inventory item name: %w", err)
	}
	return exists, nil
}
