package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	apperrors "github.com/medisys/hospital-api/pkg/errors"

	"github.com/medisys/hospital-api/internal/model"
)

// CreateWithStockDecrement inserts the prescription item and decrements the
// referenced inventory row's stock in one transaction. The inventory row is
// locked for the duration, so the stock check and the write cannot race.
func (r *prescriptionItemRepository) CreateWithStockDecrement(ctx context.Context, item *model.PrescriptionItem) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var stock int
		err := tx.GetContext(ctx, &stock,
			`SELECT stock_quantity FROM medical_inventory WHERE item_id = $1 FOR UPDATE`,
			item.ItemID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("inventory item")
			}
			return fmt.Errorf("failed to read inventory stock: %w", err)
		}

		if item.QuantityDispensed > stock {
			return apperrors.Validation(
				fmt.Sprintf("insufficient stock: %d requested, %d available", item.QuantityDispensed, stock),
			)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO prescription_items (prescription_id, item_id, dosage_instruction, quantity_dispensed)
			 VALUES ($1, $2, $3, $4)`,
			item.PrescriptionID,
			item.ItemID,
			item.DosageInstruction,
			item.QuantityDispensed,
		)
		if err != nil {
			if mapped := mapConstraintError(err, "prescription item"); mapped != err {
				return mapped
			}
			return fmt.Errorf("failed to create prescription item: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE medical_inventory SET stock_quantity = stock_quantity - $1 WHERE item_id = $2`,
			item.QuantityDispensed,
			item.ItemID,
		)
		if err != nil {
			return fmt.Errorf("failed to decrement stock: %w", err)
		}

		return nil
	})
}

func (r *prescriptionItemRepository) Get(ctx context.Context, prescriptionID, itemID int64) (*model.PrescriptionItem, error) {
	query := `
		SELECT pi.prescription_id, pi.item_id, pi.dosage_instruction, pi.quantity_dispensed,
		       mi.item_name, mi.stock_quantity, mi.unit_price
		FROM prescription_items pi
		JOIN medical_inventory mi ON pi.item_id = mi.item_id
		WHERE pi.prescription_id = $1 AND pi.item_id = $2
	`
	var item model.PrescriptionItem
	err := r.GetDB().GetContext(ctx, &item, query, prescriptionID, itemID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, apperrors.NotFound("prescription item")
		}
		return nil, fmt.Errorf("failed to get prescription item: %w", err)
	}
	return &item, nil
}

func (r *prescriptionItemRepository) ListByPrescription(ctx context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error) {
	query := `
		SELECT pi.prescription_id, pi.item_id, pi.dosage_instruction, pi.quantity_dispensed,
		       mi.item_name, mi.stock_quantity, mi.unit_price
		FROM prescription_items pi
		JOIN medical_inventory mi ON pi.item_id = mi.item_id
		WHERE pi.prescription_id = $1
		ORDER BY mi.item_name ASC
	`
	var items []*model.PrescriptionItem
	err := r.GetDB().SelectContext(ctx, &items, query, prescriptionID)
	if err != nil {
		return nil, fmt.Errorf("failed to list prescription items: %w", err)
	}
	return items, nil
}

// DeleteWithStockRestore removes the prescription item and adds its dispensed
// quantity back to the inventory row, in one transaction. The restore is
// unconditional: there is no upper bound to check against.
func (r *prescriptionItemRepository) DeleteWithStockRestore(ctx context.Context, prescriptionID, itemID int64) error {
	return r.WithTx(ctx, func(tx *sqlx.Tx) error {
		var qty int
		err := tx.GetContext(ctx, &qty,
			`SELECT quantity_dispensed FROM prescription_items
			 WHERE prescription_id = $1 AND item_id = $2 FOR UPDATE`,
			prescriptionID, itemID,
		)
		if err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return apperrors.NotFound("prescription item")
			}
			return fmt.Errorf("failed to read prescription item: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`DELETE FROM prescription_items WHERE prescription_id = $1 AND item_id = $2`,
			prescriptionID, itemID,
		)
		if err != nil {
			return fmt.Errorf("failed to delete prescription item: %w", err)
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE medical_inventory SET stock_quantity = stock_quantity + $1 WHERE item_id = $2`,
			qty, itemID,
		)
		if err != nil {
			return fmt.Errorf("failed to restore stock: %w", err)
		}

		return nil
	})
}

func (r *prescriptionItemRepository) IsItemReferenced(ctx context.Context, itemID int64) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM prescription_items WHERE item_id = $1
		)
	`
	var exists bool
	err := r.GetDB().GetContext(ctx, &exists, query, itemID)
	if err != nil {
		return false, fmt.Errorf("failed to check prescription item references: %w", err)
	}
	return exists, nil
}
