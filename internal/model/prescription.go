package model

import "time"

type Prescription struct {
	ID            int64     `db:"prescription_id" json:"id"`
	AppointmentID int64     `db:"appointment_id" json:"appointment_id"`
	DateIssued    time.Time `db:"date_issued" json:"date_issued"`
	Notes         string    `db:"notes" json:"notes"`
}

// PrescriptionItem has a composite identity: one inventory item per
// prescription. The joined inventory columns are filled on reads.
type PrescriptionItem struct {
	PrescriptionID    int64  `db:"prescription_id" json:"prescription_id"`
	ItemID            int64  `db:"item_id" json:"item_id"`
	DosageInstruction string `db:"dosage_instruction" json:"dosage_instruction"`
	QuantityDispensed int    `db:"quantity_dispensed" json:"quantity_dispensed"`

	ItemName      string  `db:"item_name" json:"item_name,omitempty"`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity,omitempty"`
	UnitPrice     float64 `db:"unit_price" json:"unit_price,omitempty"`
}

type CreatePrescriptionRequest struct {
	AppointmentID int64      `json:"appointment_id" binding:"required"`
	DateIssued    *time.Time `json:"date_issued"`
	Notes         string     `json:"notes"`
}

type CreatePrescriptionItemRequest struct {
	ItemID            int64  `json:"item_id" binding:"required"`
	DosageInstruction string `json:"dosage_instruction" binding:"required"`
	QuantityDispensed int    `json:"quantity_dispensed" binding:"required,gt=0"`
}
