package model

type MedicalInventory struct {
	ID            int64   `db:"item_id" json:"id"`
	ItemName      string  `db:"item_name" json:"item_name"`
	StockQuantity int     `db:"stock_quantity" json:"stock_quantity"`
	UnitPrice     float64 `db:"unit_price" json:"unit_price"`
}

type CreateInventoryItemRequest struct {
	ItemName      string  `json:"item_name" binding:"required"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
	UnitPrice     float64 `json:"unit_price" binding:"min=0"`
}

type UpdateInventoryItemRequest struct {
	ItemName      string  `json:"item_name" binding:"required"`
	StockQuantity int     `json:"stock_quantity" binding:"min=0"`
	UnitPrice     float64 `json:"unit_price" binding:"min=0"`
}
