package model

type Department struct {
	ID          int64  `db:"dept_id" json:"id"`
	Name        string `db:"dept_name" json:"name"`
	FloorNumber int    `db:"location_floor" json:"floor_number"`
}

type CreateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	FloorNumber int    `json:"floor_number" binding:"min=0"`
}

type UpdateDepartmentRequest struct {
	Name        string `json:"name" binding:"required"`
	FloorNumber int    `json:"floor_number" binding:"min=0"`
}
