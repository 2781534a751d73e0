package model

type Doctor struct {
	ID             int64  `db:"doctor_id" json:"id"`
	FirstName      string `db:"first_name" json:"first_name"`
	LastName       string `db:"last_name" json:"last_name"`
	Email          string `db:"email" json:"email"`
	Specialization string `db:"specialization" json:"specialization"`
	Phone          string `db:"phone" json:"phone"`
	DepartmentID   *int64 `db:"dept_id" json:"department_id,omitempty"`
}

type CreateDoctorRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Specialization string `json:"specialization" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	DepartmentID   *int64 `json:"department_id"`
}

type UpdateDoctorRequest struct {
	FirstName      string `json:"first_name" binding:"required"`
	LastName       string `json:"last_name" binding:"required"`
	Email          string `json:"email" binding:"required,email"`
	Specialization string `json:"specialization" binding:"required"`
	Phone          string `json:"phone" binding:"required"`
	DepartmentID   *int64 `json:"department_id"`
}
