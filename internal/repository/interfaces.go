package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/medisys/hospital-api/internal/model"
)

type DepartmentRepository interface {
	Create(ctx context.Context, dept *model.Department) error
	Get(ctx context.Context, id int64) (*model.Department, error)
	List(ctx context.Context) ([]*model.Department, error)
	Update(ctx context.Context, dept *model.Department) error
	Delete(ctx context.Context, id int64) error
	CountDoctors(ctx context.Context, deptID int64) (int, error)
}

type DoctorRepository interface {
	Create(ctx context.Context, doctor *model.Doctor) error
	Get(ctx context.Context, id int64) (*model.Doctor, error)
	List(ctx context.Context) ([]*model.Doctor, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]*model.Doctor, error)
	Count(ctx context.Context) (int, error)
	FindBySpecialization(ctx context.Context, specialization string) ([]*model.Doctor, error)
	FindByDepartment(ctx context.Context, deptID int64) ([]*model.Doctor, error)
	Update(ctx context.Context, doctor *model.Doctor) error
	Delete(ctx context.Context, id int64) error
	EmailExists(ctx context.Context, email string, excludeID int64) (bool, error)
	ContactExistsInDoctors(ctx context.Context, phone string, excludeID int64) (bool, error)
	ContactExistsInPatients(ctx context.Context, phone string) (bool, error)
}

type PatientRepository interface {
	Create(ctx context.Context, patient *model.Patient) error
	Get(ctx context.Context, id int64) (*model.Patient, error)
	List(ctx context.Context) ([]*model.Patient, error)
	ListPaginated(ctx context.Context, limit, offset int) ([]*model.Patient, error)
	Count(ctx context.Context) (int, error)
	SearchByLastName(ctx context.Context, lastName string) ([]*model.Patient, error)
	Update(ctx context.Context, patient *model.Patient) error
	Delete(ctx context.Context, id int64) error
	ContactExistsInPatients(ctx context.Context, phone string, excludeID int64) (bool, error)
	ContactExistsInDoctors(ctx context.Context, phone string) (bool, error)
}

type AppointmentRepository interface {
	Create(ctx context.Context, apt *model.Appointment) error
	Get(ctx context.Context, id int64) (*model.Appointment, error)
	List(ctx context.Context) ([]*model.Appointment, error)
	ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error)
	Update(ctx context.Context, apt *model.Appointment) error
	UpdateStatus(ctx context.Context, id int64, status model.AppointmentStatus) error
	Delete(ctx context.Context, id int64) error
	HasPrescribedForDoctor(ctx context.Context, doctorID int64) (bool, error)
	HasPrescribedForPatient(ctx context.Context, patientID int64) (bool, error)
}

type PrescriptionRepository interface {
	Create(ctx context.Context, p *model.Prescription) error
	Get(ctx context.Context, id int64) (*model.Prescription, error)
	List(ctx context.Context) ([]*model.Prescription, error)
	ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Prescription, error)
	Update(ctx context.Context, p *model.Prescription) error
	Delete(ctx context.Context, id int64) error
	ExistsForAppointment(ctx context.Context, appointmentID int64) (bool, error)
}

// PrescriptionItemRepository owns the stock adjustment protocol: creating an
// item decrements the referenced inventory row and deleting it restores the
// stock, both inside a single transaction.
type PrescriptionItemRepository interface {
	CreateWithStockDecrement(ctx context.Context, item *model.PrescriptionItem) error
	Get(ctx context.Context, prescriptionID, itemID int64) (*model.PrescriptionItem, error)
	ListByPrescription(ctx context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error)
	DeleteWithStockRestore(ctx context.Context, prescriptionID, itemID int64) error
	IsItemReferenced(ctx context.Context, itemID int64) (bool, error)
}

type InventoryRepository interface {
	Create(ctx context.Context, item *model.MedicalInventory) error
	Get(ctx context.Context, id int64) (*model.MedicalInventory, error)
	List(ctx context.Context) ([]*model.MedicalInventory, error)
	Update(ctx context.Context, item *model.MedicalInventory) error
	Delete(ctx context.Context, id int64) error
	ItemNameExists(ctx context.Context, name string, excludeID int64) (bool, error)
}

type FeedbackRepository interface {
	Create(ctx context.Context, fb *model.PatientFeedback) error
	Get(ctx context.Context, id int64) (*model.PatientFeedback, error)
	List(ctx context.Context) ([]*model.PatientFeedback, error)
	ListByPatient(ctx context.Context, patientID int64) ([]*model.PatientFeedback, error)
	Update(ctx context.Context, fb *model.PatientFeedback) error
	Delete(ctx context.Context, id int64) error
}

type OutboxRepository interface {
	Create(ctx context.Context, event *model.OutboxEvent) error
	GetPendingEventsWithLock(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status model.OutboxStatus, errMsg *string) error
	DeleteProcessedBefore(ctx context.Context, before time.Time) (int64, error)
}
