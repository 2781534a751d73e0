package doctor

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/medisys/hospital-api/internal/cache"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

type Service struct {
	repo            repository.DoctorRepository
	appointmentRepo repository.AppointmentRepository
	cache           *cache.EntityCache[*model.Doctor]
}

func NewService(repo repository.DoctorRepository, appointmentRepo repository.AppointmentRepository, c *cache.EntityCache[*model.Doctor]) *Service {
	return &Service{repo: repo, appointmentRepo: appointmentRepo, cache: c}
}

func (s *Service) CreateDoctor(ctx context.Context, doctor *model.Doctor) error {
	if err := validateDoctor(doctor); err != nil {
		return err
	}
	if err := s.checkUniqueness(ctx, doctor, 0); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, doctor); err != nil {
		return fmt.Errorf("failed to create doctor: %w", err)
	}

	s.cache.Clear()
	return nil
}

func (s *Service) GetDoctor(ctx context.Context, id int64) (*model.Doctor, error) {
	if doctor, ok := s.cache.Get(id); ok {
		return doctor, nil
	}

	doctor, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Put(id, doctor)
	return doctor, nil
}

func (s *Service) ListDoctors(ctx context.Context) ([]*model.Doctor, error) {
	doctors, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		s.cache.Put(d.ID, d)
	}
	return doctors, nil
}

// ListDoctorsPaginated returns one page of doctors plus the total count.
func (s *Service) ListDoctorsPaginated(ctx context.Context, limit, offset int) ([]*model.Doctor, int, error) {
	doctors, err := s.repo.ListPaginated(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	for _, d := range doctors {
		s.cache.Put(d.ID, d)
	}
	return doctors, total, nil
}

func (s *Service) FindBySpecialization(ctx context.Context, specialization string) ([]*model.Doctor, error) {
	doctors, err := s.repo.FindBySpecialization(ctx, specialization)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		s.cache.Put(d.ID, d)
	}
	return doctors, nil
}

func (s *Service) FindByDepartment(ctx context.Context, deptID int64) ([]*model.Doctor, error) {
	doctors, err := s.repo.FindByDepartment(ctx, deptID)
	if err != nil {
		return nil, err
	}
	for _, d := range doctors {
		s.cache.Put(d.ID, d)
	}
	return doctors, nil
}

func (s *Service) UpdateDoctor(ctx context.Context, doctor *model.Doctor) error {
	if err := validateDoctor(doctor); err != nil {
		return err
	}
	if err := s.checkUniqueness(ctx, doctor, doctor.ID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, doctor); err != nil {
		return err
	}

	s.cache.Put(doctor.ID, doctor)
	return nil
}

// DeleteDoctor refuses the delete while any of the doctor's appointments has
// a prescription. Appointments without prescriptions cascade with the row.
// The pre-check is best effort; a failed check falls through to the store's
// foreign-key rejection.
func (s *Service) DeleteDoctor(ctx context.Context, id int64) error {
	prescribed, err := s.appointmentRepo.HasPrescribedForDoctor(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("doctor_id", id).Msg("dependency pre-check failed, relying on store constraint")
	} else if prescribed {
		return apperrors.Dependency("doctor has appointments with prescriptions")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(id)
	return nil
}

// checkUniqueness enforces the doctor email rule and the contact-number rule
// shared with patients. excludeID keeps a row being updated from colliding
// with itself.
func (s *Service) checkUniqueness(ctx context.Context, doctor *model.Doctor, excludeID int64) error {
	emailTaken, err := s.repo.EmailExists(ctx, doctor.Email, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check email uniqueness: %w", err)
	}
	if emailTaken {
		return apperrors.Conflict("email", "email is already used by another doctor")
	}

	inDoctors, err := s.repo.ContactExistsInDoctors(ctx, doctor.Phone, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check contact uniqueness: %w", err)
	}
	if inDoctors {
		return apperrors.Conflict("phone", "contact number is already used by another doctor")
	}

	inPatients, err := s.repo.ContactExistsInPatients(ctx, doctor.Phone)
	if err != nil {
		return fmt.Errorf("failed to check contact uniqueness: %w", err)
	}
	if inPatients {
		return apperrors.Conflict("phone", "contact number is already used by a patient")
	}

	return nil
}

func validateDoctor(doctor *model.Doctor) error {
	if strings.TrimSpace(doctor.FirstName) == "" || strings.TrimSpace(doctor.LastName) == "" {
		return apperrors.Validation("first and last name are required")
	}
	if strings.TrimSpace(doctor.Email) == "" {
		return apperrors.ValidationField("email", "email is required")
	}
	if strings.TrimSpace(doctor.Phone) == "" {
		return apperrors.ValidationField("phone", "contact number is required")
	}
	return nil
}
