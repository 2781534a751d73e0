package patient

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medisys/hospital-api/internal/cache"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

type Service struct {
	repo            repository.PatientRepository
	appointmentRepo repository.AppointmentRepository
	cache           *cache.EntityCache[*model.Patient]
}

func NewService(repo repository.PatientRepository, appointmentRepo repository.AppointmentRepository, c *cache.EntityCache[*model.Patient]) *Service {
	return &Service{repo: repo, appointmentRepo: appointmentRepo, cache: c}
}

func (s *Service) CreatePatient(ctx context.Context, patient *model.Patient) error {
	if err := validatePatient(patient); err != nil {
		return err
	}
	if err := s.checkContactUnique(ctx, patient.Phone, 0); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, patient); err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}

	s.cache.Clear()
	return nil
}

func (s *Service) GetPatient(ctx context.Context, id int64) (*model.Patient, error) {
	if patient, ok := s.cache.Get(id); ok {
		return patient, nil
	}

	patient, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Put(id, patient)
	return patient, nil
}

func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, p := range patients {
		s.cache.Put(p.ID, p)
	}
	return patients, nil
}

func (s *Service) ListPatientsPaginated(ctx context.Context, limit, offset int) ([]*model.Patient, int, error) {
	patients, err := s.repo.ListPaginated(ctx, limit, offset)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.repo.Count(ctx)
	if err != nil {
		return nil, 0, err
	}

	for _, p := range patients {
		s.cache.Put(p.ID, p)
	}
	return patients, total, nil
}

func (s *Service) SearchByLastName(ctx context.Context, lastName string) ([]*model.Patient, error) {
	patients, err := s.repo.SearchByLastName(ctx, lastName)
	if err != nil {
		return nil, err
	}
	for _, p := range patients {
		s.cache.Put(p.ID, p)
	}
	return patients, nil
}

func (s *Service) UpdatePatient(ctx context.Context, patient *model.Patient) error {
	if err := validatePatient(patient); err != nil {
		return err
	}
	if err := s.checkContactUnique(ctx, patient.Phone, patient.ID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, patient); err != nil {
		return err
	}

	s.cache.Put(patient.ID, patient)
	return nil
}

// DeletePatient refuses the delete while any of the patient's appointments
// has a prescription; unprescribed appointments cascade. Best-effort
// pre-check with the store's foreign-key rejection as fallback.
func (s *Service) DeletePatient(ctx context.Context, id int64) error {
	prescribed, err := s.appointmentRepo.HasPrescribedForPatient(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("patient_id", id).Msg("dependency pre-check failed, relying on store constraint")
	} else if prescribed {
		return apperrors.Dependency("patient has appointments with prescriptions")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(id)
	return nil
}

// checkContactUnique enforces the contact-number namespace shared between
// patients and doctors.
func (s *Service) checkContactUnique(ctx context.Context, phone string, excludeID int64) error {
	inPatients, err := s.repo.ContactExistsInPatients(ctx, phone, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check contact uniqueness: %w", err)
	}
	if inPatients {
		return apperrors.Conflict("phone", "contact number is already used by another patient")
	}

	inDoctors, err := s.repo.ContactExistsInDoctors(ctx, phone)
	if err != nil {
		return fmt.Errorf("failed to check contact uniqueness: %w", err)
	}
	if inDoctors {
		return apperrors.Conflict("phone", "contact number is already used by a doctor")
	}

	return nil
}

func validatePatient(patient *model.Patient) error {
	if strings.TrimSpace(patient.FirstName) == "" || strings.TrimSpace(patient.LastName) == "" {
		return apperrors.Validation("first and last name are required")
	}
	if patient.DateOfBirth.IsZero() {
		return apperrors.ValidationField("date_of_birth", "date of birth is required")
	}
	if patient.DateOfBirth.After(time.Now()) {
		return apperrors.ValidationField("date_of_birth", "date of birth cannot be in the future")
	}
	if strings.TrimSpace(patient.Phone) == "" {
		return apperrors.ValidationField("phone", "contact number is required")
	}
	return nil
}
