package appointment

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/medisys/hospital-api/internal/cache"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

// Notifier delivers a confirmation when an appointment is booked. Delivery is
// best effort and never fails the booking.
type Notifier interface {
	AppointmentBooked(ctx context.Context, apt *model.Appointment) error
}

type Service struct {
	repo             repository.AppointmentRepository
	prescriptionRepo repository.PrescriptionRepository
	notifier         Notifier
	cache            *cache.EntityCache[*model.Appointment]
}

func NewService(repo repository.AppointmentRepository, prescriptionRepo repository.PrescriptionRepository, notifier Notifier, c *cache.EntityCache[*model.Appointment]) *Service {
	return &Service{repo: repo, prescriptionRepo: prescriptionRepo, notifier: notifier, cache: c}
}

func (s *Service) CreateAppointment(ctx context.Context, apt *model.Appointment) error {
	if apt.PatientID == 0 || apt.DoctorID == 0 {
		return apperrors.Validation("patient and doctor are required")
	}
	if apt.DateTime.IsZero() {
		return apperrors.ValidationField("date_time", "appointment date is required")
	}
	if apt.DateTime.Before(time.Now()) {
		return apperrors.ValidationField("date_time", "appointment cannot be scheduled in the past")
	}

	apt.Status = model.AppointmentStatusScheduled

	if err := s.repo.Create(ctx, apt); err != nil {
		return fmt.Errorf("failed to create appointment: %w", err)
	}

	s.cache.Clear()

	if s.notifier != nil {
		if err := s.notifier.AppointmentBooked(ctx, apt); err != nil {
			log.Warn().Err(err).Int64("appointment_id", apt.ID).Msg("failed to send appointment confirmation")
		}
	}

	return nil
}

func (s *Service) GetAppointment(ctx context.Context, id int64) (*model.Appointment, error) {
	if apt, ok := s.cache.Get(id); ok {
		return apt, nil
	}

	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Put(id, apt)
	return apt, nil
}

func (s *Service) ListAppointments(ctx context.Context) ([]*model.Appointment, error) {
	apts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, a := range apts {
		s.cache.Put(a.ID, a)
	}
	return apts, nil
}

func (s *Service) ListByDoctor(ctx context.Context, doctorID int64) ([]*model.Appointment, error) {
	return s.repo.ListByDoctor(ctx, doctorID)
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.Appointment, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) UpdateAppointment(ctx context.Context, apt *model.Appointment) error {
	if apt.PatientID == 0 || apt.DoctorID == 0 {
		return apperrors.Validation("patient and doctor are required")
	}
	if apt.DateTime.IsZero() {
		return apperrors.ValidationField("date_time", "appointment date is required")
	}

	current, err := s.repo.Get(ctx, apt.ID)
	if err != nil {
		return err
	}
	apt.Status = current.Status

	if err := s.repo.Update(ctx, apt); err != nil {
		return err
	}

	s.cache.Put(apt.ID, apt)
	return nil
}

// Complete moves a scheduled appointment to Completed. The row is re-read
// from the store inside the call, so a stale cached status cannot let a
// terminal appointment transition again.
func (s *Service) Complete(ctx context.Context, id int64) error {
	return s.transition(ctx, id, model.AppointmentStatusCompleted)
}

// Cancel moves a scheduled appointment to Cancelled.
func (s *Service) Cancel(ctx context.Context, id int64) error {
	return s.transition(ctx, id, model.AppointmentStatusCancelled)
}

func (s *Service) transition(ctx context.Context, id int64, target model.AppointmentStatus) error {
	apt, err := s.repo.Get(ctx, id)
	if err != nil {
		return err
	}

	if apt.Status.IsTerminal() {
		return apperrors.Validation(fmt.Sprintf("appointment is already %s", apt.Status))
	}

	if err := s.repo.UpdateStatus(ctx, id, target); err != nil {
		return err
	}

	apt.Status = target
	s.cache.Put(id, apt)
	return nil
}

// DeleteAppointment refuses the delete while the appointment has an
// associated prescription. Best-effort pre-check, store FK fallback.
func (s *Service) DeleteAppointment(ctx context.Context, id int64) error {
	hasPrescription, err := s.prescriptionRepo.ExistsForAppointment(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("appointment_id", id).Msg("dependency pre-check failed, relying on store constraint")
	} else if hasPrescription {
		return apperrors.Dependency("appointment has an associated prescription")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(id)
	return nil
}
