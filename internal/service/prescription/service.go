package prescription

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

// Service manages prescriptions and their line items, including the stock
// adjustment protocol against medical inventory. One appointment may carry
// any number of prescriptions.
type Service struct {
	repo            repository.PrescriptionRepository
	itemRepo        repository.PrescriptionItemRepository
	appointmentRepo repository.AppointmentRepository

	// itemCache maps a prescription id to its last-loaded line items.
	itemCache *cache.EntityCache[[]*model.PrescriptionItem]
}

func NewService(
	repo repository.PrescriptionRepository,
	itemRepo repository.PrescriptionItemRepository,
	appointmentRepo repository.AppointmentRepository,
	itemCache *cache.EntityCache[[]*model.PrescriptionItem],
) *Service {
	return &Service{
		repo:            repo,
		itemRepo:        itemRepo,
		appointmentRepo: appointmentRepo,
		itemCache:       itemCache,
	}
}

func (s *Service) CreatePrescription(ctx context.Context, p *model.Prescription) error {
	if p.AppointmentID == 0 {
		return apperrors.ValidationField("appointment_id", "appointment is required")
	}
	if p.DateIssued.IsZero() {
		p.DateIssued = time.Now()
	}

	if _, err := s.appointmentRepo.Get(ctx, p.AppointmentID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return fmt.Errorf("failed to create prescription: %w", err)
	}
	return nil
}

func (s *Service) GetPrescription(ctx context.Context, id int64) (*model.Prescription, error) {
	return s.repo.Get(ctx, id)
}

func (s *Service) ListPrescriptions(ctx context.Context) ([]*model.Prescription, error) {
	return s.repo.List(ctx)
}

func (s *Service) ListByAppointment(ctx context.Context, appointmentID int64) ([]*model.Prescription, error) {
	return s.repo.ListByAppointment(ctx, appointmentID)
}

func (s *Service) UpdatePrescription(ctx context.Context, p *model.Prescription) error {
	if p.AppointmentID == 0 {
		return apperrors.ValidationField("appointment_id", "appointment is required")
	}
	return s.repo.Update(ctx, p)
}

// DeletePrescription refuses the delete while line items exist: removing the
// prescription underneath them would strand the stock they dispensed.
func (s *Service) DeletePrescription(ctx context.Context, id int64) error {
	items, err := s.itemRepo.ListByPrescription(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("prescription_id", id).Msg("dependency pre-check failed, relying on store constraint")
	} else if len(items) > 0 {
		return apperrors.Dependency("prescription has dispensed line items")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.itemCache.Invalidate(id)
	return nil
}

// AddItem dispenses an inventory item against a prescription. The quantity
// check, the item insert, and the stock decrement run atomically in the
// persistence gateway; the service never trusts a cached stock value here.
func (s *Service) AddItem(ctx context.Context, item *model.PrescriptionItem) error {
	if item.PrescriptionID == 0 || item.ItemID == 0 {
		return apperrors.Validation("prescription and inventory item are required")
	}
	if item.QuantityDispensed <= 0 {
		return apperrors.ValidationField("quantity_dispensed", "quantity must be greater than zero")
	}

	if _, err := s.repo.Get(ctx, item.PrescriptionID); err != nil {
		return err
	}

	if err := s.itemRepo.CreateWithStockDecrement(ctx, item); err != nil {
		return err
	}

	s.itemCache.Invalidate(item.PrescriptionID)
	return nil
}

func (s *Service) ListItems(ctx context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error) {
	if items, ok := s.itemCache.Get(prescriptionID); ok {
		return items, nil
	}

	items, err := s.itemRepo.ListByPrescription(ctx, prescriptionID)
	if err != nil {
		return nil, err
	}

	s.itemCache.Put(prescriptionID, items)
	return items, nil
}

// RemoveItem deletes a line item and restores its dispensed quantity to
// inventory, atomically.
func (s *Service) RemoveItem(ctx context.Context, prescriptionID, itemID int64) error {
	if err := s.itemRepo.DeleteWithStockRestore(ctx, prescriptionID, itemID); err != nil {
		return err
	}

	s.itemCache.Invalidate(prescriptionID)
	return nil
}

// HasPrescriptionForAppointment backs the appointment delete guard.
func (s *Service) HasPrescriptionForAppointment(ctx context.Context, appointmentID int64) (bool, error) {
	return s.repo.ExistsForAppointment(ctx, appointmentID)
}
