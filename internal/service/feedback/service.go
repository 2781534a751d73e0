package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/medisys/hospital-api/internal/cache"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

type Service struct {
	repo        repository.FeedbackRepository
	patientRepo repository.PatientRepository
	cache       *cache.EntityCache[*model.PatientFeedback]
}

func NewService(repo repository.FeedbackRepository, patientRepo repository.PatientRepository, c *cache.EntityCache[*model.PatientFeedback]) *Service {
	return &Service{repo: repo, patientRepo: patientRepo, cache: c}
}

func (s *Service) CreateFeedback(ctx context.Context, fb *model.PatientFeedback) error {
	if err := validateFeedback(fb); err != nil {
		return err
	}
	if fb.FeedbackDate.IsZero() {
		fb.FeedbackDate = time.Now()
	}

	if _, err := s.patientRepo.Get(ctx, fb.PatientID); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, fb); err != nil {
		return fmt.Errorf("failed to create feedback: %w", err)
	}

	s.cache.Clear()
	return nil
}

func (s *Service) GetFeedback(ctx context.Context, id int64) (*model.PatientFeedback, error) {
	if fb, ok := s.cache.Get(id); ok {
		return fb, nil
	}

	fb, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Put(id, fb)
	return fb, nil
}

func (s *Service) ListFeedback(ctx context.Context) ([]*model.PatientFeedback, error) {
	fbs, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, fb := range fbs {
		s.cache.Put(fb.ID, fb)
	}
	return fbs, nil
}

func (s *Service) ListByPatient(ctx context.Context, patientID int64) ([]*model.PatientFeedback, error) {
	return s.repo.ListByPatient(ctx, patientID)
}

func (s *Service) UpdateFeedback(ctx context.Context, fb *model.PatientFeedback) error {
	if err := validateFeedback(fb); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, fb); err != nil {
		return err
	}

	s.cache.Put(fb.ID, fb)
	return nil
}

func (s *Service) DeleteFeedback(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(id)
	return nil
}

func validateFeedback(fb *model.PatientFeedback) error {
	if fb.PatientID == 0 {
		return apperrors.ValidationField("patient_id", "patient is required")
	}
	if fb.Rating < 1 || fb.Rating > 5 {
		return apperrors.ValidationField("rating", "rating must be between 1 and 5")
	}
	return nil
}
