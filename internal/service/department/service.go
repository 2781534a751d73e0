package department

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
	repo  repository.DepartmentRepository
	cache *cache.EntityCache[*model.Department]
}

func NewService(repo repository.DepartmentRepository, c *cache.EntityCache[*model.Department]) *Service {
	return &Service{repo: repo, cache: c}
}

func (s *Service) CreateDepartment(ctx context.Context, dept *model.Department) error {
	if err := validateDepartment(dept); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, dept); err != nil {
		return fmt.Errorf("failed to create department: %w", err)
	}

	// The store assigned the id, so any cached snapshots may be stale.
	s.cache.Clear()
	return nil
}

func (s *Service) GetDepartment(ctx context.Context, id int64) (*model.Department, error) {
	if dept, ok := s.cache.Get(id); ok {
		return dept, nil
	}

	dept, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Put(id, dept)
	return dept, nil
}

func (s *Service) ListDepartments(ctx context.Context) ([]*model.Department, error) {
	depts, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, d := range depts {
		s.cache.Put(d.ID, d)
	}
	return depts, nil
}

func (s *Service) UpdateDepartment(ctx context.Context, dept *model.Department) error {
	if err := validateDepartment(dept); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, dept); err != nil {
		return err
	}

	s.cache.Put(dept.ID, dept)
	return nil
}

// DeleteDepartment refuses to delete while any doctor references the
// department. The pre-check is best effort: if it fails, the delete is
// attempted anyway and the store's foreign-key constraint is the fallback.
func (s *Service) DeleteDepartment(ctx context.Context, id int64) error {
	count, err := s.repo.CountDoctors(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("dept_id", id).Msg("dependency pre-check failed, relying on store constraint")
	} else if count > 0 {
		return apperrors.Dependency(fmt.Sprintf("department has %d assigned doctor(s)", count))
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(id)
	return nil
}

func validateDepartment(dept *model.Department) error {
	if strings.TrimSpace(dept.Name) == "" {
		return apperrors.ValidationField("name", "department name is required")
	}
	if dept.FloorNumber < 0 {
		return apperrors.ValidationField("floor_number", "floor number cannot be negative")
	}
	return nil
}
