package inventory

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
	repo     repository.InventoryRepository
	itemRepo repository.PrescriptionItemRepository
	cache    *cache.EntityCache[*model.MedicalInventory]
}

func NewService(repo repository.InventoryRepository, itemRepo repository.PrescriptionItemRepository, c *cache.EntityCache[*model.MedicalInventory]) *Service {
	return &Service{repo: repo, itemRepo: itemRepo, cache: c}
}

func (s *Service) CreateItem(ctx context.Context, item *model.MedicalInventory) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.checkNameUnique(ctx, item.ItemName, 0); err != nil {
		return err
	}

	if err := s.repo.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to create inventory item: %w", err)
	}

	s.cache.Clear()
	return nil
}

func (s *Service) GetItem(ctx context.Context, id int64) (*model.MedicalInventory, error) {
	if item, ok := s.cache.Get(id); ok {
		return item, nil
	}

	item, err := s.repo.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	s.cache.Put(id, item)
	return item, nil
}

func (s *Service) ListItems(ctx context.Context) ([]*model.MedicalInventory, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	for _, item := range items {
		s.cache.Put(item.ID, item)
	}
	return items, nil
}

// UpdateItem overwrites all mutable fields. Updating an item to its own
// unchanged name succeeds because the uniqueness check excludes the item's id.
func (s *Service) UpdateItem(ctx context.Context, item *model.MedicalInventory) error {
	if err := validateItem(item); err != nil {
		return err
	}
	if err := s.checkNameUnique(ctx, item.ItemName, item.ID); err != nil {
		return err
	}

	if err := s.repo.Update(ctx, item); err != nil {
		return err
	}

	s.cache.Put(item.ID, item)
	return nil
}

// DeleteItem refuses the delete while any prescription line item references
// the inventory row. Best-effort pre-check, store FK fallback.
func (s *Service) DeleteItem(ctx context.Context, id int64) error {
	referenced, err := s.itemRepo.IsItemReferenced(ctx, id)
	if err != nil {
		log.Warn().Err(err).Int64("item_id", id).Msg("dependency pre-check failed, relying on store constraint")
	} else if referenced {
		return apperrors.Dependency("inventory item is referenced by prescription items")
	}

	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}

	s.cache.Invalidate(id)
	return nil
}

func (s *Service) checkNameUnique(ctx context.Context, name string, excludeID int64) error {
	exists, err := s.repo.ItemNameExists(ctx, name, excludeID)
	if err != nil {
		return fmt.Errorf("failed to check item name uniqueness: %w", err)
	}
	if exists {
		return apperrors.Conflict("item_name", "an inventory item with this name already exists")
	}
	return nil
}

func validateItem(item *model.MedicalInventory) error {
	if strings.TrimSpace(item.ItemName) == "" {
		return apperrors.ValidationField("item_name", "item name is required")
	}
	if item.StockQuantity < 0 {
		return apperrors.ValidationField("stock_quantity", "stock quantity cannot be negative")
	}
	if item.UnitPrice < 0 {
		return apperrors.ValidationField("unit_price", "unit price cannot be negative")
	}
	return nil
}
