package inventory

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisys/hospital-api/internal/cache"
	"github.com/medisys/hospital-api/internal/model"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

type fakeInventoryRepo struct {
	items  map[int64]*model.MedicalInventory
	nextID int64
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{items: make(map[int64]*model.MedicalInventory), nextID: 1}
}

func (r *fakeInventoryRepo) Create(_ context.Context, item *model.MedicalInventory) error {
	item.ID = r.nextID
	r.nextID++
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) Get(_ context.Context, id int64) (*model.MedicalInventory, error) {
	item, ok := r.items[id]
	if !ok {
		return nil, apperrors.NotFound("inventory item")
	}
	cp := *item
	return &cp, nil
}

func (r *fakeInventoryRepo) List(_ context.Context) ([]*model.MedicalInventory, error) {
	var out []*model.MedicalInventory
	for _, item := range r.items {
		cp := *item
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeInventoryRepo) Update(_ context.Context, item *model.MedicalInventory) error {
	if _, ok := r.items[item.ID]; !ok {
		return apperrors.NotFound("inventory item")
	}
	cp := *item
	r.items[item.ID] = &cp
	return nil
}

func (r *fakeInventoryRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.items[id]; !ok {
		return apperrors.NotFound("inventory item")
	}
	delete(r.items, id)
	return nil
}

func (r *fakeInventoryRepo) ItemNameExists(_ context.Context, name string, excludeID int64) (bool, error) {
	for _, item := range r.items {
		if item.ID != excludeID && strings.EqualFold(item.ItemName, name) {
			return true, nil
		}
	}
	return false, nil
}

type fakeItemChecker struct {
	referenced map[int64]bool
	checkErr   error
}

func (f *fakeItemChecker) IsItemReferenced(_ context.Context, itemID int64) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.referenced[itemID], nil
}

func (f *fakeItemChecker) CreateWithStockDecrement(_ context.Context, _ *model.PrescriptionItem) error {
	return nil
}
func (f *fakeItemChecker) Get(_ context.Context, _, _ int64) (*model.PrescriptionItem, error) {
	return nil, apperrors.NotFound("prescription item")
}
func (f *fakeItemChecker) ListByPrescription(_ context.Context, _ int64) ([]*model.PrescriptionItem, error) {
	return nil, nil
}
func (f *fakeItemChecker) DeleteWithStockRestore(_ context.Context, _, _ int64) error { return nil }

func newTestService(repo *fakeInventoryRepo, checker *fakeItemChecker) *Service {
	if checker == nil {
		checker = &fakeItemChecker{referenced: make(map[int64]bool)}
	}
	return NewService(repo, checker, cache.New[*model.MedicalInventory](time.Minute, time.Minute))
}

func validItem() *model.MedicalInventory {
	return &model.MedicalInventory{ItemName: "Paracetamol 500mg", StockQuantity: 100, UnitPrice: 0.25}
}

func TestCreateItem(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := newTestService(repo, nil)

	item := validItem()
	require.NoError(t, svc.CreateItem(context.Background(), item))
	assert.NotZero(t, item.ID)
}

func TestCreateItemNegativeStock(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := newTestService(repo, nil)

	item := validItem()
	item.StockQuantity = -5
	err := svc.CreateItem(context.Background(), item)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, repo.items)
}

func TestCreateItemDuplicateNameCaseInsensitive(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := newTestService(repo, nil)

	require.NoError(t, svc.CreateItem(context.Background(), validItem()))

	dup := validItem()
	dup.ItemName = "PARACETAMOL 500MG"
	err := svc.CreateItem(context.Background(), dup)
	assert.True(t, apperrors.IsConflict(err))
	assert.Len(t, repo.items, 1)
}

func TestUpdateItemKeepsOwnName(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := newTestService(repo, nil)

	item := validItem()
	require.NoError(t, svc.CreateItem(context.Background(), item))

	item.UnitPrice = 0.30
	require.NoError(t, svc.UpdateItem(context.Background(), item))
	assert.Equal(t, 0.30, repo.items[item.ID].UnitPrice)
}

func TestUpdateItemNameTakenByOther(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := newTestService(repo, nil)

	first := validItem()
	require.NoError(t, svc.CreateItem(context.Background(), first))

	second := validItem()
	second.ItemName = "Ibuprofen 200mg"
	require.NoError(t, svc.CreateItem(context.Background(), second))

	second.ItemName = "Paracetamol 500mg"
	err := svc.UpdateItem(context.Background(), second)
	assert.True(t, apperrors.IsConflict(err))
}

func TestDeleteItemReferencedByPrescriptionRejected(t *testing.T) {
	repo := newFakeInventoryRepo()
	checker := &fakeItemChecker{referenced: make(map[int64]bool)}
	svc := newTestService(repo, checker)

	item := validItem()
	require.NoError(t, svc.CreateItem(context.Background(), item))
	checker.referenced[item.ID] = true

	err := svc.DeleteItem(context.Background(), item.ID)
	assert.True(t, apperrors.IsDependency(err))
	assert.Contains(t, repo.items, item.ID)
}

func TestDeleteItemUnreferenced(t *testing.T) {
	repo := newFakeInventoryRepo()
	svc := newTestService(repo, nil)

	item := validItem()
	require.NoError(t, svc.CreateItem(context.Background(), item))

	require.NoError(t, svc.DeleteItem(context.Background(), item.ID))
	assert.Empty(t, repo.items)
}

func TestGetItemServedFromCache(t *testing.T) {
	repo := newFakeInventoryRepo()
	c := cache.New[*model.MedicalInventory](time.Minute, time.Minute)
	svc := NewService(repo, &fakeItemChecker{referenced: make(map[int64]bool)}, c)

	item := validItem()
	require.NoError(t, svc.CreateItem(context.Background(), item))

	_, err := svc.GetItem(context.Background(), item.ID)
	require.NoError(t, err)

	// A cache hit never touches the store.
	delete(repo.items, item.ID)
	got, err := svc.GetItem(context.Background(), item.ID)
	require.NoError(t, err)
	assert.Equal(t, "Paracetamol 500mg", got.ItemName)
}
