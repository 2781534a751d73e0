package prescription

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisys/hospital-api/internal/cache"
	"github.com/medisys/hospital-api/internal/model"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

type itemKey struct {
	prescriptionID int64
	itemID         int64
}

// fakeStore backs both the prescription and prescription-item fakes with one
// shared state, mirroring the gateway contract including the atomic stock
// adjustment: a rejected create leaves stock untouched.
type fakeStore struct {
	prescriptions map[int64]*model.Prescription
	items         map[itemKey]*model.PrescriptionItem
	stock         map[int64]int
	nextID        int64
	listErr       error
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		prescriptions: make(map[int64]*model.Prescription),
		items:         make(map[itemKey]*model.PrescriptionItem),
		stock:         make(map[int64]int),
		nextID:        1,
	}
}

type fakePrescriptionRepo struct{ s *fakeStore }

func (r *fakePrescriptionRepo) Create(_ context.Context, p *model.Prescription) error {
	p.ID = r.s.nextID
	r.s.nextID++
	cp := *p
	r.s.prescriptions[p.ID] = &cp
	return nil
}

func (r *fakePrescriptionRepo) Get(_ context.Context, id int64) (*model.Prescription, error) {
	p, ok := r.s.prescriptions[id]
	if !ok {
		return nil, apperrors.NotFound("prescription")
	}
	cp := *p
	return &cp, nil
}

func (r *fakePrescriptionRepo) List(_ context.Context) ([]*model.Prescription, error) {
	var out []*model.Prescription
	for _, p := range r.s.prescriptions {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePrescriptionRepo) ListByAppointment(_ context.Context, appointmentID int64) ([]*model.Prescription, error) {
	var out []*model.Prescription
	for _, p := range r.s.prescriptions {
		if p.AppointmentID == appointmentID {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePrescriptionRepo) Update(_ context.Context, p *model.Prescription) error {
	if _, ok := r.s.prescriptions[p.ID]; !ok {
		return apperrors.NotFound("prescription")
	}
	cp := *p
	r.s.prescriptions[p.ID] = &cp
	return nil
}

func (r *fakePrescriptionRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.s.prescriptions[id]; !ok {
		return apperrors.NotFound("prescription")
	}
	delete(r.s.prescriptions, id)
	return nil
}

func (r *fakePrescriptionRepo) ExistsForAppointment(_ context.Context, appointmentID int64) (bool, error) {
	for _, p := range r.s.prescriptions {
		if p.AppointmentID == appointmentID {
			return true, nil
		}
	}
	return false, nil
}

type fakeItemRepo struct{ s *fakeStore }

func (r *fakeItemRepo) CreateWithStockDecrement(_ context.Context, item *model.PrescriptionItem) error {
	stock, ok := r.s.stock[item.ItemID]
	if !ok {
		return apperrors.NotFound("inventory item")
	}
	if item.QuantityDispensed > stock {
		return apperrors.Validation(
			fmt.Sprintf("insufficient stock: %d requested, %d available", item.QuantityDispensed, stock),
		)
	}
	cp := *item
	r.s.items[itemKey{item.PrescriptionID, item.ItemID}] = &cp
	r.s.stock[item.ItemID] = stock - item.QuantityDispensed
	return nil
}

func (r *fakeItemRepo) Get(_ context.Context, prescriptionID, itemID int64) (*model.PrescriptionItem, error) {
	item, ok := r.s.items[itemKey{prescriptionID, itemID}]
	if !ok {
		return nil, apperrors.NotFound("prescription item")
	}
	cp := *item
	return &cp, nil
}

func (r *fakeItemRepo) ListByPrescription(_ context.Context, prescriptionID int64) ([]*model.PrescriptionItem, error) {
	if r.s.listErr != nil {
		return nil, r.s.listErr
	}
	var out []*model.PrescriptionItem
	for k, item := range r.s.items {
		if k.prescriptionID == prescriptionID {
			cp := *item
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakeItemRepo) DeleteWithStockRestore(_ context.Context, prescriptionID, itemID int64) error {
	key := itemKey{prescriptionID, itemID}
	item, ok := r.s.items[key]
	if !ok {
		return apperrors.NotFound("prescription item")
	}
	delete(r.s.items, key)
	r.s.stock[itemID] += item.QuantityDispensed
	return nil
}

func (r *fakeItemRepo) IsItemReferenced(_ context.Context, itemID int64) (bool, error) {
	for k := range r.s.items {
		if k.itemID == itemID {
			return true, nil
		}
	}
	return false, nil
}

type fakeAppointmentGetter struct {
	existing map[int64]bool
}

func (f *fakeAppointmentGetter) Get(_ context.Context, id int64) (*model.Appointment, error) {
	if !f.existing[id] {
		return nil, apperrors.NotFound("appointment")
	}
	return &model.Appointment{ID: id, Status: model.AppointmentStatusScheduled}, nil
}

func (f *fakeAppointmentGetter) Create(_ context.Context, _ *model.Appointment) error { return nil }
func (f *fakeAppointmentGetter) List(_ context.Context) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentGetter) ListByDoctor(_ context.Context, _ int64) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentGetter) ListByPatient(_ context.Context, _ int64) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentGetter) Update(_ context.Context, _ *model.Appointment) error { return nil }
func (f *fakeAppointmentGetter) UpdateStatus(_ context.Context, _ int64, _ model.AppointmentStatus) error {
	return nil
}
func (f *fakeAppointmentGetter) Delete(_ context.Context, _ int64) error { return nil }
func (f *fakeAppointmentGetter) HasPrescribedForDoctor(_ context.Context, _ int64) (bool, error) {
	return false, nil
}
func (f *fakeAppointmentGetter) HasPrescribedForPatient(_ context.Context, _ int64) (bool, error) {
	return false, nil
}

func newTestService(s *fakeStore) *Service {
	return NewService(
		&fakePrescriptionRepo{s},
		&fakeItemRepo{s},
		&fakeAppointmentGetter{existing: map[int64]bool{1: true}},
		cache.New[[]*model.PrescriptionItem](time.Minute, time.Minute),
	)
}

func TestCreatePrescriptionDefaultsIssueDate(t *testing.T) {
	s := newFakeStore()
	svc := newTestService(s)

	p := &model.Prescription{AppointmentID: 1}
	require.NoError(t, svc.CreatePrescription(context.Background(), p))
	assert.NotZero(t, p.ID)
	assert.False(t, p.DateIssued.IsZero())
}

func TestCreatePrescriptionUnknownAppointment(t *testing.T) {
	s := newFakeStore()
	svc := newTestService(s)

	err := svc.CreatePrescription(context.Background(), &model.Prescription{AppointmentID: 99})
	assert.True(t, apperrors.IsNotFound(err))
	assert.Empty(t, s.prescriptions)
}

func TestAddItemDecrementsStock(t *testing.T) {
	s := newFakeStore()
	s.stock[10] = 100
	svc := newTestService(s)

	p := &model.Prescription{AppointmentID: 1}
	require.NoError(t, svc.CreatePrescription(context.Background(), p))

	item := &model.PrescriptionItem{
		PrescriptionID:    p.ID,
		ItemID:            10,
		DosageInstruction: "twice daily",
		QuantityDispensed: 10,
	}
	require.NoError(t, svc.AddItem(context.Background(), item))
	assert.Equal(t, 90, s.stock[10])
}

func TestAddItemInsufficientStockLeavesStockUnchanged(t *testing.T) {
	s := newFakeStore()
	s.stock[10] = 5
	svc := newTestService(s)

	p := &model.Prescription{AppointmentID: 1}
	require.NoError(t, svc.CreatePrescription(context.Background(), p))

	err := svc.AddItem(context.Background(), &model.PrescriptionItem{
		PrescriptionID:    p.ID,
		ItemID:            10,
		DosageInstruction: "daily",
		QuantityDispensed: 6,
	})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 5, s.stock[10])
	assert.Empty(t, s.items)
}

func TestAddItemRejectsNonPositiveQuantity(t *testing.T) {
	s := newFakeStore()
	s.stock[10] = 100
	svc := newTestService(s)

	p := &model.Prescription{AppointmentID: 1}
	require.NoError(t, svc.CreatePrescription(context.Background(), p))

	err := svc.AddItem(context.Background(), &model.PrescriptionItem{
		PrescriptionID:    p.ID,
		ItemID:            10,
		QuantityDispensed: 0,
	})
	assert.True(t, apperrors.IsValidation(err))
	assert.Equal(t, 100, s.stock[10])
}

func TestRemoveItemRestoresStock(t *testing.T) {
	s := newFakeStore()
	s.stock[10] = 100
	svc := newTestService(s)

	p := &model.Prescription{AppointmentID: 1}
	require.NoError(t, svc.CreatePrescription(context.Background(), p))
	require.NoError(t, svc.AddItem(context.Background(), &model.PrescriptionItem{
		PrescriptionID:    p.ID,
		ItemID:            10,
		DosageInstruction: "daily",
		QuantityDispensed: 10,
	}))
	require.Equal(t, 90, s.stock[10])

	require.NoError(t, svc.RemoveItem(context.Background(), p.ID, 10))
	assert.Equal(t, 100, s.stock[10])
}

func TestListItemsCachesByPrescription(t *testing.T) {
	s := newFakeStore()
	s.stock[10] = 100
	svc := newTestService(s)

	p := &model.Prescription{AppointmentID: 1}
	require.NoError(t, svc.CreatePrescription(context.Background(), p))
	require.NoError(t, svc.AddItem(context.Background(), &model.PrescriptionItem{
		PrescriptionID:    p.ID,
		ItemID:            10,
		DosageInstruction: "daily",
		QuantityDispensed: 1,
	}))

	items, err := svc.ListItems(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	// A second read is served from the cache even if the gateway fails.
	s.listErr = fmt.Errorf("connection reset")
	items, err = svc.ListItems(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, items, 1)
}

func TestAddItemInvalidatesItemCache(t *testing.T) {
	s := newFakeStore()
	s.stock[10] = 100
	s.stock[11] = 50
	svc := newTestService(s)

	p := &model.Prescription{AppointmentID: 1}
	require.NoError(t, svc.CreatePrescription(context.Background(), p))
	require.NoError(t, svc.AddItem(context.Background(), &model.PrescriptionItem{
		PrescriptionID: p.ID, ItemID: 10, DosageInstruction: "daily", QuantityDispensed: 1,
	}))

	items, err := svc.ListItems(context.Background(), p.ID)
	require.NoError(t, err)
	require.Len(t, items, 1)

	require.NoError(t, svc.AddItem(context.Background(), &model.PrescriptionItem{
		PrescriptionID: p.ID, ItemID: 11, DosageInstruction: "nightly", QuantityDispensed: 1,
	}))

	items, err = svc.ListItems(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestDeletePrescriptionWithItemsRejected(t *testing.T) {
	s := newFakeStore()
	s.stock[10] = 100
	svc := newTestService(s)

	p := &model.Prescription{AppointmentID: 1}
	require.NoError(t, svc.CreatePrescription(context.Background(), p))
	require.NoError(t, svc.AddItem(context.Background(), &model.PrescriptionItem{
		PrescriptionID: p.ID, ItemID: 10, DosageInstruction: "daily", QuantityDispensed: 1,
	}))

	err := svc.DeletePrescription(context.Background(), p.ID)
	assert.True(t, apperrors.IsDependency(err))
	assert.Contains(t, s.prescriptions, p.ID)
}

func TestDeletePrescriptionWithoutItems(t *testing.T) {
	s := newFakeStore()
	svc := newTestService(s)

	p := &model.Prescription{AppointmentID: 1}
	require.NoError(t, svc.CreatePrescription(context.Background(), p))
	require.NoError(t, svc.DeletePrescription(context.Background(), p.ID))
	assert.Empty(t, s.prescriptions)
}
