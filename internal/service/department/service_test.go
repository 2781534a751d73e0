package department

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

type fakeDepartmentRepo struct {
	departments  map[int64]*model.Department
	doctorCounts map[int64]int
	countErr     error
	nextID       int64
}

func newFakeDepartmentRepo() *fakeDepartmentRepo {
	return &fakeDepartmentRepo{
		departments:  make(map[int64]*model.Department),
		doctorCounts: make(map[int64]int),
		nextID:       1,
	}
}

func (r *fakeDepartmentRepo) Create(_ context.Context, d *model.Department) error {
	d.ID = r.nextID
	r.nextID++
	cp := *d
	r.departments[d.ID] = &cp
	return nil
}

func (r *fakeDepartmentRepo) Get(_ context.Context, id int64) (*model.Department, error) {
	d, ok := r.departments[id]
	if !ok {
		return nil, apperrors.NotFound("department")
	}
	cp := *d
	return &cp, nil
}

func (r *fakeDepartmentRepo) List(_ context.Context) ([]*model.Department, error) {
	var out []*model.Department
	for _, d := range r.departments {
		cp := *d
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakeDepartmentRepo) Update(_ context.Context, d *model.Department) error {
	if _, ok := r.departments[d.ID]; !ok {
		return apperrors.NotFound("department")
	}
	cp := *d
	r.departments[d.ID] = &cp
	return nil
}

func (r *fakeDepartmentRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.departments[id]; !ok {
		return apperrors.NotFound("department")
	}
	delete(r.departments, id)
	return nil
}

func (r *fakeDepartmentRepo) CountDoctors(_ context.Context, id int64) (int, error) {
	if r.countErr != nil {
		return 0, r.countErr
	}
	return r.doctorCounts[id], nil
}

func newTestService(repo *fakeDepartmentRepo) *Service {
	return NewService(repo, cache.New[*model.Department](time.Minute, time.Minute))
}

func TestCreateDepartment(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := newTestService(repo)

	d := &model.Department{Name: "Cardiology", FloorNumber: 3}
	require.NoError(t, svc.CreateDepartment(context.Background(), d))
	assert.NotZero(t, d.ID)
}

func TestCreateDepartmentRequiresName(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := newTestService(repo)

	err := svc.CreateDepartment(context.Background(), &model.Department{Name: "  ", FloorNumber: 1})
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, repo.departments)
}

func TestCreateDepartmentNegativeFloor(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := newTestService(repo)

	err := svc.CreateDepartment(context.Background(), &model.Department{Name: "Radiology", FloorNumber: -1})
	assert.True(t, apperrors.IsValidation(err))
}

func TestCreateDepartmentClearsCache(t *testing.T) {
	repo := newFakeDepartmentRepo()
	c := cache.New[*model.Department](time.Minute, time.Minute)
	svc := NewService(repo, c)

	d := &model.Department{Name: "Cardiology", FloorNumber: 3}
	require.NoError(t, svc.CreateDepartment(context.Background(), d))

	_, err := svc.GetDepartment(context.Background(), d.ID)
	require.NoError(t, err)
	_, ok := c.Get(d.ID)
	require.True(t, ok)

	require.NoError(t, svc.CreateDepartment(context.Background(), &model.Department{Name: "Oncology", FloorNumber: 2}))
	_, ok = c.Get(d.ID)
	assert.False(t, ok)
}

func TestDeleteDepartmentWithDoctorsRejected(t *testing.T) {
	repo := newFakeDepartmentRepo()
	svc := newTestService(repo)

	d := &model.Department{Name: "Cardiology", FloorNumber: 3}
	require.NoError(t, svc.CreateDepartment(context.Background(), d))
	repo.doctorCounts[d.ID] = 2

	err := svc.DeleteDepartment(context.Background(), d.ID)
	assert.True(t, apperrors.IsDependency(err))
	assert.Contains(t, err.Error(), "2 assigned doctor(s)")
	assert.Contains(t, repo.departments, d.ID)
}

func TestDeleteDepartmentGuardFallsThroughOnCheckError(t *testing.T) {
	repo := newFakeDepartmentRepo()
	repo.countErr = fmt.Errorf("connection reset")
	svc := newTestService(repo)

	d := &model.Department{Name: "Cardiology", FloorNumber: 3}
	require.NoError(t, svc.CreateDepartment(context.Background(), d))

	require.NoError(t, svc.DeleteDepartment(context.Background(), d.ID))
	assert.Empty(t, repo.departments)
}

func TestUpdateDepartmentRefreshesCache(t *testing.T) {
	repo := newFakeDepartmentRepo()
	c := cache.New[*model.Department](time.Minute, time.Minute)
	svc := NewService(repo, c)

	d := &model.Department{Name: "Cardiology", FloorNumber: 3}
	require.NoError(t, svc.CreateDepartment(context.Background(), d))

	d.FloorNumber = 5
	require.NoError(t, svc.UpdateDepartment(context.Background(), d))

	cached, ok := c.Get(d.ID)
	require.True(t, ok)
	assert.Equal(t, 5, cached.FloorNumber)
}
