package patient

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisys/hospital-api/internal/cache"
	"github.com/medisys/hospital-api/internal/model"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

type fakePatientRepo struct {
	patients     map[int64]*model.Patient
	doctorPhones map[string]bool
	nextID       int64
}

func newFakePatientRepo() *fakePatientRepo {
	return &fakePatientRepo{
		patients:     make(map[int64]*model.Patient),
		doctorPhones: make(map[string]bool),
		nextID:       1,
	}
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) error {
	p.ID = r.nextID
	r.nextID++
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *fakePatientRepo) Get(_ context.Context, id int64) (*model.Patient, error) {
	p, ok := r.patients[id]
	if !ok {
		return nil, apperrors.NotFound("patient")
	}
	cp := *p
	return &cp, nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range r.patients {
		cp := *p
		out = append(out, &cp)
	}
	return out, nil
}

func (r *fakePatientRepo) ListPaginated(_ context.Context, limit, offset int) ([]*model.Patient, error) {
	all, _ := r.List(context.Background())
	if offset >= len(all) {
		return nil, nil
	}
	end := offset + limit
	if end > len(all) {
		end = len(all)
	}
	return all[offset:end], nil
}

func (r *fakePatientRepo) Count(_ context.Context) (int, error) {
	return len(r.patients), nil
}

func (r *fakePatientRepo) SearchByLastName(_ context.Context, lastName string) ([]*model.Patient, error) {
	var out []*model.Patient
	for _, p := range r.patients {
		if strings.Contains(strings.ToLower(p.LastName), strings.ToLower(lastName)) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *fakePatientRepo) Update(_ context.Context, p *model.Patient) error {
	if _, ok := r.patients[p.ID]; !ok {
		return apperrors.NotFound("patient")
	}
	cp := *p
	r.patients[p.ID] = &cp
	return nil
}

func (r *fakePatientRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.patients[id]; !ok {
		return apperrors.NotFound("patient")
	}
	delete(r.patients, id)
	return nil
}

func (r *fakePatientRepo) ContactExistsInPatients(_ context.Context, phone string, excludeID int64) (bool, error) {
	for _, p := range r.patients {
		if p.ID != excludeID && p.Phone == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakePatientRepo) ContactExistsInDoctors(_ context.Context, phone string) (bool, error) {
	return r.doctorPhones[phone], nil
}

type fakeAppointmentChecker struct {
	prescribedPatients map[int64]bool
	checkErr           error
}

func (f *fakeAppointmentChecker) HasPrescribedForPatient(_ context.Context, patientID int64) (bool, error) {
	if f.checkErr != nil {
		return false, f.checkErr
	}
	return f.prescribedPatients[patientID], nil
}

func (f *fakeAppointmentChecker) HasPrescribedForDoctor(_ context.Context, _ int64) (bool, error) {
	return false, nil
}
func (f *fakeAppointmentChecker) Create(_ context.Context, _ *model.Appointment) error { return nil }
func (f *fakeAppointmentChecker) Get(_ context.Context, _ int64) (*model.Appointment, error) {
	return nil, apperrors.NotFound("appointment")
}
func (f *fakeAppointmentChecker) List(_ context.Context) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentChecker) ListByDoctor(_ context.Context, _ int64) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentChecker) ListByPatient(_ context.Context, _ int64) ([]*model.Appointment, error) {
	return nil, nil
}
func (f *fakeAppointmentChecker) Update(_ context.Context, _ *model.Appointment) error { return nil }
func (f *fakeAppointmentChecker) UpdateStatus(_ context.Context, _ int64, _ model.AppointmentStatus) error {
	return nil
}
func (f *fakeAppointmentChecker) Delete(_ context.Context, _ int64) error { return nil }

func newTestService(repo *fakePatientRepo, checker *fakeAppointmentChecker) *Service {
	if checker == nil {
		checker = &fakeAppointmentChecker{prescribedPatients: make(map[int64]bool)}
	}
	return NewService(repo, checker, cache.New[*model.Patient](time.Minute, time.Minute))
}

func validPatient() *model.Patient {
	return &model.Patient{
		FirstName:   "James",
		LastName:    "Miller",
		DateOfBirth: time.Date(1985, 4, 12, 0, 0, 0, 0, time.UTC),
		Gender:      "Male",
		Phone:       "555-0201",
		Address:     "42 Elm Street",
	}
}

func TestCreatePatient(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo, nil)

	p := validPatient()
	require.NoError(t, svc.CreatePatient(context.Background(), p))
	assert.NotZero(t, p.ID)
}

func TestCreatePatientFutureDateOfBirth(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo, nil)

	p := validPatient()
	p.DateOfBirth = time.Now().Add(24 * time.Hour)
	err := svc.CreatePatient(context.Background(), p)
	assert.True(t, apperrors.IsValidation(err))
	assert.Empty(t, repo.patients)
}

func TestCreatePatientDuplicateContact(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo, nil)

	require.NoError(t, svc.CreatePatient(context.Background(), validPatient()))

	dup := validPatient()
	err := svc.CreatePatient(context.Background(), dup)
	assert.True(t, apperrors.IsConflict(err))
	assert.Len(t, repo.patients, 1)
}

func TestCreatePatientContactUsedByDoctor(t *testing.T) {
	repo := newFakePatientRepo()
	repo.doctorPhones["555-0201"] = true
	svc := newTestService(repo, nil)

	err := svc.CreatePatient(context.Background(), validPatient())
	assert.True(t, apperrors.IsConflict(err))
	assert.Empty(t, repo.patients)
}

func TestUpdatePatientKeepsOwnContact(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo, nil)

	p := validPatient()
	require.NoError(t, svc.CreatePatient(context.Background(), p))

	p.Address = "7 Oak Avenue"
	require.NoError(t, svc.UpdatePatient(context.Background(), p))
	assert.Equal(t, "7 Oak Avenue", repo.patients[p.ID].Address)
}

func TestDeletePatientWithPrescribedAppointmentsRejected(t *testing.T) {
	repo := newFakePatientRepo()
	checker := &fakeAppointmentChecker{prescribedPatients: make(map[int64]bool)}
	svc := newTestService(repo, checker)

	p := validPatient()
	require.NoError(t, svc.CreatePatient(context.Background(), p))
	checker.prescribedPatients[p.ID] = true

	err := svc.DeletePatient(context.Background(), p.ID)
	assert.True(t, apperrors.IsDependency(err))
	assert.Contains(t, repo.patients, p.ID)
}

func TestDeletePatientGuardFallsThroughOnCheckError(t *testing.T) {
	repo := newFakePatientRepo()
	checker := &fakeAppointmentChecker{checkErr: fmt.Errorf("connection reset")}
	svc := newTestService(repo, checker)

	p := validPatient()
	require.NoError(t, svc.CreatePatient(context.Background(), p))

	require.NoError(t, svc.DeletePatient(context.Background(), p.ID))
	assert.Empty(t, repo.patients)
}

func TestSearchByLastName(t *testing.T) {
	repo := newFakePatientRepo()
	svc := newTestService(repo, nil)

	p := validPatient()
	require.NoError(t, svc.CreatePatient(context.Background(), p))

	other := validPatient()
	other.LastName = "Garcia"
	other.Phone = "555-0202"
	require.NoError(t, svc.CreatePatient(context.Background(), other))

	found, err := svc.SearchByLastName(context.Background(), "mill")
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Miller", found[0].LastName)
}

func TestDeletePatientInvalidatesCache(t *testing.T) {
	repo := newFakePatientRepo()
	c := cache.New[*model.Patient](time.Minute, time.Minute)
	svc := NewService(repo, &fakeAppointmentChecker{prescribedPatients: make(map[int64]bool)}, c)

	p := validPatient()
	require.NoError(t, svc.CreatePatient(context.Background(), p))

	_, err := svc.GetPatient(context.Background(), p.ID)
	require.NoError(t, err)
	_, ok := c.Get(p.ID)
	require.True(t, ok)

	require.NoError(t, svc.DeletePatient(context.Background(), p.ID))
	_, ok = c.Get(p.ID)
	assert.False(t, ok)
}
