package department

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/medisys/hospital-api/internal/cache"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/service/department"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

type fakeDepartmentRepo struct {
	departments  map[int64]*model.Department
	doctorCounts map[int64]int
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
	return r.doctorCounts[id], nil
}

func newTestRouter(repo *fakeDepartmentRepo) *gin.Engine {
	gin.SetMode(gin.TestMode)
	svc := department.NewService(repo, cache.New[*model.Department](time.Minute, time.Minute))
	h := NewHandler(svc, nil)

	r := gin.New()
	h.RegisterRoutes(r.Group("/api/v1"))
	return r
}

func doRequest(r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		json.NewEncoder(&buf).Encode(body)
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestCreateDepartmentEndpoint(t *testing.T) {
	repo := newFakeDepartmentRepo()
	r := newTestRouter(repo)

	w := doRequest(r, http.MethodPost, "/api/v1/departments", gin.H{
		"name":         "Cardiology",
		"floor_number": 3,
	})

	require.Equal(t, http.StatusCreated, w.Code)
	assert.Len(t, repo.departments, 1)
}

func TestCreateDepartmentEndpointMissingName(t *testing.T) {
	repo := newFakeDepartmentRepo()
	r := newTestRouter(repo)

	w := doRequest(r, http.MethodPost, "/api/v1/departments", gin.H{"floor_number": 3})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, repo.departments)
}

func TestGetDepartmentEndpointNotFound(t *testing.T) {
	r := newTestRouter(newFakeDepartmentRepo())

	w := doRequest(r, http.MethodGet, "/api/v1/departments/99", nil)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestDeleteDepartmentEndpointWithDoctors(t *testing.T) {
	repo := newFakeDepartmentRepo()
	r := newTestRouter(repo)

	w := doRequest(r, http.MethodPost, "/api/v1/departments", gin.H{
		"name":         "Cardiology",
		"floor_number": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)
	repo.doctorCounts[1] = 2

	w = doRequest(r, http.MethodDelete, "/api/v1/departments/1", nil)

	assert.Equal(t, http.StatusConflict, w.Code)

	var resp struct {
		Success bool `json:"success"`
		Error   struct {
			Kind    string `json:"kind"`
			Message string `json:"message"`
		} `json:"error"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "dependency", resp.Error.Kind)
	assert.Contains(t, resp.Error.Message, "assigned doctor")
}

func TestUpdateDepartmentEndpoint(t *testing.T) {
	repo := newFakeDepartmentRepo()
	r := newTestRouter(repo)

	w := doRequest(r, http.MethodPost, "/api/v1/departments", gin.H{
		"name":         "Cardiology",
		"floor_number": 3,
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doRequest(r, http.MethodPut, "/api/v1/departments/1", gin.H{
		"name":         "Cardiology",
		"floor_number": 5,
	})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 5, repo.departments[1].FloorNumber)
}

func TestListDepartmentsEndpoint(t *testing.T) {
	repo := newFakeDepartmentRepo()
	r := newTestRouter(repo)

	for i := 0; i < 3; i++ {
		w := doRequest(r, http.MethodPost, "/api/v1/departments", gin.H{
			"name":         fmt.Sprintf("Ward %d", i),
			"floor_number": i,
		})
		require.Equal(t, http.StatusCreated, w.Code)
	}

	w := doRequest(r, http.MethodGet, "/api/v1/departments", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    []model.Department `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Len(t, resp.Data, 3)
}
