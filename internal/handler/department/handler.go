package department

import (
	"github.com/gin-gonic/gin"

	"github.com/medisys/hospital-api/internal/handler"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	"github.com/medisys/hospital-api/internal/service/department"
	"github.com/medisys/hospital-api/pkg/httputil"
)

type Handler struct {
	service *department.Service
	*handler.BaseHandler
}

func NewHandler(service *department.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: &handler.BaseHandler{OutboxRepo: outboxRepo},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	departments := r.Group("/departments")
	{
		departments.POST("", h.CreateDepartment)
		departments.GET("", h.ListDepartments)
		departments.GET("/:id", h.GetDepartment)
		departments.PUT("/:id", h.UpdateDepartment)
		departments.DELETE("/:id", h.DeleteDepartment)
	}
}

func (h *Handler) CreateDepartment(c *gin.Context) {
	var req model.CreateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	dept := &model.Department{
		Name:        req.Name,
		FloorNumber: req.FloorNumber,
	}

	if err := h.service.CreateDepartment(c.Request.Context(), dept); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "DEPARTMENT_CREATE", dept)
	httputil.RespondWithCreated(c, dept)
}

func (h *Handler) GetDepartment(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	dept, err := h.service.GetDepartment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, dept)
}

func (h *Handler) ListDepartments(c *gin.Context) {
	depts, err := h.service.ListDepartments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, depts)
}

func (h *Handler) UpdateDepartment(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateDepartmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	dept := &model.Department{
		ID:          id,
		Name:        req.Name,
		FloorNumber: req.FloorNumber,
	}

	if err := h.service.UpdateDepartment(c.Request.Context(), dept); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "DEPARTMENT_UPDATE", dept)
	httputil.RespondWithSuccess(c, dept)
}

func (h *Handler) DeleteDepartment(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteDepartment(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "DEPARTMENT_DELETE", gin.H{"id": id})
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}
