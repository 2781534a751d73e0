package doctor

import (
	"github.com/gin-gonic/gin"

	"github.com/medisys/hospital-api/internal/handler"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	"github.com/medisys/hospital-api/internal/service/doctor"
	"github.com/medisys/hospital-api/pkg/httputil"
)

type Handler struct {
	service *doctor.Service
	*handler.BaseHandler
}

func NewHandler(service *doctor.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: &handler.BaseHandler{OutboxRepo: outboxRepo},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	doctors := r.Group("/doctors")
	{
		doctors.POST("", h.CreateDoctor)
		doctors.GET("", h.ListDoctors)
		doctors.GET("/:id", h.GetDoctor)
		doctors.PUT("/:id", h.UpdateDoctor)
		doctors.DELETE("/:id", h.DeleteDoctor)
	}
}

func (h *Handler) CreateDoctor(c *gin.Context) {
	var req model.CreateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	doc := &model.Doctor{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		DepartmentID:   req.DepartmentID,
	}

	if err := h.service.CreateDoctor(c.Request.Context(), doc); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "DOCTOR_CREATE", doc)
	httputil.RespondWithCreated(c, doc)
}

func (h *Handler) GetDoctor(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	doc, err := h.service.GetDoctor(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, doc)
}

// ListDoctors returns doctors, optionally filtered by specialization or
// department, or paginated with page/page_size.
func (h *Handler) ListDoctors(c *gin.Context) {
	if specialization := c.Query("specialization"); specialization != "" {
		doctors, err := h.service.FindBySpecialization(c.Request.Context(), specialization)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, doctors)
		return
	}

	if c.Query("department_id") != "" {
		deptID, err := handler.ParseQueryID(c, "department_id")
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		doctors, err := h.service.FindByDepartment(c.Request.Context(), deptID)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, doctors)
		return
	}

	if c.Query("page") != "" || c.Query("page_size") != "" {
		page, pageSize := handler.ParsePagination(c)
		doctors, total, err := h.service.ListDoctorsPaginated(c.Request.Context(), pageSize, (page-1)*pageSize)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithPagination(c, doctors, page, pageSize, total)
		return
	}

	doctors, err := h.service.ListDoctors(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, doctors)
}

func (h *Handler) UpdateDoctor(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateDoctorRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	doc := &model.Doctor{
		ID:             id,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		Specialization: req.Specialization,
		Phone:          req.Phone,
		DepartmentID:   req.DepartmentID,
	}

	if err := h.service.UpdateDoctor(c.Request.Context(), doc); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "DOCTOR_UPDATE", doc)
	httputil.RespondWithSuccess(c, doc)
}

func (h *Handler) DeleteDoctor(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteDoctor(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "DOCTOR_DELETE", gin.H{"id": id})
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}
