package patient

import (
	"github.com/gin-gonic/gin"

	"github.com/medisys/hospital-api/internal/handler"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	"github.com/medisys/hospital-api/internal/service/appointment"
	"github.com/medisys/hospital-api/internal/service/feedback"
	"github.com/medisys/hospital-api/internal/service/patient"
	"github.com/medisys/hospital-api/pkg/httputil"
)

type Handler struct {
	service        *patient.Service
	appointmentSvc *appointment.Service
	feedbackSvc    *feedback.Service
	*handler.BaseHandler
}

func NewHandler(service *patient.Service, appointmentSvc *appointment.Service, feedbackSvc *feedback.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:        service,
		appointmentSvc: appointmentSvc,
		feedbackSvc:    feedbackSvc,
		BaseHandler:    &handler.BaseHandler{OutboxRepo: outboxRepo},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	patients := r.Group("/patients")
	{
		patients.POST("", h.CreatePatient)
		patients.GET("", h.ListPatients)
		patients.GET("/:id", h.GetPatient)
		patients.PUT("/:id", h.UpdatePatient)
		patients.DELETE("/:id", h.DeletePatient)

		patients.GET("/:id/appointments", h.ListAppointments)
		patients.GET("/:id/feedback", h.ListFeedback)
	}
}

func (h *Handler) CreatePatient(c *gin.Context) {
	var req model.CreatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	p := &model.Patient{
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Address:     req.Address,
	}

	if err := h.service.CreatePatient(c.Request.Context(), p); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PATIENT_CREATE", p)
	httputil.RespondWithCreated(c, p)
}

func (h *Handler) GetPatient(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	p, err := h.service.GetPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, p)
}

// ListPatients returns patients, optionally filtered by last_name or
// paginated with page/page_size.
func (h *Handler) ListPatients(c *gin.Context) {
	if lastName := c.Query("last_name"); lastName != "" {
		patients, err := h.service.SearchByLastName(c.Request.Context(), lastName)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, patients)
		return
	}

	if c.Query("page") != "" || c.Query("page_size") != "" {
		page, pageSize := handler.ParsePagination(c)
		patients, total, err := h.service.ListPatientsPaginated(c.Request.Context(), pageSize, (page-1)*pageSize)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithPagination(c, patients, page, pageSize, total)
		return
	}

	patients, err := h.service.ListPatients(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, patients)
}

func (h *Handler) UpdatePatient(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdatePatientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	p := &model.Patient{
		ID:          id,
		FirstName:   req.FirstName,
		LastName:    req.LastName,
		DateOfBirth: req.DateOfBirth,
		Gender:      req.Gender,
		Phone:       req.Phone,
		Address:     req.Address,
	}

	if err := h.service.UpdatePatient(c.Request.Context(), p); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PATIENT_UPDATE", p)
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) DeletePatient(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.DeletePatient(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PATIENT_DELETE", gin.H{"id": id})
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}

func (h *Handler) ListAppointments(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	appointments, err := h.appointmentSvc.ListByPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) ListFeedback(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	fbs, err := h.feedbackSvc.ListByPatient(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, fbs)
}
