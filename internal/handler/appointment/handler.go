package appointment

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/medisys/hospital-api/internal/handler"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	"github.com/medisys/hospital-api/internal/service/appointment"
	"github.com/medisys/hospital-api/internal/service/prescription"
	"github.com/medisys/hospital-api/pkg/httputil"
)

type Handler struct {
	service         *appointment.Service
	prescriptionSvc *prescription.Service
	*handler.BaseHandler
}

func NewHandler(service *appointment.Service, prescriptionSvc *prescription.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:         service,
		prescriptionSvc: prescriptionSvc,
		BaseHandler:     &handler.BaseHandler{OutboxRepo: outboxRepo},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.POST("", h.CreateAppointment)
		appointments.GET("", h.ListAppointments)
		appointments.GET("/:id", h.GetAppointment)
		appointments.PUT("/:id", h.UpdateAppointment)
		appointments.DELETE("/:id", h.DeleteAppointment)

		appointments.POST("/:id/complete", h.CompleteAppointment)
		appointments.POST("/:id/cancel", h.CancelAppointment)

		appointments.GET("/:id/prescriptions", h.ListPrescriptions)
	}
}

func (h *Handler) CreateAppointment(c *gin.Context) {
	var req model.CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	apt := &model.Appointment{
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		DateTime:  req.DateTime,
		Reason:    req.Reason,
	}

	if err := h.service.CreateAppointment(c.Request.Context(), apt); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "APPOINTMENT_CREATE", apt)
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) GetAppointment(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, apt)
}

// ListAppointments returns appointments, optionally filtered by doctor_id or
// patient_id.
func (h *Handler) ListAppointments(c *gin.Context) {
	if doctorID := c.Query("doctor_id"); doctorID != "" {
		id, err := handler.ParseQueryID(c, "doctor_id")
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		appointments, err := h.service.ListByDoctor(c.Request.Context(), id)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, appointments)
		return
	}

	if patientID := c.Query("patient_id"); patientID != "" {
		id, err := handler.ParseQueryID(c, "patient_id")
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		appointments, err := h.service.ListByPatient(c.Request.Context(), id)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, appointments)
		return
	}

	appointments, err := h.service.ListAppointments(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) UpdateAppointment(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	apt := &model.Appointment{
		ID:        id,
		PatientID: req.PatientID,
		DoctorID:  req.DoctorID,
		DateTime:  req.DateTime,
		Reason:    req.Reason,
	}

	if err := h.service.UpdateAppointment(c.Request.Context(), apt); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "APPOINTMENT_UPDATE", apt)
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) CompleteAppointment(c *gin.Context) {
	h.transition(c, h.service.Complete, "APPOINTMENT_COMPLETE")
}

func (h *Handler) CancelAppointment(c *gin.Context) {
	h.transition(c, h.service.Cancel, "APPOINTMENT_CANCEL")
}

func (h *Handler) transition(c *gin.Context, fn func(ctx context.Context, id int64) error, eventType string) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := fn(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	apt, err := h.service.GetAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), eventType, apt)
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) DeleteAppointment(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteAppointment(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "APPOINTMENT_DELETE", gin.H{"id": id})
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	prescriptions, err := h.prescriptionSvc.ListByAppointment(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, prescriptions)
}
