package feedback

import (
	"github.com/gin-gonic/gin"

	"github.com/medisys/hospital-api/internal/handler"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	"github.com/medisys/hospital-api/internal/service/feedback"
	"github.com/medisys/hospital-api/pkg/httputil"
)

type Handler struct {
	service *feedback.Service
	*handler.BaseHandler
}

func NewHandler(service *feedback.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: &handler.BaseHandler{OutboxRepo: outboxRepo},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	feedback := r.Group("/feedback")
	{
		feedback.POST("", h.CreateFeedback)
		feedback.GET("", h.ListFeedback)
		feedback.GET("/:id", h.GetFeedback)
		feedback.PUT("/:id", h.UpdateFeedback)
		feedback.DELETE("/:id", h.DeleteFeedback)
	}
}

func (h *Handler) CreateFeedback(c *gin.Context) {
	var req model.CreateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	fb := &model.PatientFeedback{
		PatientID: req.PatientID,
		Rating:    req.Rating,
		Comments:  req.Comments,
	}
	if req.FeedbackDate != nil {
		fb.FeedbackDate = *req.FeedbackDate
	}

	if err := h.service.CreateFeedback(c.Request.Context(), fb); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "FEEDBACK_CREATE", fb)
	httputil.RespondWithCreated(c, fb)
}

func (h *Handler) GetFeedback(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	fb, err := h.service.GetFeedback(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, fb)
}

func (h *Handler) ListFeedback(c *gin.Context) {
	if c.Query("patient_id") != "" {
		id, err := handler.ParseQueryID(c, "patient_id")
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		fbs, err := h.service.ListByPatient(c.Request.Context(), id)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, fbs)
		return
	}

	fbs, err := h.service.ListFeedback(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, fbs)
}

func (h *Handler) UpdateFeedback(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	existing, err := h.service.GetFeedback(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	fb := &model.PatientFeedback{
		ID:           id,
		PatientID:    existing.PatientID,
		Rating:       req.Rating,
		Comments:     req.Comments,
		FeedbackDate: existing.FeedbackDate,
	}

	if err := h.service.UpdateFeedback(c.Request.Context(), fb); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "FEEDBACK_UPDATE", fb)
	httputil.RespondWithSuccess(c, fb)
}

func (h *Handler) DeleteFeedback(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteFeedback(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "FEEDBACK_DELETE", gin.H{"id": id})
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}
