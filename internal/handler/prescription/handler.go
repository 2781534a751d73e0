package prescription

import (
	"github.com/gin-gonic/gin"

	"github.com/medisys/hospital-api/internal/handler"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	"github.com/medisys/hospital-api/internal/service/prescription"
	"github.com/medisys/hospital-api/pkg/httputil"
)

type Handler struct {
	service *prescription.Service
	*handler.BaseHandler
}

func NewHandler(service *prescription.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: &handler.BaseHandler{OutboxRepo: outboxRepo},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	prescriptions := r.Group("/prescriptions")
	{
		prescriptions.POST("", h.CreatePrescription)
		prescriptions.GET("", h.ListPrescriptions)
		prescriptions.GET("/:id", h.GetPrescription)
		prescriptions.PUT("/:id", h.UpdatePrescription)
		prescriptions.DELETE("/:id", h.DeletePrescription)

		prescriptions.POST("/:id/items", h.AddItem)
		prescriptions.GET("/:id/items", h.ListItems)
		prescriptions.DELETE("/:id/items/:itemId", h.RemoveItem)
	}
}

func (h *Handler) CreatePrescription(c *gin.Context) {
	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	p := &model.Prescription{
		AppointmentID: req.AppointmentID,
		Notes:         req.Notes,
	}
	if req.DateIssued != nil {
		p.DateIssued = *req.DateIssued
	}

	if err := h.service.CreatePrescription(c.Request.Context(), p); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PRESCRIPTION_CREATE", p)
	httputil.RespondWithCreated(c, p)
}

func (h *Handler) GetPrescription(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	p, err := h.service.GetPrescription(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) ListPrescriptions(c *gin.Context) {
	if c.Query("appointment_id") != "" {
		id, err := handler.ParseQueryID(c, "appointment_id")
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		prescriptions, err := h.service.ListByAppointment(c.Request.Context(), id)
		if err != nil {
			httputil.RespondWithError(c, err)
			return
		}
		httputil.RespondWithSuccess(c, prescriptions)
		return
	}

	prescriptions, err := h.service.ListPrescriptions(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, prescriptions)
}

func (h *Handler) UpdatePrescription(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreatePrescriptionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	p := &model.Prescription{
		ID:            id,
		AppointmentID: req.AppointmentID,
		Notes:         req.Notes,
	}
	if req.DateIssued != nil {
		p.DateIssued = *req.DateIssued
	}

	if err := h.service.UpdatePrescription(c.Request.Context(), p); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PRESCRIPTION_UPDATE", p)
	httputil.RespondWithSuccess(c, p)
}

func (h *Handler) DeletePrescription(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.DeletePrescription(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PRESCRIPTION_DELETE", gin.H{"id": id})
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}

// AddItem dispenses an inventory item against the prescription, decrementing
// stock in the same transaction.
func (h *Handler) AddItem(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.CreatePrescriptionItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	item := &model.PrescriptionItem{
		PrescriptionID:    id,
		ItemID:            req.ItemID,
		DosageInstruction: req.DosageInstruction,
		QuantityDispensed: req.QuantityDispensed,
	}

	if err := h.service.AddItem(c.Request.Context(), item); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PRESCRIPTION_ITEM_ADD", item)
	httputil.RespondWithCreated(c, item)
}

func (h *Handler) ListItems(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	items, err := h.service.ListItems(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, items)
}

// RemoveItem removes a dispensed line item, restoring its quantity to stock.
func (h *Handler) RemoveItem(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	itemID, err := handler.ParseID(c, "itemId")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.RemoveItem(c.Request.Context(), id, itemID); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "PRESCRIPTION_ITEM_REMOVE", gin.H{
		"prescription_id": id,
		"item_id":         itemID,
	})
	httputil.RespondWithSuccess(c, gin.H{"prescription_id": id, "item_id": itemID})
}
