package inventory

import (
	"github.com/gin-gonic/gin"

	"github.com/medisys/hospital-api/internal/handler"
	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	"github.com/medisys/hospital-api/internal/service/inventory"
	"github.com/medisys/hospital-api/pkg/httputil"
)

type Handler struct {
	service *inventory.Service
	*handler.BaseHandler
}

func NewHandler(service *inventory.Service, outboxRepo repository.OutboxRepository) *Handler {
	return &Handler{
		service:     service,
		BaseHandler: &handler.BaseHandler{OutboxRepo: outboxRepo},
	}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	items := r.Group("/inventory")
	{
		items.POST("", h.CreateItem)
		items.GET("", h.ListItems)
		items.GET("/:id", h.GetItem)
		items.PUT("/:id", h.UpdateItem)
		items.DELETE("/:id", h.DeleteItem)
	}
}

func (h *Handler) CreateItem(c *gin.Context) {
	var req model.CreateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	item := &model.MedicalInventory{
		ItemName:      req.ItemName,
		StockQuantity: req.StockQuantity,
		UnitPrice:     req.UnitPrice,
	}

	if err := h.service.CreateItem(c.Request.Context(), item); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "INVENTORY_CREATE", item)
	httputil.RespondWithCreated(c, item)
}

func (h *Handler) GetItem(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	item, err := h.service.GetItem(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, item)
}

func (h *Handler) ListItems(c *gin.Context) {
	items, err := h.service.ListItems(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	httputil.RespondWithSuccess(c, items)
}

func (h *Handler) UpdateItem(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	var req model.UpdateInventoryItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithError(c, httputil.BindError(err))
		return
	}

	item := &model.MedicalInventory{
		ID:            id,
		ItemName:      req.ItemName,
		StockQuantity: req.StockQuantity,
		UnitPrice:     req.UnitPrice,
	}

	if err := h.service.UpdateItem(c.Request.Context(), item); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "INVENTORY_UPDATE", item)
	httputil.RespondWithSuccess(c, item)
}

func (h *Handler) DeleteItem(c *gin.Context) {
	id, err := handler.ParseID(c, "id")
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	if err := h.service.DeleteItem(c.Request.Context(), id); err != nil {
		httputil.RespondWithError(c, err)
		return
	}

	h.EmitEvent(c.Request.Context(), "INVENTORY_DELETE", gin.H{"id": id})
	httputil.RespondWithSuccess(c, gin.H{"deleted": id})
}
