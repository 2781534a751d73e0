package handler

import (
	"context"
	"encoding/json"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/medisys/hospital-api/internal/model"
	"github.com/medisys/hospital-api/internal/repository"
	apperrors "github.com/medisys/hospital-api/pkg/errors"
)

// BaseHandler carries handler plumbing shared by every entity handler:
// outbox event emission and id parsing.
type BaseHandler struct {
	OutboxRepo repository.OutboxRepository
}

// EmitEvent records an entity-change event for asynchronous publication.
// Emission is best effort and never fails the request.
func (b *BaseHandler) EmitEvent(ctx context.Context, eventType string, payload interface{}) {
	if b.OutboxRepo == nil {
		return
	}

	data, err := json.Marshal(payload)
	if err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}

	if err := b.OutboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}); err != nil {
		log.Warn().Err(err).Str("event_type", eventType).Msg("failed to create outbox event")
	}
}

// ParseID extracts a positive int64 path parameter.
func ParseID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationField(name, "invalid id")
	}
	return id, nil
}

// ParseQueryID extracts a positive int64 query parameter.
func ParseQueryID(c *gin.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Query(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, apperrors.ValidationField(name, "invalid id")
	}
	return id, nil
}

// ParsePagination reads page/page_size query parameters with sane bounds.
func ParsePagination(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
