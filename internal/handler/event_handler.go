package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/ignitefit/class-booking/internal/response"
	"github.com/ignitefit/class-booking/internal/service"
)

// EventHandler exposes the booking audit trail.
type EventHandler struct {
	auditService *service.AuditService
}

// NewEventHandler creates a new EventHandler.
func NewEventHandler(auditService *service.AuditService) *EventHandler {
	return &EventHandler{auditService: auditService}
}

// ListEvents godoc
// GET /events?limit=N
// Newest first. 503 when the server runs without an audit database.
func (h *EventHandler) ListEvents(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation,
				map[string]string{"limit": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	evts, err := h.auditService.Recent(c.Request.Context(), limit)
	if err != nil {
		failWithError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"events": evts})
}
