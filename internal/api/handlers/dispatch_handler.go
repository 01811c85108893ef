package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/services"
)

type DispatchHandler struct {
	dispatch *services.DispatchService
}

func NewDispatchHandler(dispatch *services.DispatchService) *DispatchHandler {
	return &DispatchHandler{dispatch: dispatch}
}

type SendTestRequest struct {
	Channel       string            `json:"channel" binding:"required"`
	EventID       string            `json:"event_id" binding:"required"`
	RecipientType string            `json:"recipient_type" binding:"required"`
	RecipientID   string            `json:"recipient_id" binding:"required"`
	Placeholders  map[string]string `json:"placeholders"`
}

// SendTest delivers one rendered test message. Failures come back as a
// SendResult with HTTP 200: the outcome is the payload, not the transport.
func (h *DispatchHandler) SendTest(c *gin.Context) {
	var req SendTestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidChannel(req.Channel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown channel"})
		return
	}
	if !models.ValidRole(req.RecipientType) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown recipient type"})
		return
	}

	result := h.dispatch.SendTest(c.Request.Context(),
		models.Channel(req.Channel), req.EventID, models.Role(req.RecipientType),
		req.RecipientID, req.Placeholders)
	c.JSON(http.StatusOK, result)
}
