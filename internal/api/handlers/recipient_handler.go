package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/services"
)

type RecipientHandler struct {
	recipients *services.RecipientService
}

func NewRecipientHandler(recipients *services.RecipientService) *RecipientHandler {
	return &RecipientHandler{recipients: recipients}
}

// ListByRole returns the test-send candidates for one role.
func (h *RecipientHandler) ListByRole(c *gin.Context) {
	recipients, err := h.recipients.ListByRole(models.Role(c.Param("role")))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, recipients)
}
