package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/services"
)

// ConfigHandler exposes the notification matrix: the event catalog with its
// recipient/channel switches and the templates behind it.
type ConfigHandler struct {
	catalog *services.CatalogService
}

func NewConfigHandler(catalog *services.CatalogService) *ConfigHandler {
	return &ConfigHandler{catalog: catalog}
}

// ConfigBundle is the full configuration wire shape, also used for
// export/import round-trips.
type ConfigBundle struct {
	Events    []models.NotificationEvent    `json:"events"`
	Templates []models.NotificationTemplate `json:"templates"`
}

func (h *ConfigHandler) GetConfig(c *gin.Context) {
	events, templates, err := h.catalog.Config()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load configuration"})
		return
	}
	c.JSON(http.StatusOK, ConfigBundle{Events: events, Templates: templates})
}

// ReplaceConfig overwrites the whole configuration. Importing the same
// bundle twice converges on the same state.
func (h *ConfigHandler) ReplaceConfig(c *gin.Context) {
	var bundle ConfigBundle
	if err := c.ShouldBindJSON(&bundle); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.catalog.ReplaceConfig(bundle.Events, bundle.Templates); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Configuration saved"})
}

func (h *ConfigHandler) ListEvents(c *gin.Context) {
	events, err := h.catalog.ListEvents(c.Query("category"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list events"})
		return
	}
	c.JSON(http.StatusOK, events)
}

func (h *ConfigHandler) ToggleEvent(c *gin.Context) {
	event, err := h.catalog.ToggleEvent(c.Param("id"))
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *ConfigHandler) ToggleChannel(c *gin.Context) {
	event, err := h.catalog.ToggleChannel(c.Param("id"), models.Channel(c.Param("channel")))
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *ConfigHandler) ToggleRecipient(c *gin.Context) {
	event, err := h.catalog.ToggleRecipient(c.Param("id"), models.Role(c.Param("role")))
	if err != nil {
		c.JSON(h.statusFor(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, event)
}

func (h *ConfigHandler) statusFor(err error) int {
	if err == gorm.ErrRecordNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}
