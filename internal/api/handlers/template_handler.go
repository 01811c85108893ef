package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/services"
)

type TemplateHandler struct {
	templates *services.TemplateService
}

func NewTemplateHandler(templates *services.TemplateService) *TemplateHandler {
	return &TemplateHandler{templates: templates}
}

func (h *TemplateHandler) List(c *gin.Context) {
	templates, err := h.templates.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list templates"})
		return
	}
	c.JSON(http.StatusOK, templates)
}

func (h *TemplateHandler) Get(c *gin.Context) {
	tpl, err := h.templates.Get(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
		return
	}
	c.JSON(http.StatusOK, tpl)
}

type UpdateTemplateFieldRequest struct {
	Role    string `json:"role" binding:"required"`
	Channel string `json:"channel" binding:"required"`
	Field   string `json:"field" binding:"required"`
	Value   string `json:"value"`
}

// UpdateField edits exactly one (role, channel, field) leaf of a template.
// Value is deliberately not required: clearing a field is a valid edit.
func (h *TemplateHandler) UpdateField(c *gin.Context) {
	var req UpdateTemplateFieldRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	tpl, err := h.templates.UpdateField(c.Param("id"),
		models.Role(req.Role), models.Channel(req.Channel), req.Field, req.Value)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			c.JSON(http.StatusNotFound, gin.H{"error": "Template not found"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, tpl)
}
