package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendpin/notify/internal/services"
)

type ActivityHandler struct {
	activity *services.ActivityService
}

func NewActivityHandler(activity *services.ActivityService) *ActivityHandler {
	return &ActivityHandler{activity: activity}
}

func (h *ActivityHandler) List(c *gin.Context) {
	unreadOnly := c.Query("unread") == "true"
	entries, err := h.activity.List(unreadOnly)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list activity"})
		return
	}
	c.JSON(http.StatusOK, entries)
}

func (h *ActivityHandler) MarkAsRead(c *gin.Context) {
	if err := h.activity.MarkAsRead(c.Param("id")); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark entry as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Entry marked as read"})
}

func (h *ActivityHandler) MarkAllAsRead(c *gin.Context) {
	if err := h.activity.MarkAllAsRead(); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to mark all entries as read"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "All entries marked as read"})
}
