package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/trendpin/notify/internal/logger"
	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/services"
)

type CredentialHandler struct {
	credentials *services.CredentialService
	activity    *services.ActivityService
}

func NewCredentialHandler(credentials *services.CredentialService, activity *services.ActivityService) *CredentialHandler {
	return &CredentialHandler{credentials: credentials, activity: activity}
}

// CredentialRequest is the write shape for credentials. The model never
// unmarshals secrets, so the form carries them explicitly; blank secrets
// keep the stored values.
type CredentialRequest struct {
	Provider    string `json:"provider"`
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"password"`
	Encryption  string `json:"encryption"`
	FromAddress string `json:"from_address"`
	FromName    string `json:"from_name"`
	AccountID   string `json:"account_id"`
	AuthToken   string `json:"auth_token"`
	FromNumber  string `json:"from_number"`
	ProjectID   string `json:"project_id"`
	ServerKey   string `json:"server_key"`
}

func (r *CredentialRequest) toModel() *models.ChannelCredential {
	return &models.ChannelCredential{
		Provider:    r.Provider,
		Host:        r.Host,
		Port:        r.Port,
		Username:    r.Username,
		Password:    r.Password,
		Encryption:  r.Encryption,
		FromAddress: r.FromAddress,
		FromName:    r.FromName,
		AccountID:   r.AccountID,
		AuthToken:   r.AuthToken,
		FromNumber:  r.FromNumber,
		ProjectID:   r.ProjectID,
		ServerKey:   r.ServerKey,
	}
}

// List returns every channel's credentials with secrets redacted to
// presence flags.
func (h *CredentialHandler) List(c *gin.Context) {
	views, err := h.credentials.List()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list credentials"})
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *CredentialHandler) Statuses(c *gin.Context) {
	statuses, err := h.credentials.Statuses()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load channel statuses"})
		return
	}
	c.JSON(http.StatusOK, statuses)
}

func (h *CredentialHandler) Save(c *gin.Context) {
	channel := c.Param("channel")
	if !services.ValidCredentialChannel(channel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown channel"})
		return
	}

	var req CredentialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	cred, err := h.credentials.Save(models.Channel(channel), req.toModel())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save credentials"})
		return
	}

	if _, err := h.activity.Record(models.NotificationTypeInfo, "Channel credentials saved", "", channel, ""); err != nil {
		logger.Log().WithError(err).Warn("Failed to record credential save")
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "Credentials saved", "credential": cred.Redacted()})
}

// Test probes the channel with the stored credentials, optionally overlaid
// with unsaved form values from the request body.
func (h *CredentialHandler) Test(c *gin.Context) {
	channel := c.Param("channel")
	if !services.ValidCredentialChannel(channel) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Unknown channel"})
		return
	}

	var override *models.ChannelCredential
	if c.Request.ContentLength > 0 {
		var req CredentialRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		override = req.toModel()
	}

	result := h.credentials.Test(c.Request.Context(), models.Channel(channel), override)
	if !result.Success {
		if _, err := h.activity.Record(models.NotificationTypeError, "Connectivity test failed", result.Details, channel, ""); err != nil {
			logger.Log().WithError(err).Warn("Failed to record test failure")
		}
	}
	c.JSON(http.StatusOK, result)
}
