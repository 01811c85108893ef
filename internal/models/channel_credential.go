package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CredentialStatus is the derived configuration state of one channel.
type CredentialStatus string

const (
	// StatusUnknown is the pre-load state; it is never persisted.
	StatusUnknown       CredentialStatus = "unknown"
	StatusConfigured    CredentialStatus = "configured"
	StatusNotConfigured CredentialStatus = "not_configured"
	StatusError         CredentialStatus = "error"
)

// ChannelCredential stores the active provider configuration for one
// delivery channel. Fields are provider-agnostic at the storage layer:
// switching providers changes which fields are relevant, not which values
// survive. Secrets never serialize; only their presence is observable.
type ChannelCredential struct {
	ID      string  `gorm:"primaryKey" json:"id"`
	Channel Channel `gorm:"uniqueIndex" json:"channel"`

	// Provider selects the concrete integration for the channel:
	// sms: twilio|nexmo, whatsapp: twilio|meta, push: fcm|gotify|pushover.
	// Email is always smtp and leaves this empty.
	Provider string `json:"provider"`

	// SMTP
	Host        string `json:"host"`
	Port        int    `json:"port"`
	Username    string `json:"username"`
	Password    string `json:"-"`
	Encryption  string `json:"encryption"` // "none", "ssl", "starttls"
	FromAddress string `json:"from_address"`
	FromName    string `json:"from_name"`

	// SMS / WhatsApp gateways
	AccountID  string `json:"account_id"` // twilio SID, nexmo api key, meta phone number id
	AuthToken  string `json:"-"`
	FromNumber string `json:"from_number"`

	// Push services
	ProjectID string `json:"project_id"`
	ServerKey string `json:"-"` // FCM server key, gotify/pushover token

	Status       CredentialStatus `gorm:"default:not_configured" json:"status"`
	StatusDetail string           `json:"status_detail,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (c *ChannelCredential) BeforeCreate(tx *gorm.DB) (err error) {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	if c.Status == "" {
		c.Status = StatusNotConfigured
	}
	return
}

// CredentialView is the redacted wire shape: every non-secret field plus a
// presence flag per secret.
type CredentialView struct {
	ID           string           `json:"id"`
	Channel      Channel          `json:"channel"`
	Provider     string           `json:"provider"`
	Host         string           `json:"host"`
	Port         int              `json:"port"`
	Username     string           `json:"username"`
	PasswordSet  bool             `json:"password_set"`
	Encryption   string           `json:"encryption"`
	FromAddress  string           `json:"from_address"`
	FromName     string           `json:"from_name"`
	AccountID    string           `json:"account_id"`
	AuthTokenSet bool             `json:"auth_token_set"`
	FromNumber   string           `json:"from_number"`
	ProjectID    string           `json:"project_id"`
	ServerKeySet bool             `json:"server_key_set"`
	Status       CredentialStatus `json:"status"`
	StatusDetail string           `json:"status_detail,omitempty"`
	UpdatedAt    time.Time        `json:"updated_at"`
}

// Redacted returns the credential with secrets replaced by presence flags.
func (c *ChannelCredential) Redacted() CredentialView {
	return CredentialView{
		ID:           c.ID,
		Channel:      c.Channel,
		Provider:     c.Provider,
		Host:         c.Host,
		Port:         c.Port,
		Username:     c.Username,
		PasswordSet:  c.Password != "",
		Encryption:   c.Encryption,
		FromAddress:  c.FromAddress,
		FromName:     c.FromName,
		AccountID:    c.AccountID,
		AuthTokenSet: c.AuthToken != "",
		FromNumber:   c.FromNumber,
		ProjectID:    c.ProjectID,
		ServerKeySet: c.ServerKey != "",
		Status:       c.Status,
		StatusDetail: c.StatusDetail,
		UpdatedAt:    c.UpdatedAt,
	}
}

// CredentialChannel maps a delivery channel to its credential channel key.
// The credential store keys email credentials as "smtp".
func CredentialChannel(ch Channel) Channel {
	if ch == ChannelEmail {
		return Channel("smtp")
	}
	return ch
}
