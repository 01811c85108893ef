package models

import "time"

// Setting is a key/value pair for app-level configuration edited at runtime:
// display name, ops alert webhook, and similar.
type Setting struct {
	ID       uint   `gorm:"primaryKey" json:"-"`
	Key      string `gorm:"uniqueIndex" json:"key"`
	Value    string `json:"value"`
	Type     string `gorm:"default:string" json:"type"`
	Category string `gorm:"index" json:"category"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Well-known setting keys.
const (
	SettingAppName       = "app_name"
	SettingOpsWebhookURL = "ops_webhook_url"
)
