package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipient is a concrete person a test message can be delivered to. The
// production user base lives elsewhere; this table mirrors the contact
// details needed to resolve an address per channel.
type Recipient struct {
	ID        string `gorm:"primaryKey" json:"id"`
	Role      Role   `gorm:"index" json:"role"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	PushToken string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (r *Recipient) BeforeCreate(tx *gorm.DB) (err error) {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	return
}

// AddressFor returns the contact address a channel delivers to: email
// address, phone number, or push token. Empty means unresolvable.
func (r *Recipient) AddressFor(ch Channel) string {
	switch ch {
	case ChannelEmail:
		return r.Email
	case ChannelSMS, ChannelWhatsApp:
		return r.Phone
	case ChannelPush:
		return r.PushToken
	}
	return ""
}
