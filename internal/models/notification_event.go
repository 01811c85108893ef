package models

import (
	"encoding/json"
	"time"
)

// NotificationEvent is one entry in the event catalog: a business event an
// operator can wire to recipient roles and delivery channels. Recipients and
// channels are stored as flat boolean columns so the set of valid keys is
// fixed by the schema rather than by convention.
type NotificationEvent struct {
	ID          string `gorm:"primaryKey" json:"id"` // stable key, e.g. "retailer_approved"
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `gorm:"index" json:"category"`

	// IsEnabled is the master switch. Recipient and channel state is kept
	// when the event is disabled so re-enabling restores the prior setup.
	IsEnabled bool `gorm:"default:true" json:"is_enabled"`

	NotifyAdmin    bool `json:"-"`
	NotifyRetailer bool `json:"-"`
	NotifyCustomer bool `json:"-"`

	ChannelEmail    bool `json:"-"`
	ChannelSMS      bool `json:"-"`
	ChannelWhatsApp bool `json:"-"`
	ChannelPush     bool `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Recipients returns the enabled roles in the fixed role order.
func (e *NotificationEvent) Recipients() []Role {
	roles := make([]Role, 0, 3)
	for _, r := range Roles() {
		if e.HasRecipient(r) {
			roles = append(roles, r)
		}
	}
	return roles
}

// HasRecipient reports whether role is part of the event's recipient set.
func (e *NotificationEvent) HasRecipient(role Role) bool {
	switch role {
	case RoleAdmin:
		return e.NotifyAdmin
	case RoleRetailer:
		return e.NotifyRetailer
	case RoleCustomer:
		return e.NotifyCustomer
	}
	return false
}

// ToggleRecipient adds or removes role from the recipient set (symmetric
// difference). There is deliberately no guard on disabled events: the
// shadow configuration is preserved for later re-enable.
func (e *NotificationEvent) ToggleRecipient(role Role) {
	switch role {
	case RoleAdmin:
		e.NotifyAdmin = !e.NotifyAdmin
	case RoleRetailer:
		e.NotifyRetailer = !e.NotifyRetailer
	case RoleCustomer:
		e.NotifyCustomer = !e.NotifyCustomer
	}
}

// ChannelEnabled reports whether ch is switched on for this event.
func (e *NotificationEvent) ChannelEnabled(ch Channel) bool {
	switch ch {
	case ChannelEmail:
		return e.ChannelEmail
	case ChannelSMS:
		return e.ChannelSMS
	case ChannelWhatsApp:
		return e.ChannelWhatsApp
	case ChannelPush:
		return e.ChannelPush
	}
	return false
}

// ToggleChannel flips one channel flag. Like ToggleRecipient it has no
// enabled-guard at the data layer; the UI prevents the interaction instead.
func (e *NotificationEvent) ToggleChannel(ch Channel) {
	switch ch {
	case ChannelEmail:
		e.ChannelEmail = !e.ChannelEmail
	case ChannelSMS:
		e.ChannelSMS = !e.ChannelSMS
	case ChannelWhatsApp:
		e.ChannelWhatsApp = !e.ChannelWhatsApp
	case ChannelPush:
		e.ChannelPush = !e.ChannelPush
	}
}

// SetRecipient sets membership for role without toggling.
func (e *NotificationEvent) SetRecipient(role Role, on bool) {
	if e.HasRecipient(role) != on {
		e.ToggleRecipient(role)
	}
}

// SetChannel sets the flag for ch without toggling.
func (e *NotificationEvent) SetChannel(ch Channel, on bool) {
	if e.ChannelEnabled(ch) != on {
		e.ToggleChannel(ch)
	}
}

type eventJSON struct {
	ID          string           `json:"id"`
	Name        string           `json:"name"`
	Description string           `json:"description"`
	Category    string           `json:"category"`
	IsEnabled   bool             `json:"is_enabled"`
	Recipients  []Role           `json:"recipients"`
	Channels    map[Channel]bool `json:"channels"`
	CreatedAt   time.Time        `json:"created_at"`
	UpdatedAt   time.Time        `json:"updated_at"`
}

// MarshalJSON presents recipients as a role list and channels as a map with
// exactly the four channel keys.
func (e NotificationEvent) MarshalJSON() ([]byte, error) {
	out := eventJSON{
		ID:          e.ID,
		Name:        e.Name,
		Description: e.Description,
		Category:    e.Category,
		IsEnabled:   e.IsEnabled,
		Recipients:  e.Recipients(),
		Channels:    make(map[Channel]bool, 4),
		CreatedAt:   e.CreatedAt,
		UpdatedAt:   e.UpdatedAt,
	}
	for _, ch := range Channels() {
		out.Channels[ch] = e.ChannelEnabled(ch)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the wire shape produced by MarshalJSON. Unknown
// channel keys are ignored; the stored key set stays fixed.
func (e *NotificationEvent) UnmarshalJSON(data []byte) error {
	var in eventJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	e.ID = in.ID
	e.Name = in.Name
	e.Description = in.Description
	e.Category = in.Category
	e.IsEnabled = in.IsEnabled
	e.CreatedAt = in.CreatedAt
	e.UpdatedAt = in.UpdatedAt
	for _, r := range Roles() {
		e.SetRecipient(r, false)
	}
	for _, r := range in.Recipients {
		e.SetRecipient(r, true)
	}
	for _, ch := range Channels() {
		e.SetChannel(ch, in.Channels[ch])
	}
	return nil
}
