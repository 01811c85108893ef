package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// NotificationTemplate holds the message templates for one catalog event.
// The per-role, per-channel content lives in TemplateContent rows keyed by
// (template, role, channel) so every leaf of the matrix exists as a row.
type NotificationTemplate struct {
	ID          string `gorm:"primaryKey" json:"id"`
	EventID     string `gorm:"uniqueIndex" json:"event_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Category    string `json:"category"`

	// Placeholders is the JSON-encoded ordered list of placeholder names
	// valid for this event, e.g. ["app_name","retailer_name"].
	Placeholders string `json:"-"`

	Contents []TemplateContent `gorm:"foreignKey:TemplateID;constraint:OnDelete:CASCADE" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (t *NotificationTemplate) BeforeCreate(tx *gorm.DB) (err error) {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	return
}

// PlaceholderNames decodes the stored placeholder list.
func (t *NotificationTemplate) PlaceholderNames() []string {
	if t.Placeholders == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(t.Placeholders), &names); err != nil {
		return nil
	}
	return names
}

// SetPlaceholderNames encodes and stores the placeholder list.
func (t *NotificationTemplate) SetPlaceholderNames(names []string) {
	if names == nil {
		names = []string{}
	}
	b, _ := json.Marshal(names)
	t.Placeholders = string(b)
}

// TemplateContent is one leaf of the role×channel matrix. A row exists for
// every (role, channel) pair of a template, empty strings included, so
// renderers never dereference a missing leaf.
type TemplateContent struct {
	ID         uint    `gorm:"primaryKey" json:"-"`
	TemplateID string  `gorm:"uniqueIndex:idx_template_role_channel" json:"-"`
	Role       Role    `gorm:"uniqueIndex:idx_template_role_channel" json:"role"`
	Channel    Channel `gorm:"uniqueIndex:idx_template_role_channel" json:"channel"`

	Subject string `json:"subject"` // email only
	Title   string `json:"title"`   // push only
	Body    string `json:"body"`
}

// ChannelContent is the wire shape of one leaf. Subject and Title are
// pointers so email/push leaves serialize them even when empty while other
// channels omit them entirely.
type ChannelContent struct {
	Subject *string `json:"subject,omitempty"`
	Title   *string `json:"title,omitempty"`
	Body    string  `json:"body"`
}

// Content renders the row as its channel-specific wire shape.
func (c TemplateContent) Content() ChannelContent {
	out := ChannelContent{Body: c.Body}
	switch c.Channel {
	case ChannelEmail:
		subject := c.Subject
		out.Subject = &subject
	case ChannelPush:
		title := c.Title
		out.Title = &title
	}
	return out
}

// RoleBundle maps every channel to its content for one role.
type RoleBundle map[Channel]ChannelContent

// EmptyBundle returns a bundle with an empty leaf per channel.
func EmptyBundle() RoleBundle {
	bundle := make(RoleBundle, 4)
	for _, ch := range Channels() {
		bundle[ch] = TemplateContent{Channel: ch}.Content()
	}
	return bundle
}

// BundleForRole collects the full channel bundle for one role. Rows that are
// missing (which the store prevents, but callers stay safe regardless) show
// up as empty leaves.
func (t *NotificationTemplate) BundleForRole(role Role) RoleBundle {
	bundle := EmptyBundle()
	for _, row := range t.Contents {
		if row.Role == role {
			bundle[row.Channel] = row.Content()
		}
	}
	return bundle
}

// EnsureGrid appends empty rows for any (role, channel) pair not present so
// the full matrix always exists.
func (t *NotificationTemplate) EnsureGrid() {
	for _, role := range Roles() {
		for _, ch := range Channels() {
			if t.ContentFor(role, ch) == nil {
				t.Contents = append(t.Contents, TemplateContent{TemplateID: t.ID, Role: role, Channel: ch})
			}
		}
	}
}

// ContentFor returns the stored row for (role, channel), or nil.
func (t *NotificationTemplate) ContentFor(role Role, ch Channel) *TemplateContent {
	for i := range t.Contents {
		if t.Contents[i].Role == role && t.Contents[i].Channel == ch {
			return &t.Contents[i]
		}
	}
	return nil
}

type templateJSON struct {
	ID           string                `json:"id"`
	EventID      string                `json:"event_id"`
	Name         string                `json:"name"`
	Description  string                `json:"description"`
	Category     string                `json:"category"`
	Placeholders []string              `json:"placeholders"`
	Templates    map[Role]RoleBundle   `json:"templates"`
	CreatedAt    time.Time             `json:"created_at"`
	UpdatedAt    time.Time             `json:"updated_at"`
}

// MarshalJSON presents the normalized rows as the nested
// role → channel → content mapping the admin UI consumes.
func (t NotificationTemplate) MarshalJSON() ([]byte, error) {
	out := templateJSON{
		ID:           t.ID,
		EventID:      t.EventID,
		Name:         t.Name,
		Description:  t.Description,
		Category:     t.Category,
		Placeholders: t.PlaceholderNames(),
		Templates:    make(map[Role]RoleBundle, 3),
		CreatedAt:    t.CreatedAt,
		UpdatedAt:    t.UpdatedAt,
	}
	if out.Placeholders == nil {
		out.Placeholders = []string{}
	}
	for _, role := range Roles() {
		out.Templates[role] = t.BundleForRole(role)
	}
	return json.Marshal(out)
}

// UnmarshalJSON accepts the nested wire shape and normalizes it back into
// one row per (role, channel). Leaves absent from the payload become empty
// rows so the full matrix always exists.
func (t *NotificationTemplate) UnmarshalJSON(data []byte) error {
	var in templateJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return err
	}
	t.ID = in.ID
	t.EventID = in.EventID
	t.Name = in.Name
	t.Description = in.Description
	t.Category = in.Category
	t.SetPlaceholderNames(in.Placeholders)
	t.CreatedAt = in.CreatedAt
	t.UpdatedAt = in.UpdatedAt

	t.Contents = t.Contents[:0]
	for _, role := range Roles() {
		for _, ch := range Channels() {
			row := TemplateContent{TemplateID: t.ID, Role: role, Channel: ch}
			if bundle, ok := in.Templates[role]; ok {
				if leaf, ok := bundle[ch]; ok {
					row.Body = leaf.Body
					if leaf.Subject != nil {
						row.Subject = *leaf.Subject
					}
					if leaf.Title != nil {
						row.Title = *leaf.Title
					}
				}
			}
			t.Contents = append(t.Contents, row)
		}
	}
	return nil
}
