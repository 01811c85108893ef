package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/trendpin/notify/internal/models"
)

// TemplateService owns the message templates behind the catalog: one
// template per event, one content row per (role, channel) leaf.
type TemplateService struct {
	DB *gorm.DB
}

func NewTemplateService(db *gorm.DB) *TemplateService {
	return &TemplateService{DB: db}
}

// List returns every template with its content rows.
func (s *TemplateService) List() ([]models.NotificationTemplate, error) {
	var templates []models.NotificationTemplate
	if err := s.DB.Preload("Contents").Order("event_id").Find(&templates).Error; err != nil {
		return nil, err
	}
	return templates, nil
}

// Get fetches one template by id.
func (s *TemplateService) Get(id string) (*models.NotificationTemplate, error) {
	var tpl models.NotificationTemplate
	if err := s.DB.Preload("Contents").First(&tpl, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// GetByEvent fetches the template for one catalog event.
func (s *TemplateService) GetByEvent(eventID string) (*models.NotificationTemplate, error) {
	var tpl models.NotificationTemplate
	if err := s.DB.Preload("Contents").First(&tpl, "event_id = ?", eventID).Error; err != nil {
		return nil, err
	}
	return &tpl, nil
}

// allowedFields lists the editable fields per channel.
var allowedFields = map[models.Channel]map[string]string{
	models.ChannelEmail:    {"subject": "subject", "body": "body"},
	models.ChannelSMS:      {"body": "body"},
	models.ChannelWhatsApp: {"body": "body"},
	models.ChannelPush:     {"title": "title", "body": "body"},
}

// UpdateField changes exactly one leaf field of one template and nothing
// else. All template editing reduces to repeated calls of this operation.
func (s *TemplateService) UpdateField(templateID string, role models.Role, ch models.Channel, field, value string) (*models.NotificationTemplate, error) {
	if !models.ValidRole(string(role)) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	columns, ok := allowedFields[ch]
	if !ok {
		return nil, fmt.Errorf("unknown channel %q", ch)
	}
	column, ok := columns[field]
	if !ok {
		return nil, fmt.Errorf("field %q is not editable for channel %q", field, ch)
	}

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var tpl models.NotificationTemplate
		if err := tx.First(&tpl, "id = ?", templateID).Error; err != nil {
			return err
		}

		var row models.TemplateContent
		err := tx.First(&row, "template_id = ? AND role = ? AND channel = ?", templateID, role, ch).Error
		if err == gorm.ErrRecordNotFound {
			row = models.TemplateContent{TemplateID: templateID, Role: role, Channel: ch}
			if err := tx.Create(&row).Error; err != nil {
				return fmt.Errorf("create content row: %w", err)
			}
		} else if err != nil {
			return err
		}

		return tx.Model(&row).Update(column, value).Error
	})
	if err != nil {
		return nil, err
	}

	return s.Get(templateID)
}

// DefaultRole returns the role a template editor opens on: the first role of
// the event's recipient set in the fixed order, or admin when the set is
// empty. This is ephemeral UI state, never persisted.
func DefaultRole(event *models.NotificationEvent) models.Role {
	for _, role := range models.Roles() {
		if event.HasRecipient(role) {
			return role
		}
	}
	return models.RoleAdmin
}
