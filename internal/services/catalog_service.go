package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/trendpin/notify/internal/catalog"
	"github.com/trendpin/notify/internal/logger"
	"github.com/trendpin/notify/internal/metrics"
	"github.com/trendpin/notify/internal/models"
)

// CatalogService owns the event catalog: which business events exist, which
// recipient roles they notify, and through which channels.
type CatalogService struct {
	DB *gorm.DB
}

func NewCatalogService(db *gorm.DB) *CatalogService {
	return &CatalogService{DB: db}
}

// EnsureSeeded loads the built-in catalog into an empty store. An already
// populated store is left untouched.
func (s *CatalogService) EnsureSeeded() error {
	var count int64
	if err := s.DB.Model(&models.NotificationEvent{}).Count(&count).Error; err != nil {
		return fmt.Errorf("count events: %w", err)
	}
	if count > 0 {
		return nil
	}

	events, templates := catalog.Defaults()
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		for i := range events {
			if err := tx.Create(&events[i]).Error; err != nil {
				return fmt.Errorf("seed event %s: %w", events[i].ID, err)
			}
		}
		for i := range templates {
			if err := tx.Create(&templates[i]).Error; err != nil {
				return fmt.Errorf("seed template %s: %w", templates[i].EventID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	logger.WithFields(map[string]interface{}{"events": len(events)}).Info("Seeded default notification catalog")
	return nil
}

// ListEvents returns catalog events ordered for display, optionally filtered
// by category.
func (s *CatalogService) ListEvents(category string) ([]models.NotificationEvent, error) {
	var events []models.NotificationEvent
	query := s.DB.Order("category, id")
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if err := query.Find(&events).Error; err != nil {
		return nil, err
	}
	return events, nil
}

// GetEvent fetches one catalog event by its stable key.
func (s *CatalogService) GetEvent(id string) (*models.NotificationEvent, error) {
	var event models.NotificationEvent
	if err := s.DB.First(&event, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &event, nil
}

// ToggleEvent flips the master switch. Recipient and channel flags are
// preserved so re-enabling restores the prior configuration.
func (s *CatalogService) ToggleEvent(id string) (*models.NotificationEvent, error) {
	event, err := s.GetEvent(id)
	if err != nil {
		return nil, err
	}
	event.IsEnabled = !event.IsEnabled
	if err := s.DB.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// ToggleChannel flips one channel flag. The data layer deliberately has no
// guard on disabled events; the state is shadow configuration kept for
// re-enable (the UI suppresses the interaction instead).
func (s *CatalogService) ToggleChannel(id string, ch models.Channel) (*models.NotificationEvent, error) {
	if !models.ValidChannel(string(ch)) {
		return nil, fmt.Errorf("unknown channel %q", ch)
	}
	event, err := s.GetEvent(id)
	if err != nil {
		return nil, err
	}
	event.ToggleChannel(ch)
	if err := s.DB.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// ToggleRecipient adds or removes a role from the event's recipient set.
func (s *CatalogService) ToggleRecipient(id string, role models.Role) (*models.NotificationEvent, error) {
	if !models.ValidRole(string(role)) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	event, err := s.GetEvent(id)
	if err != nil {
		return nil, err
	}
	event.ToggleRecipient(role)
	if err := s.DB.Save(event).Error; err != nil {
		return nil, err
	}
	return event, nil
}

// Config loads the full configuration bundle: every event and every template
// with its content rows.
func (s *CatalogService) Config() ([]models.NotificationEvent, []models.NotificationTemplate, error) {
	events, err := s.ListEvents("")
	if err != nil {
		return nil, nil, err
	}
	var templates []models.NotificationTemplate
	if err := s.DB.Preload("Contents").Order("event_id").Find(&templates).Error; err != nil {
		return nil, nil, err
	}
	return events, templates, nil
}

// ReplaceConfig idempotently replaces the whole configuration with the given
// bundle. Templates are normalized so every (role, channel) leaf exists.
func (s *CatalogService) ReplaceConfig(events []models.NotificationEvent, templates []models.NotificationTemplate) error {
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("1 = 1").Delete(&models.TemplateContent{}).Error; err != nil {
			return fmt.Errorf("clear template contents: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.NotificationTemplate{}).Error; err != nil {
			return fmt.Errorf("clear templates: %w", err)
		}
		if err := tx.Where("1 = 1").Delete(&models.NotificationEvent{}).Error; err != nil {
			return fmt.Errorf("clear events: %w", err)
		}

		for i := range events {
			if events[i].ID == "" {
				return fmt.Errorf("event at index %d has no id", i)
			}
			if err := tx.Create(&events[i]).Error; err != nil {
				return fmt.Errorf("store event %s: %w", events[i].ID, err)
			}
		}
		for i := range templates {
			tpl := &templates[i]
			if tpl.EventID == "" {
				return fmt.Errorf("template at index %d has no event id", i)
			}
			tpl.EnsureGrid()
			// Content rows carry the template id assigned on create.
			for j := range tpl.Contents {
				tpl.Contents[j].ID = 0
				tpl.Contents[j].TemplateID = ""
			}
			if err := tx.Create(tpl).Error; err != nil {
				return fmt.Errorf("store template for %s: %w", tpl.EventID, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}
	metrics.IncConfigSave()
	return nil
}
