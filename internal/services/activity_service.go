package services

import (
	"fmt"

	"github.com/containrrr/shoutrrr"
	"gorm.io/gorm"

	"github.com/trendpin/notify/internal/logger"
	"github.com/trendpin/notify/internal/models"
)

// ActivityService records configuration activity (test outcomes, saves) in
// the admin feed and optionally forwards failures to an operator webhook.
type ActivityService struct {
	DB *gorm.DB

	// send is swappable for tests.
	send func(rawURL, message string) error
}

func NewActivityService(db *gorm.DB) *ActivityService {
	return &ActivityService{DB: db, send: shoutrrr.Send}
}

// Record appends one entry to the activity feed.
func (s *ActivityService) Record(nType models.NotificationType, title, message, channel, eventID string) (*models.Notification, error) {
	notification := &models.Notification{
		Type:    nType,
		Title:   title,
		Message: message,
		Channel: channel,
		EventID: eventID,
		Read:    false,
	}
	result := s.DB.Create(notification)
	return notification, result.Error
}

// List returns the feed, newest first.
func (s *ActivityService) List(unreadOnly bool) ([]models.Notification, error) {
	var notifications []models.Notification
	query := s.DB.Order("created_at desc")
	if unreadOnly {
		query = query.Where("read = ?", false)
	}
	result := query.Find(&notifications)
	return notifications, result.Error
}

func (s *ActivityService) MarkAsRead(id string) error {
	return s.DB.Model(&models.Notification{}).Where("id = ?", id).Update("read", true).Error
}

func (s *ActivityService) MarkAllAsRead() error {
	return s.DB.Model(&models.Notification{}).Where("read = ?", false).Update("read", true).Error
}

// AlertOps forwards a message to the operator webhook configured in
// settings, when one exists. Delivery is best effort.
func (s *ActivityService) AlertOps(title, message string) {
	var setting models.Setting
	err := s.DB.First(&setting, "key = ?", models.SettingOpsWebhookURL).Error
	if err != nil && err != gorm.ErrRecordNotFound {
		logger.Log().WithError(err).Warn("Failed to load ops webhook setting")
		return
	}
	if err == gorm.ErrRecordNotFound || setting.Value == "" {
		return
	}

	go func(url string) {
		if err := s.send(url, fmt.Sprintf("%s\n\n%s", title, message)); err != nil {
			logger.Log().WithError(err).Warn("Failed to deliver ops alert")
		}
	}(setting.Value)
}
