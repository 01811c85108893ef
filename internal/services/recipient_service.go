package services

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/trendpin/notify/internal/models"
)

// RecipientService looks up concrete recipients for test sends. It mirrors
// the contact details of the production user base; the core only resolves
// addresses from it.
type RecipientService struct {
	DB *gorm.DB
}

func NewRecipientService(db *gorm.DB) *RecipientService {
	return &RecipientService{DB: db}
}

// ListByRole returns test-send candidates for one role.
func (s *RecipientService) ListByRole(role models.Role) ([]models.Recipient, error) {
	if !models.ValidRole(string(role)) {
		return nil, fmt.Errorf("unknown role %q", role)
	}
	var recipients []models.Recipient
	if err := s.DB.Where("role = ?", role).Order("name").Find(&recipients).Error; err != nil {
		return nil, err
	}
	return recipients, nil
}

// Get fetches one recipient by id.
func (s *RecipientService) Get(id string) (*models.Recipient, error) {
	var recipient models.Recipient
	if err := s.DB.First(&recipient, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &recipient, nil
}
