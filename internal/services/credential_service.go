package services

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/trendpin/notify/internal/logger"
	"github.com/trendpin/notify/internal/metrics"
	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/providers"
)

// CredentialChannels lists the channels the credential store keys on. Email
// credentials are keyed "smtp".
func CredentialChannels() []models.Channel {
	return []models.Channel{
		models.CredentialChannel(models.ChannelEmail),
		models.ChannelSMS,
		models.ChannelWhatsApp,
		models.ChannelPush,
	}
}

// ValidCredentialChannel reports whether s names a credential channel.
func ValidCredentialChannel(s string) bool {
	for _, ch := range CredentialChannels() {
		if string(ch) == s {
			return true
		}
	}
	return false
}

// CredentialService owns per-channel provider credentials and the derived
// configuration status. Status transitions happen only on load, save
// results, and test results; a failed test never downgrades a configured
// channel.
type CredentialService struct {
	DB *gorm.DB

	// providerFor is swappable in tests to avoid live probes.
	providerFor func(*models.ChannelCredential) (providers.Provider, error)
}

func NewCredentialService(db *gorm.DB) *CredentialService {
	return &CredentialService{DB: db, providerFor: providers.ForCredential}
}

// Get returns the stored credential for a channel, or an unsaved
// not-configured record when none exists yet.
func (s *CredentialService) Get(channel models.Channel) (*models.ChannelCredential, error) {
	var cred models.ChannelCredential
	err := s.DB.First(&cred, "channel = ?", channel).Error
	if err == gorm.ErrRecordNotFound {
		return &models.ChannelCredential{Channel: channel, Status: models.StatusNotConfigured}, nil
	}
	if err != nil {
		return nil, err
	}
	return &cred, nil
}

// List returns the redacted credential bundle for every channel.
func (s *CredentialService) List() ([]models.CredentialView, error) {
	views := make([]models.CredentialView, 0, 4)
	for _, ch := range CredentialChannels() {
		cred, err := s.Get(ch)
		if err != nil {
			return nil, err
		}
		views = append(views, cred.Redacted())
	}
	return views, nil
}

// Statuses returns the derived configuration status per channel.
func (s *CredentialService) Statuses() (map[models.Channel]models.CredentialStatus, error) {
	statuses := make(map[models.Channel]models.CredentialStatus, 4)
	for _, ch := range CredentialChannels() {
		cred, err := s.Get(ch)
		if err != nil {
			return nil, err
		}
		statuses[ch] = cred.Status
	}
	return statuses, nil
}

// merge copies input onto base. Secrets are write-mostly: a blank incoming
// secret keeps the stored value, so the UI never has to round-trip them.
func merge(base, input *models.ChannelCredential) *models.ChannelCredential {
	out := *base
	out.Provider = input.Provider
	out.Host = input.Host
	out.Port = input.Port
	out.Username = input.Username
	out.Encryption = input.Encryption
	out.FromAddress = input.FromAddress
	out.FromName = input.FromName
	out.AccountID = input.AccountID
	out.FromNumber = input.FromNumber
	out.ProjectID = input.ProjectID
	if input.Password != "" {
		out.Password = input.Password
	}
	if input.AuthToken != "" {
		out.AuthToken = input.AuthToken
	}
	if input.ServerKey != "" {
		out.ServerKey = input.ServerKey
	}
	return &out
}

// Save upserts the credential for one channel. A successful save
// optimistically transitions the channel to configured.
func (s *CredentialService) Save(channel models.Channel, input *models.ChannelCredential) (*models.ChannelCredential, error) {
	if !ValidCredentialChannel(string(channel)) {
		return nil, fmt.Errorf("unknown credential channel %q", channel)
	}

	stored, err := s.Get(channel)
	if err != nil {
		return nil, err
	}

	cred := merge(stored, input)
	cred.Channel = channel
	cred.Status = models.StatusConfigured
	cred.StatusDetail = ""

	if err := s.DB.Save(cred).Error; err != nil {
		return nil, fmt.Errorf("save %s credentials: %w", channel, err)
	}

	logger.WithFields(map[string]interface{}{"channel": channel, "provider": cred.Provider}).Info("Channel credentials saved")
	return cred, nil
}

// Test probes the channel's provider with the stored credentials, optionally
// overlaid with an unsaved field bundle, and applies the status transition.
// Only one result per channel is meaningful at a time; the last completed
// test wins.
func (s *CredentialService) Test(ctx context.Context, channel models.Channel, override *models.ChannelCredential) TestResult {
	if !ValidCredentialChannel(string(channel)) {
		return TestResult{Success: false, Message: "Connection failed", Details: fmt.Sprintf("unknown credential channel %q", channel)}
	}

	stored, err := s.Get(channel)
	if err != nil {
		return TestResult{Success: false, Message: "Connection failed", Details: err.Error()}
	}
	effective := stored
	if override != nil {
		effective = merge(stored, override)
		effective.Channel = channel
	}

	provider, err := s.providerFor(effective)
	if err == nil {
		err = provider.Test(ctx)
	}

	if err != nil {
		metrics.IncConnectivityTest(string(channel), "failure")
		s.applyTestFailure(stored, err)
		return TestResult{Success: false, Message: "Connection failed", Details: err.Error()}
	}

	metrics.IncConnectivityTest(string(channel), "success")
	s.applyTestSuccess(stored)
	return TestResult{Success: true, Message: fmt.Sprintf("%s connection verified", channel)}
}

// applyTestSuccess persists the configured status on the stored row. Field
// values from an unsaved override are never committed here; only an explicit
// save writes credentials. A test may precede the first save, in which case
// the row is created empty to carry the status.
func (s *CredentialService) applyTestSuccess(cred *models.ChannelCredential) {
	cred.Status = models.StatusConfigured
	cred.StatusDetail = ""
	if err := s.DB.Save(cred).Error; err != nil {
		logger.Log().WithError(err).Warn("Failed to persist credential status")
	}
}

// applyTestFailure records an error status, but never downgrades a channel
// that is already configured: status only improves from tests.
func (s *CredentialService) applyTestFailure(stored *models.ChannelCredential, cause error) {
	if stored.Status == models.StatusConfigured {
		return
	}
	stored.Status = models.StatusError
	stored.StatusDetail = cause.Error()
	if err := s.DB.Save(stored).Error; err != nil {
		logger.Log().WithError(err).Warn("Failed to persist credential status")
	}
}
