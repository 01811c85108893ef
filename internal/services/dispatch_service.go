package services

import (
	"context"
	"fmt"

	"github.com/trendpin/notify/internal/logger"
	"github.com/trendpin/notify/internal/metrics"
	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/providers"
	"github.com/trendpin/notify/internal/render"
)

// DispatchService sends a single fully-rendered test message: it resolves
// the template for (event, role), renders the channel content, resolves the
// recipient's address, and invokes the channel provider. Every failure
// comes back as a SendResult; nothing escapes this boundary as an error.
type DispatchService struct {
	credentials *CredentialService
	catalog     *CatalogService
	templates   *TemplateService
	recipients  *RecipientService
	activity    *ActivityService

	// providerFor is swappable in tests.
	providerFor func(*models.ChannelCredential) (providers.Provider, error)
}

func NewDispatchService(credentials *CredentialService, catalog *CatalogService, templates *TemplateService, recipients *RecipientService, activity *ActivityService) *DispatchService {
	return &DispatchService{
		credentials: credentials,
		catalog:     catalog,
		templates:   templates,
		recipients:  recipients,
		activity:    activity,
		providerFor: providers.ForCredential,
	}
}

// SendTest delivers one rendered message for (event, role) over channel to
// the recipient identified by recipientID, substituting values into the
// template placeholders.
func (s *DispatchService) SendTest(ctx context.Context, channel models.Channel, eventID string, role models.Role, recipientID string, values map[string]string) SendResult {
	result := s.sendTest(ctx, channel, eventID, role, recipientID, values)
	s.record(channel, eventID, result)
	return result
}

func (s *DispatchService) sendTest(ctx context.Context, channel models.Channel, eventID string, role models.Role, recipientID string, values map[string]string) SendResult {
	// Credentials first: an unconfigured channel must never reach a provider.
	cred, err := s.credentials.Get(models.CredentialChannel(channel))
	if err != nil {
		return sendFailure(FailureProviderError, "Delivery failed", err.Error())
	}
	if cred.Status == models.StatusNotConfigured || cred.Status == "" {
		return sendFailure(FailureNotConfigured,
			fmt.Sprintf("The %s channel is not configured", channel),
			"save or test channel credentials before sending")
	}

	event, err := s.catalog.GetEvent(eventID)
	if err != nil {
		return sendFailure(FailureMissingTemplate,
			fmt.Sprintf("No template configured for event %q", eventID), err.Error())
	}
	if !event.HasRecipient(role) {
		return sendFailure(FailureMissingTemplate,
			fmt.Sprintf("Event %q does not notify the %s role", eventID, role), "")
	}

	tpl, err := s.templates.GetByEvent(eventID)
	if err != nil {
		return sendFailure(FailureMissingTemplate,
			fmt.Sprintf("No template configured for event %q", eventID), err.Error())
	}

	content := models.TemplateContent{Role: role, Channel: channel}
	if row := tpl.ContentFor(role, channel); row != nil {
		content = *row
	}
	msg := providers.Message{
		Subject: render.Render(content.Subject, values),
		Title:   render.Render(content.Title, values),
		Body:    render.Render(content.Body, values),
	}

	recipient, err := s.recipients.Get(recipientID)
	if err != nil {
		return sendFailure(FailureMissingRecipient, "Recipient not found", err.Error())
	}
	address := recipient.AddressFor(channel)
	if address == "" {
		return sendFailure(FailureMissingRecipient,
			fmt.Sprintf("Recipient %s has no %s address", recipient.Name, channel), "")
	}

	provider, err := s.providerFor(cred)
	if err != nil {
		return sendFailure(FailureProviderError, "Delivery failed", err.Error())
	}
	if err := provider.Send(ctx, msg, address); err != nil {
		return sendFailure(FailureProviderError, "Delivery failed", err.Error())
	}

	return SendResult{
		Success: true,
		Message: fmt.Sprintf("Test %s message sent to %s", channel, recipient.Name),
	}
}

// record updates the activity feed and counters with the dispatch outcome.
func (s *DispatchService) record(channel models.Channel, eventID string, result SendResult) {
	outcome := "success"
	nType := models.NotificationTypeSuccess
	title := "Test message sent"
	if !result.Success {
		outcome = string(result.Kind)
		nType = models.NotificationTypeError
		title = "Test message failed"
	}
	metrics.IncTestSend(string(channel), outcome)

	if s.activity == nil {
		return
	}
	if _, err := s.activity.Record(nType, title, result.Message, string(channel), eventID); err != nil {
		logger.Log().WithError(err).Warn("Failed to record dispatch activity")
	}
	if !result.Success && result.Kind == FailureProviderError {
		s.activity.AlertOps(title, fmt.Sprintf("%s (%s): %s", result.Message, channel, result.Details))
	}
}
