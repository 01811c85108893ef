// Package providers implements the delivery contract behind each channel:
// a live connectivity probe and single-message delivery. Implementations
// exist for SMTP, the Twilio/Nexmo SMS gateways, Twilio/Meta WhatsApp, and
// FCM/Gotify/Pushover push services.
package providers

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/trendpin/notify/internal/models"
)

// Message is a fully rendered notification ready for delivery. Subject is
// email-only and Title push-only; every channel carries a Body.
type Message struct {
	Subject string
	Title   string
	Body    string
}

// Provider is the contract a channel integration must satisfy.
type Provider interface {
	// Test issues a provider-specific validation probe without delivering
	// a message to anyone.
	Test(ctx context.Context) error
	// Send delivers msg to the channel-specific address (email address,
	// phone number, or device token).
	Send(ctx context.Context, msg Message, to string) error
}

var ErrUnknownProvider = errors.New("unknown provider")

// ForCredential selects the integration for a credential bundle.
func ForCredential(cred *models.ChannelCredential) (Provider, error) {
	switch cred.Channel {
	case models.CredentialChannel(models.ChannelEmail):
		return NewSMTP(cred), nil
	case models.ChannelSMS:
		switch cred.Provider {
		case "twilio":
			return NewTwilio(cred, false), nil
		case "nexmo":
			return NewNexmo(cred), nil
		}
	case models.ChannelWhatsApp:
		switch cred.Provider {
		case "twilio":
			return NewTwilio(cred, true), nil
		case "meta":
			return NewMetaWhatsApp(cred), nil
		}
	case models.ChannelPush:
		switch cred.Provider {
		case "fcm":
			return NewFCM(cred), nil
		case "gotify", "pushover":
			return NewShoutrrr(cred), nil
		}
	}
	return nil, fmt.Errorf("%w: channel %q provider %q", ErrUnknownProvider, cred.Channel, cred.Provider)
}

// newHTTPClient returns the client used for gateway calls: short timeout,
// no automatic redirects.
func newHTTPClient() *http.Client {
	return &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
