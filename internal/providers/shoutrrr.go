package providers

import (
	"context"
	"fmt"
	"net/url"

	"github.com/containrrr/shoutrrr"

	"github.com/trendpin/notify/internal/models"
)

// ShoutrrrProvider delivers push notifications through services shoutrrr
// speaks natively (gotify, pushover). Gotify uses a fixed server URL and
// token; pushover resolves the per-recipient user key from the device token
// field, falling back to the account-level key.
type ShoutrrrProvider struct {
	service string // "gotify" or "pushover"
	host    string
	token   string
	userKey string

	// send is swappable for tests.
	send func(rawURL, message string) error
}

func NewShoutrrr(cred *models.ChannelCredential) *ShoutrrrProvider {
	return &ShoutrrrProvider{
		service: cred.Provider,
		host:    cred.Host,
		token:   cred.ServerKey,
		userKey: cred.AccountID,
		send:    shoutrrr.Send,
	}
}

func (p *ShoutrrrProvider) serviceURL(to string) (string, error) {
	switch p.service {
	case "gotify":
		if p.host == "" || p.token == "" {
			return "", fmt.Errorf("gotify host and token are required")
		}
		return fmt.Sprintf("gotify://%s/%s", p.host, url.PathEscape(p.token)), nil
	case "pushover":
		user := to
		if user == "" {
			user = p.userKey
		}
		if p.token == "" || user == "" {
			return "", fmt.Errorf("pushover token and user key are required")
		}
		return fmt.Sprintf("pushover://shoutrrr:%s@%s/", url.PathEscape(p.token), url.PathEscape(user)), nil
	}
	return "", fmt.Errorf("%w: push service %q", ErrUnknownProvider, p.service)
}

// Test delivers a short probe message to the configured service.
func (p *ShoutrrrProvider) Test(ctx context.Context) error {
	u, err := p.serviceURL("")
	if err != nil {
		return err
	}
	if err := p.send(u, "Connectivity test from TrendPin Notify"); err != nil {
		return fmt.Errorf("push service rejected test: %w", err)
	}
	return nil
}

// Send delivers one notification. Services without a separate title field
// receive the title on the first line of the message.
func (p *ShoutrrrProvider) Send(ctx context.Context, msg Message, to string) error {
	u, err := p.serviceURL(to)
	if err != nil {
		return err
	}
	body := msg.Body
	if msg.Title != "" {
		body = msg.Title + "\n\n" + msg.Body
	}
	if err := p.send(u, body); err != nil {
		return fmt.Errorf("push delivery failed: %w", err)
	}
	return nil
}
