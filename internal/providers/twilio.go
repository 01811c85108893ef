package providers

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/trendpin/notify/internal/models"
)

const twilioBaseURL = "https://api.twilio.com"

// TwilioProvider delivers SMS or WhatsApp messages through the Twilio
// messaging API. The same account serves both channels; WhatsApp numbers
// carry a "whatsapp:" prefix on the wire.
type TwilioProvider struct {
	accountSID string
	authToken  string
	from       string
	whatsapp   bool

	// BaseURL is overridable for tests.
	BaseURL string
	client  *http.Client
}

func NewTwilio(cred *models.ChannelCredential, whatsapp bool) *TwilioProvider {
	return &TwilioProvider{
		accountSID: cred.AccountID,
		authToken:  cred.AuthToken,
		from:       cred.FromNumber,
		whatsapp:   whatsapp,
		BaseURL:    twilioBaseURL,
		client:     newHTTPClient(),
	}
}

// Test fetches the account resource, which fails on bad SID or token.
func (p *TwilioProvider) Test(ctx context.Context) error {
	if p.accountSID == "" || p.authToken == "" {
		return fmt.Errorf("twilio account SID and auth token are required")
	}

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s.json", p.BaseURL, url.PathEscape(p.accountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.SetBasicAuth(p.accountSID, p.authToken)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("twilio rejected credentials: %s", readBody(resp))
	}
	return nil
}

func (p *TwilioProvider) number(n string) string {
	if p.whatsapp && !strings.HasPrefix(n, "whatsapp:") {
		return "whatsapp:" + n
	}
	return n
}

// Send posts one message to the Twilio Messages endpoint.
func (p *TwilioProvider) Send(ctx context.Context, msg Message, to string) error {
	form := url.Values{}
	form.Set("From", p.number(p.from))
	form.Set("To", p.number(to))
	form.Set("Body", msg.Body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json", p.BaseURL, url.PathEscape(p.accountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.SetBasicAuth(p.accountSID, p.authToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("twilio unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("twilio returned status %d: %s", resp.StatusCode, readBody(resp))
	}
	return nil
}

// readBody returns a trimmed response body for error messages.
func readBody(resp *http.Response) string {
	b, err := io.ReadAll(io.LimitReader(resp.Body, 2048))
	if err != nil {
		return resp.Status
	}
	s := strings.TrimSpace(string(b))
	if s == "" {
		return resp.Status
	}
	return s
}
