package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/trendpin/notify/internal/models"
)

const nexmoBaseURL = "https://rest.nexmo.com"

// NexmoProvider delivers SMS through the Vonage (Nexmo) REST API.
type NexmoProvider struct {
	apiKey    string
	apiSecret string
	from      string

	BaseURL string
	client  *http.Client
}

func NewNexmo(cred *models.ChannelCredential) *NexmoProvider {
	return &NexmoProvider{
		apiKey:    cred.AccountID,
		apiSecret: cred.AuthToken,
		from:      cred.FromNumber,
		BaseURL:   nexmoBaseURL,
		client:    newHTTPClient(),
	}
}

// Test queries the account balance endpoint, which requires valid keys.
func (p *NexmoProvider) Test(ctx context.Context) error {
	if p.apiKey == "" || p.apiSecret == "" {
		return fmt.Errorf("nexmo api key and secret are required")
	}

	q := url.Values{}
	q.Set("api_key", p.apiKey)
	q.Set("api_secret", p.apiSecret)
	endpoint := fmt.Sprintf("%s/account/get-balance?%s", p.BaseURL, q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("nexmo unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("nexmo rejected credentials: %s", readBody(resp))
	}
	return nil
}

// Send posts one SMS. Nexmo answers 200 even for failures, so the per-message
// status in the JSON body is authoritative.
func (p *NexmoProvider) Send(ctx context.Context, msg Message, to string) error {
	form := url.Values{}
	form.Set("api_key", p.apiKey)
	form.Set("api_secret", p.apiSecret)
	form.Set("from", p.from)
	form.Set("to", to)
	form.Set("text", msg.Body)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/sms/json", strings.NewReader(form.Encode()))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("nexmo unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("nexmo returned status %d: %s", resp.StatusCode, readBody(resp))
	}

	var parsed struct {
		Messages []struct {
			Status    string `json:"status"`
			ErrorText string `json:"error-text"`
		} `json:"messages"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("nexmo response unreadable: %w", err)
	}
	for _, m := range parsed.Messages {
		if m.Status != "0" {
			return fmt.Errorf("nexmo delivery failed (status %s): %s", m.Status, m.ErrorText)
		}
	}
	return nil
}
