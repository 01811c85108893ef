package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"

	"github.com/trendpin/notify/internal/models"
)

const metaBaseURL = "https://graph.facebook.com/v19.0"

// MetaWhatsAppProvider delivers WhatsApp messages through the Meta Cloud API
// using a business phone number id and a bearer token.
type MetaWhatsAppProvider struct {
	phoneNumberID string
	token         string

	BaseURL string
	client  *http.Client
}

func NewMetaWhatsApp(cred *models.ChannelCredential) *MetaWhatsAppProvider {
	return &MetaWhatsAppProvider{
		phoneNumberID: cred.AccountID,
		token:         cred.AuthToken,
		BaseURL:       metaBaseURL,
		client:        newHTTPClient(),
	}
}

// Test fetches the phone number resource to validate token and number id.
func (p *MetaWhatsAppProvider) Test(ctx context.Context) error {
	if p.phoneNumberID == "" || p.token == "" {
		return fmt.Errorf("whatsapp phone number id and access token are required")
	}

	endpoint := fmt.Sprintf("%s/%s?fields=id", p.BaseURL, url.PathEscape(p.phoneNumberID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("whatsapp api rejected credentials: %s", readBody(resp))
	}
	return nil
}

// Send posts one text message to the Cloud API messages endpoint.
func (p *MetaWhatsAppProvider) Send(ctx context.Context, msg Message, to string) error {
	payload := map[string]any{
		"messaging_product": "whatsapp",
		"to":                to,
		"type":              "text",
		"text":              map[string]string{"body": msg.Body},
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	endpoint := fmt.Sprintf("%s/%s/messages", p.BaseURL, url.PathEscape(p.phoneNumberID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("whatsapp api unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("whatsapp api returned status %d: %s", resp.StatusCode, readBody(resp))
	}
	return nil
}
