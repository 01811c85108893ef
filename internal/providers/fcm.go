package providers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/trendpin/notify/internal/models"
)

const fcmBaseURL = "https://fcm.googleapis.com"

// FCMProvider delivers push notifications through Firebase Cloud Messaging
// using a legacy server key.
type FCMProvider struct {
	serverKey string

	BaseURL string
	client  *http.Client
}

func NewFCM(cred *models.ChannelCredential) *FCMProvider {
	return &FCMProvider{
		serverKey: cred.ServerKey,
		BaseURL:   fcmBaseURL,
		client:    newHTTPClient(),
	}
}

func (p *FCMProvider) post(ctx context.Context, payload map[string]any) (*http.Response, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.BaseURL+"/fcm/send", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "key="+p.serverKey)
	req.Header.Set("Content-Type", "application/json")
	return p.client.Do(req)
}

// Test issues a dry-run send against a throwaway token. FCM authenticates
// the server key before looking at the token, so an auth failure surfaces
// as 401/403 while a bad token still proves the key is valid.
func (p *FCMProvider) Test(ctx context.Context) error {
	if p.serverKey == "" {
		return fmt.Errorf("fcm server key is required")
	}

	resp, err := p.post(ctx, map[string]any{
		"to":      "credential-probe",
		"dry_run": true,
	})
	if err != nil {
		return fmt.Errorf("fcm unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusUnauthorized || resp.StatusCode == http.StatusForbidden {
		return fmt.Errorf("fcm rejected server key: %s", readBody(resp))
	}
	if resp.StatusCode >= 500 {
		return fmt.Errorf("fcm returned status %d: %s", resp.StatusCode, readBody(resp))
	}
	return nil
}

// Send delivers one notification to a device token.
func (p *FCMProvider) Send(ctx context.Context, msg Message, to string) error {
	resp, err := p.post(ctx, map[string]any{
		"to": to,
		"notification": map[string]string{
			"title": msg.Title,
			"body":  msg.Body,
		},
	})
	if err != nil {
		return fmt.Errorf("fcm unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		return fmt.Errorf("fcm returned status %d: %s", resp.StatusCode, readBody(resp))
	}

	var parsed struct {
		Failure int `json:"failure"`
		Results []struct {
			Error string `json:"error"`
		} `json:"results"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return fmt.Errorf("fcm response unreadable: %w", err)
	}
	if parsed.Failure > 0 {
		reason := "unknown"
		if len(parsed.Results) > 0 && parsed.Results[0].Error != "" {
			reason = parsed.Results[0].Error
		}
		return fmt.Errorf("fcm delivery failed: %s", reason)
	}
	return nil
}
