package models

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationTemplate_MarshalShape(t *testing.T) {
	tpl := NotificationTemplate{
		ID:      "tpl-1",
		EventID: "retailer_approved",
		Name:    "Retailer Approved",
		Contents: []TemplateContent{
			{Role: RoleRetailer, Channel: ChannelEmail, Subject: "Approved!", Body: "Hi {{retailer_name}}"},
			{Role: RoleRetailer, Channel: ChannelPush, Title: "Approved", Body: "You're in"},
		},
	}
	tpl.SetPlaceholderNames([]string{"retailer_name"})

	raw, err := json.Marshal(tpl)
	require.NoError(t, err)

	var wire struct {
		Placeholders []string                              `json:"placeholders"`
		Templates    map[string]map[string]json.RawMessage `json:"templates"`
	}
	require.NoError(t, json.Unmarshal(raw, &wire))

	assert.Equal(t, []string{"retailer_name"}, wire.Placeholders)
	// Every role appears, each with all four channels.
	require.Len(t, wire.Templates, 3)
	for _, role := range []string{"admin", "retailer", "customer"} {
		assert.Len(t, wire.Templates[role], 4, role)
	}

	// Email leaves carry a subject, SMS leaves don't.
	assert.Contains(t, string(wire.Templates["retailer"]["email"]), `"subject":"Approved!"`)
	assert.NotContains(t, string(wire.Templates["retailer"]["sms"]), "subject")
}

func TestNotificationTemplate_UnmarshalNormalizesGrid(t *testing.T) {
	raw := []byte(`{
		"id": "tpl-1",
		"event_id": "retailer_approved",
		"name": "Retailer Approved",
		"placeholders": ["retailer_name"],
		"templates": {
			"retailer": {
				"email": {"subject": "Approved!", "body": "Hi {{retailer_name}}"}
			}
		}
	}`)

	var tpl NotificationTemplate
	require.NoError(t, json.Unmarshal(raw, &tpl))

	// The sparse payload expands into the full matrix.
	assert.Len(t, tpl.Contents, len(Roles())*len(Channels()))
	row := tpl.ContentFor(RoleRetailer, ChannelEmail)
	require.NotNil(t, row)
	assert.Equal(t, "Approved!", row.Subject)

	empty := tpl.ContentFor(RoleAdmin, ChannelSMS)
	require.NotNil(t, empty)
	assert.Empty(t, empty.Body)
}

func TestNotificationTemplate_EnsureGrid(t *testing.T) {
	tpl := NotificationTemplate{
		ID:       "tpl-1",
		Contents: []TemplateContent{{Role: RoleAdmin, Channel: ChannelEmail, Body: "kept"}},
	}
	tpl.EnsureGrid()

	assert.Len(t, tpl.Contents, len(Roles())*len(Channels()))
	assert.Equal(t, "kept", tpl.ContentFor(RoleAdmin, ChannelEmail).Body)

	// Idempotent.
	tpl.EnsureGrid()
	assert.Len(t, tpl.Contents, len(Roles())*len(Channels()))
}

func TestChannelCredential_Redacted(t *testing.T) {
	cred := ChannelCredential{
		Channel:   ChannelSMS,
		Provider:  "twilio",
		AccountID: "AC123",
		AuthToken: "secret",
		Status:    StatusConfigured,
	}

	view := cred.Redacted()
	assert.True(t, view.AuthTokenSet)
	assert.False(t, view.PasswordSet)
	assert.Equal(t, "AC123", view.AccountID)

	raw, err := json.Marshal(view)
	require.NoError(t, err)
	assert.NotContains(t, string(raw), "secret")
}

func TestCredentialChannelKey(t *testing.T) {
	assert.Equal(t, Channel("smtp"), CredentialChannel(ChannelEmail))
	assert.Equal(t, ChannelSMS, CredentialChannel(ChannelSMS))
}
