package providers

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpin/notify/internal/models"
)

func TestForCredential_Selection(t *testing.T) {
	cases := []struct {
		channel  models.Channel
		provider string
		want     any
	}{
		{"smtp", "", &SMTPProvider{}},
		{models.ChannelSMS, "twilio", &TwilioProvider{}},
		{models.ChannelSMS, "nexmo", &NexmoProvider{}},
		{models.ChannelWhatsApp, "twilio", &TwilioProvider{}},
		{models.ChannelWhatsApp, "meta", &MetaWhatsAppProvider{}},
		{models.ChannelPush, "fcm", &FCMProvider{}},
		{models.ChannelPush, "gotify", &ShoutrrrProvider{}},
		{models.ChannelPush, "pushover", &ShoutrrrProvider{}},
	}

	for _, tc := range cases {
		p, err := ForCredential(&models.ChannelCredential{Channel: tc.channel, Provider: tc.provider})
		require.NoError(t, err, "%s/%s", tc.channel, tc.provider)
		assert.IsType(t, tc.want, p, "%s/%s", tc.channel, tc.provider)
	}
}

func TestForCredential_Unknown(t *testing.T) {
	_, err := ForCredential(&models.ChannelCredential{Channel: models.ChannelSMS, Provider: "carrier-pigeon"})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrUnknownProvider)

	_, err = ForCredential(&models.ChannelCredential{Channel: "fax"})
	assert.ErrorIs(t, err, ErrUnknownProvider)
}

func TestTwilio_WhatsAppNumberPrefix(t *testing.T) {
	p := NewTwilio(&models.ChannelCredential{FromNumber: "+1555000"}, true)
	assert.Equal(t, "whatsapp:+1555000", p.number("+1555000"))
	assert.Equal(t, "whatsapp:+1555000", p.number("whatsapp:+1555000"))

	sms := NewTwilio(&models.ChannelCredential{FromNumber: "+1555000"}, false)
	assert.Equal(t, "+1555000", sms.number("+1555000"))
}

func TestSMTP_BuildEmail(t *testing.T) {
	p := NewSMTP(&models.ChannelCredential{
		FromAddress: "noreply@trendpin.example",
		FromName:    "TrendPin",
	})

	raw := string(p.buildEmail(Message{Subject: "Hello", Body: "Body text"}, "ops@trendpin.example"))
	assert.Contains(t, raw, "From: TrendPin <noreply@trendpin.example>\r\n")
	assert.Contains(t, raw, "To: ops@trendpin.example\r\n")
	assert.Contains(t, raw, "Subject: Hello\r\n")
	assert.Contains(t, raw, "Content-Type: text/plain; charset=UTF-8\r\n")
	assert.Contains(t, raw, "\r\n\r\nBody text")
}

func TestSMTP_TestWithoutHost(t *testing.T) {
	p := NewSMTP(&models.ChannelCredential{})
	err := p.Test(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not configured")
}
