package providers

import (
	"bytes"
	"context"
	"crypto/tls"
	"errors"
	"fmt"
	"net"
	"net/smtp"

	"github.com/trendpin/notify/internal/models"
)

// SMTPProvider sends email through a configured SMTP relay with "none",
// "ssl", or "starttls" transport security.
type SMTPProvider struct {
	cred *models.ChannelCredential
}

func NewSMTP(cred *models.ChannelCredential) *SMTPProvider {
	return &SMTPProvider{cred: cred}
}

func (p *SMTPProvider) addr() string {
	port := p.cred.Port
	if port == 0 {
		port = 587
	}
	return fmt.Sprintf("%s:%d", p.cred.Host, port)
}

func (p *SMTPProvider) tlsConfig() *tls.Config {
	return &tls.Config{
		ServerName: p.cred.Host,
		MinVersion: tls.VersionTLS12,
	}
}

func (p *SMTPProvider) auth() smtp.Auth {
	if p.cred.Username != "" && p.cred.Password != "" {
		return smtp.PlainAuth("", p.cred.Username, p.cred.Password, p.cred.Host)
	}
	return nil
}

// client dials the relay and completes the transport-security handshake.
func (p *SMTPProvider) client(ctx context.Context) (*smtp.Client, error) {
	if p.cred.Host == "" {
		return nil, errors.New("SMTP host not configured")
	}

	dialer := &net.Dialer{}
	if p.cred.Encryption == "ssl" {
		tlsDialer := &tls.Dialer{NetDialer: dialer, Config: p.tlsConfig()}
		conn, err := tlsDialer.DialContext(ctx, "tcp", p.addr())
		if err != nil {
			return nil, fmt.Errorf("SSL connection failed: %w", err)
		}
		client, err := smtp.NewClient(conn, p.cred.Host)
		if err != nil {
			conn.Close()
			return nil, fmt.Errorf("failed to create SMTP client: %w", err)
		}
		return client, nil
	}

	conn, err := dialer.DialContext(ctx, "tcp", p.addr())
	if err != nil {
		return nil, fmt.Errorf("SMTP connection failed: %w", err)
	}
	client, err := smtp.NewClient(conn, p.cred.Host)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to create SMTP client: %w", err)
	}
	if p.cred.Encryption == "starttls" {
		if err := client.StartTLS(p.tlsConfig()); err != nil {
			client.Close()
			return nil, fmt.Errorf("STARTTLS failed: %w", err)
		}
	}
	return client, nil
}

// Test dials the relay, negotiates transport security, and authenticates
// when credentials are present. No message is sent.
func (p *SMTPProvider) Test(ctx context.Context) error {
	client, err := p.client(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth := p.auth(); auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}
	return nil
}

// Send delivers msg.Body with msg.Subject to the given email address.
func (p *SMTPProvider) Send(ctx context.Context, msg Message, to string) error {
	if p.cred.FromAddress == "" {
		return errors.New("SMTP from address not configured")
	}

	client, err := p.client(ctx)
	if err != nil {
		return err
	}
	defer client.Close()

	if auth := p.auth(); auth != nil {
		if err := client.Auth(auth); err != nil {
			return fmt.Errorf("authentication failed: %w", err)
		}
	}

	if err := client.Mail(p.cred.FromAddress); err != nil {
		return fmt.Errorf("MAIL FROM failed: %w", err)
	}
	if err := client.Rcpt(to); err != nil {
		return fmt.Errorf("RCPT TO failed: %w", err)
	}

	w, err := client.Data()
	if err != nil {
		return fmt.Errorf("DATA failed: %w", err)
	}
	if _, err := w.Write(p.buildEmail(msg, to)); err != nil {
		return fmt.Errorf("failed to write message: %w", err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("failed to close data writer: %w", err)
	}

	return client.Quit()
}

// buildEmail constructs a properly formatted email message.
func (p *SMTPProvider) buildEmail(msg Message, to string) []byte {
	from := p.cred.FromAddress
	if p.cred.FromName != "" {
		from = fmt.Sprintf("%s <%s>", p.cred.FromName, p.cred.FromAddress)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, "From: %s\r\n", from)
	fmt.Fprintf(&buf, "To: %s\r\n", to)
	fmt.Fprintf(&buf, "Subject: %s\r\n", msg.Subject)
	buf.WriteString("MIME-Version: 1.0\r\n")
	buf.WriteString("Content-Type: text/plain; charset=UTF-8\r\n")
	buf.WriteString("\r\n")
	buf.WriteString(msg.Body)
	return buf.Bytes()
}
