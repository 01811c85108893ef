package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/providers"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.NotificationEvent{},
		&models.NotificationTemplate{},
		&models.TemplateContent{},
		&models.ChannelCredential{},
		&models.Recipient{},
		&models.Notification{},
		&models.Setting{},
		&models.User{},
	))
	return db
}

// fakeProvider records calls instead of reaching a gateway.
type fakeProvider struct {
	testErr error
	sendErr error

	sentTo   []string
	sentMsgs []providers.Message
}

func (f *fakeProvider) Test(ctx context.Context) error { return f.testErr }

func (f *fakeProvider) Send(ctx context.Context, msg providers.Message, to string) error {
	f.sentTo = append(f.sentTo, to)
	f.sentMsgs = append(f.sentMsgs, msg)
	return f.sendErr
}

func fakeProviderFor(p *fakeProvider) func(*models.ChannelCredential) (providers.Provider, error) {
	return func(*models.ChannelCredential) (providers.Provider, error) { return p, nil }
}
