package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpin/notify/internal/models"
)

func seededTemplateService(t *testing.T) *TemplateService {
	t.Helper()
	db := setupTestDB(t)
	require.NoError(t, NewCatalogService(db).EnsureSeeded())
	return NewTemplateService(db)
}

func TestTemplateService_GetByEvent(t *testing.T) {
	service := seededTemplateService(t)

	tpl, err := service.GetByEvent("retailer_approved")
	require.NoError(t, err)
	assert.Equal(t, "retailer_approved", tpl.EventID)
	assert.Len(t, tpl.Contents, len(models.Roles())*len(models.Channels()))

	_, err = service.GetByEvent("no_such_event")
	assert.Error(t, err)
}

func TestTemplateService_UpdateField_SingleLeaf(t *testing.T) {
	service := seededTemplateService(t)

	tpl, err := service.GetByEvent("retailer_approved")
	require.NoError(t, err)
	before := make(map[string]models.TemplateContent)
	for _, row := range tpl.Contents {
		before[string(row.Role)+"/"+string(row.Channel)] = row
	}

	updated, err := service.UpdateField(tpl.ID, models.RoleRetailer, models.ChannelEmail, "subject", "Welcome aboard, {{retailer_name}}")
	require.NoError(t, err)

	for _, row := range updated.Contents {
		key := string(row.Role) + "/" + string(row.Channel)
		if row.Role == models.RoleRetailer && row.Channel == models.ChannelEmail {
			assert.Equal(t, "Welcome aboard, {{retailer_name}}", row.Subject)
			assert.Equal(t, before[key].Body, row.Body, "body must survive a subject edit")
			continue
		}
		// Every other leaf is untouched.
		assert.Equal(t, before[key].Subject, row.Subject, key)
		assert.Equal(t, before[key].Title, row.Title, key)
		assert.Equal(t, before[key].Body, row.Body, key)
	}
}

func TestTemplateService_UpdateField_ChannelFieldRules(t *testing.T) {
	service := seededTemplateService(t)
	tpl, err := service.GetByEvent("order_placed")
	require.NoError(t, err)

	// SMS has no subject, push has no subject, email has no title.
	_, err = service.UpdateField(tpl.ID, models.RoleCustomer, models.ChannelSMS, "subject", "nope")
	assert.Error(t, err)
	_, err = service.UpdateField(tpl.ID, models.RoleCustomer, models.ChannelPush, "subject", "nope")
	assert.Error(t, err)
	_, err = service.UpdateField(tpl.ID, models.RoleCustomer, models.ChannelEmail, "title", "nope")
	assert.Error(t, err)

	_, err = service.UpdateField(tpl.ID, models.RoleCustomer, models.ChannelSMS, "body", "Order {{order_id}} received")
	assert.NoError(t, err)
	_, err = service.UpdateField(tpl.ID, models.Role("intern"), models.ChannelSMS, "body", "nope")
	assert.Error(t, err)
	_, err = service.UpdateField("no-such-template", models.RoleCustomer, models.ChannelSMS, "body", "nope")
	assert.Error(t, err)
}

func TestTemplateService_UpdateField_EmptyValueAllowed(t *testing.T) {
	service := seededTemplateService(t)
	tpl, err := service.GetByEvent("retailer_approved")
	require.NoError(t, err)

	updated, err := service.UpdateField(tpl.ID, models.RoleRetailer, models.ChannelEmail, "subject", "")
	require.NoError(t, err)
	row := updated.ContentFor(models.RoleRetailer, models.ChannelEmail)
	require.NotNil(t, row)
	assert.Empty(t, row.Subject)
}

func TestTemplateService_UpdateField_CreatesMissingLeaf(t *testing.T) {
	service := seededTemplateService(t)
	tpl, err := service.GetByEvent("retailer_approved")
	require.NoError(t, err)

	// Drop one row to simulate a template stored before the grid was full.
	require.NoError(t, service.DB.
		Where("template_id = ? AND role = ? AND channel = ?", tpl.ID, models.RoleAdmin, models.ChannelPush).
		Delete(&models.TemplateContent{}).Error)

	updated, err := service.UpdateField(tpl.ID, models.RoleAdmin, models.ChannelPush, "title", "Retailer approved")
	require.NoError(t, err)
	row := updated.ContentFor(models.RoleAdmin, models.ChannelPush)
	require.NotNil(t, row)
	assert.Equal(t, "Retailer approved", row.Title)
}

func TestDefaultRole(t *testing.T) {
	event := &models.NotificationEvent{NotifyRetailer: true, NotifyCustomer: true}
	assert.Equal(t, models.RoleRetailer, DefaultRole(event))

	event = &models.NotificationEvent{NotifyCustomer: true}
	assert.Equal(t, models.RoleCustomer, DefaultRole(event))

	// Empty recipient set falls back to admin.
	assert.Equal(t, models.RoleAdmin, DefaultRole(&models.NotificationEvent{}))
}
