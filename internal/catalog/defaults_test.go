package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/render"
)

func placeholderRefs(text string) []string {
	return render.Names(text)
}

func TestDefaults_EveryEventHasTemplate(t *testing.T) {
	events, templates := Defaults()
	require.NotEmpty(t, events)

	byEvent := make(map[string]models.NotificationTemplate)
	for _, tpl := range templates {
		byEvent[tpl.EventID] = tpl
	}

	for _, e := range events {
		tpl, ok := byEvent[e.ID]
		assert.True(t, ok, "event %s has no template", e.ID)
		assert.Equal(t, e.Category, tpl.Category, "event %s category mismatch", e.ID)
	}
	assert.Len(t, templates, len(events))
}

func TestDefaults_FullContentGrid(t *testing.T) {
	_, templates := Defaults()
	for _, tpl := range templates {
		require.Len(t, tpl.Contents, 12, "template %s misses leaves", tpl.EventID)
		seen := make(map[models.Role]map[models.Channel]bool)
		for _, row := range tpl.Contents {
			if seen[row.Role] == nil {
				seen[row.Role] = make(map[models.Channel]bool)
			}
			assert.False(t, seen[row.Role][row.Channel], "duplicate leaf %s/%s/%s", tpl.EventID, row.Role, row.Channel)
			seen[row.Role][row.Channel] = true
		}
		for _, role := range models.Roles() {
			for _, ch := range models.Channels() {
				assert.True(t, seen[role][ch], "missing leaf %s/%s/%s", tpl.EventID, role, ch)
			}
		}
	}
}

func TestDefaults_RetailerApproved(t *testing.T) {
	events, templates := Defaults()

	var approved *models.NotificationEvent
	for i := range events {
		if events[i].ID == "retailer_approved" {
			approved = &events[i]
		}
	}
	require.NotNil(t, approved)
	assert.True(t, approved.IsEnabled)
	assert.Equal(t, []models.Role{models.RoleRetailer}, approved.Recipients())
	assert.True(t, approved.ChannelEnabled(models.ChannelEmail))

	for _, tpl := range templates {
		if tpl.EventID != "retailer_approved" {
			continue
		}
		row := tpl.ContentFor(models.RoleRetailer, models.ChannelEmail)
		require.NotNil(t, row)
		assert.Equal(t, "Congratulations! Your {{app_name}} Retailer Account is Approved", row.Subject)
		assert.Contains(t, tpl.PlaceholderNames(), "app_name")
	}
}

func TestDefaults_PlaceholdersDeclared(t *testing.T) {
	_, templates := Defaults()
	for _, tpl := range templates {
		names := tpl.PlaceholderNames()
		require.NotEmpty(t, names, "template %s declares no placeholders", tpl.EventID)
		declared := make(map[string]bool, len(names))
		for _, n := range names {
			declared[n] = true
		}
		// Every placeholder referenced in content must be declared.
		for _, row := range tpl.Contents {
			for _, text := range []string{row.Subject, row.Title, row.Body} {
				for _, used := range placeholderRefs(text) {
					assert.True(t, declared[used], "template %s uses undeclared placeholder %s", tpl.EventID, used)
				}
			}
		}
	}
}
