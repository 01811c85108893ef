package handlers_test

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trendpin/notify/internal/api/handlers"
	"github.com/trendpin/notify/internal/models"
	"github.com/trendpin/notify/internal/services"
)

func templateRouter(t *testing.T) (*gin.Engine, *services.TemplateService) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := seededHandlerDB(t)
	templateService := services.NewTemplateService(db)
	handler := handlers.NewTemplateHandler(templateService)

	router := gin.New()
	router.GET("/notifications/templates", handler.List)
	router.GET("/notifications/templates/:id", handler.Get)
	router.PATCH("/notifications/templates/:id", handler.UpdateField)
	return router, templateService
}

func TestTemplateHandler_List(t *testing.T) {
	router, _ := templateRouter(t)

	w := doJSON(t, router, "GET", "/notifications/templates", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var templates []map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &templates))
	assert.Len(t, templates, 8)
}

func TestTemplateHandler_UpdateField(t *testing.T) {
	router, templateService := templateRouter(t)

	tpl, err := templateService.GetByEvent("retailer_approved")
	require.NoError(t, err)

	w := doJSON(t, router, "PATCH", "/notifications/templates/"+tpl.ID, map[string]string{
		"role":    "retailer",
		"channel": "email",
		"field":   "subject",
		"value":   "You're in, {{retailer_name}}!",
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	updated, err := templateService.Get(tpl.ID)
	require.NoError(t, err)
	row := updated.ContentFor(models.RoleRetailer, models.ChannelEmail)
	require.NotNil(t, row)
	assert.Equal(t, "You're in, {{retailer_name}}!", row.Subject)
}

func TestTemplateHandler_UpdateField_Validation(t *testing.T) {
	router, templateService := templateRouter(t)
	tpl, err := templateService.GetByEvent("retailer_approved")
	require.NoError(t, err)

	// Subject is not a valid SMS field.
	w := doJSON(t, router, "PATCH", "/notifications/templates/"+tpl.ID, map[string]string{
		"role": "retailer", "channel": "sms", "field": "subject", "value": "nope",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Missing required body fields.
	w = doJSON(t, router, "PATCH", "/notifications/templates/"+tpl.ID, map[string]string{
		"role": "retailer",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	// Unknown template.
	w = doJSON(t, router, "PATCH", "/notifications/templates/unknown", map[string]string{
		"role": "retailer", "channel": "email", "field": "subject", "value": "x",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestTemplateHandler_Get(t *testing.T) {
	router, templateService := templateRouter(t)
	tpl, err := templateService.GetByEvent("order_shipped")
	require.NoError(t, err)

	w := doJSON(t, router, "GET", "/notifications/templates/"+tpl.ID, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// Contents serialize as per-role bundles keyed by channel.
	var payload map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	assert.Equal(t, "order_shipped", payload["event_id"])

	w = doJSON(t, router, "GET", "/notifications/templates/unknown", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}
