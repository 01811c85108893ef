// Package catalog holds the built-in notification catalog used to seed a
// fresh install. The catalog is loaded explicitly at startup and owned by
// the store afterwards; operators overwrite it through the config API.
package catalog

import "github.com/trendpin/notify/internal/models"

type leaf struct {
	role    models.Role
	ch      models.Channel
	subject string
	title   string
	body    string
}

// contents builds the full role×channel grid, empty everywhere except the
// given leaves. Every pair exists so renderers never hit a missing row.
func contents(leaves ...leaf) []models.TemplateContent {
	rows := make([]models.TemplateContent, 0, 12)
	for _, role := range models.Roles() {
		for _, ch := range models.Channels() {
			row := models.TemplateContent{Role: role, Channel: ch}
			for _, l := range leaves {
				if l.role == role && l.ch == ch {
					row.Subject = l.subject
					row.Title = l.title
					row.Body = l.body
				}
			}
			rows = append(rows, row)
		}
	}
	return rows
}

func event(id, name, description, category string, roles []models.Role, channels []models.Channel) models.NotificationEvent {
	e := models.NotificationEvent{
		ID:          id,
		Name:        name,
		Description: description,
		Category:    category,
		IsEnabled:   true,
	}
	for _, r := range roles {
		e.SetRecipient(r, true)
	}
	for _, ch := range channels {
		e.SetChannel(ch, true)
	}
	return e
}

func template(eventID, name, description, category string, placeholders []string, leaves ...leaf) models.NotificationTemplate {
	t := models.NotificationTemplate{
		EventID:     eventID,
		Name:        name,
		Description: description,
		Category:    category,
		Contents:    contents(leaves...),
	}
	t.SetPlaceholderNames(placeholders)
	return t
}

// Defaults returns the built-in event catalog and its message templates.
func Defaults() ([]models.NotificationEvent, []models.NotificationTemplate) {
	events := []models.NotificationEvent{
		event("retailer_registered", "Retailer Registered",
			"A new retailer signed up and awaits review.", "Retailer",
			[]models.Role{models.RoleAdmin},
			[]models.Channel{models.ChannelEmail}),
		event("retailer_approved", "Retailer Approved",
			"A retailer account was approved by an admin.", "Retailer",
			[]models.Role{models.RoleRetailer},
			[]models.Channel{models.ChannelEmail}),
		event("retailer_rejected", "Retailer Rejected",
			"A retailer application was rejected.", "Retailer",
			[]models.Role{models.RoleRetailer},
			[]models.Channel{models.ChannelEmail}),
		event("customer_registered", "Customer Registered",
			"A new customer created an account.", "Customer",
			[]models.Role{models.RoleCustomer},
			[]models.Channel{models.ChannelEmail}),
		event("order_placed", "Order Placed",
			"A customer placed a new order.", "Orders",
			[]models.Role{models.RoleRetailer, models.RoleCustomer},
			[]models.Channel{models.ChannelEmail, models.ChannelSMS}),
		event("order_shipped", "Order Shipped",
			"An order was handed to the carrier.", "Orders",
			[]models.Role{models.RoleCustomer},
			[]models.Channel{models.ChannelEmail, models.ChannelSMS, models.ChannelPush}),
		event("subscription_expiring", "Subscription Expiring",
			"A retailer subscription is about to expire.", "Subscription",
			[]models.Role{models.RoleRetailer},
			[]models.Channel{models.ChannelEmail, models.ChannelWhatsApp}),
		event("subscription_expired", "Subscription Expired",
			"A retailer subscription has lapsed.", "Subscription",
			[]models.Role{models.RoleRetailer},
			[]models.Channel{models.ChannelEmail, models.ChannelSMS, models.ChannelWhatsApp}),
	}

	templates := []models.NotificationTemplate{
		template("retailer_registered", "Retailer Registered", "Notifies admins about new retailer signups.", "Retailer",
			[]string{"app_name", "retailer_name", "retailer_email"},
			leaf{models.RoleAdmin, models.ChannelEmail,
				"New retailer registration on {{app_name}}", "",
				"{{retailer_name}} ({{retailer_email}}) just registered as a retailer on {{app_name}} and is waiting for review."},
		),
		template("retailer_approved", "Retailer Approved", "Welcomes an approved retailer.", "Retailer",
			[]string{"app_name", "retailer_name"},
			leaf{models.RoleRetailer, models.ChannelEmail,
				"Congratulations! Your {{app_name}} Retailer Account is Approved", "",
				"Hi {{retailer_name}},\n\nYour retailer account on {{app_name}} has been approved. You can now sign in and start listing products."},
			leaf{models.RoleRetailer, models.ChannelSMS, "", "",
				"{{app_name}}: your retailer account is approved. Welcome aboard, {{retailer_name}}!"},
		),
		template("retailer_rejected", "Retailer Rejected", "Tells a retailer their application was declined.", "Retailer",
			[]string{"app_name", "retailer_name", "reason"},
			leaf{models.RoleRetailer, models.ChannelEmail,
				"Update on your {{app_name}} retailer application", "",
				"Hi {{retailer_name}},\n\nWe could not approve your retailer application at this time. Reason: {{reason}}"},
		),
		template("customer_registered", "Customer Registered", "Welcomes a new customer.", "Customer",
			[]string{"app_name", "customer_name"},
			leaf{models.RoleCustomer, models.ChannelEmail,
				"Welcome to {{app_name}}!", "",
				"Hi {{customer_name}},\n\nThanks for joining {{app_name}}. Happy shopping!"},
		),
		template("order_placed", "Order Placed", "Confirms a new order to customer and retailer.", "Orders",
			[]string{"app_name", "customer_name", "retailer_name", "order_id", "order_total"},
			leaf{models.RoleCustomer, models.ChannelEmail,
				"Your {{app_name}} order {{order_id}} is confirmed", "",
				"Hi {{customer_name}},\n\nWe received your order {{order_id}} for {{order_total}}. We will let you know when it ships."},
			leaf{models.RoleCustomer, models.ChannelSMS, "", "",
				"{{app_name}}: order {{order_id}} confirmed ({{order_total}})."},
			leaf{models.RoleRetailer, models.ChannelEmail,
				"New order {{order_id}} on {{app_name}}", "",
				"Hi {{retailer_name}},\n\nYou received a new order {{order_id}} for {{order_total}}."},
			leaf{models.RoleRetailer, models.ChannelSMS, "", "",
				"{{app_name}}: new order {{order_id}} ({{order_total}})."},
		),
		template("order_shipped", "Order Shipped", "Tells the customer their order is on the way.", "Orders",
			[]string{"app_name", "customer_name", "order_id", "tracking_number"},
			leaf{models.RoleCustomer, models.ChannelEmail,
				"Your {{app_name}} order {{order_id}} has shipped", "",
				"Hi {{customer_name}},\n\nOrder {{order_id}} is on its way. Tracking number: {{tracking_number}}."},
			leaf{models.RoleCustomer, models.ChannelSMS, "", "",
				"{{app_name}}: order {{order_id}} shipped. Track it with {{tracking_number}}."},
			leaf{models.RoleCustomer, models.ChannelPush, "",
				"Order {{order_id}} shipped",
				"Your {{app_name}} order is on its way. Tracking: {{tracking_number}}."},
		),
		template("subscription_expiring", "Subscription Expiring", "Warns a retailer before their plan lapses.", "Subscription",
			[]string{"app_name", "retailer_name", "plan_name", "expiry_date"},
			leaf{models.RoleRetailer, models.ChannelEmail,
				"Your {{app_name}} {{plan_name}} plan expires on {{expiry_date}}", "",
				"Hi {{retailer_name}},\n\nYour {{plan_name}} subscription on {{app_name}} expires on {{expiry_date}}. Renew to keep your store live."},
			leaf{models.RoleRetailer, models.ChannelWhatsApp, "", "",
				"{{app_name}}: your {{plan_name}} plan expires on {{expiry_date}}. Renew to avoid interruption."},
		),
		template("subscription_expired", "Subscription Expired", "Tells a retailer their plan has lapsed.", "Subscription",
			[]string{"app_name", "retailer_name", "plan_name"},
			leaf{models.RoleRetailer, models.ChannelEmail,
				"Your {{app_name}} {{plan_name}} plan has expired", "",
				"Hi {{retailer_name}},\n\nYour {{plan_name}} subscription on {{app_name}} has expired. Your store is paused until you renew."},
			leaf{models.RoleRetailer, models.ChannelSMS, "", "",
				"{{app_name}}: your {{plan_name}} plan expired. Renew to reactivate your store."},
			leaf{models.RoleRetailer, models.ChannelWhatsApp, "", "",
				"{{app_name}}: your {{plan_name}} plan expired. Renew to reactivate your store."},
		),
	}

	return events, templates
}
