package models

// Channel identifies a delivery channel for business notifications.
type Channel string

const (
	ChannelEmail    Channel = "email"
	ChannelSMS      Channel = "sms"
	ChannelWhatsApp Channel = "whatsapp"
	ChannelPush     Channel = "push"
)

// Channels returns every delivery channel in display order.
func Channels() []Channel {
	return []Channel{ChannelEmail, ChannelSMS, ChannelWhatsApp, ChannelPush}
}

// ValidChannel reports whether s names a known delivery channel.
func ValidChannel(s string) bool {
	switch Channel(s) {
	case ChannelEmail, ChannelSMS, ChannelWhatsApp, ChannelPush:
		return true
	}
	return false
}

// Role identifies a recipient role for business notifications.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleRetailer Role = "retailer"
	RoleCustomer Role = "customer"
)

// Roles returns every recipient role in its fixed order: admin, retailer, customer.
func Roles() []Role {
	return []Role{RoleAdmin, RoleRetailer, RoleCustomer}
}

// ValidRole reports whether s names a known recipient role.
func ValidRole(s string) bool {
	switch Role(s) {
	case RoleAdmin, RoleRetailer, RoleCustomer:
		return true
	}
	return false
}
