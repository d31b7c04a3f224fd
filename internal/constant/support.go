package constant

// Support contact details shared by the responder registry, the escalation
// node and the notification mailer.
const (
	SupportEmail = "support@techgear.com"
	SupportHours = "Mon-Sat, 9AM-6PM IST"
)
