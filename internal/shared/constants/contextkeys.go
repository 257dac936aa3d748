package constants

// Gin context keys
const (
	ContextKeyAccountEmail = "account_email"
)
