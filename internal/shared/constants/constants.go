package constants

const (
	// Environment constants
	EnvDevelopment = "development"
	EnvTest        = "test"
	EnvProduction  = "production"

	// HTTP Headers
	HeaderContentType = "Content-Type"
	HeaderXRequestID  = "X-Request-ID"

	ContentTypeJSON = "application/json"

	// Database table names
	TableTickets  = "tickets"
	TableComments = "comments"

	// Defaults shared by config and the CLI client
	DefaultAPIPrefix   = "/api"
	DefaultServiceName = "supportdesk"
	DefaultServerURL   = "http://localhost:8080"
)
