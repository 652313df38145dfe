// internal/app/bootstrap/appconfig.go
package bootstrap

import "time"

// AppConfig holds service-specific configuration for this WAFFLE app.
//
// These values come from environment variables, configuration files, or
// command-line flags (loaded in LoadConfig). WAFFLE's CoreConfig covers
// framework-level settings (ports, TLS, logging, CORS); AppConfig is
// everything specific to CapstoneHub.
type AppConfig struct {
	// MongoDB connection configuration
	MongoURI         string // MongoDB connection string (e.g., mongodb://localhost:27017)
	MongoDatabase    string // Database name within MongoDB
	MongoMaxPoolSize uint64 // Max connection pool size
	MongoMinPoolSize uint64 // Min connection pool size

	// Session management configuration
	SessionKey    string // Secret key for signing session cookies (must be strong in production)
	SessionDomain string // Cookie domain (blank means current host)

	// Base URL for OAuth callbacks (e.g., "https://capstonehub.example.edu")
	BaseURL string

	// Google OAuth configuration
	GoogleClientID     string
	GoogleClientSecret string

	// AI chat proxy configuration
	ChatUpstreamURL string // Completion API endpoint
	ChatAPIKey      string // Completion API key (empty disables the proxy)
	ChatModel       string // Model name sent upstream

	// Image upload proxy configuration
	ImageHostURL string // Image host upload endpoint
	ImageHostKey string // Image host API key (empty disables the proxy)

	// Upstream proxy budget (AI chat, image host)
	UpstreamTimeout time.Duration

	// Rate limiting
	ChatRatePerMinute   int           // Chat proxy requests per minute per IP
	UploadRatePerMinute int           // Upload proxy requests per minute per IP
	LoginMaxAttempts    int           // Failed logins per email before lockout
	LoginLockout        time.Duration // Lockout duration after too many failures
}
