// internal/app/bootstrap/config.go
package bootstrap

import (
	"fmt"
	"time"

	"github.com/dalemusser/waffle/config"
	wafflemongo "github.com/dalemusser/waffle/pantry/mongo"
	"go.uber.org/zap"
)

// appConfigKeys defines the configuration keys for CapstoneHub.
// These are loaded via WAFFLE's config system with support for:
//   - Config files: mongo_uri, session_key, etc.
//   - Environment variables: CAPSTONEHUB_MONGO_URI, CAPSTONEHUB_SESSION_KEY, etc.
//   - Command-line flags: --mongo_uri, --session_key, etc.
var appConfigKeys = []config.AppKey{
	{Name: "mongo_uri", Default: "mongodb://localhost:27017", Desc: "MongoDB connection URI"},
	{Name: "mongo_database", Default: "capstone_hub", Desc: "MongoDB database name"},
	{Name: "mongo_max_pool_size", Default: 100, Desc: "MongoDB max connection pool size"},
	{Name: "mongo_min_pool_size", Default: 10, Desc: "MongoDB min connection pool size"},

	{Name: "session_key", Default: "dev-only-change-me-please-0123456789ABCDEF", Desc: "Session signing key (must be strong in production)"},
	{Name: "session_domain", Default: "", Desc: "Session cookie domain (blank means current host)"},

	{Name: "base_url", Default: "http://localhost:3000", Desc: "Base URL for OAuth callbacks"},

	// Google OAuth configuration
	{Name: "google_client_id", Default: "", Desc: "Google OAuth2 client ID"},
	{Name: "google_client_secret", Default: "", Desc: "Google OAuth2 client secret"},

	// AI chat proxy
	{Name: "chat_upstream_url", Default: "", Desc: "Completion API endpoint for the chat proxy"},
	{Name: "chat_api_key", Default: "", Desc: "Completion API key (blank disables the chat proxy)"},
	{Name: "chat_model", Default: "gpt-4o-mini", Desc: "Model name sent to the completion API"},

	// Image upload proxy
	{Name: "image_host_url", Default: "", Desc: "Image host upload endpoint"},
	{Name: "image_host_key", Default: "", Desc: "Image host API key (blank disables the upload proxy)"},

	{Name: "upstream_timeout", Default: "60s", Desc: "Total budget for proxied upstream calls (e.g., 60s, 2m)"},

	// Rate limiting
	{Name: "chat_rate_per_minute", Default: 20, Desc: "Chat proxy requests per minute per IP"},
	{Name: "upload_rate_per_minute", Default: 10, Desc: "Upload proxy requests per minute per IP"},
	{Name: "login_max_attempts", Default: 5, Desc: "Failed logins per email before lockout"},
	{Name: "login_lockout", Default: "15m", Desc: "Lockout duration after too many failed logins"},
}

// LoadConfig loads WAFFLE core config and app-specific config.
//
// It is called early in startup so that both WAFFLE and the app have
// access to configuration before any backends or handlers are built.
func LoadConfig(logger *zap.Logger) (*config.CoreConfig, AppConfig, error) {
	coreCfg, appValues, err := config.LoadWithAppConfig(logger, "CAPSTONEHUB", appConfigKeys)
	if err != nil {
		return nil, AppConfig{}, err
	}

	appCfg := AppConfig{
		MongoURI:         appValues.String("mongo_uri"),
		MongoDatabase:    appValues.String("mongo_database"),
		MongoMaxPoolSize: uint64(appValues.Int("mongo_max_pool_size")),
		MongoMinPoolSize: uint64(appValues.Int("mongo_min_pool_size")),

		SessionKey:    appValues.String("session_key"),
		SessionDomain: appValues.String("session_domain"),

		BaseURL: appValues.String("base_url"),

		GoogleClientID:     appValues.String("google_client_id"),
		GoogleClientSecret: appValues.String("google_client_secret"),

		ChatUpstreamURL: appValues.String("chat_upstream_url"),
		ChatAPIKey:      appValues.String("chat_api_key"),
		ChatModel:       appValues.String("chat_model"),

		ImageHostURL: appValues.String("image_host_url"),
		ImageHostKey: appValues.String("image_host_key"),

		UpstreamTimeout: appValues.Duration("upstream_timeout", 60*time.Second),

		ChatRatePerMinute:   appValues.Int("chat_rate_per_minute"),
		UploadRatePerMinute: appValues.Int("upload_rate_per_minute"),
		LoginMaxAttempts:    appValues.Int("login_max_attempts"),
		LoginLockout:        appValues.Duration("login_lockout", 15*time.Minute),
	}

	return coreCfg, appCfg, nil
}

// ValidateConfig performs app-specific config validation.
//
// CapstoneHub validates the MongoDB URI format to catch configuration
// errors before attempting to connect, and rejects a half-configured
// Google OAuth pair since that would break the callback flow at
// runtime instead of at startup.
func ValidateConfig(coreCfg *config.CoreConfig, appCfg AppConfig, logger *zap.Logger) error {
	if err := wafflemongo.ValidateURI(appCfg.MongoURI); err != nil {
		logger.Error("invalid MongoDB URI", zap.Error(err))
		return fmt.Errorf("invalid MongoDB URI: %w", err)
	}

	if (appCfg.GoogleClientID == "") != (appCfg.GoogleClientSecret == "") {
		return fmt.Errorf("google_client_id and google_client_secret must be set together")
	}

	if len(appCfg.SessionKey) < 32 {
		return fmt.Errorf("session_key must be at least 32 characters")
	}

	return nil
}
