package bootstrap

import (
	"strings"
	"testing"

	"github.com/dalemusser/capstonehub/internal/testutil"
	"github.com/dalemusser/waffle/config"
	"go.uber.org/zap"
)

func testLogger() *zap.Logger {
	return zap.NewNop()
}

func validAppConfig() AppConfig {
	return AppConfig{
		MongoURI:      "mongodb://localhost:27017",
		MongoDatabase: "capstone_hub",
		SessionKey:    strings.Repeat("k", 32),
	}
}

func TestValidateConfig_Accepts(t *testing.T) {
	if err := ValidateConfig(&config.CoreConfig{}, validAppConfig(), testLogger()); err != nil {
		t.Fatalf("ValidateConfig failed: %v", err)
	}
}

func TestValidateConfig_RejectsBadURI(t *testing.T) {
	cfg := validAppConfig()
	cfg.MongoURI = "http://not-a-mongo-uri"
	if err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger()); err == nil {
		t.Error("expected error for non-mongodb URI")
	}
}

func TestValidateConfig_RejectsHalfGooglePair(t *testing.T) {
	cfg := validAppConfig()
	cfg.GoogleClientID = "client-id-without-secret"
	if err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger()); err == nil {
		t.Error("expected error when only one of the Google OAuth values is set")
	}
}

func TestValidateConfig_RejectsShortSessionKey(t *testing.T) {
	cfg := validAppConfig()
	cfg.SessionKey = "too-short"
	if err := ValidateConfig(&config.CoreConfig{}, cfg, testLogger()); err == nil {
		t.Error("expected error for a short session key")
	}
}

func TestEnsureSchema_Idempotent(t *testing.T) {
	db := testutil.SetupTestDB(t)
	ctx, cancel := testutil.TestContext()
	defer cancel()

	deps := DBDeps{CapstoneHubMongoDatabase: db}

	// SetupTestDB already created the indexes once; running the hook
	// again must not fail.
	if err := EnsureSchema(ctx, &config.CoreConfig{}, validAppConfig(), deps, testLogger()); err != nil {
		t.Fatalf("EnsureSchema failed: %v", err)
	}
	if err := EnsureSchema(ctx, &config.CoreConfig{}, validAppConfig(), deps, testLogger()); err != nil {
		t.Fatalf("second EnsureSchema failed: %v", err)
	}
}
