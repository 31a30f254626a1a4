package config

import (
	"os"
	"testing"
)

func unsetEnv(t *testing.T, key string) {
	t.Helper()
	old, ok := os.LookupEnv(key)
	os.Unsetenv(key)
	t.Cleanup(func() {
		if ok {
			os.Setenv(key, old)
		}
	})
}

func TestLoadConfigRequiresAdminToken(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "")

	if _, err := LoadConfig(); err == nil {
		t.Fatalf("expected error without ADMIN_TOKEN")
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("ADMIN_TOKEN", "secret")
	unsetEnv(t, "PORT")
	unsetEnv(t, "APP_ENV")

	cfg, err := LoadConfig()
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if cfg.Port != "8080" {
		t.Fatalf("expected default port 8080, got %q", cfg.Port)
	}
	if cfg.AppEnv != "production" {
		t.Fatalf("expected default env production, got %q", cfg.AppEnv)
	}
}

func TestNormalizeEnvAliases(t *testing.T) {
	cases := map[string]string{
		"dev":         "development",
		"DEVELOP":     "development",
		"local":       "development",
		"prod":        "production",
		"Staging":     "staging",
		"test":        "test",
		"custom-env ": "custom-env",
	}
	for raw, expected := range cases {
		if got := normalizeEnv(raw); got != expected {
			t.Fatalf("normalizeEnv(%q) = %q, expected %q", raw, got, expected)
		}
	}
}
