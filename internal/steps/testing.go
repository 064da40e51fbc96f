package steps

import (
	"forge/internal/artifact"
	"forge/internal/config"
)

func emitTestHarness(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "internal/settings/settings_test.go", tmplSettingsTest)
}

func emitAuthTests(cfg *config.Config, w artifact.Writer) error {
	return emit(w, cfg, "internal/auth/password_test.go", tmplPasswordTest)
}

const tmplSettingsTest = `package settings

import "testing"

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Env != "development" {
		t.Errorf("Env = %q, want %q", cfg.Env, "development")
	}
	if cfg.HTTPAddr != ":8080" {
		t.Errorf("HTTPAddr = %q, want %q", cfg.HTTPAddr, ":8080")
	}
}
`

const tmplPasswordTest = `package auth

import "testing"

func TestPasswordRoundTrip(t *testing.T) {
	hash, err := HashPassword("s3cret")
	if err != nil {
		t.Fatalf("HashPassword: %v", err)
	}

	if !CheckPassword(hash, "s3cret") {
		t.Error("CheckPassword rejected the original password")
	}
	if CheckPassword(hash, "wrong") {
		t.Error("CheckPassword accepted a wrong password")
	}
}
`
