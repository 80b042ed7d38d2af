package internal

import (
	"strings"
	"testing"
)

func TestAuthConfig_InsecureMode(t *testing.T) {
	cfg := AuthConfig{Mode: "insecure", Secret: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("insecure mode should pass: %v", err)
	}
	if !cfg.Insecure() {
		t.Error("insecure mode should report insecure")
	}
}

func TestAuthConfig_EmptyModeDefaultsInsecure(t *testing.T) {
	cfg := AuthConfig{Mode: "", Secret: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to insecure: %v", err)
	}
	if cfg.Mode != AuthModeInsecure {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeInsecure)
	}
}

func TestAuthConfig_JWTModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "jwt", Secret: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("jwt mode with secret should pass: %v", err)
	}
	if cfg.Insecure() {
		t.Error("jwt mode should not report insecure")
	}
}

func TestAuthConfig_JWTModeEmptySecret(t *testing.T) {
	cfg := AuthConfig{Mode: "jwt", Secret: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("jwt mode with empty secret should fail")
	}
	if !strings.Contains(err.Error(), "secret is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Secret: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestHTTPConfig_Origins(t *testing.T) {
	cfg := HTTPConfig{Port: 8080}
	if got := cfg.Origins(); len(got) != 1 || got[0] != "*" {
		t.Errorf("default origins = %v", got)
	}
	cfg.AllowedOrigins = []string{"https://app.example.com"}
	if got := cfg.Origins(); len(got) != 1 || got[0] != "https://app.example.com" {
		t.Errorf("origins = %v", got)
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := HTTPConfig{Port: port}
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail validation", port)
		}
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := NewDefaultConfig()
	cfg.Auth.Mode = "jwt"
	cfg.Auth.Secret = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full config validate should catch auth error")
	}
}

func TestMCPConfig_DefaultSubject(t *testing.T) {
	cfg := MCPConfig{}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
	if cfg.Subject != "local" {
		t.Errorf("subject = %q, want local", cfg.Subject)
	}
}
