package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	if cfg.Port != "8080" {
		t.Errorf("expected default port 8080, got %s", cfg.Port)
	}
	if cfg.BusinessTimezone != "Europe/Amsterdam" {
		t.Errorf("expected default timezone Europe/Amsterdam, got %s", cfg.BusinessTimezone)
	}
	if cfg.BookingWeeksAhead != 4 {
		t.Errorf("expected default weeks ahead 4, got %d", cfg.BookingWeeksAhead)
	}
	if cfg.EmailProvider != "stub" {
		t.Errorf("expected default email provider stub, got %s", cfg.EmailProvider)
	}
	if cfg.EmailRetryBaseDelay != 2*time.Minute {
		t.Errorf("unexpected retry base delay %s", cfg.EmailRetryBaseDelay)
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("EMAIL_PROVIDER", " SendGrid ")
	t.Setenv("BOOKING_WEEKS_AHEAD", "8")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, https://b.example ,")

	cfg := Load()

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Port)
	}
	if cfg.EmailProvider != "sendgrid" {
		t.Errorf("expected normalized provider sendgrid, got %q", cfg.EmailProvider)
	}
	if cfg.BookingWeeksAhead != 8 {
		t.Errorf("expected weeks ahead 8, got %d", cfg.BookingWeeksAhead)
	}
	if len(cfg.CORSAllowedOrigins) != 2 {
		t.Fatalf("expected 2 origins, got %v", cfg.CORSAllowedOrigins)
	}
	if cfg.CORSAllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origin %q", cfg.CORSAllowedOrigins[1])
	}
}
