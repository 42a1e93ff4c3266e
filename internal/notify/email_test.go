package notify

import (
	"testing"

	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

func TestNewSendGridSenderRequiresAPIKey(t *testing.T) {
	if s := NewSendGridSender(SendGridConfig{FromEmail: "info@salon.example"}, logging.Default()); s != nil {
		t.Fatal("expected nil sender without an API key")
	}
}

// The from-name comes from configuration as-is; the sender itself has no
// fallback identity.
func TestSendGridSenderKeepsConfiguredFrom(t *testing.T) {
	s := NewSendGridSender(SendGridConfig{
		APIKey:    "SG.test",
		FromEmail: "info@salon.example",
		FromName:  "Kapsalon Test",
	}, logging.Default())
	if s == nil {
		t.Fatal("expected a sender")
	}
	if s.fromName != "Kapsalon Test" {
		t.Errorf("got from-name %q, want the configured one", s.fromName)
	}
	if s.fromEmail != "info@salon.example" {
		t.Errorf("got from-email %q, want the configured one", s.fromEmail)
	}
}
