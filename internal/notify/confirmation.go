package notify

import (
	"fmt"
	"strings"

	"github.com/rimmelzwaan/salon-booking/internal/appointments"
)

// ConfirmationMailer renders the booking confirmation message for a salon.
type ConfirmationMailer struct {
	salonName string
	baseURL   string
}

// NewConfirmationMailer creates a mailer. baseURL is the public site root the
// confirmation link hangs off.
func NewConfirmationMailer(salonName, baseURL string) *ConfirmationMailer {
	return &ConfirmationMailer{
		salonName: salonName,
		baseURL:   strings.TrimRight(baseURL, "/"),
	}
}

// ConfirmURL returns the one-time confirmation link for a token.
func (m *ConfirmationMailer) ConfirmURL(token string) string {
	return fmt.Sprintf("%s/booking/confirm/%s", m.baseURL, token)
}

// Compose renders the confirmation email for a booked appointment.
func (m *ConfirmationMailer) Compose(c appointments.Confirmation) EmailMessage {
	link := m.ConfirmURL(c.Token)

	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", c.ClientName)
	fmt.Fprintf(&b, "Thank you for booking with %s. Your appointment is reserved and needs one more step.\n\n", m.salonName)
	fmt.Fprintf(&b, "Treatment: %s\n", c.TreatmentName)
	fmt.Fprintf(&b, "With:      %s\n", c.EmployeeName)
	fmt.Fprintf(&b, "When:      %s\n\n", c.Start.Format("Monday, 2 January 2006 at 15:04"))
	fmt.Fprintf(&b, "Please confirm your appointment using this link:\n%s\n\n", link)
	fmt.Fprintf(&b, "If you did not make this booking you can ignore this message.\n\nKind regards,\n%s\n", m.salonName)

	return EmailMessage{
		To:      c.ClientEmail,
		ToName:  c.ClientName,
		Subject: fmt.Sprintf("Please confirm your appointment at %s", m.salonName),
		Body:    b.String(),
	}
}
