package appointments

import "time"

// Status is the lifecycle state of an appointment.
type Status string

const (
	// StatusWaitingForConfirmation is the state right after booking, while
	// the emailed token is still outstanding.
	StatusWaitingForConfirmation Status = "waiting_for_confirmation"
	// StatusConfirmed is reached once the client redeems the token.
	StatusConfirmed Status = "confirmed"
)

// Appointment ties a client, employee and treatment together at a point in
// time. Finish is computed at creation as Start plus the treatment duration
// and never changes afterwards.
type Appointment struct {
	ID                int64     `json:"id"`
	Start             time.Time `json:"start"`
	Finish            time.Time `json:"finish"`
	EmployeeID        int64     `json:"employee_id"`
	ClientID          int64     `json:"client_id"`
	TreatmentID       int64     `json:"treatment_id"`
	Status            Status    `json:"status"`
	ConfirmationToken string    `json:"-"` // cleared on confirmation, never serialized
	CreatedAt         time.Time `json:"created_at"`
}
