package appointments

import (
	"context"

	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

// ConfirmationWorkflow redeems emailed confirmation tokens.
type ConfirmationWorkflow struct {
	appointments Repository
	logger       *logging.Logger
}

// NewConfirmationWorkflow creates the workflow.
func NewConfirmationWorkflow(apptRepo Repository, logger *logging.Logger) *ConfirmationWorkflow {
	if apptRepo == nil {
		panic("appointments: repository required")
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &ConfirmationWorkflow{appointments: apptRepo, logger: logger}
}

// Confirm redeems a token: the appointment becomes confirmed and the token is
// cleared, so a second attempt with the same token returns ErrNotFound.
func (w *ConfirmationWorkflow) Confirm(ctx context.Context, token string) (*Appointment, error) {
	appt, err := w.appointments.ConfirmByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	w.logger.Info("appointment confirmed", "appointment_id", appt.ID)
	return appt, nil
}
