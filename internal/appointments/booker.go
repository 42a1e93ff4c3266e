package appointments

import (
	"context"
	"net/mail"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/rimmelzwaan/salon-booking/internal/catalog"
	"github.com/rimmelzwaan/salon-booking/internal/clients"
	"github.com/rimmelzwaan/salon-booking/internal/scheduling"
	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

// BookRequest is a client's submission from the booking wizard.
type BookRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	EmployeeID  int64  `json:"employeeId"`
	TreatmentID int64  `json:"treatmentId"`
	Date        string `json:"date"` // "2006-01-02"
	Time        string `json:"time"` // "15:04"
}

// Validate checks presence and shape of every field. It reports all problems
// at once so the wizard can annotate each input.
func (r *BookRequest) Validate() error {
	fields := make(map[string]string)
	if strings.TrimSpace(r.Name) == "" {
		fields["name"] = "name is required"
	}
	if _, err := mail.ParseAddress(strings.TrimSpace(r.Email)); err != nil {
		fields["email"] = "a valid email is required"
	}
	if r.EmployeeID <= 0 {
		fields["employeeId"] = "a valid employee id is required"
	}
	if r.TreatmentID <= 0 {
		fields["treatmentId"] = "a valid treatment id is required"
	}
	if _, err := time.Parse("2006-01-02", r.Date); err != nil {
		fields["date"] = "a valid date (YYYY-MM-DD) is required"
	}
	if _, err := time.Parse("15:04", r.Time); err != nil {
		fields["time"] = "a valid time (HH:MM) is required"
	}
	if len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}
	return nil
}

// Confirmation is everything the mail collaborator needs to send the
// confirmation message for a freshly booked appointment.
type Confirmation struct {
	ClientName    string
	ClientEmail   string
	TreatmentName string
	EmployeeName  string
	Start         time.Time
	Token         string
}

// Notifier hands a confirmation off for delivery. Implementations queue and
// retry; the booking is already durable when this is called.
type Notifier interface {
	EnqueueConfirmation(ctx context.Context, c Confirmation) error
}

// Booker orchestrates appointment creation for the public wizard.
type Booker struct {
	clients      clients.Repository
	catalog      catalog.Repository
	appointments Repository
	loc          *time.Location
	notifier     Notifier
	logger       *logging.Logger
}

// NewBooker wires a booker. notifier may be nil, which skips the email.
func NewBooker(clientsRepo clients.Repository, catalogRepo catalog.Repository, apptRepo Repository, loc *time.Location, notifier Notifier, logger *logging.Logger) *Booker {
	if clientsRepo == nil || catalogRepo == nil || apptRepo == nil {
		panic("appointments: clients, catalog and appointment repositories required")
	}
	if loc == nil {
		loc = time.UTC
	}
	if logger == nil {
		logger = logging.Default()
	}
	return &Booker{
		clients:      clientsRepo,
		catalog:      catalogRepo,
		appointments: apptRepo,
		loc:          loc,
		notifier:     notifier,
		logger:       logger,
	}
}

// Book validates the request, finds or creates the client, and persists the
// appointment with a conflict re-check at commit time. On success the
// appointment is WAITING_FOR_CONFIRMATION and a confirmation email is
// queued for the client.
func (b *Booker) Book(ctx context.Context, req BookRequest) (*Appointment, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	treatment, err := b.catalog.GetTreatment(ctx, req.TreatmentID)
	if err != nil {
		return nil, err
	}
	employee, err := b.catalog.GetEmployee(ctx, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	client, err := b.clients.FindOrCreateByEmail(ctx, req.Email, strings.TrimSpace(req.Name))
	if err != nil {
		return nil, err
	}

	start, err := time.ParseInLocation("2006-01-02 15:04", req.Date+" "+req.Time, b.loc)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"time": "a valid date and time are required"}}
	}

	durationMinutes := treatment.DurationMinutes
	if durationMinutes <= 0 {
		durationMinutes = scheduling.DefaultTreatmentDurationMinutes
	}

	appt := &Appointment{
		Start:             start,
		Finish:            start.Add(time.Duration(durationMinutes) * time.Minute),
		EmployeeID:        employee.ID,
		ClientID:          client.ID,
		TreatmentID:       treatment.ID,
		Status:            StatusWaitingForConfirmation,
		ConfirmationToken: uuid.NewString(),
	}

	created, err := b.appointments.CreateIfFree(ctx, appt)
	if err != nil {
		return nil, err
	}

	b.logger.Info("appointment booked",
		"appointment_id", created.ID,
		"employee_id", created.EmployeeID,
		"treatment_id", created.TreatmentID,
		"start", created.Start.Format(time.RFC3339),
	)

	if b.notifier != nil {
		confirmation := Confirmation{
			ClientName:    client.Name,
			ClientEmail:   client.Email,
			TreatmentName: treatment.Name,
			EmployeeName:  strings.TrimSpace(employee.FirstName + " " + employee.LastName),
			Start:         created.Start,
			Token:         created.ConfirmationToken,
		}
		if err := b.notifier.EnqueueConfirmation(ctx, confirmation); err != nil {
			// The booking is committed; delivery is the outbox's problem now.
			b.logger.Error("failed to enqueue confirmation email",
				"error", err,
				"appointment_id", created.ID,
			)
		}
	}
	return created, nil
}
