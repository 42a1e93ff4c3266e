package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/rimmelzwaan/salon-booking/internal/appointments"
	"github.com/rimmelzwaan/salon-booking/internal/catalog"
	"github.com/rimmelzwaan/salon-booking/internal/clients"
	"github.com/rimmelzwaan/salon-booking/internal/observability/metrics"
	"github.com/rimmelzwaan/salon-booking/internal/scheduling"
	"github.com/rimmelzwaan/salon-booking/internal/settings"
	"github.com/rimmelzwaan/salon-booking/pkg/logging"
)

// SettingsLoader provides the per-request booking settings.
type SettingsLoader interface {
	Load(ctx context.Context) (settings.BookingSettings, error)
}

// BookingHandler serves the public booking wizard API.
type BookingHandler struct {
	slots    *scheduling.SlotGenerator
	booker   *appointments.Booker
	workflow *appointments.ConfirmationWorkflow
	catalog  catalog.Repository
	settings SettingsLoader
	metrics  *metrics.BookingMetrics
	loc      *time.Location
	baseURL  string
	logger   *logging.Logger
}

// BookingHandlerConfig wires a BookingHandler.
type BookingHandlerConfig struct {
	Slots    *scheduling.SlotGenerator
	Booker   *appointments.Booker
	Workflow *appointments.ConfirmationWorkflow
	Catalog  catalog.Repository
	Settings SettingsLoader
	Metrics  *metrics.BookingMetrics
	Location *time.Location
	BaseURL  string
	Logger   *logging.Logger
}

// NewBookingHandler creates the handler.
func NewBookingHandler(cfg BookingHandlerConfig) *BookingHandler {
	if cfg.Slots == nil || cfg.Booker == nil || cfg.Workflow == nil || cfg.Catalog == nil {
		panic("handlers: slots, booker, workflow and catalog required")
	}
	if cfg.Location == nil {
		cfg.Location = time.UTC
	}
	if cfg.Logger == nil {
		cfg.Logger = logging.Default()
	}
	return &BookingHandler{
		slots:    cfg.Slots,
		booker:   cfg.Booker,
		workflow: cfg.Workflow,
		catalog:  cfg.Catalog,
		settings: cfg.Settings,
		metrics:  cfg.Metrics,
		loc:      cfg.Location,
		baseURL:  strings.TrimRight(cfg.BaseURL, "/"),
		logger:   cfg.Logger,
	}
}

// HealthCheck handles GET /health.
func (h *BookingHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// AvailableTimes handles GET /booking/times?employeeId&date&treatmentId.
func (h *BookingHandler) AvailableTimes(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	fields := make(map[string]string)

	employeeID, err := strconv.ParseInt(q.Get("employeeId"), 10, 64)
	if err != nil || employeeID <= 0 {
		fields["employeeId"] = "a valid employee id is required"
	}
	treatmentID, err := strconv.ParseInt(q.Get("treatmentId"), 10, 64)
	if err != nil || treatmentID <= 0 {
		fields["treatmentId"] = "a valid treatment id is required"
	}
	date, err := time.ParseInLocation("2006-01-02", q.Get("date"), h.loc)
	if err != nil {
		fields["date"] = "a valid date (YYYY-MM-DD) is required"
	}
	if len(fields) > 0 {
		h.metrics.ObserveSlotQuery("invalid", 0)
		writeFieldErrors(w, fields)
		return
	}

	slots, err := h.slots.GenerateSlots(r.Context(), date, employeeID, treatmentID)
	if err != nil {
		if errors.Is(err, catalog.ErrTreatmentNotFound) {
			h.metrics.ObserveSlotQuery("not_found", 0)
			writeError(w, http.StatusNotFound, "treatment not found")
			return
		}
		h.logger.Error("slot generation failed", "error", err, "employee_id", employeeID, "treatment_id", treatmentID)
		h.metrics.ObserveSlotQuery("error", 0)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}

	h.metrics.ObserveSlotQuery("ok", len(slots))
	writeJSON(w, http.StatusOK, slots)
}

// AvailableEmployees handles GET /booking/employees?treatmentId.
func (h *BookingHandler) AvailableEmployees(w http.ResponseWriter, r *http.Request) {
	treatmentID, err := strconv.ParseInt(r.URL.Query().Get("treatmentId"), 10, 64)
	if err != nil || treatmentID <= 0 {
		writeFieldErrors(w, map[string]string{"treatmentId": "a valid treatment id is required"})
		return
	}

	employees, err := h.catalog.EmployeesForTreatment(r.Context(), treatmentID)
	if err != nil {
		h.logger.Error("eligible employee lookup failed", "error", err, "treatment_id", treatmentID)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	if employees == nil {
		employees = []*catalog.Employee{}
	}
	writeJSON(w, http.StatusOK, employees)
}

// treatmentView is a Treatment with the price hidden unless enabled.
type treatmentView struct {
	ID              int64  `json:"id"`
	Name            string `json:"name"`
	PriceCents      *int   `json:"price_cents,omitempty"`
	DurationMinutes int    `json:"duration_minutes"`
	CategoryID      int64  `json:"category_id"`
}

type catalogResponse struct {
	Settings   settings.BookingSettings `json:"settings"`
	Categories []*catalog.Category      `json:"categories"`
	Treatments []treatmentView          `json:"treatments"`
}

// Catalog handles GET /booking/catalog: everything the wizard's first step
// needs in one response.
func (h *BookingHandler) Catalog(w http.ResponseWriter, r *http.Request) {
	cfg := settings.Defaults()
	if h.settings != nil {
		loaded, err := h.settings.Load(r.Context())
		if err != nil {
			h.logger.Warn("settings load failed, using defaults", "error", err)
		} else {
			cfg = loaded
		}
	}

	categories, err := h.catalog.ListCategories(r.Context())
	if err != nil {
		h.logger.Error("category listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}
	treatments, err := h.catalog.ListActiveTreatments(r.Context())
	if err != nil {
		h.logger.Error("treatment listing failed", "error", err)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}

	views := make([]treatmentView, 0, len(treatments))
	for _, t := range treatments {
		v := treatmentView{
			ID:              t.ID,
			Name:            t.Name,
			DurationMinutes: t.DurationMinutes,
			CategoryID:      t.CategoryID,
		}
		if cfg.ShowPrices {
			price := t.PriceCents
			v.PriceCents = &price
		}
		views = append(views, v)
	}
	if categories == nil {
		categories = []*catalog.Category{}
	}

	writeJSON(w, http.StatusOK, catalogResponse{
		Settings:   cfg,
		Categories: categories,
		Treatments: views,
	})
}

// CreateAppointment handles POST /booking/appointments.
func (h *BookingHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	started := time.Now()

	var req appointments.BookRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.metrics.ObserveBooking("invalid", time.Since(started).Seconds())
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	appt, err := h.booker.Book(r.Context(), req)
	if err != nil {
		h.respondBookingError(w, err, started)
		return
	}

	h.metrics.ObserveBooking("created", time.Since(started).Seconds())
	writeJSON(w, http.StatusCreated, map[string]any{
		"success":     true,
		"appointment": appt,
	})
}

func (h *BookingHandler) respondBookingError(w http.ResponseWriter, err error, started time.Time) {
	elapsed := time.Since(started).Seconds()
	switch {
	case isValidation(err):
		h.metrics.ObserveBooking("invalid", elapsed)
		if ve, ok := appointments.AsValidationError(err); ok {
			writeFieldErrors(w, ve.Fields)
			return
		}
		writeFieldErrors(w, map[string]string{"email": "a valid email is required"})
	case errors.Is(err, catalog.ErrTreatmentNotFound), errors.Is(err, catalog.ErrEmployeeNotFound):
		h.metrics.ObserveBooking("not_found", elapsed)
		writeError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, appointments.ErrSlotUnavailable):
		h.metrics.ObserveBooking("conflict", elapsed)
		writeError(w, http.StatusConflict, "that time was just taken, please pick another slot")
	default:
		h.logger.Error("appointment creation failed", "error", err)
		h.metrics.ObserveBooking("error", elapsed)
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
	}
}

func isValidation(err error) bool {
	if _, ok := appointments.AsValidationError(err); ok {
		return true
	}
	return errors.Is(err, clients.ErrInvalidEmail)
}

// Confirm handles GET /booking/confirm/{token}.
func (h *BookingHandler) Confirm(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	if _, err := h.workflow.Confirm(r.Context(), token); err != nil {
		if errors.Is(err, appointments.ErrNotFound) {
			h.metrics.ObserveConfirmation("not_found")
			writeError(w, http.StatusNotFound, "unknown confirmation link")
			return
		}
		h.logger.Error("confirmation failed", "error", err)
		h.metrics.ObserveConfirmation("error")
		writeError(w, http.StatusInternalServerError, "something went wrong, please try again")
		return
	}

	h.metrics.ObserveConfirmation("confirmed")
	http.Redirect(w, r, h.baseURL+"/booking/confirmed", http.StatusFound)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func writeFieldErrors(w http.ResponseWriter, fields map[string]string) {
	writeJSON(w, http.StatusUnprocessableEntity, map[string]any{"errors": fields})
}
