package appointment

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-portal/internal/email"
	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/repository"
	"github.com/jwalitptl/clinic-portal/internal/service/stats"
)

// datetimeLocalLayout is the wire format of the booking form's combined
// date+time field.
const datetimeLocalLayout = "2006-01-02T15:04"

var (
	ErrMissingFields   = errors.New("patient and date/time are required")
	ErrInvalidDatetime = errors.New("invalid appointment date/time")
	ErrInvalidPatient  = errors.New("invalid patient id")
)

type Service struct {
	repo        repository.AppointmentRepository
	patientRepo repository.PatientRepository
	outboxRepo  repository.OutboxRepository
	notifier    email.Service
	statsCache  *stats.Cache
}

func NewService(
	repo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	outboxRepo repository.OutboxRepository,
	notifier email.Service,
	statsCache *stats.Cache,
) *Service {
	return &Service{
		repo:        repo,
		patientRepo: patientRepo,
		outboxRepo:  outboxRepo,
		notifier:    notifier,
		statsCache:  statsCache,
	}
}

// BookAppointment validates the form input and inserts a booked row. Missing
// patient or datetime is a validation failure, never a store write. Double
// bookings for the same slot are allowed; there is no conflict detection.
func (s *Service) BookAppointment(ctx context.Context, req *model.BookAppointmentRequest) (*model.Appointment, error) {
	patientField := strings.TrimSpace(req.PatientID)
	datetimeField := strings.TrimSpace(req.AppointmentDatetime)
	if patientField == "" || datetimeField == "" {
		return nil, ErrMissingFields
	}

	patientID, err := strconv.ParseInt(patientField, 10, 64)
	if err != nil || patientID <= 0 {
		return nil, ErrInvalidPatient
	}

	when, err := time.ParseInLocation(datetimeLocalLayout, datetimeField, time.Local)
	if err != nil {
		return nil, ErrInvalidDatetime
	}

	apt := &model.Appointment{
		PatientID:           patientID,
		AppointmentDatetime: when,
		Doctor:              strings.TrimSpace(req.Doctor),
		Notes:               strings.TrimSpace(req.Notes),
		Status:              model.AppointmentStatusBooked,
	}

	if _, err := s.repo.Create(ctx, apt); err != nil {
		return nil, fmt.Errorf("failed to book appointment: %w", err)
	}

	s.statsCache.Invalidate()
	s.appendEvent(ctx, model.EventAppointmentBooked, apt)
	s.notify(ctx, "Appointment booked", fmt.Sprintf(
		"Appointment %d booked for patient %d on %s with %s.",
		apt.ID, apt.PatientID, apt.AppointmentDatetime.Format("2006-01-02 15:04"), apt.Doctor))

	return apt, nil
}

// ListAppointments returns every appointment joined with its patient's name,
// newest first. Cancelled appointments stay visible.
func (s *Service) ListAppointments(ctx context.Context) ([]*model.AppointmentWithPatient, error) {
	rows, err := s.repo.ListWithPatients(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return rows, nil
}

// ListPatientOptions returns the (id, name) pairs for the booking form,
// sorted by name.
func (s *Service) ListPatientOptions(ctx context.Context) ([]*model.PatientOption, error) {
	options, err := s.patientRepo.ListOptions(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient options: %w", err)
	}
	return options, nil
}

// CancelAppointment moves an appointment to its terminal cancelled state.
// A nonexistent id touches zero rows and still succeeds; cancelling an
// already-cancelled appointment is a no-op for the same reason.
func (s *Service) CancelAppointment(ctx context.Context, id int64) error {
	affected, err := s.repo.Cancel(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to cancel appointment: %w", err)
	}
	if affected == 0 {
		log.Debug().Int64("appointment_id", id).Msg("cancel touched no rows")
		return nil
	}

	s.statsCache.Invalidate()
	s.appendEvent(ctx, model.EventAppointmentCancelled, map[string]int64{"appointment_id": id})
	s.notify(ctx, "Appointment cancelled", fmt.Sprintf("Appointment %d was cancelled.", id))
	return nil
}

// DashboardStats returns the patient total and booked-appointment count,
// cached briefly since the dashboard is the landing page.
func (s *Service) DashboardStats(ctx context.Context) (*model.DashboardStats, error) {
	if cached, ok := s.statsCache.Get(); ok {
		return cached, nil
	}

	patients, err := s.patientRepo.Count(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to count patients: %w", err)
	}
	booked, err := s.repo.CountByStatus(ctx, model.AppointmentStatusBooked)
	if err != nil {
		return nil, fmt.Errorf("failed to count booked appointments: %w", err)
	}

	counts := &model.DashboardStats{
		PatientsCount:           patients,
		BookedAppointmentsCount: booked,
	}
	s.statsCache.Set(counts)
	return counts, nil
}

func (s *Service) appendEvent(ctx context.Context, eventType string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal event payload")
		return
	}
	if err := s.outboxRepo.Create(ctx, &model.OutboxEvent{
		EventType: eventType,
		Payload:   data,
	}); err != nil {
		log.Error().Err(err).Str("event_type", eventType).Msg("failed to append outbox event")
	}
}

// notify delivers a clinic notice on a best-effort basis. Failures are
// logged and never surfaced to the caller.
func (s *Service) notify(ctx context.Context, subject, body string) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.SendNotice(ctx, subject, body); err != nil {
		log.Warn().Err(err).Str("subject", subject).Msg("failed to send notice")
	}
}
