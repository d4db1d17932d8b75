package patient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/repository"
	"github.com/jwalitptl/clinic-portal/internal/service/stats"
)

const defaultGender = "Male"

var (
	ErrNameRequired = errors.New("patient name is required")
	ErrInvalidAge   = errors.New("age must be a number")
)

type Service struct {
	repo       repository.PatientRepository
	outboxRepo repository.OutboxRepository
	statsCache *stats.Cache
}

func NewService(repo repository.PatientRepository, outboxRepo repository.OutboxRepository, statsCache *stats.Cache) *Service {
	return &Service{repo: repo, outboxRepo: outboxRepo, statsCache: statsCache}
}

// AddPatient validates the form input, applies the registry defaults and
// appends a new record. A blank age becomes NULL, not zero.
func (s *Service) AddPatient(ctx context.Context, req *model.CreatePatientRequest) (*model.Patient, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, ErrNameRequired
	}

	var age *int
	if v := strings.TrimSpace(req.Age); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, ErrInvalidAge
		}
		age = &n
	}

	gender := req.Gender
	if gender == "" {
		gender = defaultGender
	}

	patient := &model.Patient{
		Name:    name,
		Age:     age,
		Gender:  gender,
		Phone:   req.Phone,
		Address: req.Address,
	}

	if _, err := s.repo.Create(ctx, patient); err != nil {
		return nil, fmt.Errorf("failed to add patient: %w", err)
	}

	s.statsCache.Invalidate()
	s.appendEvent(ctx, model.EventPatientCreated, patient)
	return patient, nil
}

// ListPatients returns every patient, most recently added first.
func (s *Service) ListPatients(ctx context.Context) ([]*model.Patient, error) {
	patients, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
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
