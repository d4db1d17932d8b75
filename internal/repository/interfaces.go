package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jwalitptl/clinic-portal/internal/model"
)

// All repository interfaces in one file
type (
	// AdminRepository reads the seeded admin logins. No write path exists.
	AdminRepository interface {
		GetByUsername(ctx context.Context, username string) (*model.Admin, error)
	}

	PatientRepository interface {
		Create(ctx context.Context, patient *model.Patient) (int64, error)
		List(ctx context.Context) ([]*model.Patient, error)
		ListOptions(ctx context.Context) ([]*model.PatientOption, error)
		Count(ctx context.Context) (int64, error)
	}

	AppointmentRepository interface {
		Create(ctx context.Context, apt *model.Appointment) (int64, error)
		ListWithPatients(ctx context.Context) ([]*model.AppointmentWithPatient, error)
		// Cancel sets a booked appointment's status to cancelled and reports
		// how many rows changed; missing or already-cancelled ids report zero.
		Cancel(ctx context.Context, id int64) (int64, error)
		CountByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error)
	}

	OutboxRepository interface {
		Create(ctx context.Context, event *model.OutboxEvent) error
		GetPendingEvents(ctx context.Context, limit int) ([]*model.OutboxEvent, error)
		MarkProcessed(ctx context.Context, id uuid.UUID) error
		MarkFailed(ctx context.Context, id uuid.UUID, errMsg string) error
	}
)
