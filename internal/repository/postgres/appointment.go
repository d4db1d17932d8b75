package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/repository"
)

type appointmentRepository struct {
	db *sqlx.DB
}

func NewAppointmentRepository(db *sqlx.DB) repository.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, apt *model.Appointment) (int64, error) {
	query := `
		INSERT INTO appointments (patient_id, appointment_datetime, doctor, notes, status, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	apt.CreatedAt = time.Now()

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		apt.PatientID,
		apt.AppointmentDatetime,
		apt.Doctor,
		apt.Notes,
		apt.Status,
		apt.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create appointment: %w", err)
	}
	apt.ID = id
	return id, nil
}

func (r *appointmentRepository) ListWithPatients(ctx context.Context) ([]*model.AppointmentWithPatient, error) {
	query := `
		SELECT a.*, p.name AS patient_name
		FROM appointments a
		JOIN patients p ON a.patient_id = p.id
		ORDER BY a.appointment_datetime DESC
	`
	var rows []*model.AppointmentWithPatient
	err := r.db.SelectContext(ctx, &rows, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list appointments: %w", err)
	}
	return rows, nil
}

// Cancel moves a booked appointment to cancelled. The status guard keeps a
// repeat cancel from counting as a fresh transition.
func (r *appointmentRepository) Cancel(ctx context.Context, id int64) (int64, error) {
	query := `UPDATE appointments SET status = $1 WHERE id = $2 AND status = $3`
	res, err := r.db.ExecContext(ctx, query, model.AppointmentStatusCancelled, id, model.AppointmentStatusBooked)
	if err != nil {
		return 0, fmt.Errorf("failed to cancel appointment: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return affected, nil
}

func (r *appointmentRepository) CountByStatus(ctx context.Context, status model.AppointmentStatus) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM appointments WHERE status = $1`, status)
	if err != nil {
		return 0, fmt.Errorf("failed to count appointments: %w", err)
	}
	return count, nil
}
