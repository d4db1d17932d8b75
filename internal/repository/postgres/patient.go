package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/repository"
)

type patientRepository struct {
	db *sqlx.DB
}

func NewPatientRepository(db *sqlx.DB) repository.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *model.Patient) (int64, error) {
	query := `
		INSERT INTO patients (name, age, gender, phone, address, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`
	patient.CreatedAt = time.Now()

	var id int64
	err := r.db.QueryRowContext(ctx, query,
		patient.Name,
		patient.Age,
		patient.Gender,
		patient.Phone,
		patient.Address,
		patient.CreatedAt,
	).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("failed to create patient: %w", err)
	}
	patient.ID = id
	return id, nil
}

func (r *patientRepository) List(ctx context.Context) ([]*model.Patient, error) {
	query := `SELECT * FROM patients ORDER BY created_at DESC`
	var patients []*model.Patient
	err := r.db.SelectContext(ctx, &patients, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

func (r *patientRepository) ListOptions(ctx context.Context) ([]*model.PatientOption, error) {
	query := `SELECT id, name FROM patients ORDER BY name`
	var options []*model.PatientOption
	err := r.db.SelectContext(ctx, &options, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list patient options: %w", err)
	}
	return options, nil
}

func (r *patientRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM patients`)
	if err != nil {
		return 0, fmt.Errorf("failed to count patients: %w", err)
	}
	return count, nil
}
