package patient

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/model"
	"github.com/jwalitptl/clinic-portal/internal/service/stats"
)

type fakePatientRepo struct {
	patients []*model.Patient
	nextID   int64
}

func (r *fakePatientRepo) Create(_ context.Context, p *model.Patient) (int64, error) {
	r.nextID++
	p.ID = r.nextID
	p.CreatedAt = time.Now()
	// Prepend: List returns newest first.
	r.patients = append([]*model.Patient{p}, r.patients...)
	return p.ID, nil
}

func (r *fakePatientRepo) List(_ context.Context) ([]*model.Patient, error) {
	return r.patients, nil
}

func (r *fakePatientRepo) ListOptions(_ context.Context) ([]*model.PatientOption, error) {
	options := make([]*model.PatientOption, 0, len(r.patients))
	for _, p := range r.patients {
		options = append(options, &model.PatientOption{ID: p.ID, Name: p.Name})
	}
	return options, nil
}

func (r *fakePatientRepo) Count(_ context.Context) (int64, error) {
	return int64(len(r.patients)), nil
}

type fakeOutboxRepo struct {
	events []*model.OutboxEvent
}

func (r *fakeOutboxRepo) Create(_ context.Context, e *model.OutboxEvent) error {
	r.events = append(r.events, e)
	return nil
}

func (r *fakeOutboxRepo) GetPendingEvents(context.Context, int) ([]*model.OutboxEvent, error) {
	return r.events, nil
}

func (r *fakeOutboxRepo) MarkProcessed(context.Context, uuid.UUID) error { return nil }

func (r *fakeOutboxRepo) MarkFailed(context.Context, uuid.UUID, string) error { return nil }

func TestAddPatientAppliesDefaults(t *testing.T) {
	repo := &fakePatientRepo{}
	outbox := &fakeOutboxRepo{}
	svc := NewService(repo, outbox, stats.NewCache(30*time.Second))

	p, err := svc.AddPatient(context.Background(), &model.CreatePatientRequest{Name: "  Jane Doe  "})
	require.NoError(t, err)

	assert.Equal(t, "Jane Doe", p.Name)
	assert.Nil(t, p.Age)
	assert.Equal(t, "Male", p.Gender)
	assert.Empty(t, p.Phone)
	assert.Empty(t, p.Address)
	assert.NotZero(t, p.ID)
	assert.False(t, p.CreatedAt.IsZero())
}

func TestAddPatientPreservesFields(t *testing.T) {
	repo := &fakePatientRepo{}
	svc := NewService(repo, &fakeOutboxRepo{}, stats.NewCache(30*time.Second))

	p, err := svc.AddPatient(context.Background(), &model.CreatePatientRequest{
		Name:    "Jane Doe",
		Age:     "34",
		Gender:  "Female",
		Phone:   "555-1212",
		Address: "1 Main St",
	})
	require.NoError(t, err)

	require.NotNil(t, p.Age)
	assert.Equal(t, 34, *p.Age)
	assert.Equal(t, "Female", p.Gender)
	assert.Equal(t, "555-1212", p.Phone)
	assert.Equal(t, "1 Main St", p.Address)

	patients, err := svc.ListPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 1)
	assert.Equal(t, "Jane Doe", patients[0].Name)
}

func TestAddPatientRejectsBlankName(t *testing.T) {
	repo := &fakePatientRepo{}
	svc := NewService(repo, &fakeOutboxRepo{}, stats.NewCache(30*time.Second))

	_, err := svc.AddPatient(context.Background(), &model.CreatePatientRequest{Name: "   "})
	assert.ErrorIs(t, err, ErrNameRequired)
	assert.Empty(t, repo.patients)
}

func TestAddPatientRejectsBadAge(t *testing.T) {
	repo := &fakePatientRepo{}
	svc := NewService(repo, &fakeOutboxRepo{}, stats.NewCache(30*time.Second))

	_, err := svc.AddPatient(context.Background(), &model.CreatePatientRequest{Name: "Jane", Age: "old"})
	assert.ErrorIs(t, err, ErrInvalidAge)
	assert.Empty(t, repo.patients)
}

func TestAddPatientMostRecentFirst(t *testing.T) {
	repo := &fakePatientRepo{}
	svc := NewService(repo, &fakeOutboxRepo{}, stats.NewCache(30*time.Second))

	_, err := svc.AddPatient(context.Background(), &model.CreatePatientRequest{Name: "First"})
	require.NoError(t, err)
	_, err = svc.AddPatient(context.Background(), &model.CreatePatientRequest{Name: "Jane Doe"})
	require.NoError(t, err)

	patients, err := svc.ListPatients(context.Background())
	require.NoError(t, err)
	require.Len(t, patients, 2)
	assert.Equal(t, "Jane Doe", patients[0].Name)
}

func TestAddPatientInvalidatesDashboardCounts(t *testing.T) {
	cache := stats.NewCache(30 * time.Second)
	cache.Set(&model.DashboardStats{PatientsCount: 0})
	svc := NewService(&fakePatientRepo{}, &fakeOutboxRepo{}, cache)

	_, err := svc.AddPatient(context.Background(), &model.CreatePatientRequest{Name: "Jane"})
	require.NoError(t, err)

	_, ok := cache.Get()
	assert.False(t, ok, "cached counts must be dropped after a registry write")
}

func TestAddPatientAppendsOutboxEvent(t *testing.T) {
	outbox := &fakeOutboxRepo{}
	svc := NewService(&fakePatientRepo{}, outbox, stats.NewCache(30*time.Second))

	_, err := svc.AddPatient(context.Background(), &model.CreatePatientRequest{Name: "Jane"})
	require.NoError(t, err)

	require.Len(t, outbox.events, 1)
	assert.Equal(t, model.EventPatientCreated, outbox.events[0].EventType)
}
