package appointment

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/clinic-portal/internal/model"
	appointmentService "github.com/jwalitptl/clinic-portal/internal/service/appointment"
	"github.com/jwalitptl/clinic-portal/internal/service/stats"
)

type fakeAppointmentRepo struct {
	appointments []*model.Appointment
	nextID       int64
}

func (r *fakeAppointmentRepo) Create(_ context.Context, apt *model.Appointment) (int64, error) {
	r.nextID++
	apt.ID = r.nextID
	apt.CreatedAt = time.Now()
	r.appointments = append(r.appointments, apt)
	return apt.ID, nil
}

func (r *fakeAppointmentRepo) ListWithPatients(_ context.Context) ([]*model.AppointmentWithPatient, error) {
	rows := make([]*model.AppointmentWithPatient, 0, len(r.appointments))
	for _, apt := range r.appointments {
		rows = append(rows, &model.AppointmentWithPatient{Appointment: *apt, PatientName: "Jane Doe"})
	}
	return rows, nil
}

func (r *fakeAppointmentRepo) Cancel(_ context.Context, id int64) (int64, error) {
	for _, apt := range r.appointments {
		if apt.ID == id && apt.Status == model.AppointmentStatusBooked {
			apt.Status = model.AppointmentStatusCancelled
			return 1, nil
		}
	}
	return 0, nil
}

func (r *fakeAppointmentRepo) CountByStatus(_ context.Context, status model.AppointmentStatus) (int64, error) {
	var n int64
	for _, apt := range r.appointments {
		if apt.Status == status {
			n++
		}
	}
	return n, nil
}

type fakePatientRepo struct{}

func (fakePatientRepo) Create(context.Context, *model.Patient) (int64, error) { return 0, nil }
func (fakePatientRepo) List(context.Context) ([]*model.Patient, error)        { return nil, nil }
func (fakePatientRepo) ListOptions(context.Context) ([]*model.PatientOption, error) {
	return []*model.PatientOption{{ID: 1, Name: "Jane Doe"}}, nil
}
func (fakePatientRepo) Count(context.Context) (int64, error) { return 1, nil }

type fakeOutboxRepo struct{}

func (fakeOutboxRepo) Create(context.Context, *model.OutboxEvent) error { return nil }
func (fakeOutboxRepo) GetPendingEvents(context.Context, int) ([]*model.OutboxEvent, error) {
	return nil, nil
}
func (fakeOutboxRepo) MarkProcessed(context.Context, uuid.UUID) error     { return nil }
func (fakeOutboxRepo) MarkFailed(context.Context, uuid.UUID, string) error { return nil }

func newTestRouter() (*gin.Engine, *fakeAppointmentRepo) {
	gin.SetMode(gin.TestMode)
	repo := &fakeAppointmentRepo{}
	svc := appointmentService.NewService(repo, fakePatientRepo{}, fakeOutboxRepo{}, nil, stats.NewCache(30*time.Second))
	h := NewHandler(svc)

	r := gin.New()
	h.RegisterRoutes(r.Group("/"))
	return r, repo
}

func postForm(r *gin.Engine, path string, form url.Values) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	r.ServeHTTP(w, req)
	return w
}

func flashCookie(w *httptest.ResponseRecorder) string {
	for _, c := range w.Result().Cookies() {
		if c.Name == "clinic_flash" && c.MaxAge > 0 {
			v, _ := url.QueryUnescape(c.Value)
			return v
		}
	}
	return ""
}

func TestBookAppointmentRedirectsToListing(t *testing.T) {
	r, repo := newTestRouter()

	w := postForm(r, "/appointments", url.Values{
		"patient_id":           {"1"},
		"appointment_datetime": {"2024-05-01T10:30"},
		"doctor":               {"Dr. Smith"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/appointments", w.Header().Get("Location"))
	assert.Contains(t, flashCookie(w), "Appointment booked.")
	require.Len(t, repo.appointments, 1)
}

func TestBookAppointmentMissingFieldsWritesNothing(t *testing.T) {
	r, repo := newTestRouter()

	w := postForm(r, "/appointments", url.Values{
		"appointment_datetime": {"2024-05-01T10:30"},
	})

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/appointments", w.Header().Get("Location"))
	assert.Contains(t, flashCookie(w), "Select patient and date/time.")
	assert.Empty(t, repo.appointments)
}

func TestListAppointments(t *testing.T) {
	r, _ := newTestRouter()

	postForm(r, "/appointments", url.Values{
		"patient_id":           {"1"},
		"appointment_datetime": {"2024-05-01T10:30"},
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/appointments", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Jane Doe")
	assert.Contains(t, w.Body.String(), "appointments")
	assert.Contains(t, w.Body.String(), "patients")
}

func TestCancelAppointment(t *testing.T) {
	r, repo := newTestRouter()

	postForm(r, "/appointments", url.Values{
		"patient_id":           {"1"},
		"appointment_datetime": {"2024-05-01T10:30"},
	})

	w := postForm(r, "/cancel_appointment/1", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/appointments", w.Header().Get("Location"))
	assert.Contains(t, flashCookie(w), "Appointment cancelled.")
	assert.Equal(t, model.AppointmentStatusCancelled, repo.appointments[0].Status)
}

// Unknown ids still redirect with the same notice.
func TestCancelAppointmentUnknownID(t *testing.T) {
	r, _ := newTestRouter()

	w := postForm(r, "/cancel_appointment/9999", nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Contains(t, flashCookie(w), "Appointment cancelled.")
}
