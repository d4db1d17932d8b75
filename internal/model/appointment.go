package model

import "time"

type AppointmentStatus string

const (
	AppointmentStatusBooked    AppointmentStatus = "booked"
	AppointmentStatusCancelled AppointmentStatus = "cancelled"
)

type Appointment struct {
	ID                  int64             `db:"id" json:"id"`
	PatientID           int64             `db:"patient_id" json:"patient_id"`
	AppointmentDatetime time.Time         `db:"appointment_datetime" json:"appointment_datetime"`
	Doctor              string            `db:"doctor" json:"doctor"`
	Notes               string            `db:"notes" json:"notes"`
	Status              AppointmentStatus `db:"status" json:"status"`
	CreatedAt           time.Time         `db:"created_at" json:"created_at"`
}

// AppointmentWithPatient is the listing row: an appointment inner-joined to
// the name of the patient it belongs to.
type AppointmentWithPatient struct {
	Appointment
	PatientName string `db:"patient_name" json:"patient_name"`
}

// BookAppointmentRequest carries the booking form. The datetime field uses
// the datetime-local wire format (2006-01-02T15:04); both fields are
// validated in the service so a miss becomes a user-facing warning rather
// than a binding error.
type BookAppointmentRequest struct {
	PatientID           string `form:"patient_id"`
	AppointmentDatetime string `form:"appointment_datetime"`
	Doctor              string `form:"doctor"`
	Notes               string `form:"notes"`
}

// DashboardStats backs the dashboard page.
type DashboardStats struct {
	PatientsCount           int64 `json:"patients_count"`
	BookedAppointmentsCount int64 `json:"appointments_count"`
}
