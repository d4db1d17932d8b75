package model

import "time"

type Patient struct {
	ID        int64     `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Age       *int      `db:"age" json:"age,omitempty"`
	Gender    string    `db:"gender" json:"gender"`
	Phone     string    `db:"phone" json:"phone"`
	Address   string    `db:"address" json:"address"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// CreatePatientRequest carries the add-patient form. Age arrives as text so
// a blank field can map to NULL instead of zero.
type CreatePatientRequest struct {
	Name    string `form:"name" binding:"required"`
	Age     string `form:"age"`
	Gender  string `form:"gender"`
	Phone   string `form:"phone"`
	Address string `form:"address"`
}

// PatientOption is the (id, name) projection backing the booking form's
// patient selector.
type PatientOption struct {
	ID   int64  `db:"id" json:"id"`
	Name string `db:"name" json:"name"`
}
