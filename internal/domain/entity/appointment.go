package entity

import (
	"time"

	"github.com/google/uuid"
)

// AppointmentStatus is the appointment lifecycle state.
type AppointmentStatus string

const (
	AppointmentStatusUpcoming  AppointmentStatus = "UPCOMING"
	AppointmentStatusAttended  AppointmentStatus = "ATTENDED"
	AppointmentStatusMissed    AppointmentStatus = "MISSED"
	AppointmentStatusCancelled AppointmentStatus = "CANCELLED"
	// AppointmentStatusCompleted only exists on historical rows. Nothing
	// transitions into it.
	AppointmentStatusCompleted AppointmentStatus = "COMPLETED"
)

// appointmentTransitions lists the allowed next states. States without an
// entry are terminal.
var appointmentTransitions = map[AppointmentStatus][]AppointmentStatus{
	AppointmentStatusUpcoming: {
		AppointmentStatusAttended,
		AppointmentStatusMissed,
		AppointmentStatusCancelled,
	},
}

func (s AppointmentStatus) Valid() bool {
	switch s {
	case AppointmentStatusUpcoming, AppointmentStatusAttended, AppointmentStatusMissed,
		AppointmentStatusCancelled, AppointmentStatusCompleted:
		return true
	default:
		return false
	}
}

func (s AppointmentStatus) IsTerminal() bool {
	_, ok := appointmentTransitions[s]
	return !ok
}

func (s AppointmentStatus) CanTransitionTo(next AppointmentStatus) bool {
	for _, allowed := range appointmentTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

// IsVisitCompleted reports whether the visit took place, counting the
// legacy COMPLETED value.
func (s AppointmentStatus) IsVisitCompleted() bool {
	return s == AppointmentStatusAttended || s == AppointmentStatusCompleted
}

// Appointment binds a patient to a doctor's slot. At most one non-cancelled
// appointment exists per (doctor, date, time); the partial unique index
// idx_appointments_doctor_slot enforces it.
type Appointment struct {
	ID              uuid.UUID         `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	PatientID       uuid.UUID         `gorm:"type:uuid;not null;index" json:"patient_id"`
	DoctorID        uuid.UUID         `gorm:"type:uuid;not null;index" json:"doctor_id"`
	AppointmentDate time.Time         `gorm:"type:date;not null" json:"appointment_date"`
	AppointmentTime ClockTime         `gorm:"type:time;not null" json:"appointment_time"`
	Status          AppointmentStatus `gorm:"type:varchar(10);not null;default:'UPCOMING';index" json:"status"`
	Reason          string            `gorm:"type:text;not null;default:''" json:"reason,omitempty"`
	Notes           string            `gorm:"type:text;not null;default:''" json:"notes,omitempty"`
	CreatedAt       time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient User `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Doctor  User `gorm:"foreignKey:DoctorID" json:"doctor,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// StartsAt is the appointment's start instant in the clinic time zone.
func (a *Appointment) StartsAt(loc *time.Location) time.Time {
	return a.AppointmentTime.On(a.AppointmentDate, loc)
}

// IsPast reports whether the appointment's start is before now.
func (a *Appointment) IsPast(now time.Time) bool {
	return a.StartsAt(now.Location()).Before(now)
}

func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// AppointmentFilter narrows ledger queries. Nil fields are ignored.
type AppointmentFilter struct {
	PatientID     *uuid.UUID
	DoctorID      *uuid.UUID
	Status        *AppointmentStatus
	Date          *time.Time
	FromDate      *time.Time
	ExcludeStatus []AppointmentStatus
	Ascending     bool
}
