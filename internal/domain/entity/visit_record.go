package entity

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// VisitRecord holds the clinical notes of an attended appointment. It lives
// in the document store, one document per appointment.
type VisitRecord struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	AppointmentID string             `bson:"appointment_id" json:"appointment_id"`
	PatientID     string             `bson:"patient_id" json:"patient_id"`
	DoctorID      string             `bson:"doctor_id" json:"doctor_id"`
	VisitDate     time.Time          `bson:"visit_date" json:"visit_date"`
	Notes         string             `bson:"notes" json:"notes"`
	Prescription  string             `bson:"prescription,omitempty" json:"prescription,omitempty"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
}

// VisitRecordFilter selects records by participant. Empty fields are ignored.
type VisitRecordFilter struct {
	PatientID string
	DoctorID  string
}
