package entity

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
)

// PatientProfile represents patient-specific profile data
type PatientProfile struct {
	UserID                uuid.UUID  `gorm:"type:uuid;primaryKey" json:"user_id"`
	PatientCode           string     `gorm:"type:varchar(20);not null;uniqueIndex" json:"patient_code"`
	DateOfBirth           *time.Time `gorm:"type:date" json:"date_of_birth,omitempty"`
	Gender                string     `gorm:"type:char(1);not null;default:''" json:"gender,omitempty"`
	Address               string     `gorm:"type:text;not null;default:''" json:"address,omitempty"`
	EmergencyContactName  string     `gorm:"type:varchar(100);not null;default:''" json:"emergency_contact_name,omitempty"`
	EmergencyContactPhone string     `gorm:"type:varchar(20);not null;default:''" json:"emergency_contact_phone,omitempty"`
	Allergies             string     `gorm:"type:text;not null;default:''" json:"allergies,omitempty"`
	MedicalConditions     string     `gorm:"type:text;not null;default:''" json:"medical_conditions,omitempty"`
	CurrentMedications    string     `gorm:"type:text;not null;default:''" json:"current_medications,omitempty"`
	DentalHistory         string     `gorm:"type:text;not null;default:''" json:"dental_history,omitempty"`
	InsuranceProvider     string     `gorm:"type:varchar(100);not null;default:''" json:"insurance_provider,omitempty"`
	InsuranceNumber       string     `gorm:"type:varchar(50);not null;default:''" json:"insurance_number,omitempty"`
	ConsentTreatment      bool       `gorm:"not null;default:false" json:"consent_treatment"`
	ConsentDataSharing    bool       `gorm:"not null;default:false" json:"consent_data_sharing"`

	// Relationships
	User User `gorm:"foreignKey:UserID" json:"user,omitempty"`
}

func (PatientProfile) TableName() string {
	return "patient_profiles"
}

// Gender constants
const (
	GenderMale   = "M"
	GenderFemale = "F"
	GenderOther  = "O"
)

// PatientCodePrefix is the shared prefix of the codes issued on day,
// e.g. "PAT-20250310-".
func PatientCodePrefix(day time.Time) string {
	return "PAT-" + day.Format("20060102") + "-"
}

// NextPatientCode returns the code after last within prefix. A last code
// from another day, or an unparseable one, restarts the sequence at 0001.
func NextPatientCode(prefix, last string) string {
	seq := 1
	if strings.HasPrefix(last, prefix) {
		if n, err := strconv.Atoi(strings.TrimPrefix(last, prefix)); err == nil && n > 0 {
			seq = n + 1
		}
	}
	return fmt.Sprintf("%s%04d", prefix, seq)
}
