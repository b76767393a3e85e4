package entity

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DoctorProfile represents doctor-specific profile data
type DoctorProfile struct {
	UserID            uuid.UUID       `gorm:"type:uuid;primaryKey" json:"user_id"`
	BranchID          *int            `gorm:"index" json:"branch_id,omitempty"`
	Specialization    string          `gorm:"type:varchar(100);not null;default:'';index" json:"specialization"`
	Biography         string          `gorm:"type:text;not null;default:''" json:"biography,omitempty"`
	YearsOfExperience int             `gorm:"not null;default:0" json:"years_of_experience"`
	ConsultationFee   decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0" json:"consultation_fee"`
	IsAvailable       bool            `gorm:"not null;default:true" json:"is_available"`

	// Relationships
	User      User             `gorm:"foreignKey:UserID" json:"user,omitempty"`
	Branch    *Branch          `gorm:"foreignKey:BranchID" json:"branch,omitempty"`
	Schedules []ScheduleWindow `gorm:"foreignKey:DoctorID;references:UserID" json:"schedules,omitempty"`
}

func (DoctorProfile) TableName() string {
	return "doctor_profiles"
}

// Bookable reports whether patients may book with this doctor.
func (p *DoctorProfile) Bookable() bool {
	return p.IsAvailable && p.User.Active() && p.User.Role == RoleStaff
}
