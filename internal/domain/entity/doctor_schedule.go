package entity

import (
	"time"

	"github.com/google/uuid"
)

var dayNames = [7]string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday"}

// ScheduleWindow is a doctor's recurring availability for one weekday.
// A doctor has at most one window per day of week.
type ScheduleWindow struct {
	ID          int       `gorm:"primaryKey;autoIncrement" json:"id"`
	DoctorID    uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_doctor_schedules_doctor_day" json:"doctor_id"`
	DayOfWeek   int       `gorm:"not null;uniqueIndex:idx_doctor_schedules_doctor_day" json:"day_of_week"`
	StartTime   ClockTime `gorm:"type:time;not null" json:"start_time"`
	EndTime     ClockTime `gorm:"type:time;not null" json:"end_time"`
	IsAvailable bool      `gorm:"not null" json:"is_available"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Doctor DoctorProfile `gorm:"foreignKey:DoctorID;references:UserID" json:"doctor,omitempty"`
}

func (ScheduleWindow) TableName() string {
	return "doctor_schedules"
}

// Covers reports whether t falls in [StartTime, EndTime).
func (w *ScheduleWindow) Covers(t ClockTime) bool {
	return w.StartTime <= t && t < w.EndTime
}

func (w *ScheduleWindow) DayName() string {
	return DayName(w.DayOfWeek)
}

func DayName(day int) string {
	if day < 0 || day > 6 {
		return ""
	}
	return dayNames[day]
}
