package entity

import "time"

// Branch is a clinic location. Doctors may be attached to one branch.
type Branch struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(200);not null" json:"name"`
	Address   string    `gorm:"type:text;not null" json:"address"`
	Phone     string    `gorm:"type:varchar(20);not null;default:''" json:"phone,omitempty"`
	Email     string    `gorm:"type:varchar(255);not null;default:''" json:"email,omitempty"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Branch) TableName() string {
	return "branches"
}
