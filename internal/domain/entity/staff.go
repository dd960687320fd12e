package entity

import (
	"time"

	"github.com/google/uuid"
)

// Staff represents a schedulable hospital staff member.
type Staff struct {
	ID              uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"id"`
	EmployeeNumber  string    `gorm:"type:varchar(32);uniqueIndex;not null" json:"employee_number"`
	FullName        string    `gorm:"type:varchar(255);not null" json:"full_name"`
	Department      string    `gorm:"type:varchar(100);index" json:"department"`
	CareerStartDate time.Time `gorm:"type:date;not null" json:"career_start_date"`
	IsActive        *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Qualifications []StaffQualification `gorm:"foreignKey:StaffID" json:"qualifications,omitempty"`
}

func (Staff) TableName() string {
	return "staff"
}

// ExperienceYears returns completed years of service as of the given date.
func (s *Staff) ExperienceYears(asOf time.Time) int {
	years := asOf.Year() - s.CareerStartDate.Year()
	anniversary := s.CareerStartDate.AddDate(years, 0, 0)
	if anniversary.After(asOf) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
