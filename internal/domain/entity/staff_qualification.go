package entity

import (
	"time"

	"github.com/google/uuid"
)

type StaffQualificationStatus string

const (
	StaffQualificationStatusActive  StaffQualificationStatus = "active"
	StaffQualificationStatusExpired StaffQualificationStatus = "expired"
	StaffQualificationStatusRevoked StaffQualificationStatus = "revoked"
)

// StaffQualification records that a staff member holds a qualification.
// At most one active record may exist per (staff_id, qualification_id);
// the usecase layer enforces this on assignment.
type StaffQualification struct {
	ID              int                      `gorm:"primaryKey;autoIncrement" json:"id"`
	StaffID         uuid.UUID                `gorm:"type:uuid;not null;index:idx_staff_qualification" json:"staff_id"`
	QualificationID int                      `gorm:"not null;index:idx_staff_qualification" json:"qualification_id"`
	ObtainedDate    time.Time                `gorm:"type:date;not null" json:"obtained_date"`
	ExpiryDate      *time.Time               `gorm:"type:date" json:"expiry_date,omitempty"`
	Status          StaffQualificationStatus `gorm:"type:varchar(10);not null;default:'active'" json:"status"`
	CreatedAt       time.Time                `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time                `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Qualification Qualification `gorm:"foreignKey:QualificationID" json:"qualification,omitempty"`
}

func (StaffQualification) TableName() string {
	return "staff_qualifications"
}

// ActiveAsOf reports whether the record confers the qualification on the given
// date. Records past their expiry date count as expired even before the status
// column has been transitioned.
func (sq *StaffQualification) ActiveAsOf(asOf time.Time) bool {
	if sq.Status != StaffQualificationStatusActive {
		return false
	}
	if sq.ExpiryDate != nil && sq.ExpiryDate.Before(asOf) {
		return false
	}
	return true
}

// ExpiredAsOf reports whether the record is held but lapsed as of the date.
func (sq *StaffQualification) ExpiredAsOf(asOf time.Time) bool {
	if sq.Status == StaffQualificationStatusExpired {
		return true
	}
	return sq.Status == StaffQualificationStatusActive && sq.ExpiryDate != nil && sq.ExpiryDate.Before(asOf)
}
