package entity

import "time"

type QualificationCategory string

const (
	QualificationCategoryEducation     QualificationCategory = "education"
	QualificationCategoryCertification QualificationCategory = "certification"
	QualificationCategoryExperience    QualificationCategory = "experience"
	QualificationCategoryTraining      QualificationCategory = "training"
)

// Qualification is admin-managed reference data. It is never deleted, only
// deactivated, so historical assignments stay valid.
type Qualification struct {
	ID                      int                   `gorm:"primaryKey;autoIncrement" json:"id"`
	Code                    string                `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Name                    string                `gorm:"type:varchar(255);not null" json:"name"`
	Category                QualificationCategory `gorm:"type:varchar(20);not null" json:"category"`
	Mandatory               bool                  `gorm:"not null;default:false" json:"mandatory"`
	RequiredExperienceYears int                   `gorm:"not null;default:0" json:"required_experience_years"`
	IsActive                *bool                 `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt               time.Time             `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt               time.Time             `gorm:"autoUpdateTime" json:"updated_at"`

	// ApplicableRooms is the set of rooms this qualification applies to.
	// An empty set means the qualification applies to every room.
	ApplicableRooms []OperatingRoom `gorm:"many2many:qualification_rooms" json:"applicable_rooms,omitempty"`
}

func (Qualification) TableName() string {
	return "qualifications"
}

// AppliesToRoom reports whether this qualification constrains the given room.
func (q *Qualification) AppliesToRoom(roomID int) bool {
	if len(q.ApplicableRooms) == 0 {
		return true
	}
	for _, room := range q.ApplicableRooms {
		if room.ID == roomID {
			return true
		}
	}
	return false
}
