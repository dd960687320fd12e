package entity

import "time"

// OperatingRoom is a duty location. Its required qualifications are derived
// from Qualification.ApplicableRooms, not stored here.
type OperatingRoom struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"name"`
	Specialty string    `gorm:"type:varchar(100)" json:"specialty"`
	IsActive  *bool     `gorm:"not null;default:true;index" json:"is_active"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (OperatingRoom) TableName() string {
	return "operating_rooms"
}
