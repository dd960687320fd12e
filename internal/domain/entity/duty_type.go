package entity

import "time"

type DutyTypeCategory string

const (
	DutyTypeCategoryDay     DutyTypeCategory = "day"
	DutyTypeCategoryEvening DutyTypeCategory = "evening"
	DutyTypeCategoryNight   DutyTypeCategory = "night"
)

type DutyType struct {
	ID        int              `gorm:"primaryKey;autoIncrement" json:"id"`
	Code      string           `gorm:"type:varchar(32);uniqueIndex;not null" json:"code"`
	Name      string           `gorm:"type:varchar(100);not null" json:"name"`
	Category  DutyTypeCategory `gorm:"type:varchar(10);not null" json:"category"`
	CreatedAt time.Time        `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time        `gorm:"autoUpdateTime" json:"updated_at"`
}

func (DutyType) TableName() string {
	return "duty_types"
}
