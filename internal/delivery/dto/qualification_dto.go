package dto

import "time"

type SaveQualificationRequest struct {
	ID                      int    `json:"id"` // 0 creates, nonzero updates
	Code                    string `json:"code" validate:"required,max=32"`
	Name                    string `json:"name" validate:"required,max=255"`
	Category                string `json:"category" validate:"required,oneof=education certification experience training"`
	Mandatory               bool   `json:"mandatory"`
	RequiredExperienceYears int    `json:"required_experience_years" validate:"gte=0"`
	ApplicableRoomIDs       []int  `json:"applicable_room_ids"`
}

type QualificationResponse struct {
	ID                      int       `json:"id"`
	Code                    string    `json:"code"`
	Name                    string    `json:"name"`
	Category                string    `json:"category"`
	Mandatory               bool      `json:"mandatory"`
	RequiredExperienceYears int       `json:"required_experience_years"`
	IsActive                bool      `json:"is_active"`
	ApplicableRoomIDs       []int     `json:"applicable_room_ids"`
	CreatedAt               time.Time `json:"created_at"`
	UpdatedAt               time.Time `json:"updated_at"`
}

type QualificationListResponse struct {
	Qualifications []QualificationResponse `json:"qualifications"`
	Total          int                     `json:"total"`
}

type AssignStaffQualificationRequest struct {
	QualificationID int    `json:"qualification_id" validate:"required"`
	ObtainedDate    string `json:"obtained_date" validate:"required,datetime=2006-01-02"`
	ExpiryDate      string `json:"expiry_date" validate:"omitempty,datetime=2006-01-02"`
}

type StaffQualificationResponse struct {
	ID              int       `json:"id"`
	StaffID         string    `json:"staff_id"`
	QualificationID int       `json:"qualification_id"`
	Code            string    `json:"code,omitempty"`
	Name            string    `json:"name,omitempty"`
	ObtainedDate    string    `json:"obtained_date"`
	ExpiryDate      *string   `json:"expiry_date,omitempty"`
	Status          string    `json:"status"`
	CreatedAt       time.Time `json:"created_at"`
}

type StaffQualificationListResponse struct {
	Qualifications []StaffQualificationResponse `json:"qualifications"`
	Total          int                          `json:"total"`
}
