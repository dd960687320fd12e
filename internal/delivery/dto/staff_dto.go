package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateStaffRequest struct {
	EmployeeNumber  string `json:"employee_number" validate:"required,max=32"`
	FullName        string `json:"full_name" validate:"required,max=255"`
	Department      string `json:"department" validate:"max=100"`
	CareerStartDate string `json:"career_start_date" validate:"required,datetime=2006-01-02"`
}

type StaffResponse struct {
	ID              uuid.UUID `json:"id"`
	EmployeeNumber  string    `json:"employee_number"`
	FullName        string    `json:"full_name"`
	Department      string    `json:"department"`
	CareerStartDate string    `json:"career_start_date"`
	ExperienceYears int       `json:"experience_years"`
	IsActive        bool      `json:"is_active"`
	CreatedAt       time.Time `json:"created_at"`
}

type StaffListResponse struct {
	Staff []StaffResponse `json:"staff"`
	Total int             `json:"total"`
}
