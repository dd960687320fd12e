package converter

import (
	"hospital-duty-scheduler/internal/delivery/dto"
	"hospital-duty-scheduler/internal/domain/entity"
)

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		FullName:  user.FullName,
		RoleID:    user.RoleID,
		IsActive:  user.IsActive != nil && *user.IsActive,
		CreatedAt: user.CreatedAt,
	}
}
