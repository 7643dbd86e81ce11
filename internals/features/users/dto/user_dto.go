package dto

import (
	"time"

	"github.com/google/uuid"

	"collabsphere_backend/internals/features/users/model"
)

type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"omitempty,oneof=STUDENT LECTURER ADMIN HEAD_DEPARTMENT STAFF"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}

type UserResponse struct {
	UserID   uuid.UUID `json:"user_id"`
	Email    string    `json:"email"`
	FullName string    `json:"full_name"`
	Role     string    `json:"role"`
	Active   bool      `json:"active"`
	JoinedAt time.Time `json:"joined_at"`
}

func ToUserResponse(u model.UserModel) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Email:    u.UserEmail,
		FullName: u.UserFullName,
		Role:     u.UserRole,
		Active:   u.UserActive,
		JoinedAt: u.UserCreatedAt,
	}
}

func ToUserResponses(users []model.UserModel) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
