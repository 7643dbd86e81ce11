package dto

import (
	"time"

	"github.com/google/uuid"

	"collabsphere_backend/internals/features/classrooms/model"
	userdto "collabsphere_backend/internals/features/users/dto"
)

type CreateClassroomRequest struct {
	Name string `json:"name" validate:"required"`
	Code string `json:"code" validate:"required"`
}

type AddStudentRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ClassroomResponse struct {
	ClassroomID uuid.UUID `json:"classroom_id"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	LecturerID  uuid.UUID `json:"lecturer_id"`
	CreatedAt   time.Time `json:"created_at"`
}

type ClassroomDetailResponse struct {
	ClassroomResponse
	Students []userdto.UserResponse `json:"students"`
}

func ToClassroomResponse(m model.ClassroomModel) ClassroomResponse {
	return ClassroomResponse{
		ClassroomID: m.ClassroomID,
		Name:        m.ClassroomName,
		Code:        m.ClassroomCode,
		LecturerID:  m.ClassroomLecturerID,
		CreatedAt:   m.ClassroomCreatedAt,
	}
}

func ToClassroomResponses(ms []model.ClassroomModel) []ClassroomResponse {
	out := make([]ClassroomResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToClassroomResponse(m))
	}
	return out
}
