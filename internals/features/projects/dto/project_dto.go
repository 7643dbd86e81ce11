package dto

import (
	"time"

	"github.com/google/uuid"

	"collabsphere_backend/internals/features/projects/model"
)

type CreateProjectRequest struct {
	ClassroomID uuid.UUID `json:"classroom_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
	Deadline    time.Time `json:"deadline" validate:"required"`
}

type CreateMilestoneRequest struct {
	Title   string    `json:"title" validate:"required"`
	DueDate time.Time `json:"due_date" validate:"required"`
}

type ProjectResponse struct {
	ProjectID   uuid.UUID `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	ClassroomID uuid.UUID `json:"classroom_id"`
	Status      string    `json:"status"`
	Deadline    time.Time `json:"deadline"`
	CreatedAt   time.Time `json:"created_at"`
}

type MilestoneResponse struct {
	MilestoneID uuid.UUID `json:"milestone_id"`
	Title       string    `json:"title"`
	ProjectID   uuid.UUID `json:"project_id"`
	DueDate     time.Time `json:"due_date"`
}

func ToProjectResponse(m model.ProjectModel) ProjectResponse {
	return ProjectResponse{
		ProjectID:   m.ProjectID,
		Title:       m.ProjectTitle,
		Description: m.ProjectDescription,
		ClassroomID: m.ProjectClassroomID,
		Status:      m.ProjectStatus,
		Deadline:    m.ProjectDeadline,
		CreatedAt:   m.ProjectCreatedAt,
	}
}

func ToProjectResponses(ms []model.ProjectModel) []ProjectResponse {
	out := make([]ProjectResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToProjectResponse(m))
	}
	return out
}

func ToMilestoneResponse(m model.MilestoneModel) MilestoneResponse {
	return MilestoneResponse{
		MilestoneID: m.MilestoneID,
		Title:       m.MilestoneTitle,
		ProjectID:   m.MilestoneProjectID,
		DueDate:     m.MilestoneDueDate,
	}
}

func ToMilestoneResponses(ms []model.MilestoneModel) []MilestoneResponse {
	out := make([]MilestoneResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToMilestoneResponse(m))
	}
	return out
}
