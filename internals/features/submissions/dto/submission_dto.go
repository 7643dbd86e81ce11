package dto

import (
	"time"

	"github.com/google/uuid"

	"collabsphere_backend/internals/features/submissions/model"
)

type CreateSubmissionRequest struct {
	MilestoneID uuid.UUID `json:"milestone_id" validate:"required"`
	TeamID      uuid.UUID `json:"team_id" validate:"required"`
	FileURL     string    `json:"file_url" validate:"required"`
	Notes       string    `json:"notes"`
}

type GradeSubmissionRequest struct {
	Grade    float64 `json:"grade" validate:"min=0,max=100"`
	Feedback string  `json:"feedback"`
}

type SubmissionResponse struct {
	SubmissionID uuid.UUID `json:"submission_id"`
	MilestoneID  uuid.UUID `json:"milestone_id"`
	TeamID       uuid.UUID `json:"team_id"`
	FileURL      string    `json:"file_url"`
	Notes        string    `json:"notes"`
	Grade        *float64   `json:"grade,omitempty"`
	Feedback     string     `json:"feedback,omitempty"`
	GradedAt     *time.Time `json:"graded_at,omitempty"`
	SubmittedBy  uuid.UUID  `json:"submitted_by"`
	SubmittedAt  time.Time  `json:"submitted_at"`
}

func ToSubmissionResponse(m model.SubmissionModel) SubmissionResponse {
	return SubmissionResponse{
		SubmissionID: m.SubmissionID,
		MilestoneID:  m.SubmissionMilestoneID,
		TeamID:       m.SubmissionTeamID,
		FileURL:      m.SubmissionFileURL,
		Notes:        m.SubmissionNotes,
		Grade:        m.SubmissionGrade,
		Feedback:     m.SubmissionFeedback,
		GradedAt:     m.SubmissionGradedAt,
		SubmittedBy:  m.SubmissionSubmittedBy,
		SubmittedAt:  m.SubmissionCreatedAt,
	}
}

func ToSubmissionResponses(ms []model.SubmissionModel) []SubmissionResponse {
	out := make([]SubmissionResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToSubmissionResponse(m))
	}
	return out
}
