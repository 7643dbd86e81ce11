package dto

import (
	"time"

	"github.com/google/uuid"

	"collabsphere_backend/internals/features/teams/model"
	userdto "collabsphere_backend/internals/features/users/dto"
)

type AutoGenerateTeamsRequest struct {
	ProjectID uuid.UUID `json:"project_id" validate:"required"`
	GroupSize int       `json:"group_size" validate:"required,min=2"`
}

type AddMemberRequest struct {
	UserID uuid.UUID `json:"user_id" validate:"required"`
}

type TeamResponse struct {
	TeamID    uuid.UUID              `json:"team_id"`
	Name      string                 `json:"name"`
	ProjectID uuid.UUID              `json:"project_id"`
	CreatedAt time.Time              `json:"created_at"`
	Members   []userdto.UserResponse `json:"members,omitempty"`
}

func ToTeamResponse(m model.TeamModel) TeamResponse {
	return TeamResponse{
		TeamID:    m.TeamID,
		Name:      m.TeamName,
		ProjectID: m.TeamProjectID,
		CreatedAt: m.TeamCreatedAt,
	}
}

func ToTeamResponses(ms []model.TeamModel) []TeamResponse {
	out := make([]TeamResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToTeamResponse(m))
	}
	return out
}
