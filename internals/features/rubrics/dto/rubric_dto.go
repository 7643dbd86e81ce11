package dto

import (
	"time"

	"github.com/google/uuid"

	"collabsphere_backend/internals/features/rubrics/model"
)

type CreateRubricRequest struct {
	ProjectID   uuid.UUID `json:"project_id" validate:"required"`
	Title       string    `json:"title" validate:"required"`
	Description string    `json:"description"`
}

type AddCriteriaRequest struct {
	Name     string  `json:"name" validate:"required"`
	Weight   float64 `json:"weight" validate:"gte=0,lte=1"`
	MaxScore float64 `json:"max_score" validate:"required,gt=0"`
}

type CriteriaScoreInput struct {
	CriteriaID uuid.UUID `json:"criteria_id" validate:"required"`
	Score      float64   `json:"score" validate:"min=0"`
}

type GradeTeamRequest struct {
	TeamID uuid.UUID            `json:"team_id" validate:"required"`
	Scores []CriteriaScoreInput `json:"scores" validate:"required,min=1,dive"`
}

type RubricResponse struct {
	RubricID    uuid.UUID `json:"rubric_id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"created_at"`
}

type CriteriaResponse struct {
	CriteriaID uuid.UUID `json:"criteria_id"`
	RubricID   uuid.UUID `json:"rubric_id"`
	Name       string    `json:"name"`
	Weight     float64   `json:"weight"`
	MaxScore   float64   `json:"max_score"`
}

type ScoreResponse struct {
	ScoreID    uuid.UUID `json:"score_id"`
	TeamID     uuid.UUID `json:"team_id"`
	CriteriaID uuid.UUID `json:"criteria_id"`
	Score      float64   `json:"score"`
	GradedBy   uuid.UUID `json:"graded_by"`
	GradedAt   time.Time `json:"graded_at"`
}

// GradeResultResponse is the outcome of grading a team against a rubric.
// TotalScore is on a 0..10 scale.
type GradeResultResponse struct {
	TeamID     uuid.UUID `json:"team_id"`
	RubricID   uuid.UUID `json:"rubric_id"`
	TotalScore float64   `json:"total_score"`
	WeightSum  float64   `json:"weight_sum"`
	GradedBy   uuid.UUID `json:"graded_by"`
	GradedAt   time.Time `json:"graded_at"`
}

func ToRubricResponse(m model.RubricModel) RubricResponse {
	return RubricResponse{
		RubricID:    m.RubricID,
		ProjectID:   m.RubricProjectID,
		Title:       m.RubricTitle,
		Description: m.RubricDescription,
		CreatedAt:   m.RubricCreatedAt,
	}
}

func ToRubricResponses(ms []model.RubricModel) []RubricResponse {
	out := make([]RubricResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToRubricResponse(m))
	}
	return out
}

func ToCriteriaResponse(m model.RubricCriteriaModel) CriteriaResponse {
	return CriteriaResponse{
		CriteriaID: m.CriteriaID,
		RubricID:   m.CriteriaRubricID,
		Name:       m.CriteriaName,
		Weight:     m.CriteriaWeight,
		MaxScore:   m.CriteriaMaxScore,
	}
}

func ToCriteriaResponses(ms []model.RubricCriteriaModel) []CriteriaResponse {
	out := make([]CriteriaResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToCriteriaResponse(m))
	}
	return out
}

func ToScoreResponse(m model.RubricScoreModel) ScoreResponse {
	return ScoreResponse{
		ScoreID:    m.ScoreID,
		TeamID:     m.ScoreTeamID,
		CriteriaID: m.ScoreCriteriaID,
		Score:      m.ScoreValue,
		GradedBy:   m.ScoreGradedBy,
		GradedAt:   m.ScoreUpdatedAt,
	}
}

func ToScoreResponses(ms []model.RubricScoreModel) []ScoreResponse {
	out := make([]ScoreResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, ToScoreResponse(m))
	}
	return out
}
