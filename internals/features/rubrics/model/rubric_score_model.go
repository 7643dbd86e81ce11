package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RubricScoreModel represents the `rubric_scores` table. One raw score per
// (team, criteria); regrading overwrites the existing row.
type RubricScoreModel struct {
	ScoreID uuid.UUID `json:"score_id" gorm:"column:score_id;type:uuid;primaryKey"`

	ScoreTeamID     uuid.UUID `json:"score_team_id" gorm:"column:score_team_id;type:uuid;not null;uniqueIndex:idx_score_team_criteria"`
	ScoreCriteriaID uuid.UUID `json:"score_criteria_id" gorm:"column:score_criteria_id;type:uuid;not null;index;uniqueIndex:idx_score_team_criteria"`

	// Raw score in [0, criteria max score].
	ScoreValue    float64   `json:"score_value" gorm:"column:score_value;not null"`
	ScoreGradedBy uuid.UUID `json:"score_graded_by" gorm:"column:score_graded_by;type:uuid;not null"`

	ScoreCreatedAt time.Time `json:"score_created_at" gorm:"column:score_created_at;autoCreateTime"`
	ScoreUpdatedAt time.Time `json:"score_updated_at" gorm:"column:score_updated_at;autoUpdateTime"`
}

func (RubricScoreModel) TableName() string {
	return "rubric_scores"
}

func (m *RubricScoreModel) BeforeCreate(tx *gorm.DB) error {
	if m.ScoreID == uuid.Nil {
		m.ScoreID = uuid.New()
	}
	return nil
}
