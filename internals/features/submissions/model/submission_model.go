package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// SubmissionModel represents the `submissions` table. A team submits at most
// once per milestone.
type SubmissionModel struct {
	SubmissionID uuid.UUID `json:"submission_id" gorm:"column:submission_id;type:uuid;primaryKey"`

	SubmissionMilestoneID uuid.UUID `json:"submission_milestone_id" gorm:"column:submission_milestone_id;type:uuid;not null;uniqueIndex:idx_submission_milestone_team"`
	SubmissionTeamID      uuid.UUID `json:"submission_team_id" gorm:"column:submission_team_id;type:uuid;not null;index;uniqueIndex:idx_submission_milestone_team"`

	SubmissionFileURL string `json:"submission_file_url" gorm:"column:submission_file_url;type:text;not null"`
	SubmissionNotes   string `json:"submission_notes" gorm:"column:submission_notes;type:text"`

	// Nil until a lecturer grades the submission. Range 0..100.
	SubmissionGrade    *float64   `json:"submission_grade,omitempty" gorm:"column:submission_grade"`
	SubmissionFeedback string     `json:"submission_feedback" gorm:"column:submission_feedback;type:text"`
	SubmissionGradedAt *time.Time `json:"submission_graded_at,omitempty" gorm:"column:submission_graded_at"`

	SubmissionSubmittedBy uuid.UUID `json:"submission_submitted_by" gorm:"column:submission_submitted_by;type:uuid;not null"`

	SubmissionCreatedAt time.Time `json:"submission_created_at" gorm:"column:submission_created_at;autoCreateTime"`
	SubmissionUpdatedAt time.Time `json:"submission_updated_at" gorm:"column:submission_updated_at;autoUpdateTime"`
}

func (SubmissionModel) TableName() string {
	return "submissions"
}

func (m *SubmissionModel) BeforeCreate(tx *gorm.DB) error {
	if m.SubmissionID == uuid.Nil {
		m.SubmissionID = uuid.New()
	}
	return nil
}
