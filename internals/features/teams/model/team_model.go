package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// TeamModel represents the `teams` table. A team belongs to exactly one
// project and its name is unique within that project.
type TeamModel struct {
	TeamID uuid.UUID `json:"team_id" gorm:"column:team_id;type:uuid;primaryKey"`

	TeamName      string    `json:"team_name" gorm:"column:team_name;type:varchar(120);not null;uniqueIndex:idx_team_project_name"`
	TeamProjectID uuid.UUID `json:"team_project_id" gorm:"column:team_project_id;type:uuid;not null;index;uniqueIndex:idx_team_project_name"`

	TeamCreatedAt time.Time `json:"team_created_at" gorm:"column:team_created_at;autoCreateTime"`
}

func (TeamModel) TableName() string {
	return "teams"
}

func (m *TeamModel) BeforeCreate(tx *gorm.DB) error {
	if m.TeamID == uuid.Nil {
		m.TeamID = uuid.New()
	}
	return nil
}

// TeamMemberModel is the membership join table, owned by the team aggregate.
type TeamMemberModel struct {
	TeamMemberTeamID uuid.UUID `json:"team_member_team_id" gorm:"column:team_member_team_id;type:uuid;primaryKey"`
	TeamMemberUserID uuid.UUID `json:"team_member_user_id" gorm:"column:team_member_user_id;type:uuid;primaryKey"`

	TeamMemberJoinedAt time.Time `json:"team_member_joined_at" gorm:"column:team_member_joined_at;autoCreateTime"`
}

func (TeamMemberModel) TableName() string {
	return "team_members"
}
