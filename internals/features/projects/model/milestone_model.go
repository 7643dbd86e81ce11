package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type MilestoneModel struct {
	MilestoneID uuid.UUID `json:"milestone_id" gorm:"column:milestone_id;type:uuid;primaryKey"`

	MilestoneTitle     string    `json:"milestone_title" gorm:"column:milestone_title;type:varchar(200);not null"`
	MilestoneProjectID uuid.UUID `json:"milestone_project_id" gorm:"column:milestone_project_id;type:uuid;not null;index"`

	// Never later than the project deadline.
	MilestoneDueDate time.Time `json:"milestone_due_date" gorm:"column:milestone_due_date;not null"`

	MilestoneCreatedAt time.Time `json:"milestone_created_at" gorm:"column:milestone_created_at;autoCreateTime"`
}

func (MilestoneModel) TableName() string {
	return "milestones"
}

func (m *MilestoneModel) BeforeCreate(tx *gorm.DB) error {
	if m.MilestoneID == uuid.Nil {
		m.MilestoneID = uuid.New()
	}
	return nil
}
