package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Project approval lifecycle. DRAFT → PENDING → APPROVED | REJECTED; decided
// projects never transition again.
const (
	StatusDraft    = "DRAFT"
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type ProjectModel struct {
	ProjectID uuid.UUID `json:"project_id" gorm:"column:project_id;type:uuid;primaryKey"`

	ProjectTitle       string `json:"project_title" gorm:"column:project_title;type:varchar(200);not null"`
	ProjectDescription string `json:"project_description" gorm:"column:project_description;type:text"`

	ProjectClassroomID uuid.UUID `json:"project_classroom_id" gorm:"column:project_classroom_id;type:uuid;not null;index"`

	ProjectStatus   string    `json:"project_status" gorm:"column:project_status;type:varchar(20);not null;default:'DRAFT'"`
	ProjectDeadline time.Time `json:"project_deadline" gorm:"column:project_deadline;not null"`

	ProjectCreatedAt time.Time `json:"project_created_at" gorm:"column:project_created_at;autoCreateTime"`
	ProjectUpdatedAt time.Time `json:"project_updated_at" gorm:"column:project_updated_at;autoUpdateTime"`
}

func (ProjectModel) TableName() string {
	return "projects"
}

func (m *ProjectModel) BeforeCreate(tx *gorm.DB) error {
	if m.ProjectID == uuid.Nil {
		m.ProjectID = uuid.New()
	}
	return nil
}
