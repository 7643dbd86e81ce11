package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RubricModel represents the `rubrics` table. A rubric belongs to a project
// and holds a set of weighted criteria.
type RubricModel struct {
	RubricID uuid.UUID `json:"rubric_id" gorm:"column:rubric_id;type:uuid;primaryKey"`

	RubricTitle       string    `json:"rubric_title" gorm:"column:rubric_title;type:varchar(200);not null"`
	RubricDescription string    `json:"rubric_description" gorm:"column:rubric_description;type:text"`
	RubricProjectID   uuid.UUID `json:"rubric_project_id" gorm:"column:rubric_project_id;type:uuid;not null;index"`

	RubricCreatedAt time.Time `json:"rubric_created_at" gorm:"column:rubric_created_at;autoCreateTime"`
}

func (RubricModel) TableName() string {
	return "rubrics"
}

func (m *RubricModel) BeforeCreate(tx *gorm.DB) error {
	if m.RubricID == uuid.Nil {
		m.RubricID = uuid.New()
	}
	return nil
}

// RubricCriteriaModel represents the `rubric_criterias` table. Weight is a
// fraction in [0,1]; weights across a rubric are not forced to sum to 1.
type RubricCriteriaModel struct {
	CriteriaID uuid.UUID `json:"criteria_id" gorm:"column:criteria_id;type:uuid;primaryKey"`

	CriteriaRubricID uuid.UUID `json:"criteria_rubric_id" gorm:"column:criteria_rubric_id;type:uuid;not null;index"`
	CriteriaName     string    `json:"criteria_name" gorm:"column:criteria_name;type:varchar(200);not null"`
	CriteriaWeight   float64   `json:"criteria_weight" gorm:"column:criteria_weight;not null"`
	CriteriaMaxScore float64   `json:"criteria_max_score" gorm:"column:criteria_max_score;not null"`

	CriteriaCreatedAt time.Time `json:"criteria_created_at" gorm:"column:criteria_created_at;autoCreateTime"`
}

func (RubricCriteriaModel) TableName() string {
	return "rubric_criterias"
}

func (m *RubricCriteriaModel) BeforeCreate(tx *gorm.DB) error {
	if m.CriteriaID == uuid.Nil {
		m.CriteriaID = uuid.New()
	}
	return nil
}
