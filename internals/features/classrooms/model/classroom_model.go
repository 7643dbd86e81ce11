package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// ClassroomModel represents the `classrooms` table. The classroom code is
// globally unique.
type ClassroomModel struct {
	ClassroomID uuid.UUID `json:"classroom_id" gorm:"column:classroom_id;type:uuid;primaryKey"`

	ClassroomName string `json:"classroom_name" gorm:"column:classroom_name;type:varchar(120);not null"`
	ClassroomCode string `json:"classroom_code" gorm:"column:classroom_code;type:varchar(40);not null;uniqueIndex"`

	// Owning lecturer
	ClassroomLecturerID uuid.UUID `json:"classroom_lecturer_id" gorm:"column:classroom_lecturer_id;type:uuid;not null;index"`

	ClassroomCreatedAt time.Time `json:"classroom_created_at" gorm:"column:classroom_created_at;autoCreateTime"`
	ClassroomUpdatedAt time.Time `json:"classroom_updated_at" gorm:"column:classroom_updated_at;autoUpdateTime"`
}

func (ClassroomModel) TableName() string {
	return "classrooms"
}

func (m *ClassroomModel) BeforeCreate(tx *gorm.DB) error {
	if m.ClassroomID == uuid.Nil {
		m.ClassroomID = uuid.New()
	}
	return nil
}
