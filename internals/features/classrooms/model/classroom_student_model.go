package model

import (
	"time"

	"github.com/google/uuid"
)

// ClassroomStudentModel is the roster join table. The classroom aggregate
// owns it; "classrooms of a student" is a derived query, never a second
// mutated collection.
type ClassroomStudentModel struct {
	ClassroomStudentClassroomID uuid.UUID `json:"classroom_student_classroom_id" gorm:"column:classroom_student_classroom_id;type:uuid;primaryKey"`
	ClassroomStudentUserID      uuid.UUID `json:"classroom_student_user_id" gorm:"column:classroom_student_user_id;type:uuid;primaryKey"`

	ClassroomStudentEnrolledAt time.Time `json:"classroom_student_enrolled_at" gorm:"column:classroom_student_enrolled_at;autoCreateTime"`
}

func (ClassroomStudentModel) TableName() string {
	return "classroom_students"
}
