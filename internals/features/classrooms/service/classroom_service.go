package service

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	"collabsphere_backend/internals/features/classrooms/model"
	usermodel "collabsphere_backend/internals/features/users/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, actor policy.Actor, name, code string) (model.ClassroomModel, error) {
	if !actor.HasRole(constants.LecturerAndAbove...) {
		return model.ClassroomModel{}, helper.Forbidden("Only lecturers and admins can create classrooms")
	}
	code = strings.TrimSpace(code)

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.ClassroomModel{}).
		Where("classroom_code = ?", code).Count(&count).Error; err != nil {
		return model.ClassroomModel{}, err
	}
	if count > 0 {
		return model.ClassroomModel{}, helper.Conflict("Classroom code already exists")
	}

	classroom := model.ClassroomModel{
		ClassroomName:       strings.TrimSpace(name),
		ClassroomCode:       code,
		ClassroomLecturerID: actor.ID,
	}
	if err := s.db.WithContext(ctx).Create(&classroom).Error; err != nil {
		return model.ClassroomModel{}, err
	}
	return classroom, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (model.ClassroomModel, error) {
	var classroom model.ClassroomModel
	if err := s.db.WithContext(ctx).First(&classroom, "classroom_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ClassroomModel{}, helper.NotFound("Classroom not found")
		}
		return model.ClassroomModel{}, err
	}
	return classroom, nil
}

func (s *Service) GetByCode(ctx context.Context, code string) (model.ClassroomModel, error) {
	var classroom model.ClassroomModel
	if err := s.db.WithContext(ctx).First(&classroom, "classroom_code = ?", code).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ClassroomModel{}, helper.NotFound("Classroom not found")
		}
		return model.ClassroomModel{}, err
	}
	return classroom, nil
}

func (s *Service) ListAll(ctx context.Context) ([]model.ClassroomModel, error) {
	var classrooms []model.ClassroomModel
	err := s.db.WithContext(ctx).Order("classroom_created_at").Find(&classrooms).Error
	return classrooms, err
}

func (s *Service) ListByLecturer(ctx context.Context, lecturerID uuid.UUID) ([]model.ClassroomModel, error) {
	var classrooms []model.ClassroomModel
	err := s.db.WithContext(ctx).
		Where("classroom_lecturer_id = ?", lecturerID).
		Order("classroom_created_at").
		Find(&classrooms).Error
	return classrooms, err
}

func (s *Service) ListByStudent(ctx context.Context, studentID uuid.UUID) ([]model.ClassroomModel, error) {
	var classrooms []model.ClassroomModel
	err := s.db.WithContext(ctx).
		Joins("JOIN classroom_students cs ON cs.classroom_student_classroom_id = classrooms.classroom_id").
		Where("cs.classroom_student_user_id = ?", studentID).
		Order("classroom_created_at").
		Find(&classrooms).Error
	return classrooms, err
}

// AddStudent enrolls a user (looked up by email) into the classroom roster.
func (s *Service) AddStudent(ctx context.Context, actor policy.Actor, classroomID uuid.UUID, email string) (usermodel.UserModel, error) {
	classroom, err := s.GetByID(ctx, classroomID)
	if err != nil {
		return usermodel.UserModel{}, err
	}
	if !actor.CanManage(classroom.ClassroomLecturerID) {
		return usermodel.UserModel{}, helper.Forbidden("You can only manage the roster of your own classrooms")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	var student usermodel.UserModel
	if err := s.db.WithContext(ctx).First(&student, "user_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return usermodel.UserModel{}, helper.NotFound("User with email " + email + " not found")
		}
		return usermodel.UserModel{}, err
	}
	if student.UserRole != constants.RoleStudent {
		return usermodel.UserModel{}, helper.Validation("Only students can be added to classrooms")
	}

	enrolled, err := s.IsEnrolled(ctx, classroomID, student.UserID)
	if err != nil {
		return usermodel.UserModel{}, err
	}
	if enrolled {
		return usermodel.UserModel{}, helper.Conflict("Student is already in this classroom")
	}

	row := model.ClassroomStudentModel{
		ClassroomStudentClassroomID: classroomID,
		ClassroomStudentUserID:      student.UserID,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		return usermodel.UserModel{}, err
	}
	return student, nil
}

func (s *Service) RemoveStudent(ctx context.Context, actor policy.Actor, classroomID uuid.UUID, email string) error {
	classroom, err := s.GetByID(ctx, classroomID)
	if err != nil {
		return err
	}
	if !actor.CanManage(classroom.ClassroomLecturerID) {
		return helper.Forbidden("You can only manage the roster of your own classrooms")
	}

	email = strings.ToLower(strings.TrimSpace(email))
	var student usermodel.UserModel
	if err := s.db.WithContext(ctx).First(&student, "user_email = ?", email).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.NotFound("Student not found")
		}
		return err
	}

	res := s.db.WithContext(ctx).
		Where("classroom_student_classroom_id = ? AND classroom_student_user_id = ?", classroomID, student.UserID).
		Delete(&model.ClassroomStudentModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("Student is not enrolled in this classroom")
	}
	return nil
}

func (s *Service) IsEnrolled(ctx context.Context, classroomID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.ClassroomStudentModel{}).
		Where("classroom_student_classroom_id = ? AND classroom_student_user_id = ?", classroomID, userID).
		Count(&count).Error
	return count > 0, err
}

// Roster returns the classroom's enrolled students in enrollment order.
func (s *Service) Roster(ctx context.Context, classroomID uuid.UUID) ([]usermodel.UserModel, error) {
	var students []usermodel.UserModel
	err := s.db.WithContext(ctx).
		Joins("JOIN classroom_students cs ON cs.classroom_student_user_id = users.user_id").
		Where("cs.classroom_student_classroom_id = ?", classroomID).
		Order("cs.classroom_student_enrolled_at").
		Find(&students).Error
	return students, err
}
