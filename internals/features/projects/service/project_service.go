package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	classroommodel "collabsphere_backend/internals/features/classrooms/model"
	"collabsphere_backend/internals/features/projects/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

func (s *Service) Create(ctx context.Context, actor policy.Actor, classroomID uuid.UUID, title, description string, deadline time.Time) (model.ProjectModel, error) {
	if !actor.HasRole(constants.LecturerAndAbove...) {
		return model.ProjectModel{}, helper.Forbidden("Only lecturers and admins can create projects")
	}

	classroom, err := s.classroomByID(ctx, classroomID)
	if err != nil {
		return model.ProjectModel{}, err
	}
	if !actor.CanManage(classroom.ClassroomLecturerID) {
		return model.ProjectModel{}, helper.Forbidden("You can only create projects for your own classrooms")
	}
	if deadline.Before(time.Now()) {
		return model.ProjectModel{}, helper.Validation("Project deadline must be in the future")
	}

	project := model.ProjectModel{
		ProjectTitle:       title,
		ProjectDescription: description,
		ProjectClassroomID: classroomID,
		ProjectStatus:      model.StatusDraft,
		ProjectDeadline:    deadline,
	}
	if err := s.db.WithContext(ctx).Create(&project).Error; err != nil {
		return model.ProjectModel{}, err
	}
	return project, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (model.ProjectModel, error) {
	var project model.ProjectModel
	if err := s.db.WithContext(ctx).First(&project, "project_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.ProjectModel{}, helper.NotFound("Project not found")
		}
		return model.ProjectModel{}, err
	}
	return project, nil
}

func (s *Service) ListByClassroom(ctx context.Context, classroomID uuid.UUID) ([]model.ProjectModel, error) {
	var projects []model.ProjectModel
	err := s.db.WithContext(ctx).
		Where("project_classroom_id = ?", classroomID).
		Order("project_created_at").
		Find(&projects).Error
	return projects, err
}

func (s *Service) ListByStatus(ctx context.Context, status string) ([]model.ProjectModel, error) {
	var projects []model.ProjectModel
	err := s.db.WithContext(ctx).
		Where("project_status = ?", status).
		Order("project_created_at").
		Find(&projects).Error
	return projects, err
}

// ListActive returns approved projects of the classroom whose deadline has
// not passed.
func (s *Service) ListActive(ctx context.Context, classroomID uuid.UUID) ([]model.ProjectModel, error) {
	var projects []model.ProjectModel
	err := s.db.WithContext(ctx).
		Where("project_classroom_id = ? AND project_status = ? AND project_deadline > ?",
			classroomID, model.StatusApproved, time.Now()).
		Order("project_deadline").
		Find(&projects).Error
	return projects, err
}

// Submit moves DRAFT → PENDING. Only the owning lecturer may submit.
func (s *Service) Submit(ctx context.Context, actor policy.Actor, projectID uuid.UUID) (model.ProjectModel, error) {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return model.ProjectModel{}, err
	}
	classroom, err := s.classroomByID(ctx, project.ProjectClassroomID)
	if err != nil {
		return model.ProjectModel{}, err
	}
	if classroom.ClassroomLecturerID != actor.ID {
		return model.ProjectModel{}, helper.Forbidden("You can only submit your own projects")
	}
	if project.ProjectStatus != model.StatusDraft {
		return model.ProjectModel{}, helper.Validation("Only DRAFT projects can be submitted")
	}
	return s.setStatus(ctx, project, model.StatusPending)
}

// Decide moves PENDING → APPROVED or REJECTED; HEAD_DEPARTMENT or ADMIN only.
func (s *Service) Decide(ctx context.Context, actor policy.Actor, projectID uuid.UUID, approve bool) (model.ProjectModel, error) {
	if !actor.CanApprove() {
		return model.ProjectModel{}, helper.Forbidden("Only the head of department or admins can decide projects")
	}
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return model.ProjectModel{}, err
	}
	if project.ProjectStatus != model.StatusPending {
		verb := "rejected"
		if approve {
			verb = "approved"
		}
		return model.ProjectModel{}, helper.Validation("Only PENDING projects can be " + verb)
	}
	next := model.StatusRejected
	if approve {
		next = model.StatusApproved
	}
	return s.setStatus(ctx, project, next)
}

func (s *Service) setStatus(ctx context.Context, project model.ProjectModel, status string) (model.ProjectModel, error) {
	if err := s.db.WithContext(ctx).Model(&project).
		Update("project_status", status).Error; err != nil {
		return model.ProjectModel{}, err
	}
	project.ProjectStatus = status
	return project, nil
}

// CreateMilestone adds a dated checkpoint. The due date must lie in the
// future and not exceed the project deadline.
func (s *Service) CreateMilestone(ctx context.Context, actor policy.Actor, projectID uuid.UUID, title string, dueDate time.Time) (model.MilestoneModel, error) {
	project, err := s.GetByID(ctx, projectID)
	if err != nil {
		return model.MilestoneModel{}, err
	}
	classroom, err := s.classroomByID(ctx, project.ProjectClassroomID)
	if err != nil {
		return model.MilestoneModel{}, err
	}
	if !actor.CanManage(classroom.ClassroomLecturerID) {
		return model.MilestoneModel{}, helper.Forbidden("You can only create milestones for your own projects")
	}
	if dueDate.Before(time.Now()) {
		return model.MilestoneModel{}, helper.Validation("Milestone due date must be in the future")
	}
	if dueDate.After(project.ProjectDeadline) {
		return model.MilestoneModel{}, helper.Validation("Milestone due date cannot exceed the project deadline")
	}

	milestone := model.MilestoneModel{
		MilestoneTitle:     title,
		MilestoneProjectID: projectID,
		MilestoneDueDate:   dueDate,
	}
	if err := s.db.WithContext(ctx).Create(&milestone).Error; err != nil {
		return model.MilestoneModel{}, err
	}
	return milestone, nil
}

func (s *Service) ListMilestones(ctx context.Context, projectID uuid.UUID) ([]model.MilestoneModel, error) {
	var milestones []model.MilestoneModel
	err := s.db.WithContext(ctx).
		Where("milestone_project_id = ?", projectID).
		Order("milestone_due_date").
		Find(&milestones).Error
	return milestones, err
}

func (s *Service) ListUpcomingMilestones(ctx context.Context, projectID uuid.UUID) ([]model.MilestoneModel, error) {
	var milestones []model.MilestoneModel
	err := s.db.WithContext(ctx).
		Where("milestone_project_id = ? AND milestone_due_date > ?", projectID, time.Now()).
		Order("milestone_due_date").
		Find(&milestones).Error
	return milestones, err
}

// OwnerLecturerID resolves the end of the project's ownership chain.
func (s *Service) OwnerLecturerID(ctx context.Context, project model.ProjectModel) (uuid.UUID, error) {
	classroom, err := s.classroomByID(ctx, project.ProjectClassroomID)
	if err != nil {
		return uuid.Nil, err
	}
	return classroom.ClassroomLecturerID, nil
}

func (s *Service) classroomByID(ctx context.Context, id uuid.UUID) (classroommodel.ClassroomModel, error) {
	var classroom classroommodel.ClassroomModel
	if err := s.db.WithContext(ctx).First(&classroom, "classroom_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return classroommodel.ClassroomModel{}, helper.NotFound("Classroom not found")
		}
		return classroommodel.ClassroomModel{}, err
	}
	return classroom, nil
}
