package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/tasks/model"
	teamservice "collabsphere_backend/internals/features/teams/service"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type Service struct {
	db    *gorm.DB
	teams *teamservice.Service
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db, teams: teamservice.NewService(db)}
}

type CreateTaskInput struct {
	TeamID      uuid.UUID
	Title       string
	Description string
	Priority    string
	AssigneeID  *uuid.UUID
	DueDate     *time.Time
}

func (s *Service) Create(ctx context.Context, actor policy.Actor, in CreateTaskInput) (model.TaskModel, error) {
	if _, err := s.teams.GetByID(ctx, in.TeamID); err != nil {
		return model.TaskModel{}, err
	}
	if err := s.requireTeamAccess(ctx, actor, in.TeamID); err != nil {
		return model.TaskModel{}, err
	}

	if in.AssigneeID != nil {
		member, err := s.teams.IsMember(ctx, in.TeamID, *in.AssigneeID)
		if err != nil {
			return model.TaskModel{}, err
		}
		if !member {
			return model.TaskModel{}, helper.Validation("Assignee must be a member of the team")
		}
	}
	if in.DueDate != nil && in.DueDate.Before(time.Now()) {
		return model.TaskModel{}, helper.Validation("Due date cannot be in the past")
	}
	if in.Priority == "" {
		in.Priority = model.PriorityMedium
	}

	task := model.TaskModel{
		TaskTitle:       in.Title,
		TaskDescription: in.Description,
		TaskTeamID:      in.TeamID,
		TaskStatus:      model.StatusTodo,
		TaskPriority:    in.Priority,
		TaskAssigneeID:  in.AssigneeID,
		TaskDueDate:     in.DueDate,
	}
	if err := s.db.WithContext(ctx).Create(&task).Error; err != nil {
		return model.TaskModel{}, err
	}
	return task, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (model.TaskModel, error) {
	var task model.TaskModel
	if err := s.db.WithContext(ctx).First(&task, "task_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.TaskModel{}, helper.NotFound("Task not found")
		}
		return model.TaskModel{}, err
	}
	return task, nil
}

// UpdateStatus moves a task to any of TODO / DOING / DONE; there is no
// enforced ordering between statuses.
func (s *Service) UpdateStatus(ctx context.Context, actor policy.Actor, taskID uuid.UUID, status string) (model.TaskModel, error) {
	if !model.IsValidStatus(status) {
		return model.TaskModel{}, helper.Validation("Unknown task status: " + status)
	}
	task, err := s.GetByID(ctx, taskID)
	if err != nil {
		return model.TaskModel{}, err
	}
	if err := s.requireTeamAccess(ctx, actor, task.TaskTeamID); err != nil {
		return model.TaskModel{}, err
	}

	if err := s.db.WithContext(ctx).Model(&task).
		Update("task_status", status).Error; err != nil {
		return model.TaskModel{}, err
	}
	task.TaskStatus = status
	return task, nil
}

func (s *Service) Assign(ctx context.Context, actor policy.Actor, taskID, assigneeID uuid.UUID) (model.TaskModel, error) {
	task, err := s.GetByID(ctx, taskID)
	if err != nil {
		return model.TaskModel{}, err
	}
	if err := s.requireTeamAccess(ctx, actor, task.TaskTeamID); err != nil {
		return model.TaskModel{}, err
	}

	member, err := s.teams.IsMember(ctx, task.TaskTeamID, assigneeID)
	if err != nil {
		return model.TaskModel{}, err
	}
	if !member {
		return model.TaskModel{}, helper.Validation("Assignee must be a member of the team")
	}

	if err := s.db.WithContext(ctx).Model(&task).
		Update("task_assignee_id", assigneeID).Error; err != nil {
		return model.TaskModel{}, err
	}
	task.TaskAssigneeID = &assigneeID
	return task, nil
}

func (s *Service) ListByTeam(ctx context.Context, actor policy.Actor, teamID uuid.UUID, status string) ([]model.TaskModel, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	if err := s.requireTeamAccess(ctx, actor, teamID); err != nil {
		return nil, err
	}

	q := s.db.WithContext(ctx).Where("task_team_id = ?", teamID)
	if status != "" {
		if !model.IsValidStatus(status) {
			return nil, helper.Validation("Unknown task status: " + status)
		}
		q = q.Where("task_status = ?", status)
	}
	var tasks []model.TaskModel
	err := q.Order("CASE task_priority WHEN 'HIGH' THEN 0 WHEN 'MEDIUM' THEN 1 ELSE 2 END, task_created_at").
		Find(&tasks).Error
	return tasks, err
}

func (s *Service) ListMine(ctx context.Context, actor policy.Actor, status string) ([]model.TaskModel, error) {
	q := s.db.WithContext(ctx).Where("task_assignee_id = ?", actor.ID)
	if status != "" {
		if !model.IsValidStatus(status) {
			return nil, helper.Validation("Unknown task status: " + status)
		}
		q = q.Where("task_status = ?", status)
	}
	var tasks []model.TaskModel
	err := q.Order("task_created_at").Find(&tasks).Error
	return tasks, err
}

func (s *Service) requireTeamAccess(ctx context.Context, actor policy.Actor, teamID uuid.UUID) error {
	ok, err := s.teams.CanAccess(ctx, actor, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return helper.Forbidden("You are not a member of this team")
	}
	return nil
}
