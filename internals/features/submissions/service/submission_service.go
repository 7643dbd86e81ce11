package service

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	projectmodel "collabsphere_backend/internals/features/projects/model"
	projectservice "collabsphere_backend/internals/features/projects/service"
	"collabsphere_backend/internals/features/submissions/model"
	teamservice "collabsphere_backend/internals/features/teams/service"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type Service struct {
	db       *gorm.DB
	teams    *teamservice.Service
	projects *projectservice.Service
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:       db,
		teams:    teamservice.NewService(db),
		projects: projectservice.NewService(db),
	}
}

// Create records a team's submission for a milestone. The actor must be a
// member of the team, and the milestone must belong to the team's project.
func (s *Service) Create(ctx context.Context, actor policy.Actor, milestoneID, teamID uuid.UUID, fileURL, notes string) (model.SubmissionModel, error) {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return model.SubmissionModel{}, err
	}
	member, err := s.teams.IsMember(ctx, teamID, actor.ID)
	if err != nil {
		return model.SubmissionModel{}, err
	}
	if !member {
		return model.SubmissionModel{}, helper.Forbidden("Only team members can submit")
	}

	milestone, err := s.milestoneByID(ctx, milestoneID)
	if err != nil {
		return model.SubmissionModel{}, err
	}
	if milestone.MilestoneProjectID != team.TeamProjectID {
		return model.SubmissionModel{}, helper.Validation("Milestone does not belong to the team's project")
	}

	var count int64
	if err := s.db.WithContext(ctx).Model(&model.SubmissionModel{}).
		Where("submission_milestone_id = ? AND submission_team_id = ?", milestoneID, teamID).
		Count(&count).Error; err != nil {
		return model.SubmissionModel{}, err
	}
	if count > 0 {
		return model.SubmissionModel{}, helper.Conflict("Team has already submitted for this milestone")
	}

	sub := model.SubmissionModel{
		SubmissionMilestoneID: milestoneID,
		SubmissionTeamID:      teamID,
		SubmissionFileURL:     fileURL,
		SubmissionNotes:       notes,
		SubmissionSubmittedBy: actor.ID,
	}
	if err := s.db.WithContext(ctx).Create(&sub).Error; err != nil {
		return model.SubmissionModel{}, err
	}
	return sub, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (model.SubmissionModel, error) {
	var sub model.SubmissionModel
	if err := s.db.WithContext(ctx).First(&sub, "submission_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.SubmissionModel{}, helper.NotFound("Submission not found")
		}
		return model.SubmissionModel{}, err
	}
	return sub, nil
}

// Grade stores a grade and feedback for the submission. Only the lecturer who
// owns the project's classroom, or an ADMIN, may grade.
func (s *Service) Grade(ctx context.Context, actor policy.Actor, submissionID uuid.UUID, grade float64, feedback string) (model.SubmissionModel, error) {
	if grade < 0 || grade > 100 {
		return model.SubmissionModel{}, helper.Validation("Grade must be between 0 and 100")
	}
	sub, err := s.GetByID(ctx, submissionID)
	if err != nil {
		return model.SubmissionModel{}, err
	}
	if err := s.requireOwnership(ctx, actor, sub.SubmissionTeamID); err != nil {
		return model.SubmissionModel{}, err
	}

	now := time.Now()
	if err := s.db.WithContext(ctx).Model(&sub).Updates(map[string]interface{}{
		"submission_grade":     grade,
		"submission_feedback":  feedback,
		"submission_graded_at": now,
	}).Error; err != nil {
		return model.SubmissionModel{}, err
	}
	sub.SubmissionGrade = &grade
	sub.SubmissionFeedback = feedback
	sub.SubmissionGradedAt = &now
	return sub, nil
}

// ListByMilestone returns submissions for a milestone. Students only see rows
// from teams they belong to.
func (s *Service) ListByMilestone(ctx context.Context, actor policy.Actor, milestoneID uuid.UUID) ([]model.SubmissionModel, error) {
	if _, err := s.milestoneByID(ctx, milestoneID); err != nil {
		return nil, err
	}
	q := s.db.WithContext(ctx).Where("submission_milestone_id = ?", milestoneID)
	if actor.IsStudent() {
		q = q.Where("submission_team_id IN (?)", s.db.
			Table("team_members").
			Select("team_member_team_id").
			Where("team_member_user_id = ?", actor.ID))
	}
	var subs []model.SubmissionModel
	err := q.Order("submission_created_at").Find(&subs).Error
	return subs, err
}

func (s *Service) ListByTeam(ctx context.Context, actor policy.Actor, teamID uuid.UUID) ([]model.SubmissionModel, error) {
	ok, err := s.teams.CanAccess(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, helper.Forbidden("You are not a member of this team")
	}
	var subs []model.SubmissionModel
	err = s.db.WithContext(ctx).
		Where("submission_team_id = ?", teamID).
		Order("submission_created_at").
		Find(&subs).Error
	return subs, err
}

func (s *Service) GetByMilestoneAndTeam(ctx context.Context, actor policy.Actor, milestoneID, teamID uuid.UUID) (model.SubmissionModel, error) {
	ok, err := s.teams.CanAccess(ctx, actor, teamID)
	if err != nil {
		return model.SubmissionModel{}, err
	}
	if !ok {
		return model.SubmissionModel{}, helper.Forbidden("You are not a member of this team")
	}
	var sub model.SubmissionModel
	if err := s.db.WithContext(ctx).
		First(&sub, "submission_milestone_id = ? AND submission_team_id = ?", milestoneID, teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.SubmissionModel{}, helper.NotFound("Submission not found")
		}
		return model.SubmissionModel{}, err
	}
	return sub, nil
}

// ListUngraded returns ungraded submissions. Lecturers only see submissions
// from classrooms they own; ADMIN sees everything.
func (s *Service) ListUngraded(ctx context.Context, actor policy.Actor) ([]model.SubmissionModel, error) {
	if actor.IsStudent() {
		return nil, helper.Forbidden("Only lecturers can list ungraded submissions")
	}
	q := s.db.WithContext(ctx).Where("submission_grade IS NULL")
	if !actor.IsAdmin() {
		q = q.Where("submission_team_id IN (?)", s.db.
			Table("teams").
			Select("team_id").
			Where("team_project_id IN (?)", s.db.
				Table("projects").
				Select("project_id").
				Where("project_classroom_id IN (?)", s.db.
					Table("classrooms").
					Select("classroom_id").
					Where("classroom_lecturer_id = ?", actor.ID))))
	}
	var subs []model.SubmissionModel
	err := q.Order("submission_created_at").Find(&subs).Error
	return subs, err
}

func (s *Service) requireOwnership(ctx context.Context, actor policy.Actor, teamID uuid.UUID) error {
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return err
	}
	project, err := s.projects.GetByID(ctx, team.TeamProjectID)
	if err != nil {
		return err
	}
	ownerID, err := s.projects.OwnerLecturerID(ctx, project)
	if err != nil {
		return err
	}
	if !actor.CanManage(ownerID) {
		return helper.Forbidden("Only the classroom lecturer can grade submissions")
	}
	return nil
}

func (s *Service) milestoneByID(ctx context.Context, id uuid.UUID) (projectmodel.MilestoneModel, error) {
	var milestone projectmodel.MilestoneModel
	if err := s.db.WithContext(ctx).First(&milestone, "milestone_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return projectmodel.MilestoneModel{}, helper.NotFound("Milestone not found")
		}
		return projectmodel.MilestoneModel{}, err
	}
	return milestone, nil
}
