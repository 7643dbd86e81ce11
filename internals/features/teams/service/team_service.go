package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	classroomservice "collabsphere_backend/internals/features/classrooms/service"
	projectservice "collabsphere_backend/internals/features/projects/service"
	"collabsphere_backend/internals/features/teams/model"
	usermodel "collabsphere_backend/internals/features/users/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type Service struct {
	db         *gorm.DB
	classrooms *classroomservice.Service
	projects   *projectservice.Service

	// swapped out by tests for deterministic partitions
	shuffle func([]usermodel.UserModel)
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:         db,
		classrooms: classroomservice.NewService(db),
		projects:   projectservice.NewService(db),
		shuffle: func(students []usermodel.UserModel) {
			rand.Shuffle(len(students), func(i, j int) {
				students[i], students[j] = students[j], students[i]
			})
		},
	}
}

// SetShuffle overrides the roster shuffle. Tests use it to pin the order.
func (s *Service) SetShuffle(fn func([]usermodel.UserModel)) {
	s.shuffle = fn
}

// AutoGenerate partitions the project's classroom roster into teams of
// groupSize. The roster is shuffled, chunked in order, and any remainder is
// distributed round-robin over the created teams, so no undersized team is
// ever formed. The whole operation runs in one transaction.
func (s *Service) AutoGenerate(ctx context.Context, actor policy.Actor, projectID uuid.UUID, groupSize int) ([]model.TeamModel, error) {
	if !actor.HasRole(constants.LecturerAndAbove...) {
		return nil, helper.Forbidden("Only lecturers and admins can generate teams")
	}
	if groupSize < 2 {
		return nil, helper.Validation("Group size must be at least 2")
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	ownerID, err := s.projects.OwnerLecturerID(ctx, project)
	if err != nil {
		return nil, err
	}
	if !actor.CanManage(ownerID) {
		return nil, helper.Forbidden("You can only generate teams for your own projects")
	}

	var existing int64
	if err := s.db.WithContext(ctx).Model(&model.TeamModel{}).
		Where("team_project_id = ?", projectID).Count(&existing).Error; err != nil {
		return nil, err
	}
	if existing > 0 {
		return nil, helper.Conflict("Teams already exist for this project. Please delete existing teams first.")
	}

	students, err := s.classrooms.Roster(ctx, project.ProjectClassroomID)
	if err != nil {
		return nil, err
	}
	if len(students) == 0 {
		return nil, helper.Validation("No students found in the classroom")
	}
	if len(students) < groupSize {
		return nil, helper.Validation(fmt.Sprintf("Not enough students to form teams of size %d", groupSize))
	}

	s.shuffle(students)

	fullCount := len(students) / groupSize

	var teams []model.TeamModel
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for t := 0; t < fullCount; t++ {
			team := model.TeamModel{
				TeamName:      fmt.Sprintf("Team %d", t+1),
				TeamProjectID: projectID,
			}
			if err := tx.Create(&team).Error; err != nil {
				return err
			}
			for _, student := range students[t*groupSize : (t+1)*groupSize] {
				if err := tx.Create(&model.TeamMemberModel{
					TeamMemberTeamID: team.TeamID,
					TeamMemberUserID: student.UserID,
				}).Error; err != nil {
					return err
				}
			}
			teams = append(teams, team)
		}

		// leftover students go round-robin onto the already-created teams
		for i, student := range students[fullCount*groupSize:] {
			target := teams[i%len(teams)]
			if err := tx.Create(&model.TeamMemberModel{
				TeamMemberTeamID: target.TeamID,
				TeamMemberUserID: student.UserID,
			}).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return teams, nil
}

func (s *Service) GetByID(ctx context.Context, id uuid.UUID) (model.TeamModel, error) {
	var team model.TeamModel
	if err := s.db.WithContext(ctx).First(&team, "team_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.TeamModel{}, helper.NotFound("Team not found")
		}
		return model.TeamModel{}, err
	}
	return team, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.TeamModel, error) {
	var teams []model.TeamModel
	err := s.db.WithContext(ctx).
		Where("team_project_id = ?", projectID).
		Order("team_created_at").
		Find(&teams).Error
	return teams, err
}

func (s *Service) ListByUser(ctx context.Context, userID uuid.UUID) ([]model.TeamModel, error) {
	var teams []model.TeamModel
	err := s.db.WithContext(ctx).
		Joins("JOIN team_members tm ON tm.team_member_team_id = teams.team_id").
		Where("tm.team_member_user_id = ?", userID).
		Order("team_created_at").
		Find(&teams).Error
	return teams, err
}

// Members returns the team's users in join order.
func (s *Service) Members(ctx context.Context, teamID uuid.UUID) ([]usermodel.UserModel, error) {
	var members []usermodel.UserModel
	err := s.db.WithContext(ctx).
		Joins("JOIN team_members tm ON tm.team_member_user_id = users.user_id").
		Where("tm.team_member_team_id = ?", teamID).
		Order("tm.team_member_joined_at").
		Find(&members).Error
	return members, err
}

func (s *Service) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&model.TeamMemberModel{}).
		Where("team_member_team_id = ? AND team_member_user_id = ?", teamID, userID).
		Count(&count).Error
	return count > 0, err
}

// CanAccess reports whether the actor may observe the team: lecturers and
// admins always, anyone else by membership.
func (s *Service) CanAccess(ctx context.Context, actor policy.Actor, teamID uuid.UUID) (bool, error) {
	if actor.CanObserveTeam() {
		return true, nil
	}
	return s.IsMember(ctx, teamID, actor.ID)
}

// AddMember adds an enrolled student of the project's classroom to the team.
func (s *Service) AddMember(ctx context.Context, actor policy.Actor, teamID, userID uuid.UUID) error {
	team, err := s.GetByID(ctx, teamID)
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
		return helper.Forbidden("You can only manage teams of your own projects")
	}

	enrolled, err := s.classrooms.IsEnrolled(ctx, project.ProjectClassroomID, userID)
	if err != nil {
		return err
	}
	if !enrolled {
		return helper.NotFound("User not found in this classroom")
	}

	member, err := s.IsMember(ctx, teamID, userID)
	if err != nil {
		return err
	}
	if member {
		return helper.Conflict("User is already a member of this team")
	}

	return s.db.WithContext(ctx).Create(&model.TeamMemberModel{
		TeamMemberTeamID: teamID,
		TeamMemberUserID: userID,
	}).Error
}

func (s *Service) RemoveMember(ctx context.Context, actor policy.Actor, teamID, userID uuid.UUID) error {
	team, err := s.GetByID(ctx, teamID)
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
		return helper.Forbidden("You can only manage teams of your own projects")
	}

	res := s.db.WithContext(ctx).
		Where("team_member_team_id = ? AND team_member_user_id = ?", teamID, userID).
		Delete(&model.TeamMemberModel{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return helper.NotFound("User is not a member of this team")
	}
	return nil
}

// DeleteByProject removes every team of the project together with the
// memberships, in one transaction.
func (s *Service) DeleteByProject(ctx context.Context, actor policy.Actor, projectID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	ownerID, err := s.projects.OwnerLecturerID(ctx, project)
	if err != nil {
		return err
	}
	if !actor.CanManage(ownerID) {
		return helper.Forbidden("You can only delete teams of your own projects")
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var teamIDs []uuid.UUID
		if err := tx.Model(&model.TeamModel{}).
			Where("team_project_id = ?", projectID).
			Pluck("team_id", &teamIDs).Error; err != nil {
			return err
		}
		if len(teamIDs) == 0 {
			return nil
		}
		if err := tx.Where("team_member_team_id IN ?", teamIDs).
			Delete(&model.TeamMemberModel{}).Error; err != nil {
			return err
		}
		return tx.Where("team_project_id = ?", projectID).
			Delete(&model.TeamModel{}).Error
	})
}
