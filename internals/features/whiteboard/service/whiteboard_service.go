package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	teamservice "collabsphere_backend/internals/features/teams/service"
	"collabsphere_backend/internals/features/whiteboard/model"
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

// GetSnapshot returns the stored board, or an empty JSON object when the team
// has never saved.
func (s *Service) GetSnapshot(ctx context.Context, actor policy.Actor, teamID uuid.UUID) (datatypes.JSON, error) {
	if err := s.requireAccess(ctx, actor, teamID); err != nil {
		return nil, err
	}
	var row model.WhiteboardDataModel
	if err := s.db.WithContext(ctx).First(&row, "whiteboard_team_id = ?", teamID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return datatypes.JSON([]byte("{}")), nil
		}
		return nil, err
	}
	return row.WhiteboardData, nil
}

// SaveSnapshot upserts the team's board. Only team members can save.
func (s *Service) SaveSnapshot(ctx context.Context, actor policy.Actor, teamID uuid.UUID, data datatypes.JSON) error {
	member, err := s.teams.IsMember(ctx, teamID, actor.ID)
	if err != nil {
		return err
	}
	if !member {
		return helper.Forbidden("Only team members can save the whiteboard")
	}

	row := model.WhiteboardDataModel{
		WhiteboardTeamID: teamID,
		WhiteboardData:   data,
	}
	return s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "whiteboard_team_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"whiteboard_data", "whiteboard_updated_at"}),
	}).Create(&row).Error
}

// ClearSnapshot deletes the stored board. Deleting a board that was never
// saved is a no-op.
func (s *Service) ClearSnapshot(ctx context.Context, actor policy.Actor, teamID uuid.UUID) error {
	member, err := s.teams.IsMember(ctx, teamID, actor.ID)
	if err != nil {
		return err
	}
	if !member {
		return helper.Forbidden("Only team members can clear the whiteboard")
	}
	return s.db.WithContext(ctx).
		Delete(&model.WhiteboardDataModel{}, "whiteboard_team_id = ?", teamID).Error
}

// CanAccessTeam reports whether the actor may join the team's board room.
func (s *Service) CanAccessTeam(ctx context.Context, actor policy.Actor, teamID uuid.UUID) (bool, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return false, err
	}
	return s.teams.CanAccess(ctx, actor, teamID)
}

func (s *Service) requireAccess(ctx context.Context, actor policy.Actor, teamID uuid.UUID) error {
	ok, err := s.CanAccessTeam(ctx, actor, teamID)
	if err != nil {
		return err
	}
	if !ok {
		return helper.Forbidden("You are not a member of this team")
	}
	return nil
}
