package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/chat/dto"
	"collabsphere_backend/internals/features/chat/model"
	teamservice "collabsphere_backend/internals/features/teams/service"
	usermodel "collabsphere_backend/internals/features/users/model"
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

// SendMessage persists a chat message and returns the broadcast shape.
// Only team members can send.
func (s *Service) SendMessage(ctx context.Context, actor policy.Actor, teamID uuid.UUID, content string) (dto.MessageResponse, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return dto.MessageResponse{}, helper.Validation("Message content cannot be empty")
	}
	member, err := s.teams.IsMember(ctx, teamID, actor.ID)
	if err != nil {
		return dto.MessageResponse{}, err
	}
	if !member {
		return dto.MessageResponse{}, helper.Forbidden("Only team members can send messages")
	}

	msg := model.MessageModel{
		MessageTeamID:   teamID,
		MessageSenderID: actor.ID,
		MessageContent:  content,
	}
	if err := s.db.WithContext(ctx).Create(&msg).Error; err != nil {
		return dto.MessageResponse{}, err
	}

	name, err := s.senderName(ctx, actor.ID)
	if err != nil {
		return dto.MessageResponse{}, err
	}
	return toResponse(msg, name), nil
}

// GetTeamMessages returns the full history ordered by timestamp.
func (s *Service) GetTeamMessages(ctx context.Context, actor policy.Actor, teamID uuid.UUID) ([]dto.MessageResponse, error) {
	return s.history(ctx, actor, teamID, nil)
}

// GetRecentMessages returns messages strictly after since.
func (s *Service) GetRecentMessages(ctx context.Context, actor policy.Actor, teamID uuid.UUID, since time.Time) ([]dto.MessageResponse, error) {
	return s.history(ctx, actor, teamID, &since)
}

func (s *Service) history(ctx context.Context, actor policy.Actor, teamID uuid.UUID, since *time.Time) ([]dto.MessageResponse, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return nil, err
	}
	ok, err := s.teams.CanAccess(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, helper.Forbidden("You are not a member of this team")
	}

	q := s.db.WithContext(ctx).Where("message_team_id = ?", teamID)
	if since != nil {
		q = q.Where("message_created_at > ?", *since)
	}
	var msgs []model.MessageModel
	if err := q.Order("message_created_at").Find(&msgs).Error; err != nil {
		return nil, err
	}

	names, err := s.senderNames(ctx, msgs)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MessageResponse, 0, len(msgs))
	for _, msg := range msgs {
		out = append(out, toResponse(msg, names[msg.MessageSenderID]))
	}
	return out, nil
}

// CanAccessTeam reports whether the actor may join the team's chat room.
// Members plus lecturer/admin observers.
func (s *Service) CanAccessTeam(ctx context.Context, actor policy.Actor, teamID uuid.UUID) (bool, error) {
	if _, err := s.teams.GetByID(ctx, teamID); err != nil {
		return false, err
	}
	return s.teams.CanAccess(ctx, actor, teamID)
}

func (s *Service) senderName(ctx context.Context, userID uuid.UUID) (string, error) {
	var user usermodel.UserModel
	if err := s.db.WithContext(ctx).
		Select("user_full_name").
		First(&user, "user_id = ?", userID).Error; err != nil {
		return "", err
	}
	return user.UserFullName, nil
}

func (s *Service) senderNames(ctx context.Context, msgs []model.MessageModel) (map[uuid.UUID]string, error) {
	ids := make([]uuid.UUID, 0, len(msgs))
	seen := make(map[uuid.UUID]struct{}, len(msgs))
	for _, msg := range msgs {
		if _, ok := seen[msg.MessageSenderID]; ok {
			continue
		}
		seen[msg.MessageSenderID] = struct{}{}
		ids = append(ids, msg.MessageSenderID)
	}
	names := make(map[uuid.UUID]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	var users []usermodel.UserModel
	if err := s.db.WithContext(ctx).
		Select("user_id", "user_full_name").
		Where("user_id IN ?", ids).
		Find(&users).Error; err != nil {
		return nil, err
	}
	for _, u := range users {
		names[u.UserID] = u.UserFullName
	}
	return names, nil
}

func toResponse(m model.MessageModel, senderName string) dto.MessageResponse {
	return dto.MessageResponse{
		MessageID:  m.MessageID,
		TeamID:     m.MessageTeamID,
		SenderID:   m.MessageSenderID,
		SenderName: senderName,
		Content:    m.MessageContent,
		Timestamp:  m.MessageCreatedAt,
	}
}
