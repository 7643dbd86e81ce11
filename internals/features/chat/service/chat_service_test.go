package service

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	database "collabsphere_backend/internals/databases"
	classroommodel "collabsphere_backend/internals/features/classrooms/model"
	projectmodel "collabsphere_backend/internals/features/projects/model"
	teammodel "collabsphere_backend/internals/features/teams/model"
	usermodel "collabsphere_backend/internals/features/users/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type fixture struct {
	db     *gorm.DB
	team   teammodel.TeamModel
	member policy.Actor
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	lecturer := usermodel.UserModel{
		UserEmail: "lecturer@example.com", UserPassword: "x",
		UserFullName: "Lecturer", UserRole: constants.RoleLecturer, UserActive: true,
	}
	require.NoError(t, db.Create(&lecturer).Error)
	classroom := classroommodel.ClassroomModel{
		ClassroomName: "HCI", ClassroomCode: "HCI-01", ClassroomLecturerID: lecturer.UserID,
	}
	require.NoError(t, db.Create(&classroom).Error)
	project := projectmodel.ProjectModel{
		ProjectTitle: "Prototype", ProjectClassroomID: classroom.ClassroomID,
		ProjectStatus: projectmodel.StatusApproved, ProjectDeadline: time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&project).Error)
	team := teammodel.TeamModel{TeamName: "Team 1", TeamProjectID: project.ProjectID}
	require.NoError(t, db.Create(&team).Error)

	student := usermodel.UserModel{
		UserEmail: "student@example.com", UserPassword: "x",
		UserFullName: "Student One", UserRole: constants.RoleStudent, UserActive: true,
	}
	require.NoError(t, db.Create(&student).Error)
	require.NoError(t, db.Create(&teammodel.TeamMemberModel{
		TeamMemberTeamID: team.TeamID, TeamMemberUserID: student.UserID,
	}).Error)

	return fixture{
		db:     db,
		team:   team,
		member: policy.Actor{ID: student.UserID, Role: constants.RoleStudent},
	}
}

func TestSendMessagePersistsAndNames(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	msg, err := svc.SendMessage(context.Background(), fx.member, fx.team.TeamID, "hello team")
	require.NoError(t, err)
	assert.Equal(t, "hello team", msg.Content)
	assert.Equal(t, "Student One", msg.SenderName)
	assert.Equal(t, fx.team.TeamID, msg.TeamID)
	assert.False(t, msg.Timestamp.IsZero())
}

func TestSendMessageRejectsEmptyAndNonMembers(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, fx.member, fx.team.TeamID, "   ")
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindValidation, appErr.Kind)

	stranger := policy.Actor{ID: uuid.New(), Role: constants.RoleStudent}
	_, err = svc.SendMessage(ctx, stranger, fx.team.TeamID, "hi")
	require.Error(t, err)
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindForbidden, appErr.Kind)
}

func TestHistoryOrderAndSince(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	first, err := svc.SendMessage(ctx, fx.member, fx.team.TeamID, "first")
	require.NoError(t, err)
	time.Sleep(10 * time.Millisecond)
	second, err := svc.SendMessage(ctx, fx.member, fx.team.TeamID, "second")
	require.NoError(t, err)

	history, err := svc.GetTeamMessages(ctx, fx.member, fx.team.TeamID)
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, first.MessageID, history[0].MessageID)
	assert.Equal(t, second.MessageID, history[1].MessageID)

	recent, err := svc.GetRecentMessages(ctx, fx.member, fx.team.TeamID, first.Timestamp)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, second.MessageID, recent[0].MessageID)
}

func TestHistoryForbiddenForNonMembers(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	stranger := policy.Actor{ID: uuid.New(), Role: constants.RoleStudent}
	_, err := svc.GetTeamMessages(context.Background(), stranger, fx.team.TeamID)
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindForbidden, appErr.Kind)
}

func TestLecturerCanReadHistory(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	_, err := svc.SendMessage(ctx, fx.member, fx.team.TeamID, "hello")
	require.NoError(t, err)

	observer := policy.Actor{ID: uuid.New(), Role: constants.RoleLecturer}
	history, err := svc.GetTeamMessages(ctx, observer, fx.team.TeamID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}
