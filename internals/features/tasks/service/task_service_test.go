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
	"collabsphere_backend/internals/features/tasks/dto"
	"collabsphere_backend/internals/features/tasks/model"
	teammodel "collabsphere_backend/internals/features/teams/model"
	usermodel "collabsphere_backend/internals/features/users/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type fixture struct {
	db      *gorm.DB
	team    teammodel.TeamModel
	member  policy.Actor
	member2 policy.Actor
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
		ClassroomName: "OS", ClassroomCode: "OS-01", ClassroomLecturerID: lecturer.UserID,
	}
	require.NoError(t, db.Create(&classroom).Error)

	project := projectmodel.ProjectModel{
		ProjectTitle: "Scheduler", ProjectClassroomID: classroom.ClassroomID,
		ProjectStatus: projectmodel.StatusApproved, ProjectDeadline: time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&project).Error)

	team := teammodel.TeamModel{TeamName: "Team 1", TeamProjectID: project.ProjectID}
	require.NoError(t, db.Create(&team).Error)

	members := make([]policy.Actor, 0, 2)
	for i := 0; i < 2; i++ {
		student := usermodel.UserModel{
			UserEmail: fmt.Sprintf("student%d@example.com", i+1), UserPassword: "x",
			UserFullName: fmt.Sprintf("Student %d", i+1), UserRole: constants.RoleStudent, UserActive: true,
		}
		require.NoError(t, db.Create(&student).Error)
		require.NoError(t, db.Create(&teammodel.TeamMemberModel{
			TeamMemberTeamID: team.TeamID,
			TeamMemberUserID: student.UserID,
		}).Error)
		members = append(members, policy.Actor{ID: student.UserID, Role: constants.RoleStudent})
	}

	return fixture{db: db, team: team, member: members[0], member2: members[1]}
}

func kindOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Kind
}

func TestCreateTaskDefaults(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	task, err := svc.Create(context.Background(), fx.member, CreateTaskInput{
		TeamID: fx.team.TeamID,
		Title:  "Write scheduler",
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusTodo, task.TaskStatus)
	assert.Equal(t, model.PriorityMedium, task.TaskPriority)
	assert.Nil(t, task.TaskAssigneeID)
}

func TestCreateTaskAssigneeMustBeMember(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	outsider := uuid.New()
	_, err := svc.Create(context.Background(), fx.member, CreateTaskInput{
		TeamID:     fx.team.TeamID,
		Title:      "Write scheduler",
		AssigneeID: &outsider,
	})
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
}

func TestCreateTaskForbiddenForNonMembers(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	stranger := policy.Actor{ID: uuid.New(), Role: constants.RoleStudent}
	_, err := svc.Create(context.Background(), stranger, CreateTaskInput{
		TeamID: fx.team.TeamID,
		Title:  "Write scheduler",
	})
	require.Error(t, err)
	assert.Equal(t, helper.KindForbidden, kindOf(t, err))
}

func TestUpdateStatusAnyTransition(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	task, err := svc.Create(ctx, fx.member, CreateTaskInput{TeamID: fx.team.TeamID, Title: "T"})
	require.NoError(t, err)

	task, err = svc.UpdateStatus(ctx, fx.member, task.TaskID, model.StatusDone)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDone, task.TaskStatus)

	// backwards move is allowed
	task, err = svc.UpdateStatus(ctx, fx.member2, task.TaskID, model.StatusDoing)
	require.NoError(t, err)
	assert.Equal(t, model.StatusDoing, task.TaskStatus)

	_, err = svc.UpdateStatus(ctx, fx.member, task.TaskID, "BLOCKED")
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
}

func TestAssignTask(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	task, err := svc.Create(ctx, fx.member, CreateTaskInput{TeamID: fx.team.TeamID, Title: "T"})
	require.NoError(t, err)

	task, err = svc.Assign(ctx, fx.member, task.TaskID, fx.member2.ID)
	require.NoError(t, err)
	require.NotNil(t, task.TaskAssigneeID)
	assert.Equal(t, fx.member2.ID, *task.TaskAssigneeID)

	_, err = svc.Assign(ctx, fx.member, task.TaskID, uuid.New())
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
}

func TestKanbanBucketsEveryStatus(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	t1, err := svc.Create(ctx, fx.member, CreateTaskInput{TeamID: fx.team.TeamID, Title: "todo"})
	require.NoError(t, err)
	t2, err := svc.Create(ctx, fx.member, CreateTaskInput{TeamID: fx.team.TeamID, Title: "doing"})
	require.NoError(t, err)
	t3, err := svc.Create(ctx, fx.member, CreateTaskInput{TeamID: fx.team.TeamID, Title: "done"})
	require.NoError(t, err)

	_, err = svc.UpdateStatus(ctx, fx.member, t2.TaskID, model.StatusDoing)
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, fx.member, t3.TaskID, model.StatusDone)
	require.NoError(t, err)

	tasks, err := svc.ListByTeam(ctx, fx.member, fx.team.TeamID, "")
	require.NoError(t, err)
	board := dto.ToKanbanBoard(tasks)

	require.Len(t, board.Todo, 1)
	require.Len(t, board.Doing, 1)
	require.Len(t, board.Done, 1)
	assert.Equal(t, t1.TaskID, board.Todo[0].TaskID)
	assert.Equal(t, t2.TaskID, board.Doing[0].TaskID)
	assert.Equal(t, t3.TaskID, board.Done[0].TaskID)
}

func TestListMineFiltersByAssignee(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	task, err := svc.Create(ctx, fx.member, CreateTaskInput{
		TeamID:     fx.team.TeamID,
		Title:      "mine",
		AssigneeID: &fx.member.ID,
	})
	require.NoError(t, err)
	_, err = svc.Create(ctx, fx.member, CreateTaskInput{TeamID: fx.team.TeamID, Title: "unassigned"})
	require.NoError(t, err)

	mine, err := svc.ListMine(ctx, fx.member, "")
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, task.TaskID, mine[0].TaskID)

	none, err := svc.ListMine(ctx, fx.member2, "")
	require.NoError(t, err)
	assert.Empty(t, none)
}
