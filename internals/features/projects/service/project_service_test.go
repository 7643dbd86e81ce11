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
	"collabsphere_backend/internals/features/projects/model"
	usermodel "collabsphere_backend/internals/features/users/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type fixture struct {
	db        *gorm.DB
	lecturer  policy.Actor
	head      policy.Actor
	classroom classroommodel.ClassroomModel
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))

	lecturer := usermodel.UserModel{
		UserEmail:    "lecturer@example.com",
		UserPassword: "x",
		UserFullName: "Lecturer One",
		UserRole:     constants.RoleLecturer,
		UserActive:   true,
	}
	require.NoError(t, db.Create(&lecturer).Error)

	head := usermodel.UserModel{
		UserEmail:    "head@example.com",
		UserPassword: "x",
		UserFullName: "Head of Department",
		UserRole:     constants.RoleHeadDepartment,
		UserActive:   true,
	}
	require.NoError(t, db.Create(&head).Error)

	classroom := classroommodel.ClassroomModel{
		ClassroomName:       "Networks",
		ClassroomCode:       "NET-01",
		ClassroomLecturerID: lecturer.UserID,
	}
	require.NoError(t, db.Create(&classroom).Error)

	return fixture{
		db:        db,
		lecturer:  policy.Actor{ID: lecturer.UserID, Role: constants.RoleLecturer},
		head:      policy.Actor{ID: head.UserID, Role: constants.RoleHeadDepartment},
		classroom: classroom,
	}
}

func kindOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Kind
}

func TestProjectLifecycleHappyPath(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	project, err := svc.Create(ctx, fx.lecturer, fx.classroom.ClassroomID, "Router lab", "", time.Now().Add(14*24*time.Hour))
	require.NoError(t, err)
	assert.Equal(t, model.StatusDraft, project.ProjectStatus)

	project, err = svc.Submit(ctx, fx.lecturer, project.ProjectID)
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, project.ProjectStatus)

	project, err = svc.Decide(ctx, fx.head, project.ProjectID, true)
	require.NoError(t, err)
	assert.Equal(t, model.StatusApproved, project.ProjectStatus)
}

func TestProjectRejectFromPending(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	project, err := svc.Create(ctx, fx.lecturer, fx.classroom.ClassroomID, "Router lab", "", time.Now().Add(14*24*time.Hour))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, fx.lecturer, project.ProjectID)
	require.NoError(t, err)

	project, err = svc.Decide(ctx, fx.head, project.ProjectID, false)
	require.NoError(t, err)
	assert.Equal(t, model.StatusRejected, project.ProjectStatus)
}

func TestApproveRequiresPending(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	project, err := svc.Create(ctx, fx.lecturer, fx.classroom.ClassroomID, "Router lab", "", time.Now().Add(14*24*time.Hour))
	require.NoError(t, err)

	_, err = svc.Decide(ctx, fx.head, project.ProjectID, true)
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
}

func TestSubmitTwiceRejected(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	project, err := svc.Create(ctx, fx.lecturer, fx.classroom.ClassroomID, "Router lab", "", time.Now().Add(14*24*time.Hour))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, fx.lecturer, project.ProjectID)
	require.NoError(t, err)

	_, err = svc.Submit(ctx, fx.lecturer, project.ProjectID)
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
}

func TestDecideForbiddenForLecturer(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	project, err := svc.Create(ctx, fx.lecturer, fx.classroom.ClassroomID, "Router lab", "", time.Now().Add(14*24*time.Hour))
	require.NoError(t, err)
	_, err = svc.Submit(ctx, fx.lecturer, project.ProjectID)
	require.NoError(t, err)

	_, err = svc.Decide(ctx, fx.lecturer, project.ProjectID, true)
	require.Error(t, err)
	assert.Equal(t, helper.KindForbidden, kindOf(t, err))
}

func TestCreateRejectsPastDeadline(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	_, err := svc.Create(context.Background(), fx.lecturer, fx.classroom.ClassroomID, "Late", "", time.Now().Add(-time.Hour))
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
}

func TestMilestoneDueDateBoundedByDeadline(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	deadline := time.Now().Add(10 * 24 * time.Hour)
	project, err := svc.Create(ctx, fx.lecturer, fx.classroom.ClassroomID, "Router lab", "", deadline)
	require.NoError(t, err)

	_, err = svc.CreateMilestone(ctx, fx.lecturer, project.ProjectID, "Late milestone", deadline.Add(24*time.Hour))
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))

	milestone, err := svc.CreateMilestone(ctx, fx.lecturer, project.ProjectID, "Design review", deadline.Add(-24*time.Hour))
	require.NoError(t, err)

	milestones, err := svc.ListMilestones(ctx, project.ProjectID)
	require.NoError(t, err)
	require.Len(t, milestones, 1)
	assert.Equal(t, milestone.MilestoneID, milestones[0].MilestoneID)
}

func TestListActiveExcludesPastDeadline(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	ctx := context.Background()

	active, err := svc.Create(ctx, fx.lecturer, fx.classroom.ClassroomID, "Active", "", time.Now().Add(24*time.Hour))
	require.NoError(t, err)

	// expired project seeded directly, Create refuses past deadlines
	expired := model.ProjectModel{
		ProjectTitle:       "Expired",
		ProjectClassroomID: fx.classroom.ClassroomID,
		ProjectStatus:      model.StatusApproved,
		ProjectDeadline:    time.Now().Add(-24 * time.Hour),
	}
	require.NoError(t, fx.db.Create(&expired).Error)

	list, err := svc.ListActive(ctx, fx.classroom.ClassroomID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, active.ProjectID, list[0].ProjectID)
}
