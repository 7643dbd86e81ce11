package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	database "collabsphere_backend/internals/databases"
	usermodel "collabsphere_backend/internals/features/users/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, email, role string) usermodel.UserModel {
	t.Helper()
	user := usermodel.UserModel{
		UserEmail:    email,
		UserPassword: "x",
		UserFullName: email,
		UserRole:     role,
		UserActive:   true,
	}
	require.NoError(t, db.Create(&user).Error)
	return user
}

func kindOf(t *testing.T, err error) string {
	t.Helper()
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	return appErr.Kind
}

func TestCreateClassroomDuplicateCode(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	lecturer := seedUser(t, db, "lecturer@example.com", constants.RoleLecturer)
	actor := policy.Actor{ID: lecturer.UserID, Role: constants.RoleLecturer}

	_, err := svc.Create(context.Background(), actor, "Algorithms", "ALG-01")
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), actor, "Algorithms again", "ALG-01")
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))
}

func TestCreateClassroomForbiddenForStudents(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	student := seedUser(t, db, "student@example.com", constants.RoleStudent)
	actor := policy.Actor{ID: student.UserID, Role: constants.RoleStudent}

	_, err := svc.Create(context.Background(), actor, "Algorithms", "ALG-01")
	require.Error(t, err)
	assert.Equal(t, helper.KindForbidden, kindOf(t, err))
}

func TestAddStudentRoster(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	lecturer := seedUser(t, db, "lecturer@example.com", constants.RoleLecturer)
	actor := policy.Actor{ID: lecturer.UserID, Role: constants.RoleLecturer}
	classroom, err := svc.Create(ctx, actor, "Algorithms", "ALG-01")
	require.NoError(t, err)

	student := seedUser(t, db, "student@example.com", constants.RoleStudent)

	added, err := svc.AddStudent(ctx, actor, classroom.ClassroomID, "student@example.com")
	require.NoError(t, err)
	assert.Equal(t, student.UserID, added.UserID)

	// already enrolled
	_, err = svc.AddStudent(ctx, actor, classroom.ClassroomID, "student@example.com")
	require.Error(t, err)
	assert.Equal(t, helper.KindConflict, kindOf(t, err))

	// unknown email
	_, err = svc.AddStudent(ctx, actor, classroom.ClassroomID, "ghost@example.com")
	require.Error(t, err)
	assert.Equal(t, helper.KindNotFound, kindOf(t, err))

	roster, err := svc.Roster(ctx, classroom.ClassroomID)
	require.NoError(t, err)
	require.Len(t, roster, 1)
	assert.Equal(t, student.UserID, roster[0].UserID)
}

func TestAddStudentRejectsNonStudents(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	lecturer := seedUser(t, db, "lecturer@example.com", constants.RoleLecturer)
	actor := policy.Actor{ID: lecturer.UserID, Role: constants.RoleLecturer}
	classroom, err := svc.Create(ctx, actor, "Algorithms", "ALG-01")
	require.NoError(t, err)

	seedUser(t, db, "colleague@example.com", constants.RoleLecturer)

	_, err = svc.AddStudent(ctx, actor, classroom.ClassroomID, "colleague@example.com")
	require.Error(t, err)
	assert.Equal(t, helper.KindValidation, kindOf(t, err))
}

func TestAddStudentOnlyOwnClassroom(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	owner := seedUser(t, db, "owner@example.com", constants.RoleLecturer)
	ownerActor := policy.Actor{ID: owner.UserID, Role: constants.RoleLecturer}
	classroom, err := svc.Create(ctx, ownerActor, "Algorithms", "ALG-01")
	require.NoError(t, err)

	other := seedUser(t, db, "other@example.com", constants.RoleLecturer)
	seedUser(t, db, "student@example.com", constants.RoleStudent)

	otherActor := policy.Actor{ID: other.UserID, Role: constants.RoleLecturer}
	_, err = svc.AddStudent(ctx, otherActor, classroom.ClassroomID, "student@example.com")
	require.Error(t, err)
	assert.Equal(t, helper.KindForbidden, kindOf(t, err))
}

func TestListByStudent(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	lecturer := seedUser(t, db, "lecturer@example.com", constants.RoleLecturer)
	actor := policy.Actor{ID: lecturer.UserID, Role: constants.RoleLecturer}
	c1, err := svc.Create(ctx, actor, "Algorithms", "ALG-01")
	require.NoError(t, err)
	_, err = svc.Create(ctx, actor, "Networks", "NET-01")
	require.NoError(t, err)

	student := seedUser(t, db, "student@example.com", constants.RoleStudent)
	_, err = svc.AddStudent(ctx, actor, c1.ClassroomID, "student@example.com")
	require.NoError(t, err)

	list, err := svc.ListByStudent(ctx, student.UserID)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, c1.ClassroomID, list[0].ClassroomID)
}
