package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"testing"

	"github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	database "collabsphere_backend/internals/databases"
	classroommodel "collabsphere_backend/internals/features/classrooms/model"
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

func buildSheet(t *testing.T, rows [][]string) io.Reader {
	t.Helper()
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	for i, row := range rows {
		for j, cell := range row {
			name, err := excelize.CoordinatesToCellName(j+1, i+1)
			require.NoError(t, err)
			require.NoError(t, f.SetCellValue(sheet, name, cell))
		}
	}
	var buf bytes.Buffer
	require.NoError(t, f.Write(&buf))
	return &buf
}

func staffActor() policy.Actor {
	return policy.Actor{ID: uuid.New(), Role: constants.RoleStaff}
}

func TestImportUsers(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	existing := usermodel.UserModel{
		UserEmail: "taken@example.com", UserPassword: "x",
		UserFullName: "Taken", UserRole: constants.RoleStudent, UserActive: true,
	}
	require.NoError(t, db.Create(&existing).Error)

	sheet := buildSheet(t, [][]string{
		{"email", "full name", "role", "password"},
		{"new@example.com", "New Student", "STUDENT", ""},
		{"lect@example.com", "New Lecturer", "LECTURER", "s3cret"},
		{"taken@example.com", "Dup", "STUDENT", ""},
		{"badrole@example.com", "Bad Role", "WIZARD", ""},
		{"", "No Email", "STUDENT", ""},
	})

	report, err := svc.ImportUsers(context.Background(), staffActor(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 2, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, report.Errors, 2)

	var created usermodel.UserModel
	require.NoError(t, db.First(&created, "user_email = ?", "new@example.com").Error)
	assert.Equal(t, constants.RoleStudent, created.UserRole)
	assert.True(t, created.UserActive)
	assert.NotEmpty(t, created.UserPassword)
}

func TestImportUsersForbiddenForStudents(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	sheet := buildSheet(t, [][]string{
		{"email", "full name", "role"},
		{"new@example.com", "New Student", "STUDENT"},
	})

	actor := policy.Actor{ID: uuid.New(), Role: constants.RoleStudent}
	_, err := svc.ImportUsers(context.Background(), actor, sheet)
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindForbidden, appErr.Kind)
}

func TestImportUsersRejectsGarbageFile(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	_, err := svc.ImportUsers(context.Background(), staffActor(), bytes.NewBufferString("not an xlsx"))
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindValidation, appErr.Kind)
}

func TestImportClassrooms(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	lecturer := usermodel.UserModel{
		UserEmail: "lecturer@example.com", UserPassword: "x",
		UserFullName: "Lecturer", UserRole: constants.RoleLecturer, UserActive: true,
	}
	require.NoError(t, db.Create(&lecturer).Error)
	student := usermodel.UserModel{
		UserEmail: "student@example.com", UserPassword: "x",
		UserFullName: "Student", UserRole: constants.RoleStudent, UserActive: true,
	}
	require.NoError(t, db.Create(&student).Error)
	taken := classroommodel.ClassroomModel{
		ClassroomName: "Taken", ClassroomCode: "TAKEN-01", ClassroomLecturerID: lecturer.UserID,
	}
	require.NoError(t, db.Create(&taken).Error)

	sheet := buildSheet(t, [][]string{
		{"name", "code", "lecturer email"},
		{"Algorithms", "ALG-01", "lecturer@example.com"},
		{"Dup", "TAKEN-01", "lecturer@example.com"},
		{"Ghost", "GH-01", "ghost@example.com"},
		{"Wrong role", "WR-01", "student@example.com"},
	})

	report, err := svc.ImportClassrooms(context.Background(), staffActor(), sheet)
	require.NoError(t, err)
	assert.Equal(t, 1, report.Created)
	assert.Equal(t, 1, report.Skipped)
	assert.Len(t, report.Errors, 2)

	var created classroommodel.ClassroomModel
	require.NoError(t, db.First(&created, "classroom_code = ?", "ALG-01").Error)
	assert.Equal(t, lecturer.UserID, created.ClassroomLecturerID)

	assert.Contains(t, report.Report(), "created: 1")
}
