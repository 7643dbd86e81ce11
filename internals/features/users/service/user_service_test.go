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

func TestRegisterNormalizesEmailAndHashesPassword(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	user, err := svc.Register(context.Background(), "Alice@Example.COM", "secret123", "Alice", constants.RoleStudent)
	require.NoError(t, err)
	assert.Equal(t, "alice@example.com", user.UserEmail)
	assert.NotEqual(t, "secret123", user.UserPassword)
	assert.True(t, user.UserActive)
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	_, err := svc.Register(ctx, "alice@example.com", "secret123", "Alice", constants.RoleStudent)
	require.NoError(t, err)

	_, err = svc.Register(ctx, "ALICE@example.com", "other", "Alice Two", constants.RoleStudent)
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindConflict, appErr.Kind)
}

func TestRegisterRejectsUnknownRole(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)

	_, err := svc.Register(context.Background(), "bob@example.com", "secret123", "Bob", "SUPERVISOR")
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindValidation, appErr.Kind)
}

func TestAuthenticate(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	registered, err := svc.Register(ctx, "alice@example.com", "secret123", "Alice", constants.RoleStudent)
	require.NoError(t, err)

	user, err := svc.Authenticate(ctx, "alice@example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.UserID, user.UserID)

	_, err = svc.Authenticate(ctx, "alice@example.com", "wrong")
	require.Error(t, err)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "secret123")
	require.Error(t, err)
}

func TestSetActiveAdminOnly(t *testing.T) {
	db := openTestDB(t)
	svc := NewService(db)
	ctx := context.Background()

	user, err := svc.Register(ctx, "alice@example.com", "secret123", "Alice", constants.RoleStudent)
	require.NoError(t, err)
	admin, err := svc.Register(ctx, "admin@example.com", "secret123", "Admin", constants.RoleAdmin)
	require.NoError(t, err)

	_, err = svc.SetActive(ctx, policy.Actor{ID: user.UserID, Role: constants.RoleStudent}, user.UserID, false)
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindForbidden, appErr.Kind)

	updated, err := svc.SetActive(ctx, policy.Actor{ID: admin.UserID, Role: constants.RoleAdmin}, user.UserID, false)
	require.NoError(t, err)
	assert.False(t, updated.UserActive)
}
