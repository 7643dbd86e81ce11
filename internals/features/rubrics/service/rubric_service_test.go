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
	"collabsphere_backend/internals/features/rubrics/model"
	teammodel "collabsphere_backend/internals/features/teams/model"
	usermodel "collabsphere_backend/internals/features/users/model"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type fixture struct {
	db       *gorm.DB
	lecturer policy.Actor
	project  projectmodel.ProjectModel
	team     teammodel.TeamModel
	rubric   model.RubricModel
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

	classroom := classroommodel.ClassroomModel{
		ClassroomName:       "Databases",
		ClassroomCode:       "DB-01",
		ClassroomLecturerID: lecturer.UserID,
	}
	require.NoError(t, db.Create(&classroom).Error)

	project := projectmodel.ProjectModel{
		ProjectTitle:       "Warehouse",
		ProjectClassroomID: classroom.ClassroomID,
		ProjectStatus:      projectmodel.StatusApproved,
		ProjectDeadline:    time.Now().Add(30 * 24 * time.Hour),
	}
	require.NoError(t, db.Create(&project).Error)

	team := teammodel.TeamModel{TeamName: "Team 1", TeamProjectID: project.ProjectID}
	require.NoError(t, db.Create(&team).Error)

	rubric := model.RubricModel{
		RubricTitle:     "Final rubric",
		RubricProjectID: project.ProjectID,
	}
	require.NoError(t, db.Create(&rubric).Error)

	return fixture{
		db:       db,
		lecturer: policy.Actor{ID: lecturer.UserID, Role: constants.RoleLecturer},
		project:  project,
		team:     team,
		rubric:   rubric,
	}
}

func (fx fixture) addCriteria(t *testing.T, svc *Service, name string, weight, maxScore float64) model.RubricCriteriaModel {
	t.Helper()
	cr, err := svc.AddCriteria(context.Background(), fx.lecturer, fx.rubric.RubricID, name, weight, maxScore)
	require.NoError(t, err)
	return cr
}

func TestGradeTeamWeightedTotal(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	// (0.5*(50/100) + 0.5*(100/100)) / 1 * 10 = 7.50
	c1 := fx.addCriteria(t, svc, "Code quality", 0.5, 100)
	c2 := fx.addCriteria(t, svc, "Presentation", 0.5, 100)

	result, err := svc.GradeTeam(context.Background(), fx.lecturer, fx.rubric.RubricID, fx.team.TeamID, []CriteriaScore{
		{CriteriaID: c1.CriteriaID, Score: 50},
		{CriteriaID: c2.CriteriaID, Score: 100},
	})
	require.NoError(t, err)
	assert.InDelta(t, 7.50, result.TotalScore, 1e-9)
	assert.InDelta(t, 1.0, result.WeightSum, 1e-9)
	assert.Equal(t, fx.lecturer.ID, result.GradedBy)
}

func TestGradeTeamPerfectScoresGiveTen(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	c1 := fx.addCriteria(t, svc, "Design", 0.3, 40)
	c2 := fx.addCriteria(t, svc, "Implementation", 0.6, 100)

	result, err := svc.GradeTeam(context.Background(), fx.lecturer, fx.rubric.RubricID, fx.team.TeamID, []CriteriaScore{
		{CriteriaID: c1.CriteriaID, Score: 40},
		{CriteriaID: c2.CriteriaID, Score: 100},
	})
	require.NoError(t, err)
	assert.InDelta(t, 10.00, result.TotalScore, 1e-9)
	assert.InDelta(t, 0.9, result.WeightSum, 1e-9)
}

func TestGradeTeamRejectsOutOfRangeBeforePersisting(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	c1 := fx.addCriteria(t, svc, "Design", 0.5, 40)
	c2 := fx.addCriteria(t, svc, "Testing", 0.5, 40)

	_, err := svc.GradeTeam(context.Background(), fx.lecturer, fx.rubric.RubricID, fx.team.TeamID, []CriteriaScore{
		{CriteriaID: c1.CriteriaID, Score: 30},
		{CriteriaID: c2.CriteriaID, Score: 41}, // above max
	})
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindValidation, appErr.Kind)

	// the valid first score must not have been written either
	var count int64
	require.NoError(t, fx.db.Model(&model.RubricScoreModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestGradeTeamRejectsForeignCriteria(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	fx.addCriteria(t, svc, "Design", 0.5, 40)

	other := model.RubricModel{RubricTitle: "Other", RubricProjectID: fx.project.ProjectID}
	require.NoError(t, fx.db.Create(&other).Error)
	foreign, err := svc.AddCriteria(context.Background(), fx.lecturer, other.RubricID, "Foreign", 0.5, 10)
	require.NoError(t, err)

	_, err = svc.GradeTeam(context.Background(), fx.lecturer, fx.rubric.RubricID, fx.team.TeamID, []CriteriaScore{
		{CriteriaID: foreign.CriteriaID, Score: 5},
	})
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindValidation, appErr.Kind)
}

func TestGradeTeamRegradeOverwrites(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	cr := fx.addCriteria(t, svc, "Design", 1.0, 100)

	_, err := svc.GradeTeam(context.Background(), fx.lecturer, fx.rubric.RubricID, fx.team.TeamID, []CriteriaScore{
		{CriteriaID: cr.CriteriaID, Score: 40},
	})
	require.NoError(t, err)

	result, err := svc.GradeTeam(context.Background(), fx.lecturer, fx.rubric.RubricID, fx.team.TeamID, []CriteriaScore{
		{CriteriaID: cr.CriteriaID, Score: 90},
	})
	require.NoError(t, err)
	assert.InDelta(t, 9.00, result.TotalScore, 1e-9)

	// still one row per (team, criteria)
	var rows []model.RubricScoreModel
	require.NoError(t, fx.db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.InDelta(t, 90, rows[0].ScoreValue, 1e-9)
}

func TestCalculateTeamTotalScoreFromPersistedRows(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	c1 := fx.addCriteria(t, svc, "Design", 0.6, 100)
	c2 := fx.addCriteria(t, svc, "Testing", 0.4, 50)

	_, err := svc.GradeTeam(context.Background(), fx.lecturer, fx.rubric.RubricID, fx.team.TeamID, []CriteriaScore{
		{CriteriaID: c1.CriteriaID, Score: 80},
		{CriteriaID: c2.CriteriaID, Score: 30},
	})
	require.NoError(t, err)

	// (0.6*0.8 + 0.4*0.6) / 1.0 * 10 = 7.20
	result, err := svc.CalculateTeamTotalScore(context.Background(), fx.lecturer, fx.team.TeamID, fx.rubric.RubricID)
	require.NoError(t, err)
	assert.InDelta(t, 7.20, result.TotalScore, 1e-9)
	assert.InDelta(t, 1.0, result.WeightSum, 1e-9)
}

func TestCalculateTeamTotalScoreNoScoresIsZero(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	fx.addCriteria(t, svc, "Design", 0.6, 100)

	result, err := svc.CalculateTeamTotalScore(context.Background(), fx.lecturer, fx.team.TeamID, fx.rubric.RubricID)
	require.NoError(t, err)
	assert.Zero(t, result.TotalScore)
	assert.Zero(t, result.WeightSum)
}

func TestAddCriteriaValidatesWeightAndMax(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)

	_, err := svc.AddCriteria(context.Background(), fx.lecturer, fx.rubric.RubricID, "Bad", 1.5, 10)
	require.Error(t, err)
	_, err = svc.AddCriteria(context.Background(), fx.lecturer, fx.rubric.RubricID, "Bad", 0.5, 0)
	require.Error(t, err)
}

func TestGradeTeamForbiddenForOtherLecturer(t *testing.T) {
	fx := newFixture(t)
	svc := NewService(fx.db)
	cr := fx.addCriteria(t, svc, "Design", 1.0, 100)

	other := policy.Actor{ID: uuid.New(), Role: constants.RoleLecturer}
	_, err := svc.GradeTeam(context.Background(), other, fx.rubric.RubricID, fx.team.TeamID, []CriteriaScore{
		{CriteriaID: cr.CriteriaID, Score: 50},
	})
	require.Error(t, err)
	var appErr *helper.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, helper.KindForbidden, appErr.Kind)
}
