package service

import (
	"context"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	projectservice "collabsphere_backend/internals/features/projects/service"
	"collabsphere_backend/internals/features/rubrics/model"
	teamservice "collabsphere_backend/internals/features/teams/service"
	helper "collabsphere_backend/internals/helpers"
	"collabsphere_backend/internals/policy"
)

type Service struct {
	db       *gorm.DB
	teams    *teamservice.Service
	projects *projectservice.Service
}

func NewService(db *gorm.DB) *Service {
	return &Service{
		db:       db,
		teams:    teamservice.NewService(db),
		projects: projectservice.NewService(db),
	}
}

// GradeResult is the outcome of grading a team against a rubric.
type GradeResult struct {
	TeamID     uuid.UUID
	RubricID   uuid.UUID
	TotalScore float64
	WeightSum  float64
	GradedBy   uuid.UUID
	GradedAt   time.Time
}

// CriteriaScore pairs a criteria with a raw score.
type CriteriaScore struct {
	CriteriaID uuid.UUID
	Score      float64
}

func (s *Service) CreateRubric(ctx context.Context, actor policy.Actor, projectID uuid.UUID, title, description string) (model.RubricModel, error) {
	if err := s.requireOwnershipByProject(ctx, actor, projectID); err != nil {
		return model.RubricModel{}, err
	}
	rubric := model.RubricModel{
		RubricTitle:       title,
		RubricDescription: description,
		RubricProjectID:   projectID,
	}
	if err := s.db.WithContext(ctx).Create(&rubric).Error; err != nil {
		return model.RubricModel{}, err
	}
	return rubric, nil
}

func (s *Service) GetRubric(ctx context.Context, id uuid.UUID) (model.RubricModel, error) {
	var rubric model.RubricModel
	if err := s.db.WithContext(ctx).First(&rubric, "rubric_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return model.RubricModel{}, helper.NotFound("Rubric not found")
		}
		return model.RubricModel{}, err
	}
	return rubric, nil
}

func (s *Service) ListByProject(ctx context.Context, projectID uuid.UUID) ([]model.RubricModel, error) {
	if _, err := s.projects.GetByID(ctx, projectID); err != nil {
		return nil, err
	}
	var rubrics []model.RubricModel
	err := s.db.WithContext(ctx).
		Where("rubric_project_id = ?", projectID).
		Order("rubric_created_at").
		Find(&rubrics).Error
	return rubrics, err
}

// AddCriteria appends a weighted criteria to a rubric. Weight must lie in
// [0,1] and max score must be positive.
func (s *Service) AddCriteria(ctx context.Context, actor policy.Actor, rubricID uuid.UUID, name string, weight, maxScore float64) (model.RubricCriteriaModel, error) {
	rubric, err := s.GetRubric(ctx, rubricID)
	if err != nil {
		return model.RubricCriteriaModel{}, err
	}
	if err := s.requireOwnershipByProject(ctx, actor, rubric.RubricProjectID); err != nil {
		return model.RubricCriteriaModel{}, err
	}
	if weight < 0 || weight > 1 {
		return model.RubricCriteriaModel{}, helper.Validation("Criteria weight must be between 0 and 1")
	}
	if maxScore <= 0 {
		return model.RubricCriteriaModel{}, helper.Validation("Criteria max score must be positive")
	}

	criteria := model.RubricCriteriaModel{
		CriteriaRubricID: rubricID,
		CriteriaName:     name,
		CriteriaWeight:   weight,
		CriteriaMaxScore: maxScore,
	}
	if err := s.db.WithContext(ctx).Create(&criteria).Error; err != nil {
		return model.RubricCriteriaModel{}, err
	}
	return criteria, nil
}

func (s *Service) ListCriteria(ctx context.Context, rubricID uuid.UUID) ([]model.RubricCriteriaModel, error) {
	if _, err := s.GetRubric(ctx, rubricID); err != nil {
		return nil, err
	}
	var criterias []model.RubricCriteriaModel
	err := s.db.WithContext(ctx).
		Where("criteria_rubric_id = ?", rubricID).
		Order("criteria_created_at").
		Find(&criterias).Error
	return criterias, err
}

func (s *Service) ListTeamScores(ctx context.Context, actor policy.Actor, teamID uuid.UUID) ([]model.RubricScoreModel, error) {
	ok, err := s.teams.CanAccess(ctx, actor, teamID)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, helper.Forbidden("You are not a member of this team")
	}
	var scores []model.RubricScoreModel
	err = s.db.WithContext(ctx).
		Where("score_team_id = ?", teamID).
		Order("score_created_at").
		Find(&scores).Error
	return scores, err
}

// GradeTeam validates every score against the rubric, then upserts all of
// them and returns the weighted total. Nothing is persisted when any score
// fails validation.
func (s *Service) GradeTeam(ctx context.Context, actor policy.Actor, rubricID, teamID uuid.UUID, scores []CriteriaScore) (GradeResult, error) {
	rubric, err := s.GetRubric(ctx, rubricID)
	if err != nil {
		return GradeResult{}, err
	}
	if err := s.requireOwnershipByProject(ctx, actor, rubric.RubricProjectID); err != nil {
		return GradeResult{}, err
	}
	team, err := s.teams.GetByID(ctx, teamID)
	if err != nil {
		return GradeResult{}, err
	}
	if team.TeamProjectID != rubric.RubricProjectID {
		return GradeResult{}, helper.Validation("Team does not belong to the rubric's project")
	}
	if len(scores) == 0 {
		return GradeResult{}, helper.Validation("At least one score is required")
	}

	criterias, err := s.ListCriteria(ctx, rubricID)
	if err != nil {
		return GradeResult{}, err
	}
	byID := make(map[uuid.UUID]model.RubricCriteriaModel, len(criterias))
	for _, cr := range criterias {
		byID[cr.CriteriaID] = cr
	}

	// Validate everything before touching the database.
	for _, in := range scores {
		cr, ok := byID[in.CriteriaID]
		if !ok {
			return GradeResult{}, helper.Validation("Criteria does not belong to this rubric: " + in.CriteriaID.String())
		}
		if in.Score < 0 || in.Score > cr.CriteriaMaxScore {
			return GradeResult{}, helper.Validation(fmt.Sprintf(
				"Score for %s must be between 0 and %g", cr.CriteriaName, cr.CriteriaMaxScore))
		}
	}

	now := time.Now()
	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, in := range scores {
			row := model.RubricScoreModel{
				ScoreTeamID:     teamID,
				ScoreCriteriaID: in.CriteriaID,
				ScoreValue:      in.Score,
				ScoreGradedBy:   actor.ID,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "score_team_id"}, {Name: "score_criteria_id"}},
				DoUpdates: clause.Assignments(map[string]interface{}{
					"score_value":      in.Score,
					"score_graded_by":  actor.ID,
					"score_updated_at": now,
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return GradeResult{}, err
	}

	total, weightSum := weightedTotal(byID, scores)
	return GradeResult{
		TeamID:     teamID,
		RubricID:   rubricID,
		TotalScore: total,
		WeightSum:  weightSum,
		GradedBy:   actor.ID,
		GradedAt:   now,
	}, nil
}

// CalculateTeamTotalScore recomputes the weighted total from persisted score
// rows. Criteria without a score contribute nothing, including their weight.
func (s *Service) CalculateTeamTotalScore(ctx context.Context, actor policy.Actor, teamID, rubricID uuid.UUID) (GradeResult, error) {
	ok, err := s.teams.CanAccess(ctx, actor, teamID)
	if err != nil {
		return GradeResult{}, err
	}
	if !ok {
		return GradeResult{}, helper.Forbidden("You are not a member of this team")
	}
	criterias, err := s.ListCriteria(ctx, rubricID)
	if err != nil {
		return GradeResult{}, err
	}
	byID := make(map[uuid.UUID]model.RubricCriteriaModel, len(criterias))
	ids := make([]uuid.UUID, 0, len(criterias))
	for _, cr := range criterias {
		byID[cr.CriteriaID] = cr
		ids = append(ids, cr.CriteriaID)
	}

	var rows []model.RubricScoreModel
	if len(ids) > 0 {
		if err := s.db.WithContext(ctx).
			Where("score_team_id = ? AND score_criteria_id IN ?", teamID, ids).
			Find(&rows).Error; err != nil {
			return GradeResult{}, err
		}
	}

	scores := make([]CriteriaScore, 0, len(rows))
	var gradedBy uuid.UUID
	var gradedAt time.Time
	for _, row := range rows {
		scores = append(scores, CriteriaScore{CriteriaID: row.ScoreCriteriaID, Score: row.ScoreValue})
		if row.ScoreUpdatedAt.After(gradedAt) {
			gradedAt = row.ScoreUpdatedAt
			gradedBy = row.ScoreGradedBy
		}
	}

	total, weightSum := weightedTotal(byID, scores)
	return GradeResult{
		TeamID:     teamID,
		RubricID:   rubricID,
		TotalScore: total,
		WeightSum:  weightSum,
		GradedBy:   gradedBy,
		GradedAt:   gradedAt,
	}, nil
}

// weightedTotal computes (Σ weight·score/max ÷ Σ weight)·10 rounded half-up
// to two decimals, or 0 when the weight sum is zero.
func weightedTotal(criterias map[uuid.UUID]model.RubricCriteriaModel, scores []CriteriaScore) (float64, float64) {
	var weighted, weightSum float64
	for _, in := range scores {
		cr, ok := criterias[in.CriteriaID]
		if !ok {
			continue
		}
		weighted += cr.CriteriaWeight * (in.Score / cr.CriteriaMaxScore)
		weightSum += cr.CriteriaWeight
	}
	if weightSum == 0 {
		return 0, 0
	}
	total := (weighted / weightSum) * 10
	return math.Floor(total*100+0.5) / 100, weightSum
}

func (s *Service) requireOwnershipByProject(ctx context.Context, actor policy.Actor, projectID uuid.UUID) error {
	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return err
	}
	ownerID, err := s.projects.OwnerLecturerID(ctx, project)
	if err != nil {
		return err
	}
	if !actor.CanManage(ownerID) {
		return helper.Forbidden("Only the classroom lecturer can manage rubrics")
	}
	return nil
}
