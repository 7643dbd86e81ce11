package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/rubrics/dto"
	"collabsphere_backend/internals/features/rubrics/service"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

type RubricController struct {
	Service *service.Service
}

func NewRubricController(db *gorm.DB) *RubricController {
	return &RubricController{Service: service.NewService(db)}
}

var validate = validator.New()

// POST /api/rubrics
func (ctl *RubricController) Create(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateRubricRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	rubric, err := ctl.Service.CreateRubric(c.UserContext(), actor, req.ProjectID, req.Title, req.Description)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Rubric created successfully", dto.ToRubricResponse(rubric))
}

// POST /api/rubrics/:id/criteria
func (ctl *RubricController) AddCriteria(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rubricID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid rubric id")
	}
	var req dto.AddCriteriaRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	criteria, err := ctl.Service.AddCriteria(c.UserContext(), actor, rubricID, req.Name, req.Weight, req.MaxScore)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Criteria added successfully", dto.ToCriteriaResponse(criteria))
}

// GET /api/rubrics/:id/criteria
func (ctl *RubricController) ListCriteria(c *fiber.Ctx) error {
	rubricID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid rubric id")
	}
	criterias, err := ctl.Service.ListCriteria(c.UserContext(), rubricID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Criteria retrieved successfully", dto.ToCriteriaResponses(criterias))
}

// GET /api/projects/:id/rubrics
func (ctl *RubricController) ListByProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid project id")
	}
	rubrics, err := ctl.Service.ListByProject(c.UserContext(), projectID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Rubrics retrieved successfully", dto.ToRubricResponses(rubrics))
}

// POST /api/rubrics/:id/grade
func (ctl *RubricController) GradeTeam(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	rubricID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid rubric id")
	}
	var req dto.GradeTeamRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	scores := make([]service.CriteriaScore, 0, len(req.Scores))
	for _, in := range req.Scores {
		scores = append(scores, service.CriteriaScore{CriteriaID: in.CriteriaID, Score: in.Score})
	}
	result, err := ctl.Service.GradeTeam(c.UserContext(), actor, rubricID, req.TeamID, scores)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Team graded successfully", toGradeResult(result))
}

// GET /api/teams/:id/scores
func (ctl *RubricController) ListTeamScores(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	scores, err := ctl.Service.ListTeamScores(c.UserContext(), actor, teamID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Scores retrieved successfully", dto.ToScoreResponses(scores))
}

// GET /api/teams/:id/total-score?rubric_id=...
func (ctl *RubricController) TeamTotalScore(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	rubricID, err := uuid.Parse(c.Query("rubric_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid rubric id")
	}
	result, err := ctl.Service.CalculateTeamTotalScore(c.UserContext(), actor, teamID, rubricID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Total score calculated successfully", toGradeResult(result))
}

func toGradeResult(r service.GradeResult) dto.GradeResultResponse {
	return dto.GradeResultResponse{
		TeamID:     r.TeamID,
		RubricID:   r.RubricID,
		TotalScore: r.TotalScore,
		WeightSum:  r.WeightSum,
		GradedBy:   r.GradedBy,
		GradedAt:   r.GradedAt,
	}
}
