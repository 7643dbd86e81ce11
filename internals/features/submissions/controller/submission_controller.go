package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/submissions/dto"
	"collabsphere_backend/internals/features/submissions/service"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

type SubmissionController struct {
	Service *service.Service
}

func NewSubmissionController(db *gorm.DB) *SubmissionController {
	return &SubmissionController{Service: service.NewService(db)}
}

var validate = validator.New()

// POST /api/submissions
func (ctl *SubmissionController) Create(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sub, err := ctl.Service.Create(c.UserContext(), actor, req.MilestoneID, req.TeamID, req.FileURL, req.Notes)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Submission created successfully", dto.ToSubmissionResponse(sub))
}

// PUT /api/submissions/:id/grade
func (ctl *SubmissionController) Grade(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid submission id")
	}
	var req dto.GradeSubmissionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	sub, err := ctl.Service.Grade(c.UserContext(), actor, id, req.Grade, req.Feedback)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Submission graded successfully", dto.ToSubmissionResponse(sub))
}

// GET /api/milestones/:id/submissions
func (ctl *SubmissionController) ListByMilestone(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	milestoneID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid milestone id")
	}
	subs, err := ctl.Service.ListByMilestone(c.UserContext(), actor, milestoneID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Submissions retrieved successfully", dto.ToSubmissionResponses(subs))
}

// GET /api/teams/:id/submissions
func (ctl *SubmissionController) ListByTeam(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	subs, err := ctl.Service.ListByTeam(c.UserContext(), actor, teamID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Submissions retrieved successfully", dto.ToSubmissionResponses(subs))
}

// GET /api/milestones/:id/submissions/team/:team_id
func (ctl *SubmissionController) GetByMilestoneAndTeam(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	milestoneID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid milestone id")
	}
	teamID, err := uuid.Parse(c.Params("team_id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	sub, err := ctl.Service.GetByMilestoneAndTeam(c.UserContext(), actor, milestoneID, teamID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Submission retrieved successfully", dto.ToSubmissionResponse(sub))
}

// GET /api/submissions/ungraded
func (ctl *SubmissionController) ListUngraded(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	subs, err := ctl.Service.ListUngraded(c.UserContext(), actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Submissions retrieved successfully", dto.ToSubmissionResponses(subs))
}
