package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/teams/dto"
	"collabsphere_backend/internals/features/teams/service"
	userdto "collabsphere_backend/internals/features/users/dto"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

type TeamController struct {
	Service *service.Service
}

func NewTeamController(db *gorm.DB) *TeamController {
	return &TeamController{Service: service.NewService(db)}
}

var validate = validator.New()

// POST /api/teams/auto-generate
func (ctl *TeamController) AutoGenerate(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.AutoGenerateTeamsRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	teams, err := ctl.Service.AutoGenerate(c.UserContext(), actor, req.ProjectID, req.GroupSize)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Teams generated successfully", dto.ToTeamResponses(teams))
}

// GET /api/teams/:id
func (ctl *TeamController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	team, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	members, err := ctl.Service.Members(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	resp := dto.ToTeamResponse(team)
	resp.Members = userdto.ToUserResponses(members)
	return helper.Success(c, "Team retrieved successfully", resp)
}

// GET /api/teams/mine
func (ctl *TeamController) Mine(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teams, err := ctl.Service.ListByUser(c.UserContext(), actor.ID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Teams retrieved successfully", dto.ToTeamResponses(teams))
}

// GET /api/projects/:id/teams
func (ctl *TeamController) ListByProject(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid project id")
	}
	teams, err := ctl.Service.ListByProject(c.UserContext(), projectID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Teams retrieved successfully", dto.ToTeamResponses(teams))
}

// DELETE /api/projects/:id/teams
func (ctl *TeamController) DeleteByProject(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid project id")
	}
	if err := ctl.Service.DeleteByProject(c.UserContext(), actor, projectID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Teams deleted successfully", nil)
}

// POST /api/teams/:id/members
func (ctl *TeamController) AddMember(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	var req dto.AddMemberRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}
	if err := ctl.Service.AddMember(c.UserContext(), actor, teamID, req.UserID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Member added to team", nil)
}

// DELETE /api/teams/:id/members/:userId
func (ctl *TeamController) RemoveMember(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	userID, err := uuid.Parse(c.Params("userId"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid user id")
	}
	if err := ctl.Service.RemoveMember(c.UserContext(), actor, teamID, userID); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Member removed from team", nil)
}
