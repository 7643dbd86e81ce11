package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/projects/dto"
	"collabsphere_backend/internals/features/projects/model"
	"collabsphere_backend/internals/features/projects/service"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
	"collabsphere_backend/internals/policy"
)

type ProjectController struct {
	Service *service.Service
}

func NewProjectController(db *gorm.DB) *ProjectController {
	return &ProjectController{Service: service.NewService(db)}
}

var validate = validator.New()

// POST /api/projects
func (ctl *ProjectController) Create(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateProjectRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	project, err := ctl.Service.Create(c.UserContext(), actor, req.ClassroomID, req.Title, req.Description, req.Deadline)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Project created successfully", dto.ToProjectResponse(project))
}

// GET /api/projects/:id
func (ctl *ProjectController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid project id")
	}
	project, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Project retrieved successfully", dto.ToProjectResponse(project))
}

// GET /api/classrooms/:id/projects (+ ?active=true)
func (ctl *ProjectController) ListByClassroom(c *fiber.Ctx) error {
	classroomID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid classroom id")
	}
	var projects []model.ProjectModel
	if c.QueryBool("active") {
		projects, err = ctl.Service.ListActive(c.UserContext(), classroomID)
	} else {
		projects, err = ctl.Service.ListByClassroom(c.UserContext(), classroomID)
	}
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Projects retrieved successfully", dto.ToProjectResponses(projects))
}

// GET /api/projects/pending
func (ctl *ProjectController) ListPending(c *fiber.Ctx) error {
	projects, err := ctl.Service.ListByStatus(c.UserContext(), model.StatusPending)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Pending projects retrieved successfully", dto.ToProjectResponses(projects))
}

// GET /api/projects/approved
func (ctl *ProjectController) ListApproved(c *fiber.Ctx) error {
	projects, err := ctl.Service.ListByStatus(c.UserContext(), model.StatusApproved)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Approved projects retrieved successfully", dto.ToProjectResponses(projects))
}

// PUT /api/projects/:id/submit
func (ctl *ProjectController) Submit(c *fiber.Ctx) error {
	return ctl.transition(c, func(actor policy.Actor, id uuid.UUID) (model.ProjectModel, error) {
		return ctl.Service.Submit(c.UserContext(), actor, id)
	}, "Project submitted for approval")
}

// PUT /api/projects/:id/approve
func (ctl *ProjectController) Approve(c *fiber.Ctx) error {
	return ctl.transition(c, func(actor policy.Actor, id uuid.UUID) (model.ProjectModel, error) {
		return ctl.Service.Decide(c.UserContext(), actor, id, true)
	}, "Project approved")
}

// PUT /api/projects/:id/reject
func (ctl *ProjectController) Reject(c *fiber.Ctx) error {
	return ctl.transition(c, func(actor policy.Actor, id uuid.UUID) (model.ProjectModel, error) {
		return ctl.Service.Decide(c.UserContext(), actor, id, false)
	}, "Project rejected")
}

// POST /api/projects/:id/milestones
func (ctl *ProjectController) CreateMilestone(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid project id")
	}
	var req dto.CreateMilestoneRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	milestone, err := ctl.Service.CreateMilestone(c.UserContext(), actor, projectID, req.Title, req.DueDate)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Milestone created successfully", dto.ToMilestoneResponse(milestone))
}

// GET /api/projects/:id/milestones (+ ?upcoming=true)
func (ctl *ProjectController) ListMilestones(c *fiber.Ctx) error {
	projectID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid project id")
	}
	var milestones []model.MilestoneModel
	if c.QueryBool("upcoming") {
		milestones, err = ctl.Service.ListUpcomingMilestones(c.UserContext(), projectID)
	} else {
		milestones, err = ctl.Service.ListMilestones(c.UserContext(), projectID)
	}
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Milestones retrieved successfully", dto.ToMilestoneResponses(milestones))
}

func (ctl *ProjectController) transition(c *fiber.Ctx, fn func(policy.Actor, uuid.UUID) (model.ProjectModel, error), msg string) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid project id")
	}
	project, err := fn(actor, id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, msg, dto.ToProjectResponse(project))
}
