package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/tasks/dto"
	"collabsphere_backend/internals/features/tasks/service"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

type TaskController struct {
	Service *service.Service
}

func NewTaskController(db *gorm.DB) *TaskController {
	return &TaskController{Service: service.NewService(db)}
}

var validate = validator.New()

// POST /api/tasks
func (ctl *TaskController) Create(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	task, err := ctl.Service.Create(c.UserContext(), actor, service.CreateTaskInput{
		TeamID:      req.TeamID,
		Title:       req.Title,
		Description: req.Description,
		Priority:    req.Priority,
		AssigneeID:  req.AssigneeID,
		DueDate:     req.DueDate,
	})
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Task created successfully", dto.ToTaskResponse(task))
}

// PUT /api/tasks/:id/status
func (ctl *TaskController) UpdateStatus(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid task id")
	}
	var req dto.UpdateTaskStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	task, err := ctl.Service.UpdateStatus(c.UserContext(), actor, id, req.NewStatus)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Task status updated", dto.ToTaskResponse(task))
}

// PUT /api/tasks/:id/assign
func (ctl *TaskController) Assign(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid task id")
	}
	var req dto.AssignTaskRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	task, err := ctl.Service.Assign(c.UserContext(), actor, id, req.AssigneeID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Task assigned", dto.ToTaskResponse(task))
}

// GET /api/teams/:id/tasks (+ ?status=TODO)
func (ctl *TaskController) ListByTeam(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	tasks, err := ctl.Service.ListByTeam(c.UserContext(), actor, teamID, c.Query("status"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Tasks retrieved successfully", dto.ToTaskResponses(tasks))
}

// GET /api/teams/:id/kanban
func (ctl *TaskController) Kanban(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	teamID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid team id")
	}
	tasks, err := ctl.Service.ListByTeam(c.UserContext(), actor, teamID, "")
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Kanban board retrieved successfully", dto.ToKanbanBoard(tasks))
}

// GET /api/tasks/mine (+ ?status=DOING)
func (ctl *TaskController) Mine(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	tasks, err := ctl.Service.ListMine(c.UserContext(), actor, c.Query("status"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Tasks retrieved successfully", dto.ToTaskResponses(tasks))
}
