package controller

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/classrooms/dto"
	"collabsphere_backend/internals/features/classrooms/service"
	userdto "collabsphere_backend/internals/features/users/dto"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

type ClassroomController struct {
	Service *service.Service
}

func NewClassroomController(db *gorm.DB) *ClassroomController {
	return &ClassroomController{Service: service.NewService(db)}
}

var validate = validator.New()

// POST /api/classrooms
func (ctl *ClassroomController) Create(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var req dto.CreateClassroomRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	classroom, err := ctl.Service.Create(c.UserContext(), actor, req.Name, req.Code)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "Classroom created successfully", dto.ToClassroomResponse(classroom))
}

// GET /api/classrooms
func (ctl *ClassroomController) List(c *fiber.Ctx) error {
	classrooms, err := ctl.Service.ListAll(c.UserContext())
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Classrooms retrieved successfully", dto.ToClassroomResponses(classrooms))
}

// GET /api/classrooms/mine — lecturer's own classrooms, or enrollments for students
func (ctl *ClassroomController) Mine(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	var (
		classrooms interface{}
		listErr    error
	)
	if actor.IsStudent() {
		rows, err := ctl.Service.ListByStudent(c.UserContext(), actor.ID)
		classrooms, listErr = dto.ToClassroomResponses(rows), err
	} else {
		rows, err := ctl.Service.ListByLecturer(c.UserContext(), actor.ID)
		classrooms, listErr = dto.ToClassroomResponses(rows), err
	}
	if listErr != nil {
		return helper.FromError(c, listErr)
	}
	return helper.Success(c, "Classrooms retrieved successfully", classrooms)
}

// GET /api/classrooms/:id
func (ctl *ClassroomController) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid classroom id")
	}
	classroom, err := ctl.Service.GetByID(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	roster, err := ctl.Service.Roster(c.UserContext(), id)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Classroom retrieved successfully", dto.ClassroomDetailResponse{
		ClassroomResponse: dto.ToClassroomResponse(classroom),
		Students:          userdto.ToUserResponses(roster),
	})
}

// GET /api/classrooms/code/:code
func (ctl *ClassroomController) GetByCode(c *fiber.Ctx) error {
	classroom, err := ctl.Service.GetByCode(c.UserContext(), c.Params("code"))
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Classroom retrieved successfully", dto.ToClassroomResponse(classroom))
}

// POST /api/classrooms/:id/students
func (ctl *ClassroomController) AddStudent(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid classroom id")
	}
	var req dto.AddStudentRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	student, err := ctl.Service.AddStudent(c.UserContext(), actor, id, req.Email)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Student added to classroom", userdto.ToUserResponse(student))
}

// DELETE /api/classrooms/:id/students/:email
func (ctl *ClassroomController) RemoveStudent(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid classroom id")
	}
	if err := ctl.Service.RemoveStudent(c.UserContext(), actor, id, c.Params("email")); err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Student removed from classroom", nil)
}
