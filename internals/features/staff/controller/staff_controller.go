package controller

import (
	"context"
	"io"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/staff/service"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
	"collabsphere_backend/internals/policy"
)

type StaffController struct {
	Service *service.Service
}

func NewStaffController(db *gorm.DB) *StaffController {
	return &StaffController{Service: service.NewService(db)}
}

// POST /api/staff/import/users
func (ctl *StaffController) ImportUsers(c *fiber.Ctx) error {
	return ctl.runImport(c, "Users imported", ctl.Service.ImportUsers)
}

// POST /api/staff/import/classrooms
func (ctl *StaffController) ImportClassrooms(c *fiber.Ctx) error {
	return ctl.runImport(c, "Classrooms imported", ctl.Service.ImportClassrooms)
}

func (ctl *StaffController) runImport(c *fiber.Ctx, message string,
	fn func(context.Context, policy.Actor, io.Reader) (service.ImportReport, error)) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Missing file field")
	}
	file, err := fileHeader.Open()
	if err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Could not open uploaded file")
	}
	defer file.Close()

	report, err := fn(c.UserContext(), actor, file)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, message, fiber.Map{
		"created": report.Created,
		"skipped": report.Skipped,
		"errors":  report.Errors,
		"report":  report.Report(),
	})
}
