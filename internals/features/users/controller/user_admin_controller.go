package controller

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/users/dto"
	"collabsphere_backend/internals/features/users/service"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

type UserAdminController struct {
	Service *service.Service
}

func NewUserAdminController(db *gorm.DB) *UserAdminController {
	return &UserAdminController{Service: service.NewService(db)}
}

// GET /api/admin/users
func (ctl *UserAdminController) List(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	users, err := ctl.Service.List(c.UserContext(), actor)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Users retrieved successfully", dto.ToUserResponses(users))
}

// PUT /api/admin/users/:id/deactivate and /activate
func (ctl *UserAdminController) SetActive(active bool) fiber.Handler {
	return func(c *fiber.Ctx) error {
		actor, err := authmw.GetActor(c)
		if err != nil {
			return helper.FromError(c, err)
		}
		id, err := uuid.Parse(c.Params("id"))
		if err != nil {
			return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid user id")
		}
		user, err := ctl.Service.SetActive(c.UserContext(), actor, id, active)
		if err != nil {
			return helper.FromError(c, err)
		}
		msg := "User deactivated"
		if active {
			msg = "User activated"
		}
		return helper.Success(c, msg, dto.ToUserResponse(user))
	}
}
