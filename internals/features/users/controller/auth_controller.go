package controller

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/users/dto"
	"collabsphere_backend/internals/features/users/service"
	helper "collabsphere_backend/internals/helpers"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

const tokenTTL = 24 * time.Hour

type AuthController struct {
	Service *service.Service
}

func NewAuthController(db *gorm.DB) *AuthController {
	return &AuthController{Service: service.NewService(db)}
}

var validate = validator.New()

// POST /api/auth/register
func (ctl *AuthController) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctl.Service.Register(c.UserContext(), req.Email, req.Password, req.FullName, req.Role)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.SuccessWithCode(c, fiber.StatusCreated, "User registered successfully", dto.ToUserResponse(user))
}

// POST /api/auth/login
func (ctl *AuthController) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.Error(c, fiber.StatusBadRequest, helper.KindValidation, "Invalid request body")
	}
	if err := validate.Struct(req); err != nil {
		return helper.ValidationError(c, err)
	}

	user, err := ctl.Service.Authenticate(c.UserContext(), req.Email, req.Password)
	if err != nil {
		return helper.FromError(c, err)
	}

	token, err := authmw.NewToken(user.UserID, user.UserRole, user.UserFullName, tokenTTL)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Login successful", dto.LoginResponse{
		Token: token,
		User:  dto.ToUserResponse(user),
	})
}

// GET /api/auth/me
func (ctl *AuthController) Me(c *fiber.Ctx) error {
	actor, err := authmw.GetActor(c)
	if err != nil {
		return helper.FromError(c, err)
	}
	user, err := ctl.Service.GetByID(c.UserContext(), actor.ID)
	if err != nil {
		return helper.FromError(c, err)
	}
	return helper.Success(c, "Current user", dto.ToUserResponse(user))
}
