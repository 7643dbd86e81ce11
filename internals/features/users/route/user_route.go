package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	"collabsphere_backend/internals/features/users/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

func UserRoutes(api fiber.Router, db *gorm.DB) {
	authCtl := controller.NewAuthController(db)
	adminCtl := controller.NewUserAdminController(db)

	auth := api.Group("/auth")
	auth.Post("/register", authCtl.Register)
	auth.Post("/login", authCtl.Login)
	auth.Get("/me", authmw.AuthMiddleware(db), authCtl.Me)

	admin := api.Group("/admin/users",
		authmw.AuthMiddleware(db),
		authmw.OnlyRoles("Only admins can manage users", constants.AdminOnly...),
	)
	admin.Get("/", adminCtl.List)
	admin.Put("/:id/activate", adminCtl.SetActive(true))
	admin.Put("/:id/deactivate", adminCtl.SetActive(false))
}
