package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	"collabsphere_backend/internals/features/staff/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

func StaffRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewStaffController(db)

	staff := api.Group("/staff",
		authmw.AuthMiddleware(db),
		authmw.OnlyRoles("Only staff can run imports", constants.StaffAndAbove...),
	)
	staff.Post("/import/users", ctl.ImportUsers)
	staff.Post("/import/classrooms", ctl.ImportClassrooms)
}
