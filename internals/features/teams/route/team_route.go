package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	"collabsphere_backend/internals/features/teams/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

func TeamRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewTeamController(db)

	teams := api.Group("/teams", authmw.AuthMiddleware(db))
	teams.Get("/mine", ctl.Mine)
	teams.Get("/:id", ctl.Get)

	manage := teams.Group("",
		authmw.OnlyRoles("Only lecturers and admins can manage teams", constants.LecturerAndAbove...),
	)
	manage.Post("/auto-generate", ctl.AutoGenerate)
	manage.Post("/:id/members", ctl.AddMember)
	manage.Delete("/:id/members/:userId", ctl.RemoveMember)

	api.Get("/projects/:id/teams", authmw.AuthMiddleware(db), ctl.ListByProject)
	api.Delete("/projects/:id/teams", authmw.AuthMiddleware(db),
		authmw.OnlyRoles("Only lecturers and admins can manage teams", constants.LecturerAndAbove...),
		ctl.DeleteByProject)
}
