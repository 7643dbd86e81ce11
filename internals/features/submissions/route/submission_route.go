package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	"collabsphere_backend/internals/features/submissions/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

func SubmissionRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewSubmissionController(db)

	subs := api.Group("/submissions", authmw.AuthMiddleware(db))
	subs.Post("/", ctl.Create)
	subs.Get("/ungraded",
		authmw.OnlyRoles("Only lecturers can list ungraded submissions", constants.LecturerAndAbove...),
		ctl.ListUngraded)
	subs.Put("/:id/grade",
		authmw.OnlyRoles("Only lecturers can grade submissions", constants.LecturerAndAbove...),
		ctl.Grade)

	api.Get("/milestones/:id/submissions", authmw.AuthMiddleware(db), ctl.ListByMilestone)
	api.Get("/milestones/:id/submissions/team/:team_id", authmw.AuthMiddleware(db), ctl.GetByMilestoneAndTeam)
	api.Get("/teams/:id/submissions", authmw.AuthMiddleware(db), ctl.ListByTeam)
}
