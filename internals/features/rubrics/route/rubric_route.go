package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	"collabsphere_backend/internals/features/rubrics/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

func RubricRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewRubricController(db)

	rubrics := api.Group("/rubrics", authmw.AuthMiddleware(db))
	rubrics.Get("/:id/criteria", ctl.ListCriteria)

	manage := rubrics.Group("",
		authmw.OnlyRoles("Only lecturers can manage rubrics", constants.LecturerAndAbove...))
	manage.Post("/", ctl.Create)
	manage.Post("/:id/criteria", ctl.AddCriteria)
	manage.Post("/:id/grade", ctl.GradeTeam)

	api.Get("/projects/:id/rubrics", authmw.AuthMiddleware(db), ctl.ListByProject)
	api.Get("/teams/:id/scores", authmw.AuthMiddleware(db), ctl.ListTeamScores)
	api.Get("/teams/:id/total-score", authmw.AuthMiddleware(db), ctl.TeamTotalScore)
}
