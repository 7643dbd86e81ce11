package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	"collabsphere_backend/internals/features/classrooms/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

func ClassroomRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewClassroomController(db)

	classrooms := api.Group("/classrooms", authmw.AuthMiddleware(db))
	classrooms.Get("/", ctl.List)
	classrooms.Get("/mine", ctl.Mine)
	classrooms.Get("/code/:code", ctl.GetByCode)
	classrooms.Get("/:id", ctl.Get)

	manage := classrooms.Group("",
		authmw.OnlyRoles("Only lecturers and admins can manage classrooms", constants.LecturerAndAbove...),
	)
	manage.Post("/", ctl.Create)
	manage.Post("/:id/students", ctl.AddStudent)
	manage.Delete("/:id/students/:email", ctl.RemoveStudent)
}
