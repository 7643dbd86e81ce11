package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/tasks/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

func TaskRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewTaskController(db)

	tasks := api.Group("/tasks", authmw.AuthMiddleware(db))
	tasks.Post("/", ctl.Create)
	tasks.Get("/mine", ctl.Mine)
	tasks.Put("/:id/status", ctl.UpdateStatus)
	tasks.Put("/:id/assign", ctl.Assign)

	api.Get("/teams/:id/tasks", authmw.AuthMiddleware(db), ctl.ListByTeam)
	api.Get("/teams/:id/kanban", authmw.AuthMiddleware(db), ctl.Kanban)
}
