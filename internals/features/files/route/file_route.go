package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/files/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

func FileRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewFileController()

	files := api.Group("/files", authmw.AuthMiddleware(db))
	files.Post("/upload", ctl.Upload)
	files.Get("/:name", ctl.Download)
}
