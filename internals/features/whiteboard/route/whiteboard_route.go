package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/whiteboard/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
	"collabsphere_backend/internals/realtime"
)

func WhiteboardRoutes(app *fiber.App, api fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	ctl := controller.NewWhiteboardController(db, hub)

	board := api.Group("/teams/:id/whiteboard", authmw.AuthMiddleware(db))
	board.Get("/", ctl.Get)
	board.Put("/", ctl.Save)
	board.Delete("/", ctl.Clear)

	app.Use("/ws/whiteboard/:team_id", ctl.Upgrade, authmw.AuthMiddleware(db))
	app.Get("/ws/whiteboard/:team_id", ctl.Websocket())
}
