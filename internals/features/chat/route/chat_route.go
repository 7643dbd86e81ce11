package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/features/chat/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
	"collabsphere_backend/internals/realtime"
)

func ChatRoutes(app *fiber.App, api fiber.Router, db *gorm.DB, hub *realtime.Hub) {
	ctl := controller.NewChatController(db, hub)

	api.Get("/teams/:id/messages", authmw.AuthMiddleware(db), ctl.History)

	app.Use("/ws/chat/:team_id", ctl.Upgrade, authmw.AuthMiddleware(db))
	app.Get("/ws/chat/:team_id", ctl.Websocket())
}
