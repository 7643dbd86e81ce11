package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	chatroute "collabsphere_backend/internals/features/chat/route"
	classroomroute "collabsphere_backend/internals/features/classrooms/route"
	fileroute "collabsphere_backend/internals/features/files/route"
	projectroute "collabsphere_backend/internals/features/projects/route"
	rubricroute "collabsphere_backend/internals/features/rubrics/route"
	staffroute "collabsphere_backend/internals/features/staff/route"
	submissionroute "collabsphere_backend/internals/features/submissions/route"
	taskroute "collabsphere_backend/internals/features/tasks/route"
	teamroute "collabsphere_backend/internals/features/teams/route"
	userroute "collabsphere_backend/internals/features/users/route"
	whiteboardroute "collabsphere_backend/internals/features/whiteboard/route"
	"collabsphere_backend/internals/realtime"
)

// SetupRoutes mounts every feature under /api plus the websocket endpoints.
func SetupRoutes(app *fiber.App, db *gorm.DB, hub *realtime.Hub) {
	api := app.Group("/api")

	userroute.UserRoutes(api, db)
	classroomroute.ClassroomRoutes(api, db)
	projectroute.ProjectRoutes(api, db)
	teamroute.TeamRoutes(api, db)
	taskroute.TaskRoutes(api, db)
	submissionroute.SubmissionRoutes(api, db)
	rubricroute.RubricRoutes(api, db)
	staffroute.StaffRoutes(api, db)
	fileroute.FileRoutes(api, db)

	chatroute.ChatRoutes(app, api, db, hub)
	whiteboardroute.WhiteboardRoutes(app, api, db, hub)
}
