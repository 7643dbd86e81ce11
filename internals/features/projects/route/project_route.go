package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"collabsphere_backend/internals/constants"
	"collabsphere_backend/internals/features/projects/controller"
	authmw "collabsphere_backend/internals/middlewares/auth"
)

func ProjectRoutes(api fiber.Router, db *gorm.DB) {
	ctl := controller.NewProjectController(db)

	projects := api.Group("/projects", authmw.AuthMiddleware(db))
	projects.Get("/pending", ctl.ListPending)
	projects.Get("/approved", ctl.ListApproved)
	projects.Get("/:id", ctl.Get)
	projects.Get("/:id/milestones", ctl.ListMilestones)

	lecturer := projects.Group("",
		authmw.OnlyRoles("Only lecturers and admins can manage projects", constants.LecturerAndAbove...),
	)
	lecturer.Post("/", ctl.Create)
	lecturer.Put("/:id/submit", ctl.Submit)
	lecturer.Post("/:id/milestones", ctl.CreateMilestone)

	approver := projects.Group("",
		authmw.OnlyRoles("Only the head of department or admins can decide projects", constants.ApproverRoles...),
	)
	approver.Put("/:id/approve", ctl.Approve)
	approver.Put("/:id/reject", ctl.Reject)

	// nested listing under classrooms
	api.Get("/classrooms/:id/projects", authmw.AuthMiddleware(db), ctl.ListByClassroom)
}
