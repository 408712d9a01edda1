package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	interviewerController "beasiswaku_backend/internals/features/fellowship/interviewers/controller"
)

// InterviewerAdminRoutes: manajemen interviewer eksternal + token magic link.
func InterviewerAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := interviewerController.NewInterviewerAdminController(db)
	interviewers := router.Group("/interviewers")

	interviewers.Get("/", ctrl.List)
	interviewers.Post("/", ctrl.Create)
	interviewers.Patch("/:id", ctrl.Update)
	interviewers.Post("/:id/regenerate-token", ctrl.RegenerateToken)
	interviewers.Post("/:id/send-access-link", ctrl.SendAccessLink)
	interviewers.Post("/:id/deactivate", ctrl.Deactivate)
}
