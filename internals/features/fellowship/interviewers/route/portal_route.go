package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	interviewerController "beasiswaku_backend/internals/features/fellowship/interviewers/controller"
)

// InterviewerPortalRoutes: surface magic link (token sudah divalidasi
// TokenMiddleware di level group /api/interview/:token).
func InterviewerPortalRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := interviewerController.NewPortalController(db)

	router.Get("/applications", ctrl.ListAssigned)
	router.Get("/applications/:id", ctrl.GetApplication)
	router.Post("/applications/:id/scores", ctrl.SubmitScore)
}
