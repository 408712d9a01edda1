package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	evaluationController "beasiswaku_backend/internals/features/fellowship/evaluations/controller"
)

// EvaluationAdminRoutes: jalur tulis skor internal + flavor interview lama.
func EvaluationAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := evaluationController.NewEvaluationController(db)
	evaluations := router.Group("/evaluations")

	evaluations.Get("/", ctrl.ListByApplication)
	evaluations.Post("/", ctrl.Submit)
	evaluations.Post("/batch", ctrl.SubmitBatch)

	// Flavor interview lama hidup di path sendiri, bukan di bawah /evaluations.
	router.Post("/interview-scores", ctrl.SubmitInterview)
}
