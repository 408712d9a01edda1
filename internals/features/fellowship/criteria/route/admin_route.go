package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	criterionController "beasiswaku_backend/internals/features/fellowship/criteria/controller"
)

// CriterionAdminRoutes: rubrik penilaian hanya untuk admin.
func CriterionAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := criterionController.NewCriterionController(db)
	criteria := router.Group("/criteria")

	criteria.Get("/", ctrl.List)
	criteria.Post("/", ctrl.Create)
	criteria.Patch("/:id", ctrl.Update)
	criteria.Delete("/:id", ctrl.Deactivate)
}
