package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	applicationController "beasiswaku_backend/internals/features/fellowship/applications/controller"
)

// ApplicationAdminRoutes: aplikasi + institusi, surface admin/komite.
func ApplicationAdminRoutes(router fiber.Router, db *gorm.DB) {
	appCtrl := applicationController.NewApplicationController(db)
	applications := router.Group("/applications")

	applications.Get("/", appCtrl.List)
	applications.Post("/", appCtrl.Create)
	applications.Get("/:id", appCtrl.GetByID)
	applications.Patch("/:id", appCtrl.Update)
	applications.Get("/:id/scores", appCtrl.GetScores)

	instCtrl := applicationController.NewInstitutionController(db)
	institutions := router.Group("/institutions")

	institutions.Get("/", instCtrl.List)
	institutions.Post("/", instCtrl.Create)
	institutions.Patch("/:id", instCtrl.Update)
}
