package route

import (
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	rankingController "beasiswaku_backend/internals/features/fellowship/rankings/controller"
)

// RankingAdminRoutes: baca / susun ulang / publikasi ranking.
func RankingAdminRoutes(router fiber.Router, db *gorm.DB) {
	ctrl := rankingController.NewRankingController(db)
	rankings := router.Group("/rankings")

	rankings.Get("/", ctrl.List)
	rankings.Post("/generate", ctrl.Generate)
	rankings.Post("/publish", ctrl.Publish)
}
