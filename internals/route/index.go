// file: internals/route/index.go
package routes

import (
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/constants"
	applicationRoute "beasiswaku_backend/internals/features/fellowship/applications/route"
	criterionRoute "beasiswaku_backend/internals/features/fellowship/criteria/route"
	evaluationRoute "beasiswaku_backend/internals/features/fellowship/evaluations/route"
	interviewerRoute "beasiswaku_backend/internals/features/fellowship/interviewers/route"
	rankingRoute "beasiswaku_backend/internals/features/fellowship/rankings/route"
	notificationRoute "beasiswaku_backend/internals/features/home/notifications/route"
	"beasiswaku_backend/internals/middlewares"
	authMiddleware "beasiswaku_backend/internals/middlewares/auth"
	interviewerMiddleware "beasiswaku_backend/internals/middlewares/interviewer"
)

var startTime time.Time

func SetupRoutes(app *fiber.App, db *gorm.DB) {
	startTime = time.Now()

	BaseRoutes(app, db)

	// ===================== ADMIN / KOMITE (JWT) =====================
	log.Println("[INFO] Setting up ADMIN group (JWT + role check)...")
	admin := app.Group("/api/a", authMiddleware.AuthMiddleware())

	// Panitia boleh menilai & membaca; rubrik + interviewer + publish khusus admin.
	committee := admin.Group("",
		authMiddleware.OnlyRolesSlice("penilaian", constants.CommitteeAndAbove))
	applicationRoute.ApplicationAdminRoutes(committee, db)
	evaluationRoute.EvaluationAdminRoutes(committee, db)
	notificationRoute.NotificationAdminRoutes(committee, db)

	adminOnly := admin.Group("",
		authMiddleware.OnlyRolesSlice("konfigurasi program", constants.AdminAndAbove))
	criterionRoute.CriterionAdminRoutes(adminOnly, db)
	interviewerRoute.InterviewerAdminRoutes(adminOnly, db)
	rankingRoute.RankingAdminRoutes(adminOnly, db)

	// ===================== PORTAL INTERVIEWER (magic link) =====================
	log.Println("[INFO] Setting up INTERVIEW portal group (token di URL)...")
	portal := app.Group("/api/interview/:token",
		middlewares.PortalRateLimiter(),
		interviewerMiddleware.TokenMiddleware(db),
	)
	interviewerRoute.InterviewerPortalRoutes(portal, db)
}
