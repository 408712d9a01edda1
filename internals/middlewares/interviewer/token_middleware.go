// internals/middlewares/interviewer/token_middleware.go
package interviewer

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/features/fellowship/interviewers/model"
)

// Locals key yang di-set middleware ini.
const (
	LocInterviewer     = "interviewer"
	LocInterviewerID   = "interviewer_id"
	LocInterviewerYear = "interviewer_year"
)

// TokenMiddleware me-resolve access token magic link dari path param :token.
// Token divalidasi ulang di SETIAP request (stateless); semua kegagalan
// dijawab 401 dengan pesan generik yang sama.
func TokenMiddleware(db *gorm.DB) fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := c.Params("token")

		iv, err := model.ResolveByAccessToken(db, token)
		if err != nil {
			if errors.Is(err, model.ErrAccessDenied) {
				return fiber.NewError(fiber.StatusUnauthorized, "Akses ditolak")
			}
			log.Println("[ERROR] resolve token interviewer:", err)
			return fiber.NewError(fiber.StatusInternalServerError, "Internal Server Error")
		}

		c.Locals(LocInterviewer, iv)
		c.Locals(LocInterviewerID, iv.InterviewerID.String())
		c.Locals(LocInterviewerYear, iv.InterviewerYear)
		return c.Next()
	}
}
