package interviewer_test

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"beasiswaku_backend/internals/features/fellowship/interviewers/model"
	"beasiswaku_backend/internals/middlewares/interviewer"
	"beasiswaku_backend/internals/testutil"
)

func TestTokenMiddlewareGuardsPortalGroup(t *testing.T) {
	db := testutil.OpenTestDB(t)

	iv := &model.InterviewerModel{
		InterviewerYear:          2026,
		InterviewerName:          "Dr. Ratna",
		InterviewerEmail:         "ratna@example.org",
		InterviewerAccessToken:   "token-aktif",
		InterviewerTokenIssuedAt: time.Now(),
		InterviewerIsActive:      true,
	}
	require.NoError(t, db.Create(iv).Error)

	app := fiber.New()
	portal := app.Group("/api/interview/:token", interviewer.TokenMiddleware(db))
	portal.Get("/whoami", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"interviewer_id": c.Locals(interviewer.LocInterviewerID),
			"year":           c.Locals(interviewer.LocInterviewerYear),
		})
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/api/interview/token-aktif/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Token salah → 401, tanpa detail penyebab.
	resp, err = app.Test(httptest.NewRequest("GET", "/api/interview/token-salah/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}

func TestTokenMiddlewareRevalidatesEveryRequest(t *testing.T) {
	db := testutil.OpenTestDB(t)

	iv := &model.InterviewerModel{
		InterviewerYear:          2026,
		InterviewerName:          "Dr. Ratna",
		InterviewerEmail:         "ratna@example.org",
		InterviewerAccessToken:   "token-aktif",
		InterviewerTokenIssuedAt: time.Now(),
		InterviewerIsActive:      true,
	}
	require.NoError(t, db.Create(iv).Error)

	app := fiber.New()
	portal := app.Group("/api/interview/:token", interviewer.TokenMiddleware(db))
	portal.Get("/whoami", func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusOK) })

	resp, err := app.Test(httptest.NewRequest("GET", "/api/interview/token-aktif/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)

	// Dinonaktifkan di tengah sesi → request berikutnya langsung ditolak.
	require.NoError(t, db.Model(&model.InterviewerModel{}).
		Where("interviewer_id = ?", iv.InterviewerID).
		Update("interviewer_is_active", false).Error)

	resp, err = app.Test(httptest.NewRequest("GET", "/api/interview/token-aktif/whoami", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
