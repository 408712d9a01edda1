package controller

import (
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/features/fellowship/rankings/service"
	helper "beasiswaku_backend/internals/helpers"
)

type RankingController struct {
	DB      *gorm.DB
	Service *service.RankingService
}

func NewRankingController(db *gorm.DB) *RankingController {
	return &RankingController{DB: db, Service: service.NewRankingService(db)}
}

func parseRankingParams(c *fiber.Ctx) (int, *uuid.UUID, error) {
	year := c.QueryInt("year")
	if year == 0 {
		return 0, nil, fiber.NewError(fiber.StatusBadRequest, "Parameter year wajib diisi")
	}

	var instID *uuid.UUID
	if raw := c.Query("institution_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return 0, nil, fiber.NewError(fiber.StatusBadRequest, "institution_id tidak valid")
		}
		instID = &id
	}
	return year, instID, nil
}

// 📄 GET /api/a/rankings?year=&institution_id=
// Membaca ranking yang sudah di-persist; tidak me-regenerasi.
func (ctrl *RankingController) List(c *fiber.Ctx) error {
	year, instID, err := parseRankingParams(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	rankings, err := ctrl.Service.List(year, instID)
	if err != nil {
		log.Printf("[ERROR] list rankings year %d: %v", year, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil ranking")
	}

	return helper.JsonOK(c, "Berhasil mengambil ranking", rankings)
}

// 🔄 POST /api/a/rankings/generate?year=&institution_id=
// Menyusun ulang ranking per institusi dan mem-persist posisi + flag advance.
func (ctrl *RankingController) Generate(c *fiber.Ctx) error {
	year, instID, err := parseRankingParams(c)
	if err != nil {
		fe := err.(*fiber.Error)
		return helper.JsonError(c, fe.Code, fe.Message)
	}

	rankings, err := ctrl.Service.Generate(year, instID)
	if err != nil {
		log.Printf("[ERROR] generate rankings year %d: %v", year, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyusun ranking")
	}

	log.Printf("[SUCCESS] rankings generated year=%d institutions=%d", year, len(rankings))
	return helper.JsonOK(c, "Ranking berhasil disusun", rankings)
}

// ✉️ POST /api/a/rankings/publish?year=
// Idempoten: aplikasi yang sudah dinotifikasi dilewati.
func (ctrl *RankingController) Publish(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	if year == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter year wajib diisi")
	}

	notified, err := ctrl.Service.Publish(year)
	if err != nil {
		log.Printf("[ERROR] publish rankings year %d: %v", year, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mempublikasikan ranking")
	}

	log.Printf("[SUCCESS] rankings published year=%d notified=%d", year, notified)
	return helper.JsonOK(c, "Ranking berhasil dipublikasikan", fiber.Map{
		"year":     year,
		"notified": notified,
	})
}
