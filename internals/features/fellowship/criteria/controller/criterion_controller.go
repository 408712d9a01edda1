package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/features/fellowship/criteria/dto"
	"beasiswaku_backend/internals/features/fellowship/criteria/model"
	helper "beasiswaku_backend/internals/helpers"
)

type CriterionController struct {
	DB *gorm.DB
}

func NewCriterionController(db *gorm.DB) *CriterionController {
	return &CriterionController{DB: db}
}

// 📄 GET /api/a/criteria?year=2026
// Daftar kriteria aktif satu tahun, urut sesuai sort order.
func (ctrl *CriterionController) List(c *fiber.Ctx) error {
	year := c.QueryInt("year", 0)
	if year == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter year wajib diisi")
	}

	var criteria []model.CriterionModel
	if err := model.ActiveCriteria(ctrl.DB, year).Find(&criteria).Error; err != nil {
		log.Printf("[ERROR] Gagal mengambil kriteria: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data kriteria")
	}

	return helper.JsonOK(c, "Kriteria berhasil diambil", dto.ToCriterionResponseList(criteria))
}

// ➕ POST /api/a/criteria
// Membuat kriteria baru; sort order di-append ke belakang set tahun tsb.
func (ctrl *CriterionController) Create(c *fiber.Ctx) error {
	var req dto.CreateCriterionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	newCriterion := req.ToModel()

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		next, err := model.NextSortOrder(tx, req.CriterionYear)
		if err != nil {
			return err
		}
		newCriterion.CriterionSortOrder = next
		return tx.Create(newCriterion).Error
	}); err != nil {
		log.Printf("[ERROR] Gagal menyimpan kriteria: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan kriteria")
	}

	return helper.JsonCreated(c, "Kriteria berhasil dibuat", dto.ToCriterionResponse(newCriterion))
}

// ✏️ PATCH /api/a/criteria/:id
// Merge parsial field kriteria. Tidak me-rescale skor yang sudah tercatat.
func (ctrl *CriterionController) Update(c *fiber.Ctx) error {
	id := c.Params("id")

	var req dto.UpdateCriterionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Permintaan tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var crit model.CriterionModel
	if err := ctrl.DB.First(&crit, "criterion_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Kriteria tidak ditemukan")
		}
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kriteria")
	}

	req.ApplyTo(&crit)
	if err := ctrl.DB.Save(&crit).Error; err != nil {
		log.Printf("[ERROR] Gagal update kriteria: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui kriteria")
	}

	return helper.JsonUpdated(c, "Kriteria berhasil diperbarui", dto.ToCriterionResponse(&crit))
}

// 🗑 DELETE /api/a/criteria/:id
// Soft-deactivate: history skor tetap utuh, tapi kriteria keluar dari
// agregasi berikutnya (kontribusinya hilang dari objective_score saat recompute).
func (ctrl *CriterionController) Deactivate(c *fiber.Ctx) error {
	id := c.Params("id")

	res := ctrl.DB.Model(&model.CriterionModel{}).
		Where("criterion_id = ?", id).
		Update("criterion_is_active", false)
	if res.Error != nil {
		log.Printf("[ERROR] Gagal menonaktifkan kriteria: %v", res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menonaktifkan kriteria")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Kriteria tidak ditemukan")
	}

	return helper.JsonDeleted(c, "Kriteria dinonaktifkan", fiber.Map{"criterion_id": id})
}
