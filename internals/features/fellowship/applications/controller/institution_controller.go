package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/features/fellowship/applications/dto"
	"beasiswaku_backend/internals/features/fellowship/applications/model"
	helper "beasiswaku_backend/internals/helpers"
)

type InstitutionController struct {
	DB *gorm.DB
}

func NewInstitutionController(db *gorm.DB) *InstitutionController {
	return &InstitutionController{DB: db}
}

// 📄 GET /api/a/institutions
func (ctrl *InstitutionController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.InstitutionModel{})
	if c.Query("active") == "true" {
		q = q.Where("institution_is_active = ?", true)
	}

	var institutions []model.InstitutionModel
	if err := q.Order("institution_name ASC").Find(&institutions).Error; err != nil {
		log.Printf("[ERROR] list institutions: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data institusi")
	}

	return helper.JsonOK(c, "Berhasil mengambil data institusi", dto.ToInstitutionResponseList(institutions))
}

// ➕ POST /api/a/institutions
func (ctrl *InstitutionController) Create(c *fiber.Ctx) error {
	var req dto.CreateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	inst := req.ToModel()
	if err := ctrl.DB.Create(inst).Error; err != nil {
		log.Printf("[ERROR] create institution: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat institusi")
	}

	log.Printf("[SUCCESS] institution %s created (%s)", inst.InstitutionID, inst.InstitutionName)
	return helper.JsonCreated(c, "Institusi berhasil dibuat", dto.ToInstitutionResponse(inst))
}

// ✏️ PATCH /api/a/institutions/:id
func (ctrl *InstitutionController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID institusi tidak valid")
	}

	var req dto.UpdateInstitutionRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var inst model.InstitutionModel
	if err := ctrl.DB.First(&inst, "institution_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Institusi tidak ditemukan")
		}
		log.Printf("[ERROR] get institution %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data institusi")
	}

	req.ApplyTo(&inst)
	if err := ctrl.DB.Save(&inst).Error; err != nil {
		log.Printf("[ERROR] update institution %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui institusi")
	}

	return helper.JsonUpdated(c, "Institusi berhasil diperbarui", dto.ToInstitutionResponse(&inst))
}
