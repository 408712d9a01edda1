package controller

import (
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/configs"
	"beasiswaku_backend/internals/features/fellowship/interviewers/dto"
	"beasiswaku_backend/internals/features/fellowship/interviewers/model"
	notifModel "beasiswaku_backend/internals/features/home/notifications/model"
	helper "beasiswaku_backend/internals/helpers"
)

type InterviewerAdminController struct {
	DB *gorm.DB
}

func NewInterviewerAdminController(db *gorm.DB) *InterviewerAdminController {
	return &InterviewerAdminController{DB: db}
}

func portalLink(token string) string {
	return fmt.Sprintf("%s/api/interview/%s/applications", configs.PortalBaseURL, token)
}

// 📄 GET /api/a/interviewers?year=
func (ctrl *InterviewerAdminController) List(c *fiber.Ctx) error {
	q := ctrl.DB.Model(&model.InterviewerModel{})
	if year := c.QueryInt("year"); year != 0 {
		q = q.Where("interviewer_year = ?", year)
	}

	var interviewers []model.InterviewerModel
	if err := q.Order("interviewer_name ASC").Find(&interviewers).Error; err != nil {
		log.Printf("[ERROR] list interviewers: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data interviewer")
	}

	// Token tidak ikut keluar di listing (json:"-" di model, DTO tanpa field token).
	return helper.JsonOK(c, "Berhasil mengambil data interviewer", dto.ToInterviewerResponseList(interviewers))
}

// ➕ POST /api/a/interviewers
// Token magic link di-generate di sini dan HANYA dikembalikan pada response ini.
func (ctrl *InterviewerAdminController) Create(c *fiber.Ctx) error {
	var req dto.CreateInterviewerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	token, err := helper.GenerateAccessToken()
	if err != nil {
		log.Printf("[ERROR] generate access token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token akses")
	}

	now := time.Now()
	iv := &model.InterviewerModel{
		InterviewerYear:          req.InterviewerYear,
		InterviewerName:          req.InterviewerName,
		InterviewerEmail:         req.InterviewerEmail,
		InterviewerInstitution:   req.InterviewerInstitution,
		InterviewerSpecialties:   req.InterviewerSpecialties,
		InterviewerAccessToken:   token,
		InterviewerTokenIssuedAt: now,
		InterviewerIsActive:      true,
	}
	if req.TokenValidDays != nil {
		expires := now.AddDate(0, 0, *req.TokenValidDays)
		iv.InterviewerTokenExpiresAt = &expires
	}

	if err := ctrl.DB.Create(iv).Error; err != nil {
		log.Printf("[ERROR] create interviewer: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat interviewer")
	}

	log.Printf("[SUCCESS] interviewer %s created (%s, year %d)", iv.InterviewerID, iv.InterviewerEmail, iv.InterviewerYear)
	return helper.JsonCreated(c, "Interviewer berhasil dibuat", dto.ToInterviewerWithTokenResponse(iv, portalLink(token)))
}

// ✏️ PATCH /api/a/interviewers/:id
func (ctrl *InterviewerAdminController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID interviewer tidak valid")
	}

	var req dto.UpdateInterviewerRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var iv model.InterviewerModel
	if err := ctrl.DB.First(&iv, "interviewer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Interviewer tidak ditemukan")
		}
		log.Printf("[ERROR] get interviewer %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data interviewer")
	}

	req.ApplyTo(&iv)
	if err := ctrl.DB.Save(&iv).Error; err != nil {
		log.Printf("[ERROR] update interviewer %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui interviewer")
	}

	return helper.JsonUpdated(c, "Interviewer berhasil diperbarui", dto.ToInterviewerResponse(&iv))
}

// 🔄 POST /api/a/interviewers/:id/regenerate-token
// Token lama langsung tidak berlaku (kolomnya ditimpa).
func (ctrl *InterviewerAdminController) RegenerateToken(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID interviewer tidak valid")
	}

	var iv model.InterviewerModel
	if err := ctrl.DB.First(&iv, "interviewer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Interviewer tidak ditemukan")
		}
		log.Printf("[ERROR] get interviewer %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data interviewer")
	}

	token, err := helper.GenerateAccessToken()
	if err != nil {
		log.Printf("[ERROR] generate access token: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat token akses")
	}

	now := time.Now()
	iv.InterviewerAccessToken = token
	iv.InterviewerTokenIssuedAt = now
	iv.InterviewerTokenExpiresAt = nil
	if err := ctrl.DB.Save(&iv).Error; err != nil {
		log.Printf("[ERROR] regenerate token %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui token akses")
	}

	log.Printf("[SUCCESS] interviewer %s token regenerated", iv.InterviewerID)
	return helper.JsonUpdated(c, "Token akses berhasil diperbarui", dto.ToInterviewerWithTokenResponse(&iv, portalLink(token)))
}

// ✉️ POST /api/a/interviewers/:id/send-access-link
// Menulis record notifikasi berisi magic link; pengiriman e-mail
// dilakukan notifier eksternal yang membaca tabel notifications.
func (ctrl *InterviewerAdminController) SendAccessLink(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID interviewer tidak valid")
	}

	var iv model.InterviewerModel
	if err := ctrl.DB.First(&iv, "interviewer_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Interviewer tidak ditemukan")
		}
		log.Printf("[ERROR] get interviewer %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data interviewer")
	}
	if !iv.InterviewerIsActive {
		return helper.JsonError(c, fiber.StatusBadRequest, "Interviewer sudah dinonaktifkan")
	}

	link := portalLink(iv.InterviewerAccessToken)
	notif := &notifModel.NotificationModel{
		NotificationTitle:         "Tautan akses penilaian wawancara",
		NotificationBody:          fmt.Sprintf("Halo %s, silakan akses portal penilaian melalui tautan berikut: %s", iv.InterviewerName, link),
		NotificationKind:          notifModel.KindAccessLink,
		NotificationInterviewerID: &iv.InterviewerID,
		NotificationTags:          []string{"interviewer", "access-link"},
	}
	if err := ctrl.DB.Create(notif).Error; err != nil {
		log.Printf("[ERROR] create access-link notification %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat notifikasi tautan akses")
	}

	log.Printf("[SUCCESS] access link queued for interviewer %s (%s)", iv.InterviewerID, iv.InterviewerEmail)
	return helper.JsonOK(c, "Tautan akses berhasil diantrikan", fiber.Map{
		"notification_id": notif.NotificationID,
		"interviewer_id":  iv.InterviewerID,
	})
}

// 🗑 POST /api/a/interviewers/:id/deactivate
// Nonaktif, bukan hard delete: token langsung berhenti bekerja
// karena resolve token memfilter interviewer_is_active.
func (ctrl *InterviewerAdminController) Deactivate(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID interviewer tidak valid")
	}

	now := time.Now()
	res := ctrl.DB.Model(&model.InterviewerModel{}).
		Where("interviewer_id = ?", id).
		Updates(map[string]interface{}{
			"interviewer_is_active":      false,
			"interviewer_deactivated_at": now,
		})
	if res.Error != nil {
		log.Printf("[ERROR] deactivate interviewer %s: %v", id, res.Error)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menonaktifkan interviewer")
	}
	if res.RowsAffected == 0 {
		return helper.JsonError(c, fiber.StatusNotFound, "Interviewer tidak ditemukan")
	}

	log.Printf("[SUCCESS] interviewer %s deactivated", id)
	return helper.JsonDeleted(c, "Interviewer berhasil dinonaktifkan", fiber.Map{"interviewer_id": id})
}
