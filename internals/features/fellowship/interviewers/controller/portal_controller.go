package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	evalModel "beasiswaku_backend/internals/features/fellowship/evaluations/model"
	scoreService "beasiswaku_backend/internals/features/fellowship/evaluations/service"
	"beasiswaku_backend/internals/features/fellowship/interviewers/dto"
	"beasiswaku_backend/internals/features/fellowship/interviewers/model"
	"beasiswaku_backend/internals/features/fellowship/interviewers/service"
	helper "beasiswaku_backend/internals/helpers"
	interviewerMw "beasiswaku_backend/internals/middlewares/interviewer"
)

// PortalController: surface penilaian untuk interviewer eksternal.
// Semua handler di-guard TokenMiddleware; identitas diambil dari Locals,
// tidak pernah dari body request.
type PortalController struct {
	DB     *gorm.DB
	Portal *service.PortalService
	Scores *scoreService.ScoreService
}

func NewPortalController(db *gorm.DB) *PortalController {
	return &PortalController{
		DB:     db,
		Portal: service.NewPortalService(db),
		Scores: scoreService.NewScoreService(db),
	}
}

func currentInterviewer(c *fiber.Ctx) (*model.InterviewerModel, error) {
	iv, ok := c.Locals(interviewerMw.LocInterviewer).(*model.InterviewerModel)
	if !ok || iv == nil {
		return nil, model.ErrAccessDenied
	}
	return iv, nil
}

// 📄 GET /api/interview/:token/applications
func (ctrl *PortalController) ListAssigned(c *fiber.Ctx) error {
	iv, err := currentInterviewer(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Akses ditolak")
	}

	assigned, criteria, err := ctrl.Portal.ListAssigned(iv)
	if err != nil {
		log.Printf("[ERROR] portal list assigned %s: %v", iv.InterviewerID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil daftar aplikasi")
	}

	return helper.JsonOK(c, "Berhasil mengambil daftar aplikasi", fiber.Map{
		"interviewer_name": iv.InterviewerName,
		"year":             iv.InterviewerYear,
		"applications":     assigned,
		"criteria":         criteria,
	})
}

// 🔍 GET /api/interview/:token/applications/:id
func (ctrl *PortalController) GetApplication(c *fiber.Ctx) error {
	iv, err := currentInterviewer(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Akses ditolak")
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		// ID rusak dijawab sama dengan out-of-scope: jangan beri sinyal apa pun.
		return helper.JsonError(c, fiber.StatusUnauthorized, "Akses ditolak")
	}

	app, err := ctrl.Portal.GetScopedApplication(iv, appID)
	if err != nil {
		if errors.Is(err, model.ErrAccessDenied) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Akses ditolak")
		}
		log.Printf("[ERROR] portal get application %s: %v", appID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data aplikasi")
	}

	var myScores []evalModel.CriterionScoreModel
	if err := ctrl.DB.
		Where("criterion_score_application_id = ? AND criterion_score_interviewer_id = ?", app.ApplicationID, iv.InterviewerID).
		Find(&myScores).Error; err != nil {
		log.Printf("[ERROR] portal my scores %s: %v", appID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil skor")
	}

	return helper.JsonOK(c, "Berhasil mengambil data aplikasi", fiber.Map{
		"application": app,
		"my_scores":   myScores,
	})
}

// ➕ POST /api/interview/:token/applications/:id/scores
// Upsert skor per-kriteria milik interviewer ini; (app, criterion, interviewer)
// unik, jadi submit ulang menimpa skor sebelumnya.
func (ctrl *PortalController) SubmitScore(c *fiber.Ctx) error {
	iv, err := currentInterviewer(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Akses ditolak")
	}

	appID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Akses ditolak")
	}

	var req dto.SubmitCriterionScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	// Scope dulu, baru tulis: aplikasi dan kriteria harus milik tahun interviewer.
	app, err := ctrl.Portal.GetScopedApplication(iv, appID)
	if err != nil {
		if errors.Is(err, model.ErrAccessDenied) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Akses ditolak")
		}
		log.Printf("[ERROR] portal scope application %s: %v", appID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan skor")
	}
	crit, err := ctrl.Portal.GetScopedCriterion(iv, req.CriterionID)
	if err != nil {
		if errors.Is(err, model.ErrAccessDenied) {
			return helper.JsonError(c, fiber.StatusUnauthorized, "Akses ditolak")
		}
		log.Printf("[ERROR] portal scope criterion %s: %v", req.CriterionID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan skor")
	}

	if err := ctrl.Scores.SubmitCriterionScore(app.ApplicationID, crit.CriterionID, iv.InterviewerID, *req.Score); err != nil {
		var oor *scoreService.ScoreOutOfRangeError
		if errors.As(err, &oor) {
			return helper.JsonValidationError(c, map[string][]string{
				"score": {oor.Error()},
			})
		}
		log.Printf("[ERROR] portal submit score app=%s criterion=%s: %v", appID, req.CriterionID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan skor")
	}

	log.Printf("[SUCCESS] portal score upserted app=%s criterion=%s interviewer=%s",
		app.ApplicationID, crit.CriterionID, iv.InterviewerID)
	return helper.JsonCreated(c, "Skor berhasil disimpan", fiber.Map{
		"application_id": app.ApplicationID,
		"criterion_id":   crit.CriterionID,
		"score":          *req.Score,
	})
}
