package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/features/fellowship/evaluations/dto"
	"beasiswaku_backend/internals/features/fellowship/evaluations/model"
	"beasiswaku_backend/internals/features/fellowship/evaluations/service"
	helper "beasiswaku_backend/internals/helpers"
)

type EvaluationController struct {
	DB      *gorm.DB
	Service *service.ScoreService
}

func NewEvaluationController(db *gorm.DB) *EvaluationController {
	return &EvaluationController{DB: db, Service: service.NewScoreService(db)}
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	raw, _ := c.Locals("user_id").(string)
	return uuid.Parse(raw)
}

// Pemetaan error service → envelope HTTP, dipakai semua handler submit.
func scoreServiceError(c *fiber.Ctx, err error) error {
	var oor *service.ScoreOutOfRangeError
	var batch *service.BatchValidationError
	switch {
	case errors.Is(err, service.ErrApplicationNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Aplikasi tidak ditemukan")
	case errors.Is(err, service.ErrCriterionNotFound):
		return helper.JsonError(c, fiber.StatusNotFound, "Kriteria tidak ditemukan")
	case errors.Is(err, service.ErrCriterionYearMismatch):
		return helper.JsonError(c, fiber.StatusBadRequest, "Kriteria bukan milik tahun program aplikasi")
	case errors.As(err, &oor):
		return helper.JsonValidationError(c, map[string][]string{
			"score": {oor.Error()},
		})
	case errors.As(err, &batch):
		return helper.JsonValidationError(c, batch.Fields)
	default:
		log.Printf("[ERROR] score submit: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal menyimpan skor")
	}
}

// 📄 GET /api/a/evaluations?application_id=
func (ctrl *EvaluationController) ListByApplication(c *fiber.Ctx) error {
	appID, err := uuid.Parse(c.Query("application_id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter application_id wajib diisi")
	}

	var evals []model.EvaluationModel
	if err := ctrl.DB.
		Where("evaluation_application_id = ?", appID).
		Order("evaluation_created_at ASC").
		Find(&evals).Error; err != nil {
		log.Printf("[ERROR] list evaluations %s: %v", appID, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil evaluasi")
	}

	return helper.JsonOK(c, "Berhasil mengambil evaluasi", dto.ToEvaluationResponseList(evals))
}

// ➕ POST /api/a/evaluations
// Upsert: submit ulang (application, criterion) yang sama menimpa skor lama.
func (ctrl *EvaluationController) Submit(c *fiber.Ctx) error {
	var req dto.SubmitEvaluationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	evaluatorID, err := currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	row, err := ctrl.Service.SubmitEvaluation(req.ToInput(evaluatorID))
	if err != nil {
		return scoreServiceError(c, err)
	}

	log.Printf("[SUCCESS] evaluation upserted app=%s criterion=%s score=%.2f",
		row.EvaluationApplicationID, row.EvaluationCriterionID, row.EvaluationScore)
	return helper.JsonCreated(c, "Skor berhasil disimpan", dto.ToEvaluationResponse(row))
}

// ➕ POST /api/a/evaluations/batch
// All-or-nothing: validasi semua entri dulu, satu transaksi untuk semuanya.
func (ctrl *EvaluationController) SubmitBatch(c *fiber.Ctx) error {
	var req dto.SubmitEvaluationBatchRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	evaluatorID, err := currentUserID(c)
	if err != nil {
		return helper.JsonError(c, fiber.StatusUnauthorized, "Unauthorized")
	}

	if err := ctrl.Service.SubmitEvaluationBatch(req.ApplicationID, req.ToEntries(), evaluatorID); err != nil {
		return scoreServiceError(c, err)
	}

	log.Printf("[SUCCESS] evaluation batch upserted app=%s entries=%d", req.ApplicationID, len(req.Entries))
	return helper.JsonCreated(c, "Batch skor berhasil disimpan", fiber.Map{
		"application_id": req.ApplicationID,
		"entries":        len(req.Entries),
	})
}

// ➕ POST /api/a/interview-scores
// Flavor lama: satu skor holistik [0, 10] per (application, interviewer).
func (ctrl *EvaluationController) SubmitInterview(c *fiber.Ctx) error {
	var req dto.SubmitInterviewScoreRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	if err := ctrl.Service.SubmitInterviewScore(req.ApplicationID, req.InterviewerID, *req.Score, req.Notes); err != nil {
		return scoreServiceError(c, err)
	}

	log.Printf("[SUCCESS] interview score upserted app=%s interviewer=%s", req.ApplicationID, req.InterviewerID)
	return helper.JsonCreated(c, "Skor wawancara berhasil disimpan", fiber.Map{
		"application_id": req.ApplicationID,
		"interviewer_id": req.InterviewerID,
	})
}
