package controller

import (
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"

	"beasiswaku_backend/internals/features/fellowship/applications/dto"
	"beasiswaku_backend/internals/features/fellowship/applications/model"
	criterionModel "beasiswaku_backend/internals/features/fellowship/criteria/model"
	evalModel "beasiswaku_backend/internals/features/fellowship/evaluations/model"
	scoreService "beasiswaku_backend/internals/features/fellowship/evaluations/service"
	helper "beasiswaku_backend/internals/helpers"
)

type ApplicationController struct {
	DB *gorm.DB
}

func NewApplicationController(db *gorm.DB) *ApplicationController {
	return &ApplicationController{DB: db}
}

// 📄 GET /api/a/applications?year=&status=&validity=&institution_id=
func (ctrl *ApplicationController) List(c *fiber.Ctx) error {
	year := c.QueryInt("year")
	if year == 0 {
		return helper.JsonError(c, fiber.StatusBadRequest, "Parameter year wajib diisi")
	}

	p := helper.ResolvePaging(c, 20, 100)

	q := ctrl.DB.Model(&model.ApplicationModel{}).
		Where("application_year = ?", year)

	if status := c.Query("status"); status != "" {
		q = q.Where("application_status = ?", status)
	}
	if validity := c.Query("validity"); validity != "" {
		q = q.Where("application_validity = ?", validity)
	}
	if instID := c.Query("institution_id"); instID != "" {
		id, err := uuid.Parse(instID)
		if err != nil {
			return helper.JsonError(c, fiber.StatusBadRequest, "institution_id tidak valid")
		}
		q = q.Where("application_institution_id = ?", id)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		log.Printf("[ERROR] count applications: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data aplikasi")
	}

	var apps []model.ApplicationModel
	if err := q.Order("application_candidate_no ASC").
		Offset(p.Offset).Limit(p.Limit).
		Find(&apps).Error; err != nil {
		log.Printf("[ERROR] list applications: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data aplikasi")
	}

	pagination := helper.BuildPaginationFromPage(total, p.Page, p.PerPage)
	return helper.JsonList(c, "Berhasil mengambil data aplikasi", dto.ToApplicationResponseList(apps), pagination)
}

// 🔍 GET /api/a/applications/:id
func (ctrl *ApplicationController) GetByID(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID aplikasi tidak valid")
	}

	var app model.ApplicationModel
	if err := ctrl.DB.First(&app, "application_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aplikasi tidak ditemukan")
		}
		log.Printf("[ERROR] get application %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data aplikasi")
	}

	return helper.JsonOK(c, "Berhasil mengambil data aplikasi", dto.ToApplicationResponse(&app))
}

// ➕ POST /api/a/applications
// Intake dari sistem pendaftaran: nomor kandidat di-generate di sini, bukan dikirim klien.
func (ctrl *ApplicationController) Create(c *fiber.Ctx) error {
	var req dto.CreateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	app := req.ToModel()

	if err := ctrl.DB.Transaction(func(tx *gorm.DB) error {
		if app.ApplicationInstitutionID != nil {
			var inst model.InstitutionModel
			if err := tx.First(&inst, "institution_id = ?", *app.ApplicationInstitutionID).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return fiber.NewError(fiber.StatusBadRequest, "Institusi tidak ditemukan")
				}
				return err
			}
		}

		candidateNo, err := model.MintCandidateNo(tx, app.ApplicationYear)
		if err != nil {
			return err
		}
		app.ApplicationCandidateNo = candidateNo

		return tx.Create(app).Error
	}); err != nil {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return helper.JsonError(c, fe.Code, fe.Message)
		}
		log.Printf("[ERROR] create application: %v", err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal membuat aplikasi")
	}

	log.Printf("[SUCCESS] application %s created (candidate %s, year %d)",
		app.ApplicationID, app.ApplicationCandidateNo, app.ApplicationYear)
	return helper.JsonCreated(c, "Aplikasi berhasil dibuat", dto.ToApplicationResponse(app))
}

// ✏️ PATCH /api/a/applications/:id
func (ctrl *ApplicationController) Update(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID aplikasi tidak valid")
	}

	var req dto.UpdateApplicationRequest
	if err := c.BodyParser(&req); err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "Format request tidak valid")
	}
	if err := helper.ValidateStruct(&req); err != nil {
		return helper.ValidationError(c, err)
	}

	var app model.ApplicationModel
	if err := ctrl.DB.First(&app, "application_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aplikasi tidak ditemukan")
		}
		log.Printf("[ERROR] get application %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data aplikasi")
	}

	req.ApplyTo(&app)
	if err := ctrl.DB.Save(&app).Error; err != nil {
		log.Printf("[ERROR] update application %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal memperbarui aplikasi")
	}

	return helper.JsonUpdated(c, "Aplikasi berhasil diperbarui", dto.ToApplicationResponse(&app))
}

type scoreBreakdownItem struct {
	CriterionID          uuid.UUID `json:"criterion_id"`
	CriterionName        string    `json:"criterion_name"`
	CriterionDisplayName string    `json:"criterion_display_name"`
	CriterionWeight      float64   `json:"criterion_weight"`
	CriterionMaxPoints   float64   `json:"criterion_max_points"`
	EvaluationScore      *float64  `json:"evaluation_score"`
	WeightedScore        *float64  `json:"weighted_score"`
	ExternalAverage      *float64  `json:"external_average"`
	ExternalEvaluators   int       `json:"external_evaluators"`
}

type interviewScoreItem struct {
	InterviewerID uuid.UUID `json:"interviewer_id"`
	Score         float64   `json:"score"`
	Notes         *string   `json:"notes"`
}

// 🔍 GET /api/a/applications/:id/scores
// Rincian skor per kriteria + skor wawancara + agregat eksternal (display-only).
func (ctrl *ApplicationController) GetScores(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return helper.JsonError(c, fiber.StatusBadRequest, "ID aplikasi tidak valid")
	}

	var app model.ApplicationModel
	if err := ctrl.DB.First(&app, "application_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return helper.JsonError(c, fiber.StatusNotFound, "Aplikasi tidak ditemukan")
		}
		log.Printf("[ERROR] get application %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil data aplikasi")
	}

	var criteria []criterionModel.CriterionModel
	if err := criterionModel.ActiveCriteria(ctrl.DB, app.ApplicationYear).Find(&criteria).Error; err != nil {
		log.Printf("[ERROR] list criteria year %d: %v", app.ApplicationYear, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil kriteria")
	}

	var evals []evalModel.EvaluationModel
	if err := ctrl.DB.
		Where("evaluation_application_id = ?", id).
		Find(&evals).Error; err != nil {
		log.Printf("[ERROR] list evaluations %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil evaluasi")
	}
	evalByCriterion := make(map[uuid.UUID]*evalModel.EvaluationModel, len(evals))
	for i := range evals {
		evalByCriterion[evals[i].EvaluationCriterionID] = &evals[i]
	}

	svc := scoreService.NewScoreService(ctrl.DB)
	externalAvgs, err := svc.ExternalCriterionAverages(id)
	if err != nil {
		log.Printf("[ERROR] external averages %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil agregat eksternal")
	}
	externalByCriterion := make(map[uuid.UUID]scoreService.CriterionAverage, len(externalAvgs))
	for _, avg := range externalAvgs {
		externalByCriterion[avg.CriterionID] = avg
	}

	items := make([]scoreBreakdownItem, 0, len(criteria))
	for i := range criteria {
		cr := &criteria[i]
		item := scoreBreakdownItem{
			CriterionID:          cr.CriterionID,
			CriterionName:        cr.CriterionName,
			CriterionDisplayName: cr.CriterionDisplayName,
			CriterionWeight:      cr.CriterionWeight,
			CriterionMaxPoints:   cr.CriterionMaxPoints,
		}
		if ev, ok := evalByCriterion[cr.CriterionID]; ok {
			score := ev.EvaluationScore
			weighted := score * cr.CriterionWeight
			item.EvaluationScore = &score
			item.WeightedScore = &weighted
		}
		if avg, ok := externalByCriterion[cr.CriterionID]; ok {
			average := avg.Average
			item.ExternalAverage = &average
			item.ExternalEvaluators = avg.Evaluators
		}
		items = append(items, item)
	}

	var interviews []evalModel.InterviewScoreModel
	if err := ctrl.DB.
		Where("interview_score_application_id = ?", id).
		Order("interview_score_created_at ASC").
		Find(&interviews).Error; err != nil {
		log.Printf("[ERROR] list interview scores %s: %v", id, err)
		return helper.JsonError(c, fiber.StatusInternalServerError, "Gagal mengambil skor wawancara")
	}
	interviewItems := make([]interviewScoreItem, 0, len(interviews))
	for i := range interviews {
		interviewItems = append(interviewItems, interviewScoreItem{
			InterviewerID: interviews[i].InterviewScoreInterviewerID,
			Score:         interviews[i].InterviewScoreScore,
			Notes:         interviews[i].InterviewScoreNotes,
		})
	}

	return helper.JsonOK(c, "Berhasil mengambil rincian skor", fiber.Map{
		"application":      dto.ToApplicationResponse(&app),
		"criteria":         items,
		"interview_scores": interviewItems,
	})
}
