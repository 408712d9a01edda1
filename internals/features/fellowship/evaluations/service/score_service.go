// file: internals/features/fellowship/evaluations/service/score_service.go
package service

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appModel "beasiswaku_backend/internals/features/fellowship/applications/model"
	criterionModel "beasiswaku_backend/internals/features/fellowship/criteria/model"
	"beasiswaku_backend/internals/features/fellowship/evaluations/model"
)

var (
	ErrApplicationNotFound   = errors.New("aplikasi tidak ditemukan")
	ErrCriterionNotFound     = errors.New("kriteria tidak ditemukan")
	ErrCriterionYearMismatch = errors.New("kriteria bukan milik tahun program aplikasi")
)

// ScoreOutOfRangeError: skor di luar [0, max_points] kriteria.
type ScoreOutOfRangeError struct {
	Score     float64
	MaxPoints float64
}

func (e *ScoreOutOfRangeError) Error() string {
	return fmt.Sprintf("skor %.2f di luar rentang [0, %.2f]", e.Score, e.MaxPoints)
}

// BatchValidationError: satu atau lebih entri batch tidak valid.
// Batch bersifat all-or-nothing, jadi tidak ada entri yang tersimpan.
type BatchValidationError struct {
	Fields map[string][]string
}

func (e *BatchValidationError) Error() string {
	return fmt.Sprintf("batch tidak valid (%d entri bermasalah)", len(e.Fields))
}

// ScoreService: satu-satunya jalur tulis untuk ketiga flavor evaluasi.
// Setiap submit = upsert atomik + recompute field derived dalam SATU transaksi,
// sehingga skor aplikasi tidak pernah stale (atau setengah tertulis) bagi
// pembaca berikutnya.
type ScoreService struct {
	DB *gorm.DB
}

func NewScoreService(db *gorm.DB) *ScoreService {
	return &ScoreService{DB: db}
}

type SubmitEvaluationInput struct {
	ApplicationID uuid.UUID
	CriterionID   uuid.UUID
	Score         float64
	Notes         *string
	EvaluatorID   uuid.UUID
}

type BatchEntry struct {
	CriterionID uuid.UUID
	Score       float64
	Notes       *string
}

// SubmitEvaluation meng-upsert skor objektif internal untuk
// (application, criterion) lalu me-recompute skor derived.
func (s *ScoreService) SubmitEvaluation(in SubmitEvaluationInput) (*model.EvaluationModel, error) {
	var row model.EvaluationModel

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := findApplication(tx, in.ApplicationID)
		if err != nil {
			return err
		}
		crit, err := findCriterion(tx, in.CriterionID)
		if err != nil {
			return err
		}
		if crit.CriterionYear != app.ApplicationYear {
			return ErrCriterionYearMismatch
		}
		if in.Score < 0 || in.Score > crit.CriterionMaxPoints {
			return &ScoreOutOfRangeError{Score: in.Score, MaxPoints: crit.CriterionMaxPoints}
		}

		row = model.EvaluationModel{
			EvaluationApplicationID: in.ApplicationID,
			EvaluationCriterionID:   in.CriterionID,
			EvaluationScore:         in.Score,
			EvaluationNotes:         in.Notes,
			EvaluationEvaluatorID:   in.EvaluatorID,
		}
		// Upsert atomik: insert-or-update dalam satu statement,
		// menutup race dua request menulis key yang sama bersamaan.
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "evaluation_application_id"},
				{Name: "evaluation_criterion_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"evaluation_score",
				"evaluation_notes",
				"evaluation_evaluator_id",
				"evaluation_updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		return s.Recompute(tx, in.ApplicationID)
	})
	if err != nil {
		return nil, err
	}
	return &row, nil
}

// SubmitEvaluationBatch menerapkan upsert ke banyak kriteria sekaligus,
// all-or-nothing: satu entri invalid menolak seluruh batch.
func (s *ScoreService) SubmitEvaluationBatch(applicationID uuid.UUID, entries []BatchEntry, evaluatorID uuid.UUID) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := findApplication(tx, applicationID)
		if err != nil {
			return err
		}

		// Validasi SEMUA entri dulu, sebelum menulis apa pun.
		fieldErrors := map[string][]string{}
		for i, e := range entries {
			key := fmt.Sprintf("entries[%d]", i)
			crit, err := findCriterion(tx, e.CriterionID)
			if err != nil {
				fieldErrors[key] = append(fieldErrors[key], "criterion not found")
				continue
			}
			if crit.CriterionYear != app.ApplicationYear {
				fieldErrors[key] = append(fieldErrors[key], "criterion year mismatch")
				continue
			}
			if e.Score < 0 || e.Score > crit.CriterionMaxPoints {
				fieldErrors[key] = append(fieldErrors[key],
					fmt.Sprintf("score %.2f out of range [0, %.2f]", e.Score, crit.CriterionMaxPoints))
			}
		}
		if len(fieldErrors) > 0 {
			return &BatchValidationError{Fields: fieldErrors}
		}

		for _, e := range entries {
			row := model.EvaluationModel{
				EvaluationApplicationID: applicationID,
				EvaluationCriterionID:   e.CriterionID,
				EvaluationScore:         e.Score,
				EvaluationNotes:         e.Notes,
				EvaluationEvaluatorID:   evaluatorID,
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "evaluation_application_id"},
					{Name: "evaluation_criterion_id"},
				},
				DoUpdates: clause.AssignmentColumns([]string{
					"evaluation_score",
					"evaluation_notes",
					"evaluation_evaluator_id",
					"evaluation_updated_at",
				}),
			}).Create(&row).Error; err != nil {
				return err
			}
		}

		return s.Recompute(tx, applicationID)
	})
}

// SubmitInterviewScore meng-upsert skor interview holistik (flavor lama)
// untuk (application, interviewer). Skala tetap [0, 10].
func (s *ScoreService) SubmitInterviewScore(applicationID, interviewerID uuid.UUID, score float64, notes *string) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		if _, err := findApplication(tx, applicationID); err != nil {
			return err
		}
		if score < 0 || score > model.LegacyInterviewMaxScore {
			return &ScoreOutOfRangeError{Score: score, MaxPoints: model.LegacyInterviewMaxScore}
		}

		row := model.InterviewScoreModel{
			InterviewScoreApplicationID: applicationID,
			InterviewScoreInterviewerID: interviewerID,
			InterviewScoreScore:         score,
			InterviewScoreNotes:         notes,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "interview_score_application_id"},
				{Name: "interview_score_interviewer_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"interview_score_score",
				"interview_score_notes",
				"interview_score_updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		return s.Recompute(tx, applicationID)
	})
}

// SubmitCriterionScore meng-upsert skor per-kriteria dari interviewer
// eksternal (magic link) untuk (application, criterion, interviewer).
// Validasi scope tahun dilakukan caller (portal) — di sini divalidasi ulang
// terhadap tahun aplikasi supaya jalur internal pun konsisten.
func (s *ScoreService) SubmitCriterionScore(applicationID, criterionID, interviewerID uuid.UUID, score float64) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		app, err := findApplication(tx, applicationID)
		if err != nil {
			return err
		}
		crit, err := findCriterion(tx, criterionID)
		if err != nil {
			return err
		}
		if crit.CriterionYear != app.ApplicationYear {
			return ErrCriterionYearMismatch
		}
		if score < 0 || score > crit.CriterionMaxPoints {
			return &ScoreOutOfRangeError{Score: score, MaxPoints: crit.CriterionMaxPoints}
		}

		row := model.CriterionScoreModel{
			CriterionScoreApplicationID: applicationID,
			CriterionScoreCriterionID:   criterionID,
			CriterionScoreInterviewerID: interviewerID,
			CriterionScoreScore:         score,
		}
		if err := tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "criterion_score_application_id"},
				{Name: "criterion_score_criterion_id"},
				{Name: "criterion_score_interviewer_id"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"criterion_score_score",
				"criterion_score_updated_at",
			}),
		}).Create(&row).Error; err != nil {
			return err
		}

		// Skor eksternal tidak masuk objective_score (display-only aggregate),
		// tapi recompute tetap dipanggil: satu choke point untuk semua jalur tulis.
		return s.Recompute(tx, applicationID)
	})
}

// Recompute menghitung ulang ketiga field derived aplikasi:
//   objective_score  = Σ (evaluation.score × criterion.weight), kategori objective,
//                      kriteria aktif saja, bobot SAAT INI (bukan snapshot).
//   interview_score  = rata-rata interview_scores (0 kalau belum ada).
//   total_score      = objective + interview.
// Selalu dipanggil di dalam transaksi jalur tulis skor.
func (s *ScoreService) Recompute(tx *gorm.DB, applicationID uuid.UUID) error {
	var objective float64
	err := tx.Model(&model.EvaluationModel{}).
		Joins("JOIN criteria ON criteria.criterion_id = evaluations.evaluation_criterion_id").
		Where("evaluations.evaluation_application_id = ?", applicationID).
		Where("criteria.criterion_category = ?", criterionModel.CategoryObjective).
		Where("criteria.criterion_is_active = ?", true).
		Where("criteria.criterion_deleted_at IS NULL").
		Select("COALESCE(SUM(evaluations.evaluation_score * criteria.criterion_weight), 0)").
		Scan(&objective).Error
	if err != nil {
		return err
	}

	var interview float64
	err = tx.Model(&model.InterviewScoreModel{}).
		Where("interview_score_application_id = ?", applicationID).
		Select("COALESCE(AVG(interview_score_score), 0)").
		Scan(&interview).Error
	if err != nil {
		return err
	}

	res := tx.Model(&appModel.ApplicationModel{}).
		Where("application_id = ?", applicationID).
		Updates(map[string]interface{}{
			"application_objective_score": objective,
			"application_interview_score": interview,
			"application_total_score":     objective + interview,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrApplicationNotFound
	}
	return nil
}

// CriterionAverage: rata-rata skor eksternal per kriteria untuk satu aplikasi.
type CriterionAverage struct {
	CriterionID uuid.UUID `json:"criterion_id" gorm:"column:criterion_id"`
	Average     float64   `json:"average" gorm:"column:average"`
	Evaluators  int       `json:"evaluators" gorm:"column:evaluators"`
}

// ExternalCriterionAverages menghitung agregat display-only dari
// criterion_scores, untuk detail aplikasi dan renderer laporan.
func (s *ScoreService) ExternalCriterionAverages(applicationID uuid.UUID) ([]CriterionAverage, error) {
	var out []CriterionAverage
	err := s.DB.Model(&model.CriterionScoreModel{}).
		Where("criterion_score_application_id = ?", applicationID).
		Select("criterion_score_criterion_id AS criterion_id, AVG(criterion_score_score) AS average, COUNT(*) AS evaluators").
		Group("criterion_score_criterion_id").
		Scan(&out).Error
	return out, err
}

func findApplication(tx *gorm.DB, id uuid.UUID) (*appModel.ApplicationModel, error) {
	var app appModel.ApplicationModel
	if err := tx.First(&app, "application_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrApplicationNotFound
		}
		return nil, err
	}
	return &app, nil
}

func findCriterion(tx *gorm.DB, id uuid.UUID) (*criterionModel.CriterionModel, error) {
	var crit criterionModel.CriterionModel
	if err := tx.First(&crit, "criterion_id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCriterionNotFound
		}
		return nil, err
	}
	return &crit, nil
}
