package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appModel "beasiswaku_backend/internals/features/fellowship/applications/model"
	criterionModel "beasiswaku_backend/internals/features/fellowship/criteria/model"
	"beasiswaku_backend/internals/features/fellowship/evaluations/model"
	"beasiswaku_backend/internals/testutil"
)

const testYear = 2026

func seedApplication(t *testing.T, db *gorm.DB, candidateNo string) *appModel.ApplicationModel {
	t.Helper()
	validity := appModel.ValidityValid
	now := time.Now()
	app := &appModel.ApplicationModel{
		ApplicationYear:        testYear,
		ApplicationCandidateNo: candidateNo,
		ApplicationStatus:      appModel.StatusSubmitted,
		ApplicationValidity:    &validity,
		ApplicationSubmittedAt: &now,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func seedCriterion(t *testing.T, db *gorm.DB, name string, maxPoints, weight float64, category string) *criterionModel.CriterionModel {
	t.Helper()
	crit := &criterionModel.CriterionModel{
		CriterionYear:        testYear,
		CriterionName:        name,
		CriterionDisplayName: name,
		CriterionMaxPoints:   maxPoints,
		CriterionWeight:      weight,
		CriterionCategory:    category,
		CriterionIsActive:    true,
	}
	require.NoError(t, db.Create(crit).Error)
	return crit
}

func reloadApp(t *testing.T, db *gorm.DB, id uuid.UUID) *appModel.ApplicationModel {
	t.Helper()
	var app appModel.ApplicationModel
	require.NoError(t, db.First(&app, "application_id = ?", id).Error)
	return &app
}

func TestSubmitEvaluationRecomputesDerivedScores(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "101")
	gpa := seedCriterion(t, db, "IPK", 10, 0.30, criterionModel.CategoryObjective)
	essay := seedCriterion(t, db, "Esai", 10, 0.25, criterionModel.CategoryObjective)
	evaluator := uuid.New()

	_, err := svc.SubmitEvaluation(SubmitEvaluationInput{
		ApplicationID: app.ApplicationID,
		CriterionID:   gpa.CriterionID,
		Score:         8,
		EvaluatorID:   evaluator,
	})
	require.NoError(t, err)
	_, err = svc.SubmitEvaluation(SubmitEvaluationInput{
		ApplicationID: app.ApplicationID,
		CriterionID:   essay.CriterionID,
		Score:         6,
		EvaluatorID:   evaluator,
	})
	require.NoError(t, err)

	got := reloadApp(t, db, app.ApplicationID)
	assert.InDelta(t, 3.9, got.ApplicationObjectiveScore, 1e-9) // 8*0.30 + 6*0.25
	assert.InDelta(t, 0, got.ApplicationInterviewScore, 1e-9)
	assert.InDelta(t, 3.9, got.ApplicationTotalScore, 1e-9)

	// Dua skor interview → rata-rata ikut total.
	require.NoError(t, svc.SubmitInterviewScore(app.ApplicationID, uuid.New(), 7, nil))
	require.NoError(t, svc.SubmitInterviewScore(app.ApplicationID, uuid.New(), 9, nil))

	got = reloadApp(t, db, app.ApplicationID)
	assert.InDelta(t, 8, got.ApplicationInterviewScore, 1e-9) // (7+9)/2
	assert.InDelta(t, 11.9, got.ApplicationTotalScore, 1e-9)
}

func TestSubmitEvaluationUpsertsSameKey(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "102")
	crit := seedCriterion(t, db, "IPK", 10, 1, criterionModel.CategoryObjective)

	for _, score := range []float64{5, 7.5} {
		_, err := svc.SubmitEvaluation(SubmitEvaluationInput{
			ApplicationID: app.ApplicationID,
			CriterionID:   crit.CriterionID,
			Score:         score,
			EvaluatorID:   uuid.New(),
		})
		require.NoError(t, err)
	}

	var count int64
	require.NoError(t, db.Model(&model.EvaluationModel{}).
		Where("evaluation_application_id = ?", app.ApplicationID).
		Count(&count).Error)
	assert.Equal(t, int64(1), count, "submit ulang harus menimpa, bukan menambah baris")

	got := reloadApp(t, db, app.ApplicationID)
	assert.InDelta(t, 7.5, got.ApplicationObjectiveScore, 1e-9)
}

func TestSubmitEvaluationRejectsOutOfRange(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "103")
	crit := seedCriterion(t, db, "Esai", 5, 1, criterionModel.CategoryObjective)

	_, err := svc.SubmitEvaluation(SubmitEvaluationInput{
		ApplicationID: app.ApplicationID,
		CriterionID:   crit.CriterionID,
		Score:         5.5,
		EvaluatorID:   uuid.New(),
	})
	var oor *ScoreOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.InDelta(t, 5, oor.MaxPoints, 1e-9)

	var count int64
	require.NoError(t, db.Model(&model.EvaluationModel{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestSubmitEvaluationRejectsYearMismatch(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "104")
	other := &criterionModel.CriterionModel{
		CriterionYear:        testYear + 1,
		CriterionName:        "IPK",
		CriterionDisplayName: "IPK",
		CriterionMaxPoints:   10,
		CriterionWeight:      1,
		CriterionCategory:    criterionModel.CategoryObjective,
		CriterionIsActive:    true,
	}
	require.NoError(t, db.Create(other).Error)

	_, err := svc.SubmitEvaluation(SubmitEvaluationInput{
		ApplicationID: app.ApplicationID,
		CriterionID:   other.CriterionID,
		Score:         8,
		EvaluatorID:   uuid.New(),
	})
	assert.ErrorIs(t, err, ErrCriterionYearMismatch)
}

func TestSubmitEvaluationBatchAllOrNothing(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "105")
	gpa := seedCriterion(t, db, "IPK", 10, 0.30, criterionModel.CategoryObjective)
	essay := seedCriterion(t, db, "Esai", 5, 0.25, criterionModel.CategoryObjective)

	err := svc.SubmitEvaluationBatch(app.ApplicationID, []BatchEntry{
		{CriterionID: gpa.CriterionID, Score: 8},
		{CriterionID: essay.CriterionID, Score: 9}, // di atas max_points=5
	}, uuid.New())

	var batchErr *BatchValidationError
	require.ErrorAs(t, err, &batchErr)
	assert.Contains(t, batchErr.Fields, "entries[1]")

	// Entri valid pun tidak boleh tersimpan.
	var count int64
	require.NoError(t, db.Model(&model.EvaluationModel{}).Count(&count).Error)
	assert.Zero(t, count)

	got := reloadApp(t, db, app.ApplicationID)
	assert.Zero(t, got.ApplicationObjectiveScore)
}

func TestSubmitEvaluationBatchHappyPath(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "106")
	gpa := seedCriterion(t, db, "IPK", 10, 0.30, criterionModel.CategoryObjective)
	essay := seedCriterion(t, db, "Esai", 10, 0.25, criterionModel.CategoryObjective)

	require.NoError(t, svc.SubmitEvaluationBatch(app.ApplicationID, []BatchEntry{
		{CriterionID: gpa.CriterionID, Score: 8},
		{CriterionID: essay.CriterionID, Score: 6},
	}, uuid.New()))

	got := reloadApp(t, db, app.ApplicationID)
	assert.InDelta(t, 3.9, got.ApplicationObjectiveScore, 1e-9)
}

func TestRecomputeSkipsInactiveAndSubjectiveCriteria(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "107")
	gpa := seedCriterion(t, db, "IPK", 10, 0.30, criterionModel.CategoryObjective)
	motivation := seedCriterion(t, db, "Motivasi", 10, 0.50, criterionModel.CategorySubjective)
	essay := seedCriterion(t, db, "Esai", 10, 0.25, criterionModel.CategoryObjective)
	evaluator := uuid.New()

	for _, in := range []SubmitEvaluationInput{
		{ApplicationID: app.ApplicationID, CriterionID: gpa.CriterionID, Score: 8, EvaluatorID: evaluator},
		{ApplicationID: app.ApplicationID, CriterionID: motivation.CriterionID, Score: 10, EvaluatorID: evaluator},
		{ApplicationID: app.ApplicationID, CriterionID: essay.CriterionID, Score: 6, EvaluatorID: evaluator},
	} {
		_, err := svc.SubmitEvaluation(in)
		require.NoError(t, err)
	}

	// Subjektif tidak pernah masuk objective_score.
	got := reloadApp(t, db, app.ApplicationID)
	assert.InDelta(t, 3.9, got.ApplicationObjectiveScore, 1e-9)

	// Nonaktifkan kriteria esai lalu recompute: kontribusinya hilang.
	require.NoError(t, db.Model(&criterionModel.CriterionModel{}).
		Where("criterion_id = ?", essay.CriterionID).
		Update("criterion_is_active", false).Error)
	require.NoError(t, svc.Recompute(db, app.ApplicationID))

	got = reloadApp(t, db, app.ApplicationID)
	assert.InDelta(t, 2.4, got.ApplicationObjectiveScore, 1e-9) // hanya 8*0.30
}

func TestSubmitInterviewScoreRejectsAboveLegacyMax(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "108")

	err := svc.SubmitInterviewScore(app.ApplicationID, uuid.New(), 10.5, nil)
	var oor *ScoreOutOfRangeError
	require.ErrorAs(t, err, &oor)
	assert.InDelta(t, model.LegacyInterviewMaxScore, oor.MaxPoints, 1e-9)
}

func TestSubmitCriterionScoreStaysOutOfObjective(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "109")
	crit := seedCriterion(t, db, "Komunikasi", 10, 1, criterionModel.CategoryObjective)

	require.NoError(t, svc.SubmitCriterionScore(app.ApplicationID, crit.CriterionID, uuid.New(), 8))
	require.NoError(t, svc.SubmitCriterionScore(app.ApplicationID, crit.CriterionID, uuid.New(), 6))

	got := reloadApp(t, db, app.ApplicationID)
	assert.Zero(t, got.ApplicationObjectiveScore, "skor eksternal display-only, bukan bagian objective")

	avgs, err := svc.ExternalCriterionAverages(app.ApplicationID)
	require.NoError(t, err)
	require.Len(t, avgs, 1)
	assert.Equal(t, crit.CriterionID, avgs[0].CriterionID)
	assert.InDelta(t, 7, avgs[0].Average, 1e-9)
	assert.Equal(t, 2, avgs[0].Evaluators)
}

func TestSubmitCriterionScoreUpsertsPerInterviewer(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	app := seedApplication(t, db, "110")
	crit := seedCriterion(t, db, "Komunikasi", 10, 1, criterionModel.CategoryObjective)
	interviewer := uuid.New()

	require.NoError(t, svc.SubmitCriterionScore(app.ApplicationID, crit.CriterionID, interviewer, 4))
	require.NoError(t, svc.SubmitCriterionScore(app.ApplicationID, crit.CriterionID, interviewer, 9))

	var rows []model.CriterionScoreModel
	require.NoError(t, db.Find(&rows).Error)
	require.Len(t, rows, 1)
	assert.InDelta(t, 9, rows[0].CriterionScoreScore, 1e-9)
}

func TestSubmitEvaluationUnknownApplication(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewScoreService(db)

	crit := seedCriterion(t, db, "IPK", 10, 1, criterionModel.CategoryObjective)
	_, err := svc.SubmitEvaluation(SubmitEvaluationInput{
		ApplicationID: uuid.New(),
		CriterionID:   crit.CriterionID,
		Score:         5,
		EvaluatorID:   uuid.New(),
	})
	assert.ErrorIs(t, err, ErrApplicationNotFound)
}
