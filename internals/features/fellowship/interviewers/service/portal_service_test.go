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
	"beasiswaku_backend/internals/features/fellowship/interviewers/model"
	"beasiswaku_backend/internals/testutil"
)

const testYear = 2026

func seedInterviewer(t *testing.T, db *gorm.DB, token string, mutate func(*model.InterviewerModel)) *model.InterviewerModel {
	t.Helper()
	iv := &model.InterviewerModel{
		InterviewerYear:          testYear,
		InterviewerName:          "Dr. Ratna",
		InterviewerEmail:         "ratna@example.org",
		InterviewerAccessToken:   token,
		InterviewerTokenIssuedAt: time.Now(),
		InterviewerIsActive:      true,
	}
	if mutate != nil {
		mutate(iv)
	}
	require.NoError(t, db.Create(iv).Error)
	return iv
}

func seedPortalApp(t *testing.T, db *gorm.DB, candidateNo string, year int, eligible bool) *appModel.ApplicationModel {
	t.Helper()
	status := appModel.StatusSubmitted
	validity := appModel.ValidityValid
	if !eligible {
		status = appModel.StatusDraft
	}
	now := time.Now()
	app := &appModel.ApplicationModel{
		ApplicationYear:        year,
		ApplicationCandidateNo: candidateNo,
		ApplicationStatus:      status,
		ApplicationValidity:    &validity,
		ApplicationSubmittedAt: &now,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func TestResolveByAccessToken(t *testing.T) {
	db := testutil.OpenTestDB(t)
	iv := seedInterviewer(t, db, "token-aktif", nil)

	got, err := model.ResolveByAccessToken(db, "token-aktif")
	require.NoError(t, err)
	assert.Equal(t, iv.InterviewerID, got.InterviewerID)
}

// Semua mode gagal membalas error generik yang sama: token tak terdaftar,
// interviewer nonaktif, dan token kadaluarsa tidak bisa dibedakan dari luar.
func TestResolveByAccessTokenDeniesUniformly(t *testing.T) {
	db := testutil.OpenTestDB(t)

	seedInterviewer(t, db, "token-nonaktif", func(iv *model.InterviewerModel) {
		iv.InterviewerIsActive = false
		now := time.Now()
		iv.InterviewerDeactivatedAt = &now
	})
	seedInterviewer(t, db, "token-kadaluarsa", func(iv *model.InterviewerModel) {
		expired := time.Now().Add(-time.Hour)
		iv.InterviewerTokenExpiresAt = &expired
	})

	for _, token := range []string{"", "token-tak-terdaftar", "token-nonaktif", "token-kadaluarsa"} {
		_, err := model.ResolveByAccessToken(db, token)
		assert.ErrorIs(t, err, model.ErrAccessDenied, "token %q", token)
	}
}

func TestListAssignedScopesToEligibleYear(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewPortalService(db)
	iv := seedInterviewer(t, db, "token-aktif", nil)

	inYear := seedPortalApp(t, db, "111", testYear, true)
	seedPortalApp(t, db, "112", testYear, false)    // draft, bukan eligible
	seedPortalApp(t, db, "113", testYear+1, true)   // tahun lain

	crit := &criterionModel.CriterionModel{
		CriterionYear:        testYear,
		CriterionName:        "Komunikasi",
		CriterionDisplayName: "Komunikasi",
		CriterionMaxPoints:   10,
		CriterionWeight:      1,
		CriterionCategory:    criterionModel.CategorySubjective,
		CriterionIsActive:    true,
	}
	require.NoError(t, db.Create(crit).Error)

	assigned, criteria, err := svc.ListAssigned(iv)
	require.NoError(t, err)
	require.Len(t, assigned, 1)
	assert.Equal(t, inYear.ApplicationID, assigned[0].Application.ApplicationID)
	require.Len(t, criteria, 1)
	assert.Equal(t, crit.CriterionID, criteria[0].CriterionID)
}

func TestGetScopedApplicationDeniesOutOfScope(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewPortalService(db)
	iv := seedInterviewer(t, db, "token-aktif", nil)

	inScope := seedPortalApp(t, db, "121", testYear, true)
	draft := seedPortalApp(t, db, "122", testYear, false)
	otherYear := seedPortalApp(t, db, "123", testYear+1, true)

	got, err := svc.GetScopedApplication(iv, inScope.ApplicationID)
	require.NoError(t, err)
	assert.Equal(t, inScope.ApplicationID, got.ApplicationID)

	for _, id := range []uuid.UUID{draft.ApplicationID, otherYear.ApplicationID, uuid.New()} {
		_, err := svc.GetScopedApplication(iv, id)
		assert.ErrorIs(t, err, model.ErrAccessDenied)
	}
}

func TestGetScopedCriterionDeniesOtherYearAndInactive(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewPortalService(db)
	iv := seedInterviewer(t, db, "token-aktif", nil)

	mk := func(year int, active bool) *criterionModel.CriterionModel {
		c := &criterionModel.CriterionModel{
			CriterionYear:        year,
			CriterionName:        "Komunikasi",
			CriterionDisplayName: "Komunikasi",
			CriterionMaxPoints:   10,
			CriterionWeight:      1,
			CriterionCategory:    criterionModel.CategorySubjective,
			CriterionIsActive:    active,
		}
		require.NoError(t, db.Create(c).Error)
		return c
	}
	ok := mk(testYear, true)
	inactive := mk(testYear, false)
	otherYear := mk(testYear+1, true)

	got, err := svc.GetScopedCriterion(iv, ok.CriterionID)
	require.NoError(t, err)
	assert.Equal(t, ok.CriterionID, got.CriterionID)

	for _, id := range []uuid.UUID{inactive.CriterionID, otherYear.CriterionID, uuid.New()} {
		_, err := svc.GetScopedCriterion(iv, id)
		assert.ErrorIs(t, err, model.ErrAccessDenied)
	}
}
