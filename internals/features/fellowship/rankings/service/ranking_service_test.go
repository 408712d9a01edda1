package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	appModel "beasiswaku_backend/internals/features/fellowship/applications/model"
	notifModel "beasiswaku_backend/internals/features/home/notifications/model"
	"beasiswaku_backend/internals/testutil"
)

const testYear = 2026

func seedInstitution(t *testing.T, db *gorm.DB, name string, spots int) *appModel.InstitutionModel {
	t.Helper()
	inst := &appModel.InstitutionModel{
		InstitutionName:           name,
		InstitutionAvailableSpots: spots,
		InstitutionIsActive:       true,
	}
	require.NoError(t, db.Create(inst).Error)
	return inst
}

type seedAppOpts struct {
	candidateNo string
	institution *uuid.UUID
	status      string
	validity    *string
	objective   float64
	interview   float64
	submittedAt time.Time
}

func seedRankableApp(t *testing.T, db *gorm.DB, o seedAppOpts) *appModel.ApplicationModel {
	t.Helper()
	if o.status == "" {
		o.status = appModel.StatusSubmitted
	}
	if o.validity == nil {
		v := appModel.ValidityValid
		o.validity = &v
	}
	if o.submittedAt.IsZero() {
		o.submittedAt = time.Date(testYear, 1, 10, 9, 0, 0, 0, time.UTC)
	}
	app := &appModel.ApplicationModel{
		ApplicationYear:           testYear,
		ApplicationCandidateNo:    o.candidateNo,
		ApplicationInstitutionID:  o.institution,
		ApplicationStatus:         o.status,
		ApplicationValidity:       o.validity,
		ApplicationSubmittedAt:    &o.submittedAt,
		ApplicationObjectiveScore: o.objective,
		ApplicationInterviewScore: o.interview,
		ApplicationTotalScore:     o.objective + o.interview,
	}
	require.NoError(t, db.Create(app).Error)
	return app
}

func TestGenerateRanksPerInstitutionWithAdvanceFlags(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewRankingService(db)

	inst := seedInstitution(t, db, "Universitas Merdeka", 2)
	x := seedRankableApp(t, db, seedAppOpts{candidateNo: "201", institution: &inst.InstitutionID, objective: 3.5, interview: 7})
	y := seedRankableApp(t, db, seedAppOpts{candidateNo: "202", institution: &inst.InstitutionID, objective: 4.2, interview: 8})
	z := seedRankableApp(t, db, seedAppOpts{candidateNo: "203", institution: &inst.InstitutionID, objective: 2.0, interview: 6})

	result, err := svc.Generate(testYear, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[0].Entries, 3)

	assert.Equal(t, y.ApplicationID, result[0].Entries[0].ApplicationID)
	assert.Equal(t, x.ApplicationID, result[0].Entries[1].ApplicationID)
	assert.Equal(t, z.ApplicationID, result[0].Entries[2].ApplicationID)

	// Hanya 2 kursi: posisi 1-2 lanjut wawancara, posisi 3 tidak.
	assert.True(t, result[0].Entries[0].AdvanceInterview)
	assert.True(t, result[0].Entries[1].AdvanceInterview)
	assert.False(t, result[0].Entries[2].AdvanceInterview)

	// Posisi ikut ter-persist di aplikasi.
	var persisted appModel.ApplicationModel
	require.NoError(t, db.First(&persisted, "application_id = ?", z.ApplicationID).Error)
	require.NotNil(t, persisted.ApplicationRankPosition)
	assert.Equal(t, 3, *persisted.ApplicationRankPosition)
	assert.False(t, persisted.ApplicationAdvanceInterview)
}

func TestGenerateGroupsByInstitution(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewRankingService(db)

	instA := seedInstitution(t, db, "Institut Andalas", 1)
	instB := seedInstitution(t, db, "Universitas Bina Nusa", 1)
	seedRankableApp(t, db, seedAppOpts{candidateNo: "301", institution: &instA.InstitutionID, objective: 1})
	seedRankableApp(t, db, seedAppOpts{candidateNo: "302", institution: &instB.InstitutionID, objective: 9})
	seedRankableApp(t, db, seedAppOpts{candidateNo: "303", institution: &instB.InstitutionID, objective: 5})

	result, err := svc.Generate(testYear, nil)
	require.NoError(t, err)
	require.Len(t, result, 2)

	// Output terurut per nama institusi; ranking dihitung per grup.
	assert.Equal(t, "Institut Andalas", result[0].InstitutionName)
	require.Len(t, result[0].Entries, 1)
	assert.Equal(t, 1, result[0].Entries[0].RankPosition)
	assert.True(t, result[0].Entries[0].AdvanceInterview, "satu-satunya kandidat institusi A memenuhi kuota 1 kursi")

	assert.Equal(t, "Universitas Bina Nusa", result[1].InstitutionName)
	require.Len(t, result[1].Entries, 2)
	assert.False(t, result[1].Entries[1].AdvanceInterview)
}

func TestGenerateDeterministicTieBreak(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewRankingService(db)

	inst := seedInstitution(t, db, "Universitas Merdeka", 1)
	early := time.Date(testYear, 1, 5, 8, 0, 0, 0, time.UTC)
	late := time.Date(testYear, 1, 9, 8, 0, 0, 0, time.UTC)

	// Total sama; objective lebih tinggi menang.
	a := seedRankableApp(t, db, seedAppOpts{candidateNo: "401", institution: &inst.InstitutionID, objective: 6, interview: 4, submittedAt: late})
	b := seedRankableApp(t, db, seedAppOpts{candidateNo: "402", institution: &inst.InstitutionID, objective: 4, interview: 6, submittedAt: early})
	// Total & objective sama dengan a; submit lebih awal menang.
	c := seedRankableApp(t, db, seedAppOpts{candidateNo: "403", institution: &inst.InstitutionID, objective: 6, interview: 4, submittedAt: early})

	first, err := svc.Generate(testYear, nil)
	require.NoError(t, err)
	require.Len(t, first, 1)
	require.Len(t, first[0].Entries, 3)

	assert.Equal(t, c.ApplicationID, first[0].Entries[0].ApplicationID)
	assert.Equal(t, a.ApplicationID, first[0].Entries[1].ApplicationID)
	assert.Equal(t, b.ApplicationID, first[0].Entries[2].ApplicationID)

	// Regenerasi tanpa perubahan data menghasilkan urutan identik.
	second, err := svc.Generate(testYear, nil)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func TestGenerateExcludesIneligibleAndResetsStaleRank(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewRankingService(db)

	inst := seedInstitution(t, db, "Universitas Merdeka", 5)
	eligible := seedRankableApp(t, db, seedAppOpts{candidateNo: "501", institution: &inst.InstitutionID, objective: 5})
	invalid := appModel.ValidityInvalid
	seedRankableApp(t, db, seedAppOpts{candidateNo: "502", institution: &inst.InstitutionID, objective: 9, validity: &invalid})
	seedRankableApp(t, db, seedAppOpts{candidateNo: "503", institution: &inst.InstitutionID, objective: 9, status: appModel.StatusDraft})
	seedRankableApp(t, db, seedAppOpts{candidateNo: "504", institution: nil, objective: 9})

	result, err := svc.Generate(testYear, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	require.Len(t, result[0].Entries, 1)
	assert.Equal(t, eligible.ApplicationID, result[0].Entries[0].ApplicationID)

	// Kandidat tadi berubah jadi tidak eligible → regenerasi me-reset ranknya.
	require.NoError(t, db.Model(&appModel.ApplicationModel{}).
		Where("application_id = ?", eligible.ApplicationID).
		Update("application_status", appModel.StatusRejected).Error)

	result, err = svc.Generate(testYear, nil)
	require.NoError(t, err)
	assert.Empty(t, result)

	var stale appModel.ApplicationModel
	require.NoError(t, db.First(&stale, "application_id = ?", eligible.ApplicationID).Error)
	assert.Nil(t, stale.ApplicationRankPosition)
	assert.False(t, stale.ApplicationAdvanceInterview)
}

func TestGenerateWithInstitutionFilterResetsStaleRank(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewRankingService(db)

	instA := seedInstitution(t, db, "Institut Andalas", 5)
	instB := seedInstitution(t, db, "Universitas Bina Nusa", 5)
	appA := seedRankableApp(t, db, seedAppOpts{candidateNo: "801", institution: &instA.InstitutionID, objective: 5})
	appB := seedRankableApp(t, db, seedAppOpts{candidateNo: "802", institution: &instB.InstitutionID, objective: 5})

	_, err := svc.Generate(testYear, nil)
	require.NoError(t, err)

	// Kandidat institusi A jadi tidak eligible → regenerasi yang difilter
	// ke institusi A tetap wajib me-reset rank lamanya.
	require.NoError(t, db.Model(&appModel.ApplicationModel{}).
		Where("application_id = ?", appA.ApplicationID).
		Update("application_status", appModel.StatusRejected).Error)

	result, err := svc.Generate(testYear, &instA.InstitutionID)
	require.NoError(t, err)
	assert.Empty(t, result)

	var stale appModel.ApplicationModel
	require.NoError(t, db.First(&stale, "application_id = ?", appA.ApplicationID).Error)
	assert.Nil(t, stale.ApplicationRankPosition)
	assert.False(t, stale.ApplicationAdvanceInterview)

	// Institusi lain tidak ikut tersentuh.
	var untouched appModel.ApplicationModel
	require.NoError(t, db.First(&untouched, "application_id = ?", appB.ApplicationID).Error)
	require.NotNil(t, untouched.ApplicationRankPosition)
	assert.Equal(t, 1, *untouched.ApplicationRankPosition)
}

func TestListReadsPersistedWithoutRegenerating(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewRankingService(db)

	inst := seedInstitution(t, db, "Universitas Merdeka", 1)
	seedRankableApp(t, db, seedAppOpts{candidateNo: "601", institution: &inst.InstitutionID, objective: 5})

	// Belum pernah generate → kosong.
	result, err := svc.List(testYear, nil)
	require.NoError(t, err)
	assert.Empty(t, result)

	_, err = svc.Generate(testYear, nil)
	require.NoError(t, err)

	result, err = svc.List(testYear, nil)
	require.NoError(t, err)
	require.Len(t, result, 1)
	assert.Equal(t, "Universitas Merdeka", result[0].InstitutionName)
	require.Len(t, result[0].Entries, 1)
	assert.Equal(t, "601", result[0].Entries[0].CandidateNo)
}

func TestPublishIsIdempotent(t *testing.T) {
	db := testutil.OpenTestDB(t)
	svc := NewRankingService(db)

	inst := seedInstitution(t, db, "Universitas Merdeka", 2)
	seedRankableApp(t, db, seedAppOpts{candidateNo: "701", institution: &inst.InstitutionID, objective: 5})
	seedRankableApp(t, db, seedAppOpts{candidateNo: "702", institution: &inst.InstitutionID, objective: 3})

	_, err := svc.Generate(testYear, nil)
	require.NoError(t, err)

	notified, err := svc.Publish(testYear)
	require.NoError(t, err)
	assert.Equal(t, 2, notified)

	var count int64
	require.NoError(t, db.Model(&notifModel.NotificationModel{}).
		Where("notification_kind = ?", notifModel.KindRankPublished).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)

	// Publish kedua tanpa regenerasi: tidak ada notifikasi baru.
	notified, err = svc.Publish(testYear)
	require.NoError(t, err)
	assert.Zero(t, notified)

	require.NoError(t, db.Model(&notifModel.NotificationModel{}).
		Where("notification_kind = ?", notifModel.KindRankPublished).
		Count(&count).Error)
	assert.Equal(t, int64(2), count)
}
