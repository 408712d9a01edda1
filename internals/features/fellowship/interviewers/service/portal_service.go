// file: internals/features/fellowship/interviewers/service/portal_service.go
package service

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	appModel "beasiswaku_backend/internals/features/fellowship/applications/model"
	criterionModel "beasiswaku_backend/internals/features/fellowship/criteria/model"
	evalModel "beasiswaku_backend/internals/features/fellowship/evaluations/model"
	"beasiswaku_backend/internals/features/fellowship/interviewers/model"
)

// AssignedApplication: aplikasi yang tampil di portal interviewer,
// dianotasi skor yang SUDAH diberikan interviewer ini (kalau ada).
type AssignedApplication struct {
	Application appModel.ApplicationModel      `json:"application"`
	MyScores    []evalModel.CriterionScoreModel `json:"my_scores"`
}

// PortalService: pembacaan ber-scope untuk sesi magic link.
// Scope interviewer = aplikasi eligible pada tahunnya, tidak lebih.
type PortalService struct {
	DB *gorm.DB
}

func NewPortalService(db *gorm.DB) *PortalService {
	return &PortalService{DB: db}
}

// ListAssigned mengembalikan semua aplikasi eligible tahun interviewer
// plus daftar kriteria tahun itu, supaya klien bisa merender form penilaian.
func (s *PortalService) ListAssigned(iv *model.InterviewerModel) ([]AssignedApplication, []criterionModel.CriterionModel, error) {
	var apps []appModel.ApplicationModel
	err := appModel.EligibleApplications(s.DB, iv.InterviewerYear).
		Order("application_candidate_no ASC").
		Find(&apps).Error
	if err != nil {
		return nil, nil, err
	}

	var myScores []evalModel.CriterionScoreModel
	if err := s.DB.
		Where("criterion_score_interviewer_id = ?", iv.InterviewerID).
		Find(&myScores).Error; err != nil {
		return nil, nil, err
	}
	scoresByApp := map[uuid.UUID][]evalModel.CriterionScoreModel{}
	for _, sc := range myScores {
		scoresByApp[sc.CriterionScoreApplicationID] = append(scoresByApp[sc.CriterionScoreApplicationID], sc)
	}

	assigned := make([]AssignedApplication, 0, len(apps))
	for _, a := range apps {
		assigned = append(assigned, AssignedApplication{
			Application: a,
			MyScores:    scoresByApp[a.ApplicationID],
		})
	}

	var criteria []criterionModel.CriterionModel
	if err := criterionModel.ActiveCriteria(s.DB, iv.InterviewerYear).Find(&criteria).Error; err != nil {
		return nil, nil, err
	}

	return assigned, criteria, nil
}

// GetScopedApplication mengambil satu aplikasi DI DALAM scope interviewer.
// Aplikasi di luar tahun / tidak eligible / tidak ada → ErrAccessDenied,
// tanpa membedakan kasusnya (jangan bocorkan keberadaan record out-of-scope).
func (s *PortalService) GetScopedApplication(iv *model.InterviewerModel, applicationID uuid.UUID) (*appModel.ApplicationModel, error) {
	var app appModel.ApplicationModel
	err := appModel.EligibleApplications(s.DB, iv.InterviewerYear).
		Where("application_id = ?", applicationID).
		First(&app).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAccessDenied
		}
		return nil, err
	}
	return &app, nil
}

// GetScopedCriterion memastikan kriteria milik tahun interviewer dan aktif.
func (s *PortalService) GetScopedCriterion(iv *model.InterviewerModel, criterionID uuid.UUID) (*criterionModel.CriterionModel, error) {
	var crit criterionModel.CriterionModel
	err := s.DB.
		Where("criterion_id = ?", criterionID).
		Where("criterion_year = ?", iv.InterviewerYear).
		Where("criterion_is_active = ?", true).
		First(&crit).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, model.ErrAccessDenied
		}
		return nil, err
	}
	return &crit, nil
}
