package dto

import (
	"time"

	"github.com/google/uuid"

	"beasiswaku_backend/internals/features/fellowship/applications/model"
)

// Intake proyeksi aplikasi dari sistem manajemen pendaftaran (eksternal).
// Field skor/rank TIDAK bisa dikirim dari sini — selalu derived.
type CreateApplicationRequest struct {
	ApplicationYear          int        `json:"application_year" validate:"required,gte=2000"`
	ApplicationInstitutionID *uuid.UUID `json:"application_institution_id"`
	ApplicationStatus        string     `json:"application_status" validate:"omitempty,oneof=draft submitted under_review accepted rejected"`
	ApplicationValidity      *string    `json:"application_validity" validate:"omitempty,oneof=valid invalid"`
	ApplicationGPA           *float64   `json:"application_gpa" validate:"omitempty,gte=0,lte=4"`
	ApplicationSubmittedAt   *time.Time `json:"application_submitted_at"`
}

type UpdateApplicationRequest struct {
	ApplicationInstitutionID *uuid.UUID `json:"application_institution_id"`
	ApplicationStatus        *string    `json:"application_status" validate:"omitempty,oneof=draft submitted under_review accepted rejected"`
	ApplicationValidity      *string    `json:"application_validity" validate:"omitempty,oneof=valid invalid"`
	ApplicationGPA           *float64   `json:"application_gpa" validate:"omitempty,gte=0,lte=4"`
	ApplicationSubmittedAt   *time.Time `json:"application_submitted_at"`
}

type ApplicationResponse struct {
	ApplicationID            uuid.UUID  `json:"application_id"`
	ApplicationYear          int        `json:"application_year"`
	ApplicationCandidateNo   string     `json:"application_candidate_no"`
	ApplicationInstitutionID *uuid.UUID `json:"application_institution_id"`
	ApplicationStatus        string     `json:"application_status"`
	ApplicationValidity      *string    `json:"application_validity"`
	ApplicationGPA           *float64   `json:"application_gpa"`

	ApplicationObjectiveScore   float64 `json:"application_objective_score"`
	ApplicationInterviewScore   float64 `json:"application_interview_score"`
	ApplicationTotalScore       float64 `json:"application_total_score"`
	ApplicationRankPosition     *int    `json:"application_rank_position"`
	ApplicationAdvanceInterview bool    `json:"application_advance_interview"`

	ApplicationSubmittedAt *time.Time `json:"application_submitted_at"`
	ApplicationCreatedAt   string     `json:"application_created_at"`
}

func (r *CreateApplicationRequest) ToModel() *model.ApplicationModel {
	status := r.ApplicationStatus
	if status == "" {
		status = model.StatusDraft
	}
	return &model.ApplicationModel{
		ApplicationYear:          r.ApplicationYear,
		ApplicationInstitutionID: r.ApplicationInstitutionID,
		ApplicationStatus:        status,
		ApplicationValidity:      r.ApplicationValidity,
		ApplicationGPA:           r.ApplicationGPA,
		ApplicationSubmittedAt:   r.ApplicationSubmittedAt,
	}
}

func (r *UpdateApplicationRequest) ApplyTo(m *model.ApplicationModel) {
	if r.ApplicationInstitutionID != nil {
		m.ApplicationInstitutionID = r.ApplicationInstitutionID
	}
	if r.ApplicationStatus != nil {
		m.ApplicationStatus = *r.ApplicationStatus
	}
	if r.ApplicationValidity != nil {
		m.ApplicationValidity = r.ApplicationValidity
	}
	if r.ApplicationGPA != nil {
		m.ApplicationGPA = r.ApplicationGPA
	}
	if r.ApplicationSubmittedAt != nil {
		m.ApplicationSubmittedAt = r.ApplicationSubmittedAt
	}
}

func ToApplicationResponse(m *model.ApplicationModel) *ApplicationResponse {
	return &ApplicationResponse{
		ApplicationID:               m.ApplicationID,
		ApplicationYear:             m.ApplicationYear,
		ApplicationCandidateNo:      m.ApplicationCandidateNo,
		ApplicationInstitutionID:    m.ApplicationInstitutionID,
		ApplicationStatus:           m.ApplicationStatus,
		ApplicationValidity:         m.ApplicationValidity,
		ApplicationGPA:              m.ApplicationGPA,
		ApplicationObjectiveScore:   m.ApplicationObjectiveScore,
		ApplicationInterviewScore:   m.ApplicationInterviewScore,
		ApplicationTotalScore:       m.ApplicationTotalScore,
		ApplicationRankPosition:     m.ApplicationRankPosition,
		ApplicationAdvanceInterview: m.ApplicationAdvanceInterview,
		ApplicationSubmittedAt:      m.ApplicationSubmittedAt,
		ApplicationCreatedAt:        m.ApplicationCreatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToApplicationResponseList(models []model.ApplicationModel) []ApplicationResponse {
	out := make([]ApplicationResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToApplicationResponse(&models[i]))
	}
	return out
}
