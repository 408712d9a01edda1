package dto

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"beasiswaku_backend/internals/features/fellowship/interviewers/model"
)

type CreateInterviewerRequest struct {
	InterviewerYear        int            `json:"interviewer_year" validate:"required,gte=2000"`
	InterviewerName        string         `json:"interviewer_name" validate:"required,max=120"`
	InterviewerEmail       string         `json:"interviewer_email" validate:"required,email,max=180"`
	InterviewerInstitution *string        `json:"interviewer_institution" validate:"omitempty,max=180"`
	InterviewerSpecialties datatypes.JSON `json:"interviewer_specialties"`
	// Masa berlaku token dalam hari; kosong = tidak kadaluarsa.
	TokenValidDays *int `json:"token_valid_days" validate:"omitempty,gte=1,lte=365"`
}

type UpdateInterviewerRequest struct {
	InterviewerName        *string        `json:"interviewer_name" validate:"omitempty,max=120"`
	InterviewerEmail       *string        `json:"interviewer_email" validate:"omitempty,email,max=180"`
	InterviewerInstitution *string        `json:"interviewer_institution" validate:"omitempty,max=180"`
	InterviewerSpecialties datatypes.JSON `json:"interviewer_specialties"`
}

// InterviewerResponse TIDAK pernah memuat access token.
// Token hanya keluar sekali lewat InterviewerWithTokenResponse
// (saat create / regenerate).
type InterviewerResponse struct {
	InterviewerID             uuid.UUID      `json:"interviewer_id"`
	InterviewerYear           int            `json:"interviewer_year"`
	InterviewerName           string         `json:"interviewer_name"`
	InterviewerEmail          string         `json:"interviewer_email"`
	InterviewerInstitution    *string        `json:"interviewer_institution"`
	InterviewerSpecialties    datatypes.JSON `json:"interviewer_specialties"`
	InterviewerIsActive       bool           `json:"interviewer_is_active"`
	InterviewerTokenIssuedAt  time.Time      `json:"interviewer_token_issued_at"`
	InterviewerTokenExpiresAt *time.Time     `json:"interviewer_token_expires_at"`
	InterviewerDeactivatedAt  *time.Time     `json:"interviewer_deactivated_at"`
}

type InterviewerWithTokenResponse struct {
	InterviewerResponse
	InterviewerAccessToken string `json:"interviewer_access_token"`
	PortalLink             string `json:"portal_link"`
}

func ToInterviewerResponse(m *model.InterviewerModel) *InterviewerResponse {
	return &InterviewerResponse{
		InterviewerID:             m.InterviewerID,
		InterviewerYear:           m.InterviewerYear,
		InterviewerName:           m.InterviewerName,
		InterviewerEmail:          m.InterviewerEmail,
		InterviewerInstitution:    m.InterviewerInstitution,
		InterviewerSpecialties:    m.InterviewerSpecialties,
		InterviewerIsActive:       m.InterviewerIsActive,
		InterviewerTokenIssuedAt:  m.InterviewerTokenIssuedAt,
		InterviewerTokenExpiresAt: m.InterviewerTokenExpiresAt,
		InterviewerDeactivatedAt:  m.InterviewerDeactivatedAt,
	}
}

func ToInterviewerResponseList(models []model.InterviewerModel) []InterviewerResponse {
	out := make([]InterviewerResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToInterviewerResponse(&models[i]))
	}
	return out
}

func ToInterviewerWithTokenResponse(m *model.InterviewerModel, portalLink string) *InterviewerWithTokenResponse {
	return &InterviewerWithTokenResponse{
		InterviewerResponse:    *ToInterviewerResponse(m),
		InterviewerAccessToken: m.InterviewerAccessToken,
		PortalLink:             portalLink,
	}
}

func (r *UpdateInterviewerRequest) ApplyTo(m *model.InterviewerModel) {
	if r.InterviewerName != nil {
		m.InterviewerName = *r.InterviewerName
	}
	if r.InterviewerEmail != nil {
		m.InterviewerEmail = *r.InterviewerEmail
	}
	if r.InterviewerInstitution != nil {
		m.InterviewerInstitution = r.InterviewerInstitution
	}
	if len(r.InterviewerSpecialties) > 0 {
		m.InterviewerSpecialties = r.InterviewerSpecialties
	}
}
