package dto

import (
	"github.com/google/uuid"

	"beasiswaku_backend/internals/features/fellowship/applications/model"
)

type CreateInstitutionRequest struct {
	InstitutionName           string  `json:"institution_name" validate:"required,max=180"`
	InstitutionCity           *string `json:"institution_city" validate:"omitempty,max=120"`
	InstitutionAvailableSpots int     `json:"institution_available_spots" validate:"required,gte=0"`
}

type UpdateInstitutionRequest struct {
	InstitutionName           *string `json:"institution_name" validate:"omitempty,max=180"`
	InstitutionCity           *string `json:"institution_city" validate:"omitempty,max=120"`
	InstitutionAvailableSpots *int    `json:"institution_available_spots" validate:"omitempty,gte=0"`
	InstitutionIsActive       *bool   `json:"institution_is_active"`
}

type InstitutionResponse struct {
	InstitutionID             uuid.UUID `json:"institution_id"`
	InstitutionName           string    `json:"institution_name"`
	InstitutionCity           *string   `json:"institution_city"`
	InstitutionAvailableSpots int       `json:"institution_available_spots"`
	InstitutionIsActive       bool      `json:"institution_is_active"`
}

func (r *CreateInstitutionRequest) ToModel() *model.InstitutionModel {
	return &model.InstitutionModel{
		InstitutionName:           r.InstitutionName,
		InstitutionCity:           r.InstitutionCity,
		InstitutionAvailableSpots: r.InstitutionAvailableSpots,
		InstitutionIsActive:       true,
	}
}

func (r *UpdateInstitutionRequest) ApplyTo(m *model.InstitutionModel) {
	if r.InstitutionName != nil {
		m.InstitutionName = *r.InstitutionName
	}
	if r.InstitutionCity != nil {
		m.InstitutionCity = r.InstitutionCity
	}
	if r.InstitutionAvailableSpots != nil {
		m.InstitutionAvailableSpots = *r.InstitutionAvailableSpots
	}
	if r.InstitutionIsActive != nil {
		m.InstitutionIsActive = *r.InstitutionIsActive
	}
}

func ToInstitutionResponse(m *model.InstitutionModel) *InstitutionResponse {
	return &InstitutionResponse{
		InstitutionID:             m.InstitutionID,
		InstitutionName:           m.InstitutionName,
		InstitutionCity:           m.InstitutionCity,
		InstitutionAvailableSpots: m.InstitutionAvailableSpots,
		InstitutionIsActive:       m.InstitutionIsActive,
	}
}

func ToInstitutionResponseList(models []model.InstitutionModel) []InstitutionResponse {
	out := make([]InstitutionResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToInstitutionResponse(&models[i]))
	}
	return out
}
