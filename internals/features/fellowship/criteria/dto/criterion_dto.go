package dto

import (
	"beasiswaku_backend/internals/features/fellowship/criteria/model"

	"github.com/google/uuid"
)

// Request dari admin UI → backend
type CreateCriterionRequest struct {
	CriterionYear        int      `json:"criterion_year" validate:"required,gte=2000"`
	CriterionName        string   `json:"criterion_name" validate:"required,max=120"`
	CriterionDisplayName string   `json:"criterion_display_name" validate:"omitempty,max=180"`
	CriterionMaxPoints   *float64 `json:"criterion_max_points" validate:"omitempty,gte=0"`
	CriterionWeight      *float64 `json:"criterion_weight" validate:"omitempty,gte=0"`
	CriterionCategory    string   `json:"criterion_category" validate:"required,oneof=objective subjective"`
}

// Update parsial: hanya field non-nil yang di-merge.
// Perubahan weight/max_points TIDAK me-rescale skor lama; agregasi selalu
// memakai bobot terkini saat recompute.
type UpdateCriterionRequest struct {
	CriterionDisplayName *string  `json:"criterion_display_name" validate:"omitempty,max=180"`
	CriterionMaxPoints   *float64 `json:"criterion_max_points" validate:"omitempty,gte=0"`
	CriterionWeight      *float64 `json:"criterion_weight" validate:"omitempty,gte=0"`
	CriterionCategory    *string  `json:"criterion_category" validate:"omitempty,oneof=objective subjective"`
	CriterionSortOrder   *int     `json:"criterion_sort_order" validate:"omitempty,gte=0"`
}

type CriterionResponse struct {
	CriterionID          uuid.UUID `json:"criterion_id"`
	CriterionYear        int       `json:"criterion_year"`
	CriterionName        string    `json:"criterion_name"`
	CriterionDisplayName string    `json:"criterion_display_name"`
	CriterionMaxPoints   float64   `json:"criterion_max_points"`
	CriterionWeight      float64   `json:"criterion_weight"`
	CriterionCategory    string    `json:"criterion_category"`
	CriterionSortOrder   int       `json:"criterion_sort_order"`
	CriterionIsActive    bool      `json:"criterion_is_active"`
}

// Convert request → model (sort order diisi controller).
func (r *CreateCriterionRequest) ToModel() *model.CriterionModel {
	maxPoints := 10.0
	if r.CriterionMaxPoints != nil {
		maxPoints = *r.CriterionMaxPoints
	}
	weight := 1.0
	if r.CriterionWeight != nil {
		weight = *r.CriterionWeight
	}
	displayName := r.CriterionDisplayName
	if displayName == "" {
		displayName = r.CriterionName
	}

	return &model.CriterionModel{
		CriterionYear:        r.CriterionYear,
		CriterionName:        r.CriterionName,
		CriterionDisplayName: displayName,
		CriterionMaxPoints:   maxPoints,
		CriterionWeight:      weight,
		CriterionCategory:    r.CriterionCategory,
		CriterionIsActive:    true,
	}
}

// ApplyTo merge field non-nil ke model yang sudah ada.
func (r *UpdateCriterionRequest) ApplyTo(m *model.CriterionModel) {
	if r.CriterionDisplayName != nil {
		m.CriterionDisplayName = *r.CriterionDisplayName
	}
	if r.CriterionMaxPoints != nil {
		m.CriterionMaxPoints = *r.CriterionMaxPoints
	}
	if r.CriterionWeight != nil {
		m.CriterionWeight = *r.CriterionWeight
	}
	if r.CriterionCategory != nil {
		m.CriterionCategory = *r.CriterionCategory
	}
	if r.CriterionSortOrder != nil {
		m.CriterionSortOrder = *r.CriterionSortOrder
	}
}

// Convert model → response
func ToCriterionResponse(m *model.CriterionModel) *CriterionResponse {
	return &CriterionResponse{
		CriterionID:          m.CriterionID,
		CriterionYear:        m.CriterionYear,
		CriterionName:        m.CriterionName,
		CriterionDisplayName: m.CriterionDisplayName,
		CriterionMaxPoints:   m.CriterionMaxPoints,
		CriterionWeight:      m.CriterionWeight,
		CriterionCategory:    m.CriterionCategory,
		CriterionSortOrder:   m.CriterionSortOrder,
		CriterionIsActive:    m.CriterionIsActive,
	}
}

func ToCriterionResponseList(models []model.CriterionModel) []CriterionResponse {
	out := make([]CriterionResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToCriterionResponse(&models[i]))
	}
	return out
}
