package dto

import (
	"github.com/google/uuid"
)

// Submit skor per-kriteria dari portal magic link.
// Batas atas divalidasi service terhadap max_points kriteria.
type SubmitCriterionScoreRequest struct {
	CriterionID uuid.UUID `json:"criterion_id" validate:"required"`
	Score       *float64  `json:"score" validate:"required,gte=0"`
}
