package dto

import (
	"github.com/google/uuid"

	"beasiswaku_backend/internals/features/fellowship/evaluations/model"
	"beasiswaku_backend/internals/features/fellowship/evaluations/service"
)

// Submit satu skor internal untuk (application, criterion).
// Batas atas skor divalidasi service terhadap max_points kriteria.
type SubmitEvaluationRequest struct {
	EvaluationApplicationID uuid.UUID `json:"evaluation_application_id" validate:"required"`
	EvaluationCriterionID   uuid.UUID `json:"evaluation_criterion_id" validate:"required"`
	EvaluationScore         *float64  `json:"evaluation_score" validate:"required,gte=0"`
	EvaluationNotes         *string   `json:"evaluation_notes" validate:"omitempty,max=2000"`
}

type BatchEntryRequest struct {
	CriterionID uuid.UUID `json:"criterion_id" validate:"required"`
	Score       *float64  `json:"score" validate:"required,gte=0"`
	Notes       *string   `json:"notes" validate:"omitempty,max=2000"`
}

// Batch all-or-nothing: satu entri invalid membatalkan seluruh batch.
type SubmitEvaluationBatchRequest struct {
	ApplicationID uuid.UUID           `json:"application_id" validate:"required"`
	Entries       []BatchEntryRequest `json:"entries" validate:"required,min=1,dive"`
}

type SubmitInterviewScoreRequest struct {
	ApplicationID uuid.UUID `json:"application_id" validate:"required"`
	InterviewerID uuid.UUID `json:"interviewer_id" validate:"required"`
	Score         *float64  `json:"score" validate:"required,gte=0,lte=10"`
	Notes         *string   `json:"notes" validate:"omitempty,max=2000"`
}

type EvaluationResponse struct {
	EvaluationID            uuid.UUID `json:"evaluation_id"`
	EvaluationApplicationID uuid.UUID `json:"evaluation_application_id"`
	EvaluationCriterionID   uuid.UUID `json:"evaluation_criterion_id"`
	EvaluationScore         float64   `json:"evaluation_score"`
	EvaluationNotes         *string   `json:"evaluation_notes"`
	EvaluationEvaluatorID   uuid.UUID `json:"evaluation_evaluator_id"`
	EvaluationUpdatedAt     string    `json:"evaluation_updated_at"`
}

func (r *SubmitEvaluationRequest) ToInput(evaluatorID uuid.UUID) service.SubmitEvaluationInput {
	return service.SubmitEvaluationInput{
		ApplicationID: r.EvaluationApplicationID,
		CriterionID:   r.EvaluationCriterionID,
		Score:         *r.EvaluationScore,
		Notes:         r.EvaluationNotes,
		EvaluatorID:   evaluatorID,
	}
}

func (r *SubmitEvaluationBatchRequest) ToEntries() []service.BatchEntry {
	entries := make([]service.BatchEntry, 0, len(r.Entries))
	for _, e := range r.Entries {
		entries = append(entries, service.BatchEntry{
			CriterionID: e.CriterionID,
			Score:       *e.Score,
			Notes:       e.Notes,
		})
	}
	return entries
}

func ToEvaluationResponse(m *model.EvaluationModel) *EvaluationResponse {
	return &EvaluationResponse{
		EvaluationID:            m.EvaluationID,
		EvaluationApplicationID: m.EvaluationApplicationID,
		EvaluationCriterionID:   m.EvaluationCriterionID,
		EvaluationScore:         m.EvaluationScore,
		EvaluationNotes:         m.EvaluationNotes,
		EvaluationEvaluatorID:   m.EvaluationEvaluatorID,
		EvaluationUpdatedAt:     m.EvaluationUpdatedAt.Format("2006-01-02 15:04:05"),
	}
}

func ToEvaluationResponseList(models []model.EvaluationModel) []EvaluationResponse {
	out := make([]EvaluationResponse, 0, len(models))
	for i := range models {
		out = append(out, *ToEvaluationResponse(&models[i]))
	}
	return out
}
