// file: internals/features/fellowship/evaluations/model/evaluation_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// EvaluationModel merepresentasikan tabel `evaluations`:
// skor objektif internal oleh admin/panitia, satu baris per
// (application, criterion) — upsert, bukan append.
type EvaluationModel struct {
	EvaluationID uuid.UUID `json:"evaluation_id" gorm:"column:evaluation_id;type:uuid;primaryKey"`

	EvaluationApplicationID uuid.UUID `json:"evaluation_application_id" gorm:"column:evaluation_application_id;type:uuid;not null;uniqueIndex:uq_evaluations_app_criterion,priority:1"`
	EvaluationCriterionID   uuid.UUID `json:"evaluation_criterion_id" gorm:"column:evaluation_criterion_id;type:uuid;not null;uniqueIndex:uq_evaluations_app_criterion,priority:2"`

	EvaluationScore       float64   `json:"evaluation_score" gorm:"column:evaluation_score;type:numeric(5,2);not null"`
	EvaluationNotes       *string   `json:"evaluation_notes" gorm:"column:evaluation_notes;type:text"`
	EvaluationEvaluatorID uuid.UUID `json:"evaluation_evaluator_id" gorm:"column:evaluation_evaluator_id;type:uuid;not null"`

	EvaluationCreatedAt time.Time `json:"evaluation_created_at" gorm:"column:evaluation_created_at;not null;autoCreateTime"`
	EvaluationUpdatedAt time.Time `json:"evaluation_updated_at" gorm:"column:evaluation_updated_at;not null;autoUpdateTime"`
}

func (EvaluationModel) TableName() string {
	return "evaluations"
}

func (m *EvaluationModel) BeforeCreate(tx *gorm.DB) error {
	if m.EvaluationID == uuid.Nil {
		m.EvaluationID = uuid.New()
	}
	return nil
}
