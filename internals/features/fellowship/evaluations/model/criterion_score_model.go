// file: internals/features/fellowship/evaluations/model/criterion_score_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// CriterionScoreModel merepresentasikan tabel `criterion_scores`:
// skor per kriteria dari interviewer eksternal (flow magic link),
// satu baris per (application, criterion, interviewer).
//
// Beberapa interviewer boleh menilai kriteria yang sama; pembacanya
// merata-ratakan per kriteria. Agregat ini display-only dan TIDAK masuk
// ke application_objective_score.
type CriterionScoreModel struct {
	CriterionScoreID uuid.UUID `json:"criterion_score_id" gorm:"column:criterion_score_id;type:uuid;primaryKey"`

	CriterionScoreApplicationID uuid.UUID `json:"criterion_score_application_id" gorm:"column:criterion_score_application_id;type:uuid;not null;uniqueIndex:uq_criterion_scores_key,priority:1"`
	CriterionScoreCriterionID   uuid.UUID `json:"criterion_score_criterion_id" gorm:"column:criterion_score_criterion_id;type:uuid;not null;uniqueIndex:uq_criterion_scores_key,priority:2"`
	CriterionScoreInterviewerID uuid.UUID `json:"criterion_score_interviewer_id" gorm:"column:criterion_score_interviewer_id;type:uuid;not null;uniqueIndex:uq_criterion_scores_key,priority:3"`

	CriterionScoreScore float64 `json:"criterion_score_score" gorm:"column:criterion_score_score;type:numeric(5,2);not null"`

	CriterionScoreCreatedAt time.Time `json:"criterion_score_created_at" gorm:"column:criterion_score_created_at;not null;autoCreateTime"`
	CriterionScoreUpdatedAt time.Time `json:"criterion_score_updated_at" gorm:"column:criterion_score_updated_at;not null;autoUpdateTime"`
}

func (CriterionScoreModel) TableName() string {
	return "criterion_scores"
}

func (m *CriterionScoreModel) BeforeCreate(tx *gorm.DB) error {
	if m.CriterionScoreID == uuid.Nil {
		m.CriterionScoreID = uuid.New()
	}
	return nil
}
