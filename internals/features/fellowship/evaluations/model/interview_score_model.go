// file: internals/features/fellowship/evaluations/model/interview_score_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Skor maksimum flavor interview lama (tanpa kriteria).
const LegacyInterviewMaxScore = 10

// InterviewScoreModel merepresentasikan tabel `interview_scores`:
// flavor lama, satu skor holistik per (application, interviewer).
// interview_score milik aplikasi = rata-rata semua baris ini.
type InterviewScoreModel struct {
	InterviewScoreID uuid.UUID `json:"interview_score_id" gorm:"column:interview_score_id;type:uuid;primaryKey"`

	InterviewScoreApplicationID uuid.UUID `json:"interview_score_application_id" gorm:"column:interview_score_application_id;type:uuid;not null;uniqueIndex:uq_interview_scores_app_interviewer,priority:1"`
	InterviewScoreInterviewerID uuid.UUID `json:"interview_score_interviewer_id" gorm:"column:interview_score_interviewer_id;type:uuid;not null;uniqueIndex:uq_interview_scores_app_interviewer,priority:2"`

	InterviewScoreScore float64 `json:"interview_score_score" gorm:"column:interview_score_score;type:numeric(5,2);not null"`
	InterviewScoreNotes *string `json:"interview_score_notes" gorm:"column:interview_score_notes;type:text"`

	InterviewScoreCreatedAt time.Time `json:"interview_score_created_at" gorm:"column:interview_score_created_at;not null;autoCreateTime"`
	InterviewScoreUpdatedAt time.Time `json:"interview_score_updated_at" gorm:"column:interview_score_updated_at;not null;autoUpdateTime"`
}

func (InterviewScoreModel) TableName() string {
	return "interview_scores"
}

func (m *InterviewScoreModel) BeforeCreate(tx *gorm.DB) error {
	if m.InterviewScoreID == uuid.Nil {
		m.InterviewScoreID = uuid.New()
	}
	return nil
}
