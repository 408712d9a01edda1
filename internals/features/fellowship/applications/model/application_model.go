// file: internals/features/fellowship/applications/model/application_model.go
package model

import (
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Status pendaftaran.
const (
	StatusDraft       = "draft"
	StatusSubmitted   = "submitted"
	StatusUnderReview = "under_review"
	StatusAccepted    = "accepted"
	StatusRejected    = "rejected"
)

// Status validitas berkas (hasil verifikasi admin).
const (
	ValidityValid   = "valid"
	ValidityInvalid = "invalid"
)

// ApplicationModel merepresentasikan tabel `applications`.
// Field skor (objective/interview/total) dan rank SELALU derived:
// hanya ditulis oleh aggregator & generator ranking, tidak pernah dari request.
type ApplicationModel struct {
	// =========================
	// Primary Key
	// =========================
	ApplicationID uuid.UUID `json:"application_id" gorm:"column:application_id;type:uuid;primaryKey"`

	// =========================
	// Identitas & partisi tahun
	// =========================
	ApplicationYear        int    `json:"application_year" gorm:"column:application_year;not null;uniqueIndex:uq_applications_year_candidate,priority:1;index:idx_applications_year_institution,priority:1"`
	ApplicationCandidateNo string `json:"application_candidate_no" gorm:"column:application_candidate_no;type:varchar(3);not null;uniqueIndex:uq_applications_year_candidate,priority:2"`

	// =========================
	// Relasi (FK)
	// =========================
	ApplicationInstitutionID *uuid.UUID `json:"application_institution_id" gorm:"column:application_institution_id;type:uuid;index:idx_applications_year_institution,priority:2"`

	// =========================
	// Status
	// =========================
	ApplicationStatus      string     `json:"application_status" gorm:"column:application_status;type:varchar(20);not null;default:draft"`
	ApplicationValidity    *string    `json:"application_validity" gorm:"column:application_validity;type:varchar(10)"`
	ApplicationSubmittedAt *time.Time `json:"application_submitted_at" gorm:"column:application_submitted_at"`

	// =========================
	// Data akademik
	// =========================
	ApplicationGPA *float64 `json:"application_gpa" gorm:"column:application_gpa;type:numeric(4,2)"`

	// =========================
	// Field derived (milik aggregator & ranking)
	// =========================
	ApplicationObjectiveScore   float64    `json:"application_objective_score" gorm:"column:application_objective_score;type:numeric(8,2);not null;default:0"`
	ApplicationInterviewScore   float64    `json:"application_interview_score" gorm:"column:application_interview_score;type:numeric(8,2);not null;default:0"`
	ApplicationTotalScore       float64    `json:"application_total_score" gorm:"column:application_total_score;type:numeric(8,2);not null;default:0"`
	ApplicationRankPosition     *int       `json:"application_rank_position" gorm:"column:application_rank_position"`
	ApplicationAdvanceInterview bool       `json:"application_advance_interview" gorm:"column:application_advance_interview;not null;default:false"`
	ApplicationRankNotifiedAt   *time.Time `json:"application_rank_notified_at" gorm:"column:application_rank_notified_at"`

	// =========================
	// Timestamps
	// =========================
	ApplicationCreatedAt time.Time      `json:"application_created_at" gorm:"column:application_created_at;not null;autoCreateTime"`
	ApplicationUpdatedAt time.Time      `json:"application_updated_at" gorm:"column:application_updated_at;not null;autoUpdateTime"`
	ApplicationDeletedAt gorm.DeletedAt `json:"-" gorm:"column:application_deleted_at;index"`

	// Relasi (opsional)
	Institution *InstitutionModel `json:"institution,omitempty" gorm:"foreignKey:ApplicationInstitutionID;references:InstitutionID"`
}

func (ApplicationModel) TableName() string {
	return "applications"
}

func (m *ApplicationModel) BeforeCreate(tx *gorm.DB) error {
	if m.ApplicationID == uuid.Nil {
		m.ApplicationID = uuid.New()
	}
	return nil
}

// EligibleApplications scope: hanya aplikasi submitted + valid yang ikut
// ranking dan tampil di portal interviewer. Satu predikat untuk semua pemakai.
func EligibleApplications(db *gorm.DB, year int) *gorm.DB {
	return db.Model(&ApplicationModel{}).
		Where("application_year = ?", year).
		Where("application_status = ?", StatusSubmitted).
		Where("application_validity = ?", ValidityValid)
}

// MintCandidateNo mencari nomor kandidat 3 digit yang belum terpakai
// pada tahun tersebut. Nomor ini identitas publik anonim pelamar.
func MintCandidateNo(db *gorm.DB, year int) (string, error) {
	for i := 0; i < 50; i++ {
		no := fmt.Sprintf("%03d", rand.Intn(900)+100)
		var count int64
		if err := db.Model(&ApplicationModel{}).
			Where("application_year = ? AND application_candidate_no = ?", year, no).
			Count(&count).Error; err != nil {
			return "", err
		}
		if count == 0 {
			return no, nil
		}
	}
	return "", errors.New("nomor kandidat habis, perbesar range candidate_no")
}
