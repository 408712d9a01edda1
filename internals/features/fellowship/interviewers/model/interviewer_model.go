// file: internals/features/fellowship/interviewers/model/interviewer_model.go
package model

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// ErrAccessDenied dikembalikan untuk SEMUA kegagalan resolve token
// (token tidak ada / nonaktif / kadaluarsa) supaya tidak bocor kondisi
// mana yang terjadi (anti token-enumeration).
var ErrAccessDenied = errors.New("akses ditolak")

// InterviewerModel merepresentasikan tabel `interviewers`:
// penilai eksternal yang masuk lewat magic link (access token di URL),
// tanpa akun password.
type InterviewerModel struct {
	InterviewerID uuid.UUID `json:"interviewer_id" gorm:"column:interviewer_id;type:uuid;primaryKey"`

	InterviewerYear int `json:"interviewer_year" gorm:"column:interviewer_year;not null;index"`

	InterviewerName        string         `json:"interviewer_name" gorm:"column:interviewer_name;type:varchar(120);not null"`
	InterviewerEmail       string         `json:"interviewer_email" gorm:"column:interviewer_email;type:varchar(180);not null"`
	InterviewerInstitution *string        `json:"interviewer_institution" gorm:"column:interviewer_institution;type:varchar(180)"`
	InterviewerSpecialties datatypes.JSON `json:"interviewer_specialties" gorm:"column:interviewer_specialties;type:jsonb"`

	// =========================
	// Kredensial magic link
	// =========================
	InterviewerAccessToken    string     `json:"-" gorm:"column:interviewer_access_token;type:varchar(64);not null;uniqueIndex"`
	InterviewerTokenIssuedAt  time.Time  `json:"interviewer_token_issued_at" gorm:"column:interviewer_token_issued_at;not null"`
	InterviewerTokenExpiresAt *time.Time `json:"interviewer_token_expires_at" gorm:"column:interviewer_token_expires_at"`

	InterviewerIsActive      bool       `json:"interviewer_is_active" gorm:"column:interviewer_is_active;not null"`
	InterviewerDeactivatedAt *time.Time `json:"interviewer_deactivated_at" gorm:"column:interviewer_deactivated_at"`

	InterviewerCreatedAt time.Time      `json:"interviewer_created_at" gorm:"column:interviewer_created_at;not null;autoCreateTime"`
	InterviewerUpdatedAt time.Time      `json:"interviewer_updated_at" gorm:"column:interviewer_updated_at;not null;autoUpdateTime"`
	InterviewerDeletedAt gorm.DeletedAt `json:"-" gorm:"column:interviewer_deleted_at;index"`
}

func (InterviewerModel) TableName() string {
	return "interviewers"
}

func (m *InterviewerModel) BeforeCreate(tx *gorm.DB) error {
	if m.InterviewerID == uuid.Nil {
		m.InterviewerID = uuid.New()
	}
	return nil
}

// ResolveByAccessToken mencari interviewer berdasarkan token magic link.
// Token harus aktif dan belum kadaluarsa; divalidasi ulang di SETIAP request
// (stateless, tidak ada sesi yang di-cache).
func ResolveByAccessToken(db *gorm.DB, token string) (*InterviewerModel, error) {
	if token == "" {
		return nil, ErrAccessDenied
	}

	var iv InterviewerModel
	err := db.
		Where("interviewer_access_token = ?", token).
		Where("interviewer_is_active = ?", true).
		First(&iv).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccessDenied
		}
		return nil, err
	}

	if iv.InterviewerTokenExpiresAt != nil && time.Now().After(*iv.InterviewerTokenExpiresAt) {
		return nil, ErrAccessDenied
	}
	return &iv, nil
}
