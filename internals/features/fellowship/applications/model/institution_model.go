// file: internals/features/fellowship/applications/model/institution_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// InstitutionModel merepresentasikan tabel `institutions`:
// kampus/lembaga tujuan dengan kapasitas kursi (available spots)
// yang dipakai generator ranking untuk menandai kandidat lolos interview.
type InstitutionModel struct {
	InstitutionID uuid.UUID `json:"institution_id" gorm:"column:institution_id;type:uuid;primaryKey"`

	InstitutionName           string `json:"institution_name" gorm:"column:institution_name;type:varchar(180);not null"`
	InstitutionCity           *string `json:"institution_city" gorm:"column:institution_city;type:varchar(120)"`
	InstitutionAvailableSpots int    `json:"institution_available_spots" gorm:"column:institution_available_spots;not null;default:0"`
	InstitutionIsActive       bool   `json:"institution_is_active" gorm:"column:institution_is_active;not null"`

	InstitutionCreatedAt time.Time      `json:"institution_created_at" gorm:"column:institution_created_at;not null;autoCreateTime"`
	InstitutionUpdatedAt time.Time      `json:"institution_updated_at" gorm:"column:institution_updated_at;not null;autoUpdateTime"`
	InstitutionDeletedAt gorm.DeletedAt `json:"-" gorm:"column:institution_deleted_at;index"`
}

func (InstitutionModel) TableName() string {
	return "institutions"
}

func (m *InstitutionModel) BeforeCreate(tx *gorm.DB) error {
	if m.InstitutionID == uuid.Nil {
		m.InstitutionID = uuid.New()
	}
	return nil
}
