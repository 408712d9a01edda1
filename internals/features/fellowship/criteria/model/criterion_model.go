// file: internals/features/fellowship/criteria/model/criterion_model.go
package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Kategori kriteria penilaian.
const (
	CategoryObjective  = "objective"
	CategorySubjective = "subjective"
)

// CriterionModel merepresentasikan tabel `criteria`:
// rubrik penilaian berbobot per tahun program.
type CriterionModel struct {
	// =========================
	// Primary Key
	// =========================
	CriterionID uuid.UUID `json:"criterion_id" gorm:"column:criterion_id;type:uuid;primaryKey"`

	// =========================
	// Partisi per tahun program
	// =========================
	CriterionYear int `json:"criterion_year" gorm:"column:criterion_year;not null;index:idx_criteria_year_sort,priority:1"`

	// =========================
	// Data Utama
	// =========================
	CriterionName        string  `json:"criterion_name" gorm:"column:criterion_name;type:varchar(120);not null"`
	CriterionDisplayName string  `json:"criterion_display_name" gorm:"column:criterion_display_name;type:varchar(180);not null"`
	CriterionMaxPoints   float64 `json:"criterion_max_points" gorm:"column:criterion_max_points;type:numeric(5,2);not null;default:10"`
	CriterionWeight      float64 `json:"criterion_weight" gorm:"column:criterion_weight;type:numeric(5,2);not null;default:1"`
	CriterionCategory    string  `json:"criterion_category" gorm:"column:criterion_category;type:varchar(20);not null"`
	CriterionSortOrder   int     `json:"criterion_sort_order" gorm:"column:criterion_sort_order;not null;default:0;index:idx_criteria_year_sort,priority:2"`
	// Tanpa default DB: false dari kode harus benar-benar tersimpan false.
	CriterionIsActive bool `json:"criterion_is_active" gorm:"column:criterion_is_active;not null"`

	// =========================
	// Timestamps
	// =========================
	CriterionCreatedAt time.Time      `json:"criterion_created_at" gorm:"column:criterion_created_at;not null;autoCreateTime"`
	CriterionUpdatedAt time.Time      `json:"criterion_updated_at" gorm:"column:criterion_updated_at;not null;autoUpdateTime"`
	CriterionDeletedAt gorm.DeletedAt `json:"-" gorm:"column:criterion_deleted_at;index"`
}

func (CriterionModel) TableName() string {
	return "criteria"
}

func (m *CriterionModel) BeforeCreate(tx *gorm.DB) error {
	if m.CriterionID == uuid.Nil {
		m.CriterionID = uuid.New()
	}
	return nil
}

// NextSortOrder mengembalikan sort order berikutnya (append ke belakang)
// untuk kriteria tahun tertentu.
func NextSortOrder(db *gorm.DB, year int) (int, error) {
	var max *int
	err := db.Model(&CriterionModel{}).
		Where("criterion_year = ?", year).
		Select("MAX(criterion_sort_order)").
		Scan(&max).Error
	if err != nil {
		return 0, err
	}
	if max == nil {
		return 1, nil
	}
	return *max + 1, nil
}

// ActiveCriteria scope: kriteria aktif untuk satu tahun, urut sesuai konfigurasi.
func ActiveCriteria(db *gorm.DB, year int) *gorm.DB {
	return db.Model(&CriterionModel{}).
		Where("criterion_year = ? AND criterion_is_active = ?", year, true).
		Order("criterion_sort_order ASC")
}
