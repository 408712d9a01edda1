// file: internals/features/fellowship/rankings/service/ranking_service.go
package service

import (
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	appModel "beasiswaku_backend/internals/features/fellowship/applications/model"
	notifModel "beasiswaku_backend/internals/features/home/notifications/model"
)

// RankingEntry: satu kandidat dalam daftar ranking institusi.
type RankingEntry struct {
	ApplicationID    uuid.UUID `json:"application_id"`
	CandidateNo      string    `json:"candidate_no"`
	ObjectiveScore   float64   `json:"objective_score"`
	InterviewScore   float64   `json:"interview_score"`
	TotalScore       float64   `json:"total_score"`
	RankPosition     int       `json:"rank_position"`
	AdvanceInterview bool      `json:"advance_interview"`
}

// InstitutionRanking: daftar terurut kandidat eligible satu institusi.
type InstitutionRanking struct {
	InstitutionID   uuid.UUID      `json:"institution_id"`
	InstitutionName string         `json:"institution_name"`
	AvailableSpots  int            `json:"available_spots"`
	Entries         []RankingEntry `json:"entries"`
}

// RankingService menghasilkan dan mempublikasikan ranking per institusi.
type RankingService struct {
	DB *gorm.DB
}

func NewRankingService(db *gorm.DB) *RankingService {
	return &RankingService{DB: db}
}

// Generate menyusun ulang ranking satu tahun program (opsional difilter
// satu institusi), mem-persist rank_position + flag advance_interview,
// dan mengembalikan hasilnya per institusi.
//
// Eligible = submitted + valid + punya institusi tujuan. Aplikasi tahun itu
// yang tidak eligible di-reset ranknya supaya tidak ada sisa ranking basi.
//
// Urutan deterministik: total DESC, objective DESC, submitted_at ASC,
// application_id ASC — regenerasi tanpa perubahan data menghasilkan
// urutan identik.
func (s *RankingService) Generate(year int, institutionID *uuid.UUID) ([]InstitutionRanking, error) {
	var result []InstitutionRanking

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		q := appModel.EligibleApplications(tx, year).
			Where("application_institution_id IS NOT NULL")
		if institutionID != nil {
			q = q.Where("application_institution_id = ?", *institutionID)
		}

		var apps []appModel.ApplicationModel
		if err := q.Find(&apps).Error; err != nil {
			return err
		}

		// Reset rank aplikasi yang tidak lagi masuk hitungan.
		reset := tx.Model(&appModel.ApplicationModel{}).
			Where("application_year = ?", year).
			Where("application_rank_position IS NOT NULL").
			Where(
				"application_status <> ? OR application_validity IS NULL OR application_validity <> ? OR application_institution_id IS NULL",
				appModel.StatusSubmitted, appModel.ValidityValid,
			)
		if institutionID != nil {
			reset = reset.Where("application_institution_id = ?", *institutionID)
		}
		if err := reset.Updates(map[string]interface{}{
			"application_rank_position":     nil,
			"application_advance_interview": false,
		}).Error; err != nil {
			return err
		}

		// Kelompokkan per institusi.
		groups := map[uuid.UUID][]appModel.ApplicationModel{}
		for _, a := range apps {
			instID := *a.ApplicationInstitutionID
			groups[instID] = append(groups[instID], a)
		}

		instIDs := make([]uuid.UUID, 0, len(groups))
		for id := range groups {
			instIDs = append(instIDs, id)
		}

		var institutions []appModel.InstitutionModel
		if len(instIDs) > 0 {
			if err := tx.Where("institution_id IN ?", instIDs).Find(&institutions).Error; err != nil {
				return err
			}
		}
		instByID := make(map[uuid.UUID]appModel.InstitutionModel, len(institutions))
		for _, inst := range institutions {
			instByID[inst.InstitutionID] = inst
		}

		for _, instID := range instIDs {
			group := groups[instID]
			sortGroup(group)

			inst := instByID[instID]
			ranking := InstitutionRanking{
				InstitutionID:   instID,
				InstitutionName: inst.InstitutionName,
				AvailableSpots:  inst.InstitutionAvailableSpots,
				Entries:         make([]RankingEntry, 0, len(group)),
			}

			for i, a := range group {
				pos := i + 1
				advance := pos <= inst.InstitutionAvailableSpots
				if err := tx.Model(&appModel.ApplicationModel{}).
					Where("application_id = ?", a.ApplicationID).
					Updates(map[string]interface{}{
						"application_rank_position":     pos,
						"application_advance_interview": advance,
					}).Error; err != nil {
					return err
				}
				ranking.Entries = append(ranking.Entries, RankingEntry{
					ApplicationID:    a.ApplicationID,
					CandidateNo:      a.ApplicationCandidateNo,
					ObjectiveScore:   a.ApplicationObjectiveScore,
					InterviewScore:   a.ApplicationInterviewScore,
					TotalScore:       a.ApplicationTotalScore,
					RankPosition:     pos,
					AdvanceInterview: advance,
				})
			}
			result = append(result, ranking)
		}

		// Urutkan output per nama institusi supaya stabil dibaca.
		sort.Slice(result, func(i, j int) bool {
			if result[i].InstitutionName != result[j].InstitutionName {
				return result[i].InstitutionName < result[j].InstitutionName
			}
			return result[i].InstitutionID.String() < result[j].InstitutionID.String()
		})
		return nil
	})
	if err != nil {
		return nil, err
	}
	return result, nil
}

// List membaca ranking yang sudah di-persist (tanpa regenerasi).
func (s *RankingService) List(year int, institutionID *uuid.UUID) ([]InstitutionRanking, error) {
	q := appModel.EligibleApplications(s.DB, year).
		Where("application_institution_id IS NOT NULL").
		Where("application_rank_position IS NOT NULL").
		Order("application_rank_position ASC")
	if institutionID != nil {
		q = q.Where("application_institution_id = ?", *institutionID)
	}

	var apps []appModel.ApplicationModel
	if err := q.Preload("Institution").Find(&apps).Error; err != nil {
		return nil, err
	}

	byInst := map[uuid.UUID]*InstitutionRanking{}
	var order []uuid.UUID
	for _, a := range apps {
		instID := *a.ApplicationInstitutionID
		r, ok := byInst[instID]
		if !ok {
			r = &InstitutionRanking{InstitutionID: instID}
			if a.Institution != nil {
				r.InstitutionName = a.Institution.InstitutionName
				r.AvailableSpots = a.Institution.InstitutionAvailableSpots
			}
			byInst[instID] = r
			order = append(order, instID)
		}
		r.Entries = append(r.Entries, RankingEntry{
			ApplicationID:    a.ApplicationID,
			CandidateNo:      a.ApplicationCandidateNo,
			ObjectiveScore:   a.ApplicationObjectiveScore,
			InterviewScore:   a.ApplicationInterviewScore,
			TotalScore:       a.ApplicationTotalScore,
			RankPosition:     *a.ApplicationRankPosition,
			AdvanceInterview: a.ApplicationAdvanceInterview,
		})
	}

	result := make([]InstitutionRanking, 0, len(order))
	for _, id := range order {
		result = append(result, *byInst[id])
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].InstitutionName != result[j].InstitutionName {
			return result[i].InstitutionName < result[j].InstitutionName
		}
		return result[i].InstitutionID.String() < result[j].InstitutionID.String()
	})
	return result, nil
}

// Publish menulis satu notifikasi posisi ranking per aplikasi ter-ranking
// yang belum pernah dinotifikasi, lalu menandai rank_notified_at.
// Idempoten: pemanggilan kedua tanpa regenerasi tidak mengirim apa-apa
// (dobel rem: rank_notified_at + unique (application, kind)).
func (s *RankingService) Publish(year int) (int, error) {
	notified := 0

	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var apps []appModel.ApplicationModel
		err := appModel.EligibleApplications(tx, year).
			Where("application_rank_position IS NOT NULL").
			Where("application_rank_notified_at IS NULL").
			Find(&apps).Error
		if err != nil {
			return err
		}

		now := time.Now()
		for _, a := range apps {
			appID := a.ApplicationID
			notif := notifModel.NotificationModel{
				NotificationTitle: "Pengumuman Ranking Seleksi",
				NotificationBody: fmt.Sprintf(
					"Kandidat %s berada di peringkat %d untuk institusi pilihan Anda (total skor %.2f).",
					a.ApplicationCandidateNo, *a.ApplicationRankPosition, a.ApplicationTotalScore,
				),
				NotificationKind:          notifModel.KindRankPublished,
				NotificationApplicationID: &appID,
				NotificationTags:          []string{"ranking", fmt.Sprintf("year:%d", year)},
			}
			if err := tx.Clauses(clause.OnConflict{
				Columns: []clause.Column{
					{Name: "notification_application_id"},
					{Name: "notification_kind"},
				},
				DoNothing: true,
			}).Create(&notif).Error; err != nil {
				return err
			}

			if err := tx.Model(&appModel.ApplicationModel{}).
				Where("application_id = ?", appID).
				Update("application_rank_notified_at", now).Error; err != nil {
				return err
			}
			notified++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return notified, nil
}

// sortGroup mengurutkan satu grup institusi dengan tie-break deterministik.
func sortGroup(group []appModel.ApplicationModel) {
	sort.SliceStable(group, func(i, j int) bool {
		a, b := group[i], group[j]
		if a.ApplicationTotalScore != b.ApplicationTotalScore {
			return a.ApplicationTotalScore > b.ApplicationTotalScore
		}
		if a.ApplicationObjectiveScore != b.ApplicationObjectiveScore {
			return a.ApplicationObjectiveScore > b.ApplicationObjectiveScore
		}
		at, bt := a.ApplicationSubmittedAt, b.ApplicationSubmittedAt
		switch {
		case at != nil && bt != nil && !at.Equal(*bt):
			return at.Before(*bt)
		case at != nil && bt == nil:
			return true
		case at == nil && bt != nil:
			return false
		}
		return a.ApplicationID.String() < b.ApplicationID.String()
	})
}
