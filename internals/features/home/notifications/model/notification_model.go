package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

// Jenis notifikasi yang ditulis core ini.
const (
	KindRankPublished = "rank_published"
	KindAccessLink    = "access_link"
)

// NotificationModel merepresentasikan tabel `notifications`.
// Core ini hanya MENULIS record; pengiriman e-mail dilakukan
// notifier eksternal yang membaca tabel ini.
//
// Unique (application_id, kind) menjadi rem idempotensi publish ranking:
// publish kedua kalinya tidak menggandakan notifikasi.
type NotificationModel struct {
	NotificationID    uuid.UUID `json:"notification_id" gorm:"column:notification_id;type:uuid;primaryKey"`
	NotificationTitle string    `json:"notification_title" gorm:"column:notification_title;type:varchar(255);not null"`
	NotificationBody  string    `json:"notification_body" gorm:"column:notification_body;type:text"`
	NotificationKind  string    `json:"notification_kind" gorm:"column:notification_kind;type:varchar(30);not null;uniqueIndex:uq_notifications_app_kind,priority:2"`

	NotificationApplicationID *uuid.UUID `json:"notification_application_id" gorm:"column:notification_application_id;type:uuid;uniqueIndex:uq_notifications_app_kind,priority:1"`
	NotificationInterviewerID *uuid.UUID `json:"notification_interviewer_id" gorm:"column:notification_interviewer_id;type:uuid;index"`

	NotificationTags pq.StringArray `json:"notification_tags" gorm:"column:notification_tags;type:text[]"`

	NotificationCreatedAt time.Time `json:"notification_created_at" gorm:"column:notification_created_at;autoCreateTime"`
	NotificationUpdatedAt time.Time `json:"notification_updated_at" gorm:"column:notification_updated_at;autoUpdateTime"`
}

func (NotificationModel) TableName() string {
	return "notifications"
}

func (m *NotificationModel) BeforeCreate(tx *gorm.DB) error {
	if m.NotificationID == uuid.Nil {
		m.NotificationID = uuid.New()
	}
	return nil
}
