// file: internals/testutil/db.go
package testutil

import (
	"fmt"
	"sync/atomic"
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	appModel "beasiswaku_backend/internals/features/fellowship/applications/model"
	criterionModel "beasiswaku_backend/internals/features/fellowship/criteria/model"
	evalModel "beasiswaku_backend/internals/features/fellowship/evaluations/model"
	interviewerModel "beasiswaku_backend/internals/features/fellowship/interviewers/model"
	notifModel "beasiswaku_backend/internals/features/home/notifications/model"
)

var testDBSeq atomic.Int64

// OpenTestDB membuka SQLite in-memory per test dengan seluruh skema termigrasi.
// Nama DB unik per pemanggilan supaya antar test tidak berbagi data,
// sementara cache=shared menjaga pool koneksi melihat DB yang sama.
func OpenTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:testdb%d?mode=memory&cache=shared", testDBSeq.Add(1))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if sqlDB, err := db.DB(); err == nil {
		// Satu koneksi saja: DB in-memory ikut hilang kalau koneksinya ditutup pool.
		sqlDB.SetMaxOpenConns(1)
		t.Cleanup(func() { _ = sqlDB.Close() })
	}

	if err := db.AutoMigrate(
		&criterionModel.CriterionModel{},
		&appModel.InstitutionModel{},
		&appModel.ApplicationModel{},
		&evalModel.EvaluationModel{},
		&evalModel.InterviewScoreModel{},
		&evalModel.CriterionScoreModel{},
		&interviewerModel.InterviewerModel{},
		&notifModel.NotificationModel{},
	); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}
