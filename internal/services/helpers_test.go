package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	sqlite "github.com/glebarez/sqlite"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:svc_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("automigrate: %v", err)
	}
	return db
}

func mustUser(t *testing.T, db *gorm.DB, id string) {
	t.Helper()
	u := &domain.User{ID: id, Username: "user-" + id, Email: id + "@example.com", PasswordHash: "x"}
	if err := db.Create(u).Error; err != nil {
		t.Fatalf("seed user: %v", err)
	}
}

func fixedClock(day string) func() time.Time {
	ts, _ := time.Parse(domain.DateLayout, day)
	return func() time.Time { return ts.Add(10 * time.Hour) }
}

func sp(s string) *string { return &s }

func mustJob(t *testing.T, svc *JobService, userID string, in CreateJobInput) *domain.JobApplication {
	t.Helper()
	j, err := svc.Create(context.Background(), userID, in)
	if err != nil {
		t.Fatalf("create job: %v", err)
	}
	return j
}
