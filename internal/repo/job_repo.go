// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for the
// JobApplication model.
//
// All functions are context-aware and accept a *gorm.DB handle, making them
// safe for use within transactions. They follow the "thin repository"
// approach: no business logic, only persistence and query composition.
//
// Error semantics:
//   - When a job is not found (or not owned by the caller), functions return
//     gorm.ErrRecordNotFound (also exported here as ErrNotFound).
//   - On other DB errors, the raw gorm error is propagated.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
)

// ErrNotFound is returned when a requested record does not exist.
// It aliases gorm.ErrRecordNotFound for convenience and consistency
// across the service layer and handlers.
var ErrNotFound = gorm.ErrRecordNotFound

// CreateJob inserts j, assigning a UUID and UTC timestamps when unset.
func CreateJob(ctx context.Context, db *gorm.DB, j *domain.JobApplication) error {
	if j.ID == "" {
		j.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = now
	}
	j.UpdatedAt = now
	return db.WithContext(ctx).Create(j).Error
}

// GetJob fetches a job by id scoped to its owner.
func GetJob(ctx context.Context, db *gorm.DB, id, userID string) (*domain.JobApplication, error) {
	var j domain.JobApplication
	err := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		First(&j).Error
	if err != nil {
		return nil, err
	}
	return &j, nil
}

// CountJobs returns the total number of jobs owned by userID.
func CountJobs(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	var total int64
	err := db.WithContext(ctx).
		Model(&domain.JobApplication{}).
		Where("user_id = ?", userID).
		Count(&total).Error
	return total, err
}

// ListJobsPage returns a page of jobs for userID, newest first. The id
// tie-break keeps pages stable when several rows share a timestamp.
func ListJobsPage(ctx context.Context, db *gorm.DB, userID string, offset, limit int) ([]domain.JobApplication, error) {
	var out []domain.JobApplication
	err := db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at desc").
		Order("id asc").
		Offset(offset).
		Limit(limit).
		Find(&out).Error
	return out, err
}

// UpdateJob applies the column updates in fields to the job identified by id
// and userID. It returns ErrNotFound when no row matched.
func UpdateJob(ctx context.Context, db *gorm.DB, id, userID string, fields map[string]any) error {
	if len(fields) == 0 {
		return nil
	}
	fields["updated_at"] = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.JobApplication{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteJob removes the job row. Dependent rows are expected to be removed
// by the caller (or by FK cascades when enabled).
func DeleteJob(ctx context.Context, db *gorm.DB, id, userID string) error {
	res := db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&domain.JobApplication{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
