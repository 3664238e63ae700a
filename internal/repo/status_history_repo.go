package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
)

// AppendStatusEvent records that jobID entered status on date. Rows are never
// updated; re-entering a status appends another event.
func AppendStatusEvent(ctx context.Context, db *gorm.DB, jobID, status, date string) (*domain.StatusHistoryEvent, error) {
	ev := &domain.StatusHistoryEvent{
		ID:         uuid.NewString(),
		JobID:      jobID,
		Status:     status,
		StatusDate: date,
		CreatedAt:  time.Now().UTC(),
	}
	if err := db.WithContext(ctx).Create(ev).Error; err != nil {
		return nil, err
	}
	return ev, nil
}

// ListStatusHistory returns the events of jobID in chronological order.
func ListStatusHistory(ctx context.Context, db *gorm.DB, jobID string) ([]domain.StatusHistoryEvent, error) {
	out := []domain.StatusHistoryEvent{}
	err := db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Order("status_date asc").
		Order("created_at asc").
		Find(&out).Error
	return out, err
}

// DeleteStatusHistory removes every event of jobID. Only used when the job
// itself is deleted.
func DeleteStatusHistory(ctx context.Context, db *gorm.DB, jobID string) error {
	return db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Delete(&domain.StatusHistoryEvent{}).Error
}
