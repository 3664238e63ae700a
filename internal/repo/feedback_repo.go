// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file provides repository functions for feedback,
// feedback categories and the strengths/improvements attached to feedback.
package repo

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
)

// ExtrasKind selects the strengths or the improvements of a feedback.
type ExtrasKind string

const (
	ExtrasStrengths    ExtrasKind = "strengths"
	ExtrasImprovements ExtrasKind = "improvements"
)

// Valid reports whether k names a known extras table.
func (k ExtrasKind) Valid() bool {
	return k == ExtrasStrengths || k == ExtrasImprovements
}

// Extras is the structured form of a feedback's strengths or improvements:
// at most one priority value plus any number of additional values.
type Extras struct {
	Priority   *string  `json:"priority"`
	Additional []string `json:"additional"`
}

// GetFeedbackByJob returns the feedback attached to jobID.
func GetFeedbackByJob(ctx context.Context, db *gorm.DB, jobID string) (*domain.Feedback, error) {
	var f domain.Feedback
	if err := db.WithContext(ctx).Where("job_id = ?", jobID).First(&f).Error; err != nil {
		return nil, err
	}
	return &f, nil
}

// CreateFeedback inserts f. A second feedback for the same job violates the
// unique index and yields ErrDuplicate.
func CreateFeedback(ctx context.Context, db *gorm.DB, f *domain.Feedback) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	now := time.Now().UTC()
	f.CreatedAt, f.UpdatedAt = now, now
	if err := db.WithContext(ctx).Create(f).Error; err != nil {
		if IsDuplicate(err) {
			return ErrDuplicate
		}
		return err
	}
	return nil
}

// UpdateFeedback overwrites the editable columns of f.
func UpdateFeedback(ctx context.Context, db *gorm.DB, f *domain.Feedback) error {
	f.UpdatedAt = time.Now().UTC()
	res := db.WithContext(ctx).
		Model(&domain.Feedback{}).
		Where("id = ?", f.ID).
		Updates(map[string]any{
			"category_id":       f.CategoryID,
			"notes":             f.Notes,
			"detailed_feedback": f.DetailedFeedback,
			"updated_at":        f.UpdatedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// DeleteFeedback removes the feedback and both of its extras sets.
func DeleteFeedback(ctx context.Context, db *gorm.DB, feedbackID string) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("feedback_id = ?", feedbackID).Delete(&domain.FeedbackStrength{}).Error; err != nil {
			return err
		}
		if err := tx.Where("feedback_id = ?", feedbackID).Delete(&domain.FeedbackImprovement{}).Error; err != nil {
			return err
		}
		res := tx.Where("id = ?", feedbackID).Delete(&domain.Feedback{})
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// GetCategory fetches a feedback category by id.
func GetCategory(ctx context.Context, db *gorm.DB, id uint) (*domain.FeedbackCategory, error) {
	var c domain.FeedbackCategory
	if err := db.WithContext(ctx).Where("id = ?", id).First(&c).Error; err != nil {
		return nil, err
	}
	return &c, nil
}

// ListCategories returns categories ordered by name. When types is non-empty
// only categories of those types are returned.
func ListCategories(ctx context.Context, db *gorm.DB, types []string) ([]domain.FeedbackCategory, error) {
	out := []domain.FeedbackCategory{}
	q := db.WithContext(ctx).Model(&domain.FeedbackCategory{})
	if len(types) > 0 {
		q = q.Where("type IN ?", types)
	}
	err := q.Order("name asc").Find(&out).Error
	return out, err
}

// ReplaceFeedbackExtras atomically swaps the strengths or improvements of a
// feedback for a new set: all prior rows are deleted, then one row is
// inserted for a non-blank priority and one per non-blank additional value.
// Blank values are dropped. Either the whole replacement commits or nothing.
func ReplaceFeedbackExtras(ctx context.Context, db *gorm.DB, feedbackID string, kind ExtrasKind, priority *string, additional []string) error {
	if !kind.Valid() {
		return fmt.Errorf("unknown extras kind %q", kind)
	}
	type row struct {
		priority bool
		value    string
	}
	rows := make([]row, 0, len(additional)+1)
	if priority != nil {
		if v := strings.TrimSpace(*priority); v != "" {
			rows = append(rows, row{priority: true, value: v})
		}
	}
	for _, a := range additional {
		if v := strings.TrimSpace(a); v != "" {
			rows = append(rows, row{value: v})
		}
	}

	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		now := time.Now().UTC()
		switch kind {
		case ExtrasStrengths:
			if err := tx.Where("feedback_id = ?", feedbackID).Delete(&domain.FeedbackStrength{}).Error; err != nil {
				return err
			}
			if len(rows) == 0 {
				return nil
			}
			batch := make([]domain.FeedbackStrength, len(rows))
			for i, r := range rows {
				batch[i] = domain.FeedbackStrength{ID: uuid.NewString(), FeedbackID: feedbackID, IsPriority: r.priority, Value: r.value, Position: i, CreatedAt: now}
			}
			return tx.Create(&batch).Error
		default:
			if err := tx.Where("feedback_id = ?", feedbackID).Delete(&domain.FeedbackImprovement{}).Error; err != nil {
				return err
			}
			if len(rows) == 0 {
				return nil
			}
			batch := make([]domain.FeedbackImprovement, len(rows))
			for i, r := range rows {
				batch[i] = domain.FeedbackImprovement{ID: uuid.NewString(), FeedbackID: feedbackID, IsPriority: r.priority, Value: r.value, Position: i, CreatedAt: now}
			}
			return tx.Create(&batch).Error
		}
	})
}

// GetFeedbackExtras reads the strengths or improvements of a feedback back
// into structured form. Additional values keep their submitted order.
func GetFeedbackExtras(ctx context.Context, db *gorm.DB, feedbackID string, kind ExtrasKind) (Extras, error) {
	out := Extras{Additional: []string{}}
	if !kind.Valid() {
		return out, fmt.Errorf("unknown extras kind %q", kind)
	}
	var rows []struct {
		IsPriority bool
		Value      string
	}
	err := db.WithContext(ctx).
		Table(string("feedback_"+kind)).
		Select("is_priority, value").
		Where("feedback_id = ?", feedbackID).
		Order("position asc").
		Scan(&rows).Error
	if err != nil {
		return out, err
	}
	for _, r := range rows {
		if r.IsPriority {
			if out.Priority == nil {
				v := r.Value
				out.Priority = &v
			}
			continue
		}
		out.Additional = append(out.Additional, r.Value)
	}
	return out, nil
}
