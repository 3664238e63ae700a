package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
)

// InterviewQuestionRow is a job's interview question with the bank text
// resolved when the row references the question bank.
type InterviewQuestionRow struct {
	ID             string
	QuestionBankID *uint
	CustomQuestion *string
	BankQuestion   *string
	Answer         string
}

// ListQuestionBank returns the bank in id order, optionally restricted to a
// category.
func ListQuestionBank(ctx context.Context, db *gorm.DB, category string) ([]domain.QuestionBank, error) {
	out := []domain.QuestionBank{}
	q := db.WithContext(ctx).Model(&domain.QuestionBank{})
	if category != "" {
		q = q.Where("category = ?", category)
	}
	err := q.Order("id asc").Find(&out).Error
	return out, err
}

// GetQuestionsByIDs returns the bank questions whose id is in ids.
func GetQuestionsByIDs(ctx context.Context, db *gorm.DB, ids []uint) ([]domain.QuestionBank, error) {
	out := []domain.QuestionBank{}
	if len(ids) == 0 {
		return out, nil
	}
	err := db.WithContext(ctx).Where("id IN ?", ids).Order("id asc").Find(&out).Error
	return out, err
}

// UsedBankQuestionIDs lists the bank questions already recorded for jobID.
func UsedBankQuestionIDs(ctx context.Context, db *gorm.DB, jobID string) ([]uint, error) {
	var ids []uint
	err := db.WithContext(ctx).
		Model(&domain.JobInterviewQuestion{}).
		Where("job_id = ? AND question_bank_id IS NOT NULL", jobID).
		Pluck("question_bank_id", &ids).Error
	return ids, err
}

// ListInterviewQuestions returns the questions recorded for jobID in their
// saved order.
func ListInterviewQuestions(ctx context.Context, db *gorm.DB, jobID string) ([]InterviewQuestionRow, error) {
	out := []InterviewQuestionRow{}
	err := db.WithContext(ctx).
		Table("job_interview_questions AS q").
		Select("q.id AS id, q.question_bank_id AS question_bank_id, q.custom_question AS custom_question, b.question AS bank_question, q.answer AS answer").
		Joins("LEFT JOIN question_bank AS b ON b.id = q.question_bank_id").
		Where("q.job_id = ?", jobID).
		Order("q.position asc").
		Scan(&out).Error
	return out, err
}

// ReplaceInterviewQuestions atomically replaces the question set of jobID.
// IDs, positions and timestamps are assigned here.
func ReplaceInterviewQuestions(ctx context.Context, db *gorm.DB, jobID string, items []domain.JobInterviewQuestion) error {
	return db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("job_id = ?", jobID).Delete(&domain.JobInterviewQuestion{}).Error; err != nil {
			return err
		}
		if len(items) == 0 {
			return nil
		}
		now := time.Now().UTC()
		for i := range items {
			items[i].ID = uuid.NewString()
			items[i].JobID = jobID
			items[i].Position = i
			items[i].CreatedAt = now
			items[i].UpdatedAt = now
		}
		return tx.Create(&items).Error
	})
}

// DeleteInterviewQuestions removes every question of jobID.
func DeleteInterviewQuestions(ctx context.Context, db *gorm.DB, jobID string) error {
	return db.WithContext(ctx).
		Where("job_id = ?", jobID).
		Delete(&domain.JobInterviewQuestion{}).Error
}
