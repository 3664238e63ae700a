// Package services – FeedbackService
//
// FeedbackService governs the single feedback record a user may attach to
// each of their job applications, together with its strengths and
// improvements. Ownership of the parent job is checked inside the same
// transaction as the write, and the extras sets are always replaced whole
// (never patched).
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/unicode/norm"
)

const maxNotesRunes = 50

// FeedbackInput is the payload for creating or updating feedback. Nil
// extras leave the stored set untouched.
type FeedbackInput struct {
	CategoryID       *uint
	Notes            string
	DetailedFeedback string
	Strengths        *repo.Extras
	Improvements     *repo.Extras
}

// FeedbackDetail is a feedback with its category and both extras sets.
type FeedbackDetail struct {
	domain.Feedback
	Category     *domain.FeedbackCategory `json:"category"`
	Strengths    repo.Extras              `json:"strengths"`
	Improvements repo.Extras              `json:"improvements"`
}

// FeedbackService implements the feedback use-cases.
type FeedbackService struct {
	// DB is the database handle used for all feedback operations.
	DB *gorm.DB
}

// Categories lists feedback categories, narrowed by the job status when one
// is given: offers and acceptances see positive and neutral categories,
// rejections see negative and neutral ones, anything else sees all.
func (s *FeedbackService) Categories(ctx context.Context, status string) ([]domain.FeedbackCategory, error) {
	return repo.ListCategories(ctx, s.DB, categoryTypesFor(status))
}

func categoryTypesFor(status string) []string {
	switch strings.ToLower(strings.TrimSpace(status)) {
	case domain.StatusOffer, domain.StatusAccepted:
		return []string{domain.CategoryPositive, domain.CategoryNeutral}
	case domain.StatusRejected:
		return []string{domain.CategoryNegative, domain.CategoryNeutral}
	default:
		return nil
	}
}

// Get returns the feedback of a job owned by userID.
func (s *FeedbackService) Get(ctx context.Context, userID, jobID string) (*FeedbackDetail, error) {
	if _, err := ownedJob(ctx, s.DB, userID, jobID); err != nil {
		return nil, err
	}
	return loadFeedbackDetail(ctx, s.DB, jobID)
}

// Create attaches the first feedback to a job. A second call for the same
// job yields ErrFeedbackExists.
func (s *FeedbackService) Create(ctx context.Context, userID, jobID string, in FeedbackInput) (*FeedbackDetail, error) {
	ctx, span := otel.Tracer("services/FeedbackService").Start(ctx, "Create",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("job.id", jobID),
		),
	)
	defer span.End()

	notes, err := validateNotes(in.Notes)
	if err != nil {
		return nil, err
	}

	var out *FeedbackDetail
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedJob(ctx, tx, userID, jobID); err != nil {
			return err
		}
		if err := checkCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		f := &domain.Feedback{
			JobID:            jobID,
			CategoryID:       in.CategoryID,
			Notes:            notes,
			DetailedFeedback: strings.TrimSpace(in.DetailedFeedback),
		}
		if err := repo.CreateFeedback(ctx, tx, f); err != nil {
			if errors.Is(err, repo.ErrDuplicate) {
				return ErrFeedbackExists
			}
			return err
		}
		if err := replaceExtras(ctx, tx, f.ID, in); err != nil {
			return err
		}
		out, err = loadFeedbackDetail(ctx, tx, jobID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Update overwrites the feedback of a job. Extras included in the payload
// are replaced in the same transaction.
func (s *FeedbackService) Update(ctx context.Context, userID, jobID string, in FeedbackInput) (*FeedbackDetail, error) {
	ctx, span := otel.Tracer("services/FeedbackService").Start(ctx, "Update",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("job.id", jobID),
		),
	)
	defer span.End()

	notes, err := validateNotes(in.Notes)
	if err != nil {
		return nil, err
	}

	var out *FeedbackDetail
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, err := ownedFeedback(ctx, tx, userID, jobID)
		if err != nil {
			return err
		}
		if err := checkCategory(ctx, tx, in.CategoryID); err != nil {
			return err
		}
		f.CategoryID = in.CategoryID
		f.Notes = notes
		f.DetailedFeedback = strings.TrimSpace(in.DetailedFeedback)
		if err := repo.UpdateFeedback(ctx, tx, f); err != nil {
			return err
		}
		if err := replaceExtras(ctx, tx, f.ID, in); err != nil {
			return err
		}
		out, err = loadFeedbackDetail(ctx, tx, jobID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the feedback of a job and both extras sets.
func (s *FeedbackService) Delete(ctx context.Context, userID, jobID string) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, err := ownedFeedback(ctx, tx, userID, jobID)
		if err != nil {
			return err
		}
		return repo.DeleteFeedback(ctx, tx, f.ID)
	})
}

// Extras returns the strengths or improvements of a job's feedback.
func (s *FeedbackService) Extras(ctx context.Context, userID, jobID string, kind repo.ExtrasKind) (repo.Extras, error) {
	if !kind.Valid() {
		return repo.Extras{}, fmt.Errorf("%w: unknown extras kind %q", ErrValidation, kind)
	}
	f, err := ownedFeedback(ctx, s.DB, userID, jobID)
	if err != nil {
		return repo.Extras{}, err
	}
	return repo.GetFeedbackExtras(ctx, s.DB, f.ID, kind)
}

// ReplaceExtras atomically swaps the strengths or improvements of a job's
// feedback for in and returns the stored result. Values are trimmed and
// NFC-normalized; blank values are dropped.
func (s *FeedbackService) ReplaceExtras(ctx context.Context, userID, jobID string, kind repo.ExtrasKind, in repo.Extras) (repo.Extras, error) {
	ctx, span := otel.Tracer("services/FeedbackService").Start(ctx, "ReplaceExtras",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("job.id", jobID),
			attribute.String("extras.kind", string(kind)),
		),
	)
	defer span.End()

	if !kind.Valid() {
		return repo.Extras{}, fmt.Errorf("%w: unknown extras kind %q", ErrValidation, kind)
	}
	var out repo.Extras
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		f, err := ownedFeedback(ctx, tx, userID, jobID)
		if err != nil {
			return err
		}
		priority, additional := normalizeExtras(in)
		if err := repo.ReplaceFeedbackExtras(ctx, tx, f.ID, kind, priority, additional); err != nil {
			return err
		}
		out, err = repo.GetFeedbackExtras(ctx, tx, f.ID, kind)
		return err
	})
	if err != nil {
		return repo.Extras{}, err
	}
	zerolog.Ctx(ctx).Debug().Str("job_id", jobID).Str("kind", string(kind)).Msg("feedback extras replaced")
	return out, nil
}

// ownedFeedback resolves the feedback of a job owned by userID.
func ownedFeedback(ctx context.Context, db *gorm.DB, userID, jobID string) (*domain.Feedback, error) {
	if _, err := ownedJob(ctx, db, userID, jobID); err != nil {
		return nil, err
	}
	f, err := repo.GetFeedbackByJob(ctx, db, jobID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	return f, nil
}

// loadFeedbackDetail assembles the feedback of jobID, or ErrFeedbackNotFound.
func loadFeedbackDetail(ctx context.Context, db *gorm.DB, jobID string) (*FeedbackDetail, error) {
	f, err := repo.GetFeedbackByJob(ctx, db, jobID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrFeedbackNotFound
		}
		return nil, err
	}
	d := &FeedbackDetail{Feedback: *f}
	if f.CategoryID != nil {
		c, err := repo.GetCategory(ctx, db, *f.CategoryID)
		if err != nil && !errors.Is(err, repo.ErrNotFound) {
			return nil, err
		}
		d.Category = c
	}
	if d.Strengths, err = repo.GetFeedbackExtras(ctx, db, f.ID, repo.ExtrasStrengths); err != nil {
		return nil, err
	}
	if d.Improvements, err = repo.GetFeedbackExtras(ctx, db, f.ID, repo.ExtrasImprovements); err != nil {
		return nil, err
	}
	return d, nil
}

func replaceExtras(ctx context.Context, tx *gorm.DB, feedbackID string, in FeedbackInput) error {
	if in.Strengths != nil {
		p, a := normalizeExtras(*in.Strengths)
		if err := repo.ReplaceFeedbackExtras(ctx, tx, feedbackID, repo.ExtrasStrengths, p, a); err != nil {
			return err
		}
	}
	if in.Improvements != nil {
		p, a := normalizeExtras(*in.Improvements)
		if err := repo.ReplaceFeedbackExtras(ctx, tx, feedbackID, repo.ExtrasImprovements, p, a); err != nil {
			return err
		}
	}
	return nil
}

func checkCategory(ctx context.Context, db *gorm.DB, id *uint) error {
	if id == nil {
		return nil
	}
	if _, err := repo.GetCategory(ctx, db, *id); err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return ErrCategoryNotFound
		}
		return err
	}
	return nil
}

func validateNotes(v string) (string, error) {
	v = strings.TrimSpace(v)
	if utf8.RuneCountInString(v) > maxNotesRunes {
		return "", fmt.Errorf("%w: notes exceed %d characters", ErrValidation, maxNotesRunes)
	}
	return v, nil
}

// normalizeExtras NFC-normalizes and trims every value. Blank filtering is
// left to the repository.
func normalizeExtras(in repo.Extras) (*string, []string) {
	var p *string
	if in.Priority != nil {
		v := strings.TrimSpace(norm.NFC.String(*in.Priority))
		p = &v
	}
	add := make([]string, 0, len(in.Additional))
	for _, a := range in.Additional {
		add = append(add, strings.TrimSpace(norm.NFC.String(a)))
	}
	return p, add
}
