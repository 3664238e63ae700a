// Package services – JobService
//
// JobService owns the lifecycle of job applications. It validates and
// normalizes input, enforces ownership, records status transitions in the
// append-only status history, and removes every dependent row when a job is
// deleted.
//
// Observability: public methods are OpenTelemetry-instrumented with the job
// and user identifiers as span attributes.
package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
	"github.com/tbourn/go-jobtracker-backend/internal/utils"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const (
	maxTitleRunes  = 100
	maxStatusRunes = 50
	maxRoleRunes   = 100
)

// CreateJobInput carries the fields accepted when creating a job.
type CreateJobInput struct {
	JobTitle     string
	Company      string
	RoleCategory *string
	Status       string
	AppliedDate  string
	Notes        string
}

// UpdateJobInput carries a partial update; nil fields are left unchanged.
// StatusDate only matters when Status changes the current status.
type UpdateJobInput struct {
	JobTitle     *string
	Company      *string
	RoleCategory *string
	Status       *string
	AppliedDate  *string
	Notes        *string
	StatusDate   *string
}

// JobDetail is a job with its feedback, when present.
type JobDetail struct {
	domain.JobApplication
	Feedback *FeedbackDetail `json:"feedback"`
}

// JobService provides job application operations scoped to one owner.
type JobService struct {
	// DB is the GORM handle used for persistence.
	DB *gorm.DB
	// Now returns the current time; it supplies default dates.
	Now func() time.Time
}

// NewJobService constructs a JobService using the wall clock.
func NewJobService(db *gorm.DB) *JobService {
	return &JobService{DB: db, Now: time.Now}
}

// Create validates in, inserts the job and records its first status event
// dated at the applied date, atomically.
func (s *JobService) Create(ctx context.Context, userID string, in CreateJobInput) (*domain.JobApplication, error) {
	ctx, span := otel.Tracer("services/JobService").Start(ctx, "Create",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()

	title, err := requiredText("job_title", in.JobTitle, maxTitleRunes)
	if err != nil {
		return nil, err
	}
	company, err := requiredText("company", in.Company, maxTitleRunes)
	if err != nil {
		return nil, err
	}
	role, err := normalizeRole(in.RoleCategory)
	if err != nil {
		return nil, err
	}
	status, err := normalizeStatus(in.Status)
	if err != nil {
		return nil, err
	}
	applied, err := s.dateOrToday(in.AppliedDate)
	if err != nil {
		return nil, err
	}

	j := &domain.JobApplication{
		UserID:       userID,
		JobTitle:     title,
		Company:      company,
		RoleCategory: role,
		Status:       status,
		AppliedDate:  applied,
		Notes:        strings.TrimSpace(in.Notes),
	}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := repo.CreateJob(ctx, tx, j); err != nil {
			return err
		}
		_, err := repo.AppendStatusEvent(ctx, tx, j.ID, j.Status, j.AppliedDate)
		return err
	})
	if err != nil {
		return nil, err
	}
	span.SetAttributes(attribute.String("job.id", j.ID))
	return j, nil
}

// Get returns the job with its feedback and feedback extras.
func (s *JobService) Get(ctx context.Context, userID, jobID string) (*JobDetail, error) {
	ctx, span := otel.Tracer("services/JobService").Start(ctx, "Get",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("job.id", jobID),
		),
	)
	defer span.End()

	j, err := ownedJob(ctx, s.DB, userID, jobID)
	if err != nil {
		return nil, err
	}
	fb, err := loadFeedbackDetail(ctx, s.DB, jobID)
	if err != nil && !errors.Is(err, ErrFeedbackNotFound) {
		return nil, err
	}
	return &JobDetail{JobApplication: *j, Feedback: fb}, nil
}

// ListPage returns a page of the user's jobs, newest first, and the total.
func (s *JobService) ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.JobApplication, int64, error) {
	ctx, span := otel.Tracer("services/JobService").Start(ctx, "ListPage",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.Int("page", page),
			attribute.Int("page_size", pageSize),
		),
	)
	defer span.End()

	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 20
	}
	offset := utils.Offset(page, pageSize)

	total, err := repo.CountJobs(ctx, s.DB, userID)
	if err != nil {
		return nil, 0, err
	}
	if total == 0 {
		return []domain.JobApplication{}, 0, nil
	}
	items, err := repo.ListJobsPage(ctx, s.DB, userID, offset, pageSize)
	return items, total, err
}

// Stats returns the job count and latest update time used for ETags.
func (s *JobService) Stats(ctx context.Context, userID string) (int64, *time.Time, error) {
	return repo.JobsStats(ctx, s.DB, userID)
}

// Update applies a partial update. When the status changes, a status event is
// appended dated StatusDate (default today). History is never rewritten.
func (s *JobService) Update(ctx context.Context, userID, jobID string, in UpdateJobInput) (*domain.JobApplication, error) {
	ctx, span := otel.Tracer("services/JobService").Start(ctx, "Update",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("job.id", jobID),
		),
	)
	defer span.End()

	fields := map[string]any{}
	if in.JobTitle != nil {
		v, err := requiredText("job_title", *in.JobTitle, maxTitleRunes)
		if err != nil {
			return nil, err
		}
		fields["job_title"] = v
	}
	if in.Company != nil {
		v, err := requiredText("company", *in.Company, maxTitleRunes)
		if err != nil {
			return nil, err
		}
		fields["company"] = v
	}
	if in.RoleCategory != nil {
		v, err := normalizeRole(in.RoleCategory)
		if err != nil {
			return nil, err
		}
		fields["role_category"] = v
	}
	if in.AppliedDate != nil {
		v, err := parseDate(*in.AppliedDate)
		if err != nil {
			return nil, err
		}
		fields["applied_date"] = v
	}
	if in.Notes != nil {
		fields["notes"] = strings.TrimSpace(*in.Notes)
	}
	var newStatus string
	if in.Status != nil && strings.TrimSpace(*in.Status) != "" {
		v, err := normalizeStatus(*in.Status)
		if err != nil {
			return nil, err
		}
		newStatus = v
	}
	statusDate := ""
	if in.StatusDate != nil {
		v, err := s.dateOrToday(*in.StatusDate)
		if err != nil {
			return nil, err
		}
		statusDate = v
	}

	var out *domain.JobApplication
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		cur, err := ownedJob(ctx, tx, userID, jobID)
		if err != nil {
			return err
		}
		if newStatus != "" && newStatus != cur.Status {
			fields["status"] = newStatus
			if statusDate == "" {
				statusDate = s.today()
			}
			if _, err := repo.AppendStatusEvent(ctx, tx, jobID, newStatus, statusDate); err != nil {
				return err
			}
		}
		if err := repo.UpdateJob(ctx, tx, jobID, userID, fields); err != nil {
			return err
		}
		out, err = repo.GetJob(ctx, tx, jobID, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Delete removes the job together with its feedback, feedback extras,
// status history and interview questions in one transaction.
func (s *JobService) Delete(ctx context.Context, userID, jobID string) error {
	ctx, span := otel.Tracer("services/JobService").Start(ctx, "Delete",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("job.id", jobID),
		),
	)
	defer span.End()

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedJob(ctx, tx, userID, jobID); err != nil {
			return err
		}
		fb, err := repo.GetFeedbackByJob(ctx, tx, jobID)
		switch {
		case err == nil:
			if err := repo.DeleteFeedback(ctx, tx, fb.ID); err != nil {
				return err
			}
		case !errors.Is(err, repo.ErrNotFound):
			return err
		}
		if err := repo.DeleteInterviewQuestions(ctx, tx, jobID); err != nil {
			return err
		}
		if err := repo.DeleteStatusHistory(ctx, tx, jobID); err != nil {
			return err
		}
		return repo.DeleteJob(ctx, tx, jobID, userID)
	})
	if err != nil {
		return err
	}
	zerolog.Ctx(ctx).Debug().Str("job_id", jobID).Msg("job deleted")
	return nil
}

// History returns the status events of a job in chronological order.
func (s *JobService) History(ctx context.Context, userID, jobID string) ([]domain.StatusHistoryEvent, error) {
	ctx, span := otel.Tracer("services/JobService").Start(ctx, "History",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("job.id", jobID),
		),
	)
	defer span.End()

	if _, err := ownedJob(ctx, s.DB, userID, jobID); err != nil {
		return nil, err
	}
	return repo.ListStatusHistory(ctx, s.DB, jobID)
}

func (s *JobService) today() string {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	return now().UTC().Format(domain.DateLayout)
}

func (s *JobService) dateOrToday(v string) (string, error) {
	if strings.TrimSpace(v) == "" {
		return s.today(), nil
	}
	return parseDate(v)
}

// ownedJob loads a job owned by userID, mapping absence to ErrJobNotFound.
func ownedJob(ctx context.Context, db *gorm.DB, userID, jobID string) (*domain.JobApplication, error) {
	j, err := repo.GetJob(ctx, db, jobID, userID)
	if err != nil {
		if errors.Is(err, repo.ErrNotFound) {
			return nil, ErrJobNotFound
		}
		return nil, err
	}
	return j, nil
}

// parseDate validates a YYYY-MM-DD calendar date and returns it trimmed.
func parseDate(v string) (string, error) {
	v = strings.TrimSpace(v)
	if _, err := time.Parse(domain.DateLayout, v); err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidDate, v)
	}
	return v, nil
}

var whitespaceRE = regexp.MustCompile(`\s+`)

// normalizeStatus trims and lower-cases a status, defaulting to applied.
func normalizeStatus(v string) (string, error) {
	// Casers are stateful; build one per call.
	v = cases.Lower(language.Und).String(strings.TrimSpace(v))
	if v == "" {
		return domain.StatusApplied, nil
	}
	if utf8.RuneCountInString(v) > maxStatusRunes {
		return "", fmt.Errorf("%w: status exceeds %d characters", ErrValidation, maxStatusRunes)
	}
	return v, nil
}

// normalizeRole trims a role category; blank becomes nil. Case is kept
// because role filtering is case-sensitive.
func normalizeRole(v *string) (*string, error) {
	if v == nil {
		return nil, nil
	}
	r := strings.TrimSpace(*v)
	if r == "" {
		return nil, nil
	}
	if utf8.RuneCountInString(r) > maxRoleRunes {
		return nil, fmt.Errorf("%w: role_category exceeds %d characters", ErrValidation, maxRoleRunes)
	}
	return &r, nil
}

func requiredText(field, v string, max int) (string, error) {
	v = whitespaceRE.ReplaceAllString(strings.TrimSpace(v), " ")
	if v == "" {
		return "", fmt.Errorf("%w: %s is required", ErrValidation, field)
	}
	if utf8.RuneCountInString(v) > max {
		return "", fmt.Errorf("%w: %s exceeds %d characters", ErrValidation, field, max)
	}
	return v, nil
}
