// Package services – ReportService
//
// ReportService computes the analytics views over a user's applications:
// the dashboard, status trends, feedback insights and the available role
// categories. All operations are read-only. Feedback insights run inside one
// read transaction so the counts, rankings and detailed list describe the
// same snapshot.
//
// Observability: every public method opens an OpenTelemetry span and records
// reports_generated_total / report_duration_seconds.
package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/observability"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// TopN is the number of ranked strengths and improvements in insights.
const TopN = 5

// ReportStore defines the aggregate queries required by ReportService.
// Every method runs on the handle it is given.
type ReportStore interface {
	CountJobsByUser(ctx context.Context, db *gorm.DB, userID string) (int64, error)
	CountJobsGroupedByStatus(ctx context.Context, db *gorm.DB, userID string) (map[string]int64, error)
	QueryStatusHistory(ctx context.Context, db *gorm.DB, userID string, r repo.DateRange) ([]domain.StatusTrend, error)
	QueryFeedbackCategoryCounts(ctx context.Context, db *gorm.DB, userID string, role *string) (map[string]int64, error)
	QueryTopStrengths(ctx context.Context, db *gorm.DB, userID string, role *string, limit int) ([]domain.ValueCount, error)
	QueryTopImprovements(ctx context.Context, db *gorm.DB, userID string, role *string, limit int) ([]domain.ValueCount, error)
	QueryDetailedFeedback(ctx context.Context, db *gorm.DB, userID string, role *string) ([]domain.DetailedFeedback, error)
	QueryDistinctRoles(ctx context.Context, db *gorm.DB, userID string) ([]string, error)
}

// GormReportStore is the ReportStore backed by the repo package.
type GormReportStore struct{}

func (GormReportStore) CountJobsByUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return repo.CountJobsByUser(ctx, db, userID)
}

func (GormReportStore) CountJobsGroupedByStatus(ctx context.Context, db *gorm.DB, userID string) (map[string]int64, error) {
	return repo.CountJobsGroupedByStatus(ctx, db, userID)
}

func (GormReportStore) QueryStatusHistory(ctx context.Context, db *gorm.DB, userID string, r repo.DateRange) ([]domain.StatusTrend, error) {
	return repo.QueryStatusHistory(ctx, db, userID, r)
}

func (GormReportStore) QueryFeedbackCategoryCounts(ctx context.Context, db *gorm.DB, userID string, role *string) (map[string]int64, error) {
	return repo.QueryFeedbackCategoryCounts(ctx, db, userID, role)
}

func (GormReportStore) QueryTopStrengths(ctx context.Context, db *gorm.DB, userID string, role *string, limit int) ([]domain.ValueCount, error) {
	return repo.QueryTopStrengths(ctx, db, userID, role, limit)
}

func (GormReportStore) QueryTopImprovements(ctx context.Context, db *gorm.DB, userID string, role *string, limit int) ([]domain.ValueCount, error) {
	return repo.QueryTopImprovements(ctx, db, userID, role, limit)
}

func (GormReportStore) QueryDetailedFeedback(ctx context.Context, db *gorm.DB, userID string, role *string) ([]domain.DetailedFeedback, error) {
	return repo.QueryDetailedFeedback(ctx, db, userID, role)
}

func (GormReportStore) QueryDistinctRoles(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	return repo.QueryDistinctRoles(ctx, db, userID)
}

// ReportService computes analytics for one user at a time.
type ReportService struct {
	// DB is the GORM handle used for all report queries.
	DB *gorm.DB
	// Store runs the aggregate queries.
	Store ReportStore
}

// NewReportService constructs a ReportService over the repo-backed store.
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{DB: db, Store: GormReportStore{}}
}

// Dashboard returns the total number of applications and the count per
// current status. Statuses without applications are omitted.
func (s *ReportService) Dashboard(ctx context.Context, userID string) (d *domain.Dashboard, err error) {
	ctx, span := otel.Tracer("services/ReportService").Start(ctx, "Dashboard",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()
	defer observeReport("dashboard", time.Now(), &err)

	total, err := s.Store.CountJobsByUser(ctx, s.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("count jobs: %w", err)
	}
	counts, err := s.Store.CountJobsGroupedByStatus(ctx, s.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("count jobs by status: %w", err)
	}
	if counts == nil {
		counts = map[string]int64{}
	}
	return &domain.Dashboard{TotalApplications: total, StatusCounts: counts}, nil
}

// StatusTrends returns, per (status, date), how many distinct jobs entered
// the status on that date, ordered by date. from and to are optional
// inclusive bounds in domain.DateLayout; an unparseable bound or from > to
// is rejected with ErrInvalidDate or ErrValidation before any query runs.
func (s *ReportService) StatusTrends(ctx context.Context, userID, from, to string) (out []domain.StatusTrend, err error) {
	ctx, span := otel.Tracer("services/ReportService").Start(ctx, "StatusTrends",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("range.from", from),
			attribute.String("range.to", to),
		),
	)
	defer span.End()
	defer observeReport("status_trends", time.Now(), &err)

	r, err := parseRange(from, to)
	if err != nil {
		return nil, err
	}
	out, err = s.Store.QueryStatusHistory(ctx, s.DB, userID, r)
	if err != nil {
		return nil, fmt.Errorf("query status history: %w", err)
	}
	return out, nil
}

// FeedbackInsights aggregates the user's feedback, optionally restricted to
// applications whose role category equals role exactly. An empty role means
// no filter.
func (s *ReportService) FeedbackInsights(ctx context.Context, userID, role string) (ins *domain.FeedbackInsights, err error) {
	ctx, span := otel.Tracer("services/ReportService").Start(ctx, "FeedbackInsights",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("role_category", role),
		),
	)
	defer span.End()
	defer observeReport("feedback_insights", time.Now(), &err)

	var rolePtr *string
	if role != "" {
		rolePtr = &role
	}

	ins = &domain.FeedbackInsights{}
	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		counts, err := s.Store.QueryFeedbackCategoryCounts(ctx, tx, userID, rolePtr)
		if err != nil {
			return fmt.Errorf("feedback counts: %w", err)
		}
		strengths, err := s.Store.QueryTopStrengths(ctx, tx, userID, rolePtr, TopN)
		if err != nil {
			return fmt.Errorf("top strengths: %w", err)
		}
		improvements, err := s.Store.QueryTopImprovements(ctx, tx, userID, rolePtr, TopN)
		if err != nil {
			return fmt.Errorf("top improvements: %w", err)
		}
		detailed, err := s.Store.QueryDetailedFeedback(ctx, tx, userID, rolePtr)
		if err != nil {
			return fmt.Errorf("detailed feedback: %w", err)
		}

		ins.FeedbackCounts = counts
		ins.TopStrengths = make([]domain.StrengthCount, 0, len(strengths))
		for _, v := range capTop(strengths) {
			ins.TopStrengths = append(ins.TopStrengths, domain.StrengthCount{Strength: v.Value, Count: v.Count})
		}
		ins.TopImprovements = make([]domain.ImprovementCount, 0, len(improvements))
		for _, v := range capTop(improvements) {
			ins.TopImprovements = append(ins.TopImprovements, domain.ImprovementCount{Improvement: v.Value, Count: v.Count})
		}
		ins.DetailedFeedback = detailed
		return nil
	})
	if err != nil {
		return nil, err
	}
	if ins.FeedbackCounts == nil {
		ins.FeedbackCounts = map[string]int64{}
	}
	if ins.DetailedFeedback == nil {
		ins.DetailedFeedback = []domain.DetailedFeedback{}
	}
	ins.Recommendations = Recommend(ins.TopImprovements)
	return ins, nil
}

// AvailableRoles lists the distinct non-empty role categories of the user's
// applications in ascending order.
func (s *ReportService) AvailableRoles(ctx context.Context, userID string) (roles []string, err error) {
	ctx, span := otel.Tracer("services/ReportService").Start(ctx, "AvailableRoles",
		trace.WithAttributes(attribute.String("user.id", userID)),
	)
	defer span.End()
	defer observeReport("available_roles", time.Now(), &err)

	roles, err = s.Store.QueryDistinctRoles(ctx, s.DB, userID)
	if err != nil {
		return nil, fmt.Errorf("query roles: %w", err)
	}
	if roles == nil {
		roles = []string{}
	}
	return roles, nil
}

func observeReport(name string, start time.Time, errp *error) {
	observability.ObserveReport(name, start, *errp)
}

// capTop keeps at most TopN entries in descending count order. The store
// already sorts and limits; this guards against a store that does not.
func capTop(in []domain.ValueCount) []domain.ValueCount {
	if len(in) > TopN {
		in = in[:TopN]
	}
	return in
}

// parseRange validates optional inclusive date bounds.
func parseRange(from, to string) (repo.DateRange, error) {
	from, to = strings.TrimSpace(from), strings.TrimSpace(to)
	var f, t time.Time
	var err error
	if from != "" {
		if f, err = time.Parse(domain.DateLayout, from); err != nil {
			return repo.DateRange{}, fmt.Errorf("%w: from=%q", ErrInvalidDate, from)
		}
	}
	if to != "" {
		if t, err = time.Parse(domain.DateLayout, to); err != nil {
			return repo.DateRange{}, fmt.Errorf("%w: to=%q", ErrInvalidDate, to)
		}
	}
	if from != "" && to != "" && f.After(t) {
		return repo.DateRange{}, fmt.Errorf("%w: from must not be after to", ErrValidation)
	}
	return repo.DateRange{From: from, To: to}, nil
}
