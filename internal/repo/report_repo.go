// Package repo implements the data persistence layer for domain entities,
// backed by GORM. This file holds the aggregate queries behind the reporting
// endpoints (dashboard, status trends, feedback insights, roles).
//
// Every query is scoped to one owner through job_applications.user_id and,
// where a role filter applies, to job_applications.role_category compared
// case-sensitively. Functions take the handle to run on so a caller can run
// several of them inside one read transaction.
package repo

import (
	"context"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
)

// DateRange bounds status-history queries. Empty fields are open ends.
// Dates use domain.DateLayout and are compared lexically.
type DateRange struct {
	From string
	To   string
}

// CountJobsByUser returns the number of applications owned by userID.
func CountJobsByUser(ctx context.Context, db *gorm.DB, userID string) (int64, error) {
	return CountJobs(ctx, db, userID)
}

// CountJobsGroupedByStatus maps each current status to its number of
// applications. Statuses without applications are absent.
func CountJobsGroupedByStatus(ctx context.Context, db *gorm.DB, userID string) (map[string]int64, error) {
	var rows []struct {
		Status string
		Cnt    int64
	}
	err := db.WithContext(ctx).
		Model(&domain.JobApplication{}).
		Select("status, COUNT(*) AS cnt").
		Where("user_id = ?", userID).
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Cnt
	}
	return out, nil
}

// QueryStatusHistory counts, per (status, date), the distinct jobs of userID
// that entered the status on that date, ordered by date ascending. Rows that
// share a date have no defined order.
func QueryStatusHistory(ctx context.Context, db *gorm.DB, userID string, r DateRange) ([]domain.StatusTrend, error) {
	out := []domain.StatusTrend{}
	q := db.WithContext(ctx).
		Table("job_status_history AS h").
		Select("h.status AS status, h.status_date AS status_date, COUNT(DISTINCT h.job_id) AS count").
		Joins("JOIN job_applications AS j ON j.id = h.job_id").
		Where("j.user_id = ?", userID)
	if r.From != "" {
		q = q.Where("h.status_date >= ?", r.From)
	}
	if r.To != "" {
		q = q.Where("h.status_date <= ?", r.To)
	}
	err := q.Group("h.status, h.status_date").
		Order("h.status_date ASC").
		Scan(&out).Error
	return out, err
}

// QueryFeedbackCategoryCounts maps category type to the number of feedback
// records of that type. Feedback without a category is not counted.
func QueryFeedbackCategoryCounts(ctx context.Context, db *gorm.DB, userID string, role *string) (map[string]int64, error) {
	var rows []struct {
		Type string
		Cnt  int64
	}
	q := db.WithContext(ctx).
		Table("feedback AS f").
		Select("c.type AS type, COUNT(f.id) AS cnt").
		Joins("JOIN job_applications AS j ON j.id = f.job_id").
		Joins("JOIN feedback_categories AS c ON c.id = f.category_id").
		Where("j.user_id = ?", userID)
	err := withRole(q, role).Group("c.type").Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string]int64, len(rows))
	for _, r := range rows {
		out[r.Type] = r.Cnt
	}
	return out, nil
}

// QueryTopStrengths returns up to limit distinct strength values with their
// occurrence counts, most frequent first.
func QueryTopStrengths(ctx context.Context, db *gorm.DB, userID string, role *string, limit int) ([]domain.ValueCount, error) {
	return queryTopExtras(ctx, db, "feedback_strengths", userID, role, limit)
}

// QueryTopImprovements is QueryTopStrengths over improvements.
func QueryTopImprovements(ctx context.Context, db *gorm.DB, userID string, role *string, limit int) ([]domain.ValueCount, error) {
	return queryTopExtras(ctx, db, "feedback_improvements", userID, role, limit)
}

func queryTopExtras(ctx context.Context, db *gorm.DB, table, userID string, role *string, limit int) ([]domain.ValueCount, error) {
	if limit <= 0 {
		limit = 5
	}
	var rows []struct {
		Value string
		Cnt   int64
	}
	q := db.WithContext(ctx).
		Table(table+" AS x").
		Select("x.value AS value, COUNT(*) AS cnt").
		Joins("JOIN feedback AS f ON f.id = x.feedback_id").
		Joins("JOIN job_applications AS j ON j.id = f.job_id").
		Where("j.user_id = ?", userID)
	err := withRole(q, role).
		Group("x.value").
		Order("cnt DESC").
		Order("x.value ASC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make([]domain.ValueCount, len(rows))
	for i, r := range rows {
		out[i] = domain.ValueCount{Value: r.Value, Count: r.Cnt}
	}
	return out, nil
}

// QueryDetailedFeedback lists feedback joined with its job, newest first,
// keeping only entries whose short note starts with a Latin letter.
func QueryDetailedFeedback(ctx context.Context, db *gorm.DB, userID string, role *string) ([]domain.DetailedFeedback, error) {
	out := []domain.DetailedFeedback{}
	q := db.WithContext(ctx).
		Table("feedback AS f").
		Select("j.job_title AS job_title, j.company AS company, f.notes AS notes, " +
			"f.detailed_feedback AS detailed_feedback, j.status AS status, f.created_at AS created_at").
		Joins("JOIN job_applications AS j ON j.id = f.job_id").
		Where("j.user_id = ?", userID).
		Where(startsWithLetter(db, "f.notes"))
	err := withRole(q, role).
		Order("f.created_at DESC").
		Scan(&out).Error
	return out, err
}

// QueryDistinctRoles returns the non-empty role categories used by userID,
// sorted ascending.
func QueryDistinctRoles(ctx context.Context, db *gorm.DB, userID string) ([]string, error) {
	roles := []string{}
	err := db.WithContext(ctx).
		Model(&domain.JobApplication{}).
		Where("user_id = ? AND role_category IS NOT NULL AND TRIM(role_category) <> ''", userID).
		Distinct().
		Order("role_category ASC").
		Pluck("role_category", &roles).Error
	return roles, err
}

func withRole(q *gorm.DB, role *string) *gorm.DB {
	if role == nil {
		return q
	}
	return q.Where("j.role_category = ?", *role)
}

// startsWithLetter renders a dialect-specific predicate matching values of
// col whose first character is A-Z or a-z. Empty strings never match.
func startsWithLetter(db *gorm.DB, col string) string {
	switch db.Dialector.Name() {
	case "postgres":
		return col + " ~ '^[A-Za-z]'"
	case "mysql":
		return col + " REGEXP BINARY '^[A-Za-z]'"
	default:
		return col + " GLOB '[A-Za-z]*'"
	}
}
