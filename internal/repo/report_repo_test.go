package repo

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
)

// reportFixture seeds two users. u1 owns four jobs with history, feedback and
// extras; u2 owns one job that must never leak into u1's aggregates.
func reportFixture(t *testing.T) *gorm.DB {
	t.Helper()
	db := newTestDB(t)
	seedUser(t, db, "u1")
	seedUser(t, db, "u2")

	base := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	seedJob(t, db, "j1", "u1", domain.StatusApplied, strPtr("Backend"), base)
	seedJob(t, db, "j2", "u1", domain.StatusInterview, strPtr("backend"), base.Add(time.Hour))
	seedJob(t, db, "j3", "u1", domain.StatusInterview, nil, base.Add(2*time.Hour))
	seedJob(t, db, "j5", "u1", domain.StatusRejected, strPtr("  "), base.Add(3*time.Hour))
	seedJob(t, db, "j4", "u2", domain.StatusOffer, strPtr("Backend"), base)

	history := []domain.StatusHistoryEvent{
		{ID: "h1", JobID: "j1", Status: "applied", StatusDate: "2025-01-01"},
		{ID: "h2", JobID: "j2", Status: "applied", StatusDate: "2025-01-01"},
		{ID: "h3", JobID: "j2", Status: "interview", StatusDate: "2025-01-05"},
		{ID: "h4", JobID: "j2", Status: "interview", StatusDate: "2025-01-05"},
		{ID: "h5", JobID: "j3", Status: "interview", StatusDate: "2025-01-03"},
		{ID: "h6", JobID: "j4", Status: "applied", StatusDate: "2025-01-01"},
	}
	if err := db.Create(&history).Error; err != nil {
		t.Fatalf("seed history: %v", err)
	}

	pos, neg := domain.FeedbackCategory{Name: "Good fit", Type: "positive"}, domain.FeedbackCategory{Name: "Gaps", Type: "negative"}
	if err := db.Create(&pos).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	if err := db.Create(&neg).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}

	fb := []domain.Feedback{
		{ID: "f1", JobID: "j1", CategoryID: &pos.ID, Notes: "Great culture", DetailedFeedback: "long 1", CreatedAt: base.Add(1 * time.Minute)},
		{ID: "f2", JobID: "j2", CategoryID: &neg.ID, Notes: "5 stars", CreatedAt: base.Add(2 * time.Minute)},
		{ID: "f3", JobID: "j3", Notes: "Solid team", CreatedAt: base.Add(3 * time.Minute)},
		{ID: "f5", JobID: "j5", CategoryID: &neg.ID, Notes: "", CreatedAt: base.Add(4 * time.Minute)},
		{ID: "f4", JobID: "j4", CategoryID: &pos.ID, Notes: "Other user", CreatedAt: base.Add(5 * time.Minute)},
	}
	if err := db.Create(&fb).Error; err != nil {
		t.Fatalf("seed feedback: %v", err)
	}

	strengths := []domain.FeedbackStrength{
		{ID: "s1", FeedbackID: "f1", IsPriority: true, Value: "Coding"},
		{ID: "s2", FeedbackID: "f1", Value: "Teamwork", Position: 1},
		{ID: "s3", FeedbackID: "f2", Value: "Coding"},
		{ID: "s4", FeedbackID: "f3", Value: "Coding"},
		{ID: "s5", FeedbackID: "f3", Value: "Teamwork", Position: 1},
		{ID: "s6", FeedbackID: "f3", Value: "Design", Position: 2},
		{ID: "s7", FeedbackID: "f4", Value: "Design"},
		{ID: "s8", FeedbackID: "f4", Value: "Design", Position: 1},
	}
	if err := db.Create(&strengths).Error; err != nil {
		t.Fatalf("seed strengths: %v", err)
	}
	improvements := []domain.FeedbackImprovement{
		{ID: "i1", FeedbackID: "f1", IsPriority: true, Value: "Communication"},
		{ID: "i2", FeedbackID: "f2", Value: "Communication"},
		{ID: "i3", FeedbackID: "f3", Value: "Time management"},
	}
	if err := db.Create(&improvements).Error; err != nil {
		t.Fatalf("seed improvements: %v", err)
	}
	return db
}

func TestCountJobsGroupedByStatus_SumsToTotal(t *testing.T) {
	db := reportFixture(t)
	ctx := context.Background()

	total, err := CountJobsByUser(ctx, db, "u1")
	if err != nil {
		t.Fatalf("CountJobsByUser: %v", err)
	}
	counts, err := CountJobsGroupedByStatus(ctx, db, "u1")
	if err != nil {
		t.Fatalf("CountJobsGroupedByStatus: %v", err)
	}
	want := map[string]int64{"applied": 1, "interview": 2, "rejected": 1}
	if !reflect.DeepEqual(counts, want) {
		t.Fatalf("status counts = %v; want %v", counts, want)
	}
	var sum int64
	for _, n := range counts {
		sum += n
	}
	if sum != total || total != 4 {
		t.Fatalf("sum=%d total=%d; want both 4", sum, total)
	}
}

func TestCountJobsGroupedByStatus_NoJobs(t *testing.T) {
	db := newTestDB(t)
	counts, err := CountJobsGroupedByStatus(context.Background(), db, "nobody")
	if err != nil {
		t.Fatalf("unexpected err: %v", err)
	}
	if len(counts) != 0 {
		t.Fatalf("expected empty map, got %v", counts)
	}
}

func TestQueryStatusHistory_DistinctJobsPerStatusDate(t *testing.T) {
	db := reportFixture(t)
	got, err := QueryStatusHistory(context.Background(), db, "u1", DateRange{})
	if err != nil {
		t.Fatalf("QueryStatusHistory: %v", err)
	}
	want := []domain.StatusTrend{
		{Status: "applied", StatusDate: "2025-01-01", Count: 2},
		{Status: "interview", StatusDate: "2025-01-03", Count: 1},
		{Status: "interview", StatusDate: "2025-01-05", Count: 1},
	}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("trends = %+v; want %+v", got, want)
	}
}

func TestQueryStatusHistory_DateRange(t *testing.T) {
	db := reportFixture(t)
	got, err := QueryStatusHistory(context.Background(), db, "u1", DateRange{From: "2025-01-02", To: "2025-01-04"})
	if err != nil {
		t.Fatalf("QueryStatusHistory: %v", err)
	}
	if len(got) != 1 || got[0].StatusDate != "2025-01-03" {
		t.Fatalf("unexpected range result: %+v", got)
	}
}

func TestQueryFeedbackCategoryCounts_RoleFilterIsCaseSensitive(t *testing.T) {
	db := reportFixture(t)
	ctx := context.Background()

	all, err := QueryFeedbackCategoryCounts(ctx, db, "u1", nil)
	if err != nil {
		t.Fatalf("counts: %v", err)
	}
	if !reflect.DeepEqual(all, map[string]int64{"positive": 1, "negative": 2}) {
		t.Fatalf("unexpected counts: %v", all)
	}

	upper, err := QueryFeedbackCategoryCounts(ctx, db, "u1", strPtr("Backend"))
	if err != nil {
		t.Fatalf("counts Backend: %v", err)
	}
	if !reflect.DeepEqual(upper, map[string]int64{"positive": 1}) {
		t.Fatalf("role Backend counts = %v", upper)
	}

	lower, err := QueryFeedbackCategoryCounts(ctx, db, "u1", strPtr("backend"))
	if err != nil {
		t.Fatalf("counts backend: %v", err)
	}
	if !reflect.DeepEqual(lower, map[string]int64{"negative": 1}) {
		t.Fatalf("role backend counts = %v", lower)
	}
}

func TestQueryTopStrengthsAndImprovements(t *testing.T) {
	db := reportFixture(t)
	ctx := context.Background()

	got, err := QueryTopStrengths(ctx, db, "u1", nil, 5)
	if err != nil {
		t.Fatalf("QueryTopStrengths: %v", err)
	}
	want := []domain.ValueCount{{Value: "Coding", Count: 3}, {Value: "Teamwork", Count: 2}, {Value: "Design", Count: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("strengths = %+v; want %+v", got, want)
	}

	limited, err := QueryTopStrengths(ctx, db, "u1", nil, 1)
	if err != nil || len(limited) != 1 || limited[0].Value != "Coding" {
		t.Fatalf("limit 1 => %+v, %v", limited, err)
	}

	imp, err := QueryTopImprovements(ctx, db, "u1", strPtr("Backend"), 5)
	if err != nil {
		t.Fatalf("QueryTopImprovements: %v", err)
	}
	if !reflect.DeepEqual(imp, []domain.ValueCount{{Value: "Communication", Count: 1}}) {
		t.Fatalf("improvements Backend = %+v", imp)
	}
}

func TestQueryTopStrengths_CapsAtLimitAndOrdersByCount(t *testing.T) {
	db := newTestDB(t)
	seedUser(t, db, "u1")
	seedJob(t, db, "j1", "u1", "applied", nil, time.Now().UTC())
	if err := db.Create(&domain.Feedback{ID: "f1", JobID: "j1", Notes: "x"}).Error; err != nil {
		t.Fatalf("seed feedback: %v", err)
	}
	values := []string{"a", "b", "b", "c", "c", "c", "d", "e", "f", "g", "g"}
	for i, v := range values {
		row := domain.FeedbackStrength{ID: "s" + string(rune('A'+i)), FeedbackID: "f1", Value: v, Position: i}
		if err := db.Create(&row).Error; err != nil {
			t.Fatalf("seed strength: %v", err)
		}
	}
	got, err := QueryTopStrengths(context.Background(), db, "u1", nil, 0)
	if err != nil {
		t.Fatalf("QueryTopStrengths: %v", err)
	}
	if len(got) != 5 {
		t.Fatalf("expected 5 entries, got %d", len(got))
	}
	for i := 1; i < len(got); i++ {
		if got[i].Count > got[i-1].Count {
			t.Fatalf("not ordered by count desc: %+v", got)
		}
	}
	if got[0].Value != "c" || got[0].Count != 3 {
		t.Fatalf("unexpected head: %+v", got[0])
	}
}

func TestQueryDetailedFeedback_FiltersNotesStartingWithLetter(t *testing.T) {
	db := reportFixture(t)
	got, err := QueryDetailedFeedback(context.Background(), db, "u1", nil)
	if err != nil {
		t.Fatalf("QueryDetailedFeedback: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 entries, got %d: %+v", len(got), got)
	}
	if got[0].Notes != "Solid team" || got[1].Notes != "Great culture" {
		t.Fatalf("unexpected order/content: %+v", got)
	}
	if got[1].JobTitle != "Engineer j1" || got[1].Company != "Acme" || got[1].Status != "applied" || got[1].DetailedFeedback != "long 1" {
		t.Fatalf("unexpected joined fields: %+v", got[1])
	}
	if !got[0].CreatedAt.After(got[1].CreatedAt) {
		t.Fatalf("expected newest first")
	}
	for _, d := range got {
		if d.Notes == "" || strings.HasPrefix(d.Notes, "5") {
			t.Fatalf("filtered note leaked: %q", d.Notes)
		}
	}
}

func TestStartsWithLetter_Dialects(t *testing.T) {
	db := newTestDB(t)
	if got := startsWithLetter(db, "n"); got != "n GLOB '[A-Za-z]*'" {
		t.Fatalf("sqlite predicate = %q", got)
	}
}

func TestQueryDistinctRoles(t *testing.T) {
	db := reportFixture(t)
	roles, err := QueryDistinctRoles(context.Background(), db, "u1")
	if err != nil {
		t.Fatalf("QueryDistinctRoles: %v", err)
	}
	if !reflect.DeepEqual(roles, []string{"Backend", "backend"}) {
		t.Fatalf("roles = %v", roles)
	}
	none, err := QueryDistinctRoles(context.Background(), db, "nobody")
	if err != nil || len(none) != 0 {
		t.Fatalf("expected no roles, got %v (%v)", none, err)
	}
}

func TestReportQueries_PropagateStoreErrors(t *testing.T) {
	db := reportFixture(t)
	boom := errors.New("forced-query-error")
	fail := func(tx *gorm.DB) { tx.AddError(boom) }
	if err := db.Callback().Query().Before("gorm:query").Register("force_report_err", fail); err != nil {
		t.Fatalf("register query callback: %v", err)
	}
	// Scan goes through the row processor.
	if err := db.Callback().Row().Before("gorm:row").Register("force_report_err", fail); err != nil {
		t.Fatalf("register row callback: %v", err)
	}
	ctx := context.Background()
	if _, err := CountJobsGroupedByStatus(ctx, db, "u1"); !errors.Is(err, boom) {
		t.Fatalf("status counts err = %v", err)
	}
	if _, err := QueryStatusHistory(ctx, db, "u1", DateRange{}); !errors.Is(err, boom) {
		t.Fatalf("history err = %v", err)
	}
	if _, err := QueryFeedbackCategoryCounts(ctx, db, "u1", nil); !errors.Is(err, boom) {
		t.Fatalf("category counts err = %v", err)
	}
	if _, err := QueryTopImprovements(ctx, db, "u1", nil, 5); !errors.Is(err, boom) {
		t.Fatalf("improvements err = %v", err)
	}
	if _, err := QueryDetailedFeedback(ctx, db, "u1", nil); !errors.Is(err, boom) {
		t.Fatalf("detailed err = %v", err)
	}
}
