package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	sqlite "github.com/glebarez/sqlite"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/http/middleware"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
	"github.com/tbourn/go-jobtracker-backend/internal/seed"
	"github.com/tbourn/go-jobtracker-backend/internal/services"
)

// testUserHeader stands in for RequireAuth in handler tests.
const testUserHeader = "X-Test-User"

type testAPI struct {
	t  *testing.T
	db *gorm.DB
	r  *gin.Engine
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:handlers_%s?mode=memory&cache=shared&_pragma=foreign_keys(1)", uuid.NewString())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	if err := repo.AutoMigrate(db); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

// newTestAPI wires real services over an in-memory database with the
// embedded seed applied and users u1 and u2 present.
func newTestAPI(t *testing.T) *testAPI {
	t.Helper()
	gin.SetMode(gin.TestMode)
	db := newTestDB(t)

	f, err := seed.Default()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	if _, err := seed.Apply(context.Background(), db, f); err != nil {
		t.Fatalf("apply seed: %v", err)
	}
	for _, id := range []string{"u1", "u2"} {
		u := &domain.User{ID: id, Username: "user-" + id, Email: id + "@example.com", PasswordHash: "x"}
		if err := db.Create(u).Error; err != nil {
			t.Fatalf("user: %v", err)
		}
	}

	idem := &services.IdempotencyService{DB: db}
	h := New(Deps{
		Jobs:        services.NewJobService(db),
		Feedback:    &services.FeedbackService{DB: db},
		Questions:   &services.QuestionService{DB: db},
		Reports:     services.NewReportService(db),
		Idempotency: idem,
	})

	r := gin.New()
	r.Use(middleware.RequestID())
	r.Use(func(c *gin.Context) {
		c.Set(middleware.UserIDKey, c.GetHeader(testUserHeader))
		c.Next()
	})
	r.Use(middleware.IdempotencyValidator(middleware.IdempotencyOptions{}, idem.Lookup))

	r.POST("/jobs", h.CreateJob)
	r.GET("/jobs", h.ListJobs)
	r.GET("/jobs/:id", h.GetJob)
	r.PUT("/jobs/:id", h.UpdateJob)
	r.DELETE("/jobs/:id", h.DeleteJob)
	r.GET("/jobs/:id/status-history", h.StatusHistory)
	r.GET("/feedback-categories", h.ListCategories)
	r.POST("/jobs/:id/feedback", h.CreateFeedback)
	r.GET("/jobs/:id/feedback", h.GetFeedback)
	r.PUT("/jobs/:id/feedback", h.UpdateFeedback)
	r.DELETE("/jobs/:id/feedback", h.DeleteFeedback)
	r.GET("/jobs/:id/feedback/:kind", h.GetExtras)
	r.PUT("/jobs/:id/feedback/:kind", h.ReplaceExtras)
	r.GET("/questions", h.ListQuestions)
	r.GET("/jobs/:id/recommended-questions", h.RecommendedQuestions)
	r.GET("/jobs/:id/interview-questions", h.InterviewQuestions)
	r.POST("/jobs/:id/interview-questions", h.SaveInterviewQuestions)
	r.GET("/analytics/dashboard", h.Dashboard)
	r.GET("/analytics/status-trends", h.StatusTrends)
	r.GET("/analytics/feedback-insights", h.FeedbackInsights)
	r.GET("/analytics/available-roles", h.AvailableRoles)

	return &testAPI{t: t, db: db, r: r}
}

// do sends a request as user; body is JSON-encoded unless it is a string.
func (a *testAPI) do(user, method, path string, body any, hdr map[string]string) *httptest.ResponseRecorder {
	a.t.Helper()
	var buf bytes.Buffer
	switch b := body.(type) {
	case nil:
	case string:
		buf.WriteString(b)
	default:
		if err := json.NewEncoder(&buf).Encode(b); err != nil {
			a.t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(testUserHeader, user)
	for k, v := range hdr {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	a.r.ServeHTTP(w, req)
	return w
}

// createJob posts a job as user and returns its id.
func (a *testAPI) createJob(user string, body map[string]any) string {
	a.t.Helper()
	w := a.do(user, http.MethodPost, "/jobs", body, nil)
	if w.Code != http.StatusCreated {
		a.t.Fatalf("create job: %d %s", w.Code, w.Body.String())
	}
	var j domain.JobApplication
	decode(a.t, w, &j)
	return j.ID
}

func decode(t *testing.T, w *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
}

func errCode(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var er ErrorResponse
	decode(t, w, &er)
	return er.Code
}
