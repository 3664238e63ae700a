package handlers

import (
	"context"
	"time"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
	"github.com/tbourn/go-jobtracker-backend/internal/services"
)

//
// Service contracts (context-aware)
//

// AuthService registers and signs in users.
type AuthService interface {
	Signup(ctx context.Context, in services.SignupInput) (*services.Session, error)
	Login(ctx context.Context, login, password string) (*services.Session, error)
	Me(ctx context.Context, userID string) (*domain.User, error)
}

// JobService manages job applications owned by one user.
type JobService interface {
	Create(ctx context.Context, userID string, in services.CreateJobInput) (*domain.JobApplication, error)
	Get(ctx context.Context, userID, jobID string) (*services.JobDetail, error)
	ListPage(ctx context.Context, userID string, page, pageSize int) ([]domain.JobApplication, int64, error)
	// Stats returns the job count and latest update, used for ETags.
	Stats(ctx context.Context, userID string) (int64, *time.Time, error)
	Update(ctx context.Context, userID, jobID string, in services.UpdateJobInput) (*domain.JobApplication, error)
	Delete(ctx context.Context, userID, jobID string) error
	History(ctx context.Context, userID, jobID string) ([]domain.StatusHistoryEvent, error)
}

// FeedbackService manages the feedback of a job and its extras.
type FeedbackService interface {
	Categories(ctx context.Context, status string) ([]domain.FeedbackCategory, error)
	Get(ctx context.Context, userID, jobID string) (*services.FeedbackDetail, error)
	Create(ctx context.Context, userID, jobID string, in services.FeedbackInput) (*services.FeedbackDetail, error)
	Update(ctx context.Context, userID, jobID string, in services.FeedbackInput) (*services.FeedbackDetail, error)
	Delete(ctx context.Context, userID, jobID string) error
	Extras(ctx context.Context, userID, jobID string, kind repo.ExtrasKind) (repo.Extras, error)
	ReplaceExtras(ctx context.Context, userID, jobID string, kind repo.ExtrasKind, in repo.Extras) (repo.Extras, error)
}

// QuestionService serves the question bank and per-job interview Q&A.
type QuestionService interface {
	Bank(ctx context.Context, query, category string) ([]domain.QuestionBank, error)
	Recommended(ctx context.Context, userID, jobID string, limit int) ([]domain.QuestionBank, error)
	InterviewQuestions(ctx context.Context, userID, jobID string) ([]services.InterviewQA, error)
	SaveInterviewQuestions(ctx context.Context, userID, jobID string, items []services.InterviewQAInput) ([]services.InterviewQA, error)
}

// ReportService computes the analytics reports.
type ReportService interface {
	Dashboard(ctx context.Context, userID string) (*domain.Dashboard, error)
	StatusTrends(ctx context.Context, userID, from, to string) ([]domain.StatusTrend, error)
	FeedbackInsights(ctx context.Context, userID, role string) (*domain.FeedbackInsights, error)
	AvailableRoles(ctx context.Context, userID string) ([]string, error)
}

// IdempotencyRecorder remembers which resource an Idempotency-Key created.
type IdempotencyRecorder interface {
	Remember(ctx context.Context, userID, scope, key, resourceID string, status int) error
}

//
// Handler wiring
//

// Deps lists the services the handlers delegate to. Idempotency may be nil,
// in which case keys are validated but never recorded.
type Deps struct {
	Auth        AuthService
	Jobs        JobService
	Feedback    FeedbackService
	Questions   QuestionService
	Reports     ReportService
	Idempotency IdempotencyRecorder
}

// Handlers groups the HTTP endpoints. It depends only on the service
// contracts above.
type Handlers struct {
	authSvc   AuthService
	jobSvc    JobService
	fbSvc     FeedbackService
	qSvc      QuestionService
	reportSvc ReportService
	idem      IdempotencyRecorder
}

// New constructs Handlers bound to d.
func New(d Deps) *Handlers {
	return &Handlers{
		authSvc:   d.Auth,
		jobSvc:    d.Jobs,
		fbSvc:     d.Feedback,
		qSvc:      d.Questions,
		reportSvc: d.Reports,
		idem:      d.Idempotency,
	}
}
