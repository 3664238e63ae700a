// Package domain defines the persistence models for users, job applications,
// status history, feedback and interview questions. These types are mapped
// with GORM and form the core data layer of the job tracker.
package domain

import (
	"time"
)

// Well-known application statuses. Status is free-form; these are the values
// the client offers by default.
const (
	StatusApplied   = "applied"
	StatusInterview = "interview"
	StatusOffer     = "offer"
	StatusAccepted  = "accepted"
	StatusRejected  = "rejected"
)

// Feedback category types.
const (
	CategoryPositive = "positive"
	CategoryNegative = "negative"
	CategoryNeutral  = "neutral"
)

// DateLayout is the wire and storage format of calendar dates (applied date,
// status transition date).
const DateLayout = "2006-01-02"

// User is an account that owns job applications.
//
// Fields:
//   - ID: UUID primary key (char(36)).
//   - Username / Email: unique login identifiers.
//   - DisplayName: optional human-friendly name.
//   - PasswordHash: bcrypt hash; never serialized.
//   - CreatedAt / UpdatedAt: timestamps managed by GORM.
type User struct {
	ID           string    `json:"id"           gorm:"type:char(36);primaryKey"`
	Username     string    `json:"username"     gorm:"type:varchar(80);not null;uniqueIndex:ux_users_username"`
	Email        string    `json:"email"        gorm:"type:varchar(120);not null;uniqueIndex:ux_users_email"`
	DisplayName  string    `json:"display_name" gorm:"type:varchar(120)"`
	PasswordHash string    `json:"-"            gorm:"type:varchar(128);not null"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// TableName returns the database table name for User.
func (User) TableName() string { return "users" }

// JobApplication is a single application tracked by a user.
//
// Fields:
//   - ID: UUID primary key.
//   - UserID: owner; indexed together with CreatedAt for paginated listing.
//   - JobTitle / Company: required descriptors.
//   - RoleCategory: optional free-form tag used to filter insights.
//   - Status: current status label (lower-case; free-form extensions allowed).
//   - AppliedDate: calendar date in DateLayout.
//   - Notes: free-form notes.
//   - User: FK association; applications are removed with their owner.
type JobApplication struct {
	ID           string    `json:"id"            gorm:"type:char(36);primaryKey"`
	UserID       string    `json:"user_id"       gorm:"type:char(36);not null;index:idx_user_jobs,priority:1"`
	JobTitle     string    `json:"job_title"     gorm:"type:varchar(100);not null"`
	Company      string    `json:"company"       gorm:"type:varchar(100);not null"`
	RoleCategory *string   `json:"role_category" gorm:"type:varchar(100);index"`
	Status       string    `json:"status"        gorm:"type:varchar(50);not null;default:'applied';index"`
	AppliedDate  string    `json:"applied_date"  gorm:"type:varchar(10);not null"`
	Notes        string    `json:"notes"         gorm:"type:text"`
	CreatedAt    time.Time `json:"created_at"    gorm:"index:idx_user_jobs,priority:2"`
	UpdatedAt    time.Time `json:"updated_at"`

	User User `json:"-" gorm:"foreignKey:UserID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for JobApplication.
func (JobApplication) TableName() string { return "job_applications" }

// StatusHistoryEvent is an append-only record of a job entering a status on
// a given date. Re-entering a status appends a new row.
type StatusHistoryEvent struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	JobID      string    `json:"job_id"      gorm:"type:char(36);not null;index:idx_history_job,priority:1"`
	Status     string    `json:"status"      gorm:"type:varchar(50);not null"`
	StatusDate string    `json:"status_date" gorm:"type:varchar(10);not null;index:idx_history_job,priority:2"`
	CreatedAt  time.Time `json:"created_at"`

	Job JobApplication `json:"-" gorm:"foreignKey:JobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for StatusHistoryEvent.
func (StatusHistoryEvent) TableName() string { return "job_status_history" }

// FeedbackCategory is reference data classifying feedback as positive,
// negative or neutral.
type FeedbackCategory struct {
	ID   uint   `json:"id"   gorm:"primaryKey;autoIncrement"`
	Name string `json:"name" gorm:"type:varchar(100);not null;uniqueIndex:ux_feedback_categories_name"`
	Type string `json:"type" gorm:"type:varchar(16);not null;check:type IN ('positive','negative','neutral')"`
}

// TableName returns the database table name for FeedbackCategory.
func (FeedbackCategory) TableName() string { return "feedback_categories" }

// Feedback is the single evaluative record attached to a job application.
//
// Fields:
//   - JobID: unique; at most one feedback per job.
//   - CategoryID: optional category reference.
//   - Notes: short note (at most 50 runes, enforced by the service).
//   - DetailedFeedback: long-form note.
type Feedback struct {
	ID               string    `json:"id"                gorm:"type:char(36);primaryKey"`
	JobID            string    `json:"job_id"            gorm:"type:char(36);not null;uniqueIndex:ux_feedback_job"`
	CategoryID       *uint     `json:"category_id"       gorm:"index"`
	Notes            string    `json:"notes"             gorm:"type:varchar(255);not null;default:''"`
	DetailedFeedback string    `json:"detailed_feedback" gorm:"type:text"`
	CreatedAt        time.Time `json:"created_at"        gorm:"index"`
	UpdatedAt        time.Time `json:"updated_at"`

	Job      JobApplication    `json:"-" gorm:"foreignKey:JobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	Category *FeedbackCategory `json:"-" gorm:"foreignKey:CategoryID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for Feedback.
func (Feedback) TableName() string { return "feedback" }

// FeedbackStrength is one strength value attached to a feedback. Position
// keeps the submitted order of additional values.
type FeedbackStrength struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	FeedbackID string    `json:"feedback_id" gorm:"type:char(36);not null;index"`
	IsPriority bool      `json:"is_priority" gorm:"not null;default:false"`
	Value      string    `json:"value"       gorm:"type:varchar(255);not null"`
	Position   int       `json:"position"    gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`

	Feedback Feedback `json:"-" gorm:"foreignKey:FeedbackID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for FeedbackStrength.
func (FeedbackStrength) TableName() string { return "feedback_strengths" }

// FeedbackImprovement is one improvement value attached to a feedback.
type FeedbackImprovement struct {
	ID         string    `json:"id"          gorm:"type:char(36);primaryKey"`
	FeedbackID string    `json:"feedback_id" gorm:"type:char(36);not null;index"`
	IsPriority bool      `json:"is_priority" gorm:"not null;default:false"`
	Value      string    `json:"value"       gorm:"type:varchar(255);not null"`
	Position   int       `json:"position"    gorm:"not null;default:0"`
	CreatedAt  time.Time `json:"created_at"`

	Feedback Feedback `json:"-" gorm:"foreignKey:FeedbackID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
}

// TableName returns the database table name for FeedbackImprovement.
func (FeedbackImprovement) TableName() string { return "feedback_improvements" }

// QuestionBank is a suggested interview question.
type QuestionBank struct {
	ID       uint    `json:"id"       gorm:"primaryKey;autoIncrement"`
	Question string  `json:"question" gorm:"type:varchar(500);not null;uniqueIndex:ux_question_bank_question"`
	Category *string `json:"category" gorm:"type:varchar(100);index"`
}

// TableName returns the database table name for QuestionBank.
func (QuestionBank) TableName() string { return "question_bank" }

// JobInterviewQuestion is a question asked during one application's interview
// together with the recorded answer. Exactly one of QuestionBankID and
// CustomQuestion is set.
type JobInterviewQuestion struct {
	ID             string    `json:"id"               gorm:"type:char(36);primaryKey"`
	JobID          string    `json:"job_id"           gorm:"type:char(36);not null;index"`
	QuestionBankID *uint     `json:"question_bank_id" gorm:"index"`
	CustomQuestion *string   `json:"custom_question"  gorm:"type:text"`
	Answer         string    `json:"answer"           gorm:"type:text"`
	Position       int       `json:"position"         gorm:"not null;default:0"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`

	Job          JobApplication `json:"-" gorm:"foreignKey:JobID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:CASCADE"`
	QuestionBank *QuestionBank  `json:"-" gorm:"foreignKey:QuestionBankID;references:ID;constraint:OnUpdate:CASCADE,OnDelete:SET NULL"`
}

// TableName returns the database table name for JobInterviewQuestion.
func (JobInterviewQuestion) TableName() string { return "job_interview_questions" }
