package domain

import "time"

// Dashboard summarizes a user's applications. Statuses without applications
// are absent from StatusCounts.
type Dashboard struct {
	TotalApplications int64            `json:"total_applications" example:"12"`
	StatusCounts      map[string]int64 `json:"status_counts"`
}

// StatusTrend is the number of distinct jobs that entered Status on StatusDate.
type StatusTrend struct {
	Status     string `json:"status"      example:"interview"`
	StatusDate string `json:"status_date" example:"2025-03-14"`
	Count      int64  `json:"count"       example:"2"`
}

// ValueCount is a distinct free-text value with its number of occurrences.
type ValueCount struct {
	Value string
	Count int64
}

// StrengthCount is a ranked strength value.
type StrengthCount struct {
	Strength string `json:"strength" example:"Problem solving"`
	Count    int64  `json:"count"    example:"3"`
}

// ImprovementCount is a ranked improvement value.
type ImprovementCount struct {
	Improvement string `json:"improvement" example:"Communication"`
	Count       int64  `json:"count"       example:"2"`
}

// DetailedFeedback is one feedback entry joined with its job.
type DetailedFeedback struct {
	JobTitle         string    `json:"job_title"`
	Company          string    `json:"company"`
	Notes            string    `json:"notes"`
	DetailedFeedback string    `json:"detailed_feedback"`
	Status           string    `json:"status"`
	CreatedAt        time.Time `json:"created_at"`
}

// FeedbackInsights is the aggregated view over a user's feedback.
type FeedbackInsights struct {
	FeedbackCounts   map[string]int64   `json:"feedback_counts"`
	TopStrengths     []StrengthCount    `json:"top_strengths"`
	TopImprovements  []ImprovementCount `json:"top_improvements"`
	DetailedFeedback []DetailedFeedback `json:"detailed_feedback"`
	Recommendations  []string           `json:"recommendations"`
}
