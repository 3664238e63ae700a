// Package services defines the business logic for accounts, job applications,
// feedback, interview questions and reports. This file centralizes common
// service-level error values so that they can be consistently returned by
// service methods and checked by callers.
//
// Translation into user-facing messages or HTTP status codes is performed at
// the handler layer.
package services

import "errors"

// Account errors.
var (
	// ErrInvalidCredentials is returned by Login for an unknown login or a
	// wrong password. The two cases are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrUserExists is returned by Signup when the username or email is taken.
	ErrUserExists = errors.New("username or email already registered")

	// ErrUserNotFound indicates that the authenticated user no longer exists.
	ErrUserNotFound = errors.New("user not found")
)

// Job, feedback and question errors.
var (
	// ErrJobNotFound indicates that the job does not exist or belongs to
	// another user.
	ErrJobNotFound = errors.New("job not found")

	// ErrFeedbackNotFound indicates that the job has no feedback yet.
	ErrFeedbackNotFound = errors.New("feedback not found")

	// ErrFeedbackExists is returned when creating a second feedback for a job.
	ErrFeedbackExists = errors.New("feedback already exists for this job")

	// ErrCategoryNotFound is returned for an unknown feedback category id.
	ErrCategoryNotFound = errors.New("feedback category not found")

	// ErrQuestionNotFound is returned when an interview question references
	// an unknown question-bank entry.
	ErrQuestionNotFound = errors.New("question not found")
)

// Validation errors. ErrValidation is usually wrapped with detail:
//
//	fmt.Errorf("%w: job_title is required", ErrValidation)
var (
	ErrValidation  = errors.New("validation failed")
	ErrInvalidDate = errors.New("invalid date, expected YYYY-MM-DD")
)
