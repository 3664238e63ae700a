// Package handlers implements the HTTP endpoints of the job tracker API.
//
// Every error response is an ErrorResponse carrying one of the codes below.
// Clients branch on the code; the message is for humans.
//
//	{
//	  "request_id": "e1b9be03-4999-4289-9f03-999b042d65d6",
//	  "code": "conflict",
//	  "message": "feedback already exists for this job"
//	}
package handlers

const (
	ErrCodeBadRequest       = "bad_request"
	ErrCodeUnauthorized     = "unauthorized"
	ErrCodeNotFound         = "not_found"
	ErrCodeConflict         = "conflict"
	ErrCodeRateLimited      = "rate_limited"
	ErrCodeMethodNotAllowed = "method_not_allowed"
	ErrCodeInternal         = "internal_error"

	// Domain-specific:
	ErrCodeValidation         = "validation_failed"
	ErrCodeInvalidDate        = "invalid_date"
	ErrCodeInvalidCredentials = "invalid_credentials"
	ErrCodeUnknownCategory    = "unknown_category"
	ErrCodeUnknownQuestion    = "unknown_question"
)
