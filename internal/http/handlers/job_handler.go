// Job HTTP handlers:
//   - POST   /jobs                     (create, Idempotency-Key aware)
//   - GET    /jobs                     (list, paginated, ETag support)
//   - GET    /jobs/{id}                (detail with feedback)
//   - PUT    /jobs/{id}                (partial update, records status changes)
//   - DELETE /jobs/{id}
//   - GET    /jobs/{id}/status-history
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/http/middleware"
	"github.com/tbourn/go-jobtracker-backend/internal/services"
)

// CreateJobRequest is the JSON payload for creating a job application.
type CreateJobRequest struct {
	JobTitle     string  `json:"job_title"     example:"Backend Engineer"`
	Company      string  `json:"company"       example:"Acme"`
	RoleCategory *string `json:"role_category" example:"Backend"`
	// Status defaults to "applied".
	Status string `json:"status" example:"applied"`
	// AppliedDate is YYYY-MM-DD; defaults to today (UTC).
	AppliedDate string `json:"applied_date" example:"2025-03-01"`
	Notes       string `json:"notes"        example:"Referred by Sam"`
}

// UpdateJobRequest is a partial update; omitted fields are left unchanged.
type UpdateJobRequest struct {
	JobTitle     *string `json:"job_title"`
	Company      *string `json:"company"`
	RoleCategory *string `json:"role_category"`
	Status       *string `json:"status"       example:"interview"`
	AppliedDate  *string `json:"applied_date"`
	Notes        *string `json:"notes"`
	// StatusDate dates the status change; defaults to today (UTC).
	StatusDate *string `json:"status_date" example:"2025-03-14"`
}

// ListJobsResponse wraps a page of jobs.
type ListJobsResponse struct {
	Jobs       []domain.JobApplication `json:"jobs"`
	Pagination Pagination              `json:"pagination"`
}

// StatusHistoryResponse lists a job's status events, oldest first.
type StatusHistoryResponse struct {
	History []domain.StatusHistoryEvent `json:"history"`
}

// jobIDParam returns the :id path parameter, failing with 400 when it is not
// a UUID.
func jobIDParam(c *gin.Context) (string, bool) {
	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "job id must be a UUID")
		return "", false
	}
	return id, true
}

// CreateJob godoc
// @ID          createJob
// @Summary     Create a job application
// @Description Creates a job and records its first status event.
// @Description Supports idempotency via the Idempotency-Key header (same key → same job).
// @Tags        Jobs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string                     false  "Idempotency key for safe retries"  example(7a8d9f4c-1b2a-4c3d-8e9f-0123456789ab)
// @Param       body             body    handlers.CreateJobRequest  true   "Job"
// @Success     201  {object}  domain.JobApplication
// @Header      201  {string}  Idempotency-Replayed  "true when served from a previous request"
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs [post]
func (h *Handlers) CreateJob(c *gin.Context) {
	var req CreateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ctx := c.Request.Context()
	uid := middleware.UserID(c)

	if rid, found := middleware.ReplayResourceID(c); found {
		if prev, err := h.jobSvc.Get(ctx, uid, rid); err == nil {
			replayed(c)
			ok(c, http.StatusCreated, prev.JobApplication)
			return
		}
	}

	j, err := h.jobSvc.Create(ctx, uid, services.CreateJobInput{
		JobTitle:     req.JobTitle,
		Company:      req.Company,
		RoleCategory: req.RoleCategory,
		Status:       req.Status,
		AppliedDate:  req.AppliedDate,
		Notes:        req.Notes,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, j.ID, http.StatusCreated)
	ok(c, http.StatusCreated, j)
}

// ListJobs godoc
// @ID          listJobs
// @Summary     List job applications (paginated)
// @Description Newest first. Supports a weak ETag via If-None-Match and may return 304.
// @Tags        Jobs
// @Produce     json
// @Security    BearerAuth
// @Param       If-None-Match  header  string  false  "Return 304 if ETag matches"
// @Param       page           query   int     false  "Page number"     minimum(1) default(1)
// @Param       limit          query   int     false  "Items per page"  minimum(1) maximum(100) default(20)
// @Success     200  {object}  handlers.ListJobsResponse
// @Header      200  {string}  ETag  "Weak ETag for the current result"
// @Success     304  {string}  string  "Not Modified"
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /jobs [get]
func (h *Handlers) ListJobs(c *gin.Context) {
	ctx := c.Request.Context()
	uid := middleware.UserID(c)
	page, pageSize := clampPagination(c)

	// Best effort: a failed stats query just skips the ETag.
	if count, maxTS, err := h.jobSvc.Stats(ctx, uid); err == nil {
		if notModified(c, weakETag("jobs", uid, count, maxTS)) {
			return
		}
	}

	items, total, err := h.jobSvc.ListPage(ctx, uid, page, pageSize)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ListJobsResponse{
		Jobs:       items,
		Pagination: newPagination(page, pageSize, total),
	})
}

// GetJob godoc
// @ID          getJob
// @Summary     Get a job application
// @Description Returns the job with its feedback, strengths and improvements when present.
// @Tags        Jobs
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "Job ID (UUID)"  format(uuid)
// @Success     200  {object}  services.JobDetail
// @Failure     400  {object}  handlers.ErrorResponse  "Bad job id"
// @Failure     404  {object}  handlers.ErrorResponse  "Job not found"
// @Router      /jobs/{id} [get]
func (h *Handlers) GetJob(c *gin.Context) {
	id, valid := jobIDParam(c)
	if !valid {
		return
	}
	d, err := h.jobSvc.Get(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// UpdateJob godoc
// @ID          updateJob
// @Summary     Update a job application
// @Description Partial update. A status change appends a status event dated status_date (default today).
// @Tags        Jobs
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      string                     true  "Job ID (UUID)"  format(uuid)
// @Param       body  body      handlers.UpdateJobRequest  true  "Fields to change"
// @Success     200   {object}  domain.JobApplication
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed"
// @Failure     404   {object}  handlers.ErrorResponse  "Job not found"
// @Router      /jobs/{id} [put]
func (h *Handlers) UpdateJob(c *gin.Context) {
	id, valid := jobIDParam(c)
	if !valid {
		return
	}
	var req UpdateJobRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	j, err := h.jobSvc.Update(c.Request.Context(), middleware.UserID(c), id, services.UpdateJobInput{
		JobTitle:     req.JobTitle,
		Company:      req.Company,
		RoleCategory: req.RoleCategory,
		Status:       req.Status,
		AppliedDate:  req.AppliedDate,
		Notes:        req.Notes,
		StatusDate:   req.StatusDate,
	})
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, j)
}

// DeleteJob godoc
// @ID          deleteJob
// @Summary     Delete a job application
// @Description Removes the job with its feedback, status history and interview questions.
// @Tags        Jobs
// @Security    BearerAuth
// @Param       id   path  string  true  "Job ID (UUID)"  format(uuid)
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Job not found"
// @Router      /jobs/{id} [delete]
func (h *Handlers) DeleteJob(c *gin.Context) {
	id, valid := jobIDParam(c)
	if !valid {
		return
	}
	if err := h.jobSvc.Delete(c.Request.Context(), middleware.UserID(c), id); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// StatusHistory godoc
// @ID          statusHistory
// @Summary     Status history of a job
// @Tags        Jobs
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "Job ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.StatusHistoryResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Job not found"
// @Router      /jobs/{id}/status-history [get]
func (h *Handlers) StatusHistory(c *gin.Context) {
	id, valid := jobIDParam(c)
	if !valid {
		return
	}
	events, err := h.jobSvc.History(c.Request.Context(), middleware.UserID(c), id)
	if err != nil {
		failErr(c, err)
		return
	}
	if events == nil {
		events = []domain.StatusHistoryEvent{}
	}
	ok(c, http.StatusOK, StatusHistoryResponse{History: events})
}
