// Feedback HTTP handlers:
//   - GET    /feedback-categories?status=
//   - POST   /jobs/{id}/feedback          (create, Idempotency-Key aware)
//   - GET    /jobs/{id}/feedback
//   - PUT    /jobs/{id}/feedback
//   - DELETE /jobs/{id}/feedback
//   - GET    /jobs/{id}/feedback/{kind}   (kind: strengths|improvements)
//   - PUT    /jobs/{id}/feedback/{kind}   (replace the whole set)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/http/middleware"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
	"github.com/tbourn/go-jobtracker-backend/internal/services"
)

// FeedbackRequest is the payload for creating or updating a job's feedback.
// Omitted strengths or improvements leave the stored set untouched on update.
type FeedbackRequest struct {
	CategoryID *uint `json:"category_id" example:"3"`
	// Notes is a short summary, at most 50 characters.
	Notes            string       `json:"notes"             example:"Great culture"`
	DetailedFeedback string       `json:"detailed_feedback" example:"Panel liked the system design answer."`
	Strengths        *repo.Extras `json:"strengths"`
	Improvements     *repo.Extras `json:"improvements"`
}

func (r FeedbackRequest) input() services.FeedbackInput {
	return services.FeedbackInput{
		CategoryID:       r.CategoryID,
		Notes:            r.Notes,
		DetailedFeedback: r.DetailedFeedback,
		Strengths:        r.Strengths,
		Improvements:     r.Improvements,
	}
}

// CategoriesResponse lists feedback categories.
type CategoriesResponse struct {
	Categories []domain.FeedbackCategory `json:"categories"`
}

// extrasKindParam returns the :kind path parameter, failing with 404 for
// anything but strengths or improvements.
func extrasKindParam(c *gin.Context) (repo.ExtrasKind, bool) {
	kind := repo.ExtrasKind(c.Param("kind"))
	if !kind.Valid() {
		fail(c, http.StatusNotFound, ErrCodeNotFound, "unknown feedback extras; use strengths or improvements")
		return "", false
	}
	return kind, true
}

// ListCategories godoc
// @ID          listFeedbackCategories
// @Summary     List feedback categories
// @Description With status, offer/accepted see positive and neutral categories, rejected sees negative and neutral.
// @Tags        Feedback
// @Produce     json
// @Security    BearerAuth
// @Param       status  query     string  false  "Job status used to narrow the list"  example(rejected)
// @Success     200     {object}  handlers.CategoriesResponse
// @Failure     500     {object}  handlers.ErrorResponse  "Internal error"
// @Router      /feedback-categories [get]
func (h *Handlers) ListCategories(c *gin.Context) {
	cats, err := h.fbSvc.Categories(c.Request.Context(), c.Query("status"))
	if err != nil {
		failErr(c, err)
		return
	}
	if cats == nil {
		cats = []domain.FeedbackCategory{}
	}
	ok(c, http.StatusOK, CategoriesResponse{Categories: cats})
}

// CreateFeedback godoc
// @ID          createFeedback
// @Summary     Add feedback to a job
// @Description A job has at most one feedback. Supports Idempotency-Key.
// @Tags        Feedback
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       Idempotency-Key  header  string                    false  "Idempotency key for safe retries"
// @Param       id               path    string                    true   "Job ID (UUID)"  format(uuid)
// @Param       body             body    handlers.FeedbackRequest  true   "Feedback"
// @Success     201  {object}  services.FeedbackDetail
// @Failure     400  {object}  handlers.ErrorResponse  "Validation failed or unknown category"
// @Failure     404  {object}  handlers.ErrorResponse  "Job not found"
// @Failure     409  {object}  handlers.ErrorResponse  "Feedback already exists"
// @Router      /jobs/{id}/feedback [post]
func (h *Handlers) CreateFeedback(c *gin.Context) {
	jobID, valid := jobIDParam(c)
	if !valid {
		return
	}
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ctx := c.Request.Context()
	uid := middleware.UserID(c)

	if _, found := middleware.ReplayResourceID(c); found {
		if prev, err := h.fbSvc.Get(ctx, uid, jobID); err == nil {
			replayed(c)
			ok(c, http.StatusCreated, prev)
			return
		}
	}

	fb, err := h.fbSvc.Create(ctx, uid, jobID, req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	h.remember(c, fb.ID, http.StatusCreated)
	ok(c, http.StatusCreated, fb)
}

// GetFeedback godoc
// @ID          getFeedback
// @Summary     Get a job's feedback
// @Tags        Feedback
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "Job ID (UUID)"  format(uuid)
// @Success     200  {object}  services.FeedbackDetail
// @Failure     404  {object}  handlers.ErrorResponse  "Job or feedback not found"
// @Router      /jobs/{id}/feedback [get]
func (h *Handlers) GetFeedback(c *gin.Context) {
	jobID, valid := jobIDParam(c)
	if !valid {
		return
	}
	fb, err := h.fbSvc.Get(c.Request.Context(), middleware.UserID(c), jobID)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, fb)
}

// UpdateFeedback godoc
// @ID          updateFeedback
// @Summary     Update a job's feedback
// @Description Provided strengths or improvements replace the stored set in the same transaction.
// @Tags        Feedback
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      string                    true  "Job ID (UUID)"  format(uuid)
// @Param       body  body      handlers.FeedbackRequest  true  "Feedback"
// @Success     200   {object}  services.FeedbackDetail
// @Failure     400   {object}  handlers.ErrorResponse  "Validation failed or unknown category"
// @Failure     404   {object}  handlers.ErrorResponse  "Job or feedback not found"
// @Router      /jobs/{id}/feedback [put]
func (h *Handlers) UpdateFeedback(c *gin.Context) {
	jobID, valid := jobIDParam(c)
	if !valid {
		return
	}
	var req FeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	fb, err := h.fbSvc.Update(c.Request.Context(), middleware.UserID(c), jobID, req.input())
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, fb)
}

// DeleteFeedback godoc
// @ID          deleteFeedback
// @Summary     Delete a job's feedback
// @Tags        Feedback
// @Security    BearerAuth
// @Param       id   path  string  true  "Job ID (UUID)"  format(uuid)
// @Success     204  {string}  string  "No Content"
// @Failure     404  {object}  handlers.ErrorResponse  "Job or feedback not found"
// @Router      /jobs/{id}/feedback [delete]
func (h *Handlers) DeleteFeedback(c *gin.Context) {
	jobID, valid := jobIDParam(c)
	if !valid {
		return
	}
	if err := h.fbSvc.Delete(c.Request.Context(), middleware.UserID(c), jobID); err != nil {
		failErr(c, err)
		return
	}
	noContent(c)
}

// GetExtras godoc
// @ID          getFeedbackExtras
// @Summary     Strengths or improvements of a job's feedback
// @Tags        Feedback
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      string  true  "Job ID (UUID)"  format(uuid)
// @Param       kind  path      string  true  "Which set"      Enums(strengths, improvements)
// @Success     200   {object}  repo.Extras
// @Failure     404   {object}  handlers.ErrorResponse  "Job or feedback not found"
// @Router      /jobs/{id}/feedback/{kind} [get]
func (h *Handlers) GetExtras(c *gin.Context) {
	jobID, valid := jobIDParam(c)
	if !valid {
		return
	}
	kind, valid := extrasKindParam(c)
	if !valid {
		return
	}
	ex, err := h.fbSvc.Extras(c.Request.Context(), middleware.UserID(c), jobID, kind)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ex)
}

// ReplaceExtras godoc
// @ID          replaceFeedbackExtras
// @Summary     Replace strengths or improvements
// @Description Atomically replaces the whole set. Blank values are dropped.
// @Tags        Feedback
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      string       true  "Job ID (UUID)"  format(uuid)
// @Param       kind  path      string       true  "Which set"      Enums(strengths, improvements)
// @Param       body  body      repo.Extras  true  "New set"
// @Success     200   {object}  repo.Extras
// @Failure     400   {object}  handlers.ErrorResponse  "Invalid JSON body"
// @Failure     404   {object}  handlers.ErrorResponse  "Job or feedback not found"
// @Router      /jobs/{id}/feedback/{kind} [put]
func (h *Handlers) ReplaceExtras(c *gin.Context) {
	jobID, valid := jobIDParam(c)
	if !valid {
		return
	}
	kind, valid := extrasKindParam(c)
	if !valid {
		return
	}
	var req repo.Extras
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "invalid JSON body")
		return
	}
	ex, err := h.fbSvc.ReplaceExtras(c.Request.Context(), middleware.UserID(c), jobID, kind, req)
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ex)
}
