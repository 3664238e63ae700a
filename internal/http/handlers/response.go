package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker-backend/internal/http/middleware"
	"github.com/tbourn/go-jobtracker-backend/internal/services"
	"github.com/tbourn/go-jobtracker-backend/internal/utils"
)

// ErrorResponse is the error envelope returned by all endpoints.
type ErrorResponse struct {
	// Echo of X-Request-ID, for correlating with server logs
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	// Stable, machine-readable code (see errors.go)
	Code string `json:"code" example:"not_found"`
	// Human-readable message
	Message string `json:"message" example:"job not found"`
}

// Pagination carries paging metadata for list responses.
type Pagination struct {
	Page       int   `json:"page"        example:"1"`
	PageSize   int   `json:"page_size"   example:"20"`
	Total      int64 `json:"total"       example:"42"`
	TotalPages int   `json:"total_pages" example:"3"`
	HasNext    bool  `json:"has_next"    example:"true"`
}

func newPagination(page, pageSize int, total int64) Pagination {
	pages := utils.TotalPages(total, pageSize)
	return Pagination{
		Page:       page,
		PageSize:   pageSize,
		Total:      total,
		TotalPages: pages,
		HasNext:    page < pages,
	}
}

// fail aborts with an ErrorResponse. Responses >= 500 are logged with the
// request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	resp := ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	}
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, resp)
}

// Fail is the exported fail, used by the router for NoRoute/NoMethod.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// failErr maps a service error onto the envelope. Unknown errors become an
// opaque 500; the cause is attached to the gin context for the access log.
func failErr(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrValidation):
		fail(c, http.StatusBadRequest, ErrCodeValidation, err.Error())
	case errors.Is(err, services.ErrInvalidDate):
		fail(c, http.StatusBadRequest, ErrCodeInvalidDate, err.Error())
	case errors.Is(err, services.ErrCategoryNotFound):
		fail(c, http.StatusBadRequest, ErrCodeUnknownCategory, err.Error())
	case errors.Is(err, services.ErrQuestionNotFound):
		fail(c, http.StatusBadRequest, ErrCodeUnknownQuestion, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		fail(c, http.StatusUnauthorized, ErrCodeInvalidCredentials, err.Error())
	case errors.Is(err, services.ErrJobNotFound),
		errors.Is(err, services.ErrFeedbackNotFound),
		errors.Is(err, services.ErrUserNotFound):
		fail(c, http.StatusNotFound, ErrCodeNotFound, err.Error())
	case errors.Is(err, services.ErrUserExists),
		errors.Is(err, services.ErrFeedbackExists):
		fail(c, http.StatusConflict, ErrCodeConflict, err.Error())
	default:
		_ = c.Error(err)
		fail(c, http.StatusInternalServerError, ErrCodeInternal, "internal error")
	}
}

// ok writes body as JSON with status.
func ok(c *gin.Context, status int, body any) {
	c.JSON(status, body)
}

// noContent writes 204.
func noContent(c *gin.Context) {
	c.Status(http.StatusNoContent)
}

// clampPagination reads page and limit (alias page_size), defaulting to 1
// and 20 and capping the size at 100.
func clampPagination(c *gin.Context) (page, pageSize int) {
	const (
		defaultPage     = 1
		defaultPageSize = 20
		maxPageSize     = 100
	)
	page = max(utils.AtoiDefault(c.Query("page"), defaultPage), 1)
	size := c.Query("limit")
	if size == "" {
		size = c.Query("page_size")
	}
	pageSize = utils.Clamp(utils.AtoiDefault(size, defaultPageSize), 1, maxPageSize)
	return page, pageSize
}

// weakETag builds W/"<kind>:<owner>:<count>:<unix ts>".
func weakETag(kind, owner string, count int64, ts *time.Time) string {
	var unix int64
	if ts != nil {
		unix = ts.Unix()
	}
	return fmt.Sprintf(`W/"%s:%s:%d:%d"`, kind, owner, count, unix)
}

// notModified sets ETag and reports whether If-None-Match matches it, in
// which case 304 has been written.
func notModified(c *gin.Context, etag string) bool {
	c.Header("ETag", etag)
	if inm := c.GetHeader("If-None-Match"); inm != "" && inm == etag {
		c.Status(http.StatusNotModified)
		return true
	}
	return false
}

// remember records resourceID against the request's Idempotency-Key, if any.
// Failures are logged; the resource already exists and the client gets it.
func (h *Handlers) remember(c *gin.Context, resourceID string, status int) {
	if h.idem == nil {
		return
	}
	key, scope, found := middleware.GetIdempotencyKey(c)
	if !found {
		return
	}
	if err := h.idem.Remember(c.Request.Context(), middleware.UserID(c), scope, key, resourceID, status); err != nil {
		middleware.LoggerFrom(c).Warn().Err(err).Str("scope", scope).Msg("idempotency record failed")
	}
}

// replayed marks a response served from a recorded idempotent result.
func replayed(c *gin.Context) {
	c.Header(middleware.HeaderIdempotencyReplayed, "true")
}
