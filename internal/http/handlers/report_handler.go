// Analytics HTTP handlers:
//   - GET /analytics/dashboard
//   - GET /analytics/status-trends?from=&to=
//   - GET /analytics/feedback-insights?role_category=
//   - GET /analytics/available-roles
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/http/middleware"
)

// StatusTrendsResponse wraps the status trend rows.
type StatusTrendsResponse struct {
	Trends []domain.StatusTrend `json:"trends"`
}

// RolesResponse lists the role categories in use, ascending.
type RolesResponse struct {
	Roles []string `json:"roles" example:"Backend,Data"`
}

// Dashboard godoc
// @ID          dashboard
// @Summary     Application totals
// @Description Total applications and counts per current status. Statuses with no jobs are omitted.
// @Tags        Analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  domain.Dashboard
// @Failure     401  {object}  handlers.ErrorResponse  "Missing or invalid token"
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /analytics/dashboard [get]
func (h *Handlers) Dashboard(c *gin.Context) {
	d, err := h.reportSvc.Dashboard(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, d)
}

// StatusTrends godoc
// @ID          statusTrends
// @Summary     Status transitions per day
// @Description Distinct jobs reaching each status on each date, from the status history.
// @Tags        Analytics
// @Produce     json
// @Security    BearerAuth
// @Param       from  query     string  false  "Inclusive lower bound (YYYY-MM-DD)"  example(2025-01-01)
// @Param       to    query     string  false  "Inclusive upper bound (YYYY-MM-DD)"  example(2025-03-31)
// @Success     200   {object}  handlers.StatusTrendsResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Unparseable date or from after to"
// @Failure     500   {object}  handlers.ErrorResponse  "Internal error"
// @Router      /analytics/status-trends [get]
func (h *Handlers) StatusTrends(c *gin.Context) {
	trends, err := h.reportSvc.StatusTrends(c.Request.Context(), middleware.UserID(c), c.Query("from"), c.Query("to"))
	if err != nil {
		failErr(c, err)
		return
	}
	if trends == nil {
		trends = []domain.StatusTrend{}
	}
	ok(c, http.StatusOK, StatusTrendsResponse{Trends: trends})
}

// FeedbackInsights godoc
// @ID          feedbackInsights
// @Summary     Feedback insights
// @Description Category counts, top strengths and improvements, detailed notes and recommendations.
// @Description role_category restricts every aggregate to jobs with exactly that role (case-sensitive).
// @Tags        Analytics
// @Produce     json
// @Security    BearerAuth
// @Param       role_category  query     string  false  "Role filter"  example(Backend)
// @Success     200            {object}  domain.FeedbackInsights
// @Failure     500            {object}  handlers.ErrorResponse  "Internal error"
// @Router      /analytics/feedback-insights [get]
func (h *Handlers) FeedbackInsights(c *gin.Context) {
	ins, err := h.reportSvc.FeedbackInsights(c.Request.Context(), middleware.UserID(c), c.Query("role_category"))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, ins)
}

// AvailableRoles godoc
// @ID          availableRoles
// @Summary     Role categories in use
// @Tags        Analytics
// @Produce     json
// @Security    BearerAuth
// @Success     200  {object}  handlers.RolesResponse
// @Failure     500  {object}  handlers.ErrorResponse  "Internal error"
// @Router      /analytics/available-roles [get]
func (h *Handlers) AvailableRoles(c *gin.Context) {
	roles, err := h.reportSvc.AvailableRoles(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		failErr(c, err)
		return
	}
	ok(c, http.StatusOK, RolesResponse{Roles: roles})
}
