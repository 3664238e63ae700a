// Question HTTP handlers:
//   - GET  /questions?q=&category=
//   - GET  /jobs/{id}/recommended-questions?limit=
//   - GET  /jobs/{id}/interview-questions
//   - POST /jobs/{id}/interview-questions   (replace the job's Q&A set)
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/http/middleware"
	"github.com/tbourn/go-jobtracker-backend/internal/services"
	"github.com/tbourn/go-jobtracker-backend/internal/utils"
)

const maxRecommendLimit = 50

// QuestionsResponse lists question bank entries.
type QuestionsResponse struct {
	Questions []domain.QuestionBank `json:"questions"`
}

// InterviewQuestionItem is one submitted Q&A item. Either QuestionBankID or
// Question should be set; items with neither are dropped.
type InterviewQuestionItem struct {
	QuestionBankID *uint  `json:"question_bank_id" example:"4"`
	Question       string `json:"question"         example:"Why this company?"`
	Answer         string `json:"answer"           example:"Their platform team works on problems I care about."`
}

// InterviewQuestionsResponse lists a job's recorded Q&A.
type InterviewQuestionsResponse struct {
	Questions []services.InterviewQA `json:"questions"`
}

// ListQuestions godoc
// @ID          listQuestions
// @Summary     Browse the question bank
// @Description Optional category filter; a non-blank q returns matching questions only, best match first.
// @Tags        Questions
// @Produce     json
// @Security    BearerAuth
// @Param       q         query     string  false  "Free-text search"  example(system design)
// @Param       category  query     string  false  "Category filter"   example(technical)
// @Success     200       {object}  handlers.QuestionsResponse
// @Failure     500       {object}  handlers.ErrorResponse  "Internal error"
// @Router      /questions [get]
func (h *Handlers) ListQuestions(c *gin.Context) {
	qs, err := h.qSvc.Bank(c.Request.Context(), c.Query("q"), c.Query("category"))
	if err != nil {
		failErr(c, err)
		return
	}
	if qs == nil {
		qs = []domain.QuestionBank{}
	}
	ok(c, http.StatusOK, QuestionsResponse{Questions: qs})
}

// RecommendedQuestions godoc
// @ID          recommendedQuestions
// @Summary     Questions to prepare for a job
// @Description Bank questions the job has not used yet, most similar to its title and role first.
// @Tags        Questions
// @Produce     json
// @Security    BearerAuth
// @Param       id     path      string  true   "Job ID (UUID)"  format(uuid)
// @Param       limit  query     int     false  "Max results"    minimum(1) maximum(50) default(10)
// @Success     200    {object}  handlers.QuestionsResponse
// @Failure     404    {object}  handlers.ErrorResponse  "Job not found"
// @Router      /jobs/{id}/recommended-questions [get]
func (h *Handlers) RecommendedQuestions(c *gin.Context) {
	jobID, valid := jobIDParam(c)
	if !valid {
		return
	}
	limit := utils.AtoiDefault(c.Query("limit"), 0)
	if limit > maxRecommendLimit {
		limit = maxRecommendLimit
	}
	qs, err := h.qSvc.Recommended(c.Request.Context(), middleware.UserID(c), jobID, limit)
	if err != nil {
		failErr(c, err)
		return
	}
	if qs == nil {
		qs = []domain.QuestionBank{}
	}
	ok(c, http.StatusOK, QuestionsResponse{Questions: qs})
}

// InterviewQuestions godoc
// @ID          interviewQuestions
// @Summary     Interview Q&A recorded for a job
// @Tags        Questions
// @Produce     json
// @Security    BearerAuth
// @Param       id   path      string  true  "Job ID (UUID)"  format(uuid)
// @Success     200  {object}  handlers.InterviewQuestionsResponse
// @Failure     404  {object}  handlers.ErrorResponse  "Job not found"
// @Router      /jobs/{id}/interview-questions [get]
func (h *Handlers) InterviewQuestions(c *gin.Context) {
	jobID, valid := jobIDParam(c)
	if !valid {
		return
	}
	qa, err := h.qSvc.InterviewQuestions(c.Request.Context(), middleware.UserID(c), jobID)
	if err != nil {
		failErr(c, err)
		return
	}
	if qa == nil {
		qa = []services.InterviewQA{}
	}
	ok(c, http.StatusOK, InterviewQuestionsResponse{Questions: qa})
}

// SaveInterviewQuestions godoc
// @ID          saveInterviewQuestions
// @Summary     Replace a job's interview Q&A
// @Description Replaces the whole set in one transaction. Unknown question_bank_id values reject the request.
// @Tags        Questions
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       id    path      string                            true  "Job ID (UUID)"  format(uuid)
// @Param       body  body      []handlers.InterviewQuestionItem  true  "Q&A items"
// @Success     200   {object}  handlers.InterviewQuestionsResponse
// @Failure     400   {object}  handlers.ErrorResponse  "Invalid body or unknown question"
// @Failure     404   {object}  handlers.ErrorResponse  "Job not found"
// @Router      /jobs/{id}/interview-questions [post]
func (h *Handlers) SaveInterviewQuestions(c *gin.Context) {
	jobID, valid := jobIDParam(c)
	if !valid {
		return
	}
	var req []InterviewQuestionItem
	if err := c.ShouldBindJSON(&req); err != nil {
		fail(c, http.StatusBadRequest, ErrCodeBadRequest, "body must be a JSON array of questions")
		return
	}
	items := make([]services.InterviewQAInput, 0, len(req))
	for _, it := range req {
		items = append(items, services.InterviewQAInput{
			QuestionBankID: it.QuestionBankID,
			Question:       it.Question,
			Answer:         it.Answer,
		})
	}
	qa, err := h.qSvc.SaveInterviewQuestions(c.Request.Context(), middleware.UserID(c), jobID, items)
	if err != nil {
		failErr(c, err)
		return
	}
	if qa == nil {
		qa = []services.InterviewQA{}
	}
	ok(c, http.StatusOK, InterviewQuestionsResponse{Questions: qa})
}
