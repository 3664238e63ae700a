// Package services – QuestionService
//
// QuestionService serves the interview question bank and each job's recorded
// interview Q&A. Recommended questions are ranked with the in-memory search
// index against the job title and role category.
package services

import (
	"context"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
	"github.com/tbourn/go-jobtracker-backend/internal/repo"
	"github.com/tbourn/go-jobtracker-backend/internal/search"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const defaultRecommendLimit = 10

// InterviewQA is one recorded interview question with its answer. Question
// holds the bank text for bank references and the custom text otherwise.
type InterviewQA struct {
	ID             string `json:"id"`
	QuestionBankID *uint  `json:"question_bank_id,omitempty"`
	Question       string `json:"question"`
	Answer         string `json:"answer"`
}

// InterviewQAInput is one submitted Q&A item.
type InterviewQAInput struct {
	QuestionBankID *uint
	Question       string
	Answer         string
}

// QuestionService implements the question bank and interview Q&A use-cases.
type QuestionService struct {
	DB *gorm.DB
}

// Bank lists the question bank, optionally narrowed to a category. When query
// is non-blank only matching questions are returned, best match first.
func (s *QuestionService) Bank(ctx context.Context, query, category string) ([]domain.QuestionBank, error) {
	all, err := repo.ListQuestionBank(ctx, s.DB, strings.TrimSpace(category))
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(query) == "" {
		return all, nil
	}
	ranked := rankQuestions(all, query)
	out := make([]domain.QuestionBank, 0, len(ranked))
	byID := indexByID(all)
	for _, r := range ranked {
		out = append(out, byID[r.ID])
	}
	return out, nil
}

// Recommended returns up to limit bank questions the job has not used yet.
// Questions similar to the job title and role category come first; the
// rest follow in bank order.
func (s *QuestionService) Recommended(ctx context.Context, userID, jobID string, limit int) ([]domain.QuestionBank, error) {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "Recommended",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("job.id", jobID),
			attribute.Int("limit", limit),
		),
	)
	defer span.End()

	if limit <= 0 {
		limit = defaultRecommendLimit
	}
	j, err := ownedJob(ctx, s.DB, userID, jobID)
	if err != nil {
		return nil, err
	}
	all, err := repo.ListQuestionBank(ctx, s.DB, "")
	if err != nil {
		return nil, err
	}
	used, err := repo.UsedBankQuestionIDs(ctx, s.DB, jobID)
	if err != nil {
		return nil, err
	}
	skip := make(map[uint]struct{}, len(used))
	for _, id := range used {
		skip[id] = struct{}{}
	}
	candidates := make([]domain.QuestionBank, 0, len(all))
	for _, q := range all {
		if _, ok := skip[q.ID]; !ok {
			candidates = append(candidates, q)
		}
	}

	query := j.JobTitle
	if j.RoleCategory != nil {
		query += " " + *j.RoleCategory
	}
	byID := indexByID(candidates)
	out := make([]domain.QuestionBank, 0, limit)
	seen := make(map[uint]struct{}, limit)
	for _, r := range rankQuestions(candidates, query) {
		if len(out) == limit {
			return out, nil
		}
		out = append(out, byID[r.ID])
		seen[r.ID] = struct{}{}
	}
	for _, q := range candidates {
		if len(out) == limit {
			break
		}
		if _, ok := seen[q.ID]; !ok {
			out = append(out, q)
		}
	}
	span.SetAttributes(attribute.Int("result.count", len(out)))
	return out, nil
}

// InterviewQuestions returns the job's recorded Q&A in saved order.
func (s *QuestionService) InterviewQuestions(ctx context.Context, userID, jobID string) ([]InterviewQA, error) {
	if _, err := ownedJob(ctx, s.DB, userID, jobID); err != nil {
		return nil, err
	}
	rows, err := repo.ListInterviewQuestions(ctx, s.DB, jobID)
	if err != nil {
		return nil, err
	}
	return toQA(rows), nil
}

// SaveInterviewQuestions replaces the job's Q&A set. Items referencing a
// bank question store only the reference; other items store their custom
// question text; items with neither are dropped. Unknown bank ids yield
// ErrQuestionNotFound and nothing is written.
func (s *QuestionService) SaveInterviewQuestions(ctx context.Context, userID, jobID string, items []InterviewQAInput) ([]InterviewQA, error) {
	ctx, span := otel.Tracer("services/QuestionService").Start(ctx, "SaveInterviewQuestions",
		trace.WithAttributes(
			attribute.String("user.id", userID),
			attribute.String("job.id", jobID),
			attribute.Int("items", len(items)),
		),
	)
	defer span.End()

	rows := make([]domain.JobInterviewQuestion, 0, len(items))
	var bankIDs []uint
	for _, it := range items {
		answer := strings.TrimSpace(it.Answer)
		switch {
		case it.QuestionBankID != nil:
			id := *it.QuestionBankID
			bankIDs = append(bankIDs, id)
			rows = append(rows, domain.JobInterviewQuestion{QuestionBankID: &id, Answer: answer})
		case strings.TrimSpace(it.Question) != "":
			q := strings.TrimSpace(it.Question)
			rows = append(rows, domain.JobInterviewQuestion{CustomQuestion: &q, Answer: answer})
		}
	}

	var out []InterviewQA
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if _, err := ownedJob(ctx, tx, userID, jobID); err != nil {
			return err
		}
		if len(bankIDs) > 0 {
			found, err := repo.GetQuestionsByIDs(ctx, tx, bankIDs)
			if err != nil {
				return err
			}
			known := indexByID(found)
			for _, id := range bankIDs {
				if _, ok := known[id]; !ok {
					return fmt.Errorf("%w: question_bank_id %d", ErrQuestionNotFound, id)
				}
			}
		}
		if err := repo.ReplaceInterviewQuestions(ctx, tx, jobID, rows); err != nil {
			return err
		}
		saved, err := repo.ListInterviewQuestions(ctx, tx, jobID)
		if err != nil {
			return err
		}
		out = toQA(saved)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func rankQuestions(bank []domain.QuestionBank, query string) []search.Result {
	docs := make([]search.Document, len(bank))
	for i, q := range bank {
		docs[i] = search.Document{ID: q.ID, Text: q.Question}
	}
	return search.New(docs, search.WithStopwords(search.DefaultStopwords)).TopK(query, 0)
}

func indexByID(qs []domain.QuestionBank) map[uint]domain.QuestionBank {
	m := make(map[uint]domain.QuestionBank, len(qs))
	for _, q := range qs {
		m[q.ID] = q
	}
	return m
}

func toQA(rows []repo.InterviewQuestionRow) []InterviewQA {
	out := make([]InterviewQA, 0, len(rows))
	for _, r := range rows {
		qa := InterviewQA{ID: r.ID, QuestionBankID: r.QuestionBankID, Answer: r.Answer}
		switch {
		case r.BankQuestion != nil:
			qa.Question = *r.BankQuestion
		case r.CustomQuestion != nil:
			qa.Question = *r.CustomQuestion
		}
		out = append(out, qa)
	}
	return out
}
