package services

import (
	"strings"

	"github.com/tbourn/go-jobtracker-backend/internal/domain"
)

// NoImprovementsMessage is the only recommendation when a user has no
// recorded improvements.
const NoImprovementsMessage = "No common improvement areas identified."

const genericRecommendation = "Review your feedback for recurring themes and focus on targeted self-improvement initiatives. " +
	"Consider seeking additional mentoring or training in the areas that most frequently appear in your feedback."

type recommendationRule struct {
	keyword string
	message string
}

// Evaluated in order; the first keyword contained in the top improvement wins.
var recommendationRules = []recommendationRule{
	{"communication", "The feedback indicates a need to improve your communication skills. " +
		"Consider joining a public speaking club such as Toastmasters, enrolling in specialized communication courses, " +
		"and seeking regular feedback from peers."},
	{"time", "Feedback suggests you could benefit from improved time management. " +
		"Explore time management workshops or online seminars, and consider using planning tools to better organize your tasks."},
	{"technical", "It appears there is room to enhance your technical expertise. " +
		"Look into advanced courses, workshops, or hands-on projects that challenge your current skills, " +
		"and consider mentorship opportunities."},
	{"leadership", "The feedback highlights a need for better leadership skills. " +
		"You might benefit from leadership training programs, mentoring sessions, or management workshops to improve these skills."},
}

// Recommend derives the recommendation list from the ranked improvements.
// Only the most frequent improvement is considered, matched by plain
// lower-cased substring, so exactly one message is returned.
func Recommend(top []domain.ImprovementCount) []string {
	if len(top) == 0 {
		return []string{NoImprovementsMessage}
	}
	v := strings.ToLower(top[0].Improvement)
	for _, r := range recommendationRules {
		if strings.Contains(v, r.keyword) {
			return []string{r.message}
		}
	}
	return []string{genericRecommendation}
}
