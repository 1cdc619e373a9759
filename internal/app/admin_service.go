package app

import (
	"context"
	"fmt"
	"math"
	"sort"
	"strings"

	"survey-assessment-service/internal/domain"
)

// ResponseSource lists persisted responses, possibly through a cache layer.
type ResponseSource interface {
	// ListResponses returns all responses ordered by completion time descending.
	ListResponses(ctx context.Context) ([]domain.SurveyResponse, error)
	// Invalidate drops any cached list so the next read hits the store.
	Invalidate(ctx context.Context) error
}

// Statistics are the aggregate numbers shown on the dashboard. Rates are
// rounded to two decimal places.
type Statistics struct {
	TotalParticipants int
	AverageScore      float64
	PassRate          float64
	CategoryBreakdown map[string]int
	TopCategory       string
}

// Dashboard bundles the ordered response list with its aggregates.
// Statistics is nil when there are no responses yet.
type Dashboard struct {
	Responses  []domain.SurveyResponse
	Statistics *Statistics
}

// AdminService reads the full response collection and computes aggregates.
type AdminService struct {
	bank      []domain.Question
	responses ResponseSource
}

func NewAdminService(bank []domain.Question, responses ResponseSource) *AdminService {
	return &AdminService{bank: bank, responses: responses}
}

// Dashboard loads all responses and computes statistics over the full set.
func (s *AdminService) Dashboard(ctx context.Context) (Dashboard, error) {
	rows, err := s.responses.ListResponses(ctx)
	if err != nil {
		return Dashboard{}, fmt.Errorf("%w: %v", domain.ErrDashboardUnavailable, err)
	}
	return Dashboard{Responses: rows, Statistics: computeStatistics(rows)}, nil
}

// Refresh invalidates the cached response list and reloads the dashboard.
// It backs both the Refresh Data and the error-state Retry actions.
func (s *AdminService) Refresh(ctx context.Context) (Dashboard, error) {
	_ = s.responses.Invalidate(ctx)
	return s.Dashboard(ctx)
}

// FormatAnswers renders an answers mapping as uppercased "QID: OID" pairs,
// comma-joined, in question bank order. Keys outside the bank are appended
// in sorted order so manually inserted rows still render completely.
func (s *AdminService) FormatAnswers(answers map[string]string) string {
	pairs := make([]string, 0, len(answers))
	seen := make(map[string]bool, len(answers))
	for _, question := range s.bank {
		if optionID, ok := answers[question.ID]; ok {
			pairs = append(pairs, formatAnswerPair(question.ID, optionID))
			seen[question.ID] = true
		}
	}

	extras := make([]string, 0)
	for questionID := range answers {
		if !seen[questionID] {
			extras = append(extras, questionID)
		}
	}
	sort.Strings(extras)
	for _, questionID := range extras {
		pairs = append(pairs, formatAnswerPair(questionID, answers[questionID]))
	}
	return strings.Join(pairs, ", ")
}

func formatAnswerPair(questionID, optionID string) string {
	return strings.ToUpper(questionID) + ": " + strings.ToUpper(optionID)
}

func computeStatistics(rows []domain.SurveyResponse) *Statistics {
	if len(rows) == 0 {
		return nil
	}

	sum := 0
	passCount := 0
	breakdown := make(map[string]int)
	for _, row := range rows {
		sum += row.PercentageScore
		if Passed(row.PercentageScore) {
			passCount++
		}
		breakdown[row.ResultCategory]++
	}

	total := len(rows)
	return &Statistics{
		TotalParticipants: total,
		AverageScore:      round2(float64(sum) / float64(total)),
		PassRate:          round2(float64(passCount) / float64(total) * 100),
		CategoryBreakdown: breakdown,
		TopCategory:       topCategory(breakdown),
	}
}

// topCategory returns the modal category. Candidates are seeded in canonical
// category order, so a true tie resolves to the better category.
func topCategory(breakdown map[string]int) string {
	type categoryCount struct {
		category string
		count    int
	}
	counts := make([]categoryCount, 0, len(breakdown))
	for _, category := range domain.Categories {
		if n := breakdown[category]; n > 0 {
			counts = append(counts, categoryCount{category: category, count: n})
		}
	}
	// Categories outside the known set should not occur, but keep them visible.
	for category, n := range breakdown {
		if !knownCategory(category) {
			counts = append(counts, categoryCount{category: category, count: n})
		}
	}
	if len(counts) == 0 {
		return ""
	}
	sort.SliceStable(counts, func(i, j int) bool {
		return counts[i].count > counts[j].count
	})
	return counts[0].category
}

func knownCategory(category string) bool {
	for _, c := range domain.Categories {
		if c == category {
			return true
		}
	}
	return false
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
