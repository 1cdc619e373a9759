package app_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"survey-assessment-service/internal/app"
	"survey-assessment-service/internal/domain"
)

type staticResponseSource struct {
	rows        []domain.SurveyResponse
	err         error
	invalidated int
}

func (s *staticResponseSource) ListResponses(ctx context.Context) ([]domain.SurveyResponse, error) {
	return s.rows, s.err
}

func (s *staticResponseSource) Invalidate(ctx context.Context) error {
	s.invalidated++
	return nil
}

func responseWithPercentage(username string, percentage int) domain.SurveyResponse {
	return domain.SurveyResponse{
		ID:               username + "-response",
		ParticipantID:    username + "-id",
		Username:         username,
		TotalScore:       percentage / 10,
		MaxPossibleScore: 10,
		PercentageScore:  percentage,
		ResultCategory:   app.Categorize(percentage),
		CompletedAt:      time.Date(2025, 8, 31, 12, 0, 0, 0, time.UTC),
	}
}

func TestDashboardStatistics(t *testing.T) {
	source := &staticResponseSource{rows: []domain.SurveyResponse{
		responseWithPercentage("alice", 100),
		responseWithPercentage("bob", 50),
		responseWithPercentage("carol", 0),
	}}
	service := app.NewAdminService(domain.DefaultQuestionBank(), source)

	dashboard, err := service.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	stats := dashboard.Statistics
	if stats == nil {
		t.Fatalf("expected statistics")
	}
	if stats.TotalParticipants != 3 {
		t.Fatalf("expected 3 participants, got %d", stats.TotalParticipants)
	}
	if stats.AverageScore != 50.00 {
		t.Fatalf("expected average 50.00, got %v", stats.AverageScore)
	}
	if stats.PassRate != 33.33 {
		t.Fatalf("expected pass rate 33.33, got %v", stats.PassRate)
	}
}

func TestDashboardEmptyHasNilStatistics(t *testing.T) {
	service := app.NewAdminService(domain.DefaultQuestionBank(), &staticResponseSource{})

	dashboard, err := service.Dashboard(context.Background())
	if err != nil {
		t.Fatalf("dashboard: %v", err)
	}
	if dashboard.Statistics != nil {
		t.Fatalf("expected nil statistics, got %+v", dashboard.Statistics)
	}
	if len(dashboard.Responses) != 0 {
		t.Fatalf("expected no responses, got %d", len(dashboard.Responses))
	}
}

func TestDashboardWrapsStoreFailure(t *testing.T) {
	source := &staticResponseSource{err: errors.New("connection reset")}
	service := app.NewAdminService(domain.DefaultQuestionBank(), source)

	_, err := service.Dashboard(context.Background())
	if !errors.Is(err, domain.ErrDashboardUnavailable) {
		t.Fatalf("expected ErrDashboardUnavailable, got %v", err)
	}
}

func TestRefreshInvalidatesBeforeReload(t *testing.T) {
	source := &staticResponseSource{rows: []domain.SurveyResponse{
		responseWithPercentage("alice", 80),
	}}
	service := app.NewAdminService(domain.DefaultQuestionBank(), source)

	if _, err := service.Refresh(context.Background()); err != nil {
		t.Fatalf("refresh: %v", err)
	}
	if source.invalidated != 1 {
		t.Fatalf("expected one invalidation, got %d", source.invalidated)
	}
}

func TestTopCategoryMajorityAndTies(t *testing.T) {
	cases := []struct {
		name        string
		percentages []int
		want        string
	}{
		{"clear majority", []int{100, 90, 30}, domain.CategoryExcellent},
		{"tie prefers better category", []int{70, 30}, domain.CategoryGood},
		{"all failing", []int{10, 20}, domain.CategoryNeedsImprovement},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rows := make([]domain.SurveyResponse, 0, len(tc.percentages))
			for i, p := range tc.percentages {
				rows = append(rows, responseWithPercentage(string(rune('a'+i)), p))
			}
			source := &staticResponseSource{rows: rows}
			dashboard, err := app.NewAdminService(domain.DefaultQuestionBank(), source).Dashboard(context.Background())
			if err != nil {
				t.Fatalf("dashboard: %v", err)
			}
			if got := dashboard.Statistics.TopCategory; got != tc.want {
				t.Fatalf("expected top category %q, got %q", tc.want, got)
			}
		})
	}
}

func TestFormatAnswersFollowsBankOrder(t *testing.T) {
	service := app.NewAdminService(domain.DefaultQuestionBank(), &staticResponseSource{})

	answers := map[string]string{"q10": "b", "q1": "a", "q2": "c"}
	got := service.FormatAnswers(answers)
	want := "Q1: A, Q2: C, Q10: B"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}

func TestFormatAnswersAppendsUnknownQuestions(t *testing.T) {
	service := app.NewAdminService(domain.DefaultQuestionBank(), &staticResponseSource{})

	answers := map[string]string{"q1": "a", "extra": "b"}
	got := service.FormatAnswers(answers)
	want := "Q1: A, EXTRA: B"
	if got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
