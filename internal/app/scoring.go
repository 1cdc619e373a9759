package app

import (
	"math"

	"survey-assessment-service/internal/domain"
)

// ScoreAnswers tallies an answer mapping against the question bank.
// The mapping may be incomplete; a missing or unknown answer counts as
// incorrect. The function is total over its input and never fails.
func ScoreAnswers(bank []domain.Question, answers map[string]string) domain.SurveyResult {
	correctCount := 0
	details := make([]domain.QuestionResult, 0, len(bank))

	for _, question := range bank {
		userAnswerID := answers[question.ID]
		correct := correctOption(question)
		chosen := optionByID(question, userAnswerID)

		isCorrect := correct != nil && userAnswerID == correct.ID
		if isCorrect {
			correctCount++
		}

		detail := domain.QuestionResult{
			QuestionID:     question.ID,
			Question:       question.Prompt,
			UserAnswer:     userAnswerID,
			IsCorrect:      isCorrect,
			UserAnswerText: domain.NoAnswerText,
		}
		if correct != nil {
			detail.CorrectAnswer = correct.ID
			detail.CorrectAnswerText = correct.Text
		}
		if chosen != nil {
			detail.UserAnswerText = chosen.Text
		}
		details = append(details, detail)
	}

	percentage := 0
	if len(bank) > 0 {
		percentage = int(math.Round(float64(correctCount) / float64(len(bank)) * 100))
	}

	return domain.SurveyResult{
		Score:           correctCount,
		TotalQuestions:  len(bank),
		Percentage:      percentage,
		DetailedResults: details,
		ResultCategory:  Categorize(percentage),
	}
}

// Categorize maps a percentage score to its result category.
// Evaluated in order, first match wins.
func Categorize(percentage int) string {
	switch {
	case percentage >= 80:
		return domain.CategoryExcellent
	case percentage >= 60:
		return domain.CategoryGood
	case percentage >= 40:
		return domain.CategoryFair
	default:
		return domain.CategoryNeedsImprovement
	}
}

// Passed reports whether a percentage score meets the pass threshold.
func Passed(percentage int) bool {
	return percentage >= domain.PassThreshold
}

func correctOption(q domain.Question) *domain.Option {
	for i := range q.Options {
		if q.Options[i].Correct {
			return &q.Options[i]
		}
	}
	return nil
}

func optionByID(q domain.Question, optionID string) *domain.Option {
	if optionID == "" {
		return nil
	}
	for i := range q.Options {
		if q.Options[i].ID == optionID {
			return &q.Options[i]
		}
	}
	return nil
}
