package domain

import "time"

// Option represents a possible answer for a question.
type Option struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Correct bool   `json:"isCorrect"`
}

// Question models an MCQ question with exactly one correct option.
type Question struct {
	ID      string   `json:"id"`
	Prompt  string   `json:"prompt"`
	Image   string   `json:"image"`
	Options []Option `json:"options"`
}

// Participant is a registered username eligible to take the survey once.
type Participant struct {
	ID        string
	Username  string
	CreatedAt time.Time
}

// SurveyResponse is the persisted outcome of one participant's completed survey.
// Rows are written once at submission time and never mutated.
type SurveyResponse struct {
	ID               string
	ParticipantID    string
	Username         string
	Answers          map[string]string
	TotalScore       int
	MaxPossibleScore int
	PercentageScore  int
	ResultCategory   string
	CompletedAt      time.Time
}

// QuestionResult records the outcome of a single question for the results review.
type QuestionResult struct {
	QuestionID        string `json:"questionId"`
	Question          string `json:"question"`
	UserAnswer        string `json:"userAnswer"`
	CorrectAnswer     string `json:"correctAnswer"`
	IsCorrect         bool   `json:"isCorrect"`
	UserAnswerText    string `json:"userAnswerText"`
	CorrectAnswerText string `json:"correctAnswerText"`
}

// SurveyResult is the full scored outcome handed to the results page.
type SurveyResult struct {
	Score           int              `json:"score"`
	TotalQuestions  int              `json:"totalQuestions"`
	Percentage      int              `json:"percentage"`
	DetailedResults []QuestionResult `json:"detailedResults"`
	ResultCategory  string           `json:"resultCategory"`
	Username        string           `json:"username"`
}

// Result categories, best to worst.
const (
	CategoryExcellent        = "Excellent"
	CategoryGood             = "Good"
	CategoryFair             = "Fair"
	CategoryNeedsImprovement = "Needs Improvement"
)

// Categories lists the result categories from best to worst.
var Categories = []string{
	CategoryExcellent,
	CategoryGood,
	CategoryFair,
	CategoryNeedsImprovement,
}

// PassThreshold is the percentage at or above which a response counts as a pass.
const PassThreshold = 60

// NoAnswerText is the sentinel shown for questions left unanswered.
const NoAnswerText = "No answer"
