package domain

import (
	"errors"
	"fmt"
)

var (
	// ErrEmptyUsername is returned when the trimmed username is empty.
	ErrEmptyUsername = errors.New("username is empty")
	// ErrUsernameTooShort is returned for usernames under 3 characters.
	ErrUsernameTooShort = errors.New("username is too short")
	// ErrUsernameTooLong is returned for usernames over 20 characters.
	ErrUsernameTooLong = errors.New("username is too long")
	// ErrUsernameTaken is returned when the normalized username already has a participant row.
	ErrUsernameTaken = errors.New("username already taken")
	// ErrParticipantNotFound is returned when a submission references an unregistered username.
	ErrParticipantNotFound = errors.New("participant not found")
	// ErrAlreadySubmitted is returned when a participant already has a stored response.
	ErrAlreadySubmitted = errors.New("survey already submitted")
	// ErrQuestionNotFound indicates a submitted question ID is not in the bank.
	ErrQuestionNotFound = errors.New("question not found")
	// ErrOptionNotFound indicates a submitted option ID is invalid for the question.
	ErrOptionNotFound = errors.New("option not found")
	// ErrAnswerRequired gates forward navigation on the current question being answered.
	ErrAnswerRequired = errors.New("current question has no answer")
	// ErrRegistrationFailed wraps store failures during registration.
	ErrRegistrationFailed = errors.New("registration failed")
	// ErrSubmissionFailed wraps store failures during submission.
	ErrSubmissionFailed = errors.New("submission failed")
	// ErrDashboardUnavailable wraps store failures while loading the admin dashboard.
	ErrDashboardUnavailable = errors.New("failed to load dashboard data")
)

// IncompleteSubmissionError reports how many questions are still unanswered.
type IncompleteSubmissionError struct {
	Missing int
}

func (e *IncompleteSubmissionError) Error() string {
	return fmt.Sprintf("incomplete submission: %d question(s) unanswered", e.Missing)
}
