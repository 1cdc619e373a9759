package app

import (
	"context"
	"fmt"
	"time"

	"survey-assessment-service/internal/domain"

	"github.com/google/uuid"
)

// SurveySession is the per-username flow state while answering. It is owned
// by a single browser flow and discarded after submission.
type SurveySession struct {
	Username  string            `json:"username"`
	Current   int               `json:"current"`
	Answers   map[string]string `json:"answers"`
	StartedAt time.Time         `json:"startedAt"`
	UpdatedAt time.Time         `json:"updatedAt"`
}

// SessionStore abstracts where in-flight survey sessions live (in-memory, Redis).
type SessionStore interface {
	Get(ctx context.Context, username string) (SurveySession, bool, error)
	Save(ctx context.Context, session SurveySession) error
	Delete(ctx context.Context, username string) error
}

// ResponseStore is the gateway surface used at submission time.
type ResponseStore interface {
	// GetResponseByParticipantID returns (nil, nil) when no row matches.
	GetResponseByParticipantID(ctx context.Context, participantID string) (*domain.SurveyResponse, error)
	InsertResponse(ctx context.Context, r domain.SurveyResponse) error
}

// SurveyService steps a participant through the question bank one question at
// a time and turns a completed session into a persisted response.
type SurveyService struct {
	bank         []domain.Question
	sessions     SessionStore
	participants ParticipantStore
	responses    ResponseStore
	now          func() time.Time
}

func NewSurveyService(bank []domain.Question, sessions SessionStore, participants ParticipantStore, responses ResponseStore) *SurveyService {
	return &SurveyService{
		bank:         bank,
		sessions:     sessions,
		participants: participants,
		responses:    responses,
		now:          time.Now,
	}
}

// Questions returns the bank in presentation order.
func (s *SurveyService) Questions() []domain.Question {
	return s.bank
}

// Resume returns the session for a username, creating it at question zero if
// none exists yet.
func (s *SurveyService) Resume(ctx context.Context, username string) (SurveySession, error) {
	session, ok, err := s.sessions.Get(ctx, username)
	if err != nil {
		return SurveySession{}, err
	}
	if ok {
		return session, nil
	}
	now := s.now().UTC()
	session = SurveySession{
		Username:  username,
		Current:   0,
		Answers:   make(map[string]string),
		StartedAt: now,
		UpdatedAt: now,
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return SurveySession{}, err
	}
	return session, nil
}

// SelectAnswer records a choice for a question. Re-selecting overwrites the
// prior choice for that question only; answers to other questions are kept.
func (s *SurveyService) SelectAnswer(ctx context.Context, username, questionID, optionID string) (SurveySession, error) {
	question := s.questionByID(questionID)
	if question == nil {
		return SurveySession{}, domain.ErrQuestionNotFound
	}
	if optionByID(*question, optionID) == nil {
		return SurveySession{}, domain.ErrOptionNotFound
	}

	session, err := s.Resume(ctx, username)
	if err != nil {
		return SurveySession{}, err
	}
	session.Answers[questionID] = optionID
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Save(ctx, session); err != nil {
		return SurveySession{}, err
	}
	return session, nil
}

// Next advances to the following question. It requires the current question
// to have an answer and stops at the last question.
func (s *SurveyService) Next(ctx context.Context, username string) (SurveySession, error) {
	session, err := s.Resume(ctx, username)
	if err != nil {
		return SurveySession{}, err
	}
	if session.Answers[s.bank[session.Current].ID] == "" {
		return session, domain.ErrAnswerRequired
	}
	if session.Current >= len(s.bank)-1 {
		return session, nil
	}
	session.Current++
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Save(ctx, session); err != nil {
		return SurveySession{}, err
	}
	return session, nil
}

// Previous steps back one question. There is no answer gate; it stops at the
// first question.
func (s *SurveyService) Previous(ctx context.Context, username string) (SurveySession, error) {
	session, err := s.Resume(ctx, username)
	if err != nil {
		return SurveySession{}, err
	}
	if session.Current == 0 {
		return session, nil
	}
	session.Current--
	session.UpdatedAt = s.now().UTC()
	if err := s.sessions.Save(ctx, session); err != nil {
		return SurveySession{}, err
	}
	return session, nil
}

// Submit scores a complete session and persists the response. The store is
// not contacted until every question has an answer, and the single response
// insert is the only externally visible effect.
func (s *SurveyService) Submit(ctx context.Context, username string) (domain.SurveyResult, error) {
	session, err := s.Resume(ctx, username)
	if err != nil {
		return domain.SurveyResult{}, err
	}

	missing := 0
	for _, question := range s.bank {
		if session.Answers[question.ID] == "" {
			missing++
		}
	}
	if missing > 0 {
		return domain.SurveyResult{}, &domain.IncompleteSubmissionError{Missing: missing}
	}

	participant, err := s.participants.GetParticipantByUsername(ctx, username)
	if err != nil {
		return domain.SurveyResult{}, fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}
	if participant == nil {
		return domain.SurveyResult{}, domain.ErrParticipantNotFound
	}

	existing, err := s.responses.GetResponseByParticipantID(ctx, participant.ID)
	if err != nil {
		return domain.SurveyResult{}, fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}
	if existing != nil {
		return domain.SurveyResult{}, domain.ErrAlreadySubmitted
	}

	result := ScoreAnswers(s.bank, session.Answers)
	result.Username = username

	answers := make(map[string]string, len(session.Answers))
	for questionID, optionID := range session.Answers {
		answers[questionID] = optionID
	}
	response := domain.SurveyResponse{
		ID:               uuid.NewString(),
		ParticipantID:    participant.ID,
		Username:         username,
		Answers:          answers,
		TotalScore:       result.Score,
		MaxPossibleScore: result.TotalQuestions,
		PercentageScore:  result.Percentage,
		ResultCategory:   result.ResultCategory,
		CompletedAt:      s.now().UTC(),
	}
	if err := s.responses.InsertResponse(ctx, response); err != nil {
		return domain.SurveyResult{}, fmt.Errorf("%w: %v", domain.ErrSubmissionFailed, err)
	}

	// Best effort; a leftover session is harmless since the duplicate check
	// blocks a second submission.
	_ = s.sessions.Delete(ctx, username)

	return result, nil
}

func (s *SurveyService) questionByID(questionID string) *domain.Question {
	for i := range s.bank {
		if s.bank[i].ID == questionID {
			return &s.bank[i]
		}
	}
	return nil
}
