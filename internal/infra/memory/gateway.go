package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"survey-assessment-service/internal/domain"
)

// Gateway is an in-memory stand-in for the hosted relational store. It backs
// local development without Postgres and the unit tests, and enforces the
// same uniqueness invariants as the real schema.
type Gateway struct {
	mu           sync.RWMutex
	participants map[string]domain.Participant   // keyed by username
	responses    map[string]domain.SurveyResponse // keyed by participant ID
}

func NewGateway() *Gateway {
	return &Gateway{
		participants: make(map[string]domain.Participant),
		responses:    make(map[string]domain.SurveyResponse),
	}
}

func (g *Gateway) GetParticipantByUsername(_ context.Context, username string) (*domain.Participant, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	participant, ok := g.participants[username]
	if !ok {
		return nil, nil
	}
	return &participant, nil
}

func (g *Gateway) InsertParticipant(_ context.Context, p domain.Participant) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.participants[p.Username]; ok {
		return fmt.Errorf("participant %q already exists", p.Username)
	}
	g.participants[p.Username] = p
	return nil
}

func (g *Gateway) GetResponseByParticipantID(_ context.Context, participantID string) (*domain.SurveyResponse, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	response, ok := g.responses[participantID]
	if !ok {
		return nil, nil
	}
	copied := response
	copied.Answers = copyAnswers(response.Answers)
	return &copied, nil
}

func (g *Gateway) InsertResponse(_ context.Context, r domain.SurveyResponse) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.responses[r.ParticipantID]; ok {
		return fmt.Errorf("response for participant %q already exists", r.ParticipantID)
	}
	r.Answers = copyAnswers(r.Answers)
	g.responses[r.ParticipantID] = r
	return nil
}

// ListResponses returns all responses ordered by completion time descending.
func (g *Gateway) ListResponses(_ context.Context) ([]domain.SurveyResponse, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	rows := make([]domain.SurveyResponse, 0, len(g.responses))
	for _, response := range g.responses {
		response.Answers = copyAnswers(response.Answers)
		rows = append(rows, response)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if !rows[i].CompletedAt.Equal(rows[j].CompletedAt) {
			return rows[i].CompletedAt.After(rows[j].CompletedAt)
		}
		return rows[i].ID < rows[j].ID
	})
	return rows, nil
}

func copyAnswers(answers map[string]string) map[string]string {
	copied := make(map[string]string, len(answers))
	for questionID, optionID := range answers {
		copied[questionID] = optionID
	}
	return copied
}
