package memory

import (
	"context"
	"sync"

	"survey-assessment-service/internal/app"
)

// SessionStore is an in-memory implementation of app.SessionStore, keyed by
// username. Sessions are handed out as copies so callers mutate freely and
// persist via Save.
type SessionStore struct {
	mu       sync.RWMutex
	sessions map[string]app.SurveySession
}

func NewSessionStore() *SessionStore {
	return &SessionStore{
		sessions: make(map[string]app.SurveySession),
	}
}

func (s *SessionStore) Get(_ context.Context, username string) (app.SurveySession, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	session, ok := s.sessions[username]
	if !ok {
		return app.SurveySession{}, false, nil
	}
	session.Answers = copyAnswers(session.Answers)
	return session, true, nil
}

func (s *SessionStore) Save(_ context.Context, session app.SurveySession) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	session.Answers = copyAnswers(session.Answers)
	s.sessions[session.Username] = session
	return nil
}

func (s *SessionStore) Delete(_ context.Context, username string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, username)
	return nil
}
