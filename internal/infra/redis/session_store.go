package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"survey-assessment-service/internal/app"

	"github.com/redis/go-redis/v9"
)

// SessionStore keeps in-flight survey sessions in Redis so a flow survives a
// process restart. Each session is one JSON value with a TTL; abandoned flows
// simply expire.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Get(ctx context.Context, username string) (app.SurveySession, bool, error) {
	raw, err := s.client.Get(ctx, s.key(username)).Bytes()
	if err == redis.Nil {
		return app.SurveySession{}, false, nil
	}
	if err != nil {
		return app.SurveySession{}, false, fmt.Errorf("get session: %w", err)
	}
	var session app.SurveySession
	if err := json.Unmarshal(raw, &session); err != nil {
		return app.SurveySession{}, false, fmt.Errorf("unmarshal session: %w", err)
	}
	if session.Answers == nil {
		session.Answers = make(map[string]string)
	}
	return session, true, nil
}

func (s *SessionStore) Save(ctx context.Context, session app.SurveySession) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	if err := s.client.Set(ctx, s.key(session.Username), raw, s.ttl).Err(); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

func (s *SessionStore) Delete(ctx context.Context, username string) error {
	if err := s.client.Del(ctx, s.key(username)).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

func (s *SessionStore) key(username string) string {
	return "survey:session:" + username
}
