package app

import (
	"context"
	"fmt"
	"strings"
	"time"
	"unicode/utf8"

	"survey-assessment-service/internal/domain"

	"github.com/google/uuid"
)

const (
	minUsernameLength = 3
	maxUsernameLength = 20
)

// ParticipantStore is the gateway surface used for registration.
type ParticipantStore interface {
	// GetParticipantByUsername returns (nil, nil) when no row matches.
	GetParticipantByUsername(ctx context.Context, username string) (*domain.Participant, error)
	InsertParticipant(ctx context.Context, p domain.Participant) error
}

// RegistrationService validates usernames and creates participant rows.
type RegistrationService struct {
	participants ParticipantStore
	now          func() time.Time
}

func NewRegistrationService(participants ParticipantStore) *RegistrationService {
	return &RegistrationService{participants: participants, now: time.Now}
}

// Register validates a raw username, normalizes it to lowercase, checks
// uniqueness against the store and inserts the new participant. Validation
// happens before any store access; store failures surface as
// ErrRegistrationFailed.
func (s *RegistrationService) Register(ctx context.Context, raw string) (domain.Participant, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return domain.Participant{}, domain.ErrEmptyUsername
	}
	switch length := utf8.RuneCountInString(trimmed); {
	case length < minUsernameLength:
		return domain.Participant{}, domain.ErrUsernameTooShort
	case length > maxUsernameLength:
		return domain.Participant{}, domain.ErrUsernameTooLong
	}

	username := strings.ToLower(trimmed)
	existing, err := s.participants.GetParticipantByUsername(ctx, username)
	if err != nil {
		return domain.Participant{}, fmt.Errorf("%w: %v", domain.ErrRegistrationFailed, err)
	}
	if existing != nil {
		return domain.Participant{}, domain.ErrUsernameTaken
	}

	participant := domain.Participant{
		ID:        uuid.NewString(),
		Username:  username,
		CreatedAt: s.now().UTC(),
	}
	if err := s.participants.InsertParticipant(ctx, participant); err != nil {
		return domain.Participant{}, fmt.Errorf("%w: %v", domain.ErrRegistrationFailed, err)
	}
	return participant, nil
}
