package redis

import (
	"context"
	"testing"
	"time"

	"survey-assessment-service/internal/domain"
)

type countingLister struct {
	rows  []domain.SurveyResponse
	calls int
}

func (l *countingLister) ListResponses(ctx context.Context) ([]domain.SurveyResponse, error) {
	l.calls++
	return l.rows, nil
}

func TestResponseCacheServesHits(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	lister := &countingLister{rows: []domain.SurveyResponse{{ID: "r1", ParticipantID: "p1", Username: "tester1"}}}
	cache := NewResponseCache(client, lister, time.Minute)

	if _, err := cache.ListResponses(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if lister.calls != 1 {
		t.Fatalf("expected loader once, got %d", lister.calls)
	}
	if !mr.Exists("survey:responses") {
		t.Fatalf("expected cache key to be set")
	}

	rows, err := cache.ListResponses(ctx)
	if err != nil {
		t.Fatalf("list 2: %v", err)
	}
	if lister.calls != 1 {
		t.Fatalf("expected cache hit, loader calls %d", lister.calls)
	}
	if len(rows) != 1 || rows[0].Username != "tester1" {
		t.Fatalf("unexpected rows %+v", rows)
	}
}

func TestResponseCacheInvalidateForcesReload(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	lister := &countingLister{}
	cache := NewResponseCache(client, lister, time.Minute)

	if _, err := cache.ListResponses(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if err := cache.Invalidate(ctx); err != nil {
		t.Fatalf("invalidate: %v", err)
	}
	if mr.Exists("survey:responses") {
		t.Fatalf("expected cache key to be removed")
	}
	if _, err := cache.ListResponses(ctx); err != nil {
		t.Fatalf("list 2: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("expected reload after invalidate, loader calls %d", lister.calls)
	}
}

func TestResponseCacheExpires(t *testing.T) {
	ctx := context.Background()
	mr, client := newTestClient(t)
	lister := &countingLister{}
	cache := NewResponseCache(client, lister, time.Minute)

	if _, err := cache.ListResponses(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	mr.FastForward(2 * time.Minute)

	if _, err := cache.ListResponses(ctx); err != nil {
		t.Fatalf("list 2: %v", err)
	}
	if lister.calls != 2 {
		t.Fatalf("expected reload after expiry, loader calls %d", lister.calls)
	}
}
