package memory_test

import (
	"context"
	"testing"

	"survey-assessment-service/internal/app"
	"survey-assessment-service/internal/infra/memory"
)

func TestSessionStoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()

	_, ok, err := store.Get(ctx, "tester1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected no session before save")
	}

	session := app.SurveySession{
		Username: "tester1",
		Current:  3,
		Answers:  map[string]string{"q1": "a"},
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, ok, err := store.Get(ctx, "tester1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok {
		t.Fatalf("expected session after save")
	}
	if loaded.Current != 3 || loaded.Answers["q1"] != "a" {
		t.Fatalf("unexpected session %+v", loaded)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()

	if err := store.Save(ctx, app.SurveySession{Username: "tester1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.Delete(ctx, "tester1"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	_, ok, err := store.Get(ctx, "tester1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok {
		t.Fatalf("expected session gone after delete")
	}
}

func TestSessionStoreIsolatesAnswerMaps(t *testing.T) {
	ctx := context.Background()
	store := memory.NewSessionStore()

	session := app.SurveySession{
		Username: "tester1",
		Answers:  map[string]string{"q1": "a"},
	}
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	session.Answers["q1"] = "mutated"

	loaded, _, err := store.Get(ctx, "tester1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if loaded.Answers["q1"] != "a" {
		t.Fatalf("saved session shares a map with the caller")
	}
	loaded.Answers["q1"] = "mutated"

	again, _, err := store.Get(ctx, "tester1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if again.Answers["q1"] != "a" {
		t.Fatalf("loaded session shares a map with the store")
	}
}
