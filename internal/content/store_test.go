package content

import (
	"encoding/json"
	"testing"

	"puzzle-week/internal/event"
)

func quizPayload(t *testing.T) json.RawMessage {
	t.Helper()
	payload, err := json.Marshal(QuizPayload{Questions: []QuizQuestion{
		{Prompt: "Capital of France?", Options: []string{"Paris", "Lyon"}, CorrectIndex: 0},
	}})
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	return payload
}

func TestResolveFallsBackToGeneral(t *testing.T) {
	store := NewMemoryStore()
	clock := event.Clock{Day: 2}
	if _, err := store.Upsert(clock, event.GameQuiz, "", quizPayload(t)); err != nil {
		t.Fatalf("upsert general: %v", err)
	}

	resolved, err := store.Resolve(clock, event.GameQuiz, "team-red")
	if err != nil {
		t.Fatalf("expected general fallback, got %v", err)
	}
	if resolved.Version == 0 {
		t.Fatal("resolved version missing")
	}
}

func TestResolvePrefersExactGroup(t *testing.T) {
	store := NewMemoryStore()
	clock := event.Clock{Day: 2}
	if _, err := store.Upsert(clock, event.GameQuiz, "", quizPayload(t)); err != nil {
		t.Fatalf("upsert general: %v", err)
	}
	groupPayload, _ := json.Marshal(QuizPayload{Questions: []QuizQuestion{
		{Prompt: "Group question", Options: []string{"a", "b"}, CorrectIndex: 1},
	}})
	groupVersion, err := store.Upsert(clock, event.GameQuiz, "team-red", groupPayload)
	if err != nil {
		t.Fatalf("upsert group: %v", err)
	}

	resolved, err := store.Resolve(clock, event.GameQuiz, "team-red")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	if resolved.Version != groupVersion {
		t.Fatalf("expected group version %d, got %d", groupVersion, resolved.Version)
	}
}

func TestResolveNotFoundDistinctFromValidation(t *testing.T) {
	store := NewMemoryStore()
	_, err := store.Resolve(event.Clock{Day: 5}, event.GameJigsaw, "")
	if !event.IsNotFound(err) {
		t.Fatalf("expected not-found, got %v", err)
	}
	_, err = store.Resolve(event.Clock{Day: 99}, event.GameJigsaw, "")
	if !event.IsValidation(err) {
		t.Fatalf("expected validation error for bad day, got %v", err)
	}
	_, err = store.Resolve(event.Clock{Day: 1}, "checkers", "")
	if !event.IsValidation(err) {
		t.Fatalf("expected validation error for unknown game, got %v", err)
	}
}

func TestUpsertBumpsVersion(t *testing.T) {
	store := NewMemoryStore()
	clock := event.Clock{Day: 1}
	first, err := store.Upsert(clock, event.GameQuiz, "", quizPayload(t))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	second, err := store.Upsert(clock, event.GameQuiz, "", quizPayload(t))
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if second <= first {
		t.Fatalf("version did not advance: %d then %d", first, second)
	}
}

func TestUpsertRejectsMalformedPayloads(t *testing.T) {
	store := NewMemoryStore()
	clock := event.Clock{Day: 1}

	cases := []struct {
		name    string
		game    event.Game
		payload string
	}{
		{"empty", event.GameQuiz, ``},
		{"no questions", event.GameQuiz, `{"questions":[]}`},
		{"correct index out of range", event.GameQuiz, `{"questions":[{"prompt":"?","options":["a","b"],"correct_index":5}]}`},
		{"unknown field", event.GameQuiz, `{"quests":[]}`},
		{"no words", event.GameWordSearch, `{"words":[]}`},
		{"word too long for grid", event.GameWordSearch, `{"words":["ABCDEFGHIJ"],"grid_size":5}`},
		{"non-letter word", event.GameWordSearch, `{"words":["R2-D2"]}`},
		{"placement without grid size", event.GameWordSearch, `{"words":["OSLO"],"placements":[{"word":"OSLO","row":0,"col":0,"dir":0}]}`},
		{"placement off the grid", event.GameWordSearch, `{"words":["LONDON"],"grid_size":9,"placements":[{"word":"LONDON","row":8,"col":8,"dir":0}]}`},
		{"placement bad direction", event.GameWordSearch, `{"words":["OSLO"],"grid_size":9,"placements":[{"word":"OSLO","row":0,"col":0,"dir":7}]}`},
		{"jigsaw without image", event.GameJigsaw, `{"rows":3,"cols":3}`},
		{"jigsaw zero rows", event.GameJigsaw, `{"image_url":"/img/a.jpg","rows":0,"cols":3}`},
		{"crossword ragged grid", event.GameCrossword, `{"grid":["..#","...."],"clues":[{"number":1,"answer":"GO","row":0,"col":0}]}`},
		{"crossword no clues", event.GameCrossword, `{"grid":["...","..."],"clues":[]}`},
	}
	for _, tc := range cases {
		if _, err := store.Upsert(clock, tc.game, "", json.RawMessage(tc.payload)); !event.IsValidation(err) {
			t.Fatalf("%s: expected validation error, got %v", tc.name, err)
		}
	}
}

func TestUpsertAcceptsFeasiblePlacements(t *testing.T) {
	store := NewMemoryStore()
	clock := event.Clock{Day: 2}
	payload, _ := json.Marshal(WordSearchPayload{
		Words:      []string{"LONDON", "PARIS"},
		GridSize:   9,
		Placements: []WordSearchPlacement{{Word: "PARIS", Row: 2, Col: 3, Dir: 1}},
	})
	if _, err := store.Upsert(clock, event.GameWordSearch, "", payload); err != nil {
		t.Fatalf("upsert with feasible placement: %v", err)
	}
}

func TestUpsertReplacesPayloadEntirely(t *testing.T) {
	store := NewMemoryStore()
	clock := event.Clock{Day: 3}
	wide, _ := json.Marshal(WordSearchPayload{Words: []string{"LONDON", "PARIS"}, GridSize: 9, Cap: 100})
	if _, err := store.Upsert(clock, event.GameWordSearch, "", wide); err != nil {
		t.Fatalf("upsert: %v", err)
	}
	narrow, _ := json.Marshal(WordSearchPayload{Words: []string{"OSLO"}})
	if _, err := store.Upsert(clock, event.GameWordSearch, "", narrow); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	resolved, err := store.Resolve(clock, event.GameWordSearch, "")
	if err != nil {
		t.Fatalf("resolve: %v", err)
	}
	var payload WordSearchPayload
	if err := json.Unmarshal(resolved.Payload, &payload); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if len(payload.Words) != 1 || payload.Cap != 0 || payload.GridSize != 0 {
		t.Fatalf("old payload fields leaked into replacement: %+v", payload)
	}
}
