package trivia

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"gamebot/engine"
)

type fixedSource struct {
	q   *Question
	err error
}

func (s *fixedSource) Fetch() (*Question, error) {
	return s.q, s.err
}

func sampleQuestion() *Question {
	return &Question{
		Text: "What is the capital of France?",
		Answers: map[string]string{
			"a": "Berlin",
			"b": "Paris",
			"c": "Madrid",
			"d": "Rome",
		},
		Correct: "b",
	}
}

func TestFetchFailureAbortsCreation(t *testing.T) {
	_, err := NewModelWithSource(&fixedSource{err: errors.New("service down")})
	if err == nil {
		t.Fatal("expected model creation to fail when no question is available")
	}
}

func TestCorrectAnswerWins(t *testing.T) {
	model, err := NewModelWithSource(&fixedSource{q: sampleQuestion()})
	if err != nil {
		t.Fatalf("NewModelWithSource: %v", err)
	}
	players := []string{"foo@example.com", "bar@example.com"}

	if _, err := model.MakeMove("answer b", 1, false); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if got := model.DetermineGameOver(players); got != players[1] {
		t.Fatalf("expected %q to win, got %q", players[1], got)
	}
}

func TestWrongAnswerRuledOut(t *testing.T) {
	model, err := NewModelWithSource(&fixedSource{q: sampleQuestion()})
	if err != nil {
		t.Fatalf("NewModelWithSource: %v", err)
	}
	players := []string{"foo@example.com", "bar@example.com"}

	if _, err := model.MakeMove("answer a", 0, false); err != nil {
		t.Fatalf("MakeMove: %v", err)
	}
	if got := model.DetermineGameOver(players); got != "" {
		t.Fatalf("wrong answer should not end the game, got %q", got)
	}

	// 已排除的选项语法上仍合法，语义拒绝由 MakeMove 带原因报告
	if !model.ValidateMove("answer a") {
		t.Fatal("ValidateMove must stay syntactic so the ruled-out reason reaches the player")
	}
	_, err = model.MakeMove("answer a", 1, false)
	bad, ok := engine.AsBadMove(err)
	if !ok {
		t.Fatalf("expected BadMoveError for ruled-out answer, got %v", err)
	}
	if bad.Reason != "That answer has already been ruled out. Try another one." {
		t.Fatalf("unexpected reason: %q", bad.Reason)
	}
}

func TestHTTPSourceParsesResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{
			"response_code": 0,
			"results": []map[string]any{{
				"question":          "2 &plus; 2 = ?",
				"correct_answer":    "4",
				"incorrect_answers": []string{"3", "5", "22"},
			}},
		})
	}))
	defer srv.Close()

	q, err := NewHTTPSource(srv.URL, nil).Fetch()
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if q.Text != "2 + 2 = ?" {
		t.Fatalf("expected HTML entities to be unescaped, got %q", q.Text)
	}
	if len(q.Answers) != 4 {
		t.Fatalf("expected 4 lettered answers, got %v", q.Answers)
	}
	if q.Answers[q.Correct] != "4" {
		t.Fatalf("correct letter %q maps to %q, want 4", q.Correct, q.Answers[q.Correct])
	}
}

func TestHTTPSourceRejectsEmptyResponse(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"response_code": 1, "results": []any{}})
	}))
	defer srv.Close()

	if _, err := NewHTTPSource(srv.URL, nil).Fetch(); err == nil {
		t.Fatal("expected an error for an empty question response")
	}
}
