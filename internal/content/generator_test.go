package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"

	"globetrotter/internal/config"
	"globetrotter/internal/model"
)

func testAIConfig(baseURL string) *config.AIConfig {
	return &config.AIConfig{
		APIKey:  "test-key",
		BaseURL: baseURL,
		Models: config.AIModels{
			Clue:    "test-model",
			FunFact: "test-model",
			Bonus:   "test-model",
		},
		TimeoutMS:     2000,
		MinIntervalMS: 0,
	}
}

func chatServer(t *testing.T, reply string) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("unexpected auth header %q", auth)
		}
		resp := map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]string{"role": "assistant", "content": reply}},
			},
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateClue(t *testing.T) {
	srv := chatServer(t, "Famous for its canals and bicycles.")
	defer srv.Close()

	g := NewGenerator(testAIConfig(srv.URL), zerolog.Nop())
	clue, err := g.GenerateClue(context.Background(), model.Destination{City: "Amsterdam", Country: "Netherlands"})
	if err != nil {
		t.Fatalf("GenerateClue failed: %v", err)
	}
	if clue != "Famous for its canals and bicycles." {
		t.Fatalf("unexpected clue %q", clue)
	}
}

func TestGenerateBonusQuestionParsesWrappedJSON(t *testing.T) {
	reply := "Here is your question:\n```json\n" +
		`{"question":"Which city hosted the 2016 Olympics?","options":["Rio de Janeiro","Tokyo","London","Athens"],"correct_answer":0}` +
		"\n```"
	srv := chatServer(t, reply)
	defer srv.Close()

	g := NewGenerator(testAIConfig(srv.URL), zerolog.Nop())
	q, err := g.GenerateBonusQuestion(context.Background(), []string{"🗽", "🗼"}, []string{"Rio de Janeiro"})
	if err != nil {
		t.Fatalf("GenerateBonusQuestion failed: %v", err)
	}
	if q.Question != "Which city hosted the 2016 Olympics?" {
		t.Fatalf("unexpected question %q", q.Question)
	}
	if len(q.Options) != 4 || q.CorrectIndex != 0 {
		t.Fatalf("unexpected parse: %+v", q)
	}
	if len(q.EmojiSet) != 2 {
		t.Fatalf("emoji seed should be carried onto the question")
	}
}

func TestGenerateBonusQuestionRejectsIncompleteReply(t *testing.T) {
	srv := chatServer(t, `{"question":"Pick one","options":["A","B"],"correct_answer":0}`)
	defer srv.Close()

	g := NewGenerator(testAIConfig(srv.URL), zerolog.Nop())
	if _, err := g.GenerateBonusQuestion(context.Background(), nil, nil); err == nil {
		t.Fatalf("expected error for a two-option question")
	}
}

func TestGeneratorDisabledWithoutKey(t *testing.T) {
	cfg := testAIConfig("http://unused")
	cfg.APIKey = ""

	g := NewGenerator(cfg, zerolog.Nop())
	if _, err := g.GenerateClue(context.Background(), model.Destination{City: "Oslo"}); err != ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
	if _, err := g.GenerateBonusQuestion(context.Background(), nil, nil); err != ErrDisabled {
		t.Fatalf("expected ErrDisabled, got %v", err)
	}
}

func TestGeneratorSurfacesServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "rate limited", http.StatusTooManyRequests)
	}))
	defer srv.Close()

	g := NewGenerator(testAIConfig(srv.URL), zerolog.Nop())
	if _, err := g.GenerateClue(context.Background(), model.Destination{City: "Oslo"}); err == nil {
		t.Fatalf("expected error on non-200 response")
	}
}

func TestParseBonusResponsePlainJSON(t *testing.T) {
	q, err := parseBonusResponse(`{"question":"Q?","options":["A","B","C","D"],"correct_answer":3}`)
	if err != nil {
		t.Fatalf("parseBonusResponse failed: %v", err)
	}
	if q.CorrectIndex != 3 {
		t.Fatalf("unexpected correct index %d", q.CorrectIndex)
	}
}

func TestParseBonusResponseNoJSON(t *testing.T) {
	if _, err := parseBonusResponse("sorry, I cannot help with that"); err == nil {
		t.Fatalf("expected error when no JSON object is present")
	}
}
