package content

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"globetrotter/internal/config"
	"globetrotter/internal/model"
)

// ErrDisabled is returned when no API key is configured; callers fall back
// to stored content.
var ErrDisabled = errors.New("ai generation disabled")

// Generator produces dynamic clues, fun facts and bonus questions through an
// OpenAI-compatible chat completions endpoint.
type Generator struct {
	config *config.AIConfig
	client *http.Client
	logger zerolog.Logger

	mu       sync.Mutex
	lastCall time.Time
}

// NewGenerator creates a new content generator
func NewGenerator(cfg *config.AIConfig, logger zerolog.Logger) *Generator {
	return &Generator{
		config: cfg,
		client: &http.Client{
			Timeout: time.Duration(cfg.TimeoutMS) * time.Millisecond,
		},
		logger: logger,
	}
}

// GenerateClue produces one short clue for a destination.
func (g *Generator) GenerateClue(ctx context.Context, dest model.Destination) (string, error) {
	if !g.config.IsEnabled() {
		return "", ErrDisabled
	}
	system := "You are a travel expert. Generate one interesting and unique clue about this destination that would help someone guess it in a geography game. Keep it concise (under 15 words)."
	user := fmt.Sprintf("Generate a clue for %s, %s.", dest.City, dest.Country)
	return g.chat(ctx, g.config.Models.Clue, system, user)
}

// GenerateFunFact produces one surprising fun fact for a destination.
func (g *Generator) GenerateFunFact(ctx context.Context, dest model.Destination) (string, error) {
	if !g.config.IsEnabled() {
		return "", ErrDisabled
	}
	system := "You are a travel expert. Generate one surprising and interesting fun fact about this destination that most people wouldn't know. Keep it concise (under 20 words)."
	user := fmt.Sprintf("Generate a fun fact for %s, %s.", dest.City, dest.Country)
	return g.chat(ctx, g.config.Models.FunFact, system, user)
}

// GenerateBonusQuestion produces a four-option multiple-choice question
// themed around the given emojis and cities.
func (g *Generator) GenerateBonusQuestion(ctx context.Context, emojiSet, cities []string) (*model.BonusQuestion, error) {
	if !g.config.IsEnabled() {
		return nil, ErrDisabled
	}
	system := "You are creating a geography quiz. Generate a multiple-choice question based on these destinations with 4 options and indicate the correct answer index (0-3). Format your response as JSON with fields: question, options (array), correct_answer (number 0-3)."
	user := fmt.Sprintf("Create a question about these destinations: %s. Emojis collected: %s",
		strings.Join(cities, ", "), strings.Join(emojiSet, " "))

	raw, err := g.chat(ctx, g.config.Models.Bonus, system, user)
	if err != nil {
		return nil, err
	}

	q, err := parseBonusResponse(raw)
	if err != nil {
		return nil, err
	}
	q.EmojiSet = emojiSet
	return q, nil
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature float64       `json:"temperature,omitempty"`
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// chat makes a throttled request to the chat completions endpoint.
func (g *Generator) chat(ctx context.Context, modelName, system, user string) (string, error) {
	g.throttle()

	reqBody := chatRequest{
		Model: modelName,
		Messages: []chatMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens:   150,
		Temperature: 0.8,
	}
	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.config.ChatEndpoint(), bytes.NewBuffer(jsonBody))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+g.config.APIKey)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("chat completion returned %d: %s", resp.StatusCode, body)
	}

	var parsed chatResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		return "", err
	}
	if len(parsed.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

// throttle enforces the minimum interval between generation calls.
func (g *Generator) throttle() {
	g.mu.Lock()
	defer g.mu.Unlock()
	minInterval := time.Duration(g.config.MinIntervalMS) * time.Millisecond
	if wait := minInterval - time.Since(g.lastCall); wait > 0 {
		time.Sleep(wait)
	}
	g.lastCall = time.Now()
}

// parseBonusResponse extracts the JSON object from a model reply, which may
// wrap it in prose or a code fence.
func parseBonusResponse(raw string) (*model.BonusQuestion, error) {
	start := strings.Index(raw, "{")
	end := strings.LastIndex(raw, "}")
	if start < 0 || end <= start {
		return nil, errors.New("no JSON object in bonus response")
	}

	var parsed struct {
		Question      string   `json:"question"`
		Options       []string `json:"options"`
		CorrectAnswer int      `json:"correct_answer"`
	}
	if err := json.Unmarshal([]byte(raw[start:end+1]), &parsed); err != nil {
		return nil, err
	}

	q := &model.BonusQuestion{
		Question:     parsed.Question,
		Options:      parsed.Options,
		CorrectIndex: parsed.CorrectAnswer,
	}
	if !q.Valid() {
		return nil, errors.New("incomplete bonus question")
	}
	return q, nil
}
