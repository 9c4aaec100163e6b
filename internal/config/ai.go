package config

import "os"

// AIModels defines which chat models to use for different content tasks
type AIModels struct {
	// Clue is for per-destination clue generation (needs to be fast)
	Clue string `json:"clue"`

	// FunFact is for fun-fact generation on the reveal card
	FunFact string `json:"funFact"`

	// Bonus is for bonus-question generation (quality over speed)
	Bonus string `json:"bonus"`
}

// AIConfig holds all AI-related configuration
type AIConfig struct {
	APIKey    string   `json:"-"` // Never serialize
	BaseURL   string   `json:"baseUrl"`
	Models    AIModels `json:"models"`
	TimeoutMS int      `json:"timeoutMs"`

	// MinIntervalMS throttles successive generation calls
	MinIntervalMS int `json:"minIntervalMs"`
}

// DefaultAIConfig returns the default AI configuration
func DefaultAIConfig() *AIConfig {
	return &AIConfig{
		APIKey:  os.Getenv("OPENAI_API_KEY"),
		BaseURL: getEnvOrDefault("OPENAI_BASE_URL", "https://api.openai.com/v1"),
		Models: AIModels{
			Clue:    getEnvOrDefault("AI_MODEL_CLUE", "gpt-3.5-turbo"),
			FunFact: getEnvOrDefault("AI_MODEL_FUNFACT", "gpt-3.5-turbo"),
			Bonus:   getEnvOrDefault("AI_MODEL_BONUS", "gpt-3.5-turbo"),
		},
		TimeoutMS:     10000, // 10 second default timeout
		MinIntervalMS: 1000,
	}
}

// IsEnabled returns true if the AI API is configured
func (c *AIConfig) IsEnabled() bool {
	return c.APIKey != ""
}

// ChatEndpoint returns the chat completions endpoint
func (c *AIConfig) ChatEndpoint() string {
	return c.BaseURL + "/chat/completions"
}

func getEnvOrDefault(key, defaultValue string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultValue
}
