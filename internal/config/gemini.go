package config

import (
	"os"
	"strings"
	"sync"
)

type GeminiConfig struct {
	APIKey         string
	Models         []string
	EmbeddingModel string
}

var (
	geminiConfig *GeminiConfig
	geminiOnce   sync.Once
)

func LoadGeminiConfig() *GeminiConfig {
	geminiOnce.Do(func() {
		embeddingModel := os.Getenv("GEMINI_EMBEDDING_MODEL")
		if embeddingModel == "" {
			embeddingModel = "gemini-embedding-001"
		}
		geminiConfig = &GeminiConfig{
			APIKey:         os.Getenv("GEMINI_API_KEY"),
			Models:         splitList(os.Getenv("GEMINI_MODELS"), []string{"gemini-2.5-flash", "gemini-2.0-flash", "gemini-1.5-flash"}),
			EmbeddingModel: embeddingModel,
		}
	})
	return geminiConfig
}

// splitList parses a comma separated env value, falling back to def when empty.
func splitList(raw string, def []string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
