package factory

import (
	"fmt"

	"techgear-support-be/pkg/llm"
	"techgear-support-be/pkg/llm/gemini"
	"techgear-support-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL, geminiKey string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "gemini":
		if geminiKey == "" {
			return nil, fmt.Errorf("gemini provider requires GEMINI_API_KEY")
		}
		return gemini.NewGeminiProvider(geminiKey, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
