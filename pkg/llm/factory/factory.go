package factory

import (
	"fmt"
	"os"

	"rag-postgres-be/pkg/llm"
	"rag-postgres-be/pkg/llm/huggingface"
	"rag-postgres-be/pkg/llm/ollama"
)

func NewLLMProvider(providerType, modelName, baseURL string) (llm.LLMProvider, error) {
	switch providerType {
	case "ollama":
		if baseURL == "" {
			baseURL = "http://localhost:11434"
		}
		return ollama.NewOllamaProvider(baseURL, modelName), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(os.Getenv("HUGGINGFACE_API_KEY"), baseURL, modelName), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", providerType)
	}
}
