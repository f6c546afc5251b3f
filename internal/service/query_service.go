package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"rag-postgres-be/internal/entity"
	"rag-postgres-be/internal/pkg/apperrors"
	"rag-postgres-be/pkg/llm"
)

// answerCue separates the instruction block from the model's answer in the
// generation prompt. Extraction keys on its last occurrence so context
// passages that happen to contain the cue do not truncate the answer.
const answerCue = "Answer:"

type IQueryService interface {
	// Answer retrieves the topK most similar chunks for the question,
	// grounds a generation prompt on them and returns the model's answer
	// together with the retrieved sources. A non-nil metadataFilter
	// restricts retrieval the same way it does for plain search.
	Answer(ctx context.Context, question string, topK int, metadataFilter map[string]interface{}) (*entity.QueryResult, error)
}

type queryService struct {
	retrievalService IRetrievalService
	llmProvider      llm.LLMProvider
	maxAnswerTokens  int
}

func NewQueryService(retrievalService IRetrievalService, llmProvider llm.LLMProvider, maxAnswerTokens int) IQueryService {
	return &queryService{
		retrievalService: retrievalService,
		llmProvider:      llmProvider,
		maxAnswerTokens:  maxAnswerTokens,
	}
}

func (s *queryService) Answer(ctx context.Context, question string, topK int, metadataFilter map[string]interface{}) (*entity.QueryResult, error) {
	sources, err := s.retrievalService.Search(ctx, question, topK, metadataFilter)
	if err != nil {
		return nil, err
	}

	prompt := buildPrompt(question, sources)

	raw, err := s.llmProvider.Generate(ctx, prompt,
		llm.WithMaxTokens(s.maxAnswerTokens),
		llm.WithTemperature(0.7),
	)
	if err != nil {
		return nil, apperrors.New(apperrors.KindGenerationCapability, "answer generation", err)
	}

	return &entity.QueryResult{
		Question:  question,
		Answer:    extractAnswer(raw),
		Sources:   sources,
		Timestamp: time.Now().UTC(),
	}, nil
}

// buildPrompt numbers each retrieved chunk as a context document. With no
// sources the context block is empty and the model answers unassisted.
func buildPrompt(question string, sources []*entity.ScoredChunk) string {
	var sb strings.Builder
	sb.WriteString("Based on the following context, answer the question accurately and concisely.\n\nContext:\n")
	for i, source := range sources {
		sb.WriteString(fmt.Sprintf("[Document %d]: %s\n", i+1, source.Content))
	}
	sb.WriteString(fmt.Sprintf("\nQuestion: %s\n\n%s", question, answerCue))
	return sb.String()
}

// extractAnswer strips any echoed prompt from models that repeat it before
// answering. Output without the cue is returned as-is.
func extractAnswer(raw string) string {
	if idx := strings.LastIndex(raw, answerCue); idx >= 0 {
		return strings.TrimSpace(raw[idx+len(answerCue):])
	}
	return strings.TrimSpace(raw)
}
