package genai

import (
	"context"
	"log/slog"

	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

// Service turns lifecycle-level generation requests into prompts, runs them
// through the provider router, and parses the results. It implements
// qbank.Generator.
type Service struct {
	router *Router
	model  string
}

// NewService creates a generation service. model overrides each provider's
// default when non-empty.
func NewService(router *Router, model string) *Service {
	return &Service{router: router, model: model}
}

// LearningOutcomes generates learning outcomes for reading material. isCode
// selects the coding-focused prompt.
func (s *Service) LearningOutcomes(ctx context.Context, readingMaterial string, isCode bool) ([]string, error) {
	resp, err := s.router.Complete(ctx, Request{
		Prompt: outcomesPrompt(readingMaterial, isCode),
		Model:  s.model,
	})
	if err != nil {
		return nil, err
	}
	outcomes, err := DecodeOutcomes(resp.Content)
	if err != nil {
		return nil, err
	}
	slog.Info("generated learning outcomes",
		"isCode", isCode,
		"outcomes", len(outcomes),
		"tokens", resp.TotalTokens(),
	)
	return outcomes, nil
}

// Questions generates one base-question candidate per learning outcome.
func (s *Service) Questions(ctx context.Context, prompt qbank.QuestionPrompt) ([]qbank.Generated, error) {
	resp, err := s.router.Complete(ctx, Request{
		Prompt: questionsPrompt(prompt),
		Model:  s.model,
	})
	if err != nil {
		return nil, err
	}
	return DecodeMCQs(resp.Content)
}

// Variants generates rephrasing candidates for one base question.
// numVariants is a hint to the model; the returned count is whatever valid
// candidates it produced.
func (s *Service) Variants(ctx context.Context, base qbank.MCQ, readingMaterial string, numVariants int) ([]qbank.Generated, error) {
	resp, err := s.router.Complete(ctx, Request{
		Prompt: variantPrompt(base, readingMaterial, numVariants),
		Model:  s.model,
	})
	if err != nil {
		return nil, err
	}
	return DecodeMCQs(resp.Content)
}

// HealthCheck reports whether any provider responds.
func (s *Service) HealthCheck(ctx context.Context) error {
	return s.router.HealthCheck(ctx)
}
