package genai

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/harshaakurathi/newMCQ-backend/internal/qbank"
)

func newTestService(provider Provider) *Service {
	router := NewRouter()
	router.Register("mock", provider)
	return NewService(router, "")
}

func TestServiceLearningOutcomes(t *testing.T) {
	mock := NewMockProvider(`{"learning_outcomes": ["Identify selectors", "Rank specificity"]}`)
	svc := newTestService(mock)

	outcomes, err := svc.LearningOutcomes(context.Background(), "Selectors match elements.", false)
	if err != nil {
		t.Fatalf("LearningOutcomes error = %v", err)
	}
	if len(outcomes) != 2 {
		t.Errorf("outcomes = %v", outcomes)
	}
	if !strings.Contains(mock.LastRequest.Prompt, "Selectors match elements.") {
		t.Error("prompt should embed the reading material")
	}
}

func TestServiceQuestionsPromptShape(t *testing.T) {
	mock := NewMockProvider(validMCQPayload)
	svc := newTestService(mock)

	prompt := qbank.QuestionPrompt{
		ReadingMaterial:  "material",
		LearningOutcomes: []string{"lo-1", "lo-2"},
		Toughness:        "MEDIUM",
		Mode:             qbank.ModeExam,
		IsCode:           false,
	}
	mcqs, err := svc.Questions(context.Background(), prompt)
	if err != nil {
		t.Fatalf("Questions error = %v", err)
	}
	if len(mcqs) != 1 {
		t.Errorf("mcq count = %d", len(mcqs))
	}
	for _, want := range []string{"material", "lo-1", "lo-2", "MEDIUM"} {
		if !strings.Contains(mock.LastRequest.Prompt, want) {
			t.Errorf("prompt missing %q", want)
		}
	}
}

func TestServiceVariantsPromptEmbedsBase(t *testing.T) {
	mock := NewMockProvider(validMCQPayload)
	svc := newTestService(mock)

	base := qbank.MCQ{
		QuestionKey: "CB01",
		CoreConcept: "CSS Selectors",
		Toughness:   "EASY",
		Question:    qbank.QuestionContent{Content: "original question"},
	}
	if _, err := svc.Variants(context.Background(), base, "rm", 3); err != nil {
		t.Fatalf("Variants error = %v", err)
	}
	for _, want := range []string{"original question", "CSS Selectors", "3"} {
		if !strings.Contains(mock.LastRequest.Prompt, want) {
			t.Errorf("variant prompt missing %q", want)
		}
	}
}

func TestServiceMalformedPayload(t *testing.T) {
	mock := NewMockProvider("sorry, I cannot help with that")
	svc := newTestService(mock)

	if _, err := svc.LearningOutcomes(context.Background(), "rm", false); !errors.Is(err, ErrMalformedContent) {
		t.Errorf("LearningOutcomes err = %v, want ErrMalformedContent", err)
	}
	if _, err := svc.Questions(context.Background(), qbank.QuestionPrompt{}); !errors.Is(err, ErrMalformedContent) {
		t.Errorf("Questions err = %v, want ErrMalformedContent", err)
	}
}

func TestServiceProviderFailure(t *testing.T) {
	mock := NewMockProvider("")
	mock.Err = errors.New("unreachable")
	svc := newTestService(mock)

	if _, err := svc.Questions(context.Background(), qbank.QuestionPrompt{}); !errors.Is(err, ErrProviderFailure) {
		t.Errorf("err = %v, want ErrProviderFailure", err)
	}
}

func TestServiceModelOverride(t *testing.T) {
	mock := NewMockProvider(`{"learning_outcomes": ["a"]}`)
	router := NewRouter()
	router.Register("mock", mock)
	svc := NewService(router, "custom-model")

	if _, err := svc.LearningOutcomes(context.Background(), "rm", true); err != nil {
		t.Fatalf("LearningOutcomes error = %v", err)
	}
	if mock.LastRequest.Model != "custom-model" {
		t.Errorf("model = %q, want custom-model", mock.LastRequest.Model)
	}
}
