// Package genai is the generative-AI collaborator: providers, prompt
// construction, and strict parsing of the JSON payloads the models return.
package genai

import "context"

// Request is the input to a completion. Prompt is the user content; System
// optionally steers the model.
type Request struct {
	System      string
	Prompt      string
	Model       string
	MaxTokens   int
	Temperature float64
}

// Response is the output of a completion, with token usage for logging.
type Response struct {
	Content      string
	Model        string
	InputTokens  int
	OutputTokens int
}

// TotalTokens returns the sum of input and output tokens.
func (r Response) TotalTokens() int {
	return r.InputTokens + r.OutputTokens
}

// Provider is implemented by each model backend.
type Provider interface {
	Complete(ctx context.Context, req Request) (Response, error)
	HealthCheck(ctx context.Context) error
}
