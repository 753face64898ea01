package genai

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"
)

// ErrProviderFailure means every registered provider failed (or none is
// registered) for a completion request.
var ErrProviderFailure = errors.New("generation provider failure")

// Router fans a completion out to registered providers in registration
// order, falling through to the next on failure.
type Router struct {
	providers map[string]Provider
	fallback  []string
	mu        sync.RWMutex
}

// NewRouter creates an empty provider router.
func NewRouter() *Router {
	return &Router{providers: make(map[string]Provider)}
}

// Register adds a provider to the fallback chain.
func (r *Router) Register(name string, provider Provider) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.providers[name] = provider
	r.fallback = append(r.fallback, name)
}

// HasProvider returns true if at least one provider is registered.
func (r *Router) HasProvider() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.providers) > 0
}

// Complete tries each provider in order and returns the first success.
func (r *Router) Complete(ctx context.Context, req Request) (Response, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lastErr error
	for _, name := range r.fallback {
		resp, err := r.providers[name].Complete(ctx, req)
		if err != nil {
			slog.Warn("generation provider failed, trying next",
				"provider", name,
				"error", err,
			)
			lastErr = err
			continue
		}
		slog.Debug("generation request completed",
			"provider", name,
			"model", resp.Model,
			"input_tokens", resp.InputTokens,
			"output_tokens", resp.OutputTokens,
		)
		return resp, nil
	}
	if lastErr != nil {
		return Response{}, fmt.Errorf("%w: all providers failed: %v", ErrProviderFailure, lastErr)
	}
	return Response{}, fmt.Errorf("%w: no providers registered", ErrProviderFailure)
}

// HealthCheck succeeds if any registered provider is healthy.
func (r *Router) HealthCheck(ctx context.Context) error {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var lastErr error
	for _, name := range r.fallback {
		if err := r.providers[name].HealthCheck(ctx); err != nil {
			lastErr = err
			continue
		}
		return nil
	}
	if lastErr != nil {
		return lastErr
	}
	return fmt.Errorf("no generation providers registered")
}
