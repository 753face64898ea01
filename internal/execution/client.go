// Package execution proxies code to a judge0-style sandboxed execution
// service: one submission call, then a bounded poll for the result.
package execution

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultPollInterval = 1500 * time.Millisecond
	defaultMaxPolls     = 40

	// Submission status ids that mean "not yet finished".
	statusInQueue    = 1
	statusProcessing = 2
)

// ErrTimeout means the submission did not reach a terminal status within the
// configured number of polls.
var ErrTimeout = errors.New("code execution timed out waiting for a result")

// Client talks to the execution service.
type Client struct {
	baseURL      string
	apiKey       string
	httpc        *http.Client
	pollInterval time.Duration
	maxPolls     int
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) {
		c.httpc = httpc
	}
}

// WithPollInterval sets the delay between result polls.
func WithPollInterval(d time.Duration) Option {
	return func(c *Client) {
		c.pollInterval = d
	}
}

// WithMaxPolls caps how many times a submission is polled before the request
// fails with ErrTimeout.
func WithMaxPolls(n int) Option {
	return func(c *Client) {
		c.maxPolls = n
	}
}

// NewClient creates an execution client for the given service base URL.
func NewClient(baseURL, apiKey string, opts ...Option) *Client {
	c := &Client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		httpc:        http.DefaultClient,
		pollInterval: defaultPollInterval,
		maxPolls:     defaultMaxPolls,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Result is the terminal state of a submission, passed through to the caller
// verbatim.
type Result struct {
	Stdout        string `json:"stdout"`
	Stderr        string `json:"stderr"`
	CompileOutput string `json:"compile_output,omitempty"`
	Time          string `json:"time,omitempty"`
	Memory        int    `json:"memory,omitempty"`
	Status        Status `json:"status"`
}

// Status is the submission status object.
type Status struct {
	ID          int    `json:"id"`
	Description string `json:"description"`
}

type submitRequest struct {
	SourceCode string `json:"source_code"`
	LanguageID int    `json:"language_id"`
}

type submitResponse struct {
	Token string `json:"token"`
}

// Execute submits source code and polls until the submission reaches a
// terminal status or the poll limit is reached.
func (c *Client) Execute(ctx context.Context, sourceCode string, languageID int) (*Result, error) {
	token, err := c.submit(ctx, sourceCode, languageID)
	if err != nil {
		return nil, err
	}

	for i := 0; i < c.maxPolls; i++ {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(c.pollInterval):
		}

		result, err := c.poll(ctx, token)
		if err != nil {
			return nil, err
		}
		if result.Status.ID != statusInQueue && result.Status.ID != statusProcessing {
			return result, nil
		}
	}
	return nil, fmt.Errorf("%w after %d polls", ErrTimeout, c.maxPolls)
}

func (c *Client) submit(ctx context.Context, sourceCode string, languageID int) (string, error) {
	body, err := json.Marshal(submitRequest{SourceCode: sourceCode, LanguageID: languageID})
	if err != nil {
		return "", fmt.Errorf("marshal submission: %w", err)
	}

	url := c.baseURL + "/submissions?base64_encoded=false&fields=*"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("create submission request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.auth(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return "", fmt.Errorf("submit code: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read submission response: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("execution service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var submitted submitResponse
	if err := json.Unmarshal(respBody, &submitted); err != nil {
		return "", fmt.Errorf("unmarshal submission response: %w", err)
	}
	if submitted.Token == "" {
		return "", fmt.Errorf("execution service returned no submission token")
	}
	return submitted.Token, nil
}

func (c *Client) poll(ctx context.Context, token string) (*Result, error) {
	url := fmt.Sprintf("%s/submissions/%s?base64_encoded=false&fields=*", c.baseURL, token)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("create poll request: %w", err)
	}
	c.auth(req)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("poll submission: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read poll response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("execution service error (status %d): %s", resp.StatusCode, string(respBody))
	}

	var result Result
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("unmarshal poll response: %w", err)
	}
	return &result, nil
}

func (c *Client) auth(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("X-RapidAPI-Key", c.apiKey)
	}
}
