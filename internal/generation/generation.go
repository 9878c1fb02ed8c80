package generation

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"pizzabot/internal/config"
	"pizzabot/internal/logger"
)

// Outcome classifies a generation attempt.
type Outcome string

const (
	OutcomeSuccess Outcome = "success"
	OutcomeTimeout Outcome = "timeout"
	OutcomeFailure Outcome = "failure"
)

var (
	// ErrDisabled is returned by the provider used when generation is turned off.
	ErrDisabled = errors.New("text generation disabled")

	// ErrEmptyResponse is returned when the provider answered with no text.
	ErrEmptyResponse = errors.New("empty response from provider")
)

// Result is the typed outcome of Generate. Text is set only on success; Err
// is set otherwise.
type Result struct {
	Outcome Outcome
	Text    string
	Err     error
}

// OK reports whether the result carries usable text.
func (r Result) OK() bool {
	return r.Outcome == OutcomeSuccess
}

// Message represents a chat message
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// Provider is a text-generation backend.
type Provider interface {
	Name() string
	Complete(ctx context.Context, messages []Message) (string, error)
}

// Generator produces free-form replies. Implementations never block past
// their timeout and report failures through Result.
type Generator interface {
	Generate(ctx context.Context, prompt, language string) Result
}

// Client bounds every provider call with a timeout and classifies the result.
type Client struct {
	provider Provider
	timeout  time.Duration
}

// NewClient wraps provider with a per-call timeout.
func NewClient(provider Provider, timeout time.Duration) *Client {
	return &Client{provider: provider, timeout: timeout}
}

// Provider returns the wrapped provider.
func (c *Client) Provider() Provider {
	return c.provider
}

// Generate asks the provider for a reply in language.
func (c *Client) Generate(ctx context.Context, prompt, language string) Result {
	log := logger.FromContext(ctx).WithField("provider", c.provider.Name())

	callCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	messages := []Message{
		{Role: "system", Content: fmt.Sprintf("Always answer in %s.", language)},
		{Role: "user", Content: prompt},
	}

	type reply struct {
		text string
		err  error
	}
	done := make(chan reply, 1)
	go func() {
		text, err := c.provider.Complete(callCtx, messages)
		done <- reply{text: text, err: err}
	}()

	var r reply
	select {
	case r = <-done:
	case <-callCtx.Done():
		r = reply{err: callCtx.Err()}
	}

	result := classify(r.text, r.err, callCtx.Err())
	if !result.OK() {
		log.WithField("outcome", result.Outcome).WithError(result.Err).Warn("Text generation failed")
	}
	return result
}

func classify(text string, err, ctxErr error) Result {
	switch {
	case errors.Is(err, context.DeadlineExceeded) || (err != nil && errors.Is(ctxErr, context.DeadlineExceeded)):
		return Result{Outcome: OutcomeTimeout, Err: err}
	case err != nil:
		return Result{Outcome: OutcomeFailure, Err: err}
	}
	text = strings.TrimSpace(text)
	if text == "" {
		return Result{Outcome: OutcomeFailure, Err: ErrEmptyResponse}
	}
	return Result{Outcome: OutcomeSuccess, Text: text}
}

// disabledProvider always fails, so callers fall back to static text.
type disabledProvider struct{}

func (disabledProvider) Name() string { return "none" }

func (disabledProvider) Complete(context.Context, []Message) (string, error) {
	return "", ErrDisabled
}

// New builds the generator named by cfg.Provider.
func New(cfg config.GenerationConfig) (*Client, error) {
	var (
		provider Provider
		err      error
	)
	switch strings.ToLower(cfg.Provider) {
	case "", "none":
		provider = disabledProvider{}
	case "openai":
		provider, err = NewOpenAIProvider(cfg)
	case "azure":
		provider, err = NewAzureOpenAIProvider(cfg)
	default:
		return nil, fmt.Errorf("unsupported generation provider: %s", cfg.Provider)
	}
	if err != nil {
		return nil, err
	}
	return NewClient(provider, cfg.Timeout), nil
}
