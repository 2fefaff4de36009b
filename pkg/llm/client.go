package llm

import (
	"context"
	"strings"
	"time"

	"github.com/pkg/errors"
)

// ErrNoResponse indicates every attempt either failed or returned empty
// content. It surfaces only after the retry budget is exhausted; individual
// attempt failures are logged and swallowed.
var ErrNoResponse = errors.New("no response")

// DefaultMaxTries is the default retry budget per generation request.
const DefaultMaxTries = 5

// RetryPolicy bounds the attempts and spaces them out. Backoff receives the
// zero-indexed attempt number and returns the wait before that attempt.
type RetryPolicy struct {
	MaxTries int
	Backoff  func(attempt int) time.Duration
}

// LinearBackoff waits 2*attempt seconds: zero before the first attempt, then
// 2s, 4s, and so on. A deliberate throttle against rate limiting, not
// exponential.
func LinearBackoff(attempt int) (wait time.Duration) {
	wait = time.Duration(2*attempt) * time.Second
	return wait
}

// DefaultRetryPolicy returns the standard policy.
func DefaultRetryPolicy() (policy RetryPolicy) {
	policy = RetryPolicy{
		MaxTries: DefaultMaxTries,
		Backoff:  LinearBackoff,
	}
	return policy
}

// Client wraps a Completer with bounded retry and empty-response detection.
// A request is never mutated between attempts, only re-sent after a delay.
type Client struct {
	completer Completer
	policy    RetryPolicy
	sleep     func(d time.Duration)
	logf      func(format string, args ...interface{})
}

// NewClient creates a generation client around a completer.
func NewClient(completer Completer, policy RetryPolicy) (client *Client) {
	if policy.MaxTries <= 0 {
		policy.MaxTries = DefaultMaxTries
	}
	if policy.Backoff == nil {
		policy.Backoff = LinearBackoff
	}
	client = &Client{
		completer: completer,
		policy:    policy,
		sleep:     time.Sleep,
		logf:      func(format string, args ...interface{}) {},
	}
	return client
}

// SetSleep replaces the blocking delay, so tests can record waits instead of
// serving them.
func (c *Client) SetSleep(sleep func(d time.Duration)) {
	c.sleep = sleep
}

// SetLogf installs a progress logger for per-attempt failures.
func (c *Client) SetLogf(logf func(format string, args ...interface{})) {
	c.logf = logf
}

// Generate executes the prompt with retry. Attempt failures and empty
// responses are soft: the loop continues until a non-empty result arrives or
// the retry budget runs out, at which point the error wraps ErrNoResponse.
func (c *Client) Generate(ctx context.Context, prompt string) (text string, err error) {
	for attempt := 0; attempt < c.policy.MaxTries; attempt++ {
		if wait := c.policy.Backoff(attempt); wait > 0 {
			c.sleep(wait)
		}

		var callErr error
		text, callErr = c.completer.Complete(ctx, prompt)
		if callErr != nil {
			c.logf("generation attempt %d/%d failed: %v\n", attempt+1, c.policy.MaxTries, callErr)
			continue
		}

		if strings.TrimSpace(text) == "" {
			c.logf("generation attempt %d/%d returned empty content\n", attempt+1, c.policy.MaxTries)
			continue
		}

		return text, nil
	}

	text = ""
	err = errors.Wrapf(ErrNoResponse, "generation failed after %d attempts", c.policy.MaxTries)
	return text, err
}
