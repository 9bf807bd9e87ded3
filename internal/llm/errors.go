package llm

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for provider invocations. Use errors.Is() to check for
// these in calling code. ErrRateLimited and ErrTimeout both match ErrRequest,
// so callers can treat them generically or single them out for retry policy.
var (
	// ErrUnsupportedModel indicates the model identifier matches no known backend.
	ErrUnsupportedModel = errors.New("unsupported model")

	// ErrAuthentication indicates credentials are absent or were rejected.
	ErrAuthentication = errors.New("authentication failed")

	// ErrMissingCredentials is the absent-credentials variant of ErrAuthentication.
	ErrMissingCredentials = fmt.Errorf("%w: credentials not set", ErrAuthentication)

	// ErrRequest indicates a transport failure or non-success response.
	ErrRequest = errors.New("provider request failed")

	// ErrRateLimited is the rate-limit variant of ErrRequest.
	ErrRateLimited = fmt.Errorf("%w: rate limited", ErrRequest)

	// ErrTimeout is the timeout variant of ErrRequest.
	ErrTimeout = fmt.Errorf("%w: timed out", ErrRequest)
)

var authPatterns = []string{
	"api key",
	"authentication",
	"unauthorized",
	"permission denied",
	"401",
	"403",
}

var rateLimitPatterns = []string{
	"rate limit",
	"too many requests",
	"quota",
	"429",
}

// classify maps an SDK or transport error onto the sentinel taxonomy.
// Errors already carrying a sentinel pass through unchanged. Provider SDKs
// rarely expose typed errors, so unknown errors are matched by message.
func classify(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range []error{ErrUnsupportedModel, ErrAuthentication, ErrRequest} {
		if errors.Is(err, sentinel) {
			return err
		}
	}

	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	msg := strings.ToLower(err.Error())
	for _, p := range authPatterns {
		if strings.Contains(msg, p) {
			return fmt.Errorf("%w: %w", ErrAuthentication, err)
		}
	}
	for _, p := range rateLimitPatterns {
		if strings.Contains(msg, p) {
			return fmt.Errorf("%w: %w", ErrRateLimited, err)
		}
	}
	if strings.Contains(msg, "deadline exceeded") || strings.Contains(msg, "timeout") {
		return fmt.Errorf("%w: %w", ErrTimeout, err)
	}

	return fmt.Errorf("%w: %w", ErrRequest, err)
}
