package mediagen

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// apiError is a response the provider actually produced (non-2xx). These
// are never retried: the provider saw the request and rejected it.
type apiError struct {
	status int
	body   string
}

func (e *apiError) Error() string {
	return fmt.Sprintf("provider returned status %d: %s", e.status, e.body)
}

// isTransient reports whether a submission failure is worth retrying.
// Transport-level failures (connection timeouts, aborts, generic dial
// errors) are transient; an explicit provider error body is not.
func isTransient(err error) bool {
	var apiErr *apiError
	return !errors.As(err, &apiErr)
}

// submitWithRetry posts the submission, retrying transient failures with
// increasing backoff (2s, 4s) and a per-attempt timeout. There is no wait
// after the final attempt.
func (c *Client) submitWithRetry(ctx context.Context, path string, payload interface{}) (submission, error) {
	var lastErr error

	for attempt := 1; attempt <= c.submitAttempts; attempt++ {
		attemptCtx, cancel := context.WithTimeout(ctx, c.submitTimeout)
		body, err := c.post(attemptCtx, path, payload)
		cancel()

		if err == nil {
			return decodeSubmission(body)
		}

		if !isTransient(err) {
			c.logger.WithError(err).Error("media submission rejected by provider")
			return submission{}, fmt.Errorf("%w: %v", ErrProviderFailed, err)
		}

		lastErr = err
		c.logger.WithFields(logrus.Fields{
			"attempt": attempt,
			"path":    path,
		}).WithError(err).Warn("media submission attempt failed")

		if attempt < c.submitAttempts {
			if sleepErr := c.sleep(ctx, time.Duration(attempt)*2*time.Second); sleepErr != nil {
				return submission{}, sleepErr
			}
		}
	}

	return submission{}, fmt.Errorf("%w after %d attempts: %v", ErrUpstreamUnavailable, c.submitAttempts, lastErr)
}
