package mediagen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/sirupsen/logrus"

	"reelplanner/models"
)

// awaitResult polls the job until a terminal state is reached or the
// attempt ceiling expires. Per poll: completed yields the first URL,
// failed and nsfw terminate with their own errors, and anything else
// (queued, in_progress, unrecognized) waits one interval and retries.
func (c *Client) awaitResult(ctx context.Context, requestID string) (Result, error) {
	log := c.logger.WithField("request_id", requestID)

	for attempt := 1; attempt <= c.pollAttempts; attempt++ {
		status, err := c.fetchStatus(ctx, requestID)
		if err != nil {
			return Result{}, err
		}

		switch status.Status {
		case models.JobStatusCompleted:
			url := status.firstURL()
			if url == "" {
				// Completed without a discoverable asset: fail fast
				// rather than keep polling a job that will never
				// produce one.
				return Result{}, fmt.Errorf("%w: completed status carried no url", ErrMalformedResponse)
			}
			log.WithField("attempts", attempt).Info("media generation completed")
			return Result{URL: url}, nil

		case models.JobStatusFailed:
			msg := status.Error
			if msg == "" {
				msg = "no error detail provided"
			}
			return Result{}, fmt.Errorf("%w: %s", ErrProviderFailed, msg)

		case models.JobStatusNSFW:
			return Result{}, ErrProviderRejected

		default:
			log.WithFields(logrus.Fields{
				"status":  status.Status,
				"attempt": attempt,
			}).Debug("media generation still in flight")
		}

		if attempt < c.pollAttempts {
			if err := c.sleep(ctx, c.pollInterval); err != nil {
				return Result{}, err
			}
		}
	}

	return Result{}, fmt.Errorf("%w after %d attempts", ErrTimeout, c.pollAttempts)
}

func (c *Client) fetchStatus(ctx context.Context, requestID string) (statusResponse, error) {
	body, err := c.get(ctx, "/v1/requests/"+requestID+"/status")
	if err != nil {
		return statusResponse{}, fmt.Errorf("%w: %v", ErrUpstreamUnavailable, err)
	}

	var status statusResponse
	if err := json.Unmarshal(body, &status); err != nil {
		return statusResponse{}, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return status, nil
}
