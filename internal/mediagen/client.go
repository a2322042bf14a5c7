// Package mediagen talks to the external media-generation provider and
// resolves every request, synchronous or polled, to a single asset URL.
package mediagen

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/sirupsen/logrus"

	"reelplanner/models"
)

// Terminal failure modes surfaced to callers. Handlers map these onto HTTP
// status codes; ErrProviderRejected is kept distinct from ErrProviderFailed
// so the UI can show a content-policy message instead of a generic one.
var (
	ErrMissingCredentials  = errors.New("media provider credentials not configured")
	ErrUpstreamUnavailable = errors.New("media provider unreachable")
	ErrProviderFailed      = errors.New("media generation failed at provider")
	ErrProviderRejected    = errors.New("media generation rejected by content policy")
	ErrTimeout             = errors.New("media generation polling timed out")
	ErrMalformedResponse   = errors.New("unrecognized media provider response")
)

// Sleeper is injected so the polling and backoff waits are testable without
// real wall-clock delays. It must honor context cancellation.
type Sleeper func(ctx context.Context, d time.Duration) error

func realSleep(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Config carries the provider credentials and the retry/poll knobs.
type Config struct {
	BaseURL   string
	APIKey    string
	APISecret string

	PollInterval   time.Duration
	PollAttempts   int
	SubmitTimeout  time.Duration
	SubmitAttempts int

	HTTPClient *http.Client
	Sleep      Sleeper
	Logger     *logrus.Logger
}

// Client submits generation requests and hides the provider's two response
// styles (direct URL vs. job id needing polling) behind one Result.
type Client struct {
	baseURL   string
	apiKey    string
	apiSecret string

	pollInterval   time.Duration
	pollAttempts   int
	submitTimeout  time.Duration
	submitAttempts int

	httpClient *http.Client
	sleep      Sleeper
	logger     *logrus.Logger
}

// NewClient builds a Client, filling in defaults for any zero-valued knobs.
func NewClient(cfg Config) *Client {
	c := &Client{
		baseURL:        cfg.BaseURL,
		apiKey:         cfg.APIKey,
		apiSecret:      cfg.APISecret,
		pollInterval:   cfg.PollInterval,
		pollAttempts:   cfg.PollAttempts,
		submitTimeout:  cfg.SubmitTimeout,
		submitAttempts: cfg.SubmitAttempts,
		httpClient:     cfg.HTTPClient,
		sleep:          cfg.Sleep,
		logger:         cfg.Logger,
	}
	if c.pollInterval == 0 {
		c.pollInterval = 2 * time.Second
	}
	if c.pollAttempts == 0 {
		c.pollAttempts = 45
	}
	if c.submitTimeout == 0 {
		c.submitTimeout = 30 * time.Second
	}
	if c.submitAttempts == 0 {
		c.submitAttempts = 3
	}
	if c.httpClient == nil {
		c.httpClient = &http.Client{}
	}
	if c.sleep == nil {
		c.sleep = realSleep
	}
	if c.logger == nil {
		c.logger = logrus.New()
	}
	return c
}

// Result is the uniform outcome of a generation request.
type Result struct {
	URL string `json:"url"`
}

// ImageRequest describes one image generation.
type ImageRequest struct {
	Prompt        string  `json:"prompt"`
	AspectRatio   string  `json:"aspect_ratio,omitempty"`
	Resolution    string  `json:"resolution,omitempty"`
	BatchSize     int     `json:"batch_size,omitempty"`
	EnhancePrompt bool    `json:"enhance_prompt,omitempty"`
	StyleStrength float64 `json:"style_strength,omitempty"`
}

// VideoRequest describes one image-to-video generation.
type VideoRequest struct {
	ImageURL string `json:"image_url"`
	Prompt   string `json:"prompt,omitempty"`
	Model    string `json:"model,omitempty"`
}

// GenerateImage submits an image request and resolves it to an asset URL.
func (c *Client) GenerateImage(ctx context.Context, req ImageRequest) (Result, error) {
	return c.generate(ctx, "/v1/text2image", req)
}

// GenerateVideo submits an image-to-video request and resolves it to an
// asset URL.
func (c *Client) GenerateVideo(ctx context.Context, req VideoRequest) (Result, error) {
	return c.generate(ctx, "/v1/image2video", req)
}

func (c *Client) generate(ctx context.Context, path string, payload interface{}) (Result, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return Result{}, ErrMissingCredentials
	}

	sub, err := c.submitWithRetry(ctx, path, payload)
	if err != nil {
		return Result{}, err
	}

	switch sub.kind {
	case shapeDirectURL:
		return Result{URL: sub.url}, nil
	case shapeURLList:
		return Result{URL: sub.urls[0]}, nil
	case shapeRequestID:
		return c.awaitResult(ctx, sub.requestID)
	default:
		return Result{}, fmt.Errorf("%w: submission had no url or request id", ErrMalformedResponse)
	}
}

// JobStatus performs a single best-effort status probe without polling.
func (c *Client) JobStatus(ctx context.Context, requestID string) (models.GenerationJob, error) {
	if c.apiKey == "" || c.apiSecret == "" {
		return models.GenerationJob{}, ErrMissingCredentials
	}
	status, err := c.fetchStatus(ctx, requestID)
	if err != nil {
		return models.GenerationJob{}, err
	}

	job := models.GenerationJob{RequestID: requestID, Status: status.Status}
	if url := status.firstURL(); url != "" {
		job.URL = &url
	}
	if status.Error != "" {
		job.Error = &status.Error
	}
	return job, nil
}

// post sends a JSON request and returns the response body. A non-2xx answer
// becomes an *apiError so the retry layer can tell it apart from transport
// failures.
func (c *Client) post(ctx context.Context, path string, payload interface{}) ([]byte, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal request payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apiError{status: resp.StatusCode, body: string(body)}
	}
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %w", readErr)
	}
	return body, nil
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	body, readErr := io.ReadAll(resp.Body)
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &apiError{status: resp.StatusCode, body: string(body)}
	}
	if readErr != nil {
		return nil, fmt.Errorf("read response body: %w", readErr)
	}
	return body, nil
}

func (c *Client) authorize(req *http.Request) {
	req.Header.Set("hf-api-key", c.apiKey)
	req.Header.Set("hf-secret", c.apiSecret)
}
