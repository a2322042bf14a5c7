package mediagen

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"reelplanner/models"
)

// fakeSleeper records requested waits instead of sleeping.
type fakeSleeper struct {
	mu     sync.Mutex
	sleeps []time.Duration
}

func (f *fakeSleeper) sleep(_ context.Context, d time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sleeps = append(f.sleeps, d)
	return nil
}

func (f *fakeSleeper) recorded() []time.Duration {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]time.Duration(nil), f.sleeps...)
}

func quietLogger() *logrus.Logger {
	log := logrus.New()
	log.SetLevel(logrus.PanicLevel)
	return log
}

func newTestClient(t *testing.T, baseURL string, sleeper *fakeSleeper) *Client {
	t.Helper()
	return NewClient(Config{
		BaseURL:   baseURL,
		APIKey:    "key",
		APISecret: "secret",
		Sleep:     sleeper.sleep,
		Logger:    quietLogger(),
	})
}

func TestGenerateImage_DirectImagesResolveWithoutPolling(t *testing.T) {
	statusCalls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/text2image":
			json.NewEncoder(w).Encode(map[string]interface{}{"images": []string{"u1"}})
		default:
			statusCalls++
			http.Error(w, "unexpected", http.StatusInternalServerError)
		}
	}))
	defer server.Close()

	sleeper := &fakeSleeper{}
	client := newTestClient(t, server.URL, sleeper)

	result, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "a lighthouse"})
	require.NoError(t, err)
	assert.Equal(t, "u1", result.URL)
	assert.Empty(t, sleeper.recorded(), "direct result must not poll or wait")
	assert.Zero(t, statusCalls)
}

func TestGenerateImage_DirectURLField(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn/img.png"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeSleeper{})

	result, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/img.png", result.URL)
}

func TestGenerateImage_PollsUntilCompleted(t *testing.T) {
	var statusCalls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/v1/text2image":
			json.NewEncoder(w).Encode(map[string]string{"request_id": "abc"})
		case "/v1/requests/abc/status":
			statusCalls++
			if statusCalls <= 3 {
				json.NewEncoder(w).Encode(map[string]string{"status": models.JobStatusInProgress})
				return
			}
			json.NewEncoder(w).Encode(map[string]interface{}{
				"status": models.JobStatusCompleted,
				"images": []string{"u2"},
			})
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	sleeper := &fakeSleeper{}
	client := newTestClient(t, server.URL, sleeper)

	result, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	require.NoError(t, err)
	assert.Equal(t, "u2", result.URL)
	assert.Equal(t, 4, statusCalls)
	// Exactly three waits, one after each non-terminal poll.
	assert.Equal(t, []time.Duration{2 * time.Second, 2 * time.Second, 2 * time.Second}, sleeper.recorded())
}

func TestGenerateImage_NSFWIsRejectedNotFailed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/text2image" {
			json.NewEncoder(w).Encode(map[string]string{"request_id": "abc"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": models.JobStatusNSFW})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeSleeper{})

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrProviderRejected)
	assert.NotErrorIs(t, err, ErrProviderFailed)
}

func TestGenerateImage_FailedSurfacesProviderMessage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/text2image" {
			json.NewEncoder(w).Encode(map[string]string{"request_id": "abc"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{
			"status": models.JobStatusFailed,
			"error":  "gpu pool exhausted",
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeSleeper{})

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	require.ErrorIs(t, err, ErrProviderFailed)
	assert.Contains(t, err.Error(), "gpu pool exhausted")
}

func TestGenerateImage_CompletedWithoutURLIsMalformed(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/text2image" {
			json.NewEncoder(w).Encode(map[string]string{"request_id": "abc"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": models.JobStatusCompleted})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeSleeper{})

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerateImage_PollingCeilingTimesOut(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/v1/text2image" {
			json.NewEncoder(w).Encode(map[string]string{"request_id": "abc"})
			return
		}
		json.NewEncoder(w).Encode(map[string]string{"status": models.JobStatusQueued})
	}))
	defer server.Close()

	sleeper := &fakeSleeper{}
	client := NewClient(Config{
		BaseURL:      server.URL,
		APIKey:       "key",
		APISecret:    "secret",
		PollAttempts: 5,
		Sleep:        sleeper.sleep,
		Logger:       quietLogger(),
	})

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrTimeout)
	assert.Len(t, sleeper.recorded(), 4, "no wait after the final poll")
}

func TestGenerateImage_TransientFailuresRetryWithBackoff(t *testing.T) {
	// A closed server produces transport-level failures on every attempt.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	sleeper := &fakeSleeper{}
	client := newTestClient(t, server.URL, sleeper)

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	require.ErrorIs(t, err, ErrUpstreamUnavailable)
	// Three attempts, backoff between them only: 2s then 4s.
	assert.Equal(t, []time.Duration{2 * time.Second, 4 * time.Second}, sleeper.recorded())
}

func TestGenerateImage_ProviderErrorBodyIsNotRetried(t *testing.T) {
	attempts := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		http.Error(w, `{"error":"prompt too long"}`, http.StatusBadRequest)
	}))
	defer server.Close()

	sleeper := &fakeSleeper{}
	client := newTestClient(t, server.URL, sleeper)

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	require.ErrorIs(t, err, ErrProviderFailed)
	assert.Equal(t, 1, attempts)
	assert.Empty(t, sleeper.recorded())
}

func TestGenerateImage_UnknownSubmissionShape(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]string{"message": "accepted"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeSleeper{})

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrMalformedResponse)
}

func TestGenerate_MissingCredentials(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:0", Logger: quietLogger()})

	_, err := client.GenerateImage(context.Background(), ImageRequest{Prompt: "p"})
	assert.ErrorIs(t, err, ErrMissingCredentials)

	_, err = client.GenerateVideo(context.Background(), VideoRequest{ImageURL: "u"})
	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestGenerateVideo_SubmitsImageURL(t *testing.T) {
	var got VideoRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/v1/image2video", r.URL.Path)
		require.Equal(t, "key", r.Header.Get("hf-api-key"))
		require.Equal(t, "secret", r.Header.Get("hf-secret"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(map[string]string{"url": "https://cdn/clip.mp4"})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeSleeper{})

	result, err := client.GenerateVideo(context.Background(), VideoRequest{
		ImageURL: "https://cdn/img.png",
		Prompt:   "slow zoom",
		Model:    "dop-turbo",
	})
	require.NoError(t, err)
	assert.Equal(t, "https://cdn/clip.mp4", result.URL)
	assert.Equal(t, "https://cdn/img.png", got.ImageURL)
	assert.Equal(t, "slow zoom", got.Prompt)
}

func TestJobStatus_SingleProbe(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		require.Equal(t, "/v1/requests/xyz/status", r.URL.Path)
		json.NewEncoder(w).Encode(map[string]interface{}{
			"status": models.JobStatusCompleted,
			"images": []string{"u9"},
		})
	}))
	defer server.Close()

	client := newTestClient(t, server.URL, &fakeSleeper{})

	job, err := client.JobStatus(context.Background(), "xyz")
	require.NoError(t, err)
	assert.Equal(t, 1, calls)
	assert.Equal(t, models.JobStatusCompleted, job.Status)
	require.NotNil(t, job.URL)
	assert.Equal(t, "u9", *job.URL)
}
